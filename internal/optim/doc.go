// Package optim provides derivative-free black-box minimizers.
//
// [GoldenSection] brackets the minimum of a scalar function, spending one new
// evaluation per iteration. [Twiddle] is a coordinate-wise step search over a
// parameter vector that grows successful steps and shrinks failed ones.
//
// Both searches carry an iteration budget and stop with [ErrNotConverged]
// when it runs out, returning the best answer found so far.
package optim

import (
	"errors"

	"go.uber.org/zap"
)

var (
	// ErrNotConverged indicates a search ran out of iterations or stalled
	// before reaching its tolerance.
	ErrNotConverged = errors.New("optim: search did not converge")

	// ErrInvalidArgument indicates a malformed search setup.
	ErrInvalidArgument = errors.New("optim: invalid argument")
)

func loggerOrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
