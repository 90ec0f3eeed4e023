package viz

import (
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/landsim/internal/storage"
)

// Plot draws one series. Non-finite samples repeat the previous finite value
// so a failed run still plots. An empty series renders as "".
func Plot(values []float64, caption string, width, height int) string {
	data := finiteSeries(values)
	if len(data) == 0 {
		return ""
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}
	return asciigraph.Plot(data,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	)
}

// FlightPlots stacks altitude, vertical velocity and throttle over time.
func FlightPlots(snaps []storage.Snapshot, width, height int) string {
	if len(snaps) == 0 {
		return ""
	}
	alt := make([]float64, len(snaps))
	vel := make([]float64, len(snaps))
	thr := make([]float64, len(snaps))
	for i, s := range snaps {
		alt[i], vel[i], thr[i] = s.PosZ, s.VelZ, s.ThrottlePct
	}

	plots := []string{
		Plot(alt, "altitude (m)", width, height),
		Plot(vel, "vertical velocity (m/s)", width, height),
		Plot(thr, "throttle (%)", width, height/2),
	}
	return strings.Join(plots, "\n\n")
}

func finiteSeries(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	last := 0.0
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			if len(out) == 0 {
				continue
			}
			v = last
		}
		out = append(out, v)
		last = v
	}
	return out
}
