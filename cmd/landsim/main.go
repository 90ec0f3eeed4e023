package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/landsim/internal/logging"
)

var (
	dataDir   string
	logLevel  string
	logFormat string

	logger = logging.Nop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "landsim",
		Short:         "vertical rocket landing simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logging.New(logLevel, logFormat)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".landsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	rootCmd.AddCommand(
		landCommand("hoverslam", "plan the latest full-thrust ignition and land"),
		landCommand("pid", "tune a PID velocity controller with twiddle and land"),
		deltavCommand(),
		compareCommand(),
		presetsCommand(),
		initConfigCommand(),
		listCommand(),
		showCommand(),
		plotCommand(),
		exportCSVCommand(),
		exportJSONCommand(),
		exportSVGCommand(),
		deleteCommand(),
		replayCommand(),
		batchCommand(),
		sweepCommand(),
		dispersionCommand(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
