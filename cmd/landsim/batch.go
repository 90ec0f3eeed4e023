package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/landsim/internal/automation"
	"github.com/san-kum/landsim/internal/experiment"
	"github.com/san-kum/landsim/internal/landing"
	"github.com/san-kum/landsim/internal/storage"
)

func batchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a yaml batch of landings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}

			var saver automation.Saver
			if sc.Save {
				st, err := storage.Open(dataDir)
				if err != nil {
					return err
				}
				defer st.Close()
				saver = st
			}

			results, err := automation.RunScenario(cmd.Context(), sc, experiment.NewRegistry(), saver, logger)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				switch {
				case r.Err != nil:
					failed++
					fmt.Printf("%-20s FAILED  %v\n", r.Case, r.Err)
				default:
					res := r.Report.Result
					fmt.Printf("%-20s %-7s speed=%.4f m/s fuel=%.2f kg %s\n",
						r.Case, res.Status, res.Speed(), res.FuelUsed(), r.RunID)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d cases failed", failed, len(results))
			}
			return nil
		},
	}
}

func sweepCommand() *cobra.Command {
	var (
		strategy string
		lo, hi   float64
		steps    int
	)
	cmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: fmt.Sprintf("fly a strategy across a parameter range (%s)", strings.Join(automation.ParamNames(), ", ")),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			points, err := automation.RunSweep(cmd.Context(), &automation.Sweep{
				Base:     cfg,
				Strategy: strategy,
				Param:    args[0],
				Min:      lo,
				Max:      hi,
				Steps:    steps,
			}, experiment.NewRegistry(), logger)
			if err != nil {
				return err
			}

			fmt.Printf("%12s  %-8s %12s %12s %10s\n", args[0], "status", "speed(m/s)", "fuel(kg)", "ignition")
			for _, p := range points {
				if p.Err != nil {
					fmt.Printf("%12g  %v\n", p.Value, p.Err)
					continue
				}
				res := p.Report.Result
				ign := "-"
				if p.Report.Strategy == landing.StrategyHoverslam {
					ign = fmt.Sprintf("%.4f", p.Report.Ignition)
				}
				fmt.Printf("%12g  %-8s %12.4f %12.2f %10s\n", p.Value, res.Status, res.Speed(), res.FuelUsed(), ign)
			}
			return nil
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().StringVar(&strategy, "strategy", landing.StrategyHoverslam, "landing strategy (hoverslam, pid)")
	cmd.Flags().Float64Var(&lo, "min", 500, "first value")
	cmd.Flags().Float64Var(&hi, "max", 2000, "last value")
	cmd.Flags().IntVar(&steps, "steps", 4, "number of values")
	return cmd
}

func dispersionCommand() *cobra.Command {
	d := automation.Dispersion{}
	cmd := &cobra.Command{
		Use:   "dispersion",
		Short: "fly the nominal hoverslam plan on perturbed vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			d.Base = cfg
			res, err := automation.RunDispersion(cmd.Context(), &d, experiment.NewRegistry(), logger)
			if err != nil {
				return err
			}

			fmt.Printf("nominal ignition: %.4f s\n", res.Ignition)
			fmt.Printf("landed:           %d/%d\n", res.Landed, len(res.Speeds))
			if res.Landed == 0 {
				return errors.New("no trial landed")
			}
			fmt.Printf("touchdown speed:  mean %.4f  stddev %.4f  max %.4f m/s\n", res.Mean, res.StdDev, res.Max)
			return nil
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().IntVar(&d.Trials, "trials", 100, "number of trials")
	cmd.Flags().Uint64Var(&d.Seed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&d.AltitudeSigma, "altitude-sigma", 10, "altitude standard deviation (m)")
	cmd.Flags().Float64Var(&d.FuelSigma, "fuel-sigma", 2, "fuel mass standard deviation (kg)")
	cmd.Flags().Float64Var(&d.DryMassSigma, "dry-mass-sigma", 10, "dry mass standard deviation (kg)")
	return cmd
}
