package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/landsim/internal/export"
	"github.com/san-kum/landsim/internal/storage"
	"github.com/san-kum/landsim/internal/viz"
)

func withStore(fn func(st *storage.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		st, err := storage.Open(dataDir)
		if err != nil {
			return err
		}
		defer st.Close()
		return fn(st, args)
	}
}

func listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE: withStore(func(st *storage.Store, _ []string) error {
			runs, err := st.List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}
			fmt.Println(viz.RunTable(runs))
			return nil
		}),
	}
}

func showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a run summary",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(st *storage.Store, args []string) error {
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Println(viz.RunSummary(meta))
			return nil
		}),
	}
}

func plotCommand() *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot altitude, velocity and throttle of a run",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(st *storage.Store, args []string) error {
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			snaps, err := st.LoadSnapshots(meta.ID)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s)\n\n", meta.Name, meta.ID)
			fmt.Println(viz.FlightPlots(snaps, width, height))
			return nil
		}),
	}
	cmd.Flags().IntVar(&width, "width", 60, "plot width")
	cmd.Flags().IntVar(&height, "height", 12, "plot height")
	return cmd
}

func exportCSVCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the flight log to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(st *storage.Store, args []string) error {
			snaps, err := st.LoadSnapshots(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				return storage.WriteCSV(os.Stdout, snaps)
			}
			if err := storage.ExportCSV(out, snaps); err != nil {
				return err
			}
			fmt.Printf("exported %d rows to %s\n", len(snaps), out)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func exportJSONCommand() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and snapshots to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(st *storage.Store, args []string) error {
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			snaps, err := st.LoadSnapshots(meta.ID)
			if err != nil {
				return err
			}
			if out == "" {
				return storage.WriteJSON(os.Stdout, meta, snaps)
			}
			if err := storage.ExportJSON(out, meta, snaps); err != nil {
				return err
			}
			fmt.Printf("exported to %s\n", out)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func exportSVGCommand() *cobra.Command {
	var (
		out           string
		series        string
		width, height int
	)
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a flight profile (altitude, velocity, throttle, fuel) to SVG",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(st *storage.Store, args []string) error {
			snaps, err := st.LoadSnapshots(args[0])
			if err != nil {
				return err
			}
			if out == "" {
				return export.WriteFlightSVG(os.Stdout, snaps, export.Series(series), width, height)
			}
			if err := export.ExportFlightSVG(out, snaps, export.Series(series), width, height); err != nil {
				return err
			}
			fmt.Printf("exported %s profile to %s\n", series, out)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&series, "series", string(export.Altitude), "plotted quantity")
	cmd.Flags().IntVar(&width, "width", 800, "image width")
	cmd.Flags().IntVar(&height, "height", 400, "image height")
	return cmd
}

func deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a run and its snapshots",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(st *storage.Store, args []string) error {
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			if err := st.Delete(meta.ID); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", meta.ID)
			return nil
		}),
	}
}

func replayCommand() *cobra.Command {
	var theme string
	cmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "replay a stored flight in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: withStore(func(st *storage.Store, args []string) error {
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			snaps, err := st.LoadSnapshots(meta.ID)
			if err != nil {
				return err
			}
			viz.SetTheme(theme)
			p := tea.NewProgram(viz.NewReplay(meta.Name, snaps), tea.WithAltScreen())
			_, err = p.Run()
			return err
		}),
	}
	cmd.Flags().StringVar(&theme, "theme", viz.ThemeMission.Name, fmt.Sprintf("color theme %v", viz.ThemeNames()))
	return cmd
}
