package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sstent/workoutstats/internal/config"
	"github.com/sstent/workoutstats/internal/database"
	"github.com/sstent/workoutstats/internal/ingest"
	"github.com/sstent/workoutstats/internal/models"
	"github.com/sstent/workoutstats/internal/training"
)

// samplePackages are readings from the three reference workouts.
var samplePackages = []models.SensorPackage{
	{WorkoutType: "SWM", Data: []float64{720, 1, 80, 25, 40}},
	{WorkoutType: "RUN", Data: []float64{15000, 1, 75}},
	{WorkoutType: "WLK", Data: []float64{9000, 1, 75, 180}},
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "workoutstats",
		Short:         "Workout summaries from tracker sensor packages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newDemoCmd())
	root.AddCommand(newCalcCmd())
	root.AddCommand(newIngestCmd())
	root.AddCommand(newServeCmd())
	return root
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Print summaries for the built-in sample packages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, pkg := range samplePackages {
				if err := printSummary(cmd.OutOrStdout(), pkg.WorkoutType, pkg.Data); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newCalcCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "calc <SWM|RUN|WLK> <reading>...",
		Short:   "Print the summary for one package given on the command line",
		Example: "  workoutstats calc RUN 15000 1 75",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := make([]float64, 0, len(args)-1)
			for _, arg := range args[1:] {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("reading %q is not a number", arg)
				}
				data = append(data, v)
			}
			return printSummary(cmd.OutOrStdout(), args[0], data)
		},
	}
}

func newIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Compute and store summaries from FIT or YAML files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := database.NewSQLiteDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := ingest.NewService(db, cfg.Athlete)
			var failed error
			for _, path := range args {
				workouts, err := svc.IngestFile(path)
				for _, w := range workouts {
					fmt.Fprintln(cmd.OutOrStdout(), w.Info().GetMessage())
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed = fmt.Errorf("some packages could not be ingested")
				}
			}
			return failed
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled sync",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return newApp(config.Load()).run()
		},
	}
}

func printSummary(w io.Writer, workoutType string, data []float64) error {
	workout, err := training.ReadPackage(workoutType, data)
	if err != nil {
		return err
	}
	info, err := workout.ShowTrainingInfo()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, info.GetMessage())
	return err
}
