package main

import (
	"fmt"
	"os"

	"github.com/san-kum/chamber/internal/automation"
	"github.com/san-kum/chamber/internal/config"
	"github.com/san-kum/chamber/internal/integrators"
	"github.com/san-kum/chamber/internal/logging"
	"github.com/san-kum/chamber/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir       string
	logLevel      string
	configFile    string
	preset        string
	integrator    string
	seed          int64
	planets       int
	stars         int
	steps         int
	svgPath       string
	ensembleN     int
	ensembleSteps int
	sweepSteps    int
	parallel      int
	sweepParam    string
	sweepMin      float64
	sweepMax      float64
	sweepN        int

	log = logging.Nop()
)

// main registers commands and flags and runs the live view when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "chamber",
		Short:         "gravitational n-body chamber",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log = logging.New(level)
			return nil
		},
		RunE: runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".chamber", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	addSimFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", 1000, "number of steps")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as SVG")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "play a YAML scenario and save the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	scenarioCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	scenarioCmd.Flags().StringVar(&svgPath, "svg", "", "write the final frame as SVG")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run seeded simulations in parallel and compare energy drift",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&ensembleSteps, "steps", 1000, "number of steps per run")
	ensembleCmd.Flags().IntVar(&ensembleN, "runs", 8, "number of runs")
	ensembleCmd.Flags().IntVar(&parallel, "parallel", 0, "max concurrent runs (0 = unlimited)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one simulation constant and report energy drift",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 500, "number of steps per point")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "softening", fmt.Sprintf("parameter to sweep %v", automation.SweepParams))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 10, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "points", 5, "number of values")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the energy of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %d planets, %d stars, %s\n", name, p.Initial.Planets, p.Initial.Stars, p.Integrator)
			}
			return nil
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [file]",
		Short: "write the default configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	initConfigCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(liveCmd, runCmd, scenarioCmd, ensembleCmd, sweepCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd, initConfigCmd)

	err := rootCmd.Execute()
	_ = log.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&integrator, "integrator", integrators.Default, fmt.Sprintf("integrator %v", integrators.Names()))
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().IntVar(&planets, "planets", 0, "planets spawned at start")
	cmd.Flags().IntVar(&stars, "stars", 0, "stars spawned at start")
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, _, err := newSimulation(cfg)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(s, cfg.FieldGrid(), cfg.View, log)
	if err != nil {
		return err
	}
	// stderr shares the terminal with the alt screen; only errors get through.
	log.SetLevel(logging.LevelError)
	return viz.Run(m)
}
