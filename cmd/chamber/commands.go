package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/chamber/internal/automation"
	"github.com/san-kum/chamber/internal/config"
	"github.com/san-kum/chamber/internal/export"
	"github.com/san-kum/chamber/internal/metrics"
	"github.com/san-kum/chamber/internal/physics"
	"github.com/san-kum/chamber/internal/sim"
	"github.com/san-kum/chamber/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadConfig resolves defaults, then the preset, then the config file, then
// any flag the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("planets") {
		cfg.Initial.Planets = planets
	}
	if flags.Changed("stars") {
		cfg.Initial.Stars = stars
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simOptions(cfg *config.Config) []sim.Option {
	return []sim.Option{
		sim.WithSpawn(cfg.Spawn),
		sim.WithIntegrator(cfg.Integrator),
		sim.WithLogger(log),
	}
}

func populate(cfg *config.Config) sim.Populate {
	return func(s *sim.Simulation) error {
		for range cfg.Initial.Stars {
			s.Spawn(physics.Star)
		}
		for range cfg.Initial.Planets {
			s.Spawn(physics.Planet)
		}
		return nil
	}
}

// recorders are the observers attached to every saved run.
type recorders struct {
	metrics []metrics.Metric
	energy  *metrics.Series
	trails  *export.Trails
}

func newSimulation(cfg *config.Config) (*sim.Simulation, *recorders, error) {
	s, err := sim.New(cfg.Dynamo(), append(simOptions(cfg), sim.WithSeed(cfg.Seed))...)
	if err != nil {
		return nil, nil, err
	}
	if err := populate(cfg)(s); err != nil {
		return nil, nil, err
	}

	rec := &recorders{
		metrics: metrics.Default(cfg.Dynamo()),
		energy:  metrics.NewSeries(cfg.Dynamo(), 0),
		trails:  export.NewTrails(5),
	}
	for _, m := range rec.metrics {
		s.AddObserver(m)
	}
	s.AddObserver(rec.energy)
	s.AddObserver(rec.trails)
	return s, rec, nil
}

func saveRun(source string, cfg *config.Config, s *sim.Simulation, rec *recorders) (string, error) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return "", err
	}

	run := &storage.Run{
		Meta: storage.RunMetadata{
			Source:      source,
			Seed:        cfg.Seed,
			Integrator:  s.Integrator(),
			Config:      s.Config(),
			Steps:       s.Steps(),
			SimTime:     s.Time(),
			Fingerprint: fmt.Sprintf("%016x", s.Fingerprint()),
			Metrics:     metrics.Values(rec.metrics),
		},
		Bodies: s.Snapshot(),
		Times:  rec.energy.Times(),
		Energy: rec.energy.Energy(),
	}
	runID, err := st.Save(run)
	if err != nil {
		return "", err
	}
	log.Info("saved run", zap.String("id", runID), zap.String("dir", dataDir))
	return runID, nil
}

func writeSVG(path string, cfg *config.Config, s *sim.Simulation, rec *recorders) error {
	lines, err := s.SampleGrid(cfg.FieldGrid())
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	scene := export.Scene{
		Bounds: cfg.FieldGrid().Bounds,
		Bodies: s.Snapshot(),
		Trails: rec.trails.Paths(),
	}
	if cfg.View.ShowGrid {
		scene.Grid = lines
	}
	if err := export.WriteSVG(f, scene); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func finish(source string, cfg *config.Config, s *sim.Simulation, rec *recorders, elapsed time.Duration) error {
	runID, err := saveRun(source, cfg, s, rec)
	if err != nil {
		return err
	}
	if svgPath != "" {
		if err := writeSVG(svgPath, cfg, s, rec); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", svgPath)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d  bodies: %d  fingerprint: %016x\n", s.Steps(), s.Len(), s.Fingerprint())
	fmt.Println("\nmetrics:")
	for name, val := range metrics.Values(rec.metrics) {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	s, rec, err := newSimulation(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("running simulation", zap.Int("bodies", s.Len()), zap.Int("steps", steps), zap.Int64("seed", cfg.Seed))
	start := time.Now()
	if err := s.Run(ctx, steps); err != nil {
		if errors.Is(err, sim.ErrUnstable) {
			log.Error("run diverged, not saved", zap.Error(err))
		}
		return err
	}
	return finish("run", cfg, s, rec, time.Since(start))
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	s, rec, err := newSimulation(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	if err := sc.Run(ctx, s, log); err != nil {
		return fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	return finish("scenario:"+sc.Name, cfg, s, rec, time.Since(start))
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ens := sim.NewEnsemble(cfg.Dynamo(), populate(cfg), ensembleN, cfg.Seed, simOptions(cfg)...)
	ens.SetLimit(parallel)

	start := time.Now()
	results, err := ens.Run(ctx, ensembleSteps)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tBODIES\tSTEPS\tE0\tE1\tDRIFT\tFINGERPRINT")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.4f\t%.4f\t%.3e\t%016x\n",
			r.Seed, r.Bodies, r.Steps, r.InitialEnergy, r.FinalEnergy, r.EnergyDrift, r.Fingerprint)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d runs in %v\n", len(results), time.Since(start))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := &automation.ParameterSweep{
		Param:   sweepParam,
		Min:     sweepMin,
		Max:     sweepMax,
		Points:  sweepN,
		Steps:   sweepSteps,
		Seed:    cfg.Seed,
		Planets: cfg.Initial.Planets,
		Stars:   cfg.Initial.Stars,
	}
	results, err := automation.RunSweep(ctx, cfg.Dynamo(), sweep, log, simOptions(cfg)...)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tE0\tE1\tDRIFT\tSTABLE\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%.4f\t%.4f\t%.3e\t%v\n", r.Value, r.InitialEnergy, r.FinalEnergy, r.Drift, r.Stable)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tSTEPS\tBODIES\tINTEG\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%d\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Bodies,
			run.Integrator,
			run.Seed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, energy, err := st.LoadEnergy(runID)
	if err != nil {
		return err
	}
	if len(energy) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s  integrator: %s  bodies: %d\n", meta.Source, meta.Integrator, meta.Bodies)
	fmt.Printf("samples: %d\n\n", len(energy))

	graph := asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total energy vs step"),
	)
	fmt.Println(graph)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
}
