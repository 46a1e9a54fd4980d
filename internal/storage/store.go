package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
)

const (
	metadataFile = "metadata.json"
	bodiesFile   = "bodies.csv"
	energyFile   = "energy.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Source      string             `json:"source"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Integrator  string             `json:"integrator"`
	Config      dynamo.Config      `json:"config"`
	Steps       int                `json:"steps"`
	SimTime     float64            `json:"sim_time"`
	Bodies      int                `json:"bodies"`
	Fingerprint string             `json:"fingerprint"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Run is everything written for one headless simulation.
type Run struct {
	Meta   RunMetadata
	Bodies []physics.Body
	Times  []float64
	Energy []float64
}

// Save writes a run under a fresh id and returns it. Meta.ID and
// Meta.Timestamp are filled in when empty.
func (s *Store) Save(run *Run) (string, error) {
	if run.Meta.ID == "" {
		run.Meta.ID = uuid.NewString()
	}
	if run.Meta.Timestamp.IsZero() {
		run.Meta.Timestamp = time.Now()
	}
	run.Meta.Bodies = len(run.Bodies)

	runDir := filepath.Join(s.baseDir, run.Meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), run.Meta); err != nil {
		return "", err
	}
	if err := writeBodies(filepath.Join(runDir, bodiesFile), run.Bodies); err != nil {
		return "", err
	}
	if err := writeEnergy(filepath.Join(runDir, energyFile), run.Times, run.Energy); err != nil {
		return "", err
	}
	return run.Meta.ID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeBodies(path string, bodies []physics.Body) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"kind", "x", "y", "vx", "vy", "mass", "radius"}); err != nil {
		return err
	}
	for _, b := range bodies {
		row := []string{
			b.Kind.String(),
			formatFloat(b.Pos.X), formatFloat(b.Pos.Y),
			formatFloat(b.Vel.X), formatFloat(b.Vel.Y),
			formatFloat(b.Mass), formatFloat(b.Radius),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeEnergy(path string, times, energy []float64) error {
	if len(times) != len(energy) {
		return fmt.Errorf("energy series length mismatch: %d times, %d values", len(times), len(energy))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "energy"}); err != nil {
		return err
	}
	for i := range times {
		if err := w.Write([]string{formatFloat(times[i]), formatFloat(energy[i])}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, nil
	}
	return records[1:], nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// LoadBodies reads the final body snapshot of a run.
func (s *Store) LoadBodies(runID string) ([]physics.Body, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, bodiesFile))
	if err != nil {
		return nil, err
	}

	bodies := make([]physics.Body, 0, len(records))
	for line, rec := range records {
		if len(rec) != 7 {
			return nil, fmt.Errorf("%s line %d: expected 7 fields, got %d", bodiesFile, line+2, len(rec))
		}
		kind, err := physics.ParseKind(rec[0])
		if err != nil {
			return nil, err
		}
		v, err := parseFloats(rec[1:])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", bodiesFile, line+2, err)
		}
		bodies = append(bodies, physics.Body{
			Kind:   kind,
			Pos:    dynamo.Vec2{X: v[0], Y: v[1]},
			Vel:    dynamo.Vec2{X: v[2], Y: v[3]},
			Mass:   v[4],
			Radius: v[5],
		})
	}
	return bodies, nil
}

// LoadEnergy reads the recorded energy series of a run.
func (s *Store) LoadEnergy(runID string) ([]float64, []float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, energyFile))
	if err != nil {
		return nil, nil, err
	}

	times := make([]float64, 0, len(records))
	energy := make([]float64, 0, len(records))
	for _, rec := range records {
		v, err := parseFloats(rec)
		if err != nil || len(v) != 2 {
			continue
		}
		times = append(times, v[0])
		energy = append(energy, v[1])
	}
	return times, energy, nil
}
