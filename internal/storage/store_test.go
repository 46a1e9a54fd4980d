package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/chamber/internal/dynamo"
	"github.com/san-kum/chamber/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun() *Run {
	return &Run{
		Meta: RunMetadata{
			Source:      "run",
			Seed:        42,
			Integrator:  "euler",
			Config:      dynamo.DefaultConfig(),
			Steps:       2,
			SimTime:     0.04,
			Fingerprint: "00000000deadbeef",
			Metrics:     map[string]float64{"energy_drift": 1.5},
		},
		Bodies: []physics.Body{
			{Pos: dynamo.Vec2{X: 100, Y: 150}, Vel: dynamo.Vec2{X: 0.5, Y: -0.25}, Mass: 12, Radius: 10, Kind: physics.Planet},
			{Pos: dynamo.Vec2{X: 400.125, Y: 300}, Mass: 75, Radius: 15, Kind: physics.Star},
		},
		Times:  []float64{0, 0.02, 0.04},
		Energy: []float64{-3.5, -3.5001, -3.4999},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	run := testRun()
	runID, err := st.Save(run)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "run", meta.Source)
	assert.Equal(t, int64(42), meta.Seed)
	assert.Equal(t, 2, meta.Bodies)
	assert.Equal(t, "euler", meta.Integrator)
	assert.Equal(t, dynamo.DefaultConfig(), meta.Config)
	assert.Equal(t, 1.5, meta.Metrics["energy_drift"])

	bodies, err := st.LoadBodies(runID)
	require.NoError(t, err)
	assert.Equal(t, run.Bodies, bodies)

	times, energy, err := st.LoadEnergy(runID)
	require.NoError(t, err)
	assert.Equal(t, run.Times, times)
	assert.Equal(t, run.Energy, energy)
}

func TestStoreSaveKeepsGivenID(t *testing.T) {
	st := New(t.TempDir())
	run := testRun()
	run.Meta.ID = "fixed"

	runID, err := st.Save(run)
	require.NoError(t, err)
	assert.Equal(t, "fixed", runID)
}

func TestStoreSaveMismatchedSeries(t *testing.T) {
	st := New(t.TempDir())
	run := testRun()
	run.Energy = run.Energy[:1]

	_, err := st.Save(run)
	assert.Error(t, err)
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		run := testRun()
		run.Meta.Timestamp = base.Add(time.Duration(i) * time.Hour)
		_, err := st.Save(run)
		require.NoError(t, err)
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "junk"), 0755))

	runs, err := st.List()
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.True(t, runs[0].Timestamp.After(runs[1].Timestamp))
	assert.True(t, runs[1].Timestamp.After(runs[2].Timestamp))
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("nope")
	assert.Error(t, err)
	_, err = st.LoadBodies("nope")
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(testRun())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, st.ExportJSON(&buf, runID))

	var data ExportData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, runID, data.Meta.ID)
	require.Len(t, data.Bodies, 2)
	assert.Equal(t, "star", data.Bodies[1].Kind)
	assert.Equal(t, [2]float64{400.125, 300}, data.Bodies[1].Pos)
	assert.Len(t, data.Energy, 3)
}
