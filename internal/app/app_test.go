package app_test

import (
	"context"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/mcgridgo/internal/app"
	"github.com/vk/mcgridgo/internal/hcl"
	"github.com/vk/mcgridgo/internal/store/sqlite"
	"github.com/vk/mcgridgo/internal/testutil"
)

// lineshapeGrid chains a resonance generator, its matching propagator, and a
// product node. The jacobian times the propagator weight is constant in the
// sampled variable, so the estimate converges to the closed form
// (pi/2 + atan(m/w)) / (m*w) with negligible variance.
const lineshapeGrid = `
module "breit_wigner" "bw" {
  mass     = 91.1876
  width    = 2.4952
  ps_point = "sampler::point/0"
}

module "propagator" "prop" {
  mass  = 91.1876
  width = 2.4952
  s     = "bw::s"
}

module "product" "integrand" {
  lhs = "bw::jacobian"
  rhs = "prop::weight"
}

run {
  points    = 5000
  seed      = 7
  integrand = "integrand::value"
  workers   = 2
}
`

func TestRunLineshapeGrid(t *testing.T) {
	res := testutil.RunIntegration(t, map[string]string{"grid.hcl": lineshapeGrid})
	require.NoError(t, res.Err)
	require.NotNil(t, res.Result)

	mass, width := 91.1876, 2.4952
	flat := (math.Pi/2 + math.Atan(mass/width)) / (mass * width)

	assert.InDelta(t, flat, res.Result.Estimate, 1e-9)
	assert.Less(t, res.Result.StdError, 1e-9)
	assert.Equal(t, 5000, res.Result.Points)
	assert.Equal(t, 1, res.Result.Dimensions)
}

func TestRunUnknownModuleType(t *testing.T) {
	grid := `
module "warp_drive" "wd" {
  mass = 1.0
}

run {
  points    = 10
  integrand = "wd::value"
}
`
	res := testutil.RunIntegration(t, map[string]string{"grid.hcl": grid})
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "unknown module type 'warp_drive'")
}

func TestRunIntegrandTargetsUndeclaredOutput(t *testing.T) {
	grid := `
module "breit_wigner" "bw" {
  mass     = 10.0
  width    = 1.0
  ps_point = "sampler::point/0"
}

run {
  points    = 10
  integrand = "bw::nope"
}
`
	res := testutil.RunIntegration(t, map[string]string{"grid.hcl": grid})
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "does not produce 'nope'")
}

func TestNewAppliesRunOverrides(t *testing.T) {
	gridDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(gridDir, "grid.hcl"), []byte(lineshapeGrid), 0o644))

	appConfig := &app.Config{
		GridPath: gridDir,
		Points:   250,
		Seed:     99,
		Workers:  1,
	}
	engine, err := app.New(context.Background(), io.Discard, appConfig, hcl.NewLoader())
	require.NoError(t, err)

	run := engine.Model().Run
	assert.Equal(t, 250, run.Points)
	assert.Equal(t, uint64(99), run.Seed)
	assert.Equal(t, 1, run.Workers)
}

func TestRunPersistsSummary(t *testing.T) {
	gridDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(gridDir, "grid.hcl"), []byte(lineshapeGrid), 0o644))
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	appConfig := &app.Config{
		GridPath:   gridDir,
		OutputPath: dbPath,
		Points:     100,
	}
	engine, err := app.New(context.Background(), io.Discard, appConfig, hcl.NewLoader())
	require.NoError(t, err)

	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	st, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.NotEmpty(t, runs[0].ID)
	assert.Equal(t, gridDir, runs[0].GridPath)
	assert.Equal(t, 100, runs[0].Points)
	assert.Equal(t, result.Estimate, runs[0].Estimate)

	var out testutil.SafeBuffer
	require.NoError(t, app.PrintHistory(context.Background(), &out, dbPath))
	assert.Contains(t, out.String(), runs[0].ID)
	assert.Contains(t, out.String(), "points=100")
}

func TestPrintHistoryEmptyStore(t *testing.T) {
	var out testutil.SafeBuffer
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	require.NoError(t, app.PrintHistory(context.Background(), &out, dbPath))
	assert.Contains(t, out.String(), "no runs recorded")
}
