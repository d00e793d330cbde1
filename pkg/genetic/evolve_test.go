package genetic

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wsnlab/kcmc/pkg/dinic"
	"github.com/wsnlab/kcmc/pkg/instance"
)

// twoPathsInstance has a POI with two independent routes to the sink
// (0-2-sink and 1-3-sink), so a (1, 1) solution needs only two of the four
// sensors.
func twoPathsInstance(t *testing.T) *instance.Instance {
	t.Helper()
	b, err := instance.NewBuilder(instance.Params{
		NumPOIs: 1, NumSensors: 4, NumSinks: 1,
		AreaSide: 10, CoverageRadius: 5, CommunicationRadius: 5, Seed: 1,
	})
	require.NoError(t, err)
	require.NoError(t, b.AddCoverage(0, 0))
	require.NoError(t, b.AddCoverage(0, 1))
	require.NoError(t, b.AddLink(0, 2))
	require.NoError(t, b.AddLink(1, 3))
	require.NoError(t, b.AddSinkLink(2, 0))
	require.NoError(t, b.AddSinkLink(3, 0))
	return b.Build()
}

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = 16
	cfg.Generations = 40
	cfg.SelectionSize = 6
	cfg.ReportInterval = 10
	return cfg
}

func TestEvolveShrinksSolution(t *testing.T) {
	in := twoPathsInstance(t)
	rng := rand.New(rand.NewSource(42))

	reports := 0
	result, err := Evolve(context.Background(), in, 1, 1, smallConfig(), rng, func(Generation) {
		reports++
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Greater(t, reports, 0)

	// The best individual must be a valid solution no larger than the
	// trivial all-installed one.
	require.True(t, dinic.IsValid(in, 1, 1, result.Unused))
	require.LessOrEqual(t, result.NumUsed, in.NumSensors())
	require.Equal(t, result.NumUsed, result.Best.Ones())
}

func TestEvolveRejectsUnsatisfiableInstance(t *testing.T) {
	in := twoPathsInstance(t)
	rng := rand.New(rand.NewSource(42))

	// Two node-disjoint paths exist, but not three.
	_, err := Evolve(context.Background(), in, 1, 3, smallConfig(), rng, nil)
	require.Error(t, err)
}

func TestEvolveHonorsCancellation(t *testing.T) {
	in := twoPathsInstance(t)
	rng := rand.New(rand.NewSource(42))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Evolve(ctx, in, 1, 1, smallConfig(), rng, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEvolveValidatesConfig(t *testing.T) {
	in := twoPathsInstance(t)
	cfg := smallConfig()
	cfg.PopulationSize = 1

	_, err := Evolve(context.Background(), in, 1, 1, cfg, rand.New(rand.NewSource(1)), nil)
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kcmc.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[genetic]
population_size = 32
generations = 100
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 32, cfg.PopulationSize)
	require.Equal(t, 100, cfg.Generations)
	// Unset fields keep their defaults.
	require.Equal(t, DefaultConfig().MutationRate, cfg.MutationRate)
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[genetic]\npopulation_size = -3\n"), 0o644))
	if _, err := LoadConfig(bad); err == nil {
		t.Error("invalid settings should fail validation")
	}
}
