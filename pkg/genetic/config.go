package genetic

import (
	"os"

	"github.com/BurntSushi/toml"

	kerrors "github.com/wsnlab/kcmc/pkg/errors"
)

// Config controls the evolution loop. The zero value is not usable; start
// from DefaultConfig and override, or load a TOML file with LoadConfig.
type Config struct {
	// PopulationSize is the number of individuals per generation.
	PopulationSize int `toml:"population_size"`

	// Generations is the number of generations to run.
	Generations int `toml:"generations"`

	// SelectionSize is how many individuals the roulette keeps as parents.
	SelectionSize int `toml:"selection_size"`

	// OneBias is the probability of a 1 bit in freshly created individuals.
	OneBias float64 `toml:"one_bias"`

	// MutationRate is the probability that a child is mutated.
	MutationRate float64 `toml:"mutation_rate"`

	// ReportInterval emits a report every N generations; improvements are
	// always reported regardless of the interval.
	ReportInterval int `toml:"report_interval"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 64,
		Generations:    500,
		SelectionSize:  16,
		OneBias:        0.75,
		MutationRate:   0.1,
		ReportInterval: 25,
	}
}

// Validate checks the configuration for values the loop cannot run with.
func (c Config) Validate() error {
	switch {
	case c.PopulationSize < 2:
		return kerrors.New(kerrors.ErrCodeInvalidInput, "population_size must be at least 2")
	case c.Generations < 1:
		return kerrors.New(kerrors.ErrCodeInvalidInput, "generations must be at least 1")
	case c.SelectionSize < 2 || c.SelectionSize > c.PopulationSize:
		return kerrors.New(kerrors.ErrCodeInvalidInput,
			"selection_size must be between 2 and population_size")
	case c.OneBias <= 0 || c.OneBias > 1:
		return kerrors.New(kerrors.ErrCodeInvalidInput, "one_bias must be in (0, 1]")
	case c.MutationRate < 0 || c.MutationRate > 1:
		return kerrors.New(kerrors.ErrCodeInvalidInput, "mutation_rate must be in [0, 1]")
	case c.ReportInterval < 1:
		return kerrors.New(kerrors.ErrCodeInvalidInput, "report_interval must be at least 1")
	}
	return nil
}

// configFile is the on-disk shape: settings live under a [genetic] table so
// the file can later grow other sections.
type configFile struct {
	Genetic Config `toml:"genetic"`
}

// LoadConfig reads a TOML config file, filling unset fields from defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "read config %s", path)
	}

	file := configFile{Genetic: DefaultConfig()}
	if err := toml.Unmarshal(data, &file); err != nil {
		return Config{}, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := file.Genetic.Validate(); err != nil {
		return Config{}, err
	}
	return file.Genetic, nil
}
