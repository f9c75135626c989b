// Package config loads and saves confspin run configurations.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStepSize         = 0.5
	DefaultRotationStepSize = 1.0
	DefaultNumConformers    = 50
	DefaultBeta             = 2.0
	DefaultEpsilon          = 5.0
)

type Config struct {
	Host      string          `yaml:"host"`
	Guests    []string        `yaml:"guests"`
	Spinner   SpinnerConfig   `yaml:"spinner"`
	Potential PotentialConfig `yaml:"potential"`
	Output    OutputConfig    `yaml:"output"`
}

type SpinnerConfig struct {
	StepSize         float64 `yaml:"step_size"`
	RotationStepSize float64 `yaml:"rotation_step_size"`
	NumConformers    int     `yaml:"num_conformers"`
	MaxAttempts      int     `yaml:"max_attempts"`
	Beta             float64 `yaml:"beta"`
	Seed             *int64  `yaml:"seed,omitempty"`
	Movable          []int   `yaml:"movable,omitempty"`
}

type PotentialConfig struct {
	// Type selects the potential: "lj" or "annealed".
	Type    string  `yaml:"type"`
	Epsilon float64 `yaml:"epsilon"`
	// AnnealStart and AnnealOver configure the annealed ramp: the pair
	// strength starts at AnnealStart×Epsilon and reaches full strength
	// after AnnealOver evaluations.
	AnnealStart float64 `yaml:"anneal_start"`
	AnnealOver  int     `yaml:"anneal_over"`
}

type OutputConfig struct {
	Trajectory string `yaml:"trajectory"`
	Compress   bool   `yaml:"compress"`
	Summary    string `yaml:"summary"`
	Plot       string `yaml:"plot"`
}

func DefaultConfig() *Config {
	return &Config{
		Spinner: SpinnerConfig{
			StepSize:         DefaultStepSize,
			RotationStepSize: DefaultRotationStepSize,
			NumConformers:    DefaultNumConformers,
			Beta:             DefaultBeta,
		},
		Potential: PotentialConfig{
			Type:    "lj",
			Epsilon: DefaultEpsilon,
		},
		Output: OutputConfig{
			Trajectory: "conformers.xyz",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
