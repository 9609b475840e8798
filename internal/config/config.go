package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTemperature    = 300.0
	DefaultStabilitySteps = 100
	DefaultTimestepFs     = 1.0
	DefaultHMCTimestepFs  = 0.05
	DefaultHMCMoves       = 25
	DefaultStepsPerMove   = 10
)

// Config holds the parameters for a verification run.
type Config struct {
	Temperature float64 `yaml:"temperature"`
	Seed        int64   `yaml:"seed"`

	// Optional name filters; empty means every registered entry.
	Systems     []string `yaml:"systems"`
	Integrators []string `yaml:"integrators"`

	Stability     StabilityConfig     `yaml:"stability"`
	Reversibility ReversibilityConfig `yaml:"reversibility"`
	HMC           HMCConfig           `yaml:"hmc"`
}

type StabilityConfig struct {
	Steps      int     `yaml:"steps"`
	TimestepFs float64 `yaml:"timestep_fs"`
	// MaxEnergy, when positive, fails trajectories whose final potential
	// exceeds it even though the value is finite. Zero disables the bound.
	MaxEnergy float64 `yaml:"max_energy"`
}

type ReversibilityConfig struct {
	Steps      int     `yaml:"steps"`
	TimestepFs float64 `yaml:"timestep_fs"`
}

type HMCConfig struct {
	Moves        int     `yaml:"moves"`
	TimestepFs   float64 `yaml:"timestep_fs"`
	StepsPerMove int     `yaml:"steps_per_move"`
}

func DefaultConfig() *Config {
	return &Config{
		Temperature: DefaultTemperature,
		Stability: StabilityConfig{
			Steps:      DefaultStabilitySteps,
			TimestepFs: DefaultTimestepFs,
		},
		Reversibility: ReversibilityConfig{
			Steps:      1,
			TimestepFs: DefaultTimestepFs,
		},
		HMC: HMCConfig{
			Moves:        DefaultHMCMoves,
			TimestepFs:   DefaultHMCTimestepFs,
			StepsPerMove: DefaultStepsPerMove,
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
	if err := cfg.Validate(); err != nil {
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

func (c *Config) Validate() error {
	if c.Temperature <= 0 {
		return fmt.Errorf("temperature must be positive, got %g", c.Temperature)
	}
	if c.Stability.Steps <= 0 {
		return fmt.Errorf("stability steps must be positive, got %d", c.Stability.Steps)
	}
	if c.Stability.TimestepFs <= 0 {
		return fmt.Errorf("stability timestep must be positive, got %g", c.Stability.TimestepFs)
	}
	if c.Reversibility.Steps <= 0 {
		return fmt.Errorf("reversibility steps must be positive, got %d", c.Reversibility.Steps)
	}
	if c.Reversibility.TimestepFs <= 0 {
		return fmt.Errorf("reversibility timestep must be positive, got %g", c.Reversibility.TimestepFs)
	}
	if c.HMC.Moves <= 0 {
		return fmt.Errorf("hmc moves must be positive, got %d", c.HMC.Moves)
	}
	if c.HMC.TimestepFs <= 0 {
		return fmt.Errorf("hmc timestep must be positive, got %g", c.HMC.TimestepFs)
	}
	if c.HMC.StepsPerMove <= 0 {
		return fmt.Errorf("hmc steps per move must be positive, got %d", c.HMC.StepsPerMove)
	}
	return nil
}
