package config

// Presets are named run profiles selectable from the CLI.
var Presets = map[string]*Config{
	"quick": {
		Temperature:   300.0,
		Stability:     StabilityConfig{Steps: 25, TimestepFs: 1.0},
		Reversibility: ReversibilityConfig{Steps: 1, TimestepFs: 1.0},
		HMC:           HMCConfig{Moves: 5, TimestepFs: 0.05, StepsPerMove: 5},
	},
	"thorough": {
		Temperature:   300.0,
		Stability:     StabilityConfig{Steps: 1000, TimestepFs: 1.0, MaxEnergy: 1e6},
		Reversibility: ReversibilityConfig{Steps: 5, TimestepFs: 1.0},
		HMC:           HMCConfig{Moves: 100, TimestepFs: 0.05, StepsPerMove: 10},
	},
	"cold": {
		Temperature:   50.0,
		Stability:     StabilityConfig{Steps: 100, TimestepFs: 2.0},
		Reversibility: ReversibilityConfig{Steps: 1, TimestepFs: 2.0},
		HMC:           HMCConfig{Moves: 25, TimestepFs: 0.05, StepsPerMove: 10},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
