package config

var Presets = map[string]*Config{
	// Quick look: few conformers, coarse moves.
	"quick": {
		Spinner: SpinnerConfig{
			StepSize: 1.0, RotationStepSize: 1.5,
			NumConformers: 20, MaxAttempts: 1000, Beta: 2,
		},
		Potential: PotentialConfig{Type: "lj", Epsilon: 5},
		Output:    OutputConfig{Trajectory: "conformers.xyz"},
	},
	// Careful refinement around an already-reasonable placement.
	"tight": {
		Spinner: SpinnerConfig{
			StepSize: 0.2, RotationStepSize: 0.3,
			NumConformers: 200, MaxAttempts: 50000, Beta: 5,
		},
		Potential: PotentialConfig{Type: "lj", Epsilon: 5},
		Output:    OutputConfig{Trajectory: "conformers.xyz"},
	},
	// Soft repulsion at the start so a clashing initial placement can
	// escape, ramping to full strength over the first thousand scores.
	"anneal": {
		Spinner: SpinnerConfig{
			StepSize: 0.8, RotationStepSize: 1.0,
			NumConformers: 100, MaxAttempts: 20000, Beta: 2,
		},
		Potential: PotentialConfig{
			Type: "annealed", Epsilon: 5,
			AnnealStart: 0.1, AnnealOver: 1000,
		},
		Output: OutputConfig{Trajectory: "conformers.xyz"},
	},
}

// GetPreset returns a copy of a named preset, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
