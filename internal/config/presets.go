package config

// Presets are ready-made run configurations per built-in model.
var Presets = map[string]map[string]*Config{
	"Decay": {
		"default": {
			Model: "Decay", Interface: "cs", StopTime: 1.0, StepSize: 0.01,
			Outputs: []string{"x"},
		},
		"long": {
			Model: "Decay", Interface: "cs", StopTime: 10.0, StepSize: 0.01,
			Outputs: []string{"x", "der(x)"},
		},
	},
	"BouncingBall": {
		"default": {
			Model: "BouncingBall", Interface: "cs", StopTime: 3.0, StepSize: 0.01,
			Outputs: []string{"h", "v"},
		},
		"events": {
			Model: "BouncingBall", Interface: "cs", StopTime: 3.0, StepSize: 0.1,
			Outputs: []string{"h", "v"}, EventMode: true, EarlyReturn: true,
		},
	},
	"VanDerPol": {
		"limit-cycle": {
			Model: "VanDerPol", Interface: "cs", StopTime: 20.0, StepSize: 0.01,
			Outputs: []string{"x0", "x1"},
		},
		"stiff": {
			Model: "VanDerPol", Interface: "cs", StopTime: 20.0, StepSize: 0.001,
			Outputs: []string{"x0", "x1"},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
