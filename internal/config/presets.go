package config

import "sort"

// Presets are the scale-model parameter sets of the drop campaign, from
// the 1:10 test article up to the full-size body. "bfs-60" is the same
// body with the blunter 60 degree nose cone (0.75*tan(30)).
var Presets = map[string]*Config{
	"ech-10": presetCone("ech-10", 0.774, 0.075, 0.055, 0.8),
	"ech-4":  presetCone("ech-4", 3.7, 0.185, 0.1, 0.8),
	"ech-2":  presetCylinder("ech-2", 10, 0.7, 0.25, 0.9),
	"ech-1":  presetCylinder("ech-1", 37, 0.7, 0.5, 0.9),
	"bfs":    presetCone("bfs", 50, 0.75, 0.26, 0.7),
	"bfs-60": presetCone("bfs-60", 50, 0.75, 0.43, 0.7),
}

func presetCone(name string, mass, radius, height, cd float64) *Config {
	cfg := DefaultConfig()
	cfg.Object = ObjectConfig{Name: name, Shape: "cone", Mass: mass, Radius: radius, Height: height, DragCoeff: cd}
	return cfg
}

func presetCylinder(name string, mass, radius, height, cd float64) *Config {
	cfg := DefaultConfig()
	cfg.Object = ObjectConfig{Name: name, Shape: "cylinder", Mass: mass, Radius: radius, Height: height, DragCoeff: cd}
	return cfg
}

// GetPreset returns a copy of the named preset, safe for the caller to
// override, or nil when no such preset exists.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
