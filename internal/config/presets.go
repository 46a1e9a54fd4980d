package config

import "sort"

func preset(edit func(*Config)) *Config {
	cfg := DefaultConfig()
	edit(cfg)
	return cfg
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"calm": preset(func(c *Config) {
		c.Simulation.G = 0.5
		c.Initial = InitialConfig{Planets: 4}
		c.Grid.Distortion = 10
	}),
	"binary": preset(func(c *Config) {
		c.Integrator = "leapfrog"
		c.Simulation.Softening = 1
		c.Initial = InitialConfig{Stars: 2}
	}),
	"cluster": preset(func(c *Config) {
		c.Simulation.Softening = 5
		c.Spawn.Y.Max = 550
		c.Initial = InitialConfig{Planets: 12, Stars: 1}
	}),
	"heavy": preset(func(c *Config) {
		c.Integrator = "rk4"
		c.Simulation.Softening = 2
		c.Initial = InitialConfig{Stars: 4, Planets: 2}
		c.Grid.Spacing = 25
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
