package config

import "sort"

// Presets override selected fields of DefaultConfig.
var Presets = map[string]func(*Config){
	"draft": func(c *Config) {
		c.Size = 240
		c.Duration = 10
		c.Encoder.Preset = "ultrafast"
		c.Encoder.CRF = 30
	},
	"hd": func(c *Config) {
		c.Size = 1080
		c.Encoder.Preset = "slow"
		c.Encoder.CRF = 18
	},
	"realtime": func(c *Config) {
		c.Playback = "realtime"
	},
	"gif": func(c *Config) {
		c.Output = "lines.gif"
		c.Size = 320
		c.IntervalMs = 50
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Apply applies the named preset to cfg and reports whether it exists.
func Apply(cfg *Config, name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(cfg)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
