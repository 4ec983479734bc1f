package config

import (
	"sort"

	"github.com/san-kum/dynresp/internal/dynamo"
)

var Presets = map[string]dynamo.SystemParameters{
	// m=1, c=0.1, k=1, p0=1: ωn=1, ζ=0.05
	"textbook": {Mass: 1, Damping: 0.1, Stiffness: 1, Load: 1},
	"undamped": {Mass: 1, Damping: 0, Stiffness: 1, Load: 1},
	"light":    {Mass: 2, Damping: 0.8, Stiffness: 8, Load: 4},
	"heavy":    {Mass: 1, Damping: 1.8, Stiffness: 1, Load: 1},
	"stiff":    {Mass: 0.5, Damping: 1, Stiffness: 200, Load: 10},
}

// GetPreset returns the default config with the named system, or nil.
func GetPreset(name string) *Config {
	params, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.System = params
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
