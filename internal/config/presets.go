package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/entropylab/internal/dynamo"
)

var Presets = map[string]dynamo.Params{
	"cold":    {Temperature: 150, Noise: 0.5, Count: 220},
	"room":    {Temperature: 300, Noise: 1.0, Count: 220},
	"hot":     {Temperature: 700, Noise: 1.5, Count: 220},
	"boiling": {Temperature: 1500, Noise: 2.5, Count: 220},
	"dense":   {Temperature: 300, Noise: 1.0, Count: 800},
	"sparse":  {Temperature: 300, Noise: 1.0, Count: 40},
}

func GetPreset(name string) (dynamo.Params, bool) {
	p, ok := Presets[name]
	return p, ok
}

// Apply overwrites the model parameters with the named preset.
func (c *Config) Apply(name string) error {
	p, ok := GetPreset(name)
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	c.Params = p
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
