package config

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed presets/*.yaml
var presetFiles embed.FS

// presetNames lists the registry in the order Presets() reports them.
var presetNames = []string{"earthlike", "archipelago", "pangaea"}

// Preset returns a named, deterministic starting Args, analogous to
// tw-backend/internal/combat/config.Default but parameterized by name and
// backed by the embedded YAML files in config/presets, the way pthm-soup's
// config.Load starts from an embedded defaults.yaml before layering a
// user file on top.
func Preset(name string) (Args, error) {
	data, err := presetFiles.ReadFile("presets/" + name + ".yaml")
	if err != nil {
		return Args{}, fmt.Errorf("unknown preset %q: %w", name, err)
	}
	a := Default()
	if err := yaml.Unmarshal(data, &a); err != nil {
		return Args{}, fmt.Errorf("parsing preset %q: %w", name, err)
	}
	return a, nil
}

// Presets returns the names of every registered preset, in registry order.
func Presets() []string {
	out := make([]string, len(presetNames))
	copy(out, presetNames)
	return out
}
