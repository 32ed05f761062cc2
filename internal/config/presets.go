package config

import "sort"

// Presets mirror the two historical visualiser variants plus a quick preview.
var Presets = map[string]func() *Config{
	// continuous coloring only, no types file
	"classic": func() *Config {
		cfg := DefaultConfig()
		cfg.Colors.Palette = "coolwarm"
		cfg.CubeSize = "1000"
		return cfg
	},
	// types file present, heat palette, recentred cube
	"typed": func() *Config {
		cfg := DefaultConfig()
		cfg.Colors.Palette = "heat"
		cfg.Scene.Recenter = true
		return cfg
	},
	"preview": func() *Config {
		cfg := DefaultConfig()
		cfg.Realtime = false
		cfg.Output = "preview.gif"
		cfg.FPS = 10
		cfg.Render.Width, cfg.Render.Height = 400, 400
		return cfg
	},
}

// GetPreset returns a fresh copy of a named preset, or nil.
func GetPreset(name string) *Config {
	mk, ok := Presets[name]
	if !ok {
		return nil
	}
	return mk()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
