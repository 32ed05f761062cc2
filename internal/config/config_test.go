package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FPS != 20 {
		t.Errorf("expected fps 20, got %d", cfg.FPS)
	}
	if !cfg.Realtime || !cfg.ShowTemp {
		t.Error("realtime and showtemp should default to true")
	}
	if cfg.RotateAngle != 3.0 {
		t.Errorf("expected rotate angle 3, got %v", cfg.RotateAngle)
	}
	if cfg.Output != "out.mp4" {
		t.Errorf("expected out.mp4, got %s", cfg.Output)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestParseCubeSize(t *testing.T) {
	tests := []struct {
		in   string
		want Cube
		err  bool
	}{
		{"1000x1000x1000", Cube{1000, 1000, 1000}, false},
		{"10x20x30", Cube{10, 20, 30}, false},
		{"500", Cube{500, 500, 500}, false},
		{" 8X9X10 ", Cube{8, 9, 10}, false},
		{"10x20", Cube{}, true},
		{"0x1x1", Cube{}, true},
		{"-5", Cube{}, true},
		{"axbxc", Cube{}, true},
		{"", Cube{}, true},
	}

	for _, tt := range tests {
		got, err := ParseCubeSize(tt.in)
		if tt.err {
			if !errors.Is(err, ErrCubeSize) {
				t.Errorf("ParseCubeSize(%q): expected ErrCubeSize, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseCubeSize(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"huge fps", func(c *Config) { c.FPS = 2_000_000_000 }},
		{"negative koeff", func(c *Config) { c.Koeff = -1 }},
		{"bad backend", func(c *Config) { c.Backend = "web" }},
		{"bad output", func(c *Config) { c.Realtime = false; c.Output = "out.avi" }},
		{"zero width", func(c *Config) { c.Render.Width = 0 }},
		{"zero marker size", func(c *Config) { c.Render.MarkerSize = 0 }},
		{"zero range factor", func(c *Config) { c.Scene.RangeFactor = 0 }},
		{"no palette", func(c *Config) { c.Colors.Palette = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.CubeSize = "1x2"
	if err := cfg.Validate(); !errors.Is(err, ErrCubeSize) {
		t.Errorf("expected ErrCubeSize, got %v", err)
	}
}

func TestLoadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "molvis.yaml")
	yaml := []byte("fps: 30\nrealtime: false\noutput: run.gif\ncolors:\n  stops:\n    - {pos: 0, color: black}\n    - {pos: 1, color: red}\n")
	if err := os.WriteFile(path, yaml, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FPS != 30 || cfg.Realtime || cfg.Output != "run.gif" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.Colors.Stops) != 2 || cfg.Colors.Stops[1].Color != "red" {
		t.Errorf("unexpected stops %+v", cfg.Colors.Stops)
	}
	// untouched fields keep defaults
	if cfg.RotateAngle != DefaultRotateAngle || cfg.Render.Width != DefaultWidth {
		t.Errorf("defaults lost: %+v", cfg)
	}

	out := filepath.Join(t.TempDir(), "saved.yaml")
	if err := Save(out, cfg); err != nil {
		t.Fatal(err)
	}
	again, err := Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if again.FPS != 30 || again.Output != "run.gif" {
		t.Errorf("round trip lost values: %+v", again)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("typed")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if !cfg.Scene.Recenter || cfg.Colors.Palette != "heat" {
		t.Errorf("unexpected typed preset %+v", cfg)
	}

	// presets are fresh copies
	cfg.FPS = 99
	if GetPreset("typed").FPS == 99 {
		t.Error("preset shared state between calls")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 3 || presets[0] != "classic" {
		t.Errorf("unexpected presets %v", presets)
	}
	for _, name := range presets {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
