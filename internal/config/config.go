package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS         = 20
	// MaxFPS keeps the frame period at a usable whole number of nanoseconds.
	MaxFPS             = 1000
	DefaultRotateAngle = 3.0
	DefaultCubeSize    = "1000x1000x1000"
	DefaultKoeff       = 1.0
	DefaultOutput      = "out.mp4"
	DefaultPalette     = "heat"
	DefaultWidth       = 800
	DefaultHeight      = 800
	DefaultMarkerSize  = 1.28
	DefaultMarkerScale = 3.0
	DefaultRangeFactor = 1.0
	// ReferenceScale is divided by the camera scale factor to shrink markers
	// as the interactive view zooms out.
	ReferenceScale = 1650.0
)

var (
	ErrInvalid  = errors.New("config: invalid value")
	ErrCubeSize = errors.New("config: cube size must be WxHxD or a single positive integer")
)

type Config struct {
	FPS         int          `yaml:"fps"`
	Realtime    bool         `yaml:"realtime"`
	ShowTemp    bool         `yaml:"show_temp"`
	RotateAngle float64      `yaml:"rotate_angle"`
	CubeSize    string       `yaml:"cube_size"`
	Koeff       float64      `yaml:"koeff"`
	Output      string       `yaml:"output"`
	Backend     string       `yaml:"backend"`
	Scene       SceneConfig  `yaml:"scene"`
	Render      RenderConfig `yaml:"render"`
	Colors      ColorConfig  `yaml:"colors"`
}

type SceneConfig struct {
	Recenter    bool    `yaml:"recenter"`
	RangeFactor float64 `yaml:"range_factor"`
}

type RenderConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Background  string  `yaml:"background"`
	BoxColor    string  `yaml:"box_color"`
	MarkerSize  float64 `yaml:"marker_size"`
	MarkerScale float64 `yaml:"marker_scale"`
}

// ColorConfig picks a built-in palette, or defines one when Stops is set.
type ColorConfig struct {
	Palette string      `yaml:"palette"`
	Blend   string      `yaml:"blend"`
	Stops   []StopValue `yaml:"stops"`
}

type StopValue struct {
	Pos   float64 `yaml:"pos"`
	Color string  `yaml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:         DefaultFPS,
		Realtime:    true,
		ShowTemp:    true,
		RotateAngle: DefaultRotateAngle,
		CubeSize:    DefaultCubeSize,
		Koeff:       DefaultKoeff,
		Output:      DefaultOutput,
		Backend:     "gui",
		Scene: SceneConfig{
			RangeFactor: DefaultRangeFactor,
		},
		Render: RenderConfig{
			Width:       DefaultWidth,
			Height:      DefaultHeight,
			Background:  "white",
			BoxColor:    "black",
			MarkerSize:  DefaultMarkerSize,
			MarkerScale: DefaultMarkerScale,
		},
		Colors: ColorConfig{
			Palette: DefaultPalette,
			Blend:   "rgb",
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field once at startup.
func (c *Config) Validate() error {
	if c.FPS <= 0 || c.FPS > MaxFPS {
		return fmt.Errorf("%w: fps must be in 1..%d, got %d", ErrInvalid, MaxFPS, c.FPS)
	}
	if c.Koeff <= 0 {
		return fmt.Errorf("%w: koeff must be positive, got %v", ErrInvalid, c.Koeff)
	}
	if _, err := c.Cube(); err != nil {
		return err
	}
	switch c.Backend {
	case "gui", "tui":
	default:
		return fmt.Errorf("%w: backend must be gui or tui, got %q", ErrInvalid, c.Backend)
	}
	if !c.Realtime {
		switch ext := strings.ToLower(filepath.Ext(c.Output)); ext {
		case ".mp4", ".mkv", ".webm", ".gif", ".png", ".apng":
		default:
			return fmt.Errorf("%w: unsupported output extension %q", ErrInvalid, ext)
		}
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: render size %dx%d", ErrInvalid, c.Render.Width, c.Render.Height)
	}
	if c.Render.MarkerSize <= 0 || c.Render.MarkerScale <= 0 {
		return fmt.Errorf("%w: marker size and scale must be positive", ErrInvalid)
	}
	if c.Scene.RangeFactor <= 0 {
		return fmt.Errorf("%w: range factor must be positive, got %v", ErrInvalid, c.Scene.RangeFactor)
	}
	if c.Colors.Palette == "" && len(c.Colors.Stops) == 0 {
		return fmt.Errorf("%w: either a palette or color stops are required", ErrInvalid)
	}
	return nil
}

// Cube is the simulation container size.
type Cube struct {
	W, H, D float64
}

// Cube parses CubeSize.
func (c *Config) Cube() (Cube, error) {
	return ParseCubeSize(c.CubeSize)
}

// ParseCubeSize accepts "WxHxD" or a single integer used for every side.
func ParseCubeSize(s string) (Cube, error) {
	parts := strings.Split(strings.TrimSpace(strings.ToLower(s)), "x")
	if len(parts) != 1 && len(parts) != 3 {
		return Cube{}, fmt.Errorf("%w: %q", ErrCubeSize, s)
	}
	dims := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v <= 0 {
			return Cube{}, fmt.Errorf("%w: %q", ErrCubeSize, s)
		}
		dims[i] = float64(v)
	}
	if len(dims) == 1 {
		return Cube{W: dims[0], H: dims[0], D: dims[0]}, nil
	}
	return Cube{W: dims[0], H: dims[1], D: dims[2]}, nil
}
