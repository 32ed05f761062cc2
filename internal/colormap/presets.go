package colormap

import (
	"fmt"
	"sort"
)

type preset struct {
	colors    []string
	positions []float64
}

var presets = map[string]preset{
	"heat": {
		colors:    []string{"lightblue", "lightgreen", "lightyellow", "orange", "red"},
		positions: []float64{0, 0.1, 0.3, 0.4, 1},
	},
	"coolwarm": {
		colors:    []string{"blue", "white", "red"},
		positions: []float64{0, 0.5, 1},
	},
	"grayscale": {
		colors:    []string{"black", "white"},
		positions: []float64{0, 1},
	},
}

// Named returns a built-in colormap.
func Named(name string) (*Colormap, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPalette, name, Names())
	}
	return New(p.colors, p.positions, BlendRGB)
}

// Names lists the built-in colormaps in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
