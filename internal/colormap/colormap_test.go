package colormap

import (
	"errors"
	"image/color"
	"math"
	"testing"

	. "github.com/onsi/gomega"
)

func TestNamed(t *testing.T) {
	for _, name := range Names() {
		if _, err := Named(name); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
	if _, err := Named("rainbow"); !errors.Is(err, ErrUnknownPalette) {
		t.Errorf("expected ErrUnknownPalette, got %v", err)
	}
}

func TestMap_Endpoints(t *testing.T) {
	g := NewWithT(t)

	cm, err := Named("heat")
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(cm.Map(0)).To(Equal(color.RGBA{R: 0xad, G: 0xd8, B: 0xe6, A: 255}))
	g.Expect(cm.Map(1)).To(Equal(color.RGBA{R: 255, A: 255}))
	g.Expect(cm.Map(-3)).To(Equal(cm.Map(0)))
	g.Expect(cm.Map(7)).To(Equal(cm.Map(1)))
	g.Expect(cm.Map(math.NaN())).To(Equal(cm.Map(0)))
}

func TestMap_Midpoint(t *testing.T) {
	g := NewWithT(t)

	cm, err := New([]string{"black", "white"}, []float64{0, 1}, BlendRGB)
	g.Expect(err).NotTo(HaveOccurred())

	mid := cm.Map(0.5)
	g.Expect(mid.R).To(BeNumerically("~", 128, 1))
	g.Expect(mid.R).To(Equal(mid.G))
	g.Expect(mid.G).To(Equal(mid.B))
	g.Expect(mid.A).To(Equal(uint8(255)))
}

func TestMap_ExactStop(t *testing.T) {
	cm, err := Named("heat")
	if err != nil {
		t.Fatal(err)
	}
	// 0.4 is the orange stop
	if got := cm.Map(0.4); got != (color.RGBA{R: 255, G: 165, B: 0, A: 255}) {
		t.Errorf("Map(0.4) = %v, want orange", got)
	}
}

func TestMap_Pure(t *testing.T) {
	for _, blend := range []Blend{BlendRGB, BlendLab} {
		cm, err := New([]string{"blue", "white", "red"}, []float64{0, 0.5, 1}, blend)
		if err != nil {
			t.Fatal(err)
		}
		for _, v := range []float64{0, 0.13, 0.5, 0.77, 1} {
			if a, b := cm.Map(v), cm.Map(v); a != b {
				t.Errorf("%s: Map(%v) not stable: %v vs %v", blend, v, a, b)
			}
		}
	}
}

func TestMapAll(t *testing.T) {
	cm, _ := Named("grayscale")
	vs := []float64{0, 1, 0}
	out := cm.MapAll(nil, vs)
	if len(out) != 3 || out[1] != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("unexpected MapAll output %v", out)
	}
	reused := cm.MapAll(out, []float64{1})
	if len(reused) != 1 || &reused[0] != &out[0] {
		t.Error("expected MapAll to reuse dst")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		colors    []string
		positions []float64
		blend     Blend
		want      error
	}{
		{"single color", []string{"red"}, []float64{0}, BlendRGB, ErrStops},
		{"length mismatch", []string{"red", "blue"}, []float64{0}, BlendRGB, ErrStops},
		{"not starting at zero", []string{"red", "blue"}, []float64{0.1, 1}, BlendRGB, ErrStops},
		{"not ending at one", []string{"red", "blue"}, []float64{0, 0.9}, BlendRGB, ErrStops},
		{"not increasing", []string{"red", "green", "blue"}, []float64{0, 0.6, 0.5}, BlendRGB, ErrStops},
		{"repeated position", []string{"red", "green", "blue"}, []float64{0, 0, 1}, BlendRGB, ErrStops},
		{"unknown blend", []string{"red", "blue"}, []float64{0, 1}, "hsv", ErrStops},
		{"unknown color", []string{"red", "chartreuse-ish"}, []float64{0, 1}, BlendRGB, ErrUnknownColor},
		{"bad hex", []string{"red", "#zzzzzz"}, []float64{0, 1}, BlendRGB, ErrUnknownColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.colors, tt.positions, tt.blend)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	c, err := Parse(" LightBlue ")
	if err != nil {
		t.Fatal(err)
	}
	if c.Hex() != "#add8e6" {
		t.Errorf("Parse(LightBlue) = %s", c.Hex())
	}
	if _, err := Parse("#336699"); err != nil {
		t.Errorf("hex parse failed: %v", err)
	}
}

func TestFromFloat(t *testing.T) {
	if got := FromFloat(0.4, 0.4, 1); got != (color.RGBA{R: 102, G: 102, B: 255, A: 255}) {
		t.Errorf("FromFloat = %v", got)
	}
}
