package tui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille patterns pack 2x4 dots per cell:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille grid with one colour per cell. Width and Height are
// in cells; dot coordinates span (2*Width) x (4*Height).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]color.RGBA
	depth         [][]float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h}
	c.Grid = make([][]rune, h)
	c.Colors = make([][]color.RGBA, h)
	c.depth = make([][]float64, h)
	for i := 0; i < h; i++ {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]color.RGBA, w)
		c.depth[i] = make([]float64, w)
	}
	c.Clear()
	return c
}

// Dots returns the dot resolution.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = color.RGBA{}
			c.depth[i][j] = math.Inf(-1)
		}
	}
}

// Set lights the dot at (x, y). The cell takes the colour of its nearest
// dot; larger depth is nearer.
func (c *Canvas) Set(x, y int, col color.RGBA, depth float64) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.Width || cy >= c.Height {
		return
	}
	c.Grid[cy][cx] |= pixelMap[y%4][x%2]
	if depth >= c.depth[cy][cx] {
		c.depth[cy][cx] = depth
		c.Colors[cy][cx] = col
	}
}

// Disc lights every dot within r of (x, y); r below one dot sets a single dot.
func (c *Canvas) Disc(x, y, r float64, col color.RGBA, depth float64) {
	ix, iy := int(math.Round(x)), int(math.Round(y))
	ir := int(r)
	if ir < 1 {
		c.Set(ix, iy, col, depth)
		return
	}
	r2 := r * r
	for dy := -ir; dy <= ir; dy++ {
		for dx := -ir; dx <= ir; dx++ {
			if float64(dx*dx+dy*dy) <= r2 {
				c.Set(ix+dx, iy+dy, col, depth)
			}
		}
	}
}

// Line draws with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int, col color.RGBA, depth float64) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for n := 0; n <= dx+dy; n++ {
		c.Set(x0, y0, col, depth)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the grid, colouring runs of cells that share a colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if col := c.Colors[i][start]; col.A != 0 {
				run = lipgloss.NewStyle().Foreground(hex(col)).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
