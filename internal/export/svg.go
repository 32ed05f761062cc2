// Package export writes single-frame snapshots of a scene.
package export

import (
	"bufio"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"math"
	"sort"

	"github.com/san-kum/molvis/internal/scene"
)

type circle struct {
	x, y, r, depth float64
	fill           color.RGBA
}

// SVG draws the scene's current frame as vector graphics: the box as lines
// and each marker as an outlined circle, far to near.
func SVG(w io.Writer, sc *scene.Scene) error {
	width, height := sc.Size()
	cam := sc.Camera
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, width, height, width, height)
	if bg := sc.Background(); bg.A != 0 {
		fmt.Fprintf(bw, "<rect width=\"100%%\" height=\"100%%\" fill=\"%s\"/>\n", hex(bg))
	}

	if box := sc.Box; box != nil {
		fmt.Fprintf(bw, "<g stroke=\"%s\" stroke-width=\"1\">\n", hex(box.Color))
		for _, e := range box.Edges {
			a, b := cam.Project(e.Start, width, height), cam.Project(e.End, width, height)
			if a.Scale == 0 || b.Scale == 0 {
				continue
			}
			fmt.Fprintf(bw, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", a.X, a.Y, b.X, b.Y)
		}
		bw.WriteString("</g>\n")
	}

	mk := sc.Markers
	pxScale := math.Min(float64(width), float64(height)) / 800 * sc.MarkerScale()
	circles := make([]circle, 0, mk.Len())
	for i, p := range mk.Points {
		pr := cam.Project(p, width, height)
		if pr.Scale == 0 {
			continue
		}
		circles = append(circles, circle{x: pr.X, y: pr.Y, r: mk.Sizes[i] / 2 * pxScale * pr.Scale, depth: pr.Depth, fill: mk.Colors[i]})
	}
	sort.SliceStable(circles, func(i, j int) bool { return circles[i].depth < circles[j].depth })

	fmt.Fprintf(bw, "<g stroke=\"%s\">\n", hex(mk.EdgeColor))
	for _, c := range circles {
		fmt.Fprintf(bw, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.2f\" fill=\"%s\" stroke-width=\"%.2f\"/>\n",
			c.x, c.y, c.r, hex(c.fill), c.r*mk.EdgeWidthRel)
	}
	bw.WriteString("</g>\n</svg>\n")
	return bw.Flush()
}

// PNG writes the rasterised frame.
func PNG(w io.Writer, sc *scene.Scene) error {
	return png.Encode(w, sc.Render())
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
