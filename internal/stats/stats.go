// Package stats summarises a dataset frame by frame.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/molvis/internal/dataset"
)

type Frame struct {
	Index    int
	Centroid r3.Vec
	// Radius of gyration about the centroid.
	Radius float64

	Mean, Min, Max, StdDev float64
	// MeanSquare is the mean of squared scalars. When the scalars are
	// speeds it is proportional to the kinetic temperature.
	MeanSquare float64
}

// Summary covers the whole dataset.
type Summary struct {
	Frames, Points int
	PerFrame       bool
	Bounds         r3.Box
	MaxAbs         float64
	ScalarMin      float64
	ScalarMax      float64
	TypeCounts     map[int]int
}

// Compute returns one Frame per position frame. Constant scalars are
// repeated for every frame. Frames are summarised in parallel.
func Compute(ds *dataset.Dataset) ([]Frame, error) {
	n := ds.Frames.Len()
	out := make([]Frame, n)
	errs := make([]error, n)
	parallelFor(n, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			pts, err := ds.Frames.At(i)
			if err != nil {
				errs[i] = err
				continue
			}
			row, err := ds.Scalars.Row(i)
			if err != nil {
				errs[i] = err
				continue
			}
			out[i] = frame(i, pts, row)
		}
	})
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func frame(i int, pts dataset.Frame, row []float64) Frame {
	f := Frame{Index: i}
	if len(pts) > 0 {
		for _, p := range pts {
			f.Centroid = r3.Add(f.Centroid, p)
		}
		f.Centroid = r3.Scale(1/float64(len(pts)), f.Centroid)

		var sq float64
		for _, p := range pts {
			d := r3.Sub(p, f.Centroid)
			sq += r3.Dot(d, d)
		}
		f.Radius = math.Sqrt(sq / float64(len(pts)))
	}
	if len(row) > 0 {
		f.Mean = stat.Mean(row, nil)
		if len(row) > 1 {
			f.StdDev = stat.StdDev(row, nil)
		}
		f.Min = floats.Min(row)
		f.Max = floats.Max(row)
		f.MeanSquare = floats.Dot(row, row) / float64(len(row))
	}
	return f
}

// Summarize collects dataset-wide figures.
func Summarize(ds *dataset.Dataset) Summary {
	s := Summary{
		Frames:   ds.Frames.Len(),
		Points:   ds.Frames.Points(),
		PerFrame: ds.Scalars.PerFrame(),
		Bounds:   ds.Frames.Bounds(),
		MaxAbs:   ds.Frames.MaxAbs(),
	}
	s.ScalarMin, s.ScalarMax = scalarRange(ds.Scalars)
	if ds.Types != nil {
		s.TypeCounts = make(map[int]int)
		for _, t := range ds.Types {
			s.TypeCounts[t]++
		}
	}
	return s
}

// TypeIDs returns the keys of s.TypeCounts in ascending order.
func (s Summary) TypeIDs() []int {
	ids := make([]int, 0, len(s.TypeCounts))
	for t := range s.TypeCounts {
		ids = append(ids, t)
	}
	sort.Ints(ids)
	return ids
}

func scalarRange(sc *dataset.Scalars) (lo, hi float64) {
	first := true
	for i := 0; i < sc.Frames(); i++ {
		row, err := sc.Row(i)
		if err != nil || len(row) == 0 {
			continue
		}
		mn, mx := floats.Min(row), floats.Max(row)
		if first || mn < lo {
			lo = mn
		}
		if first || mx > hi {
			hi = mx
		}
		first = false
	}
	return lo, hi
}

// Series extracts one column of a stats table for plotting.
func Series(frames []Frame, pick func(Frame) float64) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = pick(f)
	}
	return out
}
