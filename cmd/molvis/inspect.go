package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/san-kum/molvis/internal/dataset"
	"github.com/san-kum/molvis/internal/stats"
	"github.com/san-kum/molvis/internal/store"
)

func loadStats(args []string) (*dataset.Dataset, []stats.Frame, error) {
	ds, err := dataset.Load(pathsFromArgs(args))
	if err != nil {
		return nil, nil, err
	}
	frames, err := stats.Compute(ds)
	if err != nil {
		return nil, nil, err
	}
	return ds, frames, nil
}

func showInfo(cmd *cobra.Command, args []string) error {
	ds, err := dataset.Load(pathsFromArgs(args))
	if err != nil {
		return err
	}
	s := stats.Summarize(ds)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Property", "Value"})
	table.Append([]string{"frames", strconv.Itoa(s.Frames)})
	table.Append([]string{"points", strconv.Itoa(s.Points)})
	table.Append([]string{"scalars", scalarKind(s.PerFrame)})
	table.Append([]string{"scalar range", fmt.Sprintf("[%.4g, %.4g]", s.ScalarMin, s.ScalarMax)})
	table.Append([]string{"max |coord|", fmt.Sprintf("%.4g", s.MaxAbs)})
	table.Append([]string{"bounds min", fmt.Sprintf("(%.4g, %.4g, %.4g)", s.Bounds.Min.X, s.Bounds.Min.Y, s.Bounds.Min.Z)})
	table.Append([]string{"bounds max", fmt.Sprintf("(%.4g, %.4g, %.4g)", s.Bounds.Max.X, s.Bounds.Max.Y, s.Bounds.Max.Z)})
	if s.TypeCounts == nil {
		table.Append([]string{"types", "none"})
	}
	for _, t := range s.TypeIDs() {
		table.Append([]string{fmt.Sprintf("type %d", t), strconv.Itoa(s.TypeCounts[t])})
	}
	table.Render()
	return nil
}

func scalarKind(perFrame bool) string {
	if perFrame {
		return "per frame"
	}
	return "constant"
}

func plotStats(cmd *cobra.Command, args []string) error {
	_, frames, err := loadStats(args)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("need at least 2 frames to plot, got %d", len(frames))
	}

	series := []struct {
		caption string
		pick    func(stats.Frame) float64
	}{
		{"mean scalar", func(f stats.Frame) float64 { return f.Mean }},
		{"max scalar", func(f stats.Frame) float64 { return f.Max }},
		{"mean squared scalar", func(f stats.Frame) float64 { return f.MeanSquare }},
		{"radius of gyration", func(f stats.Frame) float64 { return f.Radius }},
	}
	for _, s := range series {
		graph := asciigraph.Plot(stats.Series(frames, s.pick),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, frames, err := loadStats(args)
	if err != nil {
		return err
	}
	return store.WriteStatsCSV(os.Stdout, frames)
}
