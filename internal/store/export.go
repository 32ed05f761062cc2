package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/molvis/internal/stats"
)

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteStatsCSV writes one row per frame with a header line.
func WriteStatsCSV(w io.Writer, frames []stats.Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(statsHeader); err != nil {
		return err
	}
	for _, f := range frames {
		row := []string{strconv.Itoa(f.Index)}
		for _, v := range []float64{f.Centroid.X, f.Centroid.Y, f.Centroid.Z, f.Radius, f.Mean, f.Min, f.Max, f.StdDev, f.MeanSquare} {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
