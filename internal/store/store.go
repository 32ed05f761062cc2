package store

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/molvis/internal/stats"
)

var ErrNotFound = errors.New("store: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Run describes one finished batch render.
type Run struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	Positions string `json:"positions"`
	Scalars   string `json:"scalars"`
	Types     string `json:"types,omitempty"`
	Output    string `json:"output"`

	Mode        string  `json:"mode"`
	Palette     string  `json:"palette"`
	FPS         int     `json:"fps"`
	RotateAngle float64 `json:"rotate_angle"`
	Koeff       float64 `json:"koeff"`
	CubeSize    string  `json:"cube_size"`

	Frames   int     `json:"frames"`
	Points   int     `json:"points"`
	Encoded  int     `json:"encoded"`
	Rotation float64 `json:"rotation"`
	Elapsed  float64 `json:"elapsed_seconds"`
}

var statsHeader = []string{"frame", "cx", "cy", "cz", "radius", "mean", "min", "max", "stddev", "mean_square"}

// Save writes run metadata and the per-frame statistics table and returns
// the new run id.
func (s *Store) Save(run Run, frames []stats.Frame) (string, error) {
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now()
	}
	id, err := s.newID(run.Timestamp)
	if err != nil {
		return "", err
	}
	run.ID = id
	runDir := filepath.Join(s.baseDir, run.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	if err := WriteJSON(metaFile, run); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "stats.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteStatsCSV(csvFile, frames); err != nil {
		return "", err
	}
	return run.ID, nil
}

// newID picks the first unused run directory name for ts.
func (s *Store) newID(ts time.Time) (string, error) {
	base := "render_" + ts.Format("20060102_150405")
	id := base
	for n := 2; ; n++ {
		_, err := os.Stat(filepath.Join(s.baseDir, id))
		if os.IsNotExist(err) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]Run, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Run{}, nil
		}
		return nil, err
	}

	runs := make([]Run, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		run, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *run)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

// Path returns the location of name inside a run's directory.
func (s *Store) Path(runID, name string) string {
	return filepath.Join(s.baseDir, runID, name)
}

func (s *Store) Load(runID string) (*Run, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// LoadStats reads back the table written by Save.
func (s *Store) LoadStats(runID string) ([]stats.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "stats.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []stats.Frame{}, nil
	}

	frames := make([]stats.Frame, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(statsHeader) {
			return nil, fmt.Errorf("store: stats row %d has %d fields", i+1, len(record))
		}
		idx, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("store: stats row %d: %w", i+1, err)
		}
		vals := make([]float64, len(record)-1)
		for j, field := range record[1:] {
			if vals[j], err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("store: stats row %d: %w", i+1, err)
			}
		}
		f := stats.Frame{Index: idx, Radius: vals[3], Mean: vals[4], Min: vals[5], Max: vals[6], StdDev: vals[7], MeanSquare: vals[8]}
		f.Centroid.X, f.Centroid.Y, f.Centroid.Z = vals[0], vals[1], vals[2]
		frames = append(frames, f)
	}
	return frames, nil
}
