package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/molvis/internal/stats"
)

func sampleFrames() []stats.Frame {
	return []stats.Frame{
		{Index: 0, Centroid: r3.Vec{X: 1, Y: 2, Z: 3}, Radius: 0.5, Mean: 2, Min: 1, Max: 3, StdDev: 1.4142135623730951, MeanSquare: 5},
		{Index: 1, Centroid: r3.Vec{X: -1}, Mean: 0.25, Max: 1},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(Run{Positions: "pos.npy", Scalars: "speed.npy", Output: "out.gif", FPS: 20, Frames: 4, Encoded: 3, Rotation: 9}, sampleFrames())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	run, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if run.ID != runID || run.Output != "out.gif" || run.Encoded != 3 || run.Rotation != 9 {
		t.Errorf("unexpected run %+v", run)
	}
	if run.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	frames, err := st.LoadStats(runID)
	if err != nil {
		t.Fatalf("load stats failed: %v", err)
	}
	want := sampleFrames()
	if len(frames) != len(want) {
		t.Fatalf("expected %d frames, got %d", len(want), len(frames))
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frame %d: got %+v, want %+v", i, frames[i], want[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	first, err := st.Save(Run{Timestamp: ts}, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save(Run{Timestamp: ts}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Errorf("run ids collide: %s", first)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID, err := st.Save(Run{}, sampleFrames())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "stats.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := st.LoadStats("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteStatsCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStatsCSV(&buf, sampleFrames()); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "frame,cx,cy,cz") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0,1,2,3,0.5,2,1,3,") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestStoreSaveUnreadableBase(t *testing.T) {
	// a regular file where the base directory should be makes every
	// lookup fail with something other than not-exist
	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := New(filepath.Join(file, "runs")).Save(Run{Output: "out.gif"}, sampleFrames())
		done <- err
	}()
	select {
	case err := <-done:
		if err == nil {
			t.Error("expected an error for an unusable base directory")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("save did not return")
	}
}
