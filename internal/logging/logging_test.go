package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stderr)

	log := New("scene")
	log.Info("hidden")
	log.Notice("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("info message logged at default level")
	}
	if !strings.Contains(buf.String(), "[scene]") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	SetLevel(Debug)
	log.Debugf("frame %d", 3)
	if !strings.Contains(buf.String(), "frame 3") {
		t.Errorf("debug message missing: %q", buf.String())
	}
}

func TestVerbosity(t *testing.T) {
	tests := []struct {
		v, vv bool
		want  Level
	}{
		{false, false, Notice},
		{true, false, Info},
		{false, true, Debug},
		{true, true, Debug},
	}
	for _, tt := range tests {
		if got := Verbosity(tt.v, tt.vv); got != tt.want {
			t.Errorf("Verbosity(%v, %v) = %v, want %v", tt.v, tt.vv, got, tt.want)
		}
	}
}
