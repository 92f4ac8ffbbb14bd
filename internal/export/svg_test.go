package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/clothsim/internal/cloth"
)

func TestSnapshotSVG(t *testing.T) {
	series := []Series{
		{Name: "other", Color: "#00ffff", Samples: []cloth.Sample{{X: 0, Y: 0}, {X: 10, Y: 10}}},
		{Name: "ring", Color: "#ff00ff", Samples: []cloth.Sample{{X: 5, Y: 5}}},
	}

	var buf bytes.Buffer
	if err := SnapshotSVG(&buf, series, DefaultOptions()); err != nil {
		t.Fatalf("svg failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "<?xml") || !strings.HasSuffix(out, "</svg>\n") {
		t.Error("expected a complete svg document")
	}
	if n := strings.Count(out, "<circle"); n != 3 {
		t.Errorf("expected 3 circles, got %d", n)
	}
	if strings.Count(out, "<g fill=") != 2 {
		t.Error("expected one group per series")
	}
	// the middle sample lands in the middle of the picture
	if !strings.Contains(out, `cx="400.0" cy="400.0"`) {
		t.Error("expected centred ring sample")
	}
}

func TestSnapshotSVGEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := SnapshotSVG(&buf, nil, DefaultOptions()); err != nil {
		t.Fatalf("svg failed: %v", err)
	}
	if strings.Contains(buf.String(), "<circle") {
		t.Error("empty snapshot should draw nothing")
	}
}

func TestSeriesSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := SeriesSVG(&buf, []float64{1, 2, 3}, 300, 100, "#00ff00"); err != nil {
		t.Fatalf("svg failed: %v", err)
	}
	if strings.Count(buf.String(), " L") != 2 {
		t.Error("expected two line segments")
	}

	if err := SeriesSVG(&buf, []float64{1}, 300, 100, "#00ff00"); err == nil {
		t.Error("expected error for a single value")
	}
}
