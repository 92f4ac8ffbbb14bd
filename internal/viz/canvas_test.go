package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected 0x2801, got %#x", c.Grid[0][0])
	}

	c.Set(1, 3)
	if c.Grid[0][0] != 0x2881 {
		t.Errorf("expected 0x2881, got %#x", c.Grid[0][0])
	}

	if c.Filled(1, 0) {
		t.Error("second cell should be empty")
	}

	// out of range is ignored
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)
	if c.Grid[0][1] != brailleBlank {
		t.Errorf("out-of-range set leaked into %#x", c.Grid[0][1])
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(2, 1)
	c.DrawLine(0, 0, 3, 0)

	for col := 0; col < 2; col++ {
		if c.Grid[0][col] != 0x2809 {
			t.Errorf("cell %d: expected 0x2809, got %#x", col, c.Grid[0][col])
		}
	}

	c.Clear()
	if c.Filled(0, 0) || c.Filled(1, 0) {
		t.Error("clear should empty every cell")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	out := c.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len([]rune(lines[0])) != 3 {
		t.Errorf("expected 3 cells per line, got %d", len([]rune(lines[0])))
	}
}

func TestCanvasMinimumSize(t *testing.T) {
	c := NewCanvas(0, -3)
	if w, h := c.Pixels(); w != 2 || h != 4 {
		t.Errorf("expected 2x4 pixels, got %dx%d", w, h)
	}
}
