package draw

import (
	"bytes"
	"strings"
	"testing"
)

func litCount(c *Canvas) int {
	n := 0
	for _, l := range c.lit {
		if l {
			n++
		}
	}
	return n
}

func TestCanvasSubmitCircleLightsPixels(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.Submit(Circle(400, 300, 50, White))

	if litCount(c) == 0 {
		t.Fatal("expected circle to light pixels")
	}
	// Centre pixel must be lit.
	px, py := int(400*c.scaleX), int(300*c.scaleY)
	if !c.lit[py*c.termWidth+px] {
		t.Errorf("centre pixel (%d,%d) not lit", px, py)
	}
}

func TestCanvasTinyShapesLightOnePixel(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.Submit(Circle(100, 100, 1, White))
	if got := litCount(c); got != 1 {
		t.Fatalf("tiny circle lit %d pixels, want 1", got)
	}

	c.Clear()
	c.Submit(Rect(100, 100, 1, 1, White))
	if got := litCount(c); got != 1 {
		t.Fatalf("tiny rect lit %d pixels, want 1", got)
	}
}

func TestCanvasZeroOpacityIsSkipped(t *testing.T) {
	c := NewScaledCanvas(80, 30, 800, 600)
	c.Submit(Circle(400, 300, 50, White).WithOpacity(0))
	if got := litCount(c); got != 0 {
		t.Fatalf("invisible command lit %d pixels", got)
	}
}

func TestCanvasBlendsOverBackground(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetBackground(Hex("#000000"))
	c.Submit(Rect(0, 0, 1, 1, Hex("#FFFFFF")).WithOpacity(0.5))

	r, g, b := c.pixels[0].RGB255()
	if r < 120 || r > 135 || g != r || b != r {
		t.Fatalf("half-white over black = (%d,%d,%d), want mid grey", r, g, b)
	}
}

func TestCanvasRenderOnlyWritesChanges(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Submit(Rect(2, 2, 1, 1, White))

	var first bytes.Buffer
	c.Render(&first)
	if !strings.ContainsRune(first.String(), BlockUpperHalf) && !strings.ContainsRune(first.String(), BlockLowerHalf) {
		t.Fatalf("first render has no block characters: %q", first.String())
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Fatalf("unchanged frame wrote %d bytes", second.Len())
	}

	c.Clear()
	var third bytes.Buffer
	c.Render(&third)
	if !strings.Contains(third.String(), " ") {
		t.Fatalf("cleared pixel was not erased: %q", third.String())
	}
}

func TestRecorderKeepsOrder(t *testing.T) {
	var rec Recorder
	rec.Submit(Circle(0, 0, 1, White))
	rec.Submit(Rect(0, 0, 1, 1, White))
	rec.Submit(Line(Point{}, Point{X: 1, Y: 1}, White))

	want := []Shape{ShapeCircle, ShapeRect, ShapeLine}
	if len(rec.Commands) != len(want) {
		t.Fatalf("recorded %d commands, want %d", len(rec.Commands), len(want))
	}
	for i, s := range want {
		if rec.Commands[i].Shape != s {
			t.Errorf("command %d = %v, want %v", i, rec.Commands[i].Shape, s)
		}
	}

	rec.Reset()
	if len(rec.Commands) != 0 {
		t.Fatalf("Reset left %d commands", len(rec.Commands))
	}
}

func TestMarkTextDirtyRepaintsCells(t *testing.T) {
	c := NewCanvas(10, 5)
	var first bytes.Buffer
	c.Render(&first)

	c.MarkTextDirty(3, 2, 4)
	var second bytes.Buffer
	c.Render(&second)
	if got := strings.Count(second.String(), "H\033[0m "); got != 4 {
		t.Fatalf("repainted %d cells, want 4: %q", got, second.String())
	}

	// Out of range positions are ignored
	c.MarkTextDirty(0, 0, 3)
	c.MarkTextDirty(9, 6, 3)
}
