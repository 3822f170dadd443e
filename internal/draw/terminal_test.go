package draw

import (
	"bytes"
	"strings"
	"testing"
)

// TestChunkWriterOffsetAndColourRuns verifies that text positions carry the
// canvas offset and that same-coloured runs share one colour sequence.
func TestChunkWriterOffsetAndColourRuns(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 4, 2)

	red := Hex("#FF0000")
	cw.WriteColorAt(1, 1, "ab", red)
	cw.WriteColorAt(1, 2, "cd", red)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\033[3;5H") {
		t.Errorf("first cursor move = %q, want row 3 col 5", got)
	}
	if n := strings.Count(got, "38;2;255;0;0m"); n != 1 {
		t.Errorf("colour sequence written %d times, want 1", n)
	}
	if !strings.HasSuffix(got, "cd"+seqReset) {
		t.Errorf("frame not closed with a reset: %q", got)
	}
	if cw.Len() != 0 {
		t.Errorf("buffer not emptied, %d bytes left", cw.Len())
	}
}

// TestChunkWriterRawOutputResetsColour verifies that raw canvas output forces
// the next text run to restate its colour.
func TestChunkWriterRawOutputResetsColour(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)

	white := Hex("#FFFFFF")
	cw.WriteColorAt(1, 1, "a", white)
	_, _ = cw.Write([]byte("\033[0m"))
	cw.WriteColorAt(2, 1, "b", white)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}

	if n := strings.Count(out.String(), "38;2;255;255;255m"); n != 2 {
		t.Errorf("colour sequence written %d times, want 2", n)
	}
}

// chunkRecorder records the size of every write.
type chunkRecorder struct {
	sizes []int
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	c.sizes = append(c.sizes, len(p))
	return len(p), nil
}

// TestWriteChunksSplitsLargeFrames verifies the chunk size limit.
func TestWriteChunksSplitsLargeFrames(t *testing.T) {
	var rec chunkRecorder
	if err := writeChunks(&rec, make([]byte, 2*maxChunkSize+10)); err != nil {
		t.Fatal(err)
	}
	want := []int{maxChunkSize, maxChunkSize, 10}
	if len(rec.sizes) != len(want) {
		t.Fatalf("wrote %d chunks, want %d", len(rec.sizes), len(want))
	}
	for i := range want {
		if rec.sizes[i] != want[i] {
			t.Errorf("chunk %d = %d bytes, want %d", i, rec.sizes[i], want[i])
		}
	}
}
