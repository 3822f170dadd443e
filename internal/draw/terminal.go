package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Terminal control sequences.
const (
	seqReset      = "\033[0m"
	seqClear      = "\033[0m\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// maxChunkSize is the maximum bytes written at once, below a typical MTU so
// SSH sessions receive whole frames smoothly.
const maxChunkSize = 1400

// writeChunks writes data to w in pieces of at most maxChunkSize bytes.
func writeChunks(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// ChunkWriter collects one frame of overlay text and canvas output and sends
// it to the terminal in chunks on Flush. Text positions are 1-based canvas
// coordinates; the canvas offset is added on output.
type ChunkWriter struct {
	out    *bufio.Writer
	buf    []byte
	offCol int
	offRow int
	fg     uint32 // Packed colour of the last text run, 0 after a reset
}

// NewChunkWriter creates a ChunkWriter writing to w with the given canvas
// offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		buf:    make([]byte, 0, 4096),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the canvas offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor positions the cursor at a 1-based canvas cell.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf = append(cw.buf, "\033["...)
	cw.buf = strconv.AppendInt(cw.buf, int64(row+cw.offRow), 10)
	cw.buf = append(cw.buf, ';')
	cw.buf = strconv.AppendInt(cw.buf, int64(col+cw.offCol), 10)
	cw.buf = append(cw.buf, 'H')
}

// Write appends raw output, such as a rendered canvas. Raw output may change
// the terminal style, so the next text run sets its colour again.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	cw.fg = 0
	return len(p), nil
}

// WriteColorAt writes s in bold with the given foreground colour. Consecutive
// runs of the same colour share one escape sequence.
func (cw *ChunkWriter) WriteColorAt(col, row int, s string, c Color) {
	cw.MoveCursor(col, row)
	if packed := packColor(c); packed != cw.fg {
		r, g, b := c.RGB255()
		cw.buf = append(cw.buf, "\033[0;1;38;2;"...)
		cw.buf = strconv.AppendUint(cw.buf, uint64(r), 10)
		cw.buf = append(cw.buf, ';')
		cw.buf = strconv.AppendUint(cw.buf, uint64(g), 10)
		cw.buf = append(cw.buf, ';')
		cw.buf = strconv.AppendUint(cw.buf, uint64(b), 10)
		cw.buf = append(cw.buf, 'm')
		cw.fg = packed
	}
	cw.buf = append(cw.buf, s...)
}

// Len returns the number of buffered bytes.
func (cw *ChunkWriter) Len() int {
	return len(cw.buf)
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// Flush resets the style, writes the frame in chunks and empties the buffer.
func (cw *ChunkWriter) Flush() error {
	if cw.fg != 0 {
		cw.buf = append(cw.buf, seqReset...)
		cw.fg = 0
	}
	err := writeChunks(cw.out, cw.buf)
	cw.buf = cw.buf[:0]
	if err != nil {
		return err
	}
	return cw.out.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns the size of the terminal on stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen resets the style, clears the terminal and homes the cursor.
func ClearScreen(w io.Writer) {
	_, _ = io.WriteString(w, seqClear)
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	_, _ = io.WriteString(w, seqHideCursor)
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	_, _ = io.WriteString(w, seqShowCursor)
}
