package object

import (
	"unicode/utf8"

	"github.com/tomz197/spacecatcher/internal/draw"
)

// Text is a line of overlay text drawn over the canvas.
// Coordinates are 1-based terminal positions inside the canvas area.
type Text struct {
	Col   int
	Row   int
	Value string
	Color draw.Color
}

// CenteredText creates a line whose middle sits on column centerCol.
func CenteredText(centerCol, row int, value string, c draw.Color) Text {
	return Text{Col: centerCol - utf8.RuneCountInString(value)/2, Row: row, Value: value, Color: c}
}

// Width returns the number of terminal cells the text occupies.
func (t Text) Width() int {
	return utf8.RuneCountInString(t.Value)
}

// Draw writes the text at its position, clamped to the top-left corner.
func (t Text) Draw(cw *draw.ChunkWriter) {
	if t.Value == "" {
		return
	}
	col := max(t.Col, 1)
	row := max(t.Row, 1)
	cw.WriteColorAt(col, row, t.Value, t.Color)
}
