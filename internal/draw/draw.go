// Package draw renders draw commands to an ANSI terminal.
//
// Game objects never touch the terminal directly. They submit Commands to a
// Renderer; the Canvas rasterises them into a half-block truecolor buffer
// which is then written to any io.Writer (a local tty or an SSH session).
package draw

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an RGB colour. Opacity travels separately on each Command.
type Color = colorful.Color

// Hex parses a "#RRGGBB" colour. It panics on malformed input and is meant
// for package-level colour tables.
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("draw: bad colour %q: %v", s, err))
	}
	return c
}

// White is used for outlines and highlights.
var White = Hex("#FFFFFF")

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
