package draw

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Every sub-pixel carries its own colour; commands are alpha-blended over what is
// already there (or over the background for untouched pixels).
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]
	lit            []bool  // true if the pixel was drawn this frame
	background     Color   // Blend base for untouched pixels

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	// Cells emitted by the previous Render; only changed cells are rewritten.
	prev        []cell
	forceRedraw bool

	// Reusable buffers to reduce allocations
	renderBuf       bytes.Buffer    // Buffer for batching render output
	scaledBuf       []Point         // Reusable buffer for fillPolygon scaled points
	intersectionBuf []float64       // Reusable buffer for scanline intersections
	numBuf          [20]byte        // Scratch buffer for integer formatting
}

// cell is one terminal character as emitted by Render.
// Colours are packed as 1<<24 | RGB so that zero means "terminal default".
type cell struct {
	ch     rune
	fg, bg uint32
}

// NewCanvas creates a canvas for the given terminal dimensions.
// The canvas has 2x vertical resolution (height*2 sub-pixels).
// No scaling is applied (1:1 mapping).
func NewCanvas(width, height int) *Canvas {
	return NewScaledCanvas(width, height, float64(width), float64(height*2))
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]Color, subPixelHeight*termWidth),
		lit:            make([]bool, subPixelHeight*termWidth),
		logicalWidth:   logicalWidth,
		logicalHeight:  logicalHeight,
		scaleX:         float64(termWidth) / logicalWidth,
		scaleY:         float64(subPixelHeight) / logicalHeight,
		forceRedraw:    true,
	}
}

// SetBackground sets the colour translucent commands are blended over.
func (c *Canvas) SetBackground(bg Color) {
	c.background = bg
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.lit = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.forceRedraw = true
	}

	// Update scale factors
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// ForceRedraw makes the next Render emit every non-empty cell. Call it after
// the terminal has been cleared.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// MarkTextDirty invalidates n cells starting at the 1-based canvas position
// (col, row), so the next Render repaints them over any text written there.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	r := row - 1
	if r < 0 || r >= c.termHeight || len(c.prev) != c.termWidth*c.termHeight {
		return
	}
	for x := max(col-1, 0); x < col-1+n && x < c.termWidth; x++ {
		c.prev[r*c.termWidth+x] = cell{ch: -1}
	}
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.lit)
}

// Submit rasterises a draw command. Implements Renderer.
func (c *Canvas) Submit(cmd Command) {
	if cmd.Opacity <= 0 {
		return
	}
	switch cmd.Shape {
	case ShapeRect:
		c.FillRect(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Color, cmd.Opacity)
	case ShapeCircle:
		c.FillEllipse(cmd.X, cmd.Y, cmd.R, cmd.R, cmd.Color, cmd.Opacity)
	case ShapeRing:
		c.StrokeCircle(cmd.X, cmd.Y, cmd.R, cmd.Color, cmd.Opacity)
	case ShapeEllipse:
		c.FillEllipse(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Color, cmd.Opacity)
	case ShapePolygon:
		c.DrawPolygon(cmd.Points, true, cmd.Color, cmd.Opacity)
	case ShapeOutline:
		c.DrawPolygon(cmd.Points, false, cmd.Color, cmd.Opacity)
	case ShapeLine:
		if len(cmd.Points) >= 2 {
			c.DrawLine(cmd.Points[0], cmd.Points[1], cmd.Color, cmd.Opacity)
		}
	}
}

// blendPixel paints a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) blendPixel(x, y int, col Color, alpha float64) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	i := y*c.termWidth + x
	if alpha >= 1 {
		c.pixels[i] = col
	} else {
		base := c.background
		if c.lit[i] {
			base = c.pixels[i]
		}
		c.pixels[i] = base.BlendRgb(col, alpha).Clamped()
	}
	c.lit[i] = true
}

// FillRect fills an axis-aligned rectangle given in logical coordinates.
// Anything with a positive size covers at least one pixel.
func (c *Canvas) FillRect(x, y, w, h float64, col Color, alpha float64) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x + w) * c.scaleX))
	y1 := int(math.Ceil((y + h) * c.scaleY))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.blendPixel(px, py, col, alpha)
		}
	}
}

// FillEllipse fills an ellipse centred at (cx, cy) with half-axes rx, ry.
// Shapes smaller than a pixel still light the pixel under their centre.
func (c *Canvas) FillEllipse(cx, cy, rx, ry float64, col Color, alpha float64) {
	c.ellipse(cx, cy, rx, ry, 0, col, alpha)
}

// StrokeCircle draws a one-pixel circle outline.
func (c *Canvas) StrokeCircle(cx, cy, r float64, col Color, alpha float64) {
	c.ellipse(cx, cy, r, r, 1, col, alpha)
}

// ellipse rasterises in pixel space. A positive ring width leaves the
// interior (shrunk by ring pixels) untouched.
func (c *Canvas) ellipse(cx, cy, rx, ry, ring float64, col Color, alpha float64) {
	pcx, pcy := cx*c.scaleX, cy*c.scaleY
	prx, pry := rx*c.scaleX, ry*c.scaleY
	if prx <= 0.5 || pry <= 0.5 {
		c.blendPixel(int(math.Floor(pcx)), int(math.Floor(pcy)), col, alpha)
		return
	}

	irx, iry := prx-ring, pry-ring
	hollow := ring > 0 && irx > 0 && iry > 0

	xStart := int(math.Floor(pcx - prx))
	xEnd := int(math.Ceil(pcx + prx))
	yStart := int(math.Floor(pcy - pry))
	yEnd := int(math.Ceil(pcy + pry))

	drawn := false
	for py := yStart; py <= yEnd; py++ {
		dy := float64(py) + 0.5 - pcy
		for px := xStart; px <= xEnd; px++ {
			dx := float64(px) + 0.5 - pcx
			if (dx*dx)/(prx*prx)+(dy*dy)/(pry*pry) > 1 {
				continue
			}
			if hollow && (dx*dx)/(irx*irx)+(dy*dy)/(iry*iry) < 1 {
				continue
			}
			c.blendPixel(px, py, col, alpha)
			drawn = true
		}
	}
	if !drawn {
		c.blendPixel(int(math.Floor(pcx)), int(math.Floor(pcy)), col, alpha)
	}
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col Color, alpha float64) {
	// Scale to pixel coordinates for drawing
	x1 := int(math.Floor(p1.X * c.scaleX))
	y1 := int(math.Floor(p1.Y * c.scaleY))
	x2 := int(math.Floor(p2.X * c.scaleX))
	y2 := int(math.Floor(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.blendPixel(x1, y1, col, alpha)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon on the canvas.
// If filled is true, the interior is filled using scanline algorithm.
func (c *Canvas) DrawPolygon(points []Point, filled bool, col Color, alpha float64) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col, alpha)
		return
	}

	// Draw outline
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col, alpha)
	}
}

// fillPolygon fills a polygon using scanline algorithm.
// Works in pixel space for proper scaling.
func (c *Canvas) fillPolygon(points []Point, col Color, alpha float64) {
	// Reuse or grow scaled points buffer
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]

	// Scale points to pixel coordinates
	for i, p := range points {
		scaled[i] = Point{
			X: p.X * c.scaleX,
			Y: p.Y * c.scaleY,
		}
	}

	// Find bounding box in pixel space
	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY))
	yEnd := int(math.Ceil(maxY))

	// Scanline fill in pixel space
	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5

		// Reuse intersection buffer
		intersections := c.intersectionBuf[:0]

		// Find intersections with all edges
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1 := scaled[i]
			p2 := scaled[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				x := p1.X + t*(p2.X-p1.X)
				intersections = append(intersections, x)
			}
		}

		// Store back in case it grew
		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Floor(intersections[i]))
			xEnd := int(math.Floor(intersections[i+1]))
			for x := xStart; x <= xEnd; x++ {
				c.blendPixel(x, y, col, alpha)
			}
		}
	}
}

// packColor packs a colour for cell comparison.
func packColor(col Color) uint32 {
	r, g, b := col.RGB255()
	return 1<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// cellAt builds the character for a terminal cell from its two sub-pixels.
func (c *Canvas) cellAt(col, row int) cell {
	topIdx := row*2*c.termWidth + col
	bottomY := row*2 + 1
	top := c.lit[topIdx]
	bottom := bottomY < c.subPixelHeight && c.lit[bottomY*c.termWidth+col]

	switch {
	case top && bottom:
		return cell{ch: BlockUpperHalf, fg: packColor(c.pixels[topIdx]), bg: packColor(c.pixels[bottomY*c.termWidth+col])}
	case top:
		return cell{ch: BlockUpperHalf, fg: packColor(c.pixels[topIdx])}
	case bottom:
		return cell{ch: BlockLowerHalf, fg: packColor(c.pixels[bottomY*c.termWidth+col])}
	default:
		return cell{ch: BlockEmpty}
	}
}

// Render outputs the canvas to the writer using half-block characters.
// Only cells that differ from the previous Render are written.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	total := c.termWidth * c.termHeight
	if len(c.prev) != total {
		c.prev = make([]cell, total)
		c.forceRedraw = true
	}

	for row := 0; row < c.termHeight; row++ {
		for col := 0; col < c.termWidth; col++ {
			cur := c.cellAt(col, row)
			idx := row*c.termWidth + col
			if c.forceRedraw {
				c.prev[idx] = cur
				if cur.ch == BlockEmpty {
					continue // Screen was just cleared
				}
			} else {
				if c.prev[idx] == cur {
					continue
				}
				c.prev[idx] = cur
			}
			c.writeCell(row, col, cur)
		}
	}
	c.forceRedraw = false

	if c.renderBuf.Len() == 0 {
		return
	}
	c.renderBuf.WriteString(seqReset)
	_ = writeChunks(w, c.renderBuf.Bytes())
}

// writeCell appends cursor movement, SGR colours and the cell character.
func (c *Canvas) writeCell(row, col int, cl cell) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row+1+c.offsetRow), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col+1+c.offsetCol), 10))
	c.renderBuf.WriteString("H\033[0m")
	if cl.fg != 0 {
		c.writeSGR(38, cl.fg)
	}
	if cl.bg != 0 {
		c.writeSGR(48, cl.bg)
	}
	c.renderBuf.WriteRune(cl.ch)
}

// writeSGR appends a 24-bit colour escape; code is 38 (fg) or 48 (bg).
func (c *Canvas) writeSGR(code int, packed uint32) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(code), 10))
	c.renderBuf.WriteString(";2;")
	c.renderBuf.Write(strconv.AppendUint(c.numBuf[:0], uint64(packed>>16&0xff), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendUint(c.numBuf[:0], uint64(packed>>8&0xff), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendUint(c.numBuf[:0], uint64(packed&0xff), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			// No horizontal borders, side bars span full canvas height
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}
