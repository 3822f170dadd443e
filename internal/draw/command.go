package draw

// Shape identifies the geometry carried by a Command.
type Shape int

const (
	ShapeRect    Shape = iota // X,Y top-left corner, W,H size
	ShapeCircle               // X,Y centre, R radius, filled
	ShapeRing                 // X,Y centre, R radius, outline only
	ShapeEllipse              // X,Y centre, W,H half-axes, filled
	ShapePolygon              // Points, filled
	ShapeOutline              // Points, closed outline only
	ShapeLine                 // Points[0] to Points[1]
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	case ShapeRing:
		return "ring"
	case ShapeEllipse:
		return "ellipse"
	case ShapePolygon:
		return "polygon"
	case ShapeOutline:
		return "outline"
	case ShapeLine:
		return "line"
	default:
		return "unknown"
	}
}

// Command is a single draw instruction in logical (game) coordinates.
type Command struct {
	Shape   Shape
	X, Y    float64
	W, H    float64
	R       float64
	Points  []Point
	Color   Color
	Opacity float64 // 0 = invisible, 1 = opaque
}

// Renderer receives draw commands in submission order. It is write-only:
// the game never reads anything back from it.
type Renderer interface {
	Submit(cmd Command)
}

// Rect returns a filled rectangle command.
func Rect(x, y, w, h float64, c Color) Command {
	return Command{Shape: ShapeRect, X: x, Y: y, W: w, H: h, Color: c, Opacity: 1}
}

// Circle returns a filled circle command.
func Circle(x, y, r float64, c Color) Command {
	return Command{Shape: ShapeCircle, X: x, Y: y, R: r, Color: c, Opacity: 1}
}

// Ring returns a circle outline command.
func Ring(x, y, r float64, c Color) Command {
	return Command{Shape: ShapeRing, X: x, Y: y, R: r, Color: c, Opacity: 1}
}

// Ellipse returns a filled ellipse command with half-axes rx, ry.
func Ellipse(x, y, rx, ry float64, c Color) Command {
	return Command{Shape: ShapeEllipse, X: x, Y: y, W: rx, H: ry, Color: c, Opacity: 1}
}

// Polygon returns a filled polygon command.
func Polygon(points []Point, c Color) Command {
	return Command{Shape: ShapePolygon, Points: points, Color: c, Opacity: 1}
}

// Outline returns a closed polygon outline command.
func Outline(points []Point, c Color) Command {
	return Command{Shape: ShapeOutline, Points: points, Color: c, Opacity: 1}
}

// Line returns a line segment command.
func Line(p1, p2 Point, c Color) Command {
	return Command{Shape: ShapeLine, Points: []Point{p1, p2}, Color: c, Opacity: 1}
}

// WithOpacity returns a copy of the command with the given opacity.
func (c Command) WithOpacity(a float64) Command {
	c.Opacity = a
	return c
}

// Recorder is a Renderer that keeps every submitted command.
type Recorder struct {
	Commands []Command
}

// Submit appends cmd.
func (r *Recorder) Submit(cmd Command) {
	r.Commands = append(r.Commands, cmd)
}

// Reset drops all recorded commands, keeping the backing array.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

// Ensure Recorder and Canvas satisfy Renderer.
var (
	_ Renderer = (*Recorder)(nil)
	_ Renderer = (*Canvas)(nil)
)
