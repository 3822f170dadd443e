// Package physics provides collision detection and distance utilities.
package physics

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Rect is an axis-aligned rectangle given by its edges.
// Y grows downward, so Top <= Bottom.
type Rect struct {
	Left, Right float64
	Top, Bottom float64
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Left: x, Right: x + w, Top: y, Bottom: y + h}
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{
		Left:   r.Left + d,
		Right:  r.Right - d,
		Top:    r.Top + d,
		Bottom: r.Bottom - d,
	}
}

// ClosestPoint returns the point of r nearest to (x, y).
func (r Rect) ClosestPoint(x, y float64) (float64, float64) {
	return Clamp(x, r.Left, r.Right), Clamp(y, r.Top, r.Bottom)
}

// CircleIntersectsRect reports whether the circle at (cx, cy) with the given
// radius touches r. The circle centre is clamped onto r and the squared
// distance to that point is compared against radius². Exact tangency is not
// a hit.
func CircleIntersectsRect(cx, cy, radius float64, r Rect) bool {
	px, py := r.ClosestPoint(cx, cy)
	return DistanceSquared(cx, cy, px, py) < radius*radius
}
