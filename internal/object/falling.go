package object

import (
	"math/rand"

	"github.com/tomz197/spacecatcher/internal/physics"
)

// Faller is the movement shared by every round object that drops from above
// the field: supplies and planets.
type Faller struct {
	Pos    Vector2 // Centre
	Speed  float64 // Pixels per frame, always positive
	Radius float64
}

// Fall advances one frame along the fall axis.
func (f *Faller) Fall() {
	f.Pos.Y += f.Speed
}

// Passed reports whether the top edge is strictly below the field bottom.
func (f *Faller) Passed(height float64) bool {
	return f.Pos.Y-f.Radius > height
}

// Drop places the object fully above the field at a random column, with a
// speed uniform in [speedMin, speedMax).
func (f *Faller) Drop(screen Screen, radius, speedMin, speedMax float64) {
	f.Radius = radius
	f.Pos.X = randRange(radius, screen.Width-radius)
	f.Pos.Y = -radius * 2
	f.Speed = randRange(speedMin, speedMax)
}

// Intersects reports whether the object's circle overlaps r.
func (f *Faller) Intersects(r physics.Rect) bool {
	return physics.CircleIntersectsRect(f.Pos.X, f.Pos.Y, f.Radius, r)
}

// randRange returns a value uniform in [lo, hi).
func randRange(lo, hi float64) float64 {
	return rand.Float64()*(hi-lo) + lo
}
