package object

import (
	"github.com/tomz197/spacecatcher/internal/config"
	"github.com/tomz197/spacecatcher/internal/draw"
	"github.com/tomz197/spacecatcher/internal/input"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// Vector2 is a position or velocity in logical field coordinates.
type Vector2 struct {
	X, Y float64
}

// Point converts v to a draw point.
func (v Vector2) Point() draw.Point {
	return draw.Point{X: v.X, Y: v.Y}
}

// Screen represents the logical field dimensions.
type Screen struct {
	Width  float64
	Height float64
}

// Field returns the standard 800x600 playfield.
func Field() Screen {
	return Screen{Width: config.FieldWidth, Height: config.FieldHeight}
}

// UpdateContext provides all the information an object needs during update
// and reset. Profile is the difficulty bound for the current playthrough.
type UpdateContext struct {
	Input   Input
	Profile config.Profile
	Screen  Screen
}

// Entity is a drawable and updatable game object.
type Entity interface {
	// Update advances the entity by one frame.
	Update(ctx UpdateContext)

	// Draw submits the entity's draw commands.
	Draw(r draw.Renderer)
}

// Recyclable is implemented by entities that are re-randomised in place
// instead of being removed when they leave the field.
type Recyclable interface {
	Entity

	// Reset re-randomises appearance and behaviour and places the entity
	// above the field. The result does not depend on the previous state.
	Reset(ctx UpdateContext)

	// Passed reports whether the entity's leading edge is strictly below a
	// field of the given height.
	Passed(height float64) bool
}

// Recycle resets e once it has left the bottom of the field and reports
// whether it did.
func Recycle(ctx UpdateContext, e Recyclable) bool {
	if !e.Passed(ctx.Screen.Height) {
		return false
	}
	e.Reset(ctx)
	return true
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseEntity returns e to its pool if it is pooled.
func ReleaseEntity(e Entity) {
	if r, ok := e.(Releasable); ok {
		r.Release()
	}
}

// Compile-time checks for the entity kinds.
var (
	_ Recyclable = (*Star)(nil)
	_ Recyclable = (*Supply)(nil)
	_ Recyclable = (*Planet)(nil)
	_ Entity     = (*Player)(nil)
	_ Entity     = (*Particle)(nil)
	_ Releasable = (*Particle)(nil)
)
