package object

import (
	"math/rand"

	"github.com/tomz197/spacecatcher/internal/draw"
)

// Star is a background dot scrolling down the field. Stars never collide.
type Star struct {
	Pos     Vector2 // Top-left corner
	Size    float64
	Speed   float64
	Opacity float64
}

// NewStar creates a star at a random height inside the field.
func NewStar(ctx UpdateContext) *Star {
	s := &Star{}
	s.Reset(ctx)
	s.Pos.Y = rand.Float64() * ctx.Screen.Height
	return s
}

// Reset re-randomises the star at the top of the field.
func (s *Star) Reset(ctx UpdateContext) {
	s.Size = randRange(1, 3)
	s.Pos.X = rand.Float64() * ctx.Screen.Width
	s.Pos.Y = 0
	s.Speed = randRange(1, 4)
	s.Opacity = randRange(0.3, 0.8)
}

// Update scrolls the star and recycles it past the bottom edge.
func (s *Star) Update(ctx UpdateContext) {
	s.Pos.Y += s.Speed
	Recycle(ctx, s)
}

// Passed reports whether the star has scrolled below the field.
func (s *Star) Passed(height float64) bool {
	return s.Pos.Y > height
}

// Draw renders a small translucent square.
func (s *Star) Draw(r draw.Renderer) {
	r.Submit(draw.Rect(s.Pos.X, s.Pos.Y, s.Size, s.Size, ColorWhite).WithOpacity(s.Opacity))
}
