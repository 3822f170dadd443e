package object

import (
	"math/rand"

	"github.com/tomz197/spacecatcher/internal/config"
	"github.com/tomz197/spacecatcher/internal/draw"
	"github.com/tomz197/spacecatcher/internal/input"
	"github.com/tomz197/spacecatcher/internal/physics"
)

// Player ship dimensions.
const (
	PlayerWidth  = 50.0
	PlayerHeight = 60.0
)

// Player is the ship at the bottom of the field. It only moves sideways.
type Player struct {
	Pos       Vector2 // Top-left corner
	Width     float64
	Height    float64
	VelocityX float64 // Derived from input every frame
}

// NewPlayer creates the ship centred horizontally, 20px above the bottom.
func NewPlayer(screen Screen) *Player {
	return &Player{
		Pos:    Vector2{X: screen.Width/2 - PlayerWidth/2, Y: screen.Height - PlayerHeight - 20},
		Width:  PlayerWidth,
		Height: PlayerHeight,
	}
}

// Update reads left/right, moves the ship and keeps it inside the field.
// Holding both directions cancels out.
func (p *Player) Update(ctx UpdateContext) {
	left := ctx.Input.IsPressed(input.KeyLeft)
	right := ctx.Input.IsPressed(input.KeyRight)

	switch {
	case left && !right:
		p.VelocityX = -ctx.Profile.PlayerSpeed
	case right && !left:
		p.VelocityX = ctx.Profile.PlayerSpeed
	default:
		p.VelocityX = 0
	}

	p.Pos.X += p.VelocityX
	p.Pos.X = physics.Clamp(p.Pos.X, 0, ctx.Screen.Width-p.Width)
}

// Bounds returns the ship's full rectangle.
func (p *Player) Bounds() physics.Rect {
	return physics.NewRect(p.Pos.X, p.Pos.Y, p.Width, p.Height)
}

// HitRegion returns the rectangle used for collisions, inset from the
// drawn bounds on every side.
func (p *Player) HitRegion() physics.Rect {
	return p.Bounds().Inset(config.HitInset)
}

// Center returns the centre of the ship.
func (p *Player) Center() Vector2 {
	return Vector2{X: p.Pos.X + p.Width/2, Y: p.Pos.Y + p.Height/2}
}

// Draw renders wings, body with outline, cockpit and a flickering flame.
func (p *Player) Draw(r draw.Renderer) {
	x, y, w, h := p.Pos.X, p.Pos.Y, p.Width, p.Height

	// Wings
	r.Submit(draw.Polygon([]draw.Point{
		{X: x, Y: y + h},
		{X: x + w, Y: y + h},
		{X: x + w/2, Y: y + h/2},
	}, ColorGray))

	// Body
	body := []draw.Point{
		{X: x + w/2, Y: y},
		{X: x + 10, Y: y + h - 5},
		{X: x + w - 10, Y: y + h - 5},
	}
	r.Submit(draw.Polygon(body, ColorBlue))
	r.Submit(draw.Outline(body, ColorWhite))

	// Cockpit
	r.Submit(draw.Ellipse(x+w/2, y+h/2-5, 5, 10, ColorCyan))

	// Flame
	flame := rand.Float64()*15 + 10
	r.Submit(draw.Polygon([]draw.Point{
		{X: x + 15, Y: y + h - 5},
		{X: x + w/2, Y: y + h - 5 + flame},
		{X: x + w - 15, Y: y + h - 5},
	}, ColorOrange))
}
