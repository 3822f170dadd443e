package object

import (
	"math/rand"

	"github.com/tomz197/spacecatcher/internal/draw"
)

// Planet radius range, uniform in [min, max).
const (
	PlanetRadiusMin = 35.0
	PlanetRadiusMax = 65.0
)

// PlanetColors are the possible planet surface colours.
var PlanetColors = [...]draw.Color{
	draw.Hex("#8B0000"),
	draw.Hex("#4B0082"),
	draw.Hex("#323232"),
}

// Planet is a hazard: touching one ends the game.
type Planet struct {
	Faller
	Color draw.Color
}

// NewPlanet creates a planet well above the field, staggered so planets do
// not arrive together.
func NewPlanet(ctx UpdateContext) *Planet {
	p := &Planet{}
	p.Reset(ctx)
	p.Pos.Y = rand.Float64()*-1000 - 100
	return p
}

// Reset picks a new size, colour, column and speed and moves the planet
// above the field.
func (p *Planet) Reset(ctx UpdateContext) {
	radius := randRange(PlanetRadiusMin, PlanetRadiusMax)
	p.Drop(ctx.Screen, radius, ctx.Profile.PlanetSpeedMin, ctx.Profile.PlanetSpeedMax)
	p.Color = PlanetColors[rand.Intn(len(PlanetColors))]
}

// Update moves the planet down and recycles it once it has left the field.
func (p *Planet) Update(ctx UpdateContext) {
	p.Fall()
	Recycle(ctx, p)
}

// Draw renders the planet body, two craters and a red warning outline.
func (p *Planet) Draw(r draw.Renderer) {
	x, y := p.Pos.X, p.Pos.Y

	r.Submit(draw.Circle(x, y, p.Radius, p.Color))
	r.Submit(draw.Circle(x-15, y-15, 10, ColorBlack).WithOpacity(0.4))
	r.Submit(draw.Circle(x+20, y+10, 15, ColorBlack).WithOpacity(0.4))
	r.Submit(draw.Ring(x, y, p.Radius, ColorRed))
}
