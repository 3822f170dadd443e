package object

import (
	"math/rand"

	"github.com/tomz197/spacecatcher/internal/draw"
)

// Category describes one kind of supply. The three categories differ only
// in data, never in behaviour.
type Category struct {
	Name   string
	Radius float64
	Value  int
	Color  draw.Color
}

// Supply categories, picked uniformly on every (re)spawn.
var (
	SupplySmall  = Category{Name: "small", Radius: 15, Value: 10, Color: ColorGreen}
	SupplyMedium = Category{Name: "medium", Radius: 20, Value: 20, Color: ColorCyan}
	SupplyLarge  = Category{Name: "large", Radius: 25, Value: 30, Color: ColorYellow}

	Categories = [...]Category{SupplySmall, SupplyMedium, SupplyLarge}
)

// Supply is a collectible crate worth Category.Value points.
type Supply struct {
	Faller
	Category Category
}

// NewSupply creates a supply somewhere in the band above the field, so the
// first wave does not arrive at once.
func NewSupply(ctx UpdateContext) *Supply {
	s := &Supply{}
	s.Reset(ctx)
	s.Pos.Y = rand.Float64()*-500 - 50
	return s
}

// Reset picks a new category, column and speed and moves the supply above
// the field.
func (s *Supply) Reset(ctx UpdateContext) {
	s.Category = Categories[rand.Intn(len(Categories))]
	s.Drop(ctx.Screen, s.Category.Radius, ctx.Profile.SupplySpeedMin, ctx.Profile.SupplySpeedMax)
}

// Update moves the supply down and recycles it once it has left the field.
func (s *Supply) Update(ctx UpdateContext) {
	s.Fall()
	Recycle(ctx, s)
}

// Value is the score awarded on collection.
func (s *Supply) Value() int {
	return s.Category.Value
}

// Color is the supply's fill colour, inherited by its sparkles.
func (s *Supply) Color() draw.Color {
	return s.Category.Color
}

// Draw renders a glowing orb with a highlight and a white plus sign.
func (s *Supply) Draw(r draw.Renderer) {
	x, y, rad := s.Pos.X, s.Pos.Y, s.Radius

	r.Submit(draw.Circle(x, y, rad*1.4, s.Category.Color).WithOpacity(0.25))
	r.Submit(draw.Circle(x, y, rad, s.Category.Color))
	r.Submit(draw.Circle(x-rad*0.3, y-rad*0.3, rad*0.4, ColorWhite).WithOpacity(0.3))

	half := rad * 0.5
	r.Submit(draw.Line(draw.Point{X: x - half, Y: y}, draw.Point{X: x + half, Y: y}, ColorWhite))
	r.Submit(draw.Line(draw.Point{X: x, Y: y - half}, draw.Point{X: x, Y: y + half}, ColorWhite))
}
