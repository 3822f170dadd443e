package object

import (
	"testing"

	"github.com/tomz197/spacecatcher/internal/config"
	"github.com/tomz197/spacecatcher/internal/draw"
	"github.com/tomz197/spacecatcher/internal/input"
)

func normalCtx() UpdateContext {
	return UpdateContext{
		Profile: config.DefaultProfiles()[config.Normal],
		Screen:  Field(),
	}
}

func TestSupplyFallsUntilRecycled(t *testing.T) {
	ctx := normalCtx()
	s := NewSupply(ctx)
	s.Pos.Y = 0

	for frame := 0; frame < 1000; frame++ {
		prevY := s.Pos.Y
		s.Update(ctx)
		if s.Pos.Y == -2*s.Radius {
			return
		}
		if s.Pos.Y <= prevY {
			t.Fatalf("frame %d: y went from %v to %v", frame, prevY, s.Pos.Y)
		}
		if s.Passed(ctx.Screen.Height) {
			t.Fatalf("frame %d: supply below field at y=%v was not recycled", frame, s.Pos.Y)
		}
	}
	t.Fatal("supply never recycled")
}

func TestPlanetRecyclesOnlyPastBottom(t *testing.T) {
	ctx := normalCtx()
	p := NewPlanet(ctx)
	p.Radius = 50
	p.Speed = 5

	// Top edge exactly on the bottom line is still inside
	p.Pos.Y = 645
	p.Update(ctx)
	if p.Pos.Y != 650 {
		t.Fatalf("planet recycled at tangent, y=%v", p.Pos.Y)
	}

	p.Update(ctx)
	if p.Pos.Y != -2*p.Radius {
		t.Fatalf("planet past bottom not recycled, y=%v", p.Pos.Y)
	}
}

func TestSupplyResetDistribution(t *testing.T) {
	ctx := normalCtx()
	s := &Supply{}
	seen := map[string]bool{}

	for i := 0; i < 2000; i++ {
		s.Reset(ctx)
		r := s.Radius
		if s.Pos.X < r || s.Pos.X >= ctx.Screen.Width-r {
			t.Fatalf("x=%v outside [%v, %v)", s.Pos.X, r, ctx.Screen.Width-r)
		}
		if s.Pos.Y != -2*r {
			t.Fatalf("y=%v, want %v", s.Pos.Y, -2*r)
		}
		if s.Speed < ctx.Profile.SupplySpeedMin || s.Speed >= ctx.Profile.SupplySpeedMax {
			t.Fatalf("speed=%v outside [%v, %v)", s.Speed, ctx.Profile.SupplySpeedMin, ctx.Profile.SupplySpeedMax)
		}
		if s.Radius != s.Category.Radius {
			t.Fatalf("radius %v does not match category %s", s.Radius, s.Category.Name)
		}
		seen[s.Category.Name] = true
	}

	for _, c := range Categories {
		if !seen[c.Name] {
			t.Errorf("category %s never picked", c.Name)
		}
	}
}

func TestCategoryTable(t *testing.T) {
	tests := []struct {
		cat    Category
		radius float64
		value  int
		hex    string
	}{
		{SupplySmall, 15, 10, "#00ff64"},
		{SupplyMedium, 20, 20, "#00ffff"},
		{SupplyLarge, 25, 30, "#ffd700"},
	}
	for _, tt := range tests {
		if tt.cat.Radius != tt.radius || tt.cat.Value != tt.value || tt.cat.Color.Hex() != tt.hex {
			t.Errorf("%s = %+v, want r=%v value=%d colour=%s", tt.cat.Name, tt.cat, tt.radius, tt.value, tt.hex)
		}
	}
}

func TestPlanetResetDistribution(t *testing.T) {
	ctx := normalCtx()
	p := &Planet{}

	for i := 0; i < 2000; i++ {
		p.Reset(ctx)
		if p.Radius < PlanetRadiusMin || p.Radius >= PlanetRadiusMax {
			t.Fatalf("radius=%v outside [35, 65)", p.Radius)
		}
		if p.Pos.Y != -2*p.Radius {
			t.Fatalf("y=%v, want %v", p.Pos.Y, -2*p.Radius)
		}
		if p.Speed < ctx.Profile.PlanetSpeedMin || p.Speed >= ctx.Profile.PlanetSpeedMax {
			t.Fatalf("speed=%v outside planet range", p.Speed)
		}
		found := false
		for _, c := range PlanetColors {
			if c == p.Color {
				found = true
			}
		}
		if !found {
			t.Fatalf("colour %s not in palette", p.Color.Hex())
		}
	}
}

func TestInitialStagger(t *testing.T) {
	ctx := normalCtx()
	for i := 0; i < 500; i++ {
		if y := NewSupply(ctx).Pos.Y; y > -50 || y <= -550 {
			t.Fatalf("supply starts at y=%v, want (-550, -50]", y)
		}
		if y := NewPlanet(ctx).Pos.Y; y > -100 || y <= -1100 {
			t.Fatalf("planet starts at y=%v, want (-1100, -100]", y)
		}
		if y := NewStar(ctx).Pos.Y; y < 0 || y >= ctx.Screen.Height {
			t.Fatalf("star starts at y=%v, want [0, H)", y)
		}
	}
}

func TestStarRecycle(t *testing.T) {
	ctx := normalCtx()
	s := NewStar(ctx)
	s.Pos.Y = ctx.Screen.Height
	s.Speed = 1
	s.Update(ctx)

	if s.Pos.Y != 0 {
		t.Fatalf("star past bottom at y=%v, want reset to 0", s.Pos.Y)
	}
	if s.Size < 1 || s.Size >= 3 || s.Speed < 1 || s.Speed >= 4 || s.Opacity < 0.3 || s.Opacity >= 0.8 {
		t.Fatalf("star attributes out of range: %+v", s)
	}
}

func TestPlayerMovementAndClamp(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		left  bool
		right bool
		wantX float64
		wantV float64
	}{
		{"left", 100, true, false, 91, -9},
		{"right", 100, false, true, 109, 9},
		{"both cancel", 100, true, true, 100, 0},
		{"neither", 100, false, false, 100, 0},
		{"clamp left", 3, true, false, 0, -9},
		{"clamp right", 745, false, true, 750, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := normalCtx()
			ctx.Input = input.Input{Left: tt.left, Right: tt.right}
			p := NewPlayer(ctx.Screen)
			p.Pos.X = tt.x

			p.Update(ctx)
			if p.Pos.X != tt.wantX || p.VelocityX != tt.wantV {
				t.Errorf("x=%v v=%v, want x=%v v=%v", p.Pos.X, p.VelocityX, tt.wantX, tt.wantV)
			}
		})
	}
}

func TestPlayerGeometry(t *testing.T) {
	p := NewPlayer(Field())
	if p.Pos.X != 375 || p.Pos.Y != 520 {
		t.Fatalf("start at (%v,%v), want (375,520)", p.Pos.X, p.Pos.Y)
	}

	hit := p.HitRegion()
	if hit.Left != 385 || hit.Right != 415 || hit.Top != 530 || hit.Bottom != 570 {
		t.Fatalf("hit region = %+v", hit)
	}
	if c := p.Center(); c.X != 400 || c.Y != 550 {
		t.Fatalf("centre = %+v, want (400,550)", c)
	}
}

func TestPlayerDrawOrder(t *testing.T) {
	var rec draw.Recorder
	NewPlayer(Field()).Draw(&rec)

	want := []draw.Shape{draw.ShapePolygon, draw.ShapePolygon, draw.ShapeOutline, draw.ShapeEllipse, draw.ShapePolygon}
	if len(rec.Commands) != len(want) {
		t.Fatalf("player drew %d commands, want %d", len(rec.Commands), len(want))
	}
	for i, s := range want {
		if rec.Commands[i].Shape != s {
			t.Errorf("command %d = %v, want %v", i, rec.Commands[i].Shape, s)
		}
	}
	if rec.Commands[4].Color != ColorOrange {
		t.Errorf("flame colour = %s, want orange", rec.Commands[4].Color.Hex())
	}
}

func TestParticleSystemDecay(t *testing.T) {
	var ps ParticleSystem
	var rec draw.Recorder
	ctx := normalCtx()

	ps.Burst(Vector2{X: 100, Y: 100}, ColorGreen, config.SupplyBurstSize)
	if ps.Len() != config.SupplyBurstSize {
		t.Fatalf("burst spawned %d particles, want %d", ps.Len(), config.SupplyBurstSize)
	}
	for _, p := range ps.Particles() {
		if p.Life != 1 || p.Color != ColorGreen || p.Pos != (Vector2{X: 100, Y: 100}) {
			t.Fatalf("fresh particle = %+v", p)
		}
		if p.Vel.X < -3 || p.Vel.X >= 3 || p.Vel.Y < -3 || p.Vel.Y >= 3 {
			t.Fatalf("velocity out of range: %+v", p.Vel)
		}
		if p.Size < 2 || p.Size >= 5 || p.Decay < 0.01 || p.Decay >= 0.04 {
			t.Fatalf("size/decay out of range: %+v", p)
		}
	}

	prev := ps.Len()
	for frame := 0; frame < 120 && ps.Len() > 0; frame++ {
		rec.Reset()
		ps.Step(ctx, &rec)
		if ps.Len() > prev {
			t.Fatalf("frame %d: particle count grew from %d to %d", frame, prev, ps.Len())
		}
		if len(rec.Commands) != prev {
			t.Fatalf("frame %d: drew %d particles, want %d", frame, len(rec.Commands), prev)
		}
		for _, p := range ps.Particles() {
			if p.Dead() {
				t.Fatalf("frame %d: dead particle kept", frame)
			}
		}
		prev = ps.Len()
	}

	if ps.Len() != 0 {
		t.Fatalf("%d particles alive after 120 frames", ps.Len())
	}
}

func TestParticleShrinksAndFades(t *testing.T) {
	p := NewParticle(Vector2{}, ColorOrange)
	size, life := p.Size, p.Life
	p.Update(normalCtx())

	if p.Size != size*config.ParticleShrinkRate {
		t.Errorf("size %v -> %v, want x%v", size, p.Size, config.ParticleShrinkRate)
	}
	if p.Life != life-p.Decay {
		t.Errorf("life %v -> %v, decay %v", life, p.Life, p.Decay)
	}

	var rec draw.Recorder
	p.Draw(&rec)
	if got := rec.Commands[0].Opacity; got != p.Life {
		t.Errorf("opacity %v, want life %v", got, p.Life)
	}
	p.Release()
}

func TestParticleSystemClear(t *testing.T) {
	var ps ParticleSystem
	ps.Burst(Vector2{}, ColorOrange, config.CrashBurstSize)
	ps.Clear()
	if ps.Len() != 0 {
		t.Fatalf("Clear left %d particles", ps.Len())
	}
}

func TestCenteredText(t *testing.T) {
	txt := CenteredText(40, 3, "GAME OVER", ColorWhite)
	if txt.Col != 36 || txt.Width() != 9 {
		t.Fatalf("CenteredText = col %d width %d, want 36 and 9", txt.Col, txt.Width())
	}
}

func TestParticleSystemStepKeepsSurvivorsInOrder(t *testing.T) {
	var ps ParticleSystem
	ps.Burst(Vector2{}, ColorOrange, 5)
	all := ps.Particles()
	survivors := []*Particle{all[0], all[2], all[4]}
	all[1].Life = 0.001
	all[3].Life = 0.001

	var rec draw.Recorder
	ps.Step(normalCtx(), &rec)

	if ps.Len() != len(survivors) {
		t.Fatalf("%d particles left, want %d", ps.Len(), len(survivors))
	}
	for i, p := range ps.Particles() {
		if p != survivors[i] {
			t.Fatalf("particle %d is not the expected survivor", i)
		}
	}
	// The backing array no longer points at released particles
	for i := len(survivors); i < len(all); i++ {
		if all[i] != nil {
			t.Fatalf("slot %d still holds a particle after Step", i)
		}
	}
	ps.Clear()
}

func TestRecycleOnlyPastBottom(t *testing.T) {
	ctx := normalCtx()
	h := ctx.Screen.Height

	star := NewStar(ctx)
	supply := NewSupply(ctx)
	planet := NewPlanet(ctx)

	tests := []struct {
		name    string
		entity  Recyclable
		inside  func()
		outside func()
		top     func() float64
	}{
		{"star", star,
			func() { star.Pos.Y = h },
			func() { star.Pos.Y = h + 0.5 },
			func() float64 { return star.Pos.Y }},
		{"supply", supply,
			func() { supply.Pos.Y = h + supply.Radius },
			func() { supply.Pos.Y = h + supply.Radius + 0.5 },
			func() float64 { return supply.Pos.Y }},
		{"planet", planet,
			func() { planet.Pos.Y = h + planet.Radius },
			func() { planet.Pos.Y = h + planet.Radius + 0.5 },
			func() float64 { return planet.Pos.Y }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.inside()
			if Recycle(ctx, tt.entity) {
				t.Fatal("recycled while its edge was on the bottom line")
			}
			tt.outside()
			if !Recycle(ctx, tt.entity) {
				t.Fatal("not recycled past the bottom")
			}
			if y := tt.top(); y > 0 {
				t.Fatalf("recycled to y=%v, want <= 0", y)
			}
		})
	}
}
