package object

import (
	"math/rand"
	"sync"

	"github.com/tomz197/spacecatcher/internal/config"
	"github.com/tomz197/spacecatcher/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect.
type Particle struct {
	Pos   Vector2
	Vel   Vector2 // Per axis in (-3, 3)
	Size  float64 // Radius, shrinks every frame
	Life  float64 // 1 when spawned, removed at <= 0
	Decay float64 // Life lost per frame
	Color draw.Color
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos Vector2, c draw.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.Pos = pos
	p.Vel = Vector2{X: (rand.Float64() - 0.5) * 6, Y: (rand.Float64() - 0.5) * 6}
	p.Size = randRange(2, 5)
	p.Life = 1
	p.Decay = randRange(0.01, 0.04)
	p.Color = c
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// Update moves the particle, fades it and shrinks it.
func (p *Particle) Update(UpdateContext) {
	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y
	p.Life -= p.Decay
	p.Size *= config.ParticleShrinkRate
}

// Dead reports whether the particle has faded out.
func (p *Particle) Dead() bool {
	return p.Life <= 0
}

// Draw renders the particle as a dot whose opacity is its remaining life.
func (p *Particle) Draw(r draw.Renderer) {
	r.Submit(draw.Circle(p.Pos.X, p.Pos.Y, p.Size, p.Color).WithOpacity(max(p.Life, 0)))
}

// ParticleSystem owns every live particle. Bursts only append and Step only
// removes.
type ParticleSystem struct {
	particles []*Particle
}

// Burst spawns count particles at pos, all in colour c.
func (ps *ParticleSystem) Burst(pos Vector2, c draw.Color, count int) {
	for i := 0; i < count; i++ {
		ps.particles = append(ps.particles, NewParticle(pos, c))
	}
}

// Step updates and draws every particle and drops those that have faded
// out, keeping the order of the survivors.
func (ps *ParticleSystem) Step(ctx UpdateContext, r draw.Renderer) {
	kept := ps.particles[:0] // reuse backing array
	for _, p := range ps.particles {
		p.Update(ctx)
		p.Draw(r)
		if p.Dead() {
			ReleaseEntity(p)
			continue
		}
		kept = append(kept, p)
	}
	// Released particles must not stay reachable from the backing array
	clear(ps.particles[len(kept):])
	ps.particles = kept
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	return len(ps.particles)
}

// Particles returns the live particles. The slice must not be modified.
func (ps *ParticleSystem) Particles() []*Particle {
	return ps.particles
}

// Clear releases every particle.
func (ps *ParticleSystem) Clear() {
	for _, p := range ps.particles {
		ReleaseEntity(p)
	}
	clear(ps.particles)
	ps.particles = ps.particles[:0]
}
