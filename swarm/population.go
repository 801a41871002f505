package swarm

import (
	"math/rand"

	"github.com/pthm-cable/swarm/components"
)

// ParticleType classifies a particle at creation.
type ParticleType = components.ParticleType

// Particle types.
const (
	Scout   = components.Scout
	Anchor  = components.Anchor
	Drifter = components.Drifter
)

// Point is a 2-D coordinate.
type Point struct {
	X, Y float32
}

// Range is a uniform distribution over [Min, Min+Span).
type Range struct {
	Min, Span float32
}

func (r Range) draw(rng *rand.Rand) float32 {
	return r.Min + rng.Float32()*r.Span
}

// Profile describes the parameter distribution of one particle type.
type Profile struct {
	Type       ParticleType
	Weight     float32 // selection probability
	MaxSpeed   float32
	Attraction float32
	Size       Range
	Friction   Range
	Ease       Range
}

// DefaultProfiles returns the Scout/Anchor/Drifter table in draw order.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Type: Scout, Weight: 0.60, MaxSpeed: 6.0, Attraction: 1.5,
			Size:     Range{Min: 0.5, Span: 1.0},
			Friction: Range{Min: 0.92, Span: 0.04},
			Ease:     Range{Min: 0.12, Span: 0.06},
		},
		{
			Type: Anchor, Weight: 0.25, MaxSpeed: 4.0, Attraction: 1.8,
			Size:     Range{Min: 1.0, Span: 1.5},
			Friction: Range{Min: 0.94, Span: 0.03},
			Ease:     Range{Min: 0.08, Span: 0.04},
		},
		{
			Type: Drifter, Weight: 0.15, MaxSpeed: 5.0, Attraction: 0.8,
			Size:     Range{Min: 1.2, Span: 2.0},
			Friction: Range{Min: 0.92, Span: 0.05},
			Ease:     Range{Min: 0.10, Span: 0.05},
		},
	}
}

// Particle is a snapshot of one simulated particle.
// The inspect tags drive the particle inspector panel.
type Particle struct {
	X, Y             float32 `inspect:"label,fmt:%.1f"`
	VX, VY           float32 `inspect:"label,fmt:%+.2f"`
	TargetX, TargetY float32 `inspect:"label,fmt:%.1f"`
	Forming          bool    `inspect:"bool"`

	Size       float32      `inspect:"label,fmt:%.2f"`
	Friction   float32      `inspect:"bar,max:1"`
	Ease       float32      `inspect:"bar,max:0.2"`
	MaxSpeed   float32      `inspect:"bar,max:12"`
	Attraction float32      `inspect:"bar,max:3"`
	Type       ParticleType `inspect:"label"`
}

// Speed returns the velocity magnitude.
func (p Particle) Speed() float32 {
	return length(p.VX, p.VY)
}

// NewPopulation draws count particles spread over [0,width) x [0,height).
// Types are picked by cumulative weight; the last profile takes any
// remainder. A nil or empty profile list uses DefaultProfiles.
func NewPopulation(count int, width, height float32, profiles []Profile, rng *rand.Rand) []Particle {
	if count < 0 {
		count = 0
	}
	if len(profiles) == 0 {
		profiles = DefaultProfiles()
	}

	particles := make([]Particle, count)
	for i := range particles {
		prof := pickProfile(profiles, rng.Float32())

		size := prof.Size.draw(rng)
		friction := prof.Friction.draw(rng)
		ease := prof.Ease.draw(rng)

		x := rng.Float32() * width
		y := rng.Float32() * height

		particles[i] = Particle{
			X:          x,
			Y:          y,
			VX:         (rng.Float32() - 0.5) * 2,
			VY:         (rng.Float32() - 0.5) * 2,
			TargetX:    x,
			TargetY:    y,
			Size:       size,
			Friction:   friction,
			Ease:       ease,
			MaxSpeed:   prof.MaxSpeed,
			Attraction: prof.Attraction,
			Type:       prof.Type,
		}
	}
	return particles
}

// pickProfile returns the first profile whose cumulative weight exceeds u.
func pickProfile(profiles []Profile, u float32) Profile {
	var cum float32
	for _, p := range profiles[:len(profiles)-1] {
		cum += p.Weight
		if u < cum {
			return p
		}
	}
	return profiles[len(profiles)-1]
}

// CountTypes tallies particles by type.
func CountTypes(particles []Particle) map[ParticleType]int {
	counts := make(map[ParticleType]int, 3)
	for _, p := range particles {
		counts[p.Type]++
	}
	return counts
}
