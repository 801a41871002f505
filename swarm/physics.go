package swarm

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/swarm/components"
)

// Bounds represents the viewport the floating particles bounce inside.
type Bounds struct {
	Width, Height float32
}

// Pointer is the cursor state used for repulsion.
type Pointer struct {
	X, Y   float32
	Active bool
}

// PhysicsSystem integrates every particle by one fixed step.
type PhysicsSystem struct {
	filter *ecs.Filter4[components.Position, components.Velocity, components.Target, components.Motion]
	params Params
}

// NewPhysicsSystem creates a physics system over the particles in w.
func NewPhysicsSystem(w *ecs.World, params Params) *PhysicsSystem {
	return &PhysicsSystem{
		filter: ecs.NewFilter4[components.Position, components.Velocity, components.Target, components.Motion](w),
		params: params,
	}
}

// Update advances all particles. Particles do not read each other's state,
// so query order does not affect the result.
func (s *PhysicsSystem) Update(clock float32, pointer Pointer, bounds Bounds) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, tgt, mot := query.Get()
		s.integrate(pos, vel, tgt, mot, clock, pointer, bounds)
	}
}

func (s *PhysicsSystem) integrate(
	pos *components.Position,
	vel *components.Velocity,
	tgt *components.Target,
	mot *components.Motion,
	clock float32,
	pointer Pointer,
	bounds Bounds,
) {
	p := &s.params
	fx, fy := repulsion(pos.X, pos.Y, pointer, p.MouseRadius, p.RepulsionGain)

	if tgt.Forming {
		breathing := float32(math.Sin(float64(clock+pos.Y*p.BreathingPhase))) * p.BreathingAmplitude
		dx := tgt.X + breathing - pos.X
		dy := tgt.Y + breathing - pos.Y

		pull := mot.Ease * mot.Attraction
		vel.X += (dx*pull + fx) * p.FormingGain
		vel.Y += (dy*pull + fy) * p.FormingGain
	} else {
		vel.X += fx * p.FloatingRepulsion
		vel.Y += fy * p.FloatingRepulsion

		// Inverts on every frame spent outside, not only at the crossing.
		if pos.X < 0 || pos.X > bounds.Width {
			vel.X = -vel.X
		}
		if pos.Y < 0 || pos.Y > bounds.Height {
			vel.Y = -vel.Y
		}
	}

	vel.X *= mot.Friction
	vel.Y *= mot.Friction

	if speed := length(vel.X, vel.Y); speed > mot.MaxSpeed {
		scale := mot.MaxSpeed / speed
		vel.X *= scale
		vel.Y *= scale
	}

	pos.X += vel.X
	pos.Y += vel.Y
}

// repulsion returns the force pushing (x, y) away from the pointer. It is
// zero outside radius, when the pointer is inactive, or at zero distance.
func repulsion(x, y float32, pointer Pointer, radius, gain float32) (fx, fy float32) {
	if !pointer.Active {
		return 0, 0
	}
	dx := pointer.X - x
	dy := pointer.Y - y
	dist := length(dx, dy)
	if dist >= radius || dist <= 0 {
		return 0, 0
	}
	force := (radius - dist) / radius * gain
	return -dx / dist * force, -dy / dist * force
}

func length(x, y float32) float32 {
	return float32(math.Sqrt(float64(x*x + y*y)))
}
