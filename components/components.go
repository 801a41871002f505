// Package components defines ECS components for swarm particles.
package components

// ParticleType classifies a particle at creation. It only selects the
// distribution its motion parameters were drawn from.
type ParticleType uint8

const (
	Scout   ParticleType = iota // fast, reactive, small
	Anchor                      // medium speed, persistent
	Drifter                     // slow, low attraction, large
)

// String returns the lowercase type name.
func (t ParticleType) String() string {
	switch t {
	case Scout:
		return "scout"
	case Anchor:
		return "anchor"
	case Drifter:
		return "drifter"
	default:
		return "unknown"
	}
}

// Target is the point a particle converges on while Forming is set.
type Target struct {
	X, Y    float32
	Forming bool
}

// Motion holds the per-particle integration parameters fixed at creation.
type Motion struct {
	Friction   float32 // velocity multiplier per step, in (0,1]
	Ease       float32
	MaxSpeed   float32
	Attraction float32
}

// Appearance holds render-only data.
type Appearance struct {
	Size float32
}

// Kind records the particle's creation-time classification.
type Kind struct {
	Type ParticleType
}
