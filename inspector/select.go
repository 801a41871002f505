package inspector

import "github.com/pthm-cable/swarm/swarm"

// Nearest returns the index of the particle closest to (x, y) whose
// center lies within radius plus its own size. ok is false when no
// particle qualifies.
func Nearest(particles []swarm.Particle, x, y, radius float32) (idx int, ok bool) {
	best := float32(-1)
	for i, p := range particles {
		dx, dy := p.X-x, p.Y-y
		d2 := dx*dx + dy*dy
		hit := radius + p.Size
		if d2 > hit*hit {
			continue
		}
		if best < 0 || d2 < best {
			best = d2
			idx = i
		}
	}
	return idx, best >= 0
}
