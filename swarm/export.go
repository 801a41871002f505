package swarm

import "fmt"

// RecordSize is the number of floats per particle in the render buffer:
// x, y, size, forming (1 or 0).
const RecordSize = 4

// Stats summarizes the population for diagnostics.
type Stats struct {
	Particles  int
	Forming    int
	Floating   int
	TextCoords int
}

// String formats the stats as
// "particles: P, forming: F, floating: L, text_coords: T".
func (s Stats) String() string {
	return fmt.Sprintf("particles: %d, forming: %d, floating: %d, text_coords: %d",
		s.Particles, s.Forming, s.Floating, s.TextCoords)
}

func formingFlag(forming bool) float32 {
	if forming {
		return 1
	}
	return 0
}
