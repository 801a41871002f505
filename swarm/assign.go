package swarm

import "math"

// Unassigned marks a particle without a target in a Match result.
const Unassigned = -1

// Match assigns each position at most one target index, or Unassigned.
//
// Only the first min(len(positions), len(targets)) positions are eligible.
// The first pass picks, for each eligible position in order, the nearest
// unused target within reach cells of its own grid cell. The second pass
// hands the remaining eligible positions the unused targets in ascending
// index order. No target is assigned twice.
func Match(positions, targets []Point, cellSize float32, reach int) []int {
	out := make([]int, len(positions))
	for i := range out {
		out[i] = Unassigned
	}
	if len(targets) == 0 || len(positions) == 0 {
		return out
	}

	grid := newTargetGrid(targets, cellSize)
	used := make([]bool, len(targets))
	eligible := min(len(positions), len(targets))

	for i := 0; i < eligible; i++ {
		p := positions[i]
		c := grid.key(p.X, p.Y)

		best := Unassigned
		bestDist := float32(math.Inf(1))
		for dx := -reach; dx <= reach; dx++ {
			for dy := -reach; dy <= reach; dy++ {
				for _, idx := range grid.cell(c.X+int32(dx), c.Y+int32(dy)) {
					if used[idx] {
						continue
					}
					t := targets[idx]
					ddx, ddy := p.X-t.X, p.Y-t.Y
					if d := ddx*ddx + ddy*ddy; d < bestDist {
						bestDist = d
						best = int(idx)
					}
				}
			}
		}

		if best != Unassigned {
			out[i] = best
			used[best] = true
		}
	}

	next := 0
	for i := 0; i < eligible; i++ {
		if out[i] != Unassigned {
			continue
		}
		for next < len(targets) && used[next] {
			next++
		}
		if next == len(targets) {
			break
		}
		out[i] = next
		used[next] = true
		next++
	}

	return out
}
