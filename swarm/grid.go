package swarm

import "math"

// cellKey identifies a grid cell by integer coordinates.
type cellKey struct {
	X, Y int32
}

// targetGrid buckets target indices by cell for neighbor lookups.
// It is built for a single assignment and then dropped.
type targetGrid struct {
	cellSize float32
	cells    map[cellKey][]int32
}

func newTargetGrid(targets []Point, cellSize float32) *targetGrid {
	g := &targetGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int32, len(targets)/4+1),
	}
	for i, t := range targets {
		k := g.key(t.X, t.Y)
		g.cells[k] = append(g.cells[k], int32(i))
	}
	return g
}

// key returns the cell containing (x, y). Negative coordinates floor
// toward negative infinity so cells stay uniform across the origin.
func (g *targetGrid) key(x, y float32) cellKey {
	return cellKey{
		X: int32(math.Floor(float64(x / g.cellSize))),
		Y: int32(math.Floor(float64(y / g.cellSize))),
	}
}

// cell returns the target indices in cell (cx, cy); nil when empty.
func (g *targetGrid) cell(cx, cy int32) []int32 {
	return g.cells[cellKey{X: cx, Y: cy}]
}
