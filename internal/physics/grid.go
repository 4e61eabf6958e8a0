package physics

import (
	"math"
	"slices"

	"github.com/strikezone/server/internal/component"
)

// DefaultCellSize suits actor-sized boxes; large brushes simply span more
// cells.
const DefaultCellSize = 4.0

type cellKey struct {
	cx int32
	cz int32
}

// Grid is a uniform broad-phase index over the XZ plane. Items are integer
// handles, usually indices into the caller's slice; the caller does the
// exact overlap test on whatever Query returns.
// Accessed only from the simulation goroutine, no locks.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]int
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
	}
}

func (g *Grid) coord(v float64) int32 {
	return int32(math.Floor(v / g.cellSize))
}

// Insert places handle in every cell the box footprint touches.
func (g *Grid) Insert(handle int, box AABB) {
	for cx := g.coord(box.Min.X); cx <= g.coord(box.Max.X); cx++ {
		for cz := g.coord(box.Min.Z); cz <= g.coord(box.Max.Z); cz++ {
			k := cellKey{cx: cx, cz: cz}
			g.cells[k] = append(g.cells[k], handle)
		}
	}
}

// Query returns the handles sharing a cell with box, ascending and without
// duplicates.
func (g *Grid) Query(box AABB) []int {
	var result []int
	for cx := g.coord(box.Min.X); cx <= g.coord(box.Max.X); cx++ {
		for cz := g.coord(box.Min.Z); cz <= g.coord(box.Max.Z); cz++ {
			result = append(result, g.cells[cellKey{cx: cx, cz: cz}]...)
		}
	}
	slices.Sort(result)
	return slices.Compact(result)
}

// Reset empties the grid, keeping its cell size.
func (g *Grid) Reset() {
	clear(g.cells)
}

// Cells reports how many cells hold at least one handle.
func (g *Grid) Cells() int { return len(g.cells) }

// Union is the smallest box containing both a and b.
func Union(a, b AABB) AABB {
	return AABB{
		Min: component.Vec3{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y), Z: math.Min(a.Min.Z, b.Min.Z)},
		Max: component.Vec3{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y), Z: math.Max(a.Max.Z, b.Max.Z)},
	}
}
