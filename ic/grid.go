package ic

import (
	"github.com/TimothyStiles/dockcore/grid"
	"github.com/TimothyStiles/dockcore/model"
)

// InteractionGrid specializes grid.Grid to interaction centers, per §3.1.
type InteractionGrid = grid.Grid[*Center]

// NewInteractionGrid builds an InteractionGrid over the given geometry.
func NewInteractionGrid(min, step model.Vec3, nx, ny, nz int, border float64) (*InteractionGrid, error) {
	return grid.New[*Center](min, step, nx, ny, nz, border)
}

// BindCenter appends c to every cell within radius of its anchor atom
// (interaction_grid.bind, §4.1). Idempotent only after a following Unique.
func BindCenter(g *InteractionGrid, c *Center, radius float64) {
	g.Bind(c.Anchor(), radius, c)
}

// CentersAt is interaction_grid.ics_at: the O(1) cell lookup, returning the
// borrowed list (nil if off-grid).
func CentersAt(g *InteractionGrid, coord model.Vec3) []*Center {
	return g.AtCoord(coord)
}

// UniqueCenters dedups each cell's list by pointer identity, ordering by
// the memory address is not meaningful across runs so centers are instead
// ordered by their anchor atom's ID for determinism.
func UniqueCenters(g *InteractionGrid) {
	g.Unique(
		func(a, b *Center) bool { return a.A1.ID < b.A1.ID },
		func(a, b *Center) bool { return a == b },
	)
}
