/*
Package grid implements the C1 spatial grids: a uniform axis-aligned 3D
grid over a min corner, step vector, and cell counts, used to make scoring
evaluations sub-linear in receptor size.

Grid is generic over the cell payload type so both specializations of §3.1 —
an InteractionGrid storing interaction centers and a NonBondedGrid storing
plain atom references — share one implementation, the way BaseGrid does in
the original design.
*/
package grid

import (
	"math"
	"sort"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/model"
)

// Grid is a flat, row-major (Z-fastest) vector of cells of length
// Nx*Ny*Nz. A cell may be empty; nothing here requires cells to be
// non-nil.
type Grid[T any] struct {
	Min        model.Vec3
	Step       model.Vec3
	Nx, Ny, Nz int
	// Border is added to every indexing radius so that a value whose
	// anchor coordinate sits outside the configured radius, but whose
	// extent still reaches into it, is not missed (§4.1).
	Border float64

	cells [][]T
}

// New builds a Grid with Nx*Ny*Nz empty cells. Step components must all be
// strictly positive; a non-positive step is an InvalidGrid error.
func New[T any](min, step model.Vec3, nx, ny, nz int, border float64) (*Grid[T], error) {
	if step.X <= 0 || step.Y <= 0 || step.Z <= 0 {
		return nil, dockerr.New(dockerr.InvalidGrid, "grid step must be positive, got %+v", step)
	}
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, dockerr.New(dockerr.InvalidGrid, "grid cell counts must be positive, got (%d,%d,%d)", nx, ny, nz)
	}
	return &Grid[T]{
		Min: min, Step: step, Nx: nx, Ny: ny, Nz: nz, Border: border,
		cells: make([][]T, nx*ny*nz),
	}, nil
}

// maxError is the compensating radius §4.1 adds to sphere-index queries so
// that the cell-center sphere test never misses an atom within the
// declared range: half the grid cell's diagonal.
func (g *Grid[T]) maxError() float64 {
	return 0.5 * math.Sqrt(g.Step.X*g.Step.X+g.Step.Y*g.Step.Y+g.Step.Z*g.Step.Z)
}

func (g *Grid[T]) cellCoord(coord model.Vec3) (ix, iy, iz int) {
	ix = int(math.Floor((coord.X - g.Min.X) / g.Step.X))
	iy = int(math.Floor((coord.Y - g.Min.Y) / g.Step.Y))
	iz = int(math.Floor((coord.Z - g.Min.Z) / g.Step.Z))
	return
}

// IndexOf returns the flat cell index containing coord, or false if coord
// lies outside the grid.
func (g *Grid[T]) IndexOf(coord model.Vec3) (int, bool) {
	ix, iy, iz := g.cellCoord(coord)
	if ix < 0 || ix >= g.Nx || iy < 0 || iy >= g.Ny || iz < 0 || iz >= g.Nz {
		return 0, false
	}
	return g.flatten(ix, iy, iz), true
}

func (g *Grid[T]) flatten(ix, iy, iz int) int {
	return (ix*g.Ny+iy)*g.Nz + iz
}

// CoordOf returns the min-corner coordinate of the cell at index.
func (g *Grid[T]) CoordOf(index int) model.Vec3 {
	iz := index % g.Nz
	rest := index / g.Nz
	iy := rest % g.Ny
	ix := rest / g.Ny
	return model.Vec3{
		X: g.Min.X + float64(ix)*g.Step.X,
		Y: g.Min.Y + float64(iy)*g.Step.Y,
		Z: g.Min.Z + float64(iz)*g.Step.Z,
	}
}

// centerOf returns the cell-center coordinate of the cell at (ix,iy,iz),
// used by SphereIndices's cell-center distance test (§4.1: "the sphere
// test uses the cell center, not its extent").
func (g *Grid[T]) centerOf(ix, iy, iz int) model.Vec3 {
	return model.Vec3{
		X: g.Min.X + (float64(ix)+0.5)*g.Step.X,
		Y: g.Min.Y + (float64(iy)+0.5)*g.Step.Y,
		Z: g.Min.Z + (float64(iz)+0.5)*g.Step.Z,
	}
}

// SphereIndices returns the flat indices of every cell whose center lies
// within radius (+max_error+Border) of center.
func (g *Grid[T]) SphereIndices(center model.Vec3, radius float64) []int {
	effRadius := radius + g.maxError() + g.Border
	if effRadius < 0 {
		return nil
	}
	// bounding box of cell indices to scan
	loX, hiX := g.axisRange(center.X, effRadius, g.Min.X, g.Step.X, g.Nx)
	loY, hiY := g.axisRange(center.Y, effRadius, g.Min.Y, g.Step.Y, g.Ny)
	loZ, hiZ := g.axisRange(center.Z, effRadius, g.Min.Z, g.Step.Z, g.Nz)

	var out []int
	r2 := effRadius * effRadius
	for ix := loX; ix <= hiX; ix++ {
		for iy := loY; iy <= hiY; iy++ {
			for iz := loZ; iz <= hiZ; iz++ {
				c := g.centerOf(ix, iy, iz)
				dx, dy, dz := c.X-center.X, c.Y-center.Y, c.Z-center.Z
				if dx*dx+dy*dy+dz*dz <= r2 {
					out = append(out, g.flatten(ix, iy, iz))
				}
			}
		}
	}
	return out
}

func (g *Grid[T]) axisRange(center, radius, minv, step float64, n int) (int, int) {
	lo := int(math.Floor((center - radius - minv) / step))
	hi := int(math.Floor((center + radius - minv) / step))
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

// At returns the cell contents at index, or nil if index is out of range.
// Off-grid lookups never fail — they return an empty list (§4.1).
func (g *Grid[T]) At(index int) []T {
	if index < 0 || index >= len(g.cells) {
		return nil
	}
	return g.cells[index]
}

// AtCoord is the O(1) cell lookup used by ics_at/atoms_at: returns the
// contents of the cell containing coord, or an empty slice if coord is
// off-grid.
func (g *Grid[T]) AtCoord(coord model.Vec3) []T {
	idx, ok := g.IndexOf(coord)
	if !ok {
		return nil
	}
	return g.cells[idx]
}

// Bind computes SphereIndices(center, radius) and appends value to every
// such cell. Calling Bind repeatedly without an intervening Unique
// accumulates duplicates across overlapping spheres; Unique removes them.
func (g *Grid[T]) Bind(center model.Vec3, radius float64, value T) {
	for _, idx := range g.SphereIndices(center, radius) {
		g.cells[idx] = append(g.cells[idx], value)
	}
}

// Unique sorts and dedups each cell's list independently using less and
// equal, per original_source/include/RbtInteractionGrid.h's per-cell
// (not grid-wide) uniqueness contract.
func (g *Grid[T]) Unique(less func(a, b T) bool, equal func(a, b T) bool) {
	for i, cell := range g.cells {
		if len(cell) < 2 {
			continue
		}
		sort.Slice(cell, func(a, b int) bool { return less(cell[a], cell[b]) })
		out := cell[:1]
		for _, v := range cell[1:] {
			// Compare against every kept entry that sorts equal to v, so
			// duplicates separated by other equal-keyed entries are removed.
			dup := false
			for j := len(out) - 1; j >= 0 && !less(out[j], v); j-- {
				if equal(out[j], v) {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, v)
			}
		}
		g.cells[i] = out
	}
}

// Clear empties every cell without changing the grid's geometry, used when
// a term rebuilds its index after a model reassignment.
func (g *Grid[T]) Clear() {
	for i := range g.cells {
		g.cells[i] = nil
	}
}

// Len returns the number of cells (Nx*Ny*Nz).
func (g *Grid[T]) Len() int { return len(g.cells) }
