package grid

import "github.com/TimothyStiles/dockcore/model"

// NonBondedGrid specializes Grid to plain atom references, used by the
// vdW and NMR scoring terms (§3.1). It embeds the generic grid, so every
// Grid method is available on it.
type NonBondedGrid struct {
	*Grid[*model.Atom]
}

// NewNonBondedGrid builds a NonBondedGrid over the given geometry.
func NewNonBondedGrid(min, step model.Vec3, nx, ny, nz int, border float64) (*NonBondedGrid, error) {
	g, err := New[*model.Atom](min, step, nx, ny, nz, border)
	if err != nil {
		return nil, err
	}
	return &NonBondedGrid{Grid: g}, nil
}

// BindAtom appends atom to every cell within radius of its coordinate
// (nonbonded_grid.bind, §4.1).
func (g *NonBondedGrid) BindAtom(atom *model.Atom, radius float64) {
	g.Bind(atom.Coord, radius, atom)
}

// AtomsAt returns the atoms bound to the cell containing coord
// (nonbonded_grid.atoms_at, §4.1).
func (g *NonBondedGrid) AtomsAt(coord model.Vec3) []*model.Atom {
	return g.AtCoord(coord)
}

// UniqueAtoms dedups each cell by atom ID.
func (g *NonBondedGrid) UniqueAtoms() {
	g.Unique(
		func(a, b *model.Atom) bool { return a.ID < b.ID },
		func(a, b *model.Atom) bool { return a.ID == b.ID },
	)
}
