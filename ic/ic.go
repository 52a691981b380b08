/*
Package ic implements the C2 interaction centers: compact records binding
1-3 atoms with a geometry tag, and the construction rules (§4.2) scoring
terms use to build their IC lists from atom subsets.
*/
package ic

import "github.com/TimothyStiles/dockcore/model"

// Geom tags the geometric interpretation of a Center's constituent atoms.
type Geom int

const (
	// None: a point (single atom) or a point with a directional axis (two
	// atoms).
	None Geom = iota
	// Plane: an oriented plane defined by a centroid and two other atoms
	// (aromatic ring, guanidinium carbon for attractive terms).
	Plane
	// LonePair: a plane plus an in-plane lone-pair direction (sp2 oxygen on
	// carboxylate/nitro/RNA phosphate).
	LonePair
)

// Center is the {a1, a2?, a3?, geom} tuple of §3.1.
type Center struct {
	A1, A2, A3 *model.Atom
	Geom       Geom
}

// Enabled is the disjunction over the center's constituent atoms' enabled
// flags (§3.2).
func (c *Center) Enabled() bool {
	if c.A1 != nil && c.A1.Enabled {
		return true
	}
	if c.A2 != nil && c.A2.Enabled {
		return true
	}
	if c.A3 != nil && c.A3.Enabled {
		return true
	}
	return false
}

// AtomList returns the center's non-nil atoms other than pseudo-atoms. A
// pseudo-atom is left out; it is not expanded to its constituents.
func (c *Center) AtomList() []*model.Atom {
	var out []*model.Atom
	for _, a := range []*model.Atom{c.A1, c.A2, c.A3} {
		if a == nil {
			continue
		}
		if a.IsPseudo {
			// constituents are referenced by ID only on the atom; callers
			// needing the literal model.Atom values should resolve
			// Constituents themselves (pseudo-atoms don't know their model).
			continue
		}
		out = append(out, a)
	}
	return out
}

// Anchor returns the coordinate used to place the center in a spatial
// grid: always the first atom, per §4.1's "compute sphere indices from the
// IC's first atom".
func (c *Center) Anchor() model.Vec3 {
	return c.A1.Coord
}

// Axis returns the directional axis for a two-atom point+axis center: the
// vector from A1 (e.g. donor hydrogen) to A2 (its parent). It is the zero
// vector for single-atom or Plane/LonePair centers.
func (c *Center) Axis() model.Vec3 {
	if c.A2 == nil || c.Geom != None {
		return model.Vec3{}
	}
	return c.A2.Coord.Sub(c.A1.Coord)
}

// Normal returns the plane normal for a Plane or LonePair center, computed
// from the three constituent atoms (A1 is the centroid/apex, A2 and A3 the
// other two ring/plane atoms).
func (c *Center) Normal() model.Vec3 {
	if c.Geom == None || c.A2 == nil || c.A3 == nil {
		return model.Vec3{}
	}
	v1 := c.A2.Coord.Sub(c.A1.Coord)
	v2 := c.A3.Coord.Sub(c.A1.Coord)
	return cross(v1, v2)
}

func cross(a, b model.Vec3) model.Vec3 {
	return model.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
