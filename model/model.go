package model

import (
	"fmt"
	"math"

	"github.com/TimothyStiles/dockcore/dockerr"
)

// Model is the external-collaborator graph of §3.1: an atom list, a bond
// list, the subset of bonds that are rotatable, an optional tethered-atom
// set, center of mass, principal axes, saved-coordinate snapshots, a
// string-keyed data-field map, an occupancy in [0,1], and an is-flexible
// flag.
type Model struct {
	Atoms         []*Atom
	Bonds         []Bond
	RotatableBond []int // indices into Bonds
	Tethered      map[int]bool

	Occupancy  float64
	IsFlexible bool

	Data map[string]any

	savedCoords map[string][]Vec3
}

// AtomByID returns the atom with the given stable ID, or nil if absent.
// ID-1 is a valid slice index only when the model's atom list is dense and
// ordered by ID, which every Model constructed by this package guarantees;
// AtomByID is the safe way to look one up regardless.
func (m *Model) AtomByID(id int) *Atom {
	idx := id - 1
	if idx < 0 || idx >= len(m.Atoms) {
		return nil
	}
	if m.Atoms[idx].ID == id {
		return m.Atoms[idx]
	}
	for _, a := range m.Atoms {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// CenterOfMass returns the unweighted centroid of all enabled atoms. A
// true force-field-aware model would mass-weight this; the core only needs
// a stable reference point for the position/orientation DoFs.
func (m *Model) CenterOfMass() Vec3 {
	var sum Vec3
	n := 0
	for _, a := range m.Atoms {
		if !a.Enabled {
			continue
		}
		sum = sum.Add(a.Coord)
		n++
	}
	if n == 0 {
		return Vec3{}
	}
	return sum.Scale(1.0 / float64(n))
}

// SetCenterOfMass translates every atom so the model's center of mass
// becomes target.
func (m *Model) SetCenterOfMass(target Vec3) {
	delta := target.Sub(m.CenterOfMass())
	for _, a := range m.Atoms {
		a.Coord = a.Coord.Add(delta)
	}
}

// PrincipalAxes returns the three eigenvectors of the atom-coordinate
// covariance matrix about the center of mass, largest eigenvalue first,
// via the Jacobi eigenvalue method (stable and simple for the 3x3 case;
// no external linear-algebra dependency appears anywhere in the retrieval
// pack for this narrow a need).
func (m *Model) PrincipalAxes() [3]Vec3 {
	com := m.CenterOfMass()
	var cov [3][3]float64
	for _, a := range m.Atoms {
		d := a.Coord.Sub(com)
		arr := [3]float64{d.X, d.Y, d.Z}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cov[i][j] += arr[i] * arr[j]
			}
		}
	}
	vecs, vals := jacobiEigen(cov)
	// sort descending by eigenvalue
	order := []int{0, 1, 2}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if vals[order[j]] > vals[order[i]] {
				order[i], order[j] = order[j], order[i]
			}
		}
	}
	return [3]Vec3{vecs[order[0]], vecs[order[1]], vecs[order[2]]}
}

// AlignPrincipalAxes rotates the model so its principal axes coincide with
// target, about the current center of mass.
func (m *Model) AlignPrincipalAxes(target [3]Vec3) {
	current := m.PrincipalAxes()
	com := m.CenterOfMass()
	rot := rotationBetweenBases(current, target)
	for _, a := range m.Atoms {
		d := a.Coord.Sub(com)
		a.Coord = com.Add(rot.Apply(d))
	}
}

// RotateAboutPoint applies rot to every atom's coordinate about pivot,
// used by the orientation chromosome element to apply its delta rotation
// about the ligand's center of mass.
func (m *Model) RotateAboutPoint(rot Rotation, pivot Vec3) {
	for _, a := range m.Atoms {
		d := a.Coord.Sub(pivot)
		a.Coord = pivot.Add(rot.Apply(d))
	}
}

// RotateBond rotates the pendant side of bond by angleDeg degrees about the
// bond axis, as determined by atomSet (the set of atom IDs on the side that
// moves — computed once by chrom.PendantSide and cached by the dihedral
// chromosome element).
func (m *Model) RotateBond(bond Bond, angleDeg float64, movingAtomIDs map[int]bool) error {
	a1 := m.AtomByID(bond.Atom1)
	a2 := m.AtomByID(bond.Atom2)
	if a1 == nil || a2 == nil {
		return dockerr.New(dockerr.BadArgument, "rotate_bond: bond references unknown atom")
	}
	axis := a2.Coord.Sub(a1.Coord)
	norm := math.Sqrt(axis.Dot(axis))
	if norm < 1e-9 {
		return dockerr.New(dockerr.BadArgument, "rotate_bond: degenerate bond axis")
	}
	axis = axis.Scale(1.0 / norm)
	rot := axisAngleRotation(axis, angleDeg*math.Pi/180.0)
	for _, a := range m.Atoms {
		if !movingAtomIDs[a.ID] {
			continue
		}
		d := a.Coord.Sub(a1.Coord)
		a.Coord = a1.Coord.Add(rot.Apply(d))
	}
	return nil
}

// UpdatePseudoAtoms recomputes every pseudo-atom's coordinate as the mean
// of its constituents, per §3.2's "after sync_to_model the model's
// pseudo-atoms are recomputed" invariant.
func (m *Model) UpdatePseudoAtoms() {
	for _, a := range m.Atoms {
		if !a.IsPseudo || len(a.Constituents) == 0 {
			continue
		}
		var sum Vec3
		n := 0
		for _, cid := range a.Constituents {
			if c := m.AtomByID(cid); c != nil {
				sum = sum.Add(c.Coord)
				n++
			}
		}
		if n > 0 {
			a.Coord = sum.Scale(1.0 / float64(n))
		}
	}
}

// SaveCoords snapshots the current coordinates of every atom under name.
func (m *Model) SaveCoords(name string) {
	if m.savedCoords == nil {
		m.savedCoords = map[string][]Vec3{}
	}
	snap := make([]Vec3, len(m.Atoms))
	for i, a := range m.Atoms {
		snap[i] = a.Coord
	}
	m.savedCoords[name] = snap
}

// RestoreCoords restores a snapshot saved under name. Returns an error if
// no such snapshot exists or the atom count has changed since it was taken.
func (m *Model) RestoreCoords(name string) error {
	snap, ok := m.savedCoords[name]
	if !ok {
		return dockerr.New(dockerr.BadArgument, "restore_coords: no snapshot named %q", name)
	}
	if len(snap) != len(m.Atoms) {
		return dockerr.New(dockerr.BadArgument, "restore_coords: snapshot %q has %d atoms, model has %d", name, len(snap), len(m.Atoms))
	}
	for i, a := range m.Atoms {
		a.Coord = snap[i]
	}
	return nil
}

// SetAllEnabled sets every atom's Enabled flag to enabled, implementing the
// occupancy chromosome element's "model enabled iff value >= threshold;
// atoms inherit from the model" rule (§4.3.5).
func (m *Model) SetAllEnabled(enabled bool) {
	for _, a := range m.Atoms {
		a.Enabled = enabled
	}
}

func (m *Model) String() string {
	return fmt.Sprintf("model(%d atoms, %d bonds)", len(m.Atoms), len(m.Bonds))
}
