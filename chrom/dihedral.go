package chrom

import (
	"math"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/rng"
)

// DihedralRefData is the immutable reference data shared by a dihedral
// element and its clones (§4.3.1, §4.3.2).
type DihedralRefData struct {
	Bond         model.Bond
	MovingAtoms  map[int]bool // pendant-side atom IDs, from PendantSide
	StepSize     float64      // degrees, maximum mutation step
	Mode         Mode
	MaxDihedral  float64 // degrees, tethered-mode cap
}

// Dihedral is a single rotatable-bond chromosome element.
type Dihedral struct {
	ref     *DihedralRefData
	m       *model.Model
	initial float64 // degrees, standardised
	value   float64 // degrees, standardised
}

// NewDihedral builds a dihedral element reading its initial value from the
// model's current bond torsion. tetheredAtoms selects the pendant side via
// PendantSide when non-empty; an empty set falls back to "smaller side of
// the bond graph wins" using every atom in the model.
func NewDihedral(m *model.Model, bond model.Bond, tetheredAtoms map[int]bool, stepSize float64, mode Mode, maxDihedral float64) (*Dihedral, error) {
	moving, err := PendantSide(m, bond, tetheredAtoms)
	if err != nil {
		return nil, err
	}
	ref := &DihedralRefData{
		Bond: bond, MovingAtoms: moving, StepSize: stepSize, Mode: mode, MaxDihedral: maxDihedral,
	}
	d := &Dihedral{ref: ref, m: m}
	d.SyncFromModel()
	d.initial = d.value
	return d, nil
}

// StandardisedValue returns the canonical representative of a dihedral
// angle (degrees) in (-180, 180].
func StandardisedValue(angle float64) float64 {
	v := math.Mod(angle, 360)
	if v <= -180 {
		v += 360
	} else if v > 180 {
		v -= 360
	}
	return v
}

// cyclicDiff returns a-b taking the shorter way around the circle, in
// (-180, 180].
func cyclicDiff(a, b float64) float64 {
	return StandardisedValue(a - b)
}

func (d *Dihedral) Length() int      { return 1 }
func (d *Dihedral) XoverLength() int { return 1 }

func (d *Dihedral) Reset() { d.value = d.initial }

func (d *Dihedral) Randomise(r *rng.Source) {
	switch d.ref.Mode {
	case Fixed:
		return
	case Tethered:
		max := d.ref.MaxDihedral
		d.value = StandardisedValue(d.initial + r.UniformSigned(max))
	default: // Free
		d.value = StandardisedValue(r.UniformRange(-180, 180))
	}
}

func (d *Dihedral) Mutate(relStep float64, dist Distribution, r *rng.Source) {
	if d.ref.Mode == Fixed {
		return
	}
	step := relStep * d.ref.StepSize
	var delta float64
	if dist == Cauchy {
		delta = r.Cauchy(0, step)
	} else {
		delta = r.UniformSigned(step)
	}
	next := StandardisedValue(d.value + delta)
	if d.ref.Mode == Tethered {
		if math.Abs(cyclicDiff(next, d.initial)) > d.ref.MaxDihedral {
			next = d.value // reject out-of-tether mutation
		}
	}
	d.value = next
}

// currentTorsion computes the model's live dihedral angle across ref.Bond
// using the two atoms either side of the bond plus one heavy-atom neighbor
// on each end to define the two half-planes.
func (d *Dihedral) currentTorsion() (float64, bool) {
	b := d.ref.Bond
	a2 := d.m.AtomByID(b.Atom1)
	a3 := d.m.AtomByID(b.Atom2)
	if a2 == nil || a3 == nil {
		return 0, false
	}
	var a1, a4 *model.Atom
	for _, bnd := range d.m.Bonds {
		if bnd.Atom1 == b.Atom1 && bnd.Atom2 != b.Atom2 {
			a1 = d.m.AtomByID(bnd.Atom2)
		} else if bnd.Atom2 == b.Atom1 && bnd.Atom1 != b.Atom2 {
			a1 = d.m.AtomByID(bnd.Atom1)
		}
		if bnd.Atom1 == b.Atom2 && bnd.Atom2 != b.Atom1 {
			a4 = d.m.AtomByID(bnd.Atom2)
		} else if bnd.Atom2 == b.Atom2 && bnd.Atom1 != b.Atom1 {
			a4 = d.m.AtomByID(bnd.Atom1)
		}
	}
	if a1 == nil || a4 == nil {
		return 0, false
	}
	return dihedralAngle(a1.Coord, a2.Coord, a3.Coord, a4.Coord), true
}

// dihedralAngle returns the signed torsion (degrees) about the b2-b3 axis.
func dihedralAngle(p1, p2, p3, p4 model.Vec3) float64 {
	b1 := p2.Sub(p1)
	b2 := p3.Sub(p2)
	b3 := p4.Sub(p3)
	n1 := cross(b1, b2)
	n2 := cross(b2, b3)
	m1 := cross(n1, unit(b2))
	x := n1.Dot(n2)
	y := m1.Dot(n2)
	return math.Atan2(y, x) * 180.0 / math.Pi
}

func cross(a, b model.Vec3) model.Vec3 {
	return model.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func unit(v model.Vec3) model.Vec3 {
	n := math.Sqrt(v.Dot(v))
	if n < 1e-12 {
		return v
	}
	return v.Scale(1.0 / n)
}

func (d *Dihedral) SyncFromModel() {
	if v, ok := d.currentTorsion(); ok {
		d.value = StandardisedValue(v)
	}
}

func (d *Dihedral) SyncToModel() error {
	current, ok := d.currentTorsion()
	if !ok {
		return dockerr.New(dockerr.BadArgument, "dihedral sync_to_model: bond %d-%d missing a defining neighbor", d.ref.Bond.Atom1, d.ref.Bond.Atom2)
	}
	delta := cyclicDiff(d.value, current)
	return d.m.RotateBond(d.ref.Bond, delta, d.ref.MovingAtoms)
}

func (d *Dihedral) GetVector(v *[]float64) { *v = append(*v, d.value) }

func (d *Dihedral) SetVector(v []float64, idx *int) error {
	if *idx >= len(v) {
		return dockerr.New(dockerr.BadArgument, "dihedral set_vector: index out of range")
	}
	d.value = StandardisedValue(v[*idx])
	*idx++
	return nil
}

func (d *Dihedral) GetXoverVector(v *[][]float64) {
	*v = append(*v, []float64{d.value})
}

func (d *Dihedral) SetXoverVector(v [][]float64, idx *int) error {
	if *idx >= len(v) || len(v[*idx]) != 1 {
		return dockerr.New(dockerr.BadArgument, "dihedral set_xover_vector: malformed group")
	}
	d.value = StandardisedValue(v[*idx][0])
	*idx++
	return nil
}

func (d *Dihedral) GetStepVector(v *[]float64) { *v = append(*v, d.ref.StepSize) }

func (d *Dihedral) CompareVector(v []float64, idx *int) float64 {
	diff := math.Abs(cyclicDiff(v[*idx], d.value))
	*idx++
	if d.ref.StepSize == 0 {
		return diff
	}
	return diff / d.ref.StepSize
}

func (d *Dihedral) Clone() Element {
	return &Dihedral{ref: d.ref, m: d.m, initial: d.initial, value: d.value}
}

// PendantSide determines which side of bond moves when the dihedral
// element rotates it: the side with fewer tethered atoms, or (when
// tetheredAtoms is empty) the side with fewer total atoms; ties are broken
// by bond.Atom1's side winning (original atom order), per §4.3.2 and the
// supplemented tethered-atom-walk feature of §3.
func PendantSide(m *model.Model, bond model.Bond, tetheredAtoms map[int]bool) (map[int]bool, error) {
	adj := map[int][]int{}
	for _, b := range m.Bonds {
		if (b.Atom1 == bond.Atom1 && b.Atom2 == bond.Atom2) || (b.Atom1 == bond.Atom2 && b.Atom2 == bond.Atom1) {
			continue
		}
		adj[b.Atom1] = append(adj[b.Atom1], b.Atom2)
		adj[b.Atom2] = append(adj[b.Atom2], b.Atom1)
	}
	walk := func(start, blocked int) map[int]bool {
		seen := map[int]bool{start: true}
		stack := []int{start}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range adj[n] {
				if nb == blocked || seen[nb] {
					continue
				}
				seen[nb] = true
				stack = append(stack, nb)
			}
		}
		return seen
	}
	side1 := walk(bond.Atom1, bond.Atom2)
	side2 := walk(bond.Atom2, bond.Atom1)
	if len(side1)+len(side2) > 0 && overlap(side1, side2) {
		return nil, dockerr.New(dockerr.BadArgument, "pendant_side: bond %d-%d lies on a ring, sides are not disjoint", bond.Atom1, bond.Atom2)
	}
	score := func(side map[int]bool) int {
		if len(tetheredAtoms) == 0 {
			return len(side)
		}
		n := 0
		for id := range side {
			if tetheredAtoms[id] {
				n++
			}
		}
		return n
	}
	s1, s2 := score(side1), score(side2)
	if s2 < s1 {
		return side2, nil
	}
	return side1, nil
}

func overlap(a, b map[int]bool) bool {
	for id := range a {
		if b[id] {
			return true
		}
	}
	return false
}
