/*
Package vdw implements C4's intermolecular and intramolecular van der
Waals terms (§4.4.2, §4.4.3), grounded on the indexed-grid lookup pattern
of the teacher corpus's `RbtBaseIdxSF`/`VdwIntraSF` family.
*/
package vdw

import (
	"math"

	"github.com/TimothyStiles/dockcore/grid"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/score"
)

// pairEnergy is the Lennard-Jones-like pair potential used by both the
// inter- and intramolecular terms: a 12-6 potential built from each
// atom's radius/well-depth, clipped at ecut to avoid singularities at
// very short range.
func pairEnergy(a, b *model.Atom, ecut float64) float64 {
	if !a.Enabled || !b.Enabled {
		return 0
	}
	r0 := a.VdwRadius + b.VdwRadius
	eps := math.Sqrt(a.VdwWellDepth * b.VdwWellDepth)
	d := a.Coord.Sub(b.Coord)
	r2 := d.Dot(d)
	if r2 < 1e-6 {
		return ecut
	}
	r := math.Sqrt(r2)
	ratio := r0 / r
	ratio6 := math.Pow(ratio, 6)
	e := eps * (ratio6*ratio6 - 2*ratio6)
	if e > ecut {
		return ecut
	}
	return e
}

// Inter is the intermolecular vdW term of §4.4.2: for each ligand atom,
// accumulate pair energy against the receptor atoms in a non-bonded grid.
type Inter struct {
	score.Base
	Ligand *model.Model
	Grid   *grid.NonBondedGrid
	Radius float64 // grid lookup radius per ligand atom
	Ecut   float64
}

// NewInter builds the intermolecular vdW term under the given
// fully-qualified name.
func NewInter(fqName string, ligand *model.Model, g *grid.NonBondedGrid, radius, ecut float64) *Inter {
	return &Inter{Base: score.NewBase(fqName), Ligand: ligand, Grid: g, Radius: radius, Ecut: ecut}
}

// RawScore returns 0 when either the grid or the ligand is absent (§4.4.2
// "fails with no error").
func (t *Inter) RawScore() float64 {
	if t.Ligand == nil || t.Grid == nil {
		return 0
	}
	var sum float64
	for _, a := range t.Ligand.Atoms {
		if !a.Enabled {
			continue
		}
		for _, b := range t.Grid.AtomsAt(a.Coord) {
			sum += pairEnergy(a, b, t.Ecut)
		}
	}
	return sum
}

func (t *Inter) ScoreMap(out map[string]float64) {
	if !t.Enabled() {
		return
	}
	out[t.Name()] = t.RawScore()
}

func (t *Inter) HandleRequest(r request.Request) error {
	_, err := t.HandleBaseRequest(r, func(param string, value any) error {
		if param == "ecut" {
			if v, ok := value.(float64); ok {
				t.Ecut = v
			}
		}
		return nil
	})
	return err
}

// Intra is the intramolecular vdW term of §4.4.3: a full interaction map
// built once at setup, partitioned by distance on a Partition(d) request,
// scored as the pairwise sum over the current partition, relative to the
// zero-point score recorded at the first SetModel.
type Intra struct {
	score.Base
	Ligand *model.Model
	Ecut   float64

	full      map[int][]int // atom ID -> atom IDs that can move relative to it
	partition map[int][]int
	zeroPoint float64
	haveZero  bool
}

// NewIntra builds the intramolecular vdW term and its full interaction
// map from the ligand's rotatable-bond topology.
func NewIntra(fqName string, ligand *model.Model, ecut float64) *Intra {
	t := &Intra{Base: score.NewBase(fqName), Ligand: ligand, Ecut: ecut}
	t.buildFullMap()
	t.partition = t.full
	return t
}

// buildFullMap computes, for each atom, the set of atoms reachable via at
// least one rotatable bond, excluding 1-3 neighbors (bonded or
// one-intermediate-atom away), per §4.4.3.
func (t *Intra) buildFullMap() {
	t.full = map[int][]int{}
	if t.Ligand == nil {
		return
	}
	adj := map[int][]int{}
	rotatable := map[[2]int]bool{}
	for _, b := range t.Ligand.Bonds {
		adj[b.Atom1] = append(adj[b.Atom1], b.Atom2)
		adj[b.Atom2] = append(adj[b.Atom2], b.Atom1)
		if b.Rotatable {
			rotatable[[2]int{b.Atom1, b.Atom2}] = true
			rotatable[[2]int{b.Atom2, b.Atom1}] = true
		}
	}
	excluded := func(i, j int) bool {
		if i == j {
			return true
		}
		for _, n := range adj[i] {
			if n == j {
				return true // 1-2
			}
			for _, n2 := range adj[n] {
				if n2 == j {
					return true // 1-3
				}
			}
		}
		return false
	}
	// reachable walks the bond graph from start; with crossRotatable false
	// it stays inside start's rigid fragment.
	reachable := func(start int, crossRotatable bool) map[int]bool {
		seen := map[int]bool{start: true}
		stack := []int{start}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range adj[n] {
				if (crossRotatable || !rotatable[[2]int{n, nb}]) && !seen[nb] {
					seen[nb] = true
					stack = append(stack, nb)
				}
			}
		}
		return seen
	}
	for _, a := range t.Ligand.Atoms {
		rigid := reachable(a.ID, false)
		var list []int
		for id := range reachable(a.ID, true) {
			if !rigid[id] && !excluded(a.ID, id) {
				list = append(list, id)
			}
		}
		t.full[a.ID] = list
	}
}

// Partition restricts each atom's partitioned interaction list to entries
// within d of that atom's current position; d == 0 restores the full
// list (§4.4.3).
func (t *Intra) Partition(d float64) {
	if d <= 0 {
		t.partition = t.full
		return
	}
	part := map[int][]int{}
	for id, others := range t.full {
		a := t.Ligand.AtomByID(id)
		if a == nil {
			continue
		}
		var kept []int
		for _, oid := range others {
			b := t.Ligand.AtomByID(oid)
			if b == nil {
				continue
			}
			delta := a.Coord.Sub(b.Coord)
			if math.Sqrt(delta.Dot(delta)) <= d {
				kept = append(kept, oid)
			}
		}
		part[id] = kept
	}
	t.partition = part
}

func (t *Intra) rawUnadjusted() float64 {
	if t.Ligand == nil {
		return 0
	}
	var sum float64
	seen := map[[2]int]bool{}
	for id, others := range t.partition {
		a := t.Ligand.AtomByID(id)
		if a == nil {
			continue
		}
		for _, oid := range others {
			key := [2]int{id, oid}
			rev := [2]int{oid, id}
			if seen[key] || seen[rev] {
				continue
			}
			seen[key] = true
			b := t.Ligand.AtomByID(oid)
			if b == nil {
				continue
			}
			sum += pairEnergy(a, b, t.Ecut)
		}
	}
	return sum
}

// RawScore returns the pairwise sum over the current partition, relative
// to the zero-point score recorded on the first call (§4.4.3).
func (t *Intra) RawScore() float64 {
	raw := t.rawUnadjusted()
	if !t.haveZero {
		t.zeroPoint = raw
		t.haveZero = true
	}
	return raw - t.zeroPoint
}

func (t *Intra) ScoreMap(out map[string]float64) {
	if !t.Enabled() {
		return
	}
	out[t.Name()] = t.RawScore()
}

func (t *Intra) HandleRequest(r request.Request) error {
	if r.ID == request.Partition {
		t.Partition(r.Distance())
		return nil
	}
	if r.ID == request.PartitionTerm && r.Name() == t.Name() {
		t.Partition(r.Distance())
		return nil
	}
	_, err := t.HandleBaseRequest(r, nil)
	return err
}
