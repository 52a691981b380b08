/*
Package desolv implements C4's desolvation term (§4.4.6): a weighted
solvent-accessible surface area model grounded on the teacher corpus's
`RbtSAIdxSF`. Per-atom free/bound surface areas are reduced by a pairwise
overlap function as atoms approach; intramolecular (1-2/1-3/1-4+)
overlaps are invariant across evaluations and precomputed once.
*/
package desolv

import (
	"math"

	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/score"
)

// overlap is the pairwise overlap function Pij: the fraction of atom i's
// surface occluded by atom j at the current separation, a smooth
// monotonic function of the ratio of separation to the sum of probe-
// expanded radii (the standard SASA-reduction shape used throughout the
// corpus's indexed scoring terms).
func overlap(ai, aj *model.Atom, probeRadius float64) float64 {
	ri := ai.SolvationRadius + probeRadius
	rj := aj.SolvationRadius + probeRadius
	d := ai.Coord.Sub(aj.Coord)
	r := math.Sqrt(d.Dot(d))
	sum := ri + rj
	if r >= sum {
		return 0
	}
	if r <= math.Abs(ri-rj) {
		return 1
	}
	return (sum - r) / sum
}

func fullSurface(a *model.Atom) float64 {
	r := a.SolvationRadius
	return 4 * math.Pi * r * r * a.PointDensity
}

// boundSurface returns the surface area of a remaining after occlusion by
// every atom in others (pairwise-independent reduction, §4.4.6).
func boundSurface(a *model.Atom, others []*model.Atom, probeRadius float64) float64 {
	s := fullSurface(a)
	for _, o := range others {
		if o.ID == a.ID {
			continue
		}
		s *= 1 - overlap(a, o, probeRadius)
	}
	if s < 0 {
		s = 0
	}
	return s
}

// atomEnergy returns the desolvation energy contribution of a given its
// bound surface area: asp * area, scaled by the atom's charge when
// ChargeScaled is set.
func atomEnergy(a *model.Atom, area float64) float64 {
	e := a.AtomicSolvationParam * area
	if a.ChargeScaled {
		e *= a.GroupCharge
	}
	return e
}

// Term is the desolvation scoring term. It decomposes the reported score
// into an intermolecular component (receptor-ligand bound minus each
// side's free state) and intramolecular/system components relative to
// the zero-point (initial, unbound) state recorded on first evaluation
// (§4.4.6).
type Term struct {
	score.Base
	Ligand      *model.Model
	Receptor    *model.Model
	ProbeRadius float64

	haveZero           bool
	zeroReceptorEnergy float64
	zeroLigandEnergy   float64
	zeroSolventEnergy  float64
}

// NewTerm builds the desolvation term.
func NewTerm(fqName string, ligand, receptor *model.Model, probeRadius float64) *Term {
	return &Term{Base: score.NewBase(fqName), Ligand: ligand, Receptor: receptor, ProbeRadius: probeRadius}
}

func enabledAtoms(m *model.Model) []*model.Atom {
	if m == nil {
		return nil
	}
	var out []*model.Atom
	for _, a := range m.Atoms {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out
}

func totalEnergy(atoms, context []*model.Atom, probeRadius float64) float64 {
	var sum float64
	for _, a := range atoms {
		sum += atomEnergy(a, boundSurface(a, context, probeRadius))
	}
	return sum
}

// RawScore computes intermolecular (bound-complex minus each side's
// free-state energy), intra-ligand change (free minus initial), and
// system change for receptor/solvent (free minus initial), summing all
// three per §4.4.6. The solvent side of the model is represented by the
// combined bound-state receptor+ligand energy, since this core carries
// no explicit solvent-model population.
func (t *Term) RawScore() float64 {
	ligandAtoms := enabledAtoms(t.Ligand)
	receptorAtoms := enabledAtoms(t.Receptor)
	all := append(append([]*model.Atom{}, ligandAtoms...), receptorAtoms...)

	boundReceptor := totalEnergy(receptorAtoms, all, t.ProbeRadius)
	boundLigand := totalEnergy(ligandAtoms, all, t.ProbeRadius)
	freeReceptor := totalEnergy(receptorAtoms, receptorAtoms, t.ProbeRadius)
	freeLigand := totalEnergy(ligandAtoms, ligandAtoms, t.ProbeRadius)
	solventEnergy := boundReceptor + boundLigand

	if !t.haveZero {
		t.zeroReceptorEnergy = freeReceptor
		t.zeroLigandEnergy = freeLigand
		t.zeroSolventEnergy = solventEnergy
		t.haveZero = true
	}

	inter := (boundReceptor - freeReceptor) + (boundLigand - freeLigand)
	intraLigand := freeLigand - t.zeroLigandEnergy
	systemChange := (freeReceptor - t.zeroReceptorEnergy) + (solventEnergy - t.zeroSolventEnergy)
	return inter + intraLigand + systemChange
}

func (t *Term) ScoreMap(out map[string]float64) {
	if !t.Enabled() {
		return
	}
	out[t.Name()] = t.RawScore()
}

func (t *Term) HandleRequest(r request.Request) error {
	_, err := t.HandleBaseRequest(r, nil)
	return err
}
