/*
Package pharma implements C4's pharmacophore restraint term (§4.4.7):
mandatory and optional constraints, each a point with a tolerance and
feature type, scored by squared distance deficit beyond tolerance.
*/
package pharma

import (
	"math"
	"sort"
	"strconv"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/score"
)

// matches reports whether atom a satisfies feature.
func matches(a *model.Atom, feature Feature) bool {
	switch feature {
	case FeatureAny:
		return a.Element != "H"
	case FeatureDonor:
		return a.IsDonorH
	case FeatureAcceptor:
		return a.IsAcceptor
	case FeatureHydrophobic:
		return a.IsHydrophobic
	case FeatureAnionic:
		return a.Anionic
	case FeatureCationic:
		return a.IsCationic
	case FeatureAromatic, FeatureHARomatic:
		return a.IsAromatic
	case FeatureHalogen:
		return a.IsHalogen
	default:
		return false
	}
}

// resolve returns the ligand atoms matching constraint's feature.
func resolve(ligand *model.Model, c Constraint) []*model.Atom {
	var out []*model.Atom
	for _, a := range ligand.Atoms {
		if a.Enabled && matches(a, c.Feature) {
			out = append(out, a)
		}
	}
	return out
}

// constraintScore is §4.4.7's per-constraint score: 0 if no matching
// atoms and the constraint is optional (handled by the caller pre-
// filtering empty optionals out); 99 if evaluated with no matching atoms
// (the mandatory-empty case is pre-rejected by Attach); otherwise the
// squared distance deficit beyond tolerance.
func constraintScore(atoms []*model.Atom, c Constraint) float64 {
	if len(atoms) == 0 {
		return 99
	}
	best := math.MaxFloat64
	for _, a := range atoms {
		d := a.Coord.Sub(c.Center)
		dist := math.Sqrt(d.Dot(d))
		if dist < best {
			best = dist
		}
	}
	dr := best - c.Tolerance
	if dr < 0 {
		dr = 0
	}
	return dr * dr
}

// Term is the pharmacophore scoring term.
type Term struct {
	score.Base
	Mandatory         []Constraint
	Optional          []Constraint
	NOptionalRequired int
	Ligand            *model.Model
}

// NewTerm builds the pharmacophore term.
func NewTerm(fqName string, mandatory, optional []Constraint, nOptionalRequired int) *Term {
	return &Term{Base: score.NewBase(fqName), Mandatory: mandatory, Optional: optional, NOptionalRequired: nOptionalRequired}
}

// Attach resolves every constraint against ligand's current atoms and
// returns a LigandError if, for any feature type, the ligand's matching
// atom count falls short of the number of mandatory constraints requesting
// that feature (§4.4.7), mirroring the original's per-feature-type static
// counter: each constraint of a given feature read from the file demands
// one more matching atom than the last. It must be called once per ligand
// before RawScore.
func (t *Term) Attach(ligand *model.Model) error {
	t.Ligand = ligand
	matched := map[Feature]int{}
	running := map[Feature]int{}
	for _, c := range t.Mandatory {
		if _, ok := matched[c.Feature]; !ok {
			matched[c.Feature] = len(resolve(ligand, Constraint{Feature: c.Feature}))
		}
		running[c.Feature]++
		if running[c.Feature] > matched[c.Feature] {
			return dockerr.NewLigandError(string(c.Feature), running[c.Feature]-matched[c.Feature],
				"pharmacophore: ligand has %d matching %s atom(s) (%d required)", matched[c.Feature], c.Feature, running[c.Feature])
		}
	}
	return nil
}

// RawScore is the sum over mandatory constraints plus the sum of the
// NOptionalRequired lowest optional scores (§4.4.7).
func (t *Term) RawScore() float64 {
	if t.Ligand == nil {
		return 0
	}
	var sum float64
	for _, c := range t.Mandatory {
		sum += constraintScore(resolve(t.Ligand, c), c)
	}
	optScores := make([]float64, 0, len(t.Optional))
	for _, c := range t.Optional {
		atoms := resolve(t.Ligand, c)
		if len(atoms) == 0 {
			optScores = append(optScores, 0)
			continue
		}
		optScores = append(optScores, constraintScore(atoms, c))
	}
	sort.Float64s(optScores)
	n := t.NOptionalRequired
	if n > len(optScores) {
		n = len(optScores)
	}
	for i := 0; i < n; i++ {
		sum += optScores[i]
	}
	return sum
}

func (t *Term) ScoreMap(out map[string]float64) {
	if !t.Enabled() {
		return
	}
	if t.Ligand == nil {
		out[t.Name()] = 0
		return
	}
	var sum float64
	for i, c := range t.Mandatory {
		s := constraintScore(resolve(t.Ligand, c), c)
		out[t.Name()+".con_"+strconv.Itoa(i)] = s
		sum += s
	}
	optScores := make([]float64, 0, len(t.Optional))
	for _, c := range t.Optional {
		atoms := resolve(t.Ligand, c)
		if len(atoms) == 0 {
			optScores = append(optScores, 0)
			continue
		}
		optScores = append(optScores, constraintScore(atoms, c))
	}
	for i, s := range optScores {
		out[t.Name()+".opt_"+strconv.Itoa(i)] = s
	}
	sort.Float64s(optScores)
	n := t.NOptionalRequired
	if n > len(optScores) {
		n = len(optScores)
	}
	for i := 0; i < n; i++ {
		sum += optScores[i]
	}
	out[t.Name()] = sum
}

func (t *Term) HandleRequest(r request.Request) error {
	_, err := t.HandleBaseRequest(r, nil)
	return err
}
