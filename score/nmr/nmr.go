package nmr

import (
	"math"

	"github.com/TimothyStiles/dockcore/grid"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/score"
)

// resolveAtoms returns the atoms of m whose name is in names.
func resolveAtoms(m *model.Model, names []string) []*model.Atom {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []*model.Atom
	for _, a := range m.Atoms {
		if a.Enabled && want[a.Name] {
			out = append(out, a)
		}
	}
	return out
}

func centroid(atoms []*model.Atom) model.Vec3 {
	var sum model.Vec3
	for _, a := range atoms {
		sum = sum.Add(a.Coord)
	}
	return sum.Scale(1 / float64(len(atoms)))
}

// groupDistance is the distance between two atom groups under the group's
// aggregator (NoeRestraint.h's eNoeType: Or = shortest pairwise distance,
// And = longest pairwise distance, Mean = distance between centroids).
func groupDistance(from, to []*model.Atom, agg Aggregator) float64 {
	if agg == Mean {
		fc, tc := centroid(from), centroid(to)
		d := fc.Sub(tc)
		return math.Sqrt(d.Dot(d))
	}
	best := math.Inf(1)
	if agg == And {
		best = math.Inf(-1)
	}
	for _, a := range from {
		for _, b := range to {
			d := a.Coord.Sub(b.Coord)
			dist := math.Sqrt(d.Dot(d))
			if agg == Or && dist < best {
				best = dist
			}
			if agg == And && dist > best {
				best = dist
			}
		}
	}
	return best
}

// penalty is the restraint violation beyond maxDist, 0 within bounds
// (§4.4.8): quadratic by default, or linear when linear is set.
func penalty(dist, maxDist float64, linear bool) float64 {
	delta := dist - maxDist
	if delta <= 0 {
		return 0
	}
	if linear {
		return delta
	}
	return delta * delta
}

// Term is the NMR restraint scoring term: a set of NOE restraints plus STD
// restraints checked against the nearest receptor heavy atom via a
// non-bonded grid (§4.4.8).
type Term struct {
	score.Base
	Ligand        *model.Model
	Restraints    []Restraint
	StdRestraints []StdRestraint
	ReceptorGrid  *grid.NonBondedGrid
	// Linear selects the linear penalty shape over the default quadratic
	// one (§4.4.8); settable via a SetParam request with key "linear".
	Linear bool
}

// NewTerm builds the NMR restraint term. receptorGrid may be nil if no STD
// restraints are present.
func NewTerm(fqName string, ligand *model.Model, restraints []Restraint, std []StdRestraint, receptorGrid *grid.NonBondedGrid) *Term {
	return &Term{Base: score.NewBase(fqName), Ligand: ligand, Restraints: restraints, StdRestraints: std, ReceptorGrid: receptorGrid}
}

// nearestReceptorDistance returns the distance from coord to the closest
// non-hydrogen atom among those grid.AtomsAt(coord) returns, or an
// infinite distance when there is no grid or no such atom there.
func (t *Term) nearestReceptorDistance(coord model.Vec3) float64 {
	if t.ReceptorGrid == nil {
		return math.Inf(1)
	}
	atoms := t.ReceptorGrid.AtomsAt(coord)
	best := math.Inf(1)
	for _, a := range atoms {
		if a.Element == "H" {
			continue
		}
		d := a.Coord.Sub(coord)
		dist := math.Sqrt(d.Dot(d))
		if dist < best {
			best = dist
		}
	}
	return best
}

func (t *Term) stdScore(r StdRestraint) float64 {
	atoms := resolveAtoms(t.Ligand, r.From.Names)
	if len(atoms) == 0 {
		return 0
	}
	worst := 0.0
	for _, a := range atoms {
		dist := t.nearestReceptorDistance(a.Coord)
		if p := penalty(dist, r.MaxDist, t.Linear); p > worst {
			worst = p
		}
	}
	return worst
}

// RawScore sums the penalty of every NOE and STD restraint (§4.4.8).
func (t *Term) RawScore() float64 {
	if t.Ligand == nil {
		return 0
	}
	var sum float64
	for _, r := range t.Restraints {
		from := resolveAtoms(t.Ligand, r.From.Names)
		to := resolveAtoms(t.Ligand, r.To.Names)
		if len(from) == 0 || len(to) == 0 {
			continue
		}
		dist := groupDistance(from, to, restraintAgg(r))
		sum += penalty(dist, r.MaxDist, t.Linear)
	}
	for _, r := range t.StdRestraints {
		sum += t.stdScore(r)
	}
	return sum
}

// restraintAgg resolves a two-ended restraint's aggregator by taking
// From's. Agreement with To's aggregator is not checked; To's aggregator
// does not affect the distance.
func restraintAgg(r Restraint) Aggregator { return r.From.Agg }

func (t *Term) ScoreMap(out map[string]float64) {
	if !t.Enabled() {
		return
	}
	out[t.Name()] = t.RawScore()
}

func (t *Term) HandleRequest(r request.Request) error {
	_, err := t.HandleBaseRequest(r, func(param string, value any) error {
		if param == "linear" {
			if v, ok := value.(bool); ok {
				t.Linear = v
			}
		}
		return nil
	})
	return err
}
