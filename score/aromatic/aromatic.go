/*
Package aromatic implements C4's aromatic ring-stacking term (§4.4.5),
grounded on the teacher corpus's `RbtAromIdxSF`: average perpendicular
ring-centroid-to-plane distance gated by f1, then an average slip-angle
f1, with guanidinium carbons sharing the same primitive against aromatic
rings.
*/
package aromatic

import (
	"math"

	"github.com/TimothyStiles/dockcore/ic"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/score"
)

// Params bundles the distance and slip-angle tolerances of §4.4.5.
type Params struct {
	R0             float64
	DeltaMinR      float64
	DeltaMaxR      float64
	DeltaMinAngle  float64
	DeltaMaxAngle  float64
	CountThreshold float64 // raw per-pair score above which a hit is counted
}

// Pair scores one aromatic-aromatic (or guanidinium-aromatic) pair: the
// average perpendicular distance of each centroid from the other's
// plane, gated by distance f1, then the average slip angle between the
// centroid-centroid vector and each plane normal, gated by angle f1.
func Pair(a, b *ic.Center, p Params) float64 {
	if a == nil || b == nil || !a.Enabled() || !b.Enabled() {
		return 0
	}
	ca, cb := a.Anchor(), b.Anchor()
	sep := cb.Sub(ca)
	dist := math.Sqrt(sep.Dot(sep))

	na, nb := a.Normal(), b.Normal()
	normA := math.Sqrt(na.Dot(na))
	normB := math.Sqrt(nb.Dot(nb))
	if normA < 1e-9 || normB < 1e-9 || dist < 1e-9 {
		return 0
	}

	perpA := math.Abs(sep.Dot(na)) / normA
	perpB := math.Abs(sep.Dot(nb)) / normB
	avgPerp := (perpA + perpB) / 2

	distTerm := score.F1(avgPerp-p.R0, p.DeltaMinR, p.DeltaMaxR)
	if distTerm == 0 {
		return 0
	}

	cosA := math.Abs(sep.Dot(na)) / (dist * normA)
	cosB := math.Abs(sep.Dot(nb)) / (dist * normB)
	cosA = math.Max(-1, math.Min(1, cosA))
	cosB = math.Max(-1, math.Min(1, cosB))
	slipA := math.Acos(cosA) * 180.0 / math.Pi
	slipB := math.Acos(cosB) * 180.0 / math.Pi
	avgSlip := (slipA + slipB) / 2

	angTerm := score.F1(avgSlip, p.DeltaMinAngle, p.DeltaMaxAngle)
	return distTerm * angTerm
}

// Term is the aromatic scoring term: a list of ligand ring/guanidinium
// centers scored against a list of receptor ring/guanidinium centers.
type Term struct {
	score.Base
	LigandCenters   []*ic.Center
	ReceptorCenters []*ic.Center
	Params          Params

	lastCount int
}

// NewTerm builds the aromatic term.
func NewTerm(fqName string, ligandCenters, receptorCenters []*ic.Center, p Params) *Term {
	return &Term{Base: score.NewBase(fqName), LigandCenters: ligandCenters, ReceptorCenters: receptorCenters, Params: p}
}

// RawScore sums Pair over every ligand/receptor center combination and
// records the count of interactions exceeding CountThreshold as a raw
// descriptor (§4.4.5).
func (t *Term) RawScore() float64 {
	var sum float64
	count := 0
	for _, lc := range t.LigandCenters {
		for _, rc := range t.ReceptorCenters {
			s := Pair(lc, rc, t.Params)
			sum += s
			if s > t.Params.CountThreshold {
				count++
			}
		}
	}
	t.lastCount = count
	return sum
}

func (t *Term) ScoreMap(out map[string]float64) {
	if !t.Enabled() {
		return
	}
	out[t.Name()] = t.RawScore()
	out[t.Name()+".count"] = float64(t.lastCount)
}

func (t *Term) HandleRequest(r request.Request) error {
	_, err := t.HandleBaseRequest(r, nil)
	return err
}
