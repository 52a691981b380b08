/*
Package polar implements C4's polar (H-bond / metal / guanidinium)
interaction term (§4.4.4), grounded on the teacher corpus's
`RbtPolarSF`/`RbtPolarIntraSF` family: a distance f1 times one or two
angular f1 terms, scaled by both partners' user1 weighting scalars.
*/
package polar

import (
	"math"

	"github.com/TimothyStiles/dockcore/ic"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/score"
)

// Params bundles the distance and angular tolerances of §4.4.4. Separate
// Params values distinguish the attractive (donor-acceptor) and repulsive
// (donor-donor/acceptor-acceptor) variants the spec calls out.
type Params struct {
	R12         float64 // ideal donor-acceptor distance
	DeltaMinR   float64
	DeltaMaxR   float64
	IdealAngle  float64 // degrees, ideal donor/acceptor angle
	DeltaMinA   float64
	DeltaMaxA   float64
	LonePairPhi float64 // degrees, ideal in-plane angle for LonePair ICs (~45)
}

func angleDeg(a, b model.Vec3) float64 {
	na := math.Sqrt(a.Dot(a))
	nb := math.Sqrt(b.Dot(b))
	if na < 1e-9 || nb < 1e-9 {
		return 0
	}
	cosv := a.Dot(b) / (na * nb)
	cosv = math.Max(-1, math.Min(1, cosv))
	return math.Acos(cosv) * 180.0 / math.Pi
}

// angularTerm computes c's angular f1 contribution toward a partner
// anchored at partner, dispatching on geometry per §4.4.4: point+axis
// centers use the deviation from the ideal donor/acceptor angle; Plane
// centers use the angle between the axis-to-partner vector and the plane
// normal; LonePair centers combine an out-of-plane and an in-plane term.
func angularTerm(c *ic.Center, partner model.Vec3, p Params) float64 {
	toPartner := partner.Sub(c.Anchor())
	switch c.Geom {
	case ic.None:
		axis := c.Axis()
		if axis == (model.Vec3{}) {
			return 1
		}
		dev := angleDeg(axis, toPartner) - p.IdealAngle
		return score.F1(dev, p.DeltaMinA, p.DeltaMaxA)
	case ic.Plane:
		normal := c.Normal()
		theta := 90 - angleDeg(normal, toPartner) // deviation from in-plane
		return score.F1(theta, p.DeltaMinA, p.DeltaMaxA)
	case ic.LonePair:
		normal := c.Normal()
		theta := 90 - angleDeg(normal, toPartner)
		outOfPlane := score.F1(theta, p.DeltaMinA, p.DeltaMaxA)
		// in-plane angle phi, measured between the projection of
		// toPartner onto the plane and the A2 direction (the lone-pair
		// reference axis).
		proj := toPartner.Sub(normal.Scale(toPartner.Dot(normal) / math.Max(normal.Dot(normal), 1e-12)))
		ref := c.A2.Coord.Sub(c.A1.Coord)
		phi := angleDeg(proj, ref)
		inPlane := score.F1(phi-p.LonePairPhi, p.DeltaMinA, p.DeltaMaxA)
		return outOfPlane * inPlane
	default:
		return 1
	}
}

// Pair scores one interaction-center pair under Params, returning the
// product of the distance term and both partners' angular terms, scaled
// by each center's anchor atom's U1 (formal charge / local density).
func Pair(a, b *ic.Center, p Params) float64 {
	if a == nil || b == nil || !a.Enabled() || !b.Enabled() {
		return 0
	}
	anchorA, anchorB := a.Anchor(), b.Anchor()
	d := anchorA.Sub(anchorB)
	r := math.Sqrt(d.Dot(d))
	distTerm := score.F1(r-p.R12, p.DeltaMinR, p.DeltaMaxR)
	if distTerm == 0 {
		return 0
	}
	angA := angularTerm(a, anchorB, p)
	if angA == 0 {
		return 0
	}
	angB := angularTerm(b, anchorA, p)
	if angB == 0 {
		return 0
	}
	return distTerm * angA * angB * a.A1.U1 * b.A1.U1
}

// Inter is the intermolecular polar term: for each ligand polar center,
// look up nearby receptor centers in an interaction grid and sum Pair
// scores.
type Inter struct {
	score.Base
	LigandCenters []*ic.Center
	Grid          *ic.InteractionGrid
	Params        Params
}

// NewInter builds the intermolecular polar term.
func NewInter(fqName string, ligandCenters []*ic.Center, g *ic.InteractionGrid, p Params) *Inter {
	return &Inter{Base: score.NewBase(fqName), LigandCenters: ligandCenters, Grid: g, Params: p}
}

func (t *Inter) RawScore() float64 {
	if t.Grid == nil {
		return 0
	}
	var sum float64
	for _, lc := range t.LigandCenters {
		for _, rc := range ic.CentersAt(t.Grid, lc.Anchor()) {
			sum += Pair(lc, rc, t.Params)
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
	_, err := t.HandleBaseRequest(r, nil)
	return err
}
