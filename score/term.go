/*
Package score implements the C4/C5 scoring terms and the weighted-sum
aggregate that combines them: f1, the shared trapezoidal smoothing
function (§4.4.1); the Term/Aggregate contract terms and composites
implement (§4.5); and the request-handling default of "aggregate
delegates to children unless a term intercepts" (§4.5, §4.9).
*/
package score

import "github.com/TimothyStiles/dockcore/request"

// Term is a single scoring contributor or a composite of them (§4.5).
// Concrete leaf terms live in the score subpackages (vdw, polar,
// aromatic, desolv, pharma, nmr, cavity); Aggregate composes them.
type Term interface {
	// Name is the term's dotted fully-qualified name, e.g.
	// "rxdock.score.inter.vdw".
	Name() string
	// Enabled reports whether the term contributes to its parent's score.
	Enabled() bool
	SetEnabled(enabled bool)
	// Weight is the scalar the term's raw score is multiplied by before
	// it is added to a parent's cumulative total.
	Weight() float64
	SetWeight(w float64)
	// RawScore returns the term's own unweighted score, recomputing it
	// from current model/grid state.
	RawScore() float64
	// ScoreMap computes RawScore once and records it (and any annotated
	// sub-scores, keyed "name.con_i"/"name.opt_i") into out under Name().
	// An Aggregate's ScoreMap additionally records its own cumulative
	// weighted total under its own name.
	ScoreMap(out map[string]float64)
	// HandleRequest processes a request bus message; the default for
	// composites is "delegate to children", for leaves "ignore unless it
	// matches this term's own name".
	HandleRequest(r request.Request) error
}

// Score returns Weight() * RawScore() if the term is enabled, else 0,
// per §4.5's score() semantics.
func Score(t Term) float64 {
	if !t.Enabled() {
		return 0
	}
	return t.Weight() * t.RawScore()
}

// f1 is the shared trapezoidal smoothing function of §4.4.1.
func f1(delta, deltaMin, deltaMax float64) float64 {
	d := delta
	if d < 0 {
		d = -d
	}
	switch {
	case d <= deltaMin:
		return 1
	case d <= deltaMax:
		return 1 - (d-deltaMin)/(deltaMax-deltaMin)
	default:
		return 0
	}
}

// F1 exports f1 for subpackages (score/vdw, score/polar, ...) that need
// the same trapezoidal smoothing without duplicating it.
func F1(delta, deltaMin, deltaMax float64) float64 { return f1(delta, deltaMin, deltaMax) }
