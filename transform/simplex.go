package transform

import (
	"github.com/TimothyStiles/dockcore/chrom"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/rng"
	"github.com/TimothyStiles/dockcore/score"
)

// Simplex minimises the scoring function over Chrom's flat vector by
// repeated Nelder-Mead cycles (§4.6.6). Each cycle reinitialises the
// simplex from the current best point with per-coordinate deltas equal to
// StepSize times the chromosome's step vector, and the outer loop stops
// once a cycle's improvement in the best score drops below Tolerance or
// after NCycles cycles.
//
// Per spec.md's §9 Open Question 2, Tolerance serves both the inner
// per-iteration relative-value stopping criterion (NMCriteria.h's
// RelativeValueCriterion) and this outer cycle-to-cycle convergence gate;
// parameter files may set it under either the "convergence" or "ftol"
// name — both are aliases for the same field here.
type Simplex struct {
	Base
	Chrom *chrom.Chrom
	rng   *rng.Source

	MaxCalls      int
	NCycles       int
	StepSize      float64
	Tolerance     float64
	PartitionDist float64
}

// NewSimplex builds a Simplex transform with the teacher's
// SimplexTransform defaults.
func NewSimplex(fqName string, c *chrom.Chrom, r *rng.Source) *Simplex {
	return &Simplex{
		Base:          NewBase(fqName),
		Chrom:         c,
		rng:           r,
		MaxCalls:      200,
		NCycles:       5,
		StepSize:      0.1,
		Tolerance:     0.001,
		PartitionDist: 0,
	}
}

func (t *Simplex) Execute(sf score.Term) error {
	if t.Chrom == nil {
		return nil
	}

	t.Chrom.SyncFromModel()
	var steps []float64
	t.Chrom.GetStepVector(&steps)

	eval := func(v []float64) (float64, error) {
		idx := 0
		if err := t.Chrom.SetVector(v, &idx); err != nil {
			return 0, err
		}
		if err := t.Chrom.SyncToModel(); err != nil {
			return 0, err
		}
		return score.Score(sf), nil
	}

	min := score.Score(sf)
	// Negative and below -Tolerance so the first cycle always runs.
	delta := -t.Tolerance - 1.0

	for cycle := 0; cycle < t.NCycles && delta < -t.Tolerance; cycle++ {
		if t.PartitionDist > 0 {
			t.AddSFRequest(request.NewPartition(t.PartitionDist))
			if err := t.SendSFRequests(sf); err != nil {
				return err
			}
			t.ClearSFRequests()
		}

		var start []float64
		t.Chrom.GetVector(&start)

		simplexDeltas := make([]float64, len(start))
		for i := range simplexDeltas {
			if i < len(steps) {
				simplexDeltas[i] = steps[i] * t.StepSize
			}
		}

		best, bestVal, err := optimizeSimplex(start, simplexDeltas, t.MaxCalls, t.Tolerance, eval)
		if err != nil {
			return err
		}
		delta = bestVal - min
		min = bestVal

		idx := 0
		if err := t.Chrom.SetVector(best, &idx); err != nil {
			return err
		}
		if err := t.Chrom.SyncToModel(); err != nil {
			return err
		}
	}

	t.AddSFRequest(request.NewPartition(0))
	if err := t.SendSFRequests(sf); err != nil {
		return err
	}
	t.ClearSFRequests()
	return nil
}

func (t *Simplex) HandleRequest(r request.Request) error {
	_, err := t.HandleBaseRequest(r, func(param string, value any) error {
		switch param {
		case "max_calls":
			if v, ok := value.(int); ok {
				t.MaxCalls = v
			}
		case "ncycles":
			if v, ok := value.(int); ok {
				t.NCycles = v
			}
		case "step_size":
			if v, ok := value.(float64); ok {
				t.StepSize = v
			}
		case "convergence", "ftol":
			if v, ok := value.(float64); ok {
				t.Tolerance = v
			}
		case "partition_dist":
			if v, ok := value.(float64); ok {
				t.PartitionDist = v
			}
		}
		return nil
	})
	return err
}
