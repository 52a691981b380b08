package transform

import (
	"github.com/TimothyStiles/dockcore/chrom"
	"github.com/TimothyStiles/dockcore/population"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/rng"
	"github.com/TimothyStiles/dockcore/score"
)

// GA evolves Population in place over successive cycles (§4.6.4).
type GA struct {
	Base
	Population *population.Population
	rng        *rng.Source

	NewFraction       float64
	PCrossover        float64
	XoverMut          bool
	CMutate           bool
	StepSize          float64
	EqualityThreshold float64
	NCycles           int
	NConvergence      int
}

// NewGA builds a GA transform with the teacher's GATransform defaults.
func NewGA(fqName string, pop *population.Population, r *rng.Source) *GA {
	return &GA{
		Base:              NewBase(fqName),
		Population:        pop,
		rng:               r,
		NewFraction:       0.5,
		PCrossover:        0.4,
		XoverMut:          true,
		CMutate:           true,
		StepSize:          1.0,
		EqualityThreshold: 0.1,
		NCycles:           100,
		NConvergence:      4,
	}
}

// Execute runs the GA loop of §4.6.4 to completion: each cycle forces
// full interaction lists, breeds new_fraction*pop_size offspring by
// roulette-wheel-selected crossover/mutation, merges them into Population
// (deduping and truncating), and stops after NConvergence cycles without a
// best-score improvement or after NCycles, whichever comes first.
func (t *GA) Execute(sf score.Term) error {
	if t.Population == nil || t.Population.ActualSize() == 0 {
		return nil
	}

	best := t.Population.Best()
	bestScore := best.Score()
	noImprove := 0

	nNew := int(t.NewFraction * float64(t.Population.MaxSize()))
	if nNew < 2 {
		nNew = 2
	}

	for cycle := 0; cycle < t.NCycles; cycle++ {
		t.AddSFRequest(request.NewPartition(0))
		if err := t.SendSFRequests(sf); err != nil {
			return err
		}
		t.ClearSFRequests()

		offspring := make([]*population.Genome, 0, nNew)
		for len(offspring) < nNew {
			p1 := t.Population.RouletteWheelSelect()
			p2 := t.Population.RouletteWheelSelect()

			var c1, c2 *chrom.Chrom
			crossed := false
			if t.rng.Uniform01() < t.PCrossover {
				var err error
				c1, c2, err = chrom.Crossover(p1.Chrom, p2.Chrom, t.rng)
				if err != nil {
					return err
				}
				crossed = true
			} else {
				c1 = p1.Chrom.Clone().(*chrom.Chrom)
				c2 = p2.Chrom.Clone().(*chrom.Chrom)
			}

			if t.XoverMut || !crossed {
				dist := chrom.Uniform
				if t.CMutate {
					dist = chrom.Cauchy
				}
				c1.Mutate(t.StepSize, dist, t.rng)
				c2.Mutate(t.StepSize, dist, t.rng)
			}

			g1 := population.NewGenome(c1)
			if err := g1.SetScore(sf); err != nil {
				return err
			}
			g2 := population.NewGenome(c2)
			if err := g2.SetScore(sf); err != nil {
				return err
			}
			offspring = append(offspring, g1, g2)
		}

		t.Population.MergeNewPop(offspring, t.EqualityThreshold)

		if newBest := t.Population.Best(); newBest != nil && newBest.Score() > bestScore {
			bestScore = newBest.Score()
			noImprove = 0
		} else {
			noImprove++
		}
		if noImprove >= t.NConvergence {
			break
		}
	}

	if newBest := t.Population.Best(); newBest != nil {
		return newBest.Chrom.SyncToModel()
	}
	return nil
}

func (t *GA) HandleRequest(r request.Request) error {
	_, err := t.HandleBaseRequest(r, func(param string, value any) error {
		switch param {
		case "new_fraction":
			if v, ok := value.(float64); ok {
				t.NewFraction = v
			}
		case "pcrossover":
			if v, ok := value.(float64); ok {
				t.PCrossover = v
			}
		case "xovermut":
			if v, ok := value.(bool); ok {
				t.XoverMut = v
			}
		case "cmutate":
			if v, ok := value.(bool); ok {
				t.CMutate = v
			}
		case "step_size":
			if v, ok := value.(float64); ok {
				t.StepSize = v
			}
		case "equality_threshold":
			if v, ok := value.(float64); ok {
				t.EqualityThreshold = v
			}
		case "ncycles":
			if v, ok := value.(int); ok {
				t.NCycles = v
			}
		case "nconvergence":
			if v, ok := value.(int); ok {
				t.NConvergence = v
			}
		}
		return nil
	})
	return err
}
