package transform

import (
	"github.com/TimothyStiles/dockcore/chrom"
	"github.com/TimothyStiles/dockcore/population"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/rng"
	"github.com/TimothyStiles/dockcore/score"
)

// RandPop builds a fresh Population from Seed and installs it in
// Population, scaling the requested size by the chromosome's length
// unless ScaleChromLength is false (§4.6.3).
type RandPop struct {
	Base
	Seed             *chrom.Chrom
	PopSize          int
	ScaleChromLength bool
	rng              *rng.Source

	Population *population.Population
}

// NewRandPop builds a RandPop transform with the teacher defaults
// (PopSize=50, ScaleChromLength=true), matching RandPopTransform's
// constructor.
func NewRandPop(fqName string, seed *chrom.Chrom, r *rng.Source) *RandPop {
	return &RandPop{
		Base:             NewBase(fqName),
		Seed:             seed,
		PopSize:          50,
		ScaleChromLength: true,
		rng:              r,
	}
}

func (t *RandPop) Execute(sf score.Term) error {
	if t.Seed == nil {
		return nil
	}
	size := t.PopSize
	if t.ScaleChromLength {
		size *= t.Seed.Length()
	}
	pop, err := population.New(t.Seed, size, sf, t.rng)
	if err != nil {
		return err
	}
	t.Population = pop
	return nil
}

func (t *RandPop) HandleRequest(r request.Request) error {
	_, err := t.HandleBaseRequest(r, func(param string, value any) error {
		switch param {
		case "pop_size":
			if v, ok := value.(int); ok {
				t.PopSize = v
			}
		case "scale_chrom_length":
			if v, ok := value.(bool); ok {
				t.ScaleChromLength = v
			}
		}
		return nil
	})
	return err
}
