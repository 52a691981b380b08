package chrom

import (
	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/rng"
)

// Crossover performs 2-point crossover between two parent chromosomes,
// returning two children, per §4.3.7. i_begin and i_end are chosen
// uniformly in xover-length space so that each element's crossover unit
// (a position or orientation triple, a single dihedral) is always swapped
// as one indivisible unit.
func Crossover(parent1, parent2 *Chrom, r *rng.Source) (child1, child2 *Chrom, err error) {
	if parent1.XoverLength() != parent2.XoverLength() {
		return nil, nil, dockerr.New(dockerr.BadArgument, "crossover: parents have different xover lengths (%d vs %d)", parent1.XoverLength(), parent2.XoverLength())
	}
	l := parent1.XoverLength()
	if l == 0 {
		return parent1.Clone().(*Chrom), parent2.Clone().(*Chrom), nil
	}

	var xv1, xv2 [][]float64
	parent1.GetXoverVector(&xv1)
	parent2.GetXoverVector(&xv2)

	begin := r.UniformInt(l)
	end := begin + 1 + r.UniformInt(l-begin)
	if end > l {
		end = l
	}

	out1 := make([][]float64, l)
	out2 := make([][]float64, l)
	copy(out1, xv1)
	copy(out2, xv2)
	for i := begin; i < end; i++ {
		out1[i] = xv2[i]
		out2[i] = xv1[i]
	}

	child1 = parent1.Clone().(*Chrom)
	child2 = parent2.Clone().(*Chrom)
	idx := 0
	if err := child1.SetXoverVector(out1, &idx); err != nil {
		return nil, nil, err
	}
	idx = 0
	if err := child2.SetXoverVector(out2, &idx); err != nil {
		return nil, nil, err
	}
	return child1, child2, nil
}
