/*
Package population implements C7: a fixed-size collection of chromosome
genomes ranked for genetic-algorithm selection, grounded on
`include/rxdock/Population.h` and `include/rxdock/Genome.h`.
*/
package population

import (
	"github.com/TimothyStiles/dockcore/chrom"
	"github.com/TimothyStiles/dockcore/score"
)

// Genome pairs a cloned chromosome with the raw score last computed for it
// and a roulette-wheel fitness value (§4.7).
type Genome struct {
	Chrom     *chrom.Chrom
	score     float64
	rwFitness float64
}

// NewGenome wraps seed (already a clone suitable for this genome to own).
func NewGenome(seed *chrom.Chrom) *Genome {
	return &Genome{Chrom: seed}
}

// SetScore projects the genome's chromosome onto its models and records
// sf's weighted score, negated so that higher is better (energies are
// naturally lower-is-better; GenomeCmp_Score/roulette selection both
// assume higher-is-better). A nil sf scores zero.
func (g *Genome) SetScore(sf score.Term) error {
	if err := g.Chrom.SyncToModel(); err != nil {
		return err
	}
	if sf == nil {
		g.score = 0
		return nil
	}
	g.score = -score.Score(sf)
	return nil
}

// Score returns the last value SetScore recorded.
func (g *Genome) Score() float64 { return g.score }

// SetRWFitness applies sigma-truncation scaling (Goldberg): fitness =
// max(0, score-sigmaOffset) plus the running partialSum, returning the new
// partial sum (§4.6.4 step 4).
func (g *Genome) SetRWFitness(sigmaOffset, partialSum float64) float64 {
	f := g.score - sigmaOffset
	if f < 0 {
		f = 0
	}
	g.rwFitness = f + partialSum
	return g.rwFitness
}

// NormaliseRWFitness divides the fitness by total so the final genome's
// cumulative fitness is 1, enabling roulette-wheel draws over [0,1).
func (g *Genome) NormaliseRWFitness(total float64) {
	if total > 0 {
		g.rwFitness /= total
	}
}

// RWFitness returns the cumulative, normalised roulette-wheel fitness.
func (g *Genome) RWFitness() float64 { return g.rwFitness }

// Equals reports whether g and other's chromosomes differ by no more than
// threshold (step-normalised max difference), ignoring score (§4.7).
func (g *Genome) Equals(other *Genome, threshold float64) bool {
	d := g.Chrom.Compare(other.Chrom)
	return d >= 0 && d <= threshold
}

// Clone returns a genome with an independent chromosome copy and the same
// recorded score/fitness.
func (g *Genome) Clone() *Genome {
	return &Genome{Chrom: g.Chrom.Clone().(*chrom.Chrom), score: g.score, rwFitness: g.rwFitness}
}
