package population

import (
	"math"

	"golang.org/x/exp/slices"

	"github.com/TimothyStiles/dockcore/chrom"
	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/rng"
	"github.com/TimothyStiles/dockcore/score"
)

// sigmaTruncationMultiplier is Goldberg's recommended c for sigma scaling
// (Goldberg, "Genetic Algorithms in Search, Optimization and Machine
// Learning", p.124), matching the teacher's m_c default.
const sigmaTruncationMultiplier = 2.0

// Population is a fixed-size, score-ranked collection of genomes cloned
// from a seed chromosome (§4.7).
type Population struct {
	genomes       []*Genome
	maxSize       int
	scoreMean     float64
	scoreVariance float64
	rng           *rng.Source
}

// New builds a randomised population of size genomes cloned from seed,
// scores each with sf, sorts descending by score, and computes roulette
// fitnesses. Syncs the best genome's chromosome back to the model on
// return, matching the constructor contract of Population.h.
func New(seed *chrom.Chrom, size int, sf score.Term, r *rng.Source) (*Population, error) {
	if size <= 0 {
		return nil, dockerr.New(dockerr.BadArgument, "population: size must be positive, got %d", size)
	}
	if seed == nil {
		return nil, dockerr.New(dockerr.BadArgument, "population: seed chromosome must not be nil")
	}
	p := &Population{maxSize: size, rng: r}
	for i := 0; i < size; i++ {
		g := NewGenome(seed.Clone().(*chrom.Chrom))
		g.Chrom.Randomise(r)
		if err := g.SetScore(sf); err != nil {
			return nil, err
		}
		p.genomes = append(p.genomes, g)
	}
	p.sortByScore()
	p.evaluateRWFitness()
	if best := p.Best(); best != nil {
		if err := best.Chrom.SyncToModel(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Population) sortByScore() {
	slices.SortFunc(p.genomes, func(a, b *Genome) bool { return a.score > b.score })
	p.recomputeMoments()
}

func (p *Population) recomputeMoments() {
	n := len(p.genomes)
	if n == 0 {
		p.scoreMean, p.scoreVariance = 0, 0
		return
	}
	var sum float64
	for _, g := range p.genomes {
		sum += g.score
	}
	mean := sum / float64(n)
	var sq float64
	for _, g := range p.genomes {
		d := g.score - mean
		sq += d * d
	}
	p.scoreMean = mean
	p.scoreVariance = sq / float64(n)
}

// evaluateRWFitness applies sigma-truncation scaling over the
// score-descending list, then normalises so the cumulative sum is 1
// (§4.6.4 step 4). The population must already be sorted by score.
func (p *Population) evaluateRWFitness() {
	if len(p.genomes) == 0 {
		return
	}
	sigmaOffset := p.scoreMean - sigmaTruncationMultiplier*math.Sqrt(p.scoreVariance)
	var partialSum float64
	for _, g := range p.genomes {
		partialSum = g.SetRWFitness(sigmaOffset, partialSum)
	}
	total := partialSum
	for _, g := range p.genomes {
		g.NormaliseRWFitness(total)
	}
}

// MaxSize returns the configured population size.
func (p *Population) MaxSize() int { return p.maxSize }

// ActualSize returns the current genome count, which may fall below
// MaxSize after duplicate removal.
func (p *Population) ActualSize() int { return len(p.genomes) }

// Best returns the top-ranked genome, or nil if the population is empty.
func (p *Population) Best() *Genome {
	if len(p.genomes) == 0 {
		return nil
	}
	return p.genomes[0]
}

// ScoreMean returns the mean raw score across the population.
func (p *Population) ScoreMean() float64 { return p.scoreMean }

// ScoreVariance returns the raw score variance across the population.
func (p *Population) ScoreVariance() float64 { return p.scoreVariance }

// Genomes returns the population's genomes in ranked order.
func (p *Population) Genomes() []*Genome { return p.genomes }

// RouletteWheelSelect draws u ~ Uniform(0,1) and returns the first genome
// whose cumulative fitness is >= u (§4.7).
func (p *Population) RouletteWheelSelect() *Genome {
	if len(p.genomes) == 0 {
		return nil
	}
	u := p.rng.Uniform01()
	for _, g := range p.genomes {
		if g.rwFitness >= u {
			return g
		}
	}
	return p.genomes[len(p.genomes)-1]
}

// MergeNewPop appends newGenomes, drops duplicates (within
// equalityThreshold of an earlier genome, not taking score into account),
// re-sorts by score, truncates to MaxSize, and recomputes fitnesses over
// the kept genomes (§4.6.4 step 3).
func (p *Population) MergeNewPop(newGenomes []*Genome, equalityThreshold float64) {
	merged := append(append([]*Genome{}, p.genomes...), newGenomes...)
	deduped := merged[:0]
	for _, g := range merged {
		dup := false
		for _, kept := range deduped {
			if g.Equals(kept, equalityThreshold) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, g)
		}
	}
	p.genomes = deduped
	p.sortByScore()
	if len(p.genomes) > p.maxSize {
		p.genomes = p.genomes[:p.maxSize]
		p.recomputeMoments()
	}
	p.evaluateRWFitness()
}
