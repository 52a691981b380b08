package transform

// MCStats accumulates Monte Carlo sampling statistics for a simulated
// annealing run: running totals for the mean/variance of the score and an
// acceptance count, reset at each temperature block, plus score extrema
// kept both per block and for the whole run, grounded on
// SimAnnTransform.h's MCStats.
type MCStats struct {
	Total, Total2            float64
	BlockInitial, BlockFinal float64
	BlockMin, BlockMax       float64
	Initial, Final           float64
	Min, Max                 float64
	Steps, Accepted          int
}

// Init resets the whole-run accumulators to score and starts the first
// block.
func (s *MCStats) Init(score float64) {
	*s = MCStats{Initial: score, Final: score, Min: score, Max: score}
	s.InitBlock(score)
}

// InitBlock resets the per-block accumulators to score, leaving the
// whole-run Initial/Final/Min/Max untouched.
func (s *MCStats) InitBlock(score float64) {
	s.BlockInitial = score
	s.BlockFinal = score
	s.BlockMin = score
	s.BlockMax = score
	s.Total = 0
	s.Total2 = 0
	s.Steps = 0
	s.Accepted = 0
}

// Accumulate records one MC step's outcome into both the block and
// whole-run extrema.
func (s *MCStats) Accumulate(score float64, accepted bool) {
	s.Total += score
	s.Total2 += score * score
	s.Steps++
	if accepted {
		s.Accepted++
	}
	s.BlockFinal = score
	s.Final = score
	if score < s.BlockMin {
		s.BlockMin = score
	}
	if score > s.BlockMax {
		s.BlockMax = score
	}
	if score < s.Min {
		s.Min = score
	}
	if score > s.Max {
		s.Max = score
	}
}

// Mean returns the current block's mean score.
func (s *MCStats) Mean() float64 {
	if s.Steps == 0 {
		return 0
	}
	return s.Total / float64(s.Steps)
}

// Variance returns the current block's score variance.
func (s *MCStats) Variance() float64 {
	if s.Steps == 0 {
		return 0
	}
	m := s.Mean()
	return s.Total2/float64(s.Steps) - m*m
}

// AccRate returns the current block's acceptance rate.
func (s *MCStats) AccRate() float64 {
	if s.Steps == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Steps)
}
