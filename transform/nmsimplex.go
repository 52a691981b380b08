package transform

import "math"

// machineEpsilon guards the relative-value termination criterion's
// denominator against dividing by zero (§4.6.6), matching
// std::numeric_limits<double>::epsilon() in NMCriteria.h.
const machineEpsilon = 2.220446049250313e-16

// optimizeSimplex runs Nelder-Mead from start, with per-coordinate initial
// simplex offsets deltas, until maxIter iterations or the relative
// difference between the simplex's best and worst values falls below tol
// (checked from the second iteration on) — the AND-combined
// IterationCriterion/RelativeValueCriterion of NMCriteria.h. eval must set
// the chromosome vector, sync it to the model, and return the resulting
// score; it is also the call counter (the caller may wrap it to count
// calls).
func optimizeSimplex(start, deltas []float64, maxIter int, tol float64, eval func([]float64) (float64, error)) ([]float64, float64, error) {
	n := len(start)
	if n == 0 {
		v, err := eval(start)
		return start, v, err
	}

	points := make([][]float64, n+1)
	values := make([]float64, n+1)

	points[0] = append([]float64{}, start...)
	v, err := eval(points[0])
	if err != nil {
		return nil, 0, err
	}
	values[0] = v
	for i := 1; i <= n; i++ {
		p := append([]float64{}, start...)
		p[i-1] += deltas[i-1]
		points[i] = p
		v, err := eval(p)
		if err != nil {
			return nil, 0, err
		}
		values[i] = v
	}

	bestVal := math.Inf(1)
	bestPoint := append([]float64{}, points[0]...)
	currentValue := values[0]
	formerValue := math.Inf(1)

	for iteration := 0; iteration < maxIter && (iteration == 0 || relativeValueChange(currentValue, formerValue) > tol); iteration++ {
		best, worst, nearWorst := findBestWorstNearWorst(values)
		currentValue = values[best]
		formerValue = values[worst]
		if currentValue < bestVal {
			bestVal = currentValue
			bestPoint = append([]float64{}, points[best]...)
		}

		sum := vectorSum(points)
		reflected := newSimplexPoint(sum, points[worst], -1, n)
		reflectedVal, err := eval(reflected)
		if err != nil {
			return nil, 0, err
		}

		switch {
		case reflectedVal < bestVal:
			expanded := newSimplexPoint(sum, points[worst], -2, n)
			expandedVal, err := eval(expanded)
			if err != nil {
				return nil, 0, err
			}
			if expandedVal < bestVal {
				points[worst], values[worst] = expanded, expandedVal
			} else {
				points[worst], values[worst] = reflected, reflectedVal
			}
		case reflectedVal > values[nearWorst]:
			contracted := newSimplexPoint(sum, points[worst], -0.5, n)
			contractedVal, err := eval(contracted)
			if err != nil {
				return nil, 0, err
			}
			if contractedVal > reflectedVal {
				for i := range points {
					for k := range points[i] {
						points[i][k] = points[best][k] + (points[i][k]-points[best][k])/2
					}
					v, err := eval(points[i])
					if err != nil {
						return nil, 0, err
					}
					values[i] = v
				}
			} else {
				points[worst], values[worst] = contracted, contractedVal
			}
		default:
			points[worst], values[worst] = reflected, reflectedVal
		}
	}

	return bestPoint, bestVal, nil
}

func vectorSum(points [][]float64) []float64 {
	sum := make([]float64, len(points[0]))
	for _, p := range points {
		for i, v := range p {
			sum[i] += v
		}
	}
	return sum
}

func newSimplexPoint(sum, discarded []float64, t float64, n int) []float64 {
	fac1 := (1 - t) / float64(n)
	fac2 := fac1 - t
	out := make([]float64, len(sum))
	for i := range out {
		out[i] = sum[i]*fac1 - discarded[i]*fac2
	}
	return out
}

// findBestWorstNearWorst locates the best (lowest), worst (highest), and
// second-worst value indices in one pass.
func findBestWorstNearWorst(values []float64) (best, worst, nearWorst int) {
	if values[0] > values[1] {
		worst, nearWorst = 0, 1
	} else {
		worst, nearWorst = 1, 0
	}
	best = nearWorst
	for i := 2; i < len(values); i++ {
		if values[i] < values[best] {
			best = i
		}
		if values[i] > values[worst] {
			nearWorst = worst
			worst = i
		} else if values[i] > values[nearWorst] {
			nearWorst = i
		}
	}
	return
}

func relativeValueChange(current, former float64) float64 {
	return 2 * math.Abs(current-former) / (math.Abs(current) + math.Abs(former) + machineEpsilon)
}
