package transform

import (
	"log"
	"math"

	"github.com/TimothyStiles/dockcore/chrom"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/rng"
	"github.com/TimothyStiles/dockcore/score"
)

// gasConstant is R in J/(mol*K); the 1000x factor in the Metropolis
// exponent scales the score's kilo-unit values to match (§4.6.5).
const gasConstant = 8.314

// SimAnn is a simple, non-adaptive simulated annealing protocol over
// Chrom's flat vector (§4.6.5). Temperature follows a geometric schedule
// from StartT to FinalT over NumBlocks blocks of BlockLength steps each.
type SimAnn struct {
	Base
	Chrom *chrom.Chrom
	rng   *rng.Source

	StartT           float64
	FinalT           float64
	BlockLength      int
	NumBlocks        int
	ScaleChromLength bool
	StepSize         float64
	MinAccRate       float64
	PartitionDist    float64
	PartitionFreq    int

	Stats MCStats
}

// NewSimAnn builds a SimAnn transform with the teacher's SimAnnTransform
// defaults.
func NewSimAnn(fqName string, c *chrom.Chrom, r *rng.Source) *SimAnn {
	return &SimAnn{
		Base:             NewBase(fqName),
		Chrom:            c,
		rng:              r,
		StartT:           1000,
		FinalT:           300,
		BlockLength:      50,
		NumBlocks:        5,
		ScaleChromLength: true,
		StepSize:         1.0,
		MinAccRate:       0.25,
		PartitionDist:    0,
		PartitionFreq:    500,
	}
}

// Execute runs the annealing schedule of §4.6.5 and syncs the
// minimum-score vector seen across the whole run back onto the model.
func (t *SimAnn) Execute(sf score.Term) error {
	if t.Chrom == nil {
		return nil
	}
	blockLen := t.BlockLength
	if t.ScaleChromLength {
		blockLen *= t.Chrom.Length()
	}

	t.Chrom.SyncFromModel()
	curScore := score.Score(sf)
	t.Stats.Init(curScore)

	var minVec []float64
	t.Chrom.GetVector(&minVec)
	minScore := curScore

	ratio := 1.0
	if t.NumBlocks > 1 {
		ratio = math.Pow(t.FinalT/t.StartT, 1.0/float64(t.NumBlocks-1))
	}
	temperature := t.StartT
	stepSize := t.StepSize
	sinceRepartition := 0

	for block := 0; block < t.NumBlocks; block++ {
		t.Stats.InitBlock(curScore)
		for step := 0; step < blockLen; step++ {
			var lastGood []float64
			t.Chrom.GetVector(&lastGood)

			t.Chrom.Mutate(stepSize, chrom.Uniform, t.rng)
			if err := t.Chrom.SyncToModel(); err != nil {
				return err
			}
			newScore := score.Score(sf)
			delta := newScore - curScore

			accepted := delta <= 0
			if !accepted {
				p := math.Exp(-1000 * delta / (gasConstant * temperature))
				accepted = t.rng.Uniform01() < p
			}

			if accepted {
				curScore = newScore
				sinceRepartition++
				if t.PartitionFreq > 0 && sinceRepartition >= t.PartitionFreq {
					t.AddSFRequest(request.NewPartition(t.PartitionDist))
					if err := t.SendSFRequests(sf); err != nil {
						return err
					}
					t.ClearSFRequests()
					reScore := score.Score(sf)
					if math.Abs(reScore-curScore) > 0.001 {
						log.Printf("simann: score drift %.4f after repartition at distance %.2f", reScore-curScore, t.PartitionDist)
					}
					curScore = reScore
					sinceRepartition = 0
				}
			} else {
				idx := 0
				if err := t.Chrom.SetVector(lastGood, &idx); err != nil {
					return err
				}
				if err := t.Chrom.SyncToModel(); err != nil {
					return err
				}
			}

			t.Stats.Accumulate(curScore, accepted)
			if curScore < minScore {
				minScore = curScore
				minVec = nil
				t.Chrom.GetVector(&minVec)
			}
		}
		if t.Stats.AccRate() < t.MinAccRate {
			stepSize *= 0.5
		}
		temperature *= ratio
	}

	idx := 0
	if err := t.Chrom.SetVector(minVec, &idx); err != nil {
		return err
	}
	if err := t.Chrom.SyncToModel(); err != nil {
		return err
	}
	t.AddSFRequest(request.NewPartition(0))
	if err := t.SendSFRequests(sf); err != nil {
		return err
	}
	t.ClearSFRequests()
	return nil
}

func (t *SimAnn) HandleRequest(r request.Request) error {
	_, err := t.HandleBaseRequest(r, func(param string, value any) error {
		switch param {
		case "start_t":
			if v, ok := value.(float64); ok {
				t.StartT = v
			}
		case "final_t":
			if v, ok := value.(float64); ok {
				t.FinalT = v
			}
		case "block_length":
			if v, ok := value.(int); ok {
				t.BlockLength = v
			}
		case "num_blocks":
			if v, ok := value.(int); ok {
				t.NumBlocks = v
			}
		case "scale_chrom_length":
			if v, ok := value.(bool); ok {
				t.ScaleChromLength = v
			}
		case "step_size":
			if v, ok := value.(float64); ok {
				t.StepSize = v
			}
		case "min_acc_rate":
			if v, ok := value.(float64); ok {
				t.MinAccRate = v
			}
		case "partition_dist":
			if v, ok := value.(float64); ok {
				t.PartitionDist = v
			}
		case "partition_freq":
			if v, ok := value.(int); ok {
				t.PartitionFreq = v
			}
		}
		return nil
	})
	return err
}
