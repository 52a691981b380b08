package chrom

import (
	"math"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/rng"
)

// OccupancyRefData is the immutable reference data for an occupancy
// element (§4.3.5).
type OccupancyRefData struct {
	StepSize  float64
	Threshold float64 // 1 - occupancy_probability
}

// Occupancy is the single-slot [0,1] solvent-occupancy chromosome element.
// NewOccupancyElement (below) applies §4.3.5's "presence is conditional"
// rule by returning nil when the configured probability puts the model
// permanently on or off.
type Occupancy struct {
	ref     *OccupancyRefData
	m       *model.Model
	initial float64
	value   float64
}

// NewOccupancy builds an occupancy element reading 1.0 as its initial
// value (models start enabled).
func NewOccupancy(m *model.Model, stepSize, threshold float64) *Occupancy {
	o := &Occupancy{ref: &OccupancyRefData{StepSize: stepSize, Threshold: threshold}, m: m, initial: 1.0, value: 1.0}
	return o
}

// NewOccupancyElement implements §4.3.5's conditional presence: an
// occupancy element is only constructed when 0 < occupancyProbability < 1.
func NewOccupancyElement(m *model.Model, stepSize, occupancyProbability float64) *Occupancy {
	if occupancyProbability <= 0 || occupancyProbability >= 1 {
		return nil
	}
	return NewOccupancy(m, stepSize, 1-occupancyProbability)
}

func standardisedOccupancy(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func (o *Occupancy) Length() int      { return 1 }
func (o *Occupancy) XoverLength() int { return 1 }

func (o *Occupancy) Reset() { o.value = o.initial }

func (o *Occupancy) Randomise(r *rng.Source) {
	o.value = r.Uniform01()
}

func (o *Occupancy) Mutate(relStep float64, dist Distribution, r *rng.Source) {
	step := relStep * o.ref.StepSize
	var delta float64
	if dist == Cauchy {
		delta = r.Cauchy(0, step)
	} else {
		delta = r.UniformSigned(step)
	}
	o.value = standardisedOccupancy(o.value + delta)
}

func (o *Occupancy) SyncFromModel() {
	if o.m.Occupancy > 0 {
		o.value = o.m.Occupancy
	}
}

func (o *Occupancy) SyncToModel() error {
	enabled := o.value >= o.ref.Threshold
	o.m.Occupancy = o.value
	o.m.SetAllEnabled(enabled)
	return nil
}

func (o *Occupancy) GetVector(v *[]float64) { *v = append(*v, o.value) }

func (o *Occupancy) SetVector(v []float64, idx *int) error {
	if *idx >= len(v) {
		return dockerr.New(dockerr.BadArgument, "occupancy set_vector: index out of range")
	}
	o.value = standardisedOccupancy(v[*idx])
	*idx++
	return nil
}

func (o *Occupancy) GetXoverVector(v *[][]float64) {
	*v = append(*v, []float64{o.value})
}

func (o *Occupancy) SetXoverVector(v [][]float64, idx *int) error {
	if *idx >= len(v) || len(v[*idx]) != 1 {
		return dockerr.New(dockerr.BadArgument, "occupancy set_xover_vector: malformed group")
	}
	o.value = standardisedOccupancy(v[*idx][0])
	*idx++
	return nil
}

func (o *Occupancy) GetStepVector(v *[]float64) { *v = append(*v, o.ref.StepSize) }

func (o *Occupancy) CompareVector(v []float64, idx *int) float64 {
	diff := math.Abs(v[*idx] - o.value)
	*idx++
	if o.ref.StepSize == 0 {
		return diff
	}
	return diff / o.ref.StepSize
}

func (o *Occupancy) Clone() Element {
	return &Occupancy{ref: o.ref, m: o.m, initial: o.initial, value: o.value}
}
