package chrom

import (
	"math"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/rng"
)

// PositionRefData is the immutable reference data for a position element
// (§4.3.3).
type PositionRefData struct {
	Mode     Mode
	MaxTrans float64 // tethered-mode ball radius
	Site     *model.DockingSite
	StepSize float64
}

// Position is the three-slot (x, y, z) center-of-mass chromosome element.
type Position struct {
	ref     *PositionRefData
	m       *model.Model
	initial model.Vec3
	value   model.Vec3
}

// NewPosition builds a position element, reading its initial value from the
// model's current center of mass.
func NewPosition(m *model.Model, ref *PositionRefData) *Position {
	p := &Position{ref: ref, m: m}
	p.SyncFromModel()
	p.initial = p.value
	return p
}

func (p *Position) Length() int      { return 3 }
func (p *Position) XoverLength() int { return 1 }

func (p *Position) Reset() { p.value = p.initial }

func (p *Position) Randomise(r *rng.Source) {
	switch p.ref.Mode {
	case Fixed:
		return
	case Tethered:
		radius := p.ref.MaxTrans * math.Cbrt(r.Uniform01())
		dir := r.UnitVector()
		p.value = p.initial.Add(model.Vec3{X: dir[0], Y: dir[1], Z: dir[2]}.Scale(radius))
	default: // Free, rejection-sampled into the site bounding box
		site := p.ref.Site
		for attempts := 0; attempts < 1000; attempts++ {
			cand := model.Vec3{
				X: r.UniformRange(site.Min.X, site.Max.X),
				Y: r.UniformRange(site.Min.Y, site.Max.Y),
				Z: r.UniformRange(site.Min.Z, site.Max.Z),
			}
			if site.Contains(cand) {
				p.value = cand
				return
			}
		}
		p.value = site.CentroidCavity()
	}
}

func (p *Position) Mutate(relStep float64, dist Distribution, r *rng.Source) {
	if p.ref.Mode == Fixed {
		return
	}
	step := relStep * p.ref.StepSize
	var delta model.Vec3
	if dist == Cauchy {
		delta = model.Vec3{X: r.Cauchy(0, step), Y: r.Cauchy(0, step), Z: r.Cauchy(0, step)}
	} else {
		delta = model.Vec3{X: r.UniformSigned(step), Y: r.UniformSigned(step), Z: r.UniformSigned(step)}
	}
	next := p.value.Add(delta)
	if p.ref.Mode == Tethered {
		d := next.Sub(p.initial)
		if math.Sqrt(d.Dot(d)) > p.ref.MaxTrans {
			return // reject out-of-tether mutation
		}
	}
	p.value = next
}

func (p *Position) SyncFromModel() { p.value = p.m.CenterOfMass() }

func (p *Position) SyncToModel() error {
	p.m.SetCenterOfMass(p.value)
	return nil
}

func (p *Position) GetVector(v *[]float64) {
	*v = append(*v, p.value.X, p.value.Y, p.value.Z)
}

func (p *Position) SetVector(v []float64, idx *int) error {
	if *idx+3 > len(v) {
		return dockerr.New(dockerr.BadArgument, "position set_vector: index out of range")
	}
	p.value = model.Vec3{X: v[*idx], Y: v[*idx+1], Z: v[*idx+2]}
	*idx += 3
	return nil
}

func (p *Position) GetXoverVector(v *[][]float64) {
	*v = append(*v, []float64{p.value.X, p.value.Y, p.value.Z})
}

func (p *Position) SetXoverVector(v [][]float64, idx *int) error {
	if *idx >= len(v) || len(v[*idx]) != 3 {
		return dockerr.New(dockerr.BadArgument, "position set_xover_vector: malformed group")
	}
	g := v[*idx]
	p.value = model.Vec3{X: g[0], Y: g[1], Z: g[2]}
	*idx++
	return nil
}

func (p *Position) GetStepVector(v *[]float64) {
	*v = append(*v, p.ref.StepSize, p.ref.StepSize, p.ref.StepSize)
}

func (p *Position) CompareVector(v []float64, idx *int) float64 {
	dx := v[*idx] - p.value.X
	dy := v[*idx+1] - p.value.Y
	dz := v[*idx+2] - p.value.Z
	*idx += 3
	maxAbs := math.Max(math.Abs(dx), math.Max(math.Abs(dy), math.Abs(dz)))
	if p.ref.StepSize == 0 {
		return maxAbs
	}
	return maxAbs / p.ref.StepSize
}

func (p *Position) Clone() Element {
	return &Position{ref: p.ref, m: p.m, initial: p.initial, value: p.value}
}
