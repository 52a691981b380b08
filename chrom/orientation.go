package chrom

import (
	"math"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/rng"
)

// OrientationRefData is the immutable reference data for an orientation
// element (§4.3.4).
type OrientationRefData struct {
	Mode     Mode
	MaxRot   float64 // radians, tethered-mode cap on total rotation angle
	StepSize float64 // radians
}

// Orientation is the three-slot Euler-angle chromosome element, expressed
// relative to the model's orientation at construction time. sync_to_model
// applies only the delta between the last-applied rotation and the
// current genotype, so repeated syncs never re-apply the whole rotation
// and the model never needs a full-coordinate snapshot restore to stay
// consistent (§4.3.4).
type Orientation struct {
	ref         *OrientationRefData
	m           *model.Model
	value       model.Vec3 // current genotype, Euler angles (radians)
	lastApplied model.Rotation
}

// NewOrientation builds an orientation element with genotype zero (the
// model's current orientation is the reference frame).
func NewOrientation(m *model.Model, ref *OrientationRefData) *Orientation {
	return &Orientation{ref: ref, m: m, lastApplied: model.Identity()}
}

func (o *Orientation) Length() int      { return 3 }
func (o *Orientation) XoverLength() int { return 1 }

func (o *Orientation) Reset() {
	o.value = model.Vec3{}
}

func (o *Orientation) Randomise(r *rng.Source) {
	switch o.ref.Mode {
	case Fixed:
		return
	case Tethered:
		dir := r.UnitVector()
		angle := o.ref.MaxRot * r.Uniform01()
		axis := model.Vec3{X: dir[0], Y: dir[1], Z: dir[2]}
		o.setFromRotation(model.AxisAngleRotation(axis, angle))
	default: // Free
		dir := r.UnitVector()
		angle := r.UniformRange(-math.Pi, math.Pi)
		axis := model.Vec3{X: dir[0], Y: dir[1], Z: dir[2]}
		o.setFromRotation(model.AxisAngleRotation(axis, angle))
	}
}

// setFromRotation stores rot as the element's current Euler-angle value by
// decomposing it via the intrinsic Z-Y-X convention EulerRotation expects.
func (o *Orientation) setFromRotation(rot model.Rotation) {
	o.value = eulerFromRotation(rot)
}

// eulerFromRotation extracts intrinsic Z-Y-X Euler angles (radians) from a
// rotation matrix, inverting model.EulerRotation.
func eulerFromRotation(r model.Rotation) model.Vec3 {
	sy := -r[2][0]
	sy = math.Max(-1, math.Min(1, sy))
	y := math.Asin(sy)
	var x, z float64
	if math.Abs(sy) < 0.999999 {
		x = math.Atan2(r[2][1], r[2][2])
		z = math.Atan2(r[1][0], r[0][0])
	} else {
		// gimbal lock: attribute all rotation to z
		x = 0
		z = math.Atan2(-r[0][1], r[1][1])
	}
	return model.Vec3{X: x, Y: y, Z: z}
}

func (o *Orientation) Mutate(relStep float64, dist Distribution, r *rng.Source) {
	if o.ref.Mode == Fixed {
		return
	}
	step := relStep * o.ref.StepSize
	var d model.Vec3
	if dist == Cauchy {
		d = model.Vec3{X: r.Cauchy(0, step), Y: r.Cauchy(0, step), Z: r.Cauchy(0, step)}
	} else {
		d = model.Vec3{X: r.UniformSigned(step), Y: r.UniformSigned(step), Z: r.UniformSigned(step)}
	}
	next := o.value.Add(d)
	if o.ref.Mode == Tethered {
		rot := model.EulerRotation(next)
		if rotationAngle(rot) > o.ref.MaxRot {
			return // reject out-of-tether mutation
		}
	}
	o.value = next
}

// rotationAngle returns the rotation angle (radians) of r via its trace.
func rotationAngle(r model.Rotation) float64 {
	trace := r[0][0] + r[1][1] + r[2][2]
	cosTheta := (trace - 1) / 2
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	return math.Acos(cosTheta)
}

func (o *Orientation) SyncFromModel() {
	// The model's absolute orientation is not separately tracked; the
	// element's genotype is always relative to the frame captured at
	// construction, so there is nothing further to read back here beyond
	// what sync_to_model has already applied.
}

func (o *Orientation) SyncToModel() error {
	target := model.EulerRotation(o.value)
	delta := target.Mul(o.lastApplied.Transpose())
	com := o.m.CenterOfMass()
	o.m.RotateAboutPoint(delta, com)
	o.lastApplied = target
	return nil
}

func (o *Orientation) GetVector(v *[]float64) {
	*v = append(*v, o.value.X, o.value.Y, o.value.Z)
}

func (o *Orientation) SetVector(v []float64, idx *int) error {
	if *idx+3 > len(v) {
		return dockerr.New(dockerr.BadArgument, "orientation set_vector: index out of range")
	}
	o.value = model.Vec3{X: v[*idx], Y: v[*idx+1], Z: v[*idx+2]}
	*idx += 3
	return nil
}

func (o *Orientation) GetXoverVector(v *[][]float64) {
	*v = append(*v, []float64{o.value.X, o.value.Y, o.value.Z})
}

func (o *Orientation) SetXoverVector(v [][]float64, idx *int) error {
	if *idx >= len(v) || len(v[*idx]) != 3 {
		return dockerr.New(dockerr.BadArgument, "orientation set_xover_vector: malformed group")
	}
	g := v[*idx]
	o.value = model.Vec3{X: g[0], Y: g[1], Z: g[2]}
	*idx++
	return nil
}

func (o *Orientation) GetStepVector(v *[]float64) {
	*v = append(*v, o.ref.StepSize, o.ref.StepSize, o.ref.StepSize)
}

func (o *Orientation) CompareVector(v []float64, idx *int) float64 {
	dx := v[*idx] - o.value.X
	dy := v[*idx+1] - o.value.Y
	dz := v[*idx+2] - o.value.Z
	*idx += 3
	maxAbs := math.Max(math.Abs(dx), math.Max(math.Abs(dy), math.Abs(dz)))
	if o.ref.StepSize == 0 {
		return maxAbs
	}
	return maxAbs / o.ref.StepSize
}

func (o *Orientation) Clone() Element {
	return &Orientation{ref: o.ref, m: o.m, value: o.value, lastApplied: o.lastApplied}
}
