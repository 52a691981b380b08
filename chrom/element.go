/*
Package chrom implements the C3 chromosome elements: the DoF primitives
(Position, Orientation, Dihedral, Occupancy) and the Chrom aggregate that
exposes every degree of freedom of the docked system as one flat
real-valued vector, per §3.1 and §4.3.
*/
package chrom

import "github.com/TimothyStiles/dockcore/rng"

// Mode is a DoF's restriction mode (§3.1).
type Mode int

const (
	// Fixed: randomise/mutate are no-ops; sync_from_model still reads the
	// current value.
	Fixed Mode = iota
	// Tethered: randomisation draws within a bounded range of the stored
	// reference value; a mutation that would leave that range is rejected
	// and the value stays unchanged (it is not clipped to the bound).
	Tethered
	// Free: unrestricted within the element's natural domain.
	Free
)

// Distribution selects the mutation kernel used by Mutate, per §4.6.4:
// Cauchy when the transform's cmutate flag is set, uniform (rectangular)
// otherwise.
type Distribution int

const (
	Uniform Distribution = iota
	Cauchy
)

// Element is the common contract every chromosome DoF primitive
// implements (§3.1, §4.3.1).
type Element interface {
	// Length returns the count of real-valued slots this element occupies
	// in the flat vector.
	Length() int
	// XoverLength returns the count of indivisible crossover units.
	XoverLength() int
	// Reset restores the value captured at construction.
	Reset()
	// Randomise draws a new value from the full permitted range given the
	// element's mode.
	Randomise(r *rng.Source)
	// Mutate perturbs the current value by relStep times the element's
	// step size, using the given distribution.
	Mutate(relStep float64, dist Distribution, r *rng.Source)
	// SyncFromModel reads the element's current value back from the model.
	SyncFromModel()
	// SyncToModel projects the element's value onto the model.
	SyncToModel() error
	// GetVector appends the element's flat slot values to v.
	GetVector(v *[]float64)
	// SetVector consumes Length() values from v starting at *idx,
	// advancing *idx, applying domain constraints (dihedral
	// standardisation, occupancy clamping).
	SetVector(v []float64, idx *int) error
	// GetXoverVector appends the element's xover-unit groups to v.
	GetXoverVector(v *[][]float64)
	// SetXoverVector consumes XoverLength() groups from v starting at
	// *idx, advancing *idx.
	SetXoverVector(v [][]float64, idx *int) error
	// GetStepVector appends the element's per-slot step sizes to v.
	GetStepVector(v *[]float64)
	// CompareVector consumes Length() values from v starting at *idx,
	// advancing *idx, and returns the step-normalised max difference
	// against the element's current value. It does not check the length of
	// v; Chrom.Compare returns -1 when the vector length differs from the
	// chromosome's before any element is reached.
	CompareVector(v []float64, idx *int) float64
	// Clone returns a deep copy sharing the element's immutable reference
	// data but with an independent genotype, used to build genomes from a
	// seed chromosome.
	Clone() Element
}
