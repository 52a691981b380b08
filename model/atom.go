/*
Package model defines the external-collaborator data the docking core
consumes: atoms, bonds, a model (receptor, ligand, or explicit-solvent
graph), and a docking site. Per §1 of the design spec these structures —
and any file format that produces them — are deliberately out of the
core's scope; this package exists only to give the core something concrete
to operate on, and stays a thin data holder with no scoring or search
intelligence of its own.
*/
package model

// Vec3 is a Cartesian coordinate or displacement.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v-w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Atom is the minimal per-atom record of §3.1: element, coordinates, group
// charge, force-field type, an enabled flag, two scratch scalars used by
// scoring terms, and a stable identity.
type Atom struct {
	// ID is stable across the run; ID-1 is a valid index into any per-atom
	// array sized to the owning model's atom count.
	ID int

	Element       string
	Coord         Vec3
	GroupCharge   float64
	ForceFieldType string
	Enabled       bool

	// FormalCharge is the integer formal charge used by MDL-format writers
	// (molfile); it is independent of GroupCharge, the partial charge the
	// polar scoring term reads.
	FormalCharge int

	// Name is the atom's "seg:res:name" identifier, used only by the NMR
	// restraint term (§4.4.8, §6.4) to resolve a restraint file's atom
	// groups; no other term looks an atom up by name.
	Name string

	// U1 and U2 are per-atom scratch scalars. The polar term reads U1 as
	// its formal charge / local density weight (§4.4.4); no scoring term
	// reads U2, and no term writes either field.
	U1, U2 float64

	// IsDonorH, IsAcceptor, IsMetal, IsGuanidiniumC, IsAromatic classify the
	// atom for interaction-center construction (§4.2). A real force-field
	// typer would derive these; here they are data the model graph supplies.
	IsDonorH       bool
	IsAcceptor     bool
	IsMetal        bool
	IsGuanidiniumC bool
	IsAromatic     bool
	// Anionic marks an sp2 oxygen bonded to an anionic group (carboxylate,
	// phosphate) for the lone-pair-vs-plane IC decision of §4.2.
	Anionic bool
	// InRNA marks an atom belonging to an RNA phosphate group, another
	// lone-pair trigger of §4.2.
	InRNA bool
	// BondedToNitro marks a terminal oxygen's grandparent being a nitro
	// nitrogen, the third lone-pair trigger of §4.2.
	BondedToNitro bool

	// IsCationic, IsHydrophobic, IsHalogen classify the atom for the
	// pharmacophore feature types of §4.4.7 that have no IC-construction
	// role of their own (Cat, Hyd, Hal).
	IsCationic    bool
	IsHydrophobic bool
	IsHalogen     bool

	// VdwRadius, VdwWellDepth are the Lennard-Jones-like parameters used by
	// score/vdw.
	VdwRadius, VdwWellDepth float64

	// SolvationRadius, PointDensity, AtomicSolvationParam, ChargeScaled are
	// the desolvation-term parameters of §4.4.6.
	SolvationRadius       float64
	PointDensity          float64
	AtomicSolvationParam  float64
	ChargeScaled          bool

	// IsPseudo marks an atom synthesized as the mean of constituent atoms
	// (ring centroid, multi-bonded acceptor mean); Constituents holds the
	// IDs it was built from. model.Model.UpdatePseudoAtoms recomputes the
	// coordinate of every pseudo-atom from its constituents.
	IsPseudo     bool
	Constituents []int
}

// Bond connects two atoms by ID.
type Bond struct {
	Atom1, Atom2 int
	// Rotatable marks a single bond the chromosome may expose as a
	// dihedral degree of freedom.
	Rotatable bool
	Order     int
}
