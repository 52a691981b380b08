package chrom

import (
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/rng"
)

// Chrom is the chromosome-element aggregate of §4.3.6: an ordered list of
// owned child elements plus the participating model list, so a full
// SyncToModel can refresh every model's pseudo-atoms afterwards. Chrom
// itself implements Element, delegating every operation componentwise in
// insertion order.
type Chrom struct {
	elements []Element
	models   []*model.Model
}

// NewChrom builds an empty chromosome for the given participating models.
func NewChrom(models []*model.Model) *Chrom {
	return &Chrom{models: models}
}

// Add appends a child element. A nil element is a no-op.
func (c *Chrom) Add(e Element) {
	if e == nil {
		return
	}
	c.elements = append(c.elements, e)
}

func (c *Chrom) Length() int {
	n := 0
	for _, e := range c.elements {
		n += e.Length()
	}
	return n
}

func (c *Chrom) XoverLength() int {
	n := 0
	for _, e := range c.elements {
		n += e.XoverLength()
	}
	return n
}

func (c *Chrom) Reset() {
	for _, e := range c.elements {
		e.Reset()
	}
}

func (c *Chrom) Randomise(r *rng.Source) {
	for _, e := range c.elements {
		e.Randomise(r)
	}
}

func (c *Chrom) Mutate(relStep float64, dist Distribution, r *rng.Source) {
	for _, e := range c.elements {
		e.Mutate(relStep, dist, r)
	}
}

func (c *Chrom) SyncFromModel() {
	for _, e := range c.elements {
		e.SyncFromModel()
	}
}

// SyncToModel projects every element's value onto its model, then
// recomputes pseudo-atoms for every participating model (§3.2's
// post-sync invariant).
func (c *Chrom) SyncToModel() error {
	for _, e := range c.elements {
		if err := e.SyncToModel(); err != nil {
			return err
		}
	}
	for _, m := range c.models {
		m.UpdatePseudoAtoms()
	}
	return nil
}

func (c *Chrom) GetVector(v *[]float64) {
	for _, e := range c.elements {
		e.GetVector(v)
	}
}

func (c *Chrom) SetVector(v []float64, idx *int) error {
	for _, e := range c.elements {
		if err := e.SetVector(v, idx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Chrom) GetXoverVector(v *[][]float64) {
	for _, e := range c.elements {
		e.GetXoverVector(v)
	}
}

func (c *Chrom) SetXoverVector(v [][]float64, idx *int) error {
	for _, e := range c.elements {
		if err := e.SetXoverVector(v, idx); err != nil {
			return err
		}
	}
	return nil
}

func (c *Chrom) GetStepVector(v *[]float64) {
	for _, e := range c.elements {
		e.GetStepVector(v)
	}
}

func (c *Chrom) CompareVector(v []float64, idx *int) float64 {
	max := 0.0
	for _, e := range c.elements {
		if d := e.CompareVector(v, idx); d > max {
			max = d
		}
	}
	return max
}

// Compare returns the maximum step-normalised pairwise difference between
// c and other, or -1 if their lengths differ.
func (c *Chrom) Compare(other *Chrom) float64 {
	if c.Length() != other.Length() {
		return -1
	}
	var v []float64
	other.GetVector(&v)
	idx := 0
	return c.CompareVector(v, &idx)
}

func (c *Chrom) Clone() Element {
	clone := &Chrom{models: c.models}
	for _, e := range c.elements {
		clone.elements = append(clone.elements, e.Clone())
	}
	return clone
}

// Elements returns the chromosome's child elements in insertion order.
func (c *Chrom) Elements() []Element { return c.elements }
