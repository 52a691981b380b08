package score

import (
	"fmt"

	"github.com/TimothyStiles/dockcore/request"
)

// Aggregate is the scoring-term composite of §4.5: a weighted sum of
// children, with membership management (Add/Remove) and request
// delegation.
type Aggregate struct {
	Base
	children []Term
}

// NewAggregate builds an empty, enabled aggregate under the dotted name
// fqName (e.g. "rxdock.score").
func NewAggregate(fqName string) *Aggregate {
	return &Aggregate{Base: NewBase(fqName)}
}

// Add appends child to the aggregate (§4.5's add(child)).
func (a *Aggregate) Add(child Term) { a.children = append(a.children, child) }

// Remove drops the first child whose Name() matches name (§4.5's
// remove(child)/orphan()).
func (a *Aggregate) Remove(name string) bool {
	for i, c := range a.children {
		if c.Name() == name {
			a.children = append(a.children[:i], a.children[i+1:]...)
			return true
		}
	}
	return false
}

// Children returns the aggregate's direct children in insertion order.
func (a *Aggregate) Children() []Term { return a.children }

// RawScore sums the weighted scores of every child (§4.5's raw_score()).
func (a *Aggregate) RawScore() float64 {
	var sum float64
	for _, c := range a.children {
		sum += Score(c)
	}
	return sum
}

// ScoreMap records every enabled descendant's raw score under its own
// dotted name and this aggregate's cumulative weighted total under its own
// name; a disabled child (and its own descendants) emits nothing (§7).
func (a *Aggregate) ScoreMap(out map[string]float64) {
	if !a.Enabled() {
		return
	}
	var total float64
	for _, c := range a.children {
		if !c.Enabled() {
			continue
		}
		c.ScoreMap(out)
		total += Score(c)
	}
	out[a.Name()] = total
}

// HandleRequest applies the Enable/Disable/SetParam request to the
// aggregate itself (matching its own fully-qualified name), then always
// forwards to every child regardless of whether it matched (§4.5's
// "aggregates invoke children in order").
func (a *Aggregate) HandleRequest(r request.Request) error {
	if _, err := a.HandleBaseRequest(r, nil); err != nil {
		return err
	}
	for _, c := range a.children {
		if err := c.HandleRequest(r); err != nil {
			return fmt.Errorf("aggregate %s: child %s: %w", a.Name(), c.Name(), err)
		}
	}
	return nil
}
