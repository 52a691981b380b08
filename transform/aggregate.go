package transform

import (
	"fmt"

	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/score"
)

// Aggregate is the transform composite of §4.6.1: an ordered list of
// children run in sequence via Go, so a disabled child is skipped and a
// child error aborts the whole run.
type Aggregate struct {
	Base
	children []Transform
}

// NewAggregate builds an empty, enabled aggregate under the dotted name
// fqName.
func NewAggregate(fqName string) *Aggregate {
	return &Aggregate{Base: NewBase(fqName)}
}

// Add appends child to the aggregate.
func (a *Aggregate) Add(child Transform) { a.children = append(a.children, child) }

// Remove drops the first child whose Name() matches name.
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
func (a *Aggregate) Children() []Transform { return a.children }

// Execute runs every child transform in order via Go, matching §4.6.1's
// "aggregates invoke children in order".
func (a *Aggregate) Execute(sf score.Term) error {
	for _, c := range a.children {
		if err := Go(c, sf); err != nil {
			return fmt.Errorf("transform aggregate %s: child %s: %w", a.Name(), c.Name(), err)
		}
	}
	return nil
}

// HandleRequest applies the request to the aggregate itself, then always
// forwards it to every child regardless of whether it matched.
func (a *Aggregate) HandleRequest(r request.Request) error {
	if _, err := a.HandleBaseRequest(r, nil); err != nil {
		return err
	}
	for _, c := range a.children {
		if err := c.HandleRequest(r); err != nil {
			return fmt.Errorf("transform aggregate %s: child %s: %w", a.Name(), c.Name(), err)
		}
	}
	return nil
}
