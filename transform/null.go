package transform

import (
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/score"
)

// Null is a transform that does nothing, used as the workspace's default
// before a real transform is installed.
type Null struct{ Base }

// NewNull builds an enabled no-op transform.
func NewNull(fqName string) *Null {
	return &Null{Base: NewBase(fqName)}
}

func (t *Null) Execute(sf score.Term) error { return nil }

func (t *Null) HandleRequest(r request.Request) error {
	_, err := t.HandleBaseRequest(r, nil)
	return err
}
