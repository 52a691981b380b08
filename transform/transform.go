package transform

import (
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/score"
)

// Transform is a single search operator or a composite of them (§4.6.1).
// Concrete leaf transforms are Null, Align, RandPop, GA, SimAnn, and
// Simplex; Aggregate composes them.
type Transform interface {
	Name() string
	Enabled() bool
	SetEnabled(enabled bool)
	AddSFRequest(r request.Request)
	ClearSFRequests()
	SendSFRequests(sf request.Handler) error
	// Execute applies the transform against sf, the workspace's current
	// scoring function, reading and writing model coordinates through the
	// transform's own chromosome/model references.
	Execute(sf score.Term) error
	HandleRequest(r request.Request) error
}

// Go applies t: a disabled transform is a no-op; otherwise it dispatches
// any SF requests t has queued, then calls Execute (§4.6.1's "Go() checks
// enabled, dispatches stored scoring-function requests, then calls the
// virtual execute()").
func Go(t Transform, sf score.Term) error {
	if !t.Enabled() {
		return nil
	}
	if err := t.SendSFRequests(sf); err != nil {
		return err
	}
	return t.Execute(sf)
}
