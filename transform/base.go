/*
Package transform implements C6: the search/optimization operators that
mutate a workspace's chromosome and sync the result back onto its models —
Align, RandPop, GA, SimAnn, and Simplex — plus the Null placeholder and the
Aggregate composite that runs children in order, grounded on
`include/rxdock/BaseTransform.h` and its subclasses.
*/
package transform

import "github.com/TimothyStiles/dockcore/request"

// Base is embedded by every leaf transform to provide the Name/Enabled
// bookkeeping and the pending-SFRequest queue common to the whole tree
// (§4.6.1), leaving Execute and any transform-specific request handling to
// the embedding type.
type Base struct {
	name       string
	enabled    bool
	sfRequests []request.Request
}

// NewBase builds a Base with the transform enabled by default.
func NewBase(name string) Base {
	return Base{name: name, enabled: true}
}

func (b *Base) Name() string      { return b.name }
func (b *Base) Enabled() bool     { return b.enabled }
func (b *Base) SetEnabled(e bool) { b.enabled = e }

// AddSFRequest queues r to be sent to the scoring function the next time
// Go runs this transform.
func (b *Base) AddSFRequest(r request.Request) {
	b.sfRequests = append(b.sfRequests, r)
}

// ClearSFRequests empties the pending-request queue.
func (b *Base) ClearSFRequests() {
	b.sfRequests = nil
}

// SendSFRequests dispatches every queued request to sf's handler, in the
// order they were added (§4.6.1).
func (b *Base) SendSFRequests(sf request.Handler) error {
	for _, r := range b.sfRequests {
		if err := sf.HandleRequest(r); err != nil {
			return err
		}
	}
	return nil
}

// HandleBaseRequest applies the Enable/Disable/SetParam requests common to
// every transform and reports whether it recognized (and applied) r.
// paramSetter is called for a matching SetParam/SetParamTerm request; pass
// nil if the transform has no settable scalar parameters.
func (b *Base) HandleBaseRequest(r request.Request, paramSetter func(param string, value any) error) (bool, error) {
	if enabled, matched := request.MatchesEnable(r, b.name); matched {
		b.enabled = enabled
		return true, nil
	}
	if param, value, matched := request.MatchesSetParam(r, b.name); matched {
		if paramSetter != nil {
			return true, paramSetter(param, value)
		}
		return true, nil
	}
	return false, nil
}
