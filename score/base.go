package score

import "github.com/TimothyStiles/dockcore/request"

// Base is embedded by every leaf term to provide the Name/Enabled/Weight
// bookkeeping common to the whole tree (§4.5), leaving RawScore and any
// term-specific request handling to the embedding type.
type Base struct {
	name    string
	enabled bool
	weight  float64
}

// NewBase builds a Base with the term enabled and weight 1 by default.
func NewBase(name string) Base {
	return Base{name: name, enabled: true, weight: 1}
}

func (b *Base) Name() string         { return b.name }
func (b *Base) Enabled() bool        { return b.enabled }
func (b *Base) SetEnabled(e bool)    { b.enabled = e }
func (b *Base) Weight() float64      { return b.weight }
func (b *Base) SetWeight(w float64)  { b.weight = w }

// HandleBaseRequest applies the Enable/Disable/SetParam requests common to
// every leaf term and reports whether it recognized (and applied) r.
// paramSetter is called for a matching SetParam/SetParamTerm request; pass
// nil if the term has no settable scalar parameters besides weight.
func (b *Base) HandleBaseRequest(r request.Request, paramSetter func(param string, value any) error) (bool, error) {
	if enabled, matched := request.MatchesEnable(r, b.name); matched {
		b.enabled = enabled
		return true, nil
	}
	if param, value, matched := request.MatchesSetParam(r, b.name); matched {
		if param == "weight" {
			if w, ok := value.(float64); ok {
				b.weight = w
			}
			return true, nil
		}
		if paramSetter != nil {
			return true, paramSetter(param, value)
		}
	}
	return false, nil
}
