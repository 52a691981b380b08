/*
Package request implements the typed request/observer bus of C9: workspace
subjects notify observers synchronously after every state change, and
transforms dispatch typed Requests that scoring terms and transforms may
intercept and apply.

The cyclic subject/observer relationship the original C++ expressed with raw
pointers both ways is represented here with non-owning back-references in
both directions (design notes, "Cyclic subject/observer"): a Subject holds a
slice of Observer values it does not own, and teardown calls Deleted on every
observer so it can null its own reference before the subject goes away.
*/
package request

// ID enumerates the known request identifiers of §3.1.
type ID int

const (
	// EnableTerm enables the scoring term or transform named by Parameters["name"].
	EnableTerm ID = iota
	// DisableTerm disables the scoring term or transform named by Parameters["name"].
	DisableTerm
	// Partition restricts (or, at distance 0, restores) a term's interaction
	// lists. Parameters["distance"] holds the partition distance.
	Partition
	// PartitionTerm is Partition scoped to a single named term.
	PartitionTerm
	// SetParam sets a parameter on the request's own target.
	SetParam
	// SetParamTerm sets a parameter on a specific named object.
	SetParamTerm
)

// Request is the {request_id, parameter_list} tuple of §3.1. Parameters are
// looked up by name; callers know which keys a given ID expects.
type Request struct {
	ID         ID
	Parameters map[string]any
}

// Name returns Parameters["name"] as a string, or "" if absent.
func (r Request) Name() string {
	v, _ := r.Parameters["name"].(string)
	return v
}

// Distance returns Parameters["distance"] as a float64, or 0 if absent.
func (r Request) Distance() float64 {
	v, _ := r.Parameters["distance"].(float64)
	return v
}

// Param returns Parameters["param"] as a string, or "" if absent.
func (r Request) Param() string {
	v, _ := r.Parameters["param"].(string)
	return v
}

// Value returns Parameters["value"] verbatim.
func (r Request) Value() any {
	return r.Parameters["value"]
}

// NewEnable builds an EnableTerm/DisableTerm request for name.
func NewEnable(name string, enable bool) Request {
	id := EnableTerm
	if !enable {
		id = DisableTerm
	}
	return Request{ID: id, Parameters: map[string]any{"name": name}}
}

// NewPartition builds a Partition request at distance d (d == 0 restores
// the full interaction lists).
func NewPartition(d float64) Request {
	return Request{ID: Partition, Parameters: map[string]any{"distance": d}}
}

// NewPartitionTerm builds a PartitionTerm request scoped to name.
func NewPartitionTerm(name string, d float64) Request {
	return Request{ID: PartitionTerm, Parameters: map[string]any{"name": name, "distance": d}}
}

// NewSetParam builds a SetParam request.
func NewSetParam(param string, value any) Request {
	return Request{ID: SetParam, Parameters: map[string]any{"param": param, "value": value}}
}

// NewSetParamTerm builds a SetParamTerm request scoped to name.
func NewSetParamTerm(name, param string, value any) Request {
	return Request{ID: SetParamTerm, Parameters: map[string]any{"name": name, "param": param, "value": value}}
}

// Handler is implemented by every scoring term and transform. The base
// behavior (Enable/Disable matching the object's own fully-qualified name,
// SetParam against the object's own parameters) is provided by helper
// functions below so leaf implementations can embed it; aggregates forward
// requests to children after applying to themselves.
type Handler interface {
	HandleRequest(r Request) error
}

// MatchesEnable reports whether r is an Enable/Disable request naming fqName,
// and if so what the new enabled state should be.
func MatchesEnable(r Request, fqName string) (enabled bool, matched bool) {
	switch r.ID {
	case EnableTerm:
		return true, r.Name() == fqName
	case DisableTerm:
		return false, r.Name() == fqName
	default:
		return false, false
	}
}

// MatchesSetParam reports whether r is a SetParam request for this object
// (unscoped) or a SetParamTerm request scoped to fqName.
func MatchesSetParam(r Request, fqName string) (param string, value any, matched bool) {
	switch r.ID {
	case SetParam:
		return r.Param(), r.Value(), true
	case SetParamTerm:
		return r.Param(), r.Value(), r.Name() == fqName
	default:
		return "", nil, false
	}
}
