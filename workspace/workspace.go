/*
Package workspace implements C8: the container that owns the fixed-size
model list, the docking site, the current scoring aggregate, the current
transform, an optional persistent population and filter, and the output/
history sinks a run writes ligand records to.

Workspace is the Subject of the observer pattern (§4.9): SetSF/SetTransform/
SetFilter auto-register their argument as an Observer when it implements
request.Observer. The model-slot mutators (SetModel, AddModels, SetModels,
RemoveModels) and SetSF/SetTransform fire a synchronous Update
notification afterward; the sink, population, docking-site, filter and
name setters do not notify.
*/
package workspace

import (
	"errors"
	"log"

	"github.com/google/uuid"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/population"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/score"
	"github.com/TimothyStiles/dockcore/transform"
)

// Sink is an output destination for ligand records: molfile.SDWriter and
// friends implement it. id is a run/record identifier so a caller replaying
// a shared output file can tell records from different runs apart (§6.2).
type Sink interface {
	WriteRecord(id string, m *model.Model, scores map[string]float64) error
}

// Workspace is the C8 container. The zero value is not usable; build one
// with New.
type Workspace struct {
	request.Subject

	name   string
	runID  string
	models []*model.Model

	sink        Sink
	historySink Sink
	errorSink   Sink

	sf        score.Term
	transform transform.Transform

	population *population.Population
	dockSite   *model.DockingSite

	// filter is deliberately typed as a bare request.Observer: the pack
	// retrieved for this spec carries no Filter.h/.cxx, and spec.md gives
	// it no behavior beyond "workspace holds an optional filter" (§4.8), so
	// there is nothing here to ground a richer type on.
	filter request.Observer
}

// New builds a Workspace with nModels model slots, all initially nil.
// Pass 2 for the standard receptor + ligand layout; callers docking against
// an explicit solvent shell pass a larger count, or extend later via
// AddModels.
func New(nModels int) *Workspace {
	return &Workspace{
		name:   "WORKSPACE",
		runID:  uuid.New().String()[:8],
		models: make([]*model.Model, nModels),
	}
}

func (w *Workspace) Name() string     { return w.name }
func (w *Workspace) SetName(n string) { w.name = n }

// RunID is a short identifier generated once per Workspace, attached to
// every sink record this workspace writes so multiple runs sharing one
// output file can be told apart.
func (w *Workspace) RunID() string { return w.runID }

// NumModels returns the number of model slots, including nil ones.
func (w *Workspace) NumModels() int { return len(w.models) }

// Models returns a copy of the full model slot list.
func (w *Workspace) Models() []*model.Model {
	out := make([]*model.Model, len(w.models))
	copy(out, w.models)
	return out
}

// Model returns the model at slot i, or a BadArgument error if i is out of
// range. The returned model may be nil if the slot was never set.
func (w *Workspace) Model(i int) (*model.Model, error) {
	if i < 0 || i >= len(w.models) {
		return nil, dockerr.New(dockerr.BadArgument, "model slot %d out of range [0,%d)", i, len(w.models))
	}
	return w.models[i], nil
}

// SetModel replaces the model at slot i and notifies observers.
func (w *Workspace) SetModel(i int, m *model.Model) error {
	if i < 0 || i >= len(w.models) {
		return dockerr.New(dockerr.BadArgument, "model slot %d out of range [0,%d)", i, len(w.models))
	}
	w.models[i] = m
	w.NotifyUpdate(w)
	return nil
}

// ModelsFrom returns a copy of the model slots from i to the end.
func (w *Workspace) ModelsFrom(i int) ([]*model.Model, error) {
	if i < 0 || i >= len(w.models) {
		return nil, dockerr.New(dockerr.BadArgument, "model slot %d out of range [0,%d)", i, len(w.models))
	}
	out := make([]*model.Model, len(w.models)-i)
	copy(out, w.models[i:])
	return out, nil
}

// AddModels appends models, growing the workspace (used to add solvent
// slots beyond the fixed receptor/ligand pair), and notifies observers.
func (w *Workspace) AddModels(models ...*model.Model) {
	w.models = append(w.models, models...)
	w.NotifyUpdate(w)
}

// SetModels replaces the models starting at slot i and notifies observers.
// It is an error if i is out of range or models would run past the end of
// the existing slot list; use AddModels to grow the workspace instead.
func (w *Workspace) SetModels(i int, models []*model.Model) error {
	if i < 0 || len(models) > len(w.models) || i > len(w.models)-len(models) {
		return dockerr.New(dockerr.BadArgument, "models slice of length %d does not fit at slot %d", len(models), i)
	}
	copy(w.models[i:], models)
	w.NotifyUpdate(w)
	return nil
}

// RemoveModels truncates the model list from slot i to the end and
// notifies observers.
func (w *Workspace) RemoveModels(i int) error {
	if i < 0 || i >= len(w.models) {
		return dockerr.New(dockerr.BadArgument, "model slot %d out of range [0,%d)", i, len(w.models))
	}
	w.models = w.models[:i]
	w.NotifyUpdate(w)
	return nil
}

// Sink/SetSink manage the results output sink. Save writes to it.
func (w *Workspace) Sink() Sink     { return w.sink }
func (w *Workspace) SetSink(s Sink) { w.sink = s }

// HistorySink/SetHistorySink manage the trajectory-history sink. SaveHistory
// writes to it.
func (w *Workspace) HistorySink() Sink     { return w.historySink }
func (w *Workspace) SetHistorySink(s Sink) { w.historySink = s }

// ErrorSink/SetErrorSink manage the destination for ligands rejected with a
// LigandError (§4.4.7, §7). HandleLigandError writes to it.
func (w *Workspace) ErrorSink() Sink     { return w.errorSink }
func (w *Workspace) SetErrorSink(s Sink) { w.errorSink = s }

// SF returns the current scoring aggregate.
func (w *Workspace) SF() score.Term { return w.sf }

// SetSF installs sf as the current scoring aggregate, detaching the
// previous one and attaching sf as an observer if it implements
// request.Observer, then notifies.
func (w *Workspace) SetSF(sf score.Term) {
	if o, ok := w.sf.(request.Observer); ok {
		w.Detach(o)
	}
	w.sf = sf
	if o, ok := sf.(request.Observer); ok {
		w.Attach(o)
	}
	w.NotifyUpdate(w)
}

// Transform returns the current transform.
func (w *Workspace) Transform() transform.Transform { return w.transform }

// SetTransform installs t as the current transform, detaching the previous
// one and attaching t as an observer if it implements request.Observer,
// then notifies.
func (w *Workspace) SetTransform(t transform.Transform) {
	if o, ok := w.transform.(request.Observer); ok {
		w.Detach(o)
	}
	w.transform = t
	if o, ok := t.(request.Observer); ok {
		w.Attach(o)
	}
	w.NotifyUpdate(w)
}

// Run invokes the current transform against the current scoring aggregate
// (§4.8). It is a no-op if no transform is set.
func (w *Workspace) Run() error {
	if w.transform == nil {
		return nil
	}
	return transform.Go(w.transform, w.sf)
}

// HandleLigandError is the §7 recovery path for the one recoverable failure
// kind: a LigandError from attaching a scoring term to the current ligand.
// If err is (or wraps) a LigandError, it logs a line identifying the feature
// and deficit, writes the current ligand (model slot 1) to the error sink if
// one is configured, and reports handled=true so the caller skips this
// record and continues without invoking the transform. Any other error
// reports handled=false unchanged, leaving it to the caller's normal abort
// path.
func (w *Workspace) HandleLigandError(err error) (handled bool, writeErr error) {
	var dockErr *dockerr.Error
	if !errors.As(err, &dockErr) || dockErr.Kind != dockerr.LigandError {
		return false, nil
	}
	log.Printf("workspace: rejecting ligand, %s deficit %d", dockErr.Feature, dockErr.Deficit)
	if w.errorSink == nil {
		return true, nil
	}
	ligand, modelErr := w.Model(1)
	if modelErr != nil || ligand == nil {
		return true, nil
	}
	return true, w.errorSink.WriteRecord(w.runID, ligand, nil)
}

// Population returns the persistent population, or nil if none is set.
func (w *Workspace) Population() *population.Population { return w.population }

// SetPopulation installs p as the persistent population (§5.2: owned by the
// workspace, mutated only by the GA transform).
func (w *Workspace) SetPopulation(p *population.Population) { w.population = p }

// ClearPopulation drops the persistent population.
func (w *Workspace) ClearPopulation() { w.population = nil }

// DockingSite returns the docking site, or nil if none is set.
func (w *Workspace) DockingSite() *model.DockingSite { return w.dockSite }

// SetDockingSite installs the docking site.
func (w *Workspace) SetDockingSite(d *model.DockingSite) { w.dockSite = d }

// Filter returns the current filter, or nil if none is set.
func (w *Workspace) Filter() request.Observer { return w.filter }

// SetFilter installs f as the current filter, detaching the previous one
// and attaching f, like SetSF/SetTransform; unlike them it does not notify.
func (w *Workspace) SetFilter(f request.Observer) {
	if w.filter != nil {
		w.Detach(w.filter)
	}
	w.filter = f
	if f != nil {
		w.Attach(f)
	}
}

// Save writes the current ligand (model slot 1) and, if withScores is true
// and an SF is configured, its score map, to the results sink. It is a
// no-op if no sink is configured or slot 1 is empty (§4.8: "no-op at the
// base level; concrete workspaces may write").
func (w *Workspace) Save(withScores bool) error {
	return w.save(w.sink, withScores)
}

// SaveHistory is Save against the history sink instead of the results sink.
func (w *Workspace) SaveHistory(withScores bool) error {
	return w.save(w.historySink, withScores)
}

func (w *Workspace) save(sink Sink, withScores bool) error {
	if sink == nil {
		return nil
	}
	ligand, err := w.Model(1)
	if err != nil || ligand == nil {
		return nil
	}
	var scores map[string]float64
	if withScores && w.sf != nil {
		scores = make(map[string]float64)
		w.sf.ScoreMap(scores)
	}
	return sink.WriteRecord(w.runID, ligand, scores)
}
