package workspace_test

import (
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/score"
)

// recordingSink captures every WriteRecord call so tests can assert what a
// Save/SaveHistory call produced without a real molfile writer.
type recordingSink struct {
	calls []sinkCall
}

type sinkCall struct {
	id     string
	model  *model.Model
	scores map[string]float64
}

func (s *recordingSink) WriteRecord(id string, m *model.Model, scores map[string]float64) error {
	s.calls = append(s.calls, sinkCall{id: id, model: m, scores: scores})
	return nil
}

// constScore is a minimal score.Term double; it also implements
// request.Observer so tests can confirm Workspace auto-registers it.
type constScore struct {
	name       string
	enabled    bool
	weight     float64
	value      float64
	registered bool
}

func newConstScore(name string, value float64) *constScore {
	return &constScore{name: name, enabled: true, weight: 1, value: value}
}

func (s *constScore) Name() string                          { return s.name }
func (s *constScore) Enabled() bool                          { return s.enabled }
func (s *constScore) SetEnabled(e bool)                      { s.enabled = e }
func (s *constScore) Weight() float64                        { return s.weight }
func (s *constScore) SetWeight(w float64)                    { s.weight = w }
func (s *constScore) RawScore() float64                      { return s.value }
func (s *constScore) ScoreMap(out map[string]float64)        { out[s.name] = s.RawScore() }
func (s *constScore) HandleRequest(r request.Request) error   { return nil }
func (s *constScore) Update(subject any)                      { s.registered = true }
func (s *constScore) Deleted(subject any)                     { s.registered = false }

var _ score.Term = (*constScore)(nil)
var _ request.Observer = (*constScore)(nil)

// recordingTransform sets ran when executed, so Run tests can assert the
// transform actually fired.
type recordingTransform struct {
	name string
	ran  bool
}

func (r *recordingTransform) Name() string                        { return r.name }
func (r *recordingTransform) Enabled() bool                        { return true }
func (r *recordingTransform) SetEnabled(bool)                      {}
func (r *recordingTransform) AddSFRequest(request.Request)         {}
func (r *recordingTransform) ClearSFRequests()                     {}
func (r *recordingTransform) SendSFRequests(request.Handler) error { return nil }
func (r *recordingTransform) Execute(score.Term) error             { r.ran = true; return nil }
func (r *recordingTransform) HandleRequest(request.Request) error  { return nil }

func oneAtomModel(x, y, z float64) *model.Model {
	return &model.Model{Atoms: []*model.Atom{
		{ID: 1, Enabled: true, Coord: model.Vec3{X: x, Y: y, Z: z}},
	}}
}
