package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/dockcore/request"
)

// fakeTerm is a minimal Term double for exercising Aggregate.
type fakeTerm struct {
	Base
	raw float64
}

func newFakeTerm(name string, raw, weight float64) *fakeTerm {
	t := &fakeTerm{Base: NewBase(name), raw: raw}
	t.SetWeight(weight)
	return t
}

func (f *fakeTerm) RawScore() float64 { return f.raw }
func (f *fakeTerm) ScoreMap(out map[string]float64) {
	if !f.Enabled() {
		return
	}
	out[f.Name()] = f.RawScore()
}
func (f *fakeTerm) HandleRequest(r request.Request) error {
	_, err := f.HandleBaseRequest(r, nil)
	return err
}

func TestAggregateRawScoreSumsWeightedEnabledChildren(t *testing.T) {
	agg := NewAggregate("test.agg")
	a := newFakeTerm("test.agg.a", 2.0, 1.0)
	b := newFakeTerm("test.agg.b", 3.0, 2.0)
	agg.Add(a)
	agg.Add(b)
	assert.Equal(t, 8.0, agg.RawScore())

	b.SetEnabled(false)
	assert.Equal(t, 2.0, agg.RawScore())
}

func TestAggregateScoreMapOmitsDisabledChildren(t *testing.T) {
	agg := NewAggregate("test.agg")
	a := newFakeTerm("test.agg.a", 2.0, 1.0)
	b := newFakeTerm("test.agg.b", 3.0, 1.0)
	b.SetEnabled(false)
	agg.Add(a)
	agg.Add(b)

	out := map[string]float64{}
	agg.ScoreMap(out)

	_, aPresent := out["test.agg.a"]
	_, bPresent := out["test.agg.b"]
	assert.True(t, aPresent)
	assert.False(t, bPresent)
	assert.Equal(t, 2.0, out["test.agg"])
}

func TestAggregateScoreMapRecordsCumulativeWeightedTotal(t *testing.T) {
	agg := NewAggregate("test.agg")
	agg.Add(newFakeTerm("test.agg.a", 2.0, 1.0))
	agg.Add(newFakeTerm("test.agg.b", 3.0, 2.0))

	out := map[string]float64{}
	agg.ScoreMap(out)
	assert.Equal(t, 8.0, out["test.agg"])
}

func TestAggregateScoreMapOmitsEverythingWhenAggregateItselfDisabled(t *testing.T) {
	agg := NewAggregate("test.agg")
	agg.Add(newFakeTerm("test.agg.a", 2.0, 1.0))
	agg.SetEnabled(false)

	out := map[string]float64{}
	agg.ScoreMap(out)
	assert.Empty(t, out)
}

func TestAggregateRemoveDropsFirstMatchingChild(t *testing.T) {
	agg := NewAggregate("test.agg")
	agg.Add(newFakeTerm("test.agg.a", 1, 1))
	require.True(t, agg.Remove("test.agg.a"))
	assert.False(t, agg.Remove("test.agg.a"))
	assert.Empty(t, agg.Children())
}

func TestAggregateHandleRequestAppliesToSelfAndChildren(t *testing.T) {
	agg := NewAggregate("test.agg")
	child := newFakeTerm("test.agg.a", 1, 1)
	agg.Add(child)

	require.NoError(t, agg.HandleRequest(request.NewEnable("test.agg.a", false)))
	assert.False(t, child.Enabled())
	assert.True(t, agg.Enabled())
}
