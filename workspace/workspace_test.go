package workspace_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/workspace"
)

func TestNewHasRequestedNumberOfNilSlots(t *testing.T) {
	w := workspace.New(2)
	assert.Equal(t, 2, w.NumModels())
	receptor, err := w.Model(0)
	require.NoError(t, err)
	assert.Nil(t, receptor)
}

func TestSetModelOutOfRangeIsBadArgument(t *testing.T) {
	w := workspace.New(2)
	err := w.SetModel(5, oneAtomModel(0, 0, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, dockerr.KindOf(dockerr.BadArgument)))
}

func TestSetModelReplacesSlotAndNotifiesObservers(t *testing.T) {
	w := workspace.New(2)
	ligand := oneAtomModel(1, 2, 3)
	obs := newConstScore("test.observer", 0)
	w.Attach(obs)

	require.NoError(t, w.SetModel(1, ligand))
	got, err := w.Model(1)
	require.NoError(t, err)
	assert.Same(t, ligand, got)
	assert.True(t, obs.registered, "observer should be notified of the slot change")
}

func TestAddModelsGrowsWorkspace(t *testing.T) {
	w := workspace.New(2)
	w.AddModels(oneAtomModel(0, 0, 0), oneAtomModel(1, 1, 1))
	assert.Equal(t, 4, w.NumModels())

	tail, err := w.ModelsFrom(2)
	require.NoError(t, err)
	assert.Len(t, tail, 2)
}

func TestRemoveModelsTruncatesFromIndex(t *testing.T) {
	w := workspace.New(2)
	w.AddModels(oneAtomModel(0, 0, 0))
	require.NoError(t, w.RemoveModels(2))
	assert.Equal(t, 2, w.NumModels())
}

func TestSetSFAutoRegistersAsObserver(t *testing.T) {
	w := workspace.New(2)
	sf := newConstScore("test.sf", 1.0)

	w.SetSF(sf)
	assert.Same(t, sf, w.SF())

	require.NoError(t, w.SetModel(1, oneAtomModel(0, 0, 0)))
	assert.True(t, sf.registered, "SF should be notified of model slot changes")
}

func TestSetSFDetachesPreviousSF(t *testing.T) {
	w := workspace.New(2)
	first := newConstScore("test.sf.first", 1.0)
	second := newConstScore("test.sf.second", 2.0)

	w.SetSF(first)
	w.SetSF(second)
	// SetSF(first) already notified first; clear the flag so only later
	// notifications count.
	first.registered = false

	require.NoError(t, w.SetModel(1, oneAtomModel(0, 0, 0)))
	assert.False(t, first.registered, "replaced SF should have been detached")
	assert.True(t, second.registered)
}

func TestRunInvokesCurrentTransform(t *testing.T) {
	w := workspace.New(2)
	rt := &recordingTransform{name: "test.transform"}
	w.SetTransform(rt)

	require.NoError(t, w.Run())
	assert.True(t, rt.ran)
}

func TestRunNoopWithoutTransform(t *testing.T) {
	w := workspace.New(2)
	require.NoError(t, w.Run())
}

func TestSaveWritesLigandToSink(t *testing.T) {
	w := workspace.New(2)
	ligand := oneAtomModel(4, 5, 6)
	require.NoError(t, w.SetModel(1, ligand))

	sf := newConstScore("test.sf", 7.0)
	w.SetSF(sf)

	sink := &recordingSink{}
	w.SetSink(sink)

	require.NoError(t, w.Save(true))
	require.Len(t, sink.calls, 1)
	assert.Same(t, ligand, sink.calls[0].model)
	assert.Equal(t, w.RunID(), sink.calls[0].id)
	assert.Equal(t, 7.0, sink.calls[0].scores["test.sf"])
}

func TestSaveWithoutScoresOmitsScoreMap(t *testing.T) {
	w := workspace.New(2)
	require.NoError(t, w.SetModel(1, oneAtomModel(0, 0, 0)))
	sink := &recordingSink{}
	w.SetSink(sink)

	require.NoError(t, w.Save(false))
	require.Len(t, sink.calls, 1)
	assert.Nil(t, sink.calls[0].scores)
}

func TestSaveNoopWithoutSink(t *testing.T) {
	w := workspace.New(2)
	require.NoError(t, w.SetModel(1, oneAtomModel(0, 0, 0)))
	require.NoError(t, w.Save(true))
}

func TestSaveHistoryUsesHistorySink(t *testing.T) {
	w := workspace.New(2)
	require.NoError(t, w.SetModel(1, oneAtomModel(0, 0, 0)))

	results := &recordingSink{}
	history := &recordingSink{}
	w.SetSink(results)
	w.SetHistorySink(history)

	require.NoError(t, w.SaveHistory(false))
	assert.Empty(t, results.calls)
	assert.Len(t, history.calls, 1)
}

func TestHandleLigandErrorWritesToErrorSinkWhenConfigured(t *testing.T) {
	w := workspace.New(2)
	ligand := oneAtomModel(1, 2, 3)
	require.NoError(t, w.SetModel(1, ligand))

	sink := &recordingSink{}
	w.SetErrorSink(sink)

	err := dockerr.NewLigandError("donors", 1, "donors 2 required 3")
	handled, writeErr := w.HandleLigandError(err)
	require.NoError(t, writeErr)
	assert.True(t, handled)
	require.Len(t, sink.calls, 1)
	assert.Same(t, ligand, sink.calls[0].model)
	assert.Nil(t, sink.calls[0].scores)
}

func TestHandleLigandErrorHandledWithoutErrorSinkConfigured(t *testing.T) {
	w := workspace.New(2)
	require.NoError(t, w.SetModel(1, oneAtomModel(0, 0, 0)))

	err := dockerr.NewLigandError("donors", 1, "donors 2 required 3")
	handled, writeErr := w.HandleLigandError(err)
	require.NoError(t, writeErr)
	assert.True(t, handled)
}

func TestHandleLigandErrorIgnoresOtherErrorKinds(t *testing.T) {
	w := workspace.New(2)
	require.NoError(t, w.SetModel(1, oneAtomModel(0, 0, 0)))
	sink := &recordingSink{}
	w.SetErrorSink(sink)

	handled, writeErr := w.HandleLigandError(dockerr.New(dockerr.BadArgument, "bad"))
	require.NoError(t, writeErr)
	assert.False(t, handled)
	assert.Empty(t, sink.calls)
}

func TestDockingSiteAndPopulationRoundTrip(t *testing.T) {
	w := workspace.New(2)
	site := &model.DockingSite{Min: model.Vec3{X: -1, Y: -1, Z: -1}, Max: model.Vec3{X: 1, Y: 1, Z: 1}}
	w.SetDockingSite(site)
	assert.Same(t, site, w.DockingSite())

	w.ClearPopulation()
	assert.Nil(t, w.Population())
}
