package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/rng"
	"github.com/TimothyStiles/dockcore/score"
	"github.com/TimothyStiles/dockcore/transform"
)

func TestSimplexReducesDistanceScore(t *testing.T) {
	m := twoAtomLigand(4, 4, 4)
	site := &model.DockingSite{Min: model.Vec3{X: -10, Y: -10, Z: -10}, Max: model.Vec3{X: 10, Y: 10, Z: 10}}
	seed := freeSeedChrom(m, site)
	sf := newSquareDistanceScore(m)

	sx := transform.NewSimplex("test.simplex", seed, rng.New(31))
	sx.NCycles = 3
	sx.MaxCalls = 50

	startScore := score.Score(sf)
	require.NoError(t, transform.Go(sx, sf))

	assert.Less(t, score.Score(sf), startScore)
}

func TestSimplexNoopWithNilChrom(t *testing.T) {
	m := twoAtomLigand(0, 0, 0)
	sf := newSquareDistanceScore(m)
	sx := transform.NewSimplex("test.simplex", nil, rng.New(32))
	require.NoError(t, transform.Go(sx, sf))
}
