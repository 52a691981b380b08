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

func TestSimAnnTracksMinimumScoreAcrossRun(t *testing.T) {
	m := twoAtomLigand(4, 4, 4)
	site := &model.DockingSite{Min: model.Vec3{X: -10, Y: -10, Z: -10}, Max: model.Vec3{X: 10, Y: 10, Z: 10}}
	seed := freeSeedChrom(m, site)
	sf := newSquareDistanceScore(m)

	sa := transform.NewSimAnn("test.simann", seed, rng.New(21))
	sa.NumBlocks = 2
	sa.BlockLength = 20
	sa.ScaleChromLength = false
	sa.StepSize = 2.0

	startScore := score.Score(sf)
	require.NoError(t, transform.Go(sa, sf))

	assert.LessOrEqual(t, score.Score(sf), startScore)
	assert.LessOrEqual(t, sa.Stats.Min, startScore)
}

func TestSimAnnNoopWithNilChrom(t *testing.T) {
	m := twoAtomLigand(0, 0, 0)
	sf := newSquareDistanceScore(m)
	sa := transform.NewSimAnn("test.simann", nil, rng.New(22))
	require.NoError(t, transform.Go(sa, sf))
}
