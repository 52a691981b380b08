package chrom_test

import (
	"math"
	"testing"

	"github.com/TimothyStiles/dockcore/chrom"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareModel() *model.Model {
	atoms := []*model.Atom{
		{ID: 1, Enabled: true, Coord: model.Vec3{X: 1, Y: 1, Z: 0}},
		{ID: 2, Enabled: true, Coord: model.Vec3{X: -1, Y: 1, Z: 0}},
		{ID: 3, Enabled: true, Coord: model.Vec3{X: -1, Y: -1, Z: 0}},
		{ID: 4, Enabled: true, Coord: model.Vec3{X: 1, Y: -1, Z: 0}},
	}
	return &model.Model{Atoms: atoms}
}

func TestPositionFixedModeIgnoresRandomise(t *testing.T) {
	m := squareModel()
	ref := &chrom.PositionRefData{Mode: chrom.Fixed, StepSize: 1}
	p := chrom.NewPosition(m, ref)
	var before []float64
	p.GetVector(&before)
	r := rng.New(7)
	p.Randomise(r)
	var after []float64
	p.GetVector(&after)
	assert.Equal(t, before, after)
}

func TestPositionTetheredRandomiseStaysWithinBall(t *testing.T) {
	m := squareModel()
	ref := &chrom.PositionRefData{Mode: chrom.Tethered, MaxTrans: 2.0, StepSize: 1}
	p := chrom.NewPosition(m, ref)
	r := rng.New(3)
	for i := 0; i < 20; i++ {
		p.Randomise(r)
		var v []float64
		p.GetVector(&v)
		d := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		assert.LessOrEqual(t, d, 2.0+1e-9)
	}
}

func TestPositionFreeRandomiseStaysInSite(t *testing.T) {
	m := squareModel()
	site := &model.DockingSite{Min: model.Vec3{X: -5, Y: -5, Z: -5}, Max: model.Vec3{X: 5, Y: 5, Z: 5}}
	ref := &chrom.PositionRefData{Mode: chrom.Free, Site: site, StepSize: 1}
	p := chrom.NewPosition(m, ref)
	r := rng.New(9)
	for i := 0; i < 20; i++ {
		p.Randomise(r)
		var v []float64
		p.GetVector(&v)
		assert.True(t, site.Contains(model.Vec3{X: v[0], Y: v[1], Z: v[2]}))
	}
}

func TestPositionSyncToModelTranslatesCenterOfMass(t *testing.T) {
	m := squareModel()
	ref := &chrom.PositionRefData{Mode: chrom.Free, StepSize: 1}
	p := chrom.NewPosition(m, ref)
	idx := 0
	require.NoError(t, p.SetVector([]float64{5, 5, 5}, &idx))
	require.NoError(t, p.SyncToModel())
	com := m.CenterOfMass()
	assert.InDelta(t, 5.0, com.X, 1e-9)
	assert.InDelta(t, 5.0, com.Y, 1e-9)
	assert.InDelta(t, 5.0, com.Z, 1e-9)
}
