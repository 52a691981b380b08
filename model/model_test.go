package model_test

import (
	"math"
	"testing"

	"github.com/TimothyStiles/dockcore/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() *model.Model {
	return &model.Model{
		Atoms: []*model.Atom{
			{ID: 1, Coord: model.Vec3{X: 1, Y: 0, Z: 0}, Enabled: true},
			{ID: 2, Coord: model.Vec3{X: -1, Y: 0, Z: 0}, Enabled: true},
			{ID: 3, Coord: model.Vec3{X: 0, Y: 1, Z: 0}, Enabled: true},
			{ID: 4, Coord: model.Vec3{X: 0, Y: -1, Z: 0}, Enabled: true},
		},
	}
}

func TestCenterOfMassIsCentroidOfEnabledAtoms(t *testing.T) {
	m := square()
	com := m.CenterOfMass()
	assert.InDelta(t, 0, com.X, 1e-9)
	assert.InDelta(t, 0, com.Y, 1e-9)
}

func TestSetCenterOfMassTranslatesAllAtoms(t *testing.T) {
	m := square()
	m.SetCenterOfMass(model.Vec3{X: 5, Y: 5, Z: 5})
	com := m.CenterOfMass()
	assert.InDelta(t, 5, com.X, 1e-9)
	assert.InDelta(t, 5, com.Y, 1e-9)
	assert.InDelta(t, 5, com.Z, 1e-9)
}

func TestSaveRestoreCoordsRoundTrips(t *testing.T) {
	m := square()
	m.SaveCoords("before")
	m.SetCenterOfMass(model.Vec3{X: 9, Y: 9, Z: 9})
	require.NoError(t, m.RestoreCoords("before"))
	com := m.CenterOfMass()
	assert.InDelta(t, 0, com.X, 1e-9)
}

func TestRestoreUnknownSnapshotErrors(t *testing.T) {
	m := square()
	err := m.RestoreCoords("missing")
	assert.Error(t, err)
}

func TestRotateBondRotatesOnlyMovingAtoms(t *testing.T) {
	m := &model.Model{Atoms: []*model.Atom{
		{ID: 1, Coord: model.Vec3{X: 0, Y: 0, Z: 0}},
		{ID: 2, Coord: model.Vec3{X: 0, Y: 0, Z: 1}},
		{ID: 3, Coord: model.Vec3{X: 1, Y: 0, Z: 1}},
	}}
	bond := model.Bond{Atom1: 1, Atom2: 2, Rotatable: true}
	moving := map[int]bool{3: true}
	err := m.RotateBond(bond, 90, moving)
	require.NoError(t, err)
	a3 := m.AtomByID(3)
	assert.InDelta(t, 0, a3.Coord.X, 1e-6)
	assert.InDelta(t, 1, a3.Coord.Y, 1e-6)
}

func TestUpdatePseudoAtomsUsesMeanOfConstituents(t *testing.T) {
	m := &model.Model{Atoms: []*model.Atom{
		{ID: 1, Coord: model.Vec3{X: 0, Y: 0, Z: 0}},
		{ID: 2, Coord: model.Vec3{X: 2, Y: 0, Z: 0}},
		{ID: 3, IsPseudo: true, Constituents: []int{1, 2}},
	}}
	m.UpdatePseudoAtoms()
	p := m.AtomByID(3)
	assert.InDelta(t, 1, p.Coord.X, 1e-9)
}

func TestPrincipalAxesOrthonormal(t *testing.T) {
	m := square()
	axes := m.PrincipalAxes()
	for _, a := range axes {
		norm := math.Sqrt(a.Dot(a))
		assert.InDelta(t, 1.0, norm, 1e-6)
	}
}
