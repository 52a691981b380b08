package chrom_test

import (
	"testing"

	"github.com/TimothyStiles/dockcore/chrom"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// butane-like chain: C1-C2-C3-C4, rotatable bond C2-C3. Coordinates are a
// non-planar zigzag so the C1-C2-C3-C4 torsion is well defined.
func butane() *model.Model {
	atoms := []*model.Atom{
		{ID: 1, Element: "C", Enabled: true, Coord: model.Vec3{X: 0, Y: 1, Z: 0}},
		{ID: 2, Element: "C", Enabled: true, Coord: model.Vec3{X: 0, Y: 0, Z: 0}},
		{ID: 3, Element: "C", Enabled: true, Coord: model.Vec3{X: 1, Y: 0, Z: 0}},
		{ID: 4, Element: "C", Enabled: true, Coord: model.Vec3{X: 1, Y: 1, Z: 1}},
	}
	bonds := []model.Bond{
		{Atom1: 1, Atom2: 2},
		{Atom1: 2, Atom2: 3, Rotatable: true},
		{Atom1: 3, Atom2: 4},
	}
	return &model.Model{Atoms: atoms, Bonds: bonds}
}

func TestPendantSideEqualHalvesPicksAtom1Side(t *testing.T) {
	m := butane()
	bond := m.Bonds[1]
	moving, err := chrom.PendantSide(m, bond, nil)
	require.NoError(t, err)
	assert.True(t, moving[1])
	assert.False(t, moving[4])
}

func TestPendantSideUsesTetheredAtomsWhenGiven(t *testing.T) {
	m := butane()
	bond := m.Bonds[1]
	tethered := map[int]bool{1: true, 2: true}
	moving, err := chrom.PendantSide(m, bond, tethered)
	require.NoError(t, err)
	assert.True(t, moving[4])
	assert.False(t, moving[1])
}

func TestPendantSideSmallerSideMoves(t *testing.T) {
	atoms := []*model.Atom{
		{ID: 1, Element: "C", Enabled: true},
		{ID: 2, Element: "C", Enabled: true},
		{ID: 3, Element: "C", Enabled: true},
		{ID: 4, Element: "C", Enabled: true},
		{ID: 5, Element: "C", Enabled: true},
	}
	bonds := []model.Bond{
		{Atom1: 1, Atom2: 2, Rotatable: true},
		{Atom1: 2, Atom2: 3},
		{Atom1: 3, Atom2: 4},
		{Atom1: 4, Atom2: 5},
	}
	m := &model.Model{Atoms: atoms, Bonds: bonds}
	moving, err := chrom.PendantSide(m, bonds[0], nil)
	require.NoError(t, err)
	assert.True(t, moving[1])
	assert.Len(t, moving, 1)
}
