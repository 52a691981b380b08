package desolv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimothyStiles/dockcore/model"
)

func solvAtom(id int, x, radius, density, asp float64) *model.Atom {
	return &model.Atom{
		ID: id, Enabled: true, Coord: model.Vec3{X: x},
		SolvationRadius: radius, PointDensity: density, AtomicSolvationParam: asp,
	}
}

func TestOverlapZeroBeyondCombinedRadii(t *testing.T) {
	a := solvAtom(1, 0, 1, 1, 1)
	b := solvAtom(2, 10, 1, 1, 1)
	assert.Equal(t, 0.0, overlap(a, b, 0.5))
}

func TestOverlapFullWhenOneAtomEnclosesAnother(t *testing.T) {
	a := solvAtom(1, 0, 3, 1, 1)
	b := solvAtom(2, 0.1, 0.5, 1, 1)
	assert.Equal(t, 1.0, overlap(a, b, 0))
}

func TestOverlapPartialBetweenExtremes(t *testing.T) {
	a := solvAtom(1, 0, 1.5, 1, 1)
	b := solvAtom(2, 2.0, 1.5, 1, 1)
	got := overlap(a, b, 0)
	assert.Greater(t, got, 0.0)
	assert.Less(t, got, 1.0)
}

func TestFullSurfaceScalesWithRadiusSquaredAndDensity(t *testing.T) {
	a := solvAtom(1, 0, 2, 2, 1)
	b := solvAtom(2, 0, 1, 2, 1)
	assert.Greater(t, fullSurface(a), fullSurface(b))
}

func TestBoundSurfaceReducedByNearbyAtoms(t *testing.T) {
	a := solvAtom(1, 0, 1.5, 1, 1)
	near := solvAtom(2, 1.0, 1.5, 1, 1)
	isolated := boundSurface(a, nil, 0)
	reduced := boundSurface(a, []*model.Atom{near}, 0)
	assert.Less(t, reduced, isolated)
}

func TestAtomEnergyScalesByGroupChargeWhenChargeScaled(t *testing.T) {
	a := solvAtom(1, 0, 1.5, 1, 2.0)
	a.GroupCharge = 0.5
	a.ChargeScaled = true
	assert.InDelta(t, 2.0*10*0.5, atomEnergy(a, 10), 1e-9)
}

func TestAtomEnergyIgnoresGroupChargeWhenNotScaled(t *testing.T) {
	a := solvAtom(1, 0, 1.5, 1, 2.0)
	a.GroupCharge = 0.5
	assert.InDelta(t, 2.0*10, atomEnergy(a, 10), 1e-9)
}

func TestTermRawScoreZeroWhenLigandAndReceptorDoNotOverlap(t *testing.T) {
	ligand := &model.Model{Atoms: []*model.Atom{solvAtom(1, 0, 1.5, 1, -0.1)}}
	receptor := &model.Model{Atoms: []*model.Atom{solvAtom(2, 100, 1.5, 1, -0.1)}}
	term := NewTerm("test.desolv", ligand, receptor, 1.4)
	assert.InDelta(t, 0.0, term.RawScore(), 1e-9)
}

func TestTermRawScoreReactsToLigandApproachingReceptor(t *testing.T) {
	ligand := &model.Model{Atoms: []*model.Atom{solvAtom(1, 0, 1.5, 1, -0.1)}}
	receptor := &model.Model{Atoms: []*model.Atom{solvAtom(2, 2.5, 1.5, 1, -0.1)}}
	term := NewTerm("test.desolv", ligand, receptor, 1.4)

	first := term.RawScore()
	ligand.Atoms[0].Coord.X = 3.0
	second := term.RawScore()
	assert.NotEqual(t, first, second)
}

func TestTermScoreMapUsesFullyQualifiedName(t *testing.T) {
	ligand := &model.Model{Atoms: []*model.Atom{solvAtom(1, 0, 1.5, 1, -0.1)}}
	term := NewTerm("test.desolv", ligand, nil, 1.4)
	out := map[string]float64{}
	term.ScoreMap(out)
	_, ok := out["test.desolv"]
	assert.True(t, ok)
}

func TestTermScoreMapOmitsDisabledTerm(t *testing.T) {
	ligand := &model.Model{Atoms: []*model.Atom{solvAtom(1, 0, 1.5, 1, -0.1)}}
	term := NewTerm("test.desolv", ligand, nil, 1.4)
	term.SetEnabled(false)
	out := map[string]float64{}
	term.ScoreMap(out)
	_, ok := out["test.desolv"]
	assert.False(t, ok)
}
