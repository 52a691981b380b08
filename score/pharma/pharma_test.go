package pharma

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/model"
)

func TestParseConstraintsSkipsBlankAndCommentLines(t *testing.T) {
	text := "# header\n\n1.0 2.0 3.0 1.5 Don\n"
	got, err := ParseConstraints(strings.NewReader(text))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.Vec3{X: 1, Y: 2, Z: 3}, got[0].Center)
	assert.Equal(t, 1.5, got[0].Tolerance)
	assert.Equal(t, FeatureDonor, got[0].Feature)
}

func TestParseConstraintsRejectsWrongFieldCount(t *testing.T) {
	_, err := ParseConstraints(strings.NewReader("1.0 2.0 3.0 Don\n"))
	assert.Error(t, err)
}

func TestParseConstraintsRejectsMalformedNumber(t *testing.T) {
	_, err := ParseConstraints(strings.NewReader("x 2.0 3.0 1.5 Don\n"))
	assert.Error(t, err)
}

func donorLigandAtom(id int, x float64) *model.Atom {
	return &model.Atom{ID: id, Enabled: true, Coord: model.Vec3{X: x}, IsDonorH: true}
}

func TestConstraintScoreIsZeroWithinTolerance(t *testing.T) {
	c := Constraint{Center: model.Vec3{X: 0}, Tolerance: 1.0, Feature: FeatureDonor}
	atoms := []*model.Atom{donorLigandAtom(1, 0.5)}
	assert.Equal(t, 0.0, constraintScore(atoms, c))
}

func TestConstraintScoreIsSquaredDeficitBeyondTolerance(t *testing.T) {
	c := Constraint{Center: model.Vec3{X: 0}, Tolerance: 1.0, Feature: FeatureDonor}
	atoms := []*model.Atom{donorLigandAtom(1, 3.0)}
	assert.InDelta(t, 4.0, constraintScore(atoms, c), 1e-9)
}

func TestConstraintScoreIs99WithNoMatchingAtoms(t *testing.T) {
	c := Constraint{Center: model.Vec3{X: 0}, Tolerance: 1.0, Feature: FeatureDonor}
	assert.Equal(t, 99.0, constraintScore(nil, c))
}

func TestAttachErrorsWhenMandatoryFeatureUnmatched(t *testing.T) {
	ligand := &model.Model{Atoms: []*model.Atom{{ID: 1, Enabled: true, Element: "C"}}}
	term := NewTerm("test.pharma", []Constraint{{Feature: FeatureDonor, Tolerance: 1}}, nil, 0)
	assert.Error(t, term.Attach(ligand))
}

func TestAttachSucceedsWhenMandatoryFeatureMatched(t *testing.T) {
	ligand := &model.Model{Atoms: []*model.Atom{donorLigandAtom(1, 0)}}
	term := NewTerm("test.pharma", []Constraint{{Feature: FeatureDonor, Tolerance: 1}}, nil, 0)
	assert.NoError(t, term.Attach(ligand))
}

func TestAttachReportsActualMatchedAndRequiredCountsForShortfall(t *testing.T) {
	ligand := &model.Model{Atoms: []*model.Atom{
		donorLigandAtom(1, 0),
		donorLigandAtom(2, 1),
	}}
	mandatory := []Constraint{
		{Feature: FeatureDonor, Tolerance: 1},
		{Feature: FeatureDonor, Tolerance: 1},
		{Feature: FeatureDonor, Tolerance: 1},
	}
	term := NewTerm("test.pharma", mandatory, nil, 0)

	err := term.Attach(ligand)
	require.Error(t, err)
	var dockErr *dockerr.Error
	require.ErrorAs(t, err, &dockErr)
	assert.Equal(t, string(FeatureDonor), dockErr.Feature)
	assert.Equal(t, 1, dockErr.Deficit)
}

func TestAttachSucceedsWhenMatchedAtomsCoverAllSameFeatureConstraints(t *testing.T) {
	ligand := &model.Model{Atoms: []*model.Atom{
		donorLigandAtom(1, 0),
		donorLigandAtom(2, 1),
		donorLigandAtom(3, 2),
	}}
	mandatory := []Constraint{
		{Feature: FeatureDonor, Tolerance: 1},
		{Feature: FeatureDonor, Tolerance: 1},
		{Feature: FeatureDonor, Tolerance: 1},
	}
	term := NewTerm("test.pharma", mandatory, nil, 0)
	assert.NoError(t, term.Attach(ligand))
}

func TestRawScoreZeroBeforeAttach(t *testing.T) {
	term := NewTerm("test.pharma", nil, nil, 0)
	assert.Equal(t, 0.0, term.RawScore())
}

func TestRawScoreSumsMandatoryAndBestOptionalScores(t *testing.T) {
	ligand := &model.Model{Atoms: []*model.Atom{
		donorLigandAtom(1, 0),
		{ID: 2, Enabled: true, Coord: model.Vec3{X: 5}, IsAcceptor: true},
		{ID: 3, Enabled: true, Coord: model.Vec3{X: 2}, IsHydrophobic: true},
	}}
	mandatory := []Constraint{{Center: model.Vec3{X: 0}, Tolerance: 1, Feature: FeatureDonor}}
	optional := []Constraint{
		{Center: model.Vec3{X: 5}, Tolerance: 1, Feature: FeatureAcceptor},
		{Center: model.Vec3{X: 10}, Tolerance: 1, Feature: FeatureHydrophobic},
	}
	term := NewTerm("test.pharma", mandatory, optional, 1)
	require.NoError(t, term.Attach(ligand))

	got := term.RawScore()
	// mandatory is satisfied (0), and only the best (matched, in-tolerance
	// acceptor) optional constraint is required.
	assert.Equal(t, 0.0, got)
}

func TestScoreMapRecordsPerConstraintDescriptors(t *testing.T) {
	ligand := &model.Model{Atoms: []*model.Atom{donorLigandAtom(1, 0)}}
	mandatory := []Constraint{{Center: model.Vec3{X: 0}, Tolerance: 1, Feature: FeatureDonor}}
	term := NewTerm("test.pharma", mandatory, nil, 0)
	require.NoError(t, term.Attach(ligand))

	out := map[string]float64{}
	term.ScoreMap(out)
	assert.Equal(t, 0.0, out["test.pharma.con_0"])
	assert.Equal(t, 0.0, out["test.pharma"])
}

func TestScoreMapOmitsDisabledTerm(t *testing.T) {
	ligand := &model.Model{Atoms: []*model.Atom{donorLigandAtom(1, 0)}}
	mandatory := []Constraint{{Center: model.Vec3{X: 0}, Tolerance: 1, Feature: FeatureDonor}}
	term := NewTerm("test.pharma", mandatory, nil, 0)
	require.NoError(t, term.Attach(ligand))
	term.SetEnabled(false)

	out := map[string]float64{}
	term.ScoreMap(out)
	assert.Empty(t, out)
}
