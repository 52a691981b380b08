package cavity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TimothyStiles/dockcore/model"
)

func TestRawScoreAlwaysZero(t *testing.T) {
	site := &model.DockingSite{
		Min:          model.Vec3{X: -5, Y: -5, Z: -5},
		Max:          model.Vec3{X: 5, Y: 5, Z: 5},
		CavityCoords: []model.Vec3{{X: 0, Y: 0, Z: 0}},
	}
	receptor := &model.Model{Atoms: []*model.Atom{
		{ID: 1, Coord: model.Vec3{X: -4, Y: -4, Z: -4}, Enabled: true, VdwRadius: 1.5},
	}}
	ligand := &model.Model{Atoms: []*model.Atom{
		{ID: 2, Coord: model.Vec3{X: 0, Y: 0, Z: 0}, Enabled: true, VdwRadius: 1.0},
	}}
	term := NewTerm("test.cavity", ligand, receptor, site, 1.0)
	assert.Equal(t, 0.0, term.RawScore())
}

func TestRawScoreReportsCoverageDescriptors(t *testing.T) {
	site := &model.DockingSite{
		Min:          model.Vec3{X: -5, Y: -5, Z: -5},
		Max:          model.Vec3{X: 5, Y: 5, Z: 5},
		CavityCoords: []model.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}},
	}
	ligand := &model.Model{Atoms: []*model.Atom{
		{ID: 1, Coord: model.Vec3{X: 0, Y: 0, Z: 0}, Enabled: true, VdwRadius: 1.0},
	}}
	term := NewTerm("test.cavity", ligand, nil, site, 1.0)
	out := map[string]float64{}
	term.ScoreMap(out)
	assert.Equal(t, 0.0, out["test.cavity"])
	if _, ok := out["test.cavity.excluded"]; !ok {
		t.Fatalf("expected excluded descriptor in score map, got %v", out)
	}
}

func TestNewTermToleratesMissingSite(t *testing.T) {
	term := NewTerm("test.cavity", nil, nil, nil, 1.0)
	assert.Equal(t, 0.0, term.RawScore())
}

func TestScoreMapOmitsDisabledTerm(t *testing.T) {
	site := &model.DockingSite{
		Min:          model.Vec3{X: -5, Y: -5, Z: -5},
		Max:          model.Vec3{X: 5, Y: 5, Z: 5},
		CavityCoords: []model.Vec3{{X: 0, Y: 0, Z: 0}},
	}
	ligand := &model.Model{Atoms: []*model.Atom{
		{ID: 1, Coord: model.Vec3{X: 0, Y: 0, Z: 0}, Enabled: true, VdwRadius: 1.0},
	}}
	term := NewTerm("test.cavity", ligand, nil, site, 1.0)
	term.SetEnabled(false)

	out := map[string]float64{}
	term.ScoreMap(out)
	assert.Empty(t, out)
}
