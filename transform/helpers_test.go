package transform_test

import (
	"github.com/TimothyStiles/dockcore/chrom"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/request"
)

// squareDistanceScore scores a model by the squared distance of its
// center of mass from the origin, so search transforms that minimise it
// pull the ligand toward (0,0,0) — a scoring function simple enough to
// assert convergence against without a real force field.
type squareDistanceScore struct {
	ligand  *model.Model
	enabled bool
	weight  float64
}

func newSquareDistanceScore(ligand *model.Model) *squareDistanceScore {
	return &squareDistanceScore{ligand: ligand, enabled: true, weight: 1}
}

func (s *squareDistanceScore) Name() string     { return "test.distance" }
func (s *squareDistanceScore) Enabled() bool    { return s.enabled }
func (s *squareDistanceScore) SetEnabled(e bool) { s.enabled = e }
func (s *squareDistanceScore) Weight() float64   { return s.weight }
func (s *squareDistanceScore) SetWeight(w float64) { s.weight = w }

func (s *squareDistanceScore) RawScore() float64 {
	com := s.ligand.CenterOfMass()
	return com.Dot(com)
}

func (s *squareDistanceScore) ScoreMap(out map[string]float64) { out[s.Name()] = s.RawScore() }

func (s *squareDistanceScore) HandleRequest(r request.Request) error { return nil }

func twoAtomLigand(x, y, z float64) *model.Model {
	return &model.Model{Atoms: []*model.Atom{
		{ID: 1, Enabled: true, Coord: model.Vec3{X: x, Y: y, Z: z}},
		{ID: 2, Enabled: true, Coord: model.Vec3{X: x + 1, Y: y, Z: z}},
	}}
}

func freeSeedChrom(m *model.Model, site *model.DockingSite) *chrom.Chrom {
	c := chrom.NewChrom([]*model.Model{m})
	c.Add(chrom.NewPosition(m, &chrom.PositionRefData{Mode: chrom.Free, Site: site, StepSize: 1.0}))
	return c
}
