package transform

import (
	"math"

	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/rng"
	"github.com/TimothyStiles/dockcore/score"
)

// Align places the ligand into the docking site's cavity by translation
// and rotation (§4.6.2). ComMode is "RANDOM" (a random cavity coord),
// "ALIGN" (the cavity centroid), or anything else (leave unchanged).
// AxesMode is "RANDOM" (a random axis-angle rotation) or "ALIGN" (align
// the ligand's principal axes to the cavity's, then flip each axis 180°
// with probability ½).
type Align struct {
	Base
	Ligand   *model.Model
	Site     *model.DockingSite
	ComMode  string
	AxesMode string
	rng      *rng.Source
}

// NewAlign builds an Align transform defaulting to ComMode=ALIGN,
// AxesMode=ALIGN, matching AlignTransform's constructor defaults.
func NewAlign(fqName string, ligand *model.Model, site *model.DockingSite, r *rng.Source) *Align {
	return &Align{
		Base:     NewBase(fqName),
		Ligand:   ligand,
		Site:     site,
		ComMode:  "ALIGN",
		AxesMode: "ALIGN",
		rng:      r,
	}
}

// Execute places the ligand per ComMode/AxesMode. A missing ligand, site,
// or empty cavity is a no-op (§8.3's "empty cavity list").
//
// The original selects one of several distinct cavities with probability
// proportional to each cavity's coordinate count before sampling a coord
// from it; this docking site models the binding region as a single
// coordinate list, so that weighted cavity choice collapses to sampling
// directly from Site.CavityCoords (uniform over a list already
// proportional to the region's point density).
func (t *Align) Execute(sf score.Term) error {
	if t.Ligand == nil || t.Site == nil || len(t.Site.CavityCoords) == 0 {
		return nil
	}

	switch t.ComMode {
	case "RANDOM":
		coord := t.Site.CavityCoords[t.rng.UniformInt(len(t.Site.CavityCoords))]
		t.Ligand.SetCenterOfMass(coord)
	case "ALIGN":
		t.Ligand.SetCenterOfMass(t.Site.CentroidCavity())
	}

	switch t.AxesMode {
	case "RANDOM":
		thetaRad := math.Pi * t.rng.Uniform01()
		axis := t.rng.UnitVector()
		rot := model.AxisAngleRotation(model.Vec3{X: axis[0], Y: axis[1], Z: axis[2]}, thetaRad)
		com := t.Ligand.CenterOfMass()
		t.Ligand.RotateAboutPoint(rot, com)
	case "ALIGN":
		prAxes := t.Site.PrincipalAxes()
		t.Ligand.AlignPrincipalAxes(prAxes)
		com := t.Ligand.CenterOfMass()
		for _, axis := range prAxes {
			if t.rng.Uniform01() < 0.5 {
				t.Ligand.RotateAboutPoint(model.AxisAngleRotation(axis, math.Pi), com)
			}
		}
	}
	return nil
}

func (t *Align) HandleRequest(r request.Request) error {
	_, err := t.HandleBaseRequest(r, func(param string, value any) error {
		switch param {
		case "center-of-mass":
			if v, ok := value.(string); ok {
				t.ComMode = v
			}
		case "axes":
			if v, ok := value.(string); ok {
				t.AxesMode = v
			}
		}
		return nil
	})
	return err
}
