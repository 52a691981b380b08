/*
Package cavity implements C4's cavity-fill descriptor term (§4.4.9),
grounded on `lib/CavityFillSF.cxx`: a fixed voxel grid over the docking
site classifies space as receptor-excluded, cavity, or unallocated, then
ligand-excluded volume is carved out of a working copy and the coverage
percentages are logged as descriptors. The score itself is always 0 — the
term exists purely as a post-filter void/occupancy report.
*/
package cavity

import (
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/request"
	"github.com/TimothyStiles/dockcore/score"
)

// voxel classification values, matching the three-state FFTGrid scheme
// CavityFillSF.cxx uses (-1 excluded, 0 unallocated, 1 cavity).
const (
	unallocated = 0
	excluded    = -1
	occupied    = 1
)

// voxelGrid is a dense Nx*Ny*Nz array of int8 classifications, kept
// separate from grid.Grid[T] since a cavity-fill voxel holds one scalar
// state rather than a list of bound values.
type voxelGrid struct {
	min        model.Vec3
	step       model.Vec3
	nx, ny, nz int
	cells      []int8
}

func newVoxelGrid(min, step model.Vec3, nx, ny, nz int) *voxelGrid {
	return &voxelGrid{min: min, step: step, nx: nx, ny: ny, nz: nz, cells: make([]int8, nx*ny*nz)}
}

func (g *voxelGrid) index(p model.Vec3) (int, bool) {
	ix := int((p.X - g.min.X) / g.step.X)
	iy := int((p.Y - g.min.Y) / g.step.Y)
	iz := int((p.Z - g.min.Z) / g.step.Z)
	if ix < 0 || ix >= g.nx || iy < 0 || iy >= g.ny || iz < 0 || iz >= g.nz {
		return 0, false
	}
	return (ix*g.ny+iy)*g.nz + iz, true
}

// setSphere marks every voxel within radius of center as value, mirroring
// FFTGrid::SetSphere's brute-force sweep.
func (g *voxelGrid) setSphere(center model.Vec3, radius float64, value int8) {
	r2 := radius * radius
	for i, c := range g.cells {
		_ = c
		p := g.coordOf(i)
		d := p.Sub(center)
		if d.Dot(d) <= r2 {
			g.cells[i] = value
		}
	}
}

func (g *voxelGrid) coordOf(index int) model.Vec3 {
	iz := index % g.nz
	rest := index / g.nz
	iy := rest % g.ny
	ix := rest / g.ny
	return model.Vec3{
		X: g.min.X + float64(ix)*g.step.X,
		Y: g.min.Y + float64(iy)*g.step.Y,
		Z: g.min.Z + float64(iz)*g.step.Z,
	}
}

func (g *voxelGrid) setValue(p model.Vec3, value int8) {
	if idx, ok := g.index(p); ok {
		g.cells[idx] = value
	}
}

func (g *voxelGrid) count(value int8) int {
	n := 0
	for _, c := range g.cells {
		if c == value {
			n++
		}
	}
	return n
}

func (g *voxelGrid) clone() *voxelGrid {
	cp := &voxelGrid{min: g.min, step: g.step, nx: g.nx, ny: g.ny, nz: g.nz, cells: make([]int8, len(g.cells))}
	copy(cp.cells, g.cells)
	return cp
}

// Term is the cavity-fill descriptor term. SetupReceptor-equivalent state
// (the baseline grid) is built once by NewTerm from the site and receptor;
// RawScore carves out the ligand's current volume from a working copy and
// records coverage counts, always returning 0.
type Term struct {
	score.Base
	Ligand *model.Model

	base         *voxelGrid
	border       float64
	probeRadius  float64
	lastCoverage map[string]int
}

// NewTerm builds the cavity-fill term's baseline grid: receptor atoms carve
// out excluded volume, then the site's cavity coordinates mark occupied
// (cavity) voxels, per SetupReceptor's two-pass scheme.
func NewTerm(fqName string, ligand *model.Model, receptor *model.Model, site *model.DockingSite, gridStep float64) *Term {
	t := &Term{Base: score.NewBase(fqName), Ligand: ligand, border: 10.0, probeRadius: 0.3}
	if site == nil || gridStep <= 0 {
		return t
	}
	min := site.Min.Sub(model.Vec3{X: t.border, Y: t.border, Z: t.border})
	max := site.Max.Add(model.Vec3{X: t.border, Y: t.border, Z: t.border})
	extent := max.Sub(min)
	nx := int(extent.X/gridStep) + 1
	ny := int(extent.Y/gridStep) + 1
	nz := int(extent.Z/gridStep) + 1
	if nx < 1 || ny < 1 || nz < 1 {
		return t
	}
	g := newVoxelGrid(min, model.Vec3{X: gridStep, Y: gridStep, Z: gridStep}, nx, ny, nz)
	if receptor != nil {
		for _, a := range receptor.Atoms {
			if a.Enabled {
				g.setSphere(a.Coord, a.VdwRadius+t.probeRadius, excluded)
			}
		}
	}
	for _, c := range site.CavityCoords {
		g.setValue(c, occupied)
	}
	t.base = g
	return t
}

// RawScore carves the ligand's current volume out of a copy of the
// baseline grid and records the resulting excluded/cavity/unallocated
// voxel counts as descriptors (§4.4.9). It never contributes to the total
// score.
func (t *Term) RawScore() float64 {
	if t.base == nil {
		t.lastCoverage = nil
		return 0
	}
	work := t.base.clone()
	if t.Ligand != nil {
		for _, a := range t.Ligand.Atoms {
			if a.Enabled {
				work.setSphere(a.Coord, a.VdwRadius+t.probeRadius, excluded)
			}
		}
	}
	t.lastCoverage = map[string]int{
		"excluded":    work.count(excluded),
		"cavity":      work.count(occupied),
		"unallocated": work.count(unallocated),
	}
	return 0
}

func (t *Term) ScoreMap(out map[string]float64) {
	if !t.Enabled() {
		return
	}
	t.RawScore()
	out[t.Name()] = 0
	for k, v := range t.lastCoverage {
		out[t.Name()+"."+k] = float64(v)
	}
}

func (t *Term) HandleRequest(r request.Request) error {
	_, err := t.HandleBaseRequest(r, nil)
	return err
}
