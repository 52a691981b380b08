package model

import "math"

// DockingSite holds the cavity grid coordinates and an axis-aligned
// bounding box. Per §1, the cavity generator itself is out of the core's
// scope; DockingSite just carries the data a generator would have produced.
type DockingSite struct {
	Min, Max Vec3
	// CavityCoords is the list of grid points the external cavity generator
	// identified as the binding region.
	CavityCoords []Vec3
}

// Contains reports whether p lies within the bounding box.
func (d *DockingSite) Contains(p Vec3) bool {
	return p.X >= d.Min.X && p.X <= d.Max.X &&
		p.Y >= d.Min.Y && p.Y <= d.Max.Y &&
		p.Z >= d.Min.Z && p.Z <= d.Max.Z
}

// AtomsInRange returns the subset of atoms whose coordinate lies within
// [inner, outer] of the site's cavity (outer <= 0 means unbounded above).
// inner == 0 includes every atom up to outer.
func (d *DockingSite) AtomsInRange(atoms []*Atom, inner, outer float64) []*Atom {
	var result []*Atom
	for _, a := range atoms {
		d2 := d.minDistSqToCavity(a.Coord)
		if d2 < inner*inner {
			continue
		}
		if outer > 0 && d2 > outer*outer {
			continue
		}
		result = append(result, a)
	}
	return result
}

func (d *DockingSite) minDistSqToCavity(p Vec3) float64 {
	if len(d.CavityCoords) == 0 {
		return 0
	}
	best := math.MaxFloat64
	for _, c := range d.CavityCoords {
		dx, dy, dz := p.X-c.X, p.Y-c.Y, p.Z-c.Z
		d2 := dx*dx + dy*dy + dz*dz
		if d2 < best {
			best = d2
		}
	}
	return best
}

// CentroidCavity returns the unweighted centroid of the cavity coordinates,
// used by the Align transform's ALIGN mode (§4.6.2).
func (d *DockingSite) CentroidCavity() Vec3 {
	if len(d.CavityCoords) == 0 {
		return d.Min.Add(d.Max).Scale(0.5)
	}
	var sum Vec3
	for _, c := range d.CavityCoords {
		sum = sum.Add(c)
	}
	return sum.Scale(1.0 / float64(len(d.CavityCoords)))
}

// PrincipalAxes returns the three eigenvectors of the cavity coordinate
// covariance matrix about CentroidCavity, largest eigenvalue first, using
// the same Jacobi method as Model.PrincipalAxes. The Align transform
// aligns the ligand's axes to these (§4.6.2).
func (d *DockingSite) PrincipalAxes() [3]Vec3 {
	com := d.CentroidCavity()
	var cov [3][3]float64
	for _, c := range d.CavityCoords {
		dv := c.Sub(com)
		arr := [3]float64{dv.X, dv.Y, dv.Z}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				cov[i][j] += arr[i] * arr[j]
			}
		}
	}
	vecs, vals := jacobiEigen(cov)
	order := []int{0, 1, 2}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if vals[order[j]] > vals[order[i]] {
				order[i], order[j] = order[j], order[i]
			}
		}
	}
	return [3]Vec3{vecs[order[0]], vecs[order[1]], vecs[order[2]]}
}
