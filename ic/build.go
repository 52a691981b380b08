package ic

import "github.com/TimothyStiles/dockcore/model"

// BondedHeavyAtoms returns the heavy atoms bonded to the atom with the
// given ID, in bond-list order.
func BondedHeavyAtoms(m *model.Model, atomID int) []*model.Atom {
	var out []*model.Atom
	for _, b := range m.Bonds {
		var otherID int
		switch atomID {
		case b.Atom1:
			otherID = b.Atom2
		case b.Atom2:
			otherID = b.Atom1
		default:
			continue
		}
		if a := m.AtomByID(otherID); a != nil && a.Element != "H" {
			out = append(out, a)
		}
	}
	return out
}

func meanAtom(atoms []*model.Atom) *model.Atom {
	var sum model.Vec3
	ids := make([]int, 0, len(atoms))
	for _, a := range atoms {
		sum = sum.Add(a.Coord)
		ids = append(ids, a.ID)
	}
	return &model.Atom{
		Coord:        sum.Scale(1.0 / float64(len(atoms))),
		IsPseudo:     true,
		Constituents: ids,
		Enabled:      anyEnabled(atoms),
		Element:      "Xp",
	}
}

func anyEnabled(atoms []*model.Atom) bool {
	for _, a := range atoms {
		if a.Enabled {
			return true
		}
	}
	return false
}

// BuildPolarAcceptors implements §4.2's acceptor construction rule. Each
// acceptor atom yields zero or one Center.
func BuildPolarAcceptors(m *model.Model, acceptors []*model.Atom) []*Center {
	var out []*Center
	for _, acc := range acceptors {
		bonded := BondedHeavyAtoms(m, acc.ID)
		switch {
		case len(bonded) == 0:
			continue
		case len(bonded) == 1:
			parent := bonded[0]
			if acc.Element == "O" && (parent.Element == "C" || parent.Element == "N") {
				grandparents := BondedHeavyAtoms(m, parent.ID)
				var grandparent *model.Atom
				for _, gp := range grandparents {
					if gp.ID != acc.ID {
						grandparent = gp
						break
					}
				}
				if grandparent != nil {
					geom := Plane
					if acc.Anionic || acc.InRNA || acc.BondedToNitro {
						geom = LonePair
					}
					out = append(out, &Center{A1: acc, A2: parent, A3: grandparent, Geom: geom})
					continue
				}
			}
			out = append(out, &Center{A1: acc, A2: parent, Geom: None})
		default:
			pseudo := meanAtom(bonded)
			out = append(out, &Center{A1: acc, A2: pseudo, Geom: None})
		}
	}
	return out
}

// BuildPolarDonors implements §4.2: each donor hydrogen yields a two-atom
// IC (H + parent).
func BuildPolarDonors(m *model.Model, donorHydrogens []*model.Atom) []*Center {
	var out []*Center
	for _, h := range donorHydrogens {
		parents := BondedHeavyAtoms(m, h.ID)
		if len(parents) == 0 {
			continue
		}
		out = append(out, &Center{A1: h, A2: parents[0], Geom: None})
	}
	return out
}

// BuildMetals implements §4.2: each metal atom is a single-atom Center.
func BuildMetals(metals []*model.Atom) []*Center {
	out := make([]*Center, 0, len(metals))
	for _, m := range metals {
		out = append(out, &Center{A1: m, Geom: None})
	}
	return out
}

// BuildGuanidiniumCarbons implements §4.2: Plane ICs (for attractive terms)
// need the carbon's two ring/substituent neighbors; repulsive terms use a
// single-atom IC.
func BuildGuanidiniumCarbons(carbons []*model.Atom, neighbors map[int][2]*model.Atom, attractive bool) []*Center {
	var out []*Center
	for _, c := range carbons {
		if !attractive {
			out = append(out, &Center{A1: c, Geom: None})
			continue
		}
		n, ok := neighbors[c.ID]
		if !ok || n[0] == nil || n[1] == nil {
			out = append(out, &Center{A1: c, Geom: None})
			continue
		}
		out = append(out, &Center{A1: c, A2: n[0], A3: n[1], Geom: Plane})
	}
	return out
}

// BuildAromaticRings implements §4.2: one pseudo-atom centroid + Plane IC
// per ring.
func BuildAromaticRings(rings [][]*model.Atom) []*Center {
	var out []*Center
	for _, ring := range rings {
		if len(ring) < 2 {
			continue
		}
		centroid := meanAtom(ring)
		out = append(out, &Center{A1: centroid, A2: ring[0], A3: ring[1], Geom: Plane})
	}
	return out
}
