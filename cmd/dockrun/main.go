/*
Command dockrun is the thin external driver §1 keeps out of the core: it
wires a workspace, a scoring aggregate, a GA transform, an optional TOML
parameter-file override (§6.6), and an optional MDL SD output record
(§6.2) into one docking run.

dockrun does not itself parse ligand/receptor files — per §1 that is an
external collaborator's job — so it docks a small built-in demo ligand
into a built-in demo site. A real deployment would swap demoLigand/
demoSite for calls into a molecule-file reader.
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/TimothyStiles/dockcore/chrom"
	"github.com/TimothyStiles/dockcore/config"
	"github.com/TimothyStiles/dockcore/model"
	"github.com/TimothyStiles/dockcore/molfile"
	"github.com/TimothyStiles/dockcore/population"
	"github.com/TimothyStiles/dockcore/rng"
	"github.com/TimothyStiles/dockcore/score"
	"github.com/TimothyStiles/dockcore/score/pharma"
	"github.com/TimothyStiles/dockcore/score/vdw"
	"github.com/TimothyStiles/dockcore/transform"
	"github.com/TimothyStiles/dockcore/workspace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	prmPath := flag.String("prm", "", "TOML parameter file overriding GA transform parameters (§6.6)")
	outPath := flag.String("out", "", "output MDL SD file for the docked ligand (§6.2); empty disables writing")
	constraintsPath := flag.String("constraints", "", "pharmacophore constraint file (§4.4.7); empty disables the term")
	errOutPath := flag.String("errout", "", "output MDL SD file for ligands rejected with a LigandError (§7); empty disables writing")
	seed := flag.Int64("seed", 1, "random seed (§5.3)")
	cycles := flag.Int("cycles", 50, "GA cycle budget")
	popSize := flag.Int("pop", 20, "GA population size")
	flag.Parse()

	r := rng.New(*seed)
	ligand := demoLigand()
	site := demoSite()

	ws := workspace.New(2)
	ws.SetDockingSite(site)
	if err := ws.SetModel(1, ligand); err != nil {
		return fmt.Errorf("setting ligand slot: %w", err)
	}
	if *errOutPath != "" {
		f, err := os.Create(*errOutPath)
		if err != nil {
			return fmt.Errorf("opening error sink file: %w", err)
		}
		defer f.Close()
		ws.SetErrorSink(molfile.NewSDWriter(f))
	}

	sf := score.NewAggregate("dockcore.score")
	sf.Add(vdw.NewIntra("dockcore.score.intra.vdw", ligand, 120))

	if *constraintsPath != "" {
		cf, err := os.Open(*constraintsPath)
		if err != nil {
			return fmt.Errorf("opening constraint file: %w", err)
		}
		mandatory, err := pharma.ParseConstraints(cf)
		cf.Close()
		if err != nil {
			return fmt.Errorf("parsing constraint file: %w", err)
		}
		pterm := pharma.NewTerm("dockcore.score.pharma", mandatory, nil, 0)
		if err := pterm.Attach(ligand); err != nil {
			if handled, writeErr := ws.HandleLigandError(err); handled {
				if writeErr != nil {
					return fmt.Errorf("writing rejected ligand to error sink: %w", writeErr)
				}
				return nil
			}
			return fmt.Errorf("attaching pharmacophore term: %w", err)
		}
		sf.Add(pterm)
	}
	ws.SetSF(sf)

	seedChrom := chrom.NewChrom([]*model.Model{ligand})
	seedChrom.Add(chrom.NewPosition(ligand, &chrom.PositionRefData{Mode: chrom.Free, Site: site, StepSize: 1.0}))

	pop, err := population.New(seedChrom, *popSize, sf, r)
	if err != nil {
		return fmt.Errorf("building initial population: %w", err)
	}
	ws.SetPopulation(pop)

	ga := transform.NewGA("dockcore.transform.ga", pop, r)
	ga.NCycles = *cycles

	if *prmPath != "" {
		pf, err := config.Load(*prmPath)
		if err != nil {
			return fmt.Errorf("loading parameter file: %w", err)
		}
		if err := pf.Apply("GA", ga); err != nil {
			return fmt.Errorf("applying GA parameters: %w", err)
		}
	}
	ws.SetTransform(ga)

	if err := ws.Run(); err != nil {
		return fmt.Errorf("running transform: %w", err)
	}

	scores := map[string]float64{}
	sf.ScoreMap(scores)
	for _, k := range []string{"dockcore.score", "dockcore.score.intra.vdw", "dockcore.score.pharma"} {
		if v, ok := scores[k]; ok {
			fmt.Printf("%s = %.4f\n", k, v)
		}
	}

	if *outPath == "" {
		return nil
	}
	f, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}
	defer f.Close()
	ws.SetSink(molfile.NewSDWriter(f))
	if err := ws.Save(true); err != nil {
		return fmt.Errorf("writing output record: %w", err)
	}
	return nil
}

func demoLigand() *model.Model {
	return &model.Model{
		Data: map[string]any{"name": "DEMO"},
		Atoms: []*model.Atom{
			{ID: 1, Element: "C", Enabled: true, Coord: model.Vec3{X: 0, Y: 0, Z: 0}, VdwRadius: 1.7, VdwWellDepth: 0.1},
			{ID: 2, Element: "C", Enabled: true, Coord: model.Vec3{X: 1.5, Y: 0, Z: 0}, VdwRadius: 1.7, VdwWellDepth: 0.1},
			{ID: 3, Element: "O", Enabled: true, Coord: model.Vec3{X: 0, Y: 1.5, Z: 0}, VdwRadius: 1.5, VdwWellDepth: 0.2},
		},
		Bonds: []model.Bond{
			{Atom1: 1, Atom2: 2, Order: 1},
			{Atom1: 1, Atom2: 3, Order: 1},
		},
	}
}

func demoSite() *model.DockingSite {
	return &model.DockingSite{
		Min: model.Vec3{X: -10, Y: -10, Z: -10},
		Max: model.Vec3{X: 10, Y: 10, Z: 10},
		CavityCoords: []model.Vec3{
			{X: 0, Y: 0, Z: 0},
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
		},
	}
}
