package pharma

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/model"
)

// Feature is a pharmacophore constraint's feature code, per §6.3.
type Feature string

const (
	FeatureAny        Feature = "Any"
	FeatureDonor      Feature = "Don"
	FeatureAcceptor   Feature = "Acc"
	FeatureHydrophobic Feature = "Hyd"
	FeatureAnionic    Feature = "Ani"
	FeatureCationic   Feature = "Cat"
	FeatureAromatic   Feature = "Aro"
	FeatureHalogen    Feature = "Hal"
	FeatureHARomatic  Feature = "Har"
)

// Constraint is one pharmacophore restraint: a point with a tolerance and
// a feature type (§4.4.7, §6.3).
type Constraint struct {
	Center    model.Vec3
	Tolerance float64
	Feature   Feature
}

// ParseConstraints reads the bespoke line format of §6.3: "x y z tolerance
// feature_code" per line, '#'-prefixed comments, blank lines ignored.
func ParseConstraints(r io.Reader) ([]Constraint, error) {
	scanner := bufio.NewScanner(r)
	var out []Constraint
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 5 {
			return nil, dockerr.NewFileError(dockerr.FileParseError, "constraint", lineNo, "expected 5 fields, got %d", len(fields))
		}
		x, err1 := strconv.ParseFloat(fields[0], 64)
		y, err2 := strconv.ParseFloat(fields[1], 64)
		z, err3 := strconv.ParseFloat(fields[2], 64)
		tol, err4 := strconv.ParseFloat(fields[3], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return nil, dockerr.NewFileError(dockerr.FileParseError, "constraint", lineNo, "malformed numeric field")
		}
		out = append(out, Constraint{
			Center:    model.Vec3{X: x, Y: y, Z: z},
			Tolerance: tol,
			Feature:   Feature(fields[4]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, dockerr.Wrap(dockerr.FileReadError, err, "constraint: read failed")
	}
	return out, nil
}
