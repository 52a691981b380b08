/*
Package nmr implements C4's NMR restraint term (§4.4.8): NOE restraints
(donor/acceptor atom groups with Or/And/Mean aggregators) and STD
restraints (a ligand-atom group checked against the nearest receptor
heavy atom), grounded on `include/rxdock/NoeRestraint.h`'s
from/to-group-with-aggregator model and `NmrRestraintFileSource.h`'s file
format.
*/
package nmr

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/TimothyStiles/dockcore/dockerr"
)

// Aggregator is the group-distance rule of §4.4.8 / NoeRestraint.h's
// eNoeType: Or (shortest pairwise distance), And (longest pairwise
// distance), or Mean (distance between group centroids).
type Aggregator int

const (
	Or Aggregator = iota
	And
	Mean
)

// AtomGroup is one end of a restraint: a list of atom names under an
// aggregator, per §6.4's group syntax.
type AtomGroup struct {
	Names []string
	Agg   Aggregator
}

// Restraint is one NOE restraint: two atom groups and a max distance.
type Restraint struct {
	From, To AtomGroup
	MaxDist  float64
}

// StdRestraint is one STD restraint: one atom group and a max distance
// from the nearest receptor heavy atom.
type StdRestraint struct {
	From    AtomGroup
	MaxDist float64
}

// parseGroup parses one atom-group token per §6.4: "(a,b,c)" = Mean,
// "[a,b,c]" = And, bare "a,b,c" = Or.
func parseGroup(tok string) (AtomGroup, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return AtomGroup{}, dockerr.New(dockerr.FileParseError, "nmr: empty atom group")
	}
	agg := Or
	inner := tok
	switch {
	case strings.HasPrefix(tok, "(") && strings.HasSuffix(tok, ")"):
		agg = Mean
		inner = tok[1 : len(tok)-1]
	case strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]"):
		agg = And
		inner = tok[1 : len(tok)-1]
	}
	var names []string
	for _, n := range strings.Split(inner, ",") {
		n = strings.TrimSpace(n)
		if n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return AtomGroup{}, dockerr.New(dockerr.FileParseError, "nmr: atom group %q has no names", tok)
	}
	return AtomGroup{Names: names, Agg: agg}, nil
}

// ParseRestraints reads the NOE/STD restraint file format of §6.4:
// '#'-prefixed comments, blank lines ignored; "STD <atoms1> <max_distance>"
// or "<atoms1> <atoms2> <max_distance>" per line.
func ParseRestraints(r io.Reader) ([]Restraint, []StdRestraint, error) {
	scanner := bufio.NewScanner(r)
	var noes []Restraint
	var stds []StdRestraint
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 3 && strings.EqualFold(fields[0], "STD") {
			from, err := parseGroup(fields[1])
			if err != nil {
				return nil, nil, annotateLine(err, lineNo)
			}
			dist, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, nil, dockerr.NewFileError(dockerr.FileParseError, "nmr", lineNo, "malformed max distance")
			}
			stds = append(stds, StdRestraint{From: from, MaxDist: dist})
			continue
		}
		if len(fields) != 3 {
			return nil, nil, dockerr.NewFileError(dockerr.FileParseError, "nmr", lineNo, "expected 3 fields, got %d", len(fields))
		}
		from, err := parseGroup(fields[0])
		if err != nil {
			return nil, nil, annotateLine(err, lineNo)
		}
		to, err := parseGroup(fields[1])
		if err != nil {
			return nil, nil, annotateLine(err, lineNo)
		}
		dist, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, nil, dockerr.NewFileError(dockerr.FileParseError, "nmr", lineNo, "malformed max distance")
		}
		noes = append(noes, Restraint{From: from, To: to, MaxDist: dist})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, dockerr.Wrap(dockerr.FileReadError, err, "nmr: read failed")
	}
	return noes, stds, nil
}

func annotateLine(err error, lineNo int) error {
	return dockerr.NewFileError(dockerr.FileParseError, "nmr", lineNo, "%v", err)
}
