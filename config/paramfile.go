/*
Package config implements §6.6's parameter file: a TOML document grouped
into named sections, one per scoring term or transform instance. Each
section's keys become SetParam/SetParamTerm requests (§4.9) dispatched
against the already-constructed term or transform at run start; a
`PARAM@TERM`-style key is scoped to a specific named child of an aggregate.

The original format was a flat, section-delimited text format with its own
hand-rolled parser (ParameterFileSource); this port uses TOML via
github.com/BurntSushi/toml instead of writing a bespoke line scanner,
since TOML's `[section]` tables are already exactly the shape §6.6 needs.
*/
package config

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/TimothyStiles/dockcore/dockerr"
	"github.com/TimothyStiles/dockcore/request"
)

// ClassKey is the key each section uses to name the Go type it configures,
// generalizing §6.6's "TRANSFORM"/"SF" key. The original used it to drive a
// class factory; this port's terms and transforms are already constructed
// in code, so ClassKey is carried through only as documentation of intent
// and is never itself turned into a request.
const ClassKey = "class"

// Section is one [name] table's raw key/value pairs, decoded by TOML's
// usual scalar rules (string, int64, float64, bool, or a nested table for
// array-of-tables parameters).
type Section map[string]any

// ParameterFile is a parsed §6.6 parameter file.
type ParameterFile struct {
	Sections map[string]Section
}

// Load reads and parses a TOML parameter file from path.
func Load(path string) (*ParameterFile, error) {
	var raw map[string]Section
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, dockerr.Wrap(dockerr.FileReadError, err, "reading parameter file %s", path)
	}
	return &ParameterFile{Sections: raw}, nil
}

// Parse parses TOML parameter-file text already in memory; name is used
// only to annotate parse errors.
func Parse(text, name string) (*ParameterFile, error) {
	var raw map[string]Section
	if _, err := toml.Decode(text, &raw); err != nil {
		return nil, dockerr.NewFileError(dockerr.FileParseError, name, 0, "%v", err)
	}
	return &ParameterFile{Sections: raw}, nil
}

// SectionNames returns the file's top-level section names, sorted for
// reproducible iteration.
func (p *ParameterFile) SectionNames() []string {
	names := make([]string, 0, len(p.Sections))
	for name := range p.Sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Class returns section's ClassKey value, or "" if absent or not a string.
func (p *ParameterFile) Class(section string) string {
	v, _ := p.Sections[section][ClassKey].(string)
	return v
}

// Requests builds the SetParam/SetParamTerm requests section's parameters
// describe, in sorted key order for reproducibility. A `PARAM@TERM` key
// becomes SetParamTerm(TERM, PARAM, value); any other key (besides
// ClassKey) becomes a SetParam against section's own object.
func (p *ParameterFile) Requests(section string) []request.Request {
	s := p.Sections[section]
	keys := make([]string, 0, len(s))
	for key := range s {
		if key == ClassKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	reqs := make([]request.Request, 0, len(keys))
	for _, key := range keys {
		value := s[key]
		if param, term, ok := splitTermParam(key); ok {
			reqs = append(reqs, request.NewSetParamTerm(term, param, value))
			continue
		}
		reqs = append(reqs, request.NewSetParam(key, value))
	}
	return reqs
}

// Apply dispatches section's Requests against target in order, stopping at
// the first error (propagation policy of §7: the core never swallows
// errors).
func (p *ParameterFile) Apply(section string, target request.Handler) error {
	for _, r := range p.Requests(section) {
		if err := target.HandleRequest(r); err != nil {
			return err
		}
	}
	return nil
}

// splitTermParam splits a "PARAM@TERM" key into its param and term parts.
func splitTermParam(key string) (param, term string, ok bool) {
	i := strings.IndexByte(key, '@')
	if i < 0 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}
