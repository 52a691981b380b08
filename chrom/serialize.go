package chrom

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/TimothyStiles/dockcore/dockerr"
)

// JSON (de)serialization hooks, following the teacher's bio/polyjson pattern
// of function-variable dependencies so tests can stub file/marshal IO.
var (
	marshalIndentFn = json.MarshalIndent
	readFileFn      = os.Open
	unmarshalFn     = json.Unmarshal
)

// Snapshot is the §6.1 JSON wire representation of a chromosome: the flat
// genotype vector a Chrom's elements produce via GetVector, plus the
// length it was captured at. A Snapshot carries no element structure of its
// own — the concrete elements hold live *model.Model references that can't
// be reconstructed from JSON alone — so it round-trips only onto an
// already-constructed chromosome of the same shape, via RestoreSnapshot.
type Snapshot struct {
	Length int       `json:"length"`
	Vector []float64 `json:"vector"`
}

// TakeSnapshot captures c's current flat genotype vector.
func (c *Chrom) TakeSnapshot() Snapshot {
	var v []float64
	c.GetVector(&v)
	return Snapshot{Length: len(v), Vector: v}
}

// RestoreSnapshot projects s's vector back onto c's existing elements via
// SetVector. c must have the same Length as when s was taken.
func (c *Chrom) RestoreSnapshot(s Snapshot) error {
	if s.Length != len(s.Vector) {
		return dockerr.New(dockerr.BadArgument, "chrom: snapshot length %d does not match vector length %d", s.Length, len(s.Vector))
	}
	if s.Length != c.Length() {
		return dockerr.New(dockerr.BadArgument, "chrom: snapshot length %d does not match chromosome length %d", s.Length, c.Length())
	}
	idx := 0
	return c.SetVector(s.Vector, &idx)
}

// ParseSnapshot reads a Snapshot from r.
func ParseSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(r); err != nil {
		return s, dockerr.Wrap(dockerr.FileReadError, err, "chrom: reading snapshot")
	}
	if err := unmarshalFn(buf.Bytes(), &s); err != nil {
		return s, dockerr.Wrap(dockerr.FileParseError, err, "chrom: parsing snapshot JSON")
	}
	return s, nil
}

// ReadSnapshot reads a Snapshot from a JSON file at path.
func ReadSnapshot(path string) (Snapshot, error) {
	f, err := readFileFn(path)
	if err != nil {
		return Snapshot{}, dockerr.NewFileError(dockerr.FileReadError, path, 0, "%v", err)
	}
	defer f.Close()
	return ParseSnapshot(f)
}

// WriteSnapshot writes s to path as indented JSON.
func WriteSnapshot(s Snapshot, path string) error {
	data, err := marshalIndentFn(s, "", " ")
	if err != nil {
		return dockerr.Wrap(dockerr.FileWriteError, err, "chrom: marshaling snapshot")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return dockerr.NewFileError(dockerr.FileWriteError, path, 0, "%v", err)
	}
	return nil
}
