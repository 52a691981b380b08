/*
Package molfile writes ligand records in the MDL SD chemical-table format
(§6.2): three header lines, a counts line, an atom block, a bond block, an
optional data-field block, and a `$$$$` record terminator. It implements
workspace.Sink so a Workspace can write its current ligand (and, with
scores, a score map) after every run.
*/
package molfile

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/TimothyStiles/dockcore/model"
)

const (
	programName = "DOCKCORE"
	product     = "dockcore"
	version     = "1.0"
)

// SDWriter renders MDL SD records to an underlying io.Writer, one per
// WriteRecord call, matching the original's "first render truncates,
// subsequent renders append" intent by simply issuing one Write per call
// against whatever io.Writer the caller configured (a truncate-then-append
// file, or any other sink).
type SDWriter struct {
	w io.Writer
	// Clock supplies the file timestamp; defaults to time.Now. Tests
	// override it for a reproducible golden-file comparison.
	Clock func() time.Time
}

// NewSDWriter wraps w.
func NewSDWriter(w io.Writer) *SDWriter {
	return &SDWriter{w: w, Clock: time.Now}
}

// WriteRecord renders m as one SD record and writes it to the underlying
// writer. id, the workspace run identifier, is attached as a
// "dockcore_run_id" data field whenever non-empty so records from
// different runs sharing one output file can be told apart; scores, if
// non-nil, are attached as one data field per entry, sorted by key for
// reproducible output.
func (s *SDWriter) WriteRecord(id string, m *model.Model, scores map[string]float64) error {
	var buf bytes.Buffer

	title, _ := m.Data["name"].(string)
	buf.WriteString(title)
	buf.WriteByte('\n')

	prog := programName
	if len(prog) > 8 {
		prog = prog[:8]
	}
	prog += strings.Repeat(" ", 8-len(prog))
	timestamp := s.Clock().Format("0102061504")
	fmt.Fprintf(&buf, "  %s%s3D\n", prog, timestamp)
	fmt.Fprintf(&buf, "%s/%s\n", product, version)

	atomIDs := make(map[int]int, len(m.Atoms)) // stable atom ID -> logical (1-based) record ID
	for i, a := range m.Atoms {
		atomIDs[a.ID] = i + 1
	}

	fmt.Fprintf(&buf, "%3d%3d%3d%3d%3d%3d%3d%3d%3d%3d%3d V2000\n",
		len(m.Atoms), len(m.Bonds), 0, 0, 0, 0, 0, 0, 0, 0, 999)

	for _, a := range m.Atoms {
		writeAtomLine(&buf, a)
	}
	for _, b := range m.Bonds {
		if err := writeBondLine(&buf, b, atomIDs); err != nil {
			return err
		}
	}

	writeDataBlock(&buf, id, scores)
	buf.WriteString("$$$$\n")

	_, err := s.w.Write(buf.Bytes())
	return err
}

func writeAtomLine(buf *bytes.Buffer, a *model.Atom) {
	chargeCode := a.FormalCharge
	if chargeCode != 0 {
		chargeCode = 4 - chargeCode
	}
	fmt.Fprintf(buf, "%10.4f%10.4f%10.4f %-3s%2d%3d%3d%3d%3d%3d\n",
		a.Coord.X, a.Coord.Y, a.Coord.Z, a.Element, 0, chargeCode, 0, 0, 0, 0)
}

func writeBondLine(buf *bytes.Buffer, b model.Bond, atomIDs map[int]int) error {
	id1, ok1 := atomIDs[b.Atom1]
	id2, ok2 := atomIDs[b.Atom2]
	if !ok1 || !ok2 {
		return fmt.Errorf("molfile: bond references atom id not present in model (atom1=%d atom2=%d)", b.Atom1, b.Atom2)
	}
	fmt.Fprintf(buf, "%3d%3d%3d%3d%3d%3d\n", id1, id2, b.Order, 0, 0, 0)
	return nil
}

// writeDataBlock writes "M  END" followed by one ">  <FIELD>"/value/blank
// group per data field, but only when there is at least one field to
// write — mirroring the original renderer, which omits the M  END marker
// entirely for a record with an empty data map.
func writeDataBlock(buf *bytes.Buffer, id string, scores map[string]float64) {
	if id == "" && len(scores) == 0 {
		return
	}
	buf.WriteString("M  END\n")
	if id != "" {
		writeDataField(buf, "dockcore_run_id", id)
	}
	keys := make([]string, 0, len(scores))
	for k := range scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeDataField(buf, k, fmt.Sprintf("%g", scores[k]))
	}
}

func writeDataField(buf *bytes.Buffer, name, value string) {
	fmt.Fprintf(buf, ">  <%s>\n", name)
	buf.WriteString(value)
	buf.WriteByte('\n')
	buf.WriteByte('\n')
}
