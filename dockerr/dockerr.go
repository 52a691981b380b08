// Package dockerr defines the error kinds shared across the docking core.
//
// The core never swallows an error (§7 of the design spec): leaf scoring
// terms propagate to the transform that invoked them, the transform
// propagates to workspace.Run, and the top-level driver is the only layer
// that catches and reports. LigandError is the sole recoverable failure.
package dockerr

import "fmt"

// Kind tags the eight error categories the docking core can raise.
type Kind int

const (
	// BadArgument covers out-of-range indices, mismatched vector lengths,
	// unknown parameter names, and null models where one was required.
	BadArgument Kind = iota
	// InvalidRequest covers an aggregate-only operation (Add/Remove) called
	// on a leaf scoring term or transform.
	InvalidRequest
	// LigandError is raised when a mandatory pharmacophore or NMR feature
	// cannot be satisfied by the current ligand.
	LigandError
	// FileParseError covers malformed external files (constraint, NMR
	// restraint, parameter files).
	FileParseError
	// FileWriteError covers failures writing output sinks (SD records,
	// history, results).
	FileWriteError
	// FileReadError covers failures opening or reading external files.
	FileReadError
	// InvalidGrid covers spatial grid construction with a non-positive step.
	InvalidGrid
	// Assertion covers internal invariant violations that should not occur
	// in released builds (e.g. an aggregate's child reporting an inconsistent
	// parent pointer).
	Assertion
)

func (k Kind) String() string {
	switch k {
	case BadArgument:
		return "bad argument"
	case InvalidRequest:
		return "invalid request"
	case LigandError:
		return "ligand error"
	case FileParseError:
		return "file parse error"
	case FileWriteError:
		return "file write error"
	case FileReadError:
		return "file read error"
	case InvalidGrid:
		return "invalid grid"
	case Assertion:
		return "assertion"
	default:
		return "unknown error kind"
	}
}

// Error is the concrete error type raised by every package in the docking
// core. Construct one with New or Wrap; test its Kind with errors.As plus
// a type switch, or with Is via errors.Is against a sentinel built from the
// same Kind and empty fields.
type Error struct {
	Kind Kind
	// Msg is a short human-readable description.
	Msg string
	// File and Line identify the offending external file when Kind is one
	// of the File* kinds; Line is 0 when not applicable.
	File string
	Line int
	// Feature and Deficit are populated for LigandError: the pharmacophore
	// or NMR feature name that came up short, and by how many atoms/groups.
	Feature string
	Deficit int

	cause error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == LigandError && e.Feature != "":
		return fmt.Sprintf("%s: %s deficit %d: %s", e.Kind, e.Feature, e.Deficit, e.Msg)
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s: %s:%d: %s", e.Kind, e.File, e.Line, e.Msg)
	case e.File != "":
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.File, e.Msg)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.cause }

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind that wraps cause.
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), cause: cause}
}

// NewFileError builds a File{Parse,Write,Read}Error carrying the file name
// and, when known, the 1-based line number (0 when not applicable).
func NewFileError(kind Kind, file string, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, File: file, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// NewLigandError builds a LigandError naming the short-handed feature and
// the number of atoms/groups it was short by.
func NewLigandError(feature string, deficit int, format string, args ...any) *Error {
	return &Error{Kind: LigandError, Feature: feature, Deficit: deficit, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether target is a *Error with the same Kind, so callers can
// write `errors.Is(err, dockerr.KindOf(dockerr.InvalidGrid))`-style checks
// via errors.As instead, which is almost always clearer; Is exists for the
// rarer case of a bare sentinel comparison.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns an empty *Error of the given kind, useful only as an
// errors.Is comparison target.
func KindOf(kind Kind) *Error { return &Error{Kind: kind} }
