// Package symerr defines the error kinds shared across the compiler: a
// fatal syntax error at the input boundary, a structured "no element"
// result from witness extraction, and an "unsupported" terminator for
// operations this engine deliberately does not implement.
package symerr

import "errors"

var (
	// ErrSyntax marks an ill-formed constraint script or regex node.
	ErrSyntax = errors.New("syntax error")

	// ErrNoElement marks witness extraction over an unsatisfiable or
	// exhaustively-excluded predicate.
	ErrNoElement = errors.New("no element satisfies predicate")

	// ErrUnsupported marks an operation this engine does not implement
	// because it would require deferring to an external decision
	// procedure.
	ErrUnsupported = errors.New("unsupported operation")
)

// NoElement is returned alongside ErrNoElement so callers get a typed,
// loggable witness-extraction failure instead of a bare error string.
type NoElement struct {
	// Reason describes why no witness could be found, e.g. the
	// predicate that failed to produce a candidate.
	Reason string
}

func (e NoElement) Error() string {
	if e.Reason == "" {
		return ErrNoElement.Error()
	}
	return ErrNoElement.Error() + ": " + e.Reason
}

func (e NoElement) Unwrap() error { return ErrNoElement }
