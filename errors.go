package typist

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is returned when a conversion cannot start:
	// columns <= 0, an image too small for the requested columns, or a
	// missing image or catalog. No partial output accompanies it.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrEmptyCatalog marks the conversion-level diagnostic emitted when
	// the catalog holds no entries. It is never returned by Convert.
	ErrEmptyCatalog = errors.New("empty glyph catalog")

	// ErrNotComparable is returned by Correlation when the two vectors
	// differ in length or either is empty.
	ErrNotComparable = errors.New("feature vectors not comparable")

	// ErrTaskFailure marks a per-tile matching task that failed. The tile
	// is rendered with the fallback glyph.
	ErrTaskFailure = errors.New("tile task failed")

	// ErrFeatureMismatch marks the conversion-level diagnostic emitted when
	// the catalog's feature length differs from the tile's pixel count, so
	// no catalog entry can be compared with any tile. It is never returned
	// by Convert.
	ErrFeatureMismatch = errors.New("catalog feature length does not match tile size")
)

// TaskError records the failure of the matching task for a single tile.
type TaskError struct {
	Tile int
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("tile %d: %v", e.Tile, e.Err)
}

// Unwrap exposes both ErrTaskFailure and the underlying cause to
// errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return []error{ErrTaskFailure, e.Err}
}

// DiagnosticKind classifies a non-fatal condition seen during a conversion.
type DiagnosticKind int

const (
	// DiagnosticEmptyCatalog is reported once per conversion when the
	// catalog has no entries.
	DiagnosticEmptyCatalog DiagnosticKind = iota

	// DiagnosticTaskFailure is reported for every tile whose task failed.
	DiagnosticTaskFailure

	// DiagnosticIncomparable is reported once per conversion when the
	// catalog's glyph cells do not match the tile size.
	DiagnosticIncomparable
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticEmptyCatalog:
		return "empty-catalog"
	case DiagnosticTaskFailure:
		return "task-failure"
	case DiagnosticIncomparable:
		return "incomparable"
	}
	return fmt.Sprintf("DiagnosticKind(%d)", int(k))
}

// Diagnostic is a recovered condition. Tile is -1 for conversion-level
// diagnostics.
type Diagnostic struct {
	Kind DiagnosticKind
	Tile int
	Err  error
}

func (d Diagnostic) String() string {
	if d.Tile < 0 {
		return fmt.Sprintf("%s: %v", d.Kind, d.Err)
	}
	return fmt.Sprintf("%s (tile %d): %v", d.Kind, d.Tile, d.Err)
}
