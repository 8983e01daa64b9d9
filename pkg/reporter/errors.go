package reporter

import (
	"errors"
	"fmt"
)

// ErrStreamFinished is returned for events handed over after StreamFinished.
var ErrStreamFinished = errors.New("event stream already finished")

var errNoLoader = errors.New("no template loader configured")

// StructuralError reports a template tree that could not be re-parsed.
type StructuralError struct {
	Path string
	Err  error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("could not load template of %s: %v", e.Path, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// ReconciliationKind tells which part of an outline could not be reconciled.
type ReconciliationKind int

const (
	MissingOutline ReconciliationKind = iota
	MissingTable
	MissingHeader
	MissingRow
)

func (k ReconciliationKind) String() string {
	switch k {
	case MissingOutline:
		return "missing outline"
	case MissingTable:
		return "missing table"
	case MissingHeader:
		return "missing header"
	case MissingRow:
		return "missing row"
	default:
		return "unknown"
	}
}

// ReconciliationError reports an outline whose example rows could not be
// mapped onto expanded scenarios.
type ReconciliationError struct {
	Feature  string
	Outline  string
	Examples string
	// Row is the 0-based data row index and Line the source line the
	// expansion was expected at. Both are only set for MissingRow.
	Row  int
	Line int
	Kind ReconciliationKind
}

func (e *ReconciliationError) Error() string {
	switch e.Kind {
	case MissingRow:
		return fmt.Sprintf("feature %q outline %q: no scenario for row %d of examples %q at line %d",
			e.Feature, e.Outline, e.Row, e.Examples, e.Line)
	case MissingOutline:
		return fmt.Sprintf("feature %q: no outline template for %q", e.Feature, e.Outline)
	default:
		return fmt.Sprintf("feature %q outline %q: %s in examples %q", e.Feature, e.Outline, e.Kind, e.Examples)
	}
}

// FeatureFailure is a feature left out of the report.
type FeatureFailure struct {
	Name string
	Path string
	Err  error
}

func (f *FeatureFailure) Error() string {
	return fmt.Sprintf("could not build report of feature %q (%s): %v", f.Name, f.Path, f.Err)
}

func (f *FeatureFailure) Unwrap() error {
	return f.Err
}
