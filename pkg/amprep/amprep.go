// Package amprep defines the high-level contracts of the amphibian
// report pipeline: location normalization of species records and
// scientific-name checking. Implementations live under internal/.
package amprep

import (
	"context"

	"github.com/amphdata/amprep/pkg/records"
)

// Normalizer runs one location resolution pass over a record set.
type Normalizer interface {
	// UpdateLocations loads the reference store, resolves unknown
	// location tokens of the whole record set in one batch against the
	// geocoding database, persists newly learned regions, and writes a
	// canonical location string into a new column of every row. The
	// original location column is never modified.
	//
	// Per-token lookup failures are logged and treated as no-match;
	// store load and persist failures abort the pass.
	UpdateLocations(ctx context.Context, rs *records.RecordSet) error
}

// NameIssue describes a row whose scientific name did not parse.
type NameIssue struct {
	// Row is the zero-based row index in the record set.
	Row int

	// ID is the UUID v5 of the name string, stable across runs.
	ID string

	// Name is the scientific name that failed to parse.
	Name string
}

// NameChecker validates the scientific names of a record set.
type NameChecker interface {
	// CheckNames parses every row's scientific name and returns the
	// rows whose names could not be parsed.
	CheckNames(ctx context.Context, rs *records.RecordSet) ([]NameIssue, error)
}
