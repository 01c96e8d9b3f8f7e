// Package geocode defines the contract for the external geocoding
// reference database. The database is read-only for this application;
// it is queried with fuzzy text matches against place names.
package geocode

import (
	"context"

	"github.com/amphdata/amprep/pkg/store"
)

// Result is one row returned by a place-name lookup.
type Result struct {
	// CountryFullName is the full country name, possibly with
	// comma-separated qualifiers.
	CountryFullName string

	// Continent is the continent name.
	Continent string

	Latitude  float64
	Longitude float64

	// CountryCode is the ISO 3166-1 alpha-2 code.
	CountryCode string
}

// Record converts a lookup result into a reference store record for
// the given region name.
func (r Result) Record(region string) store.RegionRecord {
	return store.RegionRecord{
		Region:          region,
		Country:         store.ShortCountry(r.CountryFullName),
		CountryFullName: r.CountryFullName,
		Continent:       r.Continent,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		CountryCode:     r.CountryCode,
	}
}

// Finder looks up place names in the geocoding database.
// Implementations live in internal/iogeocode.
type Finder interface {
	// Connect opens the geocoding database.
	Connect(ctx context.Context) error

	// Close releases the database handle.
	Close() error

	// Find looks up a place name with a case-normalized substring
	// match against the primary place name and the alternate names,
	// limited to the first match. The boolean is false when the
	// database has no match; that outcome is not an error.
	Find(ctx context.Context, name string) (Result, bool, error)
}
