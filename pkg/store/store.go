// Package store defines the reference store contract for region data.
// The store is a durable document that maps lowercase region names to
// structured region records. Implementations live in internal/iostore.
package store

import "strings"

// RegionRecord is one entry of the reference store. Records are keyed
// by the lowercased region name.
type RegionRecord struct {
	// Region is the region name as it appears in location strings.
	Region string `json:"region"`

	// Country is the short country name, derived from CountryFullName
	// by taking the text before the first comma.
	Country string `json:"country"`

	// CountryFullName may carry comma-separated qualifiers,
	// e.g. "Bolivia, Plurinational State of".
	CountryFullName string `json:"country_full_name"`

	// Continent is the continent name.
	Continent string `json:"continent"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// CountryCode is the ISO 3166-1 alpha-2 code.
	CountryCode string `json:"country_code"`
}

// Key returns the lookup key for a region name. Keys are always
// lowercased, both at write and at read time, which makes lookups
// case-insensitive by construction.
func Key(regionName string) string {
	return strings.ToLower(regionName)
}

// ShortCountry derives the short country name from a full country
// name by dropping everything after the first comma.
func ShortCountry(fullName string) string {
	name, _, _ := strings.Cut(fullName, ",")
	return name
}

// Store is the reference store used during a resolution pass. A single
// pass owns the store for its duration; implementations are not safe
// for concurrent writers.
type Store interface {
	// Load reads the durable document into memory. It fails when the
	// document is missing or malformed unless the implementation was
	// configured to bootstrap an empty store on a missing document.
	Load() error

	// Lookup finds a record by region name. The match is
	// case-insensitive.
	Lookup(regionName string) (RegionRecord, bool)

	// Upsert adds or replaces the record under its key. There is no
	// merging of partial fields, last write wins.
	Upsert(rec RegionRecord)

	// Regions returns all records in insertion order. Load order for
	// records read from the document, upsert order for new ones. The
	// fixed order keeps substring tie-breaks reproducible.
	Regions() []RegionRecord

	// Len returns the number of region records.
	Len() int

	// Save writes the whole document back to durable storage. The
	// write is atomic and preserves top-level sections of the document
	// that this subsystem does not interpret.
	Save() error
}
