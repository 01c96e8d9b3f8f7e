// Package config provides configuration management for amprep.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Store: path
//   - Geocode: database, timeout_sec
//   - Records: location_field, formatted_field, genus_field, species_field
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Store.Bootstrap (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use AMPREP_ prefix with underscores for nesting:
//
//	AMPREP_STORE_PATH=/data/location.json
//	AMPREP_GEOCODE_DATABASE=/data/location.db
//	AMPREP_LOG_LEVEL=info
//	AMPREP_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete amprep configuration.
type Config struct {
	// Store contains reference store settings.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Geocode contains geocoding database settings.
	Geocode GeocodeConfig `mapstructure:"geocode" yaml:"geocode"`

	// Records describes the columns of the input record set.
	Records RecordsConfig `mapstructure:"records" yaml:"records"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for the external
	// lookup batch. Default value is set according to the number of
	// available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, data and logs directories
	// reside. It must be set by CLI during init, there is no default
	// value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// StoreConfig contains settings for the durable reference store.
type StoreConfig struct {
	// Path is the location of the reference store document. An empty
	// value means the default location under the data directory.
	Path string `mapstructure:"path" yaml:"path"`

	// Bootstrap starts from an empty store when the document is
	// missing instead of aborting the pass. A malformed document
	// always aborts. Runtime-only, set per command.
	Bootstrap bool `mapstructure:"-" yaml:"-"`
}

// GeocodeConfig contains settings for the geocoding database.
type GeocodeConfig struct {
	// Database is the path to the geocoding SQLite database. An empty
	// value means the default location under the data directory.
	Database string `mapstructure:"database" yaml:"database"`

	// TimeoutSec bounds every external lookup. A lookup that times
	// out is treated as no-match for its token.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// RecordsConfig names the columns of the species record set.
type RecordsConfig struct {
	// LocationField is the raw composite-location column.
	LocationField string `mapstructure:"location_field" yaml:"location_field"`

	// FormattedField is the derived column the pass adds. The raw
	// column is never modified.
	FormattedField string `mapstructure:"formatted_field" yaml:"formatted_field"`

	// GenusField and SpeciesField together form the scientific name
	// used by the name checker.
	GenusField   string `mapstructure:"genus_field" yaml:"genus_field"`
	SpeciesField string `mapstructure:"species_field" yaml:"species_field"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Store: StoreConfig{},
		Geocode: GeocodeConfig{
			TimeoutSec: 5,
		},
		Records: RecordsConfig{
			LocationField:  "GeographicRegion",
			FormattedField: "FormattedGeographicRegion",
			GenusField:     "Genus",
			SpeciesField:   "Species",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
