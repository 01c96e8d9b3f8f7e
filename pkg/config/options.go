package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptStorePath sets the path to the reference store document.
func OptStorePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store Path", s) {
			c.Store.Path = s
		}
	}
}

// OptStoreBootstrap allows the pass to start from an empty store when
// the document is missing. Runtime-only field - not in ToOptions().
func OptStoreBootstrap(b bool) Option {
	return func(c *Config) {
		c.Store.Bootstrap = b
	}
}

// OptGeocodeDatabase sets the path to the geocoding SQLite database.
func OptGeocodeDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Geocode Database", s) {
			c.Geocode.Database = s
		}
	}
}

// OptGeocodeTimeoutSec sets the per-lookup timeout in seconds.
func OptGeocodeTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Geocode Timeout", i) {
			c.Geocode.TimeoutSec = i
		}
	}
}

// OptRecordsLocationField sets the raw composite-location column name.
func OptRecordsLocationField(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Location Field", s) {
			c.Records.LocationField = s
		}
	}
}

// OptRecordsFormattedField sets the derived location column name.
func OptRecordsFormattedField(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Formatted Field", s) {
			c.Records.FormattedField = s
		}
	}
}

// OptRecordsGenusField sets the genus column name.
func OptRecordsGenusField(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Genus Field", s) {
			c.Records.GenusField = s
		}
	}
}

// OptRecordsSpeciesField sets the species column name.
func OptRecordsSpeciesField(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Species Field", s) {
			c.Records.SpeciesField = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent lookup workers.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, data and logs.
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Dir", s) {
			c.HomeDir = s
		}
	}
}
