package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "amprep"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/amprep by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for durable data files: the
// reference store document and the geocoding database.
// Returns ~/.local/share/amprep by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/amprep/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/amprep/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// StorePath returns the configured reference store path, or its
// default location under the data directory.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(DataDir(c.HomeDir), "location.json")
}

// GeocodeDatabasePath returns the configured geocoding database path,
// or its default location under the data directory.
func (c *Config) GeocodeDatabasePath() string {
	if c.Geocode.Database != "" {
		return c.Geocode.Database
	}
	return filepath.Join(DataDir(c.HomeDir), "location.db")
}
