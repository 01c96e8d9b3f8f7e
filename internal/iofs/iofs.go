// Package iofs prepares the file system layout of the application:
// config, data and log directories, and a default config file
// generated from the built-in defaults.
package iofs

import (
	"bytes"
	"os"

	"github.com/amphdata/amprep/pkg/config"
	"gopkg.in/yaml.v3"
)

const configHeader = `# amprep configuration.
# Values here are overridden by AMPREP_* environment variables and
# CLI flags.
`

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.DataDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile generates config.yaml from the default config when
// the file does not exist yet. An existing file is never touched.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.New()); err != nil {
		return WriteConfigError(configPath, err)
	}
	if err := enc.Close(); err != nil {
		return WriteConfigError(configPath, err)
	}

	if err := os.WriteFile(configPath, buf.Bytes(), 0644); err != nil {
		return WriteConfigError(configPath, err)
	}

	return nil
}
