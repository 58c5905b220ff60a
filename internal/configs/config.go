package configs

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/samanthaireland/stormkeys/internal/errors"
)

// ProjectConfig is the optional per-project override file at
// .stormkeys/config.toml.
type ProjectConfig struct {
	Keys KeysConfig `toml:"keys"`
}

// KeysConfig overrides the key layout defaults.
type KeysConfig struct {
	// Locations replaces the default ordered location list when non-empty.
	Locations []string `toml:"locations"`

	// SizeBits replaces the default RSA modulus size when positive.
	SizeBits int `toml:"size_bits"`
}

// ProjectConfigPath returns the config file path for a project root.
func ProjectConfigPath(projectRoot string) string {
	return filepath.Join(projectRoot, ProjectConfigDirName, ProjectConfigFileName)
}

// LoadProjectConfig loads the project config if present.
// Returns (nil, nil) when the file does not exist.
func LoadProjectConfig(projectRoot string) (*ProjectConfig, error) {
	configPath := ProjectConfigPath(projectRoot)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil
	}

	config := &ProjectConfig{}
	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidProjectConfig, configPath, err)
	}
	return config, nil
}

// SaveProjectConfig writes the project config file.
func SaveProjectConfig(projectRoot string, config *ProjectConfig) error {
	return SaveTOML(ProjectConfigPath(projectRoot), config)
}
