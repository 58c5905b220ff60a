package configs

import (
	"fmt"
	"path/filepath"

	"github.com/samanthaireland/stormkeys/internal/utils"
)

// Layout constants fixed by the downstream token services. The services
// load both PEM files from their resources at startup, so the filenames
// are not configurable.
const (
	// MarkerFileName identifies the monorepo root (the Maven wrapper only
	// exists at the top level).
	MarkerFileName = "mvnw"

	// PrivateKeyFileName is the PKCS#8 PEM private key artifact.
	PrivateKeyFileName = "privateKey.pem"

	// PublicKeyFileName is the PEM public key artifact.
	PublicKeyFileName = "publicKey.pem"

	// DefaultKeySizeBits is the RSA modulus size required by the token services.
	DefaultKeySizeBits = 2048

	// ProjectConfigDirName holds StormKeys project state (config, audit log).
	ProjectConfigDirName = ".stormkeys"

	// ProjectConfigFileName is the optional config-time override file.
	ProjectConfigFileName = "config.toml"
)

// DefaultKeyLocations is the ordered list of directories, relative to the
// project root, that receive a key pair. Order matters only for
// deterministic reporting.
var DefaultKeyLocations = []string{
	"auth/src/main/resources/keys",
	"thunder/auth/provider/src/main/resources/keys",
}

type ProjectSettings struct {
	ProjectName  string
	ProjectPath  string
	KeyLocations []string
	KeySizeBits  int
}

var ProjectStormKeysSettings *ProjectSettings

func init() {
	ProjectStormKeysSettings = &ProjectSettings{
		ProjectName:  "",
		ProjectPath:  "",
		KeyLocations: append([]string(nil), DefaultKeyLocations...),
		KeySizeBits:  DefaultKeySizeBits,
	}
}

// InitProjectSettings locates the project root from the working directory
// and populates the package settings, applying any config file overrides.
func InitProjectSettings() error {
	projectPath, err := utils.FindProjectRootFromWd(MarkerFileName)
	if err != nil {
		return fmt.Errorf("error getting project root: %w", err)
	}

	settings := &ProjectSettings{
		ProjectName:  filepath.Base(projectPath),
		ProjectPath:  projectPath,
		KeyLocations: append([]string(nil), DefaultKeyLocations...),
		KeySizeBits:  DefaultKeySizeBits,
	}

	config, err := LoadProjectConfig(projectPath)
	if err != nil {
		return err
	}
	if config != nil {
		if len(config.Keys.Locations) > 0 {
			settings.KeyLocations = append([]string(nil), config.Keys.Locations...)
		}
		if config.Keys.SizeBits > 0 {
			settings.KeySizeBits = config.Keys.SizeBits
		}
	}

	ProjectStormKeysSettings = settings
	return nil
}

// ResolveLocationDir returns the absolute directory for a key location.
// Locations are stored slash-separated in config and code.
func ResolveLocationDir(projectRoot, location string) string {
	return filepath.Join(projectRoot, filepath.FromSlash(location))
}

// ArtifactPaths returns the private and public key paths for a location.
func ArtifactPaths(projectRoot, location string) (privateKeyPath, publicKeyPath string) {
	dir := ResolveLocationDir(projectRoot, location)
	return filepath.Join(dir, PrivateKeyFileName), filepath.Join(dir, PublicKeyFileName)
}
