package workflows

import (
	"context"
	"os"

	"github.com/samanthaireland/stormkeys/internal/configs"
	"github.com/samanthaireland/stormkeys/internal/keygen"
)

// LocationStatus holds the on-disk state of a single key location.
type LocationStatus struct {
	Location          string `json:"location"`
	PrivateKeyExists  bool   `json:"private_key_exists"`
	PublicKeyExists   bool   `json:"public_key_exists"`
	PrivateKeyMtime   string `json:"private_key_mtime,omitempty"`
	PublicKeyMtime    string `json:"public_key_mtime,omitempty"`
	PublicFingerprint string `json:"public_fingerprint,omitempty"`
}

// StatusOptions configures the status workflow.
type StatusOptions struct {
	// Root overrides project root discovery. If empty, the root is located
	// by walking up from the working directory.
	Root string

	// Locations overrides the configured location list when non-nil.
	Locations []string
}

// StatusResult contains the outcome of a status operation.
type StatusResult struct {
	// ProjectRoot is the located (or supplied) project root.
	ProjectRoot string `json:"project_root"`

	// Locations holds the state of each configured location, in order.
	Locations []LocationStatus `json:"locations"`

	// Complete is true when every location has both artifacts.
	Complete bool `json:"complete"`
}

// Status reports the on-disk state of every configured location, including
// SHA256 fingerprints of readable public keys. It is read-only and never
// changes provisioning decisions: the skip contract stays a pure existence
// check.
func Status(ctx context.Context, opts StatusOptions) (*StatusResult, error) {
	root, locations, _, err := resolveLayout(opts.Root, opts.Locations)
	if err != nil {
		return nil, err
	}

	result := &StatusResult{ProjectRoot: root, Complete: true}
	for _, location := range locations {
		privateKeyPath, publicKeyPath := configs.ArtifactPaths(root, location)

		status := LocationStatus{Location: location}
		status.PrivateKeyExists, status.PrivateKeyMtime = statFile(privateKeyPath)
		status.PublicKeyExists, status.PublicKeyMtime = statFile(publicKeyPath)

		if status.PublicKeyExists {
			// Fingerprint is best-effort; an unreadable or malformed key
			// just shows up without one.
			if pub, err := keygen.LoadPublicKey(publicKeyPath); err == nil {
				if fingerprint, err := keygen.FingerprintSHA256(pub); err == nil {
					status.PublicFingerprint = fingerprint
				}
			}
		}

		if !status.PrivateKeyExists || !status.PublicKeyExists {
			result.Complete = false
		}
		result.Locations = append(result.Locations, status)
	}

	return result, nil
}

func statFile(path string) (exists bool, mtime string) {
	info, err := os.Stat(path)
	if err != nil {
		return false, ""
	}
	return true, info.ModTime().Format("2006-01-02T15:04:05Z07:00")
}
