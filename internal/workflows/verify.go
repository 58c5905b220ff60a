package workflows

import (
	"context"

	"github.com/samanthaireland/stormkeys/internal/configs"
)

// MissingArtifacts identifies a location lacking one or both artifacts.
type MissingArtifacts struct {
	Location       string `json:"location"`
	PrivateMissing bool   `json:"private_missing"`
	PublicMissing  bool   `json:"public_missing"`
}

// VerifyOptions configures the verify workflow.
type VerifyOptions struct {
	// Root overrides project root discovery. If empty, the root is located
	// by walking up from the working directory.
	Root string

	// Locations overrides the configured location list when non-nil.
	Locations []string
}

// VerifyResult contains the outcome of a verify operation.
type VerifyResult struct {
	// ProjectRoot is the located (or supplied) project root.
	ProjectRoot string `json:"project_root"`

	// Complete is true when every location has both artifacts on disk.
	Complete bool `json:"complete"`

	// Missing lists the locations still lacking one or both artifacts.
	Missing []MissingArtifacts `json:"missing,omitempty"`
}

// Verify re-checks every configured location for both key artifacts.
//
// It is deliberately independent of any ProvisionResult: paths are
// re-derived and the filesystem is re-stat'ed, because a generated outcome
// from the external tool does not itself prove the files are visible
// (silent truncation, permission issues writing the second file, and so
// on). This separation of "what we attempted" from "what is actually on
// disk" is the workflow's core correctness safeguard.
func Verify(ctx context.Context, opts VerifyOptions) (*VerifyResult, error) {
	root, locations, _, err := resolveLayout(opts.Root, opts.Locations)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{ProjectRoot: root, Complete: true}
	for _, location := range locations {
		privateKeyPath, publicKeyPath := configs.ArtifactPaths(root, location)

		missing := MissingArtifacts{
			Location:       location,
			PrivateMissing: !fileExists(privateKeyPath),
			PublicMissing:  !fileExists(publicKeyPath),
		}
		if missing.PrivateMissing || missing.PublicMissing {
			result.Complete = false
			result.Missing = append(result.Missing, missing)
		}
	}

	return result, nil
}
