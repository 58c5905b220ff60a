package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/samanthaireland/stormkeys/internal/configs"
	kerrors "github.com/samanthaireland/stormkeys/internal/errors"
	"github.com/samanthaireland/stormkeys/internal/keygen"
)

// Outcome is the per-location result of a provisioning attempt.
type Outcome int

const (
	// OutcomeSkipped means both artifacts already existed and force was not set.
	OutcomeSkipped Outcome = iota
	// OutcomeGenerated means a new key pair was produced.
	OutcomeGenerated
	// OutcomeFailed means generation was attempted and did not complete.
	OutcomeFailed
)

// String returns a string representation of Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeGenerated:
		return "generated"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for Outcome.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON implements json.Unmarshaler for Outcome.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "skipped":
		*o = OutcomeSkipped
	case "generated":
		*o = OutcomeGenerated
	case "failed":
		*o = OutcomeFailed
	default:
		return fmt.Errorf("%w: %q", kerrors.ErrUnknownOutcome, s)
	}
	return nil
}

// LocationResult holds the provisioning result for a single key location.
type LocationResult struct {
	Location       string  `json:"location"`
	Outcome        Outcome `json:"outcome"`
	Diagnostic     string  `json:"diagnostic,omitempty"`
	PrivateKeyPath string  `json:"private_key_path"`
	PublicKeyPath  string  `json:"public_key_path"`
}

// ProvisionSummary holds counts of locations by outcome.
type ProvisionSummary struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// ProvisionOptions configures the provision workflow.
type ProvisionOptions struct {
	// Force regenerates key pairs even when both artifacts already exist.
	Force bool

	// Root overrides project root discovery. If empty, the root is located
	// by walking up from the working directory.
	Root string

	// Locations overrides the configured location list when non-nil.
	Locations []string

	// KeySizeBits overrides the configured RSA modulus size when positive.
	KeySizeBits int

	// Generator is the key generation primitive. Defaults to OpenSSL.
	Generator keygen.Generator
}

// ProvisionResult contains the outcome of a provision operation.
type ProvisionResult struct {
	// ProjectRoot is the located (or supplied) project root.
	ProjectRoot string `json:"project_root"`

	// Locations holds one result per configured location, in order.
	Locations []LocationResult `json:"locations"`

	// Summary contains counts of locations by outcome.
	Summary ProvisionSummary `json:"summary"`
}

// Provision ensures every configured key location has an RSA key pair.
//
// Locations are processed sequentially in configured order. A failure at
// one location never stops the others: locations are independent, so the
// remaining ones are still attempted and the failure is reported in that
// location's result. Nothing is ever deleted or rolled back.
//
// Provision reports what was attempted; Verify decides what is actually
// true on disk.
func Provision(ctx context.Context, opts ProvisionOptions) (*ProvisionResult, error) {
	root, locations, bits, err := resolveLayout(opts.Root, opts.Locations)
	if err != nil {
		return nil, err
	}
	if opts.KeySizeBits > 0 {
		bits = opts.KeySizeBits
	}

	generator := opts.Generator
	if generator == nil {
		generator = keygen.NewOpenSSL()
	}

	result := &ProvisionResult{ProjectRoot: root}
	for _, location := range locations {
		locationResult := provisionLocation(root, location, bits, opts.Force, generator)
		result.Locations = append(result.Locations, locationResult)

		switch locationResult.Outcome {
		case OutcomeGenerated:
			result.Summary.Generated++
		case OutcomeSkipped:
			result.Summary.Skipped++
		case OutcomeFailed:
			result.Summary.Failed++
		}
	}

	return result, nil
}

// provisionLocation handles a single location. All failures are captured
// in the result rather than returned, so one location can never abort the
// others.
func provisionLocation(root, location string, bits int, force bool, generator keygen.Generator) LocationResult {
	privateKeyPath, publicKeyPath := configs.ArtifactPaths(root, location)
	result := LocationResult{
		Location:       location,
		PrivateKeyPath: privateKeyPath,
		PublicKeyPath:  publicKeyPath,
	}

	dir := configs.ResolveLocationDir(root, location)
	if err := os.MkdirAll(dir, 0700); err != nil {
		result.Outcome = OutcomeFailed
		result.Diagnostic = fmt.Sprintf("failed to create directory %s: %v", dir, err)
		return result
	}

	// Skip is a pure existence check: key contents are never validated
	// here. That is the documented idempotence contract.
	if !force && fileExists(privateKeyPath) && fileExists(publicKeyPath) {
		result.Outcome = OutcomeSkipped
		return result
	}

	if err := generator.GeneratePrivateKey(privateKeyPath, bits); err != nil {
		result.Outcome = OutcomeFailed
		result.Diagnostic = err.Error()
		return result
	}

	if err := generator.DerivePublicKey(privateKeyPath, publicKeyPath); err != nil {
		result.Outcome = OutcomeFailed
		result.Diagnostic = err.Error()
		return result
	}

	result.Outcome = OutcomeGenerated
	return result
}

// resolveLayout fills in the root, location list, and key size from
// project settings when the caller did not supply them.
func resolveLayout(root string, locations []string) (string, []string, int, error) {
	if root == "" {
		if err := configs.InitProjectSettings(); err != nil {
			return "", nil, 0, err
		}
		settings := configs.ProjectStormKeysSettings
		if locations == nil {
			locations = settings.KeyLocations
		}
		return settings.ProjectPath, locations, settings.KeySizeBits, nil
	}

	bits := configs.DefaultKeySizeBits
	if locations == nil {
		// Honor a config override under an explicitly supplied root too.
		config, err := configs.LoadProjectConfig(root)
		if err != nil {
			return "", nil, 0, err
		}
		locations = append([]string(nil), configs.DefaultKeyLocations...)
		if config != nil {
			if len(config.Keys.Locations) > 0 {
				locations = append([]string(nil), config.Keys.Locations...)
			}
			if config.Keys.SizeBits > 0 {
				bits = config.Keys.SizeBits
			}
		}
	}
	return root, locations, bits, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
