package cmd

import (
	"fmt"
	"strings"

	"github.com/samanthaireland/stormkeys/internal/audit"
	kerrors "github.com/samanthaireland/stormkeys/internal/errors"
	"github.com/samanthaireland/stormkeys/internal/ui"
	"github.com/samanthaireland/stormkeys/internal/workflows"

	"github.com/spf13/cobra"
)

var force bool

func init() {
	provisionCmd.Flags().BoolVarP(&force, "force", "f", false, "force key regeneration even when artifacts exist")
}

// resetProvisionCommandState resets the provision command's global state for testing.
func resetProvisionCommandState() {
	force = false
}

var provisionCmd = &cobra.Command{
	Use:   "provision",
	Short: "Generates an RSA signing key pair for every configured location",
	Long: `Ensures every configured key location under the project root has a
2048-bit RSA key pair (PKCS#8 PEM private key plus PEM public key),
generated via the local OpenSSL binary.

Locations that already have both files are skipped unless --force is set.
A generation failure at one location never stops the others. After
provisioning, every location is re-checked on disk; the command exits
non-zero if any location still lacks an artifact.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting provision command")
		spinner, cleanup := startSpinner("Provisioning signing keys...", verbose)
		defer cleanup()

		if force {
			spinner.Stop()
			Logger.WarnfUser("Using --force will overwrite existing key pairs - make sure no running service depends on them")
			spinner.Restart()
		}

		ctx := cmd.Context()

		Logger.Debugf("Running provision workflow with force=%t", force)
		result, err := workflows.Provision(ctx, workflows.ProvisionOptions{Force: force})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to provision keys: %v", err)
		}
		Logger.Infof("Provisioned %d location(s): %d generated, %d skipped, %d failed",
			len(result.Locations), result.Summary.Generated, result.Summary.Skipped, result.Summary.Failed)

		// Re-check the filesystem independently of what provisioning reported.
		Logger.Debugf("Running completion verification under %s", result.ProjectRoot)
		verification, err := workflows.Verify(ctx, workflows.VerifyOptions{Root: result.ProjectRoot})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to verify keys: %v", err)
		}

		entry := audit.NewEntry("provision")
		entry.Force = force
		entry.Generated = result.Summary.Generated
		entry.Skipped = result.Summary.Skipped
		entry.Failed = result.Summary.Failed
		entry.Complete = verification.Complete
		for _, missing := range verification.Missing {
			entry.Incomplete = append(entry.Incomplete, missing.Location)
		}
		audit.Log(result.ProjectRoot, entry)

		spinner.FinalMSG = buildProvisionReport(result, verification)

		if !verification.Complete {
			var locations []string
			for _, missing := range verification.Missing {
				locations = append(locations, missing.Location)
			}
			return fmt.Errorf("%w: %s", kerrors.ErrVerificationMismatch, strings.Join(locations, ", "))
		}
		return nil
	},
}

// buildProvisionReport renders the per-location outcomes and the final
// verification verdict.
func buildProvisionReport(result *workflows.ProvisionResult, verification *workflows.VerifyResult) string {
	var b strings.Builder

	for _, location := range result.Locations {
		switch location.Outcome {
		case workflows.OutcomeGenerated:
			b.WriteString(ui.Success.Sprint("✓") + " generated: " + ui.Path.Sprint(location.Location) + "\n")
		case workflows.OutcomeSkipped:
			b.WriteString(ui.Info.Sprint("→") + " skipped: " + ui.Path.Sprint(location.Location) +
				" " + ui.Muted.Sprint("already provisioned") + "\n")
		case workflows.OutcomeFailed:
			b.WriteString(ui.Error.Sprint("✗") + " failed: " + ui.Path.Sprint(location.Location) + "\n")
			if location.Diagnostic != "" {
				b.WriteString("    " + ui.Muted.Sprint(location.Diagnostic) + "\n")
			}
		}
	}

	b.WriteString(fmt.Sprintf("%d generated, %d skipped, %d failed\n",
		result.Summary.Generated, result.Summary.Skipped, result.Summary.Failed))

	if verification.Complete {
		b.WriteString(ui.Success.Sprint("✓") + " All locations have both key artifacts")
	} else {
		b.WriteString(ui.Error.Sprint("✗") + " Missing artifacts after provisioning:\n")
		for _, missing := range verification.Missing {
			b.WriteString("    " + ui.Path.Sprint(missing.Location) + " " +
				ui.Muted.Sprint(describeMissing(missing)) + "\n")
		}
		b.WriteString(ui.Info.Sprint("→") + " Check that " + ui.Code.Sprint("openssl") + " is installed and re-run " +
			ui.Code.Sprint("stormkeys keys provision"))
	}

	return b.String()
}

func describeMissing(missing workflows.MissingArtifacts) string {
	switch {
	case missing.PrivateMissing && missing.PublicMissing:
		return "missing both keys"
	case missing.PrivateMissing:
		return "missing private key"
	default:
		return "missing public key"
	}
}
