package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	kerrors "github.com/samanthaireland/stormkeys/internal/errors"
	"github.com/samanthaireland/stormkeys/internal/ui"
	"github.com/samanthaireland/stormkeys/internal/workflows"

	"github.com/spf13/cobra"
)

var verifyJSONOutput bool

func init() {
	verifyCmd.Flags().BoolVar(&verifyJSONOutput, "json", false, "output verification result as JSON")
}

// resetVerifyCommandState resets the verify command's global state for testing.
func resetVerifyCommandState() {
	verifyJSONOutput = false
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Checks that every configured location has both key artifacts",
	Long: `Re-checks the filesystem for the private and public key at every
configured location. Exits zero only when all locations are complete.

The check is shallow: it confirms the files exist, not that their
contents parse. Use 'stormkeys keys status' to inspect fingerprints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting verify command")

		result, err := workflows.Verify(cmd.Context(), workflows.VerifyOptions{})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to verify keys: %v", err)
		}
		Logger.Debugf("Verification under %s complete=%t", result.ProjectRoot, result.Complete)

		if verifyJSONOutput {
			encoded, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to encode verification result: %v", err)
			}
			fmt.Println(string(encoded))
		} else {
			fmt.Print(buildVerifyReport(result))
		}

		if !result.Complete {
			var locations []string
			for _, missing := range result.Missing {
				locations = append(locations, missing.Location)
			}
			return fmt.Errorf("%w: %s", kerrors.ErrVerificationMismatch, strings.Join(locations, ", "))
		}
		return nil
	},
}

func buildVerifyReport(result *workflows.VerifyResult) string {
	var b strings.Builder

	if result.Complete {
		b.WriteString(ui.Success.Sprint("✓") + " All locations have both key artifacts\n")
		return b.String()
	}

	b.WriteString(ui.Error.Sprint("✗") + " Missing key artifacts:\n")
	for _, missing := range result.Missing {
		b.WriteString("    " + ui.Path.Sprint(missing.Location) + " " +
			ui.Muted.Sprint(describeMissing(missing)) + "\n")
	}
	b.WriteString(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("stormkeys keys provision") + " to generate them\n")
	return b.String()
}
