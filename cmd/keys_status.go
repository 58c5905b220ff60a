package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samanthaireland/stormkeys/internal/ui"
	"github.com/samanthaireland/stormkeys/internal/workflows"

	"github.com/spf13/cobra"
)

var statusJSONOutput bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSONOutput, "json", false, "output status as JSON")
}

// resetStatusCommandState resets the status command's global state for testing.
func resetStatusCommandState() {
	statusJSONOutput = false
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows the on-disk state of every configured key location",
	Long: `Reports, for each configured location, whether the private and public
keys exist, their modification times, and the SHA256 fingerprint of each
readable public key. Read-only; never exits non-zero for missing keys.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting status command")

		result, err := workflows.Status(cmd.Context(), workflows.StatusOptions{})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to get key status: %v", err)
		}
		Logger.Debugf("Status under %s covers %d location(s)", result.ProjectRoot, len(result.Locations))

		if statusJSONOutput {
			encoded, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to encode status: %v", err)
			}
			fmt.Println(string(encoded))
			return nil
		}

		fmt.Print(buildStatusReport(result))
		return nil
	},
}

func buildStatusReport(result *workflows.StatusResult) string {
	var b strings.Builder

	b.WriteString("Project root: " + ui.Path.Sprint(result.ProjectRoot) + "\n\n")

	for _, location := range result.Locations {
		b.WriteString(ui.Path.Sprint(location.Location) + "\n")
		b.WriteString("    private key: " + renderArtifact(location.PrivateKeyExists, location.PrivateKeyMtime) + "\n")
		b.WriteString("    public key:  " + renderArtifact(location.PublicKeyExists, location.PublicKeyMtime) + "\n")
		if location.PublicFingerprint != "" {
			b.WriteString("    fingerprint: " + ui.Muted.Sprint(location.PublicFingerprint) + "\n")
		}
	}

	b.WriteString("\n")
	if result.Complete {
		b.WriteString(ui.Success.Sprint("✓") + " All locations have both key artifacts\n")
	} else {
		b.WriteString(ui.Warning.Sprint("!") + " Some locations are missing artifacts - run " +
			ui.Code.Sprint("stormkeys keys provision") + "\n")
	}
	return b.String()
}

func renderArtifact(exists bool, mtime string) string {
	if !exists {
		return ui.Error.Sprint("missing")
	}
	return ui.Success.Sprint("present") + " " + ui.Muted.Sprint(mtime)
}
