package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samanthaireland/stormkeys/internal/audit"
	kerrors "github.com/samanthaireland/stormkeys/internal/errors"
	"github.com/samanthaireland/stormkeys/internal/ui"
	"github.com/samanthaireland/stormkeys/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 0, "maximum number of entries to show (0 = all)")
	logCmd.Flags().BoolVarP(&logReverse, "reverse", "r", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "op", "", "only show entries for the given operation")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Shows the history of provisioning runs",
	Long: `Prints the audit log of key provisioning runs recorded under the
project's .stormkeys directory, one entry per run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting log command")

		result, err := workflows.Log(cmd.Context(), workflows.LogOptions{
			Limit:     logLimit,
			Reverse:   logReverse,
			Operation: logOperation,
		})
		if errors.Is(err, kerrors.ErrNoAuditLog) {
			fmt.Println(ui.Info.Sprint("→") + " No provisioning runs recorded yet - run " +
				ui.Code.Sprint("stormkeys keys provision"))
			return nil
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to read audit log: %v", err)
		}
		Logger.Debugf("Showing %d of %d audit entries", len(result.Entries), result.TotalEntriesBeforeFilter)

		fmt.Print(buildLogReport(result))
		return nil
	},
}

func buildLogReport(result *workflows.LogResult) string {
	var b strings.Builder

	for _, entry := range result.Entries {
		b.WriteString(ui.Muted.Sprint(entry.Timestamp) + " " + ui.Code.Sprint(entry.Operation))
		if entry.User != "" {
			b.WriteString(" by " + entry.User)
		}
		if entry.Force {
			b.WriteString(" " + ui.Warning.Sprint("(forced)"))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("    %d generated, %d skipped, %d failed - %s\n",
			entry.Generated, entry.Skipped, entry.Failed, renderVerdict(entry)))
		if len(entry.Incomplete) > 0 {
			b.WriteString("    missing: " + ui.Path.Sprint(strings.Join(entry.Incomplete, ", ")) + "\n")
		}
	}

	if len(result.Entries) < result.TotalEntriesBeforeFilter {
		b.WriteString(ui.Muted.Sprintf("(%d of %d entries)\n",
			len(result.Entries), result.TotalEntriesBeforeFilter))
	}
	return b.String()
}

func renderVerdict(entry audit.Entry) string {
	if entry.Complete {
		return ui.Success.Sprint("complete")
	}
	return ui.Error.Sprint("incomplete")
}
