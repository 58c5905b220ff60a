package cmd

import (
	logger "github.com/samanthaireland/stormkeys/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	KeysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Provision and inspect the repository's JWT signing key pairs",
		Long: `Provides provisioning, verification, and inspection of the RSA key pairs
the auth services use for token signing and verification.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing keys command with verbose=%t, debug=%t", verbose, debug)
			cmd.Flags().Visit(func(f *pflag.Flag) {
				Logger.Debugf("Flag set: --%s=%s", f.Name, f.Value.String())
			})
		},
	}
)

func init() {
	KeysCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	KeysCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	KeysCmd.AddCommand(provisionCmd)
	KeysCmd.AddCommand(verifyCmd)
	KeysCmd.AddCommand(statusCmd)
	KeysCmd.AddCommand(logCmd)
}

// Helper functions for testing

// GetKeysCmd returns the KeysCmd for testing.
func GetKeysCmd() *cobra.Command {
	return KeysCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	resetProvisionCommandState()
	resetVerifyCommandState()
	resetStatusCommandState()
	resetLogCommandState()
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
