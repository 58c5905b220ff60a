package main

import (
	"fmt"
	"os"

	"github.com/samanthaireland/stormkeys/cmd"

	"github.com/common-nighthawk/go-figure"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stormkeys",
	Short: "StormKeys - Provisions the JWT signing keys the StormStack services need.",
	Long: `StormKeys keeps every auth service in the repository supplied with the
RSA key pair it uses to sign and verify JWTs.

Features:
  - Generate 2048-bit PKCS#8 RSA key pairs via OpenSSL at every configured location
  - Skip locations that are already provisioned, or regenerate with --force
  - Verify that every location has both artifacts before you ship

Usage:
  stormkeys <command> [flags]

Available Commands:
  keys    Provision, verify, and inspect signing key pairs

Run 'stormkeys help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		banner := figure.NewColorFigure("StormKeys", "alligator2", "blue", true)
		banner.Print()
		fmt.Println()
		fmt.Printf("%s Run %s to provision signing keys\n",
			color.CyanString("→"), color.YellowString("stormkeys keys provision"))
		fmt.Printf("%s Run %s to see available commands\n",
			color.CyanString("→"), color.YellowString("stormkeys --help"))
	},
}

func main() {
	rootCmd.AddCommand(cmd.KeysCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
