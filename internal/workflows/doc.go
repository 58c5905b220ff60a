// Package workflows implements the StormKeys operations behind the CLI
// commands.
//
// Each workflow takes an Options struct and returns a Result struct so the
// outcome is machine-checkable rather than inferred from printed text.
// Provision ensures every configured location has a key pair; Verify
// re-checks the filesystem independently of what provisioning reported;
// Status and Log are read-only views.
package workflows
