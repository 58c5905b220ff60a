// Package logger provides leveled logging for StormKeys CLI commands.
//
// Output verbosity is controlled by two flags:
//
//   - --verbose: Shows info and warning messages
//   - --debug: Shows all messages including debug details
//
// Without flags, only user-facing warnings and errors are shown.
//
// # Log Methods
//
//	Logger.Infof()           // Shown with --verbose or --debug
//	Logger.Debugf()          // Shown only with --debug
//	Logger.Warnf()           // Always shown, stderr
//	Logger.WarnfUser()       // User-facing warnings, stdout
//	Logger.Errorf()          // Always shown, stderr
//	Logger.ErrorfAndReturn() // Errorf plus an error value for RunE
//
// Commands create a logger in their PersistentPreRun and share it with
// their subcommands.
package logger
