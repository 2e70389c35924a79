// Package output provides structured output handling for the orgjournal CLI.
//
// Every command can answer in two shapes: a human-readable rendering for the
// terminal and a JSON object for scripts, editor integrations and agents.
//
// # Printer
//
// The Printer switches format based on the --json flag and on whether the
// writer is a terminal:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	// Report where the cursor ended up
//	printer.Position("/home/me/journal/2025-06.org", 8, 9)
//
//	// Report structured results
//	printer.Success(map[string]any{"message": "Entry created", "path": path})
//
//	// Report failures
//	printer.Error(err)
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: success
//	output.ExitUserError   // 1: bad flags, invalid dates, invalid config
//	output.ExitSystemError // 2: I/O failures
//	output.ExitConflict    // 3: the journal file changed on disk mid-command
//
// Errors built with NewUserError, NewSystemError and NewConflictError carry
// these codes; GetExitCode extracts them for os.Exit.
package output
