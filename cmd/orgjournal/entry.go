package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/orgjournal/internal/journal"
	"github.com/gorewood/orgjournal/internal/output"
)

// newNewCmdInternal creates the new command.
func newNewCmdInternal(deps cmdDeps) *cobra.Command {
	var (
		at   string
		edit bool
	)

	cmd := &cobra.Command{
		Use:   "new [text...]",
		Short: "Append a timestamped entry to today's journal",
		Long: `Append a timestamped entry under today's day heading.

The monthly file and the day heading are created when missing. The first
line of text becomes the rest of the entry heading, any further lines its
body. Use "-" to read the text from stdin.

Examples:
  orgjournal new                           # Empty entry, print its position
  orgjournal new Went for a run            # Entry with a heading text
  orgjournal new --at 07:45 Breakfast      # Backdate to 07:45 today
  orgjournal new --at 2025-06-01T20:00:00Z # Any day, any time
  echo "notes" | orgjournal new -          # Text from stdin
  orgjournal new --edit                    # Open the new entry in $EDITOR`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(cmd, deps, args, at, edit)
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Entry time (15:04, 2025-06-15 15:04, RFC 3339, yesterday, -2d)")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Open the entry in your editor")

	return cmd
}

// runNew executes the new command.
func runNew(cmd *cobra.Command, deps cmdDeps, args []string, at string, edit bool) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	now := deps.now()
	when := now
	if at != "" {
		if when, err = journal.ParseTime(at, now); err != nil {
			return s.fail(output.NewUserErrorWithCause(err.Error(), err))
		}
	}

	text := strings.Join(args, " ")
	if text == "-" {
		data, err := io.ReadAll(deps.stdin)
		if err != nil {
			return s.fail(output.NewSystemErrorWithCause("reading stdin: "+err.Error(), err))
		}
		text = string(data)
	}

	pos, err := s.journal.NewEntry(when, text)
	if err != nil {
		return s.fail(err)
	}
	return s.report(cmd, deps, pos, edit)
}

// newLastCmdInternal creates the last command.
func newLastCmdInternal(deps cmdDeps) *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "last",
		Short: "Go to the most recent entry of this month",
		Long: `Go to the most recent entry in this month's file.

When the month has no entry yet, a new one is created instead, exactly as
'orgjournal new' would.

Examples:
  orgjournal last          # Print the last entry's position
  orgjournal last --edit   # Open it in your editor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLast(cmd, deps, edit)
		},
	}

	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Open the entry in your editor")

	return cmd
}

// runLast executes the last command.
func runLast(cmd *cobra.Command, deps cmdDeps, edit bool) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	now := deps.now()
	pos, err := s.journal.LastEntry(now)
	if err != nil {
		return s.fail(err)
	}
	return s.report(cmd, deps, pos, edit)
}
