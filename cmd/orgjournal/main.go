// Package main provides the entry point for the orgjournal CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/orgjournal/internal/config"
	"github.com/gorewood/orgjournal/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cmdDeps are the collaborators commands reach outside the process for.
// Tests replace them; main uses defaultDeps.
type cmdDeps struct {
	now    func() time.Time
	launch editorLauncher
	stdin  io.Reader
	// interactive reports whether the calendar may take over the terminal.
	interactive func(cmd *cobra.Command) bool
}

func defaultDeps() cmdDeps {
	return cmdDeps{
		now:    time.Now,
		launch: launchEditor,
		stdin:  os.Stdin,
		interactive: func(cmd *cobra.Command) bool {
			return output.IsTTY(cmd.OutOrStdout()) && output.IsTTY(os.Stdin)
		},
	}
}

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the --color flag against the command's output.
func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString("color")
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter returns a printer bound to cmd's output streams.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
}

// configPath returns the --config flag or the default config location.
func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.FilePath()
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the orgjournal CLI.
func newRootCmd() *cobra.Command {
	return newRootCmdInternal(defaultDeps())
}

func newRootCmdInternal(deps cmdDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orgjournal",
		Short: "A monthly org-mode journal",
		Long: `orgjournal - A journal kept as one org-mode file per month.

Each month's file holds one top-level heading per day and one timestamped
second-level heading per entry:

  #+TITLE: Journal 2025-06

  * Sunday, 15 June
  :PROPERTIES:
  :CREATED:  [2025-06-15 Sun 09:30]
  :END:

  ** 0930 Went for a run

Journal commands print the resulting position as path:line:column, or open
it in your editor with --edit. All commands support --json.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'orgjournal --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Load .env.local, .env and <config dir>/env. Variables already in the
	// environment always take precedence over file values.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if err := config.LoadEnvFiles(); err != nil {
			newPrinter(cmd).Warn("%v", err)
		}
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", output.ColorAuto, "Color output: auto, always, never")
	cmd.PersistentFlags().String("config", "", "Config file (default "+config.FilePath()+")")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log what the journal does to stderr")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd, deps)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "journal", Title: "Journal Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "navigate", Title: "Navigation Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command, deps cmdDeps) {
	addGroupedCommand(cmd, newNewCmdInternal(deps), "journal")
	addGroupedCommand(cmd, newLastCmdInternal(deps), "journal")

	addGroupedCommand(cmd, newTodayCmdInternal(deps), "navigate")
	addGroupedCommand(cmd, newPrevCmdInternal(deps), "navigate")
	addGroupedCommand(cmd, newNextCmdInternal(deps), "navigate")
	addGroupedCommand(cmd, newOpenCmdInternal(deps), "navigate")
	addGroupedCommand(cmd, newCalendarCmdInternal(deps), "navigate")
	addGroupedCommand(cmd, newShowCmdInternal(deps), "navigate")

	addGroupedCommand(cmd, newInitCmd(), "admin")
	addGroupedCommand(cmd, newConfigCmdInternal(deps), "admin")
	addGroupedCommand(cmd, newDoctorCmdInternal(deps), "admin")
	addGroupedCommand(cmd, newServeCmdInternal(deps), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
