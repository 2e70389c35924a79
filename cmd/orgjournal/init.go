package main

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/gorewood/orgjournal/internal/config"
	"github.com/gorewood/orgjournal/internal/journal"
	"github.com/gorewood/orgjournal/internal/output"
)

// initFlags holds the command-line flags for the init command.
type initFlags struct {
	force bool
	dir   string
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file and create the journal directory",
		Long: `Write a config file with the default layout and create the journal directory.

The config file lives in the orgjournal config directory
($ORGJOURNAL_CONFIG_HOME, $XDG_CONFIG_HOME/orgjournal or ~/.config/orgjournal)
unless --config points elsewhere. An existing file is kept unless --force.

Examples:
  orgjournal init                      # Defaults, journal in ~/journal
  orgjournal init --dir ~/notes/diary  # Custom journal directory
  orgjournal init --force              # Overwrite an existing config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite an existing config file")
	cmd.Flags().StringVar(&flags.dir, "dir", "", "Journal directory (default ~/journal)")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, flags *initFlags) error {
	printer := newPrinter(cmd)

	cfg := config.Default()
	if flags.dir != "" {
		cfg.Directory = flags.dir
	}
	if err := cfg.Validate(); err != nil {
		exitErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}
	if _, err := journal.NewLayout(cfg); err != nil {
		exitErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}

	path := configPath(cmd)
	if path == "" {
		exitErr := output.NewSystemError("cannot determine the config directory; use --config")
		printer.Error(exitErr)
		return exitErr
	}
	if err := config.Save(path, cfg, flags.force); err != nil {
		exitErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}

	dir, err := homedir.Expand(cfg.Directory)
	if err != nil {
		exitErr := output.NewSystemErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		exitErr := output.NewSystemErrorWithCause("creating journal directory: "+err.Error(), err)
		printer.Error(exitErr)
		return exitErr
	}

	return printer.Success(map[string]any{
		"message":   "Wrote " + path + "; journal directory " + dir,
		"config":    path,
		"directory": dir,
	})
}

// newConfigCmdInternal creates the config command.
func newConfigCmdInternal(deps cmdDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration after defaults, the config file and
ORGJOURNAL_* environment variables are layered, with the file and headings
it produces for the current time.

Examples:
  orgjournal config
  orgjournal config --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			return outputConfig(s, configPath(cmd), deps.now())
		},
	}
}

// outputConfig prints the effective config and a sample of its layout.
func outputConfig(s *session, path string, now time.Time) error {
	layout := s.journal.Layout()
	sample := map[string]string{
		"file":  layout.MonthlyPath(now),
		"title": layout.Title(now),
		"day":   "* " + layout.DateKey(now),
		"entry": "** " + layout.TimeKey(now),
	}
	if s.printer.IsJSON() {
		return s.printer.WriteJSON(map[string]any{"path": path, "config": s.cfg, "sample": sample})
	}

	s.printer.Section("Config")
	s.printer.KeyValue("file", path)
	s.printer.KeyValue("directory", s.cfg.Directory)
	s.printer.KeyValue("file_name_format", s.cfg.FileNameFormat)
	s.printer.KeyValue("title_format", s.cfg.TitleFormat)
	s.printer.KeyValue("date_heading_format", s.cfg.DateHeadingFormat)
	s.printer.KeyValue("time_heading_format", s.cfg.TimeHeadingFormat)
	s.printer.KeyValue("editor", resolveEditor(s.cfg))

	s.printer.Section("Now")
	s.printer.KeyValue("file", sample["file"])
	s.printer.KeyValue("title", sample["title"])
	s.printer.KeyValue("day", sample["day"])
	s.printer.KeyValue("entry", sample["entry"])
	return nil
}
