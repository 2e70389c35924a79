package main

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gorewood/orgjournal/internal/config"
	"github.com/gorewood/orgjournal/internal/journal"
	"github.com/gorewood/orgjournal/internal/output"
	"github.com/gorewood/orgjournal/internal/state"
)

// session is what a journal command works with once config is loaded.
type session struct {
	cfg       config.Config
	journal   *journal.Journal
	printer   *output.Printer
	log       *log.Logger
	statePath string
}

// newLogger returns the CLI logger. It writes to w at debug level when
// verbose, and only warnings otherwise.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		Prefix:          "orgjournal",
	})
	logger.SetLevel(log.WarnLevel)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openSession loads the config and compiles the journal. Failures are
// printed and returned as exit errors.
func openSession(cmd *cobra.Command) (*session, error) {
	printer := newPrinter(cmd)
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	path := configPath(cmd)
	cfg, err := config.Load(path)
	if err != nil {
		exitErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return nil, exitErr
	}
	logger.Debug("loaded config", "path", path, "directory", cfg.Directory)

	j, err := journal.New(cfg, journal.WithLogger(logger))
	if err != nil {
		exitErr := output.NewUserErrorWithCause(err.Error(), err)
		printer.Error(exitErr)
		return nil, exitErr
	}

	return &session{
		cfg:       cfg,
		journal:   j,
		printer:   printer,
		log:       logger,
		statePath: config.StatePath(),
	}, nil
}

// fail prints err with the exit code that fits it and returns the exit error.
func (s *session) fail(err error) error {
	var exitErr *output.ExitError
	switch {
	case errors.As(err, &exitErr):
	case errors.Is(err, journal.ErrModified):
		exitErr = output.NewConflictError(err.Error() + "; re-run the command to pick up the change")
		exitErr.Cause = err
	case errors.Is(err, journal.ErrLayout):
		exitErr = output.NewUserErrorWithCause(err.Error(), err)
	default:
		exitErr = output.NewSystemErrorWithCause(err.Error(), err)
	}
	s.printer.Error(exitErr)
	return exitErr
}

// report records pos's day as the current day, prints it, and opens it in
// the editor when edit is set.
func (s *session) report(cmd *cobra.Command, deps cmdDeps, pos journal.Position, edit bool) error {
	if s.statePath != "" {
		if err := state.Record(s.statePath, pos.Date, pos, deps.now()); err != nil {
			s.log.Warn("could not record position", "err", err)
		}
	}

	if s.printer.IsJSON() {
		if err := s.printer.WriteJSON(pos); err != nil {
			return s.fail(err)
		}
	} else {
		if pos.FileCreated {
			s.printer.Stderr("created %s\n", pos.Path)
		}
		if pos.DayCreated {
			s.printer.Stderr("added day heading %q\n", pos.Day)
		}
		s.printer.Position(pos.Path, pos.Line, pos.Column)
	}

	if !edit {
		return nil
	}
	editor := resolveEditor(s.cfg)
	s.log.Debug("launching editor", "editor", editor, "path", pos.Path, "line", pos.Line)
	if err := deps.launch(cmd.Context(), editor, pos.Path, pos.Line, pos.Column); err != nil {
		return s.fail(output.NewSystemErrorWithCause("editor failed: "+err.Error(), err))
	}
	return nil
}
