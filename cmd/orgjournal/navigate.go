package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/orgjournal/internal/journal"
	"github.com/gorewood/orgjournal/internal/output"
	"github.com/gorewood/orgjournal/internal/state"
)

// gotoDay opens day's heading and reports it.
func gotoDay(cmd *cobra.Command, deps cmdDeps, s *session, day time.Time, edit bool) error {
	pos, err := s.journal.GotoDay(day)
	if err != nil {
		return s.fail(err)
	}
	return s.report(cmd, deps, pos, edit)
}

// newTodayCmdInternal creates the today command.
func newTodayCmdInternal(deps cmdDeps) *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Go to today's day heading",
		Long: `Go to today's day heading, creating the monthly file and the heading
when missing.

Examples:
  orgjournal today          # Print the heading's position
  orgjournal today --edit   # Open it in your editor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			return gotoDay(cmd, deps, s, deps.now(), edit)
		},
	}

	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Open the day in your editor")

	return cmd
}

// stepFlags holds the flags shared by prev and next.
type stepFlags struct {
	from  string
	count int
	edit  bool
}

// newPrevCmdInternal creates the prev command.
func newPrevCmdInternal(deps cmdDeps) *cobra.Command {
	return newStepCmd(deps, "prev", "Go to the day before the current one", -1)
}

// newNextCmdInternal creates the next command.
func newNextCmdInternal(deps cmdDeps) *cobra.Command {
	return newStepCmd(deps, "next", "Go to the day after the current one", 1)
}

// newStepCmd builds prev (direction -1) and next (direction 1).
func newStepCmd(deps cmdDeps, use, short string, direction int) *cobra.Command {
	flags := &stepFlags{}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

The current day is the last day any orgjournal command positioned you on
(new, last, today, prev, next, open, calendar), or today when there is none.
Use --from to step from a specific day instead. The target day heading is
created when missing.

Examples:
  orgjournal ` + use + `                   # One day from the current day
  orgjournal ` + use + ` -n 7              # A week
  orgjournal ` + use + ` --from 2025-06-01 # From a given day`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStep(cmd, deps, flags, direction)
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", "", "Step from this day instead of the current one")
	cmd.Flags().IntVarP(&flags.count, "count", "n", 1, "Number of days to move")
	cmd.Flags().BoolVarP(&flags.edit, "edit", "e", false, "Open the day in your editor")

	return cmd
}

// runStep executes prev and next.
func runStep(cmd *cobra.Command, deps cmdDeps, flags *stepFlags, direction int) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	if flags.count < 1 {
		return s.fail(output.NewUserError("--count must be at least 1"))
	}

	base, err := currentDay(s, deps.now(), flags.from)
	if err != nil {
		return s.fail(output.NewUserErrorWithCause(err.Error(), err))
	}
	return gotoDay(cmd, deps, s, base.AddDate(0, 0, direction*flags.count), flags.edit)
}

// currentDay resolves the day prev and next step from.
func currentDay(s *session, now time.Time, from string) (time.Time, error) {
	if from != "" {
		return journal.ParseDay(from, now)
	}
	st, err := state.Load(s.statePath)
	if err != nil {
		s.log.Warn("ignoring unreadable state", "err", err)
		return now, nil
	}
	day, ok := st.Date(now.Location())
	if !ok {
		return now, nil
	}
	s.log.Debug("stepping from recorded day", "day", st.Day)
	return time.Date(day.Year(), day.Month(), day.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location()), nil
}

// newOpenCmdInternal creates the open command.
func newOpenCmdInternal(deps cmdDeps) *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "open <day>",
		Short: "Go to a given day's heading",
		Long: `Go to the heading of a given day, creating it when missing.

Days can be dates or references relative to today.

Examples:
  orgjournal open 2025-06-15
  orgjournal open yesterday
  orgjournal open 3d --edit   # three days ago`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			day, err := journal.ParseDay(args[0], deps.now())
			if err != nil {
				return s.fail(output.NewUserErrorWithCause(err.Error(), err))
			}
			return gotoDay(cmd, deps, s, day, edit)
		},
	}

	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Open the day in your editor")

	return cmd
}
