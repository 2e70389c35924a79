package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/orgjournal/internal/calendar"
	"github.com/gorewood/orgjournal/internal/journal"
	"github.com/gorewood/orgjournal/internal/output"
)

// calendarOpenKeys are bound to opening the selected day.
var calendarOpenKeys = []string{"enter", "j"}

// newCalendarKeymap binds the open-day keys. This is the calendar's only
// journal binding; movement keys are built in.
func newCalendarKeymap() *calendar.Keymap {
	keymap := calendar.NewKeymap()
	for _, key := range calendarOpenKeys {
		keymap.Bind(key, calendar.ActionOpen)
	}
	return keymap
}

// calendarFlags holds the command-line flags for the calendar command.
type calendarFlags struct {
	print bool
	edit  bool
}

// calendarMonth is the JSON form of a printed month.
type calendarMonth struct {
	Month string `json:"month"`
	Days  []int  `json:"days"`
}

// newCalendarCmdInternal creates the calendar command.
func newCalendarCmdInternal(deps cmdDeps) *cobra.Command {
	flags := &calendarFlags{}

	cmd := &cobra.Command{
		Use:   "calendar [month]",
		Short: "Pick a day from a month calendar",
		Long: `Show a month calendar with journal days highlighted and open the selected day.

Keys:
  ←/→ h/l    previous/next day
  ↑/↓        previous/next week
  [ ]        previous/next month
  t          today
  enter, j   open the selected day
  q, esc     quit

Without a terminal, or with --print or --json, the month is printed instead.

Examples:
  orgjournal calendar              # This month
  orgjournal calendar 2025-06      # A given month
  orgjournal calendar --print      # Print without interaction`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd, deps, flags, args)
		},
	}

	cmd.Flags().BoolVarP(&flags.print, "print", "p", false, "Print the month instead of opening the picker")
	cmd.Flags().BoolVarP(&flags.edit, "edit", "e", false, "Open the chosen day in your editor")

	return cmd
}

// runCalendar executes the calendar command.
func runCalendar(cmd *cobra.Command, deps cmdDeps, flags *calendarFlags, args []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}

	now := deps.now()
	month := now
	if len(args) == 1 {
		if month, err = journal.ParseMonth(args[0], now); err != nil {
			return s.fail(output.NewUserErrorWithCause(err.Error(), err))
		}
	}

	if flags.print || s.printer.IsJSON() || !deps.interactive(cmd) {
		return printCalendar(s, month, now)
	}

	selected := month
	if month.Year() == now.Year() && month.Month() == now.Month() {
		selected = now
	}
	opts := calendar.DefaultOptions()
	if !useColor(cmd) {
		opts = calendar.PlainOptions()
	}

	model := calendar.New(selected, now, newCalendarKeymap(), s.journal.MonthDays, opts)
	result, err := calendar.Run(model, deps.stdin, cmd.ErrOrStderr())
	if err != nil {
		return s.fail(err)
	}
	if result.Action != calendar.ActionOpen {
		s.log.Debug("calendar closed without a choice")
		return nil
	}

	day := time.Date(result.Day.Year(), result.Day.Month(), result.Day.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, now.Location())
	return gotoDay(cmd, deps, s, day, flags.edit)
}

// printCalendar writes month without interaction.
func printCalendar(s *session, month, now time.Time) error {
	days, err := s.journal.MonthDays(month)
	if err != nil {
		return s.fail(err)
	}
	if s.printer.IsJSON() {
		if days == nil {
			days = []int{}
		}
		return s.printer.WriteJSON(calendarMonth{Month: month.Format("2006-01"), Days: days})
	}

	opts := calendar.PlainOptions()
	if s.printer.IsTTY() {
		opts = calendar.DefaultOptions()
	}
	s.printer.Println(calendar.Render(month, calendar.MonthDays(month, days, now, time.Time{}), opts))
	return nil
}
