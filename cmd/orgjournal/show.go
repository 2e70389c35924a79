package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/orgjournal/internal/journal"
	"github.com/gorewood/orgjournal/internal/output"
)

// dayText is the JSON form of a shown day.
type dayText struct {
	Date  string `json:"date"`
	Path  string `json:"path"`
	Found bool   `json:"found"`
	Text  string `json:"text,omitempty"`
}

// newShowCmdInternal creates the show command.
func newShowCmdInternal(deps cmdDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "show [day]",
		Short: "Print a day's entries",
		Long: `Print a day's heading and entries without changing any file.

Examples:
  orgjournal show              # Today
  orgjournal show yesterday
  orgjournal show 2025-06-15 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			day := deps.now()
			if len(args) == 1 {
				if day, err = journal.ParseDay(args[0], day); err != nil {
					return s.fail(output.NewUserErrorWithCause(err.Error(), err))
				}
			}

			text, found, err := s.journal.ReadDay(day)
			if err != nil {
				return s.fail(err)
			}
			result := dayText{
				Date:  day.Format("2006-01-02"),
				Path:  s.journal.Layout().MonthlyPath(day),
				Found: found,
				Text:  text,
			}
			if s.printer.IsJSON() {
				return s.printer.WriteJSON(result)
			}
			if !found {
				s.printer.Stderr("no heading for %s in %s\n", result.Date, result.Path)
				return nil
			}
			s.printer.Box(result.Path, strings.TrimRight(text, "\n"))
			return nil
		},
	}
}
