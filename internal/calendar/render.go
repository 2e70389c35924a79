// Package calendar draws a month grid and runs the interactive day picker
// used to open a journal day.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Day describes metadata used when rendering the calendar.
type Day struct {
	Day        int
	HasEntry   bool
	IsToday    bool
	IsSelected bool
}

// Options controls the styling of the rendered calendar.
type Options struct {
	TitleStyle    lipgloss.Style
	HeaderStyle   lipgloss.Style
	EmptyStyle    lipgloss.Style
	EntryStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowTitle     bool
	ShowHeader    bool
	// Plain marks days with text suffixes instead of styles.
	Plain bool
}

// DefaultOptions returns the styling used on color terminals.
func DefaultOptions() Options {
	return Options{
		TitleStyle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		EmptyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		EntryStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		ShowTitle:     true,
		ShowHeader:    true,
	}
}

// PlainOptions returns unstyled options. Days with entries are marked with
// a trailing asterisk in place of color.
func PlainOptions() Options {
	return Options{ShowTitle: true, ShowHeader: true, Plain: true}
}

// Render produces a multi-line, Sunday-first calendar for month.
func Render(month time.Time, days []Day, opts Options) string {
	if month.IsZero() {
		return ""
	}

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	daysInMonth := DaysIn(month)

	byDay := make(map[int]Day, len(days))
	for _, d := range days {
		if d.Day >= 1 && d.Day <= daysInMonth {
			byDay[d.Day] = d
		}
	}

	var lines []string
	if opts.ShowTitle {
		lines = append(lines, opts.render(opts.TitleStyle, first.Format("January 2006")))
	}
	if opts.ShowHeader {
		lines = append(lines, opts.render(opts.HeaderStyle, "Su  Mo  Tu  We  Th  Fr  Sa"))
	}

	startOffset := int(first.Weekday()) // Sunday == 0
	rows := (startOffset + daysInMonth + 6) / 7

	for row := range rows {
		var cells []string
		for col := range 7 {
			day := row*7 + col - startOffset + 1
			if day < 1 || day > daysInMonth {
				cells = append(cells, opts.render(opts.EmptyStyle, "   "))
				continue
			}
			cells = append(cells, renderDay(byDay[day], day, opts))
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}

	return strings.Join(lines, "\n")
}

func (o Options) render(style lipgloss.Style, text string) string {
	if o.Plain {
		return text
	}
	return style.Render(text)
}

func renderDay(info Day, day int, opts Options) string {
	text := fmt.Sprintf("%2d", day)
	if opts.Plain {
		switch {
		case info.IsSelected:
			text += ">"
		case info.HasEntry:
			text += "*"
		default:
			text += " "
		}
		return text
	}
	text += " "

	style := opts.EmptyStyle
	if info.HasEntry {
		style = opts.EntryStyle
	}
	if info.IsToday {
		style = style.Inherit(opts.TodayStyle)
	}
	if info.IsSelected {
		style = style.Inherit(opts.SelectedStyle)
	}
	return style.Render(text)
}

// DaysIn returns the number of days in a month.
func DaysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}

// MonthDays builds the Day metadata for month from the days that have
// entries, today and the selected day.
func MonthDays(month time.Time, marked []int, today, selected time.Time) []Day {
	n := DaysIn(month)
	days := make([]Day, n)
	for i := range days {
		days[i].Day = i + 1
	}
	for _, d := range marked {
		if d >= 1 && d <= n {
			days[d-1].HasEntry = true
		}
	}
	if sameMonth(today, month) {
		days[today.Day()-1].IsToday = true
	}
	if sameMonth(selected, month) {
		days[selected.Day()-1].IsSelected = true
	}
	return days
}

func sameMonth(a, b time.Time) bool {
	return !a.IsZero() && a.Year() == b.Year() && a.Month() == b.Month()
}
