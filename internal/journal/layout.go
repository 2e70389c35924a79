package journal

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/gorewood/orgjournal/internal/config"
)

// createdLayout is the org inactive timestamp written into CREATED properties.
const createdLayout = "[2006-01-02 Mon 15:04]"

// Layout holds the compiled formats that map a date to a file, a day heading
// and an entry heading.
type Layout struct {
	dir   string
	file  *strftime.Strftime
	title *strftime.Strftime // nil when no title is written
	date  *strftime.Strftime
	time  *strftime.Strftime
}

// NewLayout compiles the formats in cfg. It fails with ErrLayout when a
// pattern does not compile, or when two days sharing a monthly file would get
// the same day heading.
func NewLayout(cfg config.Config) (*Layout, error) {
	l := &Layout{dir: cfg.Directory}

	var err error
	if l.file, err = compile("file_name_format", cfg.FileNameFormat); err != nil {
		return nil, err
	}
	if cfg.TitleFormat != "" {
		if l.title, err = compile("title_format", cfg.TitleFormat); err != nil {
			return nil, err
		}
	}
	if l.date, err = compile("date_heading_format", cfg.DateHeadingFormat); err != nil {
		return nil, err
	}
	if l.time, err = compile("time_heading_format", cfg.TimeHeadingFormat); err != nil {
		return nil, err
	}
	if err := l.checkDayKeys(); err != nil {
		return nil, err
	}
	return l, nil
}

func compile(field, pattern string) (*strftime.Strftime, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("%w: %s is empty", ErrLayout, field)
	}
	f, err := strftime.New(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %v", ErrLayout, field, pattern, err)
	}
	return f, nil
}

// checkDayKeys formats every day of two consecutive years (one of them a leap
// year) and rejects layouts where a day heading repeats within one file.
func (l *Layout) checkDayKeys() error {
	type seenKey struct{ path, key string }
	seen := make(map[seenKey]time.Time)

	start := time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)
	end := start.AddDate(2, 0, 0)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		key := l.DateKey(d)
		if strings.TrimSpace(key) == "" || strings.ContainsAny(key, "\r\n") {
			return fmt.Errorf("%w: date heading for %s is %q", ErrLayout, d.Format(time.DateOnly), key)
		}
		k := seenKey{path: l.MonthlyPath(d), key: key}
		if prev, ok := seen[k]; ok {
			return fmt.Errorf("%w: %s and %s share the day heading %q in %s",
				ErrLayout, prev.Format(time.DateOnly), d.Format(time.DateOnly), key, filepath.Base(k.path))
		}
		seen[k] = d
	}
	return nil
}

// Directory returns the journal directory.
func (l *Layout) Directory() string { return l.dir }

// MonthlyPath returns the file that holds t's entries.
func (l *Layout) MonthlyPath(t time.Time) string {
	return filepath.Join(l.dir, filepath.FromSlash(l.file.FormatString(t)))
}

// Title returns the first line of a new monthly file, or "" when titles are
// disabled.
func (l *Layout) Title(t time.Time) string {
	if l.title == nil {
		return ""
	}
	return l.title.FormatString(t)
}

// DateKey returns the text of t's day heading. Surrounding blanks are
// dropped, as they are when a heading is parsed (%e pads with a space).
func (l *Layout) DateKey(t time.Time) string {
	return strings.TrimSpace(l.date.FormatString(t))
}

// TimeKey returns the text of an entry heading created at t.
func (l *Layout) TimeKey(t time.Time) string {
	return l.time.FormatString(t)
}
