package journal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gorewood/orgjournal/internal/config"
)

const (
	dayLevel   = 1
	entryLevel = 2
)

// Position is where a command leaves the user.
type Position struct {
	Path string `json:"path"`
	Day  string `json:"day"` // day heading text
	// Date is the calendar day the position belongs to.
	Date time.Time `json:"date"`
	Location
	FileCreated  bool `json:"file_created,omitempty"`
	DayCreated   bool `json:"day_created,omitempty"`
	EntryCreated bool `json:"entry_created,omitempty"`
}

// LastEntry is the result of FindLastEntry.
type LastEntry struct {
	Entry Heading
	// Day is the day heading above Entry. HasDay is false for an entry that
	// sits above every day heading.
	Day    Heading
	HasDay bool
}

// Option configures a Journal.
type Option func(*Journal)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(j *Journal) { j.log = l }
}

// Journal performs the journal commands against one layout.
type Journal struct {
	layout *Layout
	log    *log.Logger
}

// New compiles cfg into a Journal.
func New(cfg config.Config, opts ...Option) (*Journal, error) {
	layout, err := NewLayout(cfg)
	if err != nil {
		return nil, err
	}
	j := &Journal{layout: layout, log: log.New(io.Discard)}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Layout returns the compiled layout.
func (j *Journal) Layout() *Layout { return j.layout }

// EnsureMonthlyFile opens the file for t's month, creating it with its title
// when it is missing or empty. Creation is written to disk immediately.
func (j *Journal) EnsureMonthlyFile(t time.Time) (*Document, error) {
	doc, _, err := j.ensureMonthlyFile(t)
	return doc, err
}

func (j *Journal) ensureMonthlyFile(t time.Time) (*Document, bool, error) {
	path := j.layout.MonthlyPath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, false, fmt.Errorf("creating journal directory: %w", err)
	}
	doc, err := OpenDocument(path)
	if err != nil {
		return nil, false, err
	}
	if doc.Exists() && doc.Text() != "" {
		return doc, false, nil
	}

	if title := j.layout.Title(t); title != "" {
		doc.text = title + "\n\n"
	}
	created := doc.Dirty()
	if err := doc.Save(); err != nil {
		return nil, false, err
	}
	if created {
		j.log.Debug("created monthly file", "path", path)
	}
	return doc, created, nil
}

// EnsureDayHeading returns the location of day's heading in doc, appending
// the heading with a CREATED property when it is missing.
func (j *Journal) EnsureDayHeading(doc *Document, day time.Time) (Location, error) {
	h, _, err := j.ensureDayHeading(doc, day)
	if err != nil {
		return Location{}, err
	}
	return doc.LocationAt(h.Offset), nil
}

func (j *Journal) ensureDayHeading(doc *Document, day time.Time) (Heading, bool, error) {
	key := j.layout.DateKey(day)
	if h, ok := ParseOutline(doc.Text()).FindLast(dayLevel, key); ok {
		return h, false, nil
	}

	block := "* " + key + "\n" +
		":PROPERTIES:\n" +
		":CREATED:  " + day.Format(createdLayout) + "\n" +
		":END:\n"
	doc.appendBlock(block)

	h, ok := ParseOutline(doc.Text()).FindLast(dayLevel, key)
	if !ok {
		return Heading{}, false, fmt.Errorf("day heading %q not found after insert in %s", key, doc.Path())
	}
	j.log.Debug("added day heading", "day", key, "path", doc.Path())
	return h, true, nil
}

// AppendEntry adds an entry heading for t at the end of t's day, creating the
// day heading first if needed. The returned location is just after the
// heading's separating space, where entry text goes.
func (j *Journal) AppendEntry(doc *Document, t time.Time) (Location, error) {
	loc, _, err := j.appendEntry(doc, t)
	return loc, err
}

func (j *Journal) appendEntry(doc *Document, t time.Time) (Location, bool, error) {
	day, created, err := j.ensureDayHeading(doc, t)
	if err != nil {
		return Location{}, false, err
	}
	head := "** " + j.layout.TimeKey(t) + " "
	start := doc.insertBlock(day.End, head+"\n")
	return doc.LocationAt(start + len(head)), created, nil
}

// FindLastEntry returns the last entry heading in doc and the day heading it
// belongs to. It fails with ErrNoEntries when doc has no entry.
func FindLastEntry(doc *Document) (LastEntry, error) {
	outline := ParseOutline(doc.Text())
	entry, ok := outline.Last(entryLevel)
	if !ok {
		return LastEntry{}, ErrNoEntries
	}
	last := LastEntry{Entry: entry}
	last.Day, last.HasDay = outline.Parent(entry)
	return last, nil
}

// NewEntry appends an entry for t and saves the file. The first line of text
// becomes the rest of the entry heading and any further lines its body.
func (j *Journal) NewEntry(t time.Time, text string) (Position, error) {
	doc, fileCreated, err := j.ensureMonthlyFile(t)
	if err != nil {
		return Position{}, err
	}
	loc, dayCreated, err := j.appendEntry(doc, t)
	if err != nil {
		return Position{}, err
	}
	if end := fillEntry(doc, loc.Offset, text); end != loc.Offset {
		loc = doc.LocationAt(end)
	}
	if err := doc.Save(); err != nil {
		return Position{}, err
	}

	j.log.Debug("new entry", "path", doc.Path(), "line", loc.Line)
	return Position{
		Path:         doc.Path(),
		Day:          j.layout.DateKey(t),
		Date:         t,
		Location:     loc,
		FileCreated:  fileCreated,
		DayCreated:   dayCreated,
		EntryCreated: true,
	}, nil
}

// fillEntry writes text into the entry whose heading ends at offset and
// returns the offset just after the inserted text.
func fillEntry(doc *Document, offset int, text string) int {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return offset
	}
	first, rest, _ := strings.Cut(text, "\n")
	first = strings.TrimSpace(first)
	doc.Insert(offset, first)
	end := offset + len(first)
	if rest = escapeBody(strings.TrimSpace(rest)); rest != "" {
		// Body goes on the line after the heading.
		doc.Insert(end+1, rest+"\n")
		end += 1 + len(rest)
	}
	return end
}

// escapeBody prefixes a comma to body lines that would parse as headings, the
// way org escapes them inside blocks, so entry text never opens a new day or
// entry.
func escapeBody(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if _, _, ok := parseHeadingLine(line); ok {
			lines[i] = "," + line
		}
	}
	return strings.Join(lines, "\n")
}

// GotoDay returns the position of day's heading, creating the monthly file
// and the heading when needed.
func (j *Journal) GotoDay(day time.Time) (Position, error) {
	doc, fileCreated, err := j.ensureMonthlyFile(day)
	if err != nil {
		return Position{}, err
	}
	h, dayCreated, err := j.ensureDayHeading(doc, day)
	if err != nil {
		return Position{}, err
	}
	if err := doc.Save(); err != nil {
		return Position{}, err
	}
	return Position{
		Path:        doc.Path(),
		Day:         h.Title,
		Date:        day,
		Location:    doc.LocationAt(h.Offset),
		FileCreated: fileCreated,
		DayCreated:  dayCreated,
	}, nil
}

// LastEntry returns the position of the last entry in now's monthly file.
// When the file has no entry it falls back to NewEntry.
func (j *Journal) LastEntry(now time.Time) (Position, error) {
	doc, fileCreated, err := j.ensureMonthlyFile(now)
	if err != nil {
		return Position{}, err
	}
	last, err := FindLastEntry(doc)
	if errors.Is(err, ErrNoEntries) {
		j.log.Debug("no entries yet, creating one", "path", doc.Path())
		pos, err := j.NewEntry(now, "")
		pos.FileCreated = pos.FileCreated || fileCreated
		return pos, err
	}
	if err != nil {
		return Position{}, err
	}

	pos := Position{
		Path:     doc.Path(),
		Date:     now,
		Location: doc.LocationAt(last.Entry.Offset),
	}
	if last.HasDay {
		pos.Day = last.Day.Title
		if day, ok := j.dayOf(doc.Path(), last.Day, now); ok {
			pos.Date = day
		}
	}
	return pos, nil
}

// dayOf resolves the calendar day of a day heading in the file at path. It
// matches the heading text against the days of near's year that belong in
// that file, then falls back to the heading's CREATED property. The result
// keeps near's clock.
func (j *Journal) dayOf(path string, h Heading, near time.Time) (time.Time, bool) {
	first := time.Date(near.Year(), time.January, 1, near.Hour(), near.Minute(), near.Second(), 0, near.Location())
	for d := first; d.Year() == first.Year(); d = d.AddDate(0, 0, 1) {
		if j.layout.DateKey(d) == h.Title && j.layout.MonthlyPath(d) == path {
			return d, true
		}
	}
	created, err := time.ParseInLocation(createdLayout, h.Properties["CREATED"], near.Location())
	if err != nil {
		return time.Time{}, false
	}
	return withClock(created, near), true
}

// MonthDays returns the days of month that have a day heading in their
// monthly file. It never creates files.
func (j *Journal) MonthDays(month time.Time) ([]int, error) {
	first := time.Date(month.Year(), month.Month(), 1, 12, 0, 0, 0, month.Location())
	outlines := make(map[string]map[string]bool)

	var days []int
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		path := j.layout.MonthlyPath(d)
		titles, ok := outlines[path]
		if !ok {
			data, err := os.ReadFile(path)
			switch {
			case errors.Is(err, os.ErrNotExist):
			case err != nil:
				return nil, fmt.Errorf("reading %s: %w", path, err)
			default:
				titles = ParseOutline(string(data)).Titles(dayLevel)
			}
			outlines[path] = titles
		}
		if titles[j.layout.DateKey(d)] {
			days = append(days, d.Day())
		}
	}
	return days, nil
}

// ReadDay returns the text of day's subtree, heading included. found is false
// when the monthly file or the heading does not exist. It never creates files.
func (j *Journal) ReadDay(day time.Time) (text string, found bool, err error) {
	path := j.layout.MonthlyPath(day)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", path, err)
	}
	content := string(data)
	h, ok := ParseOutline(content).FindLast(dayLevel, j.layout.DateKey(day))
	if !ok {
		return "", false, nil
	}
	return strings.TrimRight(content[h.Offset:h.End], "\n") + "\n", true, nil
}
