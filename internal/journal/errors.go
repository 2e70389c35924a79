package journal

import "errors"

var (
	// ErrNoEntries is returned by FindLastEntry when a file has no entry heading.
	ErrNoEntries = errors.New("no journal entries found")

	// ErrModified is returned by Document.Save when the file changed on disk
	// after it was opened.
	ErrModified = errors.New("journal file changed on disk")

	// ErrLayout is returned when the configured formats cannot produce a
	// usable journal layout.
	ErrLayout = errors.New("invalid journal layout")
)
