package journal

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Location is a point in a document.
type Location struct {
	Offset int `json:"offset"` // byte offset from the start of the file
	Line   int `json:"line"`   // 1-based
	Column int `json:"column"` // 1-based, in characters
}

// Document is an in-memory copy of one monthly file. Edits stay in memory
// until Save.
type Document struct {
	path    string
	text    string
	sum     [sha256.Size]byte
	existed bool
}

// OpenDocument reads the file at path. A missing file yields an empty
// document that Save will create.
func OpenDocument(path string) (*Document, error) {
	d := &Document{path: path}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	default:
		d.existed = true
	}
	d.text = string(data)
	d.sum = sha256.Sum256(data)
	return d, nil
}

// Path returns the file the document was opened from.
func (d *Document) Path() string { return d.path }

// Text returns the current buffer contents.
func (d *Document) Text() string { return d.text }

// Exists reports whether the file was on disk when opened or last saved.
func (d *Document) Exists() bool { return d.existed }

// Dirty reports whether Save has anything to write.
func (d *Document) Dirty() bool {
	return !d.existed || sha256.Sum256([]byte(d.text)) != d.sum
}

// Save writes the buffer back to disk. It refuses with ErrModified when the
// file changed since it was opened, and is a no-op for an unchanged document.
func (d *Document) Save() error {
	if !d.Dirty() {
		return nil
	}

	current, err := os.ReadFile(d.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if d.existed {
			return fmt.Errorf("%w: %s was removed", ErrModified, d.path)
		}
	case err != nil:
		return fmt.Errorf("reading %s: %w", d.path, err)
	case !d.existed && len(current) > 0, d.existed && sha256.Sum256(current) != d.sum:
		return fmt.Errorf("%w: %s", ErrModified, d.path)
	}

	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(d.path), err)
	}
	data := []byte(d.text)
	if err := AtomicWrite(d.path, data); err != nil {
		return fmt.Errorf("writing %s: %w", d.path, err)
	}
	d.sum = sha256.Sum256(data)
	d.existed = true
	return nil
}

// AtomicWrite writes data to path using write-to-temp-then-rename.
func AtomicWrite(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// LocationAt converts a byte offset into a line and column. Offsets outside
// the buffer are clamped.
func (d *Document) LocationAt(offset int) Location {
	offset = max(0, min(offset, len(d.text)))
	before := d.text[:offset]
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Location{
		Offset: offset,
		Line:   strings.Count(before, "\n") + 1,
		Column: utf8.RuneCountInString(before[lineStart:]) + 1,
	}
}

// Insert places s at offset, clamped to the buffer.
func (d *Document) Insert(offset int, s string) {
	offset = max(0, min(offset, len(d.text)))
	d.text = d.text[:offset] + s + d.text[offset:]
}

// insertBlock inserts block at offset so that exactly one blank line
// separates it from the content before it and, when offset is not the end of
// the buffer, from the content after it. It returns the offset where block
// starts.
func (d *Document) insertBlock(offset int, block string) int {
	offset = max(0, min(offset, len(d.text)))
	before := d.text[:offset]

	var prefix string
	switch {
	case before == "", strings.HasSuffix(before, "\n\n"):
	case strings.HasSuffix(before, "\n"):
		prefix = "\n"
	default:
		prefix = "\n\n"
	}
	var suffix string
	if offset < len(d.text) {
		suffix = "\n"
	}

	d.Insert(offset, prefix+block+suffix)
	return offset + len(prefix)
}

// appendBlock adds block at the end of the buffer.
func (d *Document) appendBlock(block string) int {
	return d.insertBlock(len(d.text), block)
}
