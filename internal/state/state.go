// Package state remembers the last day a command positioned the user on, so
// prev and next can step relative to it.
package state

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/orgjournal/internal/journal"
)

// State is the persisted navigation state.
type State struct {
	Day       string    `yaml:"day"` // YYYY-MM-DD
	Path      string    `yaml:"path"`
	Line      int       `yaml:"line"`
	Column    int       `yaml:"column"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Date parses Day in loc. ok is false when no day is recorded.
func (s State) Date(loc *time.Location) (time.Time, bool) {
	if s.Day == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(time.DateOnly, s.Day, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// Load reads the state file. A missing file yields the zero State.
func Load(path string) (State, error) {
	var s State
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("reading state %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("invalid state %s: %w", path, err)
	}
	return s, nil
}

// Record stores day and pos as the current position.
func Record(path string, day time.Time, pos journal.Position, now time.Time) error {
	s := State{
		Day:       day.Format(time.DateOnly),
		Path:      pos.Path,
		Line:      pos.Line,
		Column:    pos.Column,
		UpdatedAt: now.UTC().Truncate(time.Second),
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := journal.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}
