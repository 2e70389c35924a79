package journal

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorewood/orgjournal/internal/config"
)

func TestLayout_Defaults(t *testing.T) {
	cfg := testConfig(t)
	l, err := NewLayout(cfg)
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}
	ts := at(2025, time.June, 15, 9, 30)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"monthly path", l.MonthlyPath(ts), filepath.Join(cfg.Directory, "2025-06.org")},
		{"title", l.Title(ts), "#+TITLE: Journal 2025-06"},
		{"date key", l.DateKey(ts), "Sunday, 15 June"},
		{"time key", l.TimeKey(ts), "0930"},
		{"time key afternoon", l.TimeKey(at(2025, time.June, 15, 14, 5)), "1405"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestLayout_SameMonthSamePath(t *testing.T) {
	l, err := NewLayout(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	if l.MonthlyPath(at(2025, time.June, 1, 0, 0)) != l.MonthlyPath(at(2025, time.June, 30, 23, 59)) {
		t.Error("days of one month should share a file")
	}
	if l.MonthlyPath(at(2025, time.June, 30, 0, 0)) == l.MonthlyPath(at(2025, time.July, 1, 0, 0)) {
		t.Error("different months should not share a file")
	}
}

func TestNewLayout_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "unknown verb", mutate: func(c *config.Config) { c.DateHeadingFormat = "%Q %d" }, wantErr: true},
		{name: "stray percent", mutate: func(c *config.Config) { c.TimeHeadingFormat = "%H%" }, wantErr: true},
		{name: "empty date", mutate: func(c *config.Config) { c.DateHeadingFormat = "  " }, wantErr: true},
		{name: "weekday only repeats within month", mutate: func(c *config.Config) { c.DateHeadingFormat = "%A" }, wantErr: true},
		{name: "day of month is unique per month", mutate: func(c *config.Config) { c.DateHeadingFormat = "%d" }},
		{name: "single file needs the year", mutate: func(c *config.Config) {
			c.FileNameFormat = "journal.org"
			c.DateHeadingFormat = "%d %B"
		}, wantErr: true},
		{name: "single file with full date", mutate: func(c *config.Config) {
			c.FileNameFormat = "journal.org"
			c.DateHeadingFormat = "%F"
		}},
		{name: "yearly file", mutate: func(c *config.Config) {
			c.FileNameFormat = "%Y.org"
			c.DateHeadingFormat = "%A, %d %B"
		}},
		{name: "no title", mutate: func(c *config.Config) { c.TitleFormat = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			tt.mutate(&cfg)
			_, err := NewLayout(cfg)
			if tt.wantErr {
				if !errors.Is(err, ErrLayout) {
					t.Errorf("NewLayout() error = %v, want ErrLayout", err)
				}
				return
			}
			if err != nil {
				t.Errorf("NewLayout() error = %v", err)
			}
		})
	}
}

func TestLayout_DateKeyTrimsPadding(t *testing.T) {
	cfg := testConfig(t)
	cfg.DateHeadingFormat = "%e %B"
	layout, err := NewLayout(cfg)
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}
	if got := layout.DateKey(time.Date(2025, time.June, 5, 9, 0, 0, 0, time.UTC)); got != "5 June" {
		t.Errorf("DateKey() = %q, want %q", got, "5 June")
	}
}
