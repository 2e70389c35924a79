package journal

import (
	"testing"
	"time"
)

var refNow = time.Date(2025, time.June, 15, 9, 30, 0, 0, time.UTC)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"empty", "", refNow, false},
		{"today", "Today", refNow, false},
		{"yesterday", "yesterday", at(2025, time.June, 14, 9, 30), false},
		{"tomorrow", "tomorrow", at(2025, time.June, 16, 9, 30), false},
		{"unsigned offset counts back", "3d", at(2025, time.June, 12, 9, 30), false},
		{"negative week", "-1w", at(2025, time.June, 8, 9, 30), false},
		{"forward month", "+1m", at(2025, time.July, 15, 9, 30), false},
		{"ISO date keeps clock", "2025-01-02", at(2025, time.January, 2, 9, 30), false},
		{"invalid date", "2025-13-45", time.Time{}, true},
		{"wrong format", "15/06/2025", time.Time{}, true},
		{"bad unit", "5x", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input, refNow)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDay(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDay(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDay(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"clock only", "14:05", at(2025, time.June, 15, 14, 5), false},
		{"date and clock", "2025-06-01 07:45", at(2025, time.June, 1, 7, 45), false},
		{"RFC3339", "2025-06-01T07:45:00Z", at(2025, time.June, 1, 7, 45), false},
		{"day reference", "yesterday", at(2025, time.June, 14, 9, 30), false},
		{"garbage", "soon", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.input, refNow)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTime(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTime(%q) unexpected error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input string
		want  time.Month
		year  int
	}{
		{"", time.June, 2025},
		{"2024-02", time.February, 2024},
		{"-1m", time.May, 2025},
		{"2025-12-31", time.December, 2025},
	}
	for _, tt := range tests {
		got, err := ParseMonth(tt.input, refNow)
		if err != nil {
			t.Errorf("ParseMonth(%q) error = %v", tt.input, err)
			continue
		}
		if got.Month() != tt.want || got.Year() != tt.year || got.Day() != 1 {
			t.Errorf("ParseMonth(%q) = %v", tt.input, got)
		}
	}
	if _, err := ParseMonth("junio", refNow); err == nil {
		t.Error("expected error for unknown month")
	}
}
