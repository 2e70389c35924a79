package journal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// offsetRegex matches relative offsets like "3d", "-1w", "+2m".
var offsetRegex = regexp.MustCompile(`^([+-]?)(\d+)([dwm])$`)

// ParseDay resolves a day reference relative to now. The result keeps now's
// clock time. Accepts:
//   - "" and "today", "yesterday", "tomorrow"
//   - Offsets: "3d", "-1w", "+2m" (unsigned offsets count backwards)
//   - Dates: "2025-06-15"
func ParseDay(value string, now time.Time) (time.Time, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch v {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	}

	if matches := offsetRegex.FindStringSubmatch(v); len(matches) == 4 {
		return applyOffset(now, matches[1], matches[2], matches[3])
	}

	if d, err := time.ParseInLocation(time.DateOnly, v, now.Location()); err == nil {
		return withClock(d, now), nil
	}

	return time.Time{}, fmt.Errorf("invalid day %q; use today, yesterday, an offset (-3d, +1w) or a date (2025-06-15)", value)
}

// ParseTime resolves an entry timestamp. Besides everything ParseDay
// accepts, it takes "15:04", "2025-06-15 15:04" and RFC 3339.
func ParseTime(value string, now time.Time) (time.Time, error) {
	v := strings.TrimSpace(value)
	if c, err := time.ParseInLocation("15:04", v, now.Location()); err == nil {
		return time.Date(now.Year(), now.Month(), now.Day(), c.Hour(), c.Minute(), 0, 0, now.Location()), nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", v, now.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.In(now.Location()), nil
	}
	if t, err := ParseDay(v, now); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q; use 15:04, 2025-06-15 15:04, RFC 3339 or a day reference", value)
}

// ParseMonth resolves a month reference: "" for now's month, "2025-06", or
// anything ParseDay accepts.
func ParseMonth(value string, now time.Time) (time.Time, error) {
	v := strings.TrimSpace(value)
	if m, err := time.ParseInLocation("2006-01", v, now.Location()); err == nil {
		return time.Date(m.Year(), m.Month(), 1, 12, 0, 0, 0, now.Location()), nil
	}
	d, err := ParseDay(v, now)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q; use 2025-06 or a day reference", value)
	}
	return time.Date(d.Year(), d.Month(), 1, 12, 0, 0, 0, d.Location()), nil
}

func applyOffset(now time.Time, sign, numStr, unit string) (time.Time, error) {
	num, err := strconv.Atoi(numStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid offset number: %s", numStr)
	}
	if sign != "+" {
		num = -num
	}

	switch unit {
	case "d":
		return now.AddDate(0, 0, num), nil
	case "w":
		return now.AddDate(0, 0, num*7), nil
	case "m":
		return now.AddDate(0, num, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown offset unit: %s", unit)
	}
}

func withClock(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, clock.Location())
}
