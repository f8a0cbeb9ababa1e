package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Minutes is a wall-clock instant inside one day, counted from midnight.
type Minutes int

const MinutesPerDay Minutes = 24 * 60

// ParseClock accepts "HH:MM" and "HH:MM:SS" (seconds are ignored).
// "24:00" is accepted so a window can close at midnight.
func ParseClock(s string) (Minutes, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}

	if hour < 0 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid clock %q", s)
	}

	m := Minutes(hour*60 + minute)
	if m > MinutesPerDay {
		return 0, fmt.Errorf("invalid clock %q", s)
	}
	return m, nil
}

// MustClock is ParseClock for literals known to be valid.
func MustClock(s string) Minutes {
	m, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Minutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// On places m on the calendar day of date, in date's location.
func (m Minutes) On(date time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		int(m)/60, int(m)%60, 0, 0,
		date.Location(),
	)
}

// MinuteOfDay is the wall-clock minute of t.
func MinuteOfDay(t time.Time) Minutes {
	return Minutes(t.Hour()*60 + t.Minute())
}

// ISOWeekday maps time.Weekday (Sunday = 0) to 1 = Monday ... 7 = Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func ValidWeekday(wd int) bool {
	return wd >= 1 && wd <= 7
}

// DateOnly truncates t to midnight of its own calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dayKey compares calendar days independently of location and clock.
func dayKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// Days lists every calendar day from start's day through end, inclusive.
func Days(start, end time.Time) []time.Time {
	var days []time.Time
	last := dayKey(end)
	for d := DateOnly(start); dayKey(d) <= last; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
