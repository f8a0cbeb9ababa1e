package timezone

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var ErrEmptyDate = errors.New("date is empty")

var dateOnlyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// wall-clock layouts, tried in order
var friendlyLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000",
}

// ParsedDate keeps whether the caller gave a bare date, which callers read as
// "the whole day" when it closes a range.
type ParsedDate struct {
	Time     time.Time
	DateOnly bool
}

// ParseFriendly accepts YYYY-MM-DD, YYYY-MM-DD HH:mm[:ss],
// YYYY-MM-DDTHH:mm[:ss[.SSS]] (all wall clock in loc) or RFC3339.
func ParseFriendly(s string, loc *time.Location) (ParsedDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ParsedDate{}, ErrEmptyDate
	}

	if dateOnlyRe.MatchString(s) {
		t, err := time.ParseInLocation("2006-01-02", s, loc)
		if err != nil {
			return ParsedDate{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		return ParsedDate{Time: t, DateOnly: true}, nil
	}

	for _, layout := range friendlyLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return ParsedDate{Time: t}, nil
		}
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ParsedDate{Time: t.In(loc)}, nil
	}

	return ParsedDate{}, fmt.Errorf(
		"unrecognized date %q, use 2024-12-23, 2024-12-23 18:30 or 2024-12-23T18:30", s,
	)
}

// EndOfRange is the instant a range end means: a bare date runs to the last
// nanosecond of that day.
func (p ParsedDate) EndOfRange() time.Time {
	if !p.DateOnly {
		return p.Time
	}
	return p.Time.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// ParseDay parses a strict YYYY-MM-DD in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !dateOnlyRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD", s)
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}
