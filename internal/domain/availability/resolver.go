package availability

import "time"

// Source tells which rule produced a resolution.
type Source string

const (
	SourceClosedException Source = "closed_exception"
	SourceSpecialHours    Source = "special_hours"
	SourceWeekly          Source = "weekly"
	SourceWeeklyClosed    Source = "weekly_closed"
	SourceNoSchedule      Source = "no_schedule"
)

type Resolution struct {
	Window Window
	Source Source
}

// Resolve returns the effective window of cal's entity on date.
func Resolve(cal Calendar, date time.Time) Window {
	return ResolveDetail(cal, date).Window
}

// ResolveDetail applies, in order: a CLOSED exception covering the day,
// a SPECIAL_HOURS exception covering the day, the weekly row of the ISO
// weekday. Missing data resolves to closed, never to an error.
//
// Among several exceptions of the same kind covering the day, the first one
// in cal.Exceptions wins. Storage returns them ordered by start date and id.
func ResolveDetail(cal Calendar, date time.Time) Resolution {
	if _, ok := findException(cal, ExceptionClosed, date); ok {
		return Resolution{Window: Closed(), Source: SourceClosedException}
	}

	if exc, ok := findException(cal, ExceptionSpecialHours, date); ok {
		return Resolution{Window: window(*exc.OpenAt, *exc.CloseAt), Source: SourceSpecialHours}
	}

	wh, ok := findWeekly(cal, ISOWeekday(date))
	if !ok {
		return Resolution{Window: Closed(), Source: SourceNoSchedule}
	}
	if wh.Closed {
		return Resolution{Window: Closed(), Source: SourceWeeklyClosed}
	}
	return Resolution{Window: window(wh.OpenAt, wh.CloseAt), Source: SourceWeekly}
}

func findException(cal Calendar, kind ExceptionKind, date time.Time) (Exception, bool) {
	for _, exc := range cal.Exceptions {
		if !exc.Active || exc.Kind != kind || exc.EntityID != cal.EntityID {
			continue
		}
		if cal.Kind != "" && exc.EntityKind != cal.Kind {
			continue
		}
		// special hours without both bounds cannot describe a window
		if kind == ExceptionSpecialHours && (exc.OpenAt == nil || exc.CloseAt == nil) {
			continue
		}
		if exc.Covers(date) {
			return exc, true
		}
	}
	return Exception{}, false
}

func findWeekly(cal Calendar, weekday int) (WeeklyHours, bool) {
	for _, wh := range cal.Weekly {
		if wh.Active && wh.Weekday == weekday && wh.EntityID == cal.EntityID {
			return wh, true
		}
	}
	return WeeklyHours{}, false
}
