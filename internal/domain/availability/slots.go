package availability

import (
	"fmt"
	"iter"
	"time"
)

// Slot is one window of exactly the requested width.
type Slot struct {
	Start     time.Time
	End       time.Time
	StaffID   uint
	Available bool
}

// GenerateSlots walks w from its opening in steps of duration minutes.
// The step always equals the width, so grids of different services do not
// line up. A trailing candidate that would pass the closing time is dropped.
//
// Only breaks of date's weekday are considered. The returned sequence can be
// ranged over any number of times.
func GenerateSlots(
	date time.Time,
	w Window,
	duration int,
	staffID uint,
	breaks []Break,
	appointments []Appointment,
) (iter.Seq[Slot], error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, duration)
	}

	day := DateOnly(date)
	dayBreaks := BreaksOn(breaks, ISOWeekday(day))
	step := Minutes(duration)

	return func(yield func(Slot) bool) {
		if !w.IsOpen() {
			return
		}

		for cur := w.OpenAt(); cur+step <= w.CloseAt(); cur += step {
			start := cur.On(day)
			end := (cur + step).On(day)

			inBreak := OverlapsBreak(cur, cur+step, dayBreaks)
			booked := OverlapsAnyAppointment(start, end, staffID, appointments)

			slot := Slot{
				Start:     start,
				End:       end,
				StaffID:   staffID,
				Available: !inBreak && !booked,
			}
			if !yield(slot) {
				return
			}
		}
	}, nil
}

// CountSlots is floor(window length / duration).
func CountSlots(w Window, duration int) int {
	if duration <= 0 || !w.IsOpen() {
		return 0
	}
	return int(w.Length()) / duration
}
