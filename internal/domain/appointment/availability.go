package appointment

import (
	"time"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
)

// Booking is the snapshot a new appointment is checked against.
type Booking struct {
	Branch       availability.Calendar
	Barber       availability.Calendar
	Breaks       []availability.Break
	Appointments []availability.Appointment
}

// CheckFits returns nil when [start, end) lies inside the barber's resolved
// window for that day, clear of breaks and of the barber's appointments.
func CheckFits(b Booking, start, end time.Time) error {
	if !start.Before(end) {
		return httperr.ErrBusiness("invalid_duration")
	}
	if !availability.DateOnly(start).Equal(availability.DateOnly(end.Add(-time.Nanosecond))) {
		return httperr.ErrBusiness("outside_working_hours")
	}

	w := availability.Intersect(
		availability.Resolve(b.Branch, start),
		availability.Resolve(b.Barber, start),
	)
	if !w.IsOpen() {
		return httperr.ErrBusiness("outside_working_hours")
	}

	from := availability.MinuteOfDay(start)
	until := from + availability.Minutes(end.Sub(start)/time.Minute)
	if from < w.OpenAt() || until > w.CloseAt() {
		return httperr.ErrBusiness("outside_working_hours")
	}

	dayBreaks := availability.BreaksOn(b.Breaks, availability.ISOWeekday(start))
	if availability.OverlapsBreak(from, until, dayBreaks) {
		return httperr.ErrBusiness("during_break")
	}

	if availability.OverlapsAnyAppointment(start, end, b.Barber.EntityID, b.Appointments) {
		return httperr.ErrBusiness("time_conflict")
	}
	return nil
}
