package availability

import "time"

// Overlaps is the overlap rule shared by breaks and appointments.
// A candidate that only touches the other interval's boundary is free.
func Overlaps(candStart, candEnd, otherStart, otherEnd Minutes) bool {
	return (candStart >= otherStart && candStart < otherEnd) ||
		(candEnd > otherStart && candEnd <= otherEnd) ||
		(candStart <= otherStart && candEnd >= otherEnd)
}

// overlapsInstant is Overlaps on absolute instants.
func overlapsInstant(candStart, candEnd, otherStart, otherEnd time.Time) bool {
	return (!candStart.Before(otherStart) && candStart.Before(otherEnd)) ||
		(candEnd.After(otherStart) && !candEnd.After(otherEnd)) ||
		(!candStart.After(otherStart) && !candEnd.Before(otherEnd))
}

// ===============================
// Break filter
// ===============================

// BreaksOn keeps the active breaks of one ISO weekday.
func BreaksOn(breaks []Break, weekday int) []Break {
	var out []Break
	for _, b := range breaks {
		if b.Active && b.Weekday == weekday {
			out = append(out, b)
		}
	}
	return out
}

// OverlapsBreak tests [start, end) against breaks already narrowed to the day.
func OverlapsBreak(start, end Minutes, breaks []Break) bool {
	for _, b := range breaks {
		if Overlaps(start, end, b.StartAt, b.EndAt) {
			return true
		}
	}
	return false
}

// ===============================
// Conflict checker
// ===============================

// OverlapsAnyAppointment ignores appointments of other staff members.
func OverlapsAnyAppointment(start, end time.Time, staffID uint, appointments []Appointment) bool {
	for _, ap := range appointments {
		if ap.StaffID != staffID {
			continue
		}
		if overlapsInstant(start, end, ap.Start, ap.End) {
			return true
		}
	}
	return false
}
