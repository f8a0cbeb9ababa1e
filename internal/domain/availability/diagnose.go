package availability

// Reason explains an empty range query. It is not an error.
type Reason string

const (
	ReasonNone                    Reason = ""
	ReasonLocationScheduleMissing Reason = "location_schedule_missing"
	ReasonLocationClosed          Reason = "location_closed"
	ReasonStaffScheduleMissing    Reason = "barber_schedule_missing"
	ReasonNoOverlap               Reason = "no_overlap"
)

func (r Reason) Message() string {
	switch r {
	case ReasonLocationScheduleMissing:
		return "No weekly hours are configured for this location."
	case ReasonLocationClosed:
		return "The location is closed on every requested day."
	case ReasonStaffScheduleMissing:
		return "No weekly hours are configured for the requested barbers."
	case ReasonNoOverlap:
		return "Location and barber hours do not overlap on the requested days."
	}
	return ""
}

// Diagnose explains why plans produced no slot at all. It returns ReasonNone
// as soon as any plan has a slot.
func Diagnose(branch Calendar, staff []Calendar, plans []DayPlan) Reason {
	branchOpen, staffOpen := false, false
	for _, p := range plans {
		if len(p.Slots) > 0 {
			return ReasonNone
		}
		if p.Branch.Window.IsOpen() {
			branchOpen = true
		}
		if p.Staff.Window.IsOpen() {
			staffOpen = true
		}
	}

	if !branchOpen {
		if !branch.HasWeeklyHours() && !anyClosedException(plans) {
			return ReasonLocationScheduleMissing
		}
		return ReasonLocationClosed
	}

	if staffOpen {
		return ReasonNoOverlap
	}
	for _, cal := range staff {
		if cal.HasWeeklyHours() {
			return ReasonNoOverlap
		}
	}
	return ReasonStaffScheduleMissing
}

func anyClosedException(plans []DayPlan) bool {
	for _, p := range plans {
		if p.Branch.Source == SourceClosedException {
			return true
		}
	}
	return false
}
