package availability

import (
	"slices"
	"time"
)

// DayInput is everything needed to plan one (date, staff member) pair.
type DayInput struct {
	Date         time.Time
	Branch       Calendar
	Staff        Calendar
	Breaks       []Break
	Appointments []Appointment
	Duration     int
}

type DayPlan struct {
	Date   time.Time
	Branch Resolution
	Staff  Resolution
	Window Window
	Slots  []Slot
}

// PlanDay is the single place where resolution, intersection and slot
// generation are chained. Both the service range query and the staff-only
// query call it.
func PlanDay(in DayInput) (DayPlan, error) {
	plan := DayPlan{
		Date:   DateOnly(in.Date),
		Branch: ResolveDetail(in.Branch, in.Date),
		Staff:  ResolveDetail(in.Staff, in.Date),
	}
	plan.Window = Intersect(plan.Branch.Window, plan.Staff.Window)

	seq, err := GenerateSlots(in.Date, plan.Window, in.Duration, in.Staff.EntityID, in.Breaks, in.Appointments)
	if err != nil {
		return DayPlan{}, err
	}
	plan.Slots = slices.Collect(seq)

	return plan, nil
}

// RangeInput plans one staff member over every day of [Start, End].
type RangeInput struct {
	Start        time.Time
	End          time.Time
	Branch       Calendar
	Staff        Calendar
	Breaks       []Break
	Appointments []Appointment
	Duration     int
}

func PlanRange(in RangeInput) ([]DayPlan, error) {
	if !in.Start.Before(in.End) {
		return nil, ErrInvalidRange
	}

	days := Days(in.Start, in.End)
	plans := make([]DayPlan, 0, len(days))
	for _, day := range days {
		plan, err := PlanDay(DayInput{
			Date:         day,
			Branch:       in.Branch,
			Staff:        in.Staff,
			Breaks:       in.Breaks,
			Appointments: in.Appointments,
			Duration:     in.Duration,
		})
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}
