package schedule

import (
	"fmt"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

// ===============================
// Exception kinds
// ===============================

// KindOf splits a stored exception kind into the entity it targets and the
// override it applies.
func KindOf(kind string) (availability.EntityKind, availability.ExceptionKind, bool) {
	switch kind {
	case models.ExceptionBranchClosed:
		return availability.EntityBranch, availability.ExceptionClosed, true
	case models.ExceptionBranchSpecialHours:
		return availability.EntityBranch, availability.ExceptionSpecialHours, true
	case models.ExceptionBarberAbsent:
		return availability.EntityStaff, availability.ExceptionClosed, true
	case models.ExceptionBarberSpecialHours:
		return availability.EntityStaff, availability.ExceptionSpecialHours, true
	}
	return "", "", false
}

// ===============================
// Model -> engine
// ===============================

func BranchWeekly(row models.BranchHours) (availability.WeeklyHours, error) {
	return weekly(row.BranchID, row.Weekday, row.OpenAt, row.CloseAt, row.Closed, row.Active)
}

func BarberWeekly(row models.BarberHours) (availability.WeeklyHours, error) {
	return weekly(row.BarberID, row.Weekday, row.StartAt, row.EndAt, row.Closed, row.Active)
}

func weekly(entityID uint, weekday int, open, close string, closed, active bool) (availability.WeeklyHours, error) {
	w := availability.WeeklyHours{
		EntityID: entityID,
		Weekday:  weekday,
		Closed:   closed,
		Active:   active,
	}
	if closed && open == "" && close == "" {
		return w, nil
	}

	var err error
	if w.OpenAt, err = availability.ParseClock(open); err != nil {
		return w, err
	}
	if w.CloseAt, err = availability.ParseClock(close); err != nil {
		return w, err
	}
	return w, nil
}

func Exception(row models.ScheduleException) (availability.Exception, error) {
	entityKind, kind, ok := KindOf(row.Kind)
	if !ok {
		return availability.Exception{}, fmt.Errorf("schedule: unknown exception kind %q", row.Kind)
	}

	exc := availability.Exception{
		ID:         row.ID,
		EntityKind: entityKind,
		Kind:       kind,
		DateStart:  row.DateStart,
		DateEnd:    row.DateEnd,
		Active:     row.Active,
	}

	var owner *uint
	if entityKind == availability.EntityBranch {
		owner = row.BranchID
	} else {
		owner = row.BarberID
	}
	if owner == nil {
		return exc, fmt.Errorf("schedule: exception %d has no %s", row.ID, entityKind)
	}
	exc.EntityID = *owner

	if exc.OpenAt, ok = optionalClock(row.OpenAt); !ok {
		return exc, fmt.Errorf("schedule: exception %d open_at %q", row.ID, *row.OpenAt)
	}
	if exc.CloseAt, ok = optionalClock(row.CloseAt); !ok {
		return exc, fmt.Errorf("schedule: exception %d close_at %q", row.ID, *row.CloseAt)
	}
	return exc, nil
}

func optionalClock(s *string) (*availability.Minutes, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	m, err := availability.ParseClock(*s)
	if err != nil {
		return nil, false
	}
	return &m, true
}

func Break(row models.BarberBreak) (availability.Break, error) {
	start, err := availability.ParseClock(row.StartAt)
	if err != nil {
		return availability.Break{}, err
	}
	end, err := availability.ParseClock(row.EndAt)
	if err != nil {
		return availability.Break{}, err
	}
	return availability.Break{
		ID:      row.ID,
		StaffID: row.BarberID,
		Weekday: row.Weekday,
		StartAt: start,
		EndAt:   end,
		Active:  row.Active,
	}, nil
}

func Appointment(row models.Appointment) availability.Appointment {
	return availability.Appointment{
		ID:         row.ID,
		StaffID:    row.BarberID,
		LocationID: row.BranchID,
		Start:      row.StartTime,
		End:        row.EndTime,
	}
}
