package availability

import (
	"fmt"
	"time"
)

// ===============================
// Entity / exception kinds
// ===============================

type EntityKind string

const (
	EntityBranch EntityKind = "BRANCH"
	EntityStaff  EntityKind = "STAFF"
)

type ExceptionKind string

const (
	ExceptionClosed       ExceptionKind = "CLOSED"
	ExceptionSpecialHours ExceptionKind = "SPECIAL_HOURS"
)

// ===============================
// Records read by the engine
// ===============================

// WeeklyHours is the regular open interval of one entity on one ISO weekday.
type WeeklyHours struct {
	EntityID uint
	Weekday  int
	OpenAt   Minutes
	CloseAt  Minutes
	Closed   bool
	Active   bool
}

func (w WeeklyHours) Validate() error {
	if !ValidWeekday(w.Weekday) {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, w.Weekday)
	}
	if !w.Closed && w.OpenAt >= w.CloseAt {
		return fmt.Errorf("%w: %s-%s", ErrInvalidInterval, w.OpenAt, w.CloseAt)
	}
	return nil
}

// Exception overrides the weekly schedule on every day of [DateStart, DateEnd].
// A nil DateEnd means the exception covers DateStart only.
type Exception struct {
	ID         uint
	EntityKind EntityKind
	EntityID   uint
	Kind       ExceptionKind
	DateStart  time.Time
	DateEnd    *time.Time
	OpenAt     *Minutes
	CloseAt    *Minutes
	Active     bool
}

func (e Exception) LastDay() time.Time {
	if e.DateEnd != nil {
		return *e.DateEnd
	}
	return e.DateStart
}

// Covers compares calendar days only; clock parts of the dates are ignored.
func (e Exception) Covers(date time.Time) bool {
	d := dayKey(date)
	return d >= dayKey(e.DateStart) && d <= dayKey(e.LastDay())
}

// OverlapsDays reports whether both exceptions share at least one calendar day.
func (e Exception) OverlapsDays(other Exception) bool {
	return dayKey(e.DateStart) <= dayKey(other.LastDay()) &&
		dayKey(other.DateStart) <= dayKey(e.LastDay())
}

func (e Exception) Validate() error {
	if e.DateEnd != nil && dayKey(*e.DateEnd) < dayKey(e.DateStart) {
		return fmt.Errorf("%w: exception ends before it starts", ErrInvalidRange)
	}
	if e.Kind == ExceptionSpecialHours {
		if e.OpenAt == nil || e.CloseAt == nil {
			return ErrMissingHours
		}
		if *e.OpenAt >= *e.CloseAt {
			return fmt.Errorf("%w: %s-%s", ErrInvalidInterval, *e.OpenAt, *e.CloseAt)
		}
	}
	return nil
}

// Break is a recurring unavailable span of a staff member on one weekday.
type Break struct {
	ID      uint
	StaffID uint
	Weekday int
	StartAt Minutes
	EndAt   Minutes
	Active  bool
}

func (b Break) Validate() error {
	if !ValidWeekday(b.Weekday) {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, b.Weekday)
	}
	if b.StartAt >= b.EndAt {
		return fmt.Errorf("%w: %s-%s", ErrInvalidInterval, b.StartAt, b.EndAt)
	}
	return nil
}

// Appointment is an existing booking. The engine never mutates it.
type Appointment struct {
	ID         uint
	StaffID    uint
	LocationID uint
	Start      time.Time
	End        time.Time
}

// Calendar is the caller-owned snapshot of one entity's schedule.
type Calendar struct {
	Kind       EntityKind
	EntityID   uint
	Weekly     []WeeklyHours
	Exceptions []Exception
}

// HasWeeklyHours reports whether any active weekly row exists.
func (c Calendar) HasWeeklyHours() bool {
	for _, w := range c.Weekly {
		if w.Active {
			return true
		}
	}
	return false
}
