package availability

import "time"

const (
	branchID uint = 1
	staffID  uint = 10
	otherID  uint = 11
)

// 2025-01-07 is a Tuesday.
var tuesday = time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC)

func ptrMinutes(s string) *Minutes {
	m := MustClock(s)
	return &m
}

func ptrDate(t time.Time) *time.Time { return &t }

func everyDay(id uint, open, close string) []WeeklyHours {
	rows := make([]WeeklyHours, 0, 7)
	for wd := 1; wd <= 7; wd++ {
		rows = append(rows, WeeklyHours{
			EntityID: id,
			Weekday:  wd,
			OpenAt:   MustClock(open),
			CloseAt:  MustClock(close),
			Active:   true,
		})
	}
	return rows
}

func branchCalendar(weekly []WeeklyHours, exceptions ...Exception) Calendar {
	return Calendar{Kind: EntityBranch, EntityID: branchID, Weekly: weekly, Exceptions: exceptions}
}

func staffCalendar(id uint, weekly []WeeklyHours, exceptions ...Exception) Calendar {
	return Calendar{Kind: EntityStaff, EntityID: id, Weekly: weekly, Exceptions: exceptions}
}

func mustOpen(at, until string) Window {
	w, err := Open(MustClock(at), MustClock(until))
	if err != nil {
		panic(err)
	}
	return w
}
