package schedule

import (
	"context"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/timezone"
)

// ResolveDay answers which window applies to a branch or barber on one date,
// and which rule produced it.
type ResolveDay struct {
	repo availability.Repository
}

func NewResolveDay(repo availability.Repository) *ResolveDay {
	return &ResolveDay{repo: repo}
}

func (uc *ResolveDay) Execute(ctx context.Context, kind availability.EntityKind, id uint, date string) (*dto.ResolvedDayDTO, error) {
	tz := timezone.Default()

	if kind == availability.EntityBranch {
		branch, err := uc.repo.GetBranch(ctx, id)
		if err != nil {
			return nil, notFound(err, "branch_not_found")
		}
		tz = branch.Timezone
	} else {
		barber, err := uc.repo.GetBarber(ctx, id)
		if err != nil {
			return nil, notFound(err, "barber_not_found")
		}
		if barber.BranchID != nil {
			if branch, err := uc.repo.GetBranch(ctx, *barber.BranchID); err == nil {
				tz = branch.Timezone
			}
		}
	}

	day, err := timezone.ParseDay(date, timezone.Location(tz))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	cal, err := uc.repo.LoadCalendar(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	res := availability.ResolveDetail(cal, day)

	out := &dto.ResolvedDayDTO{
		Date:    day.Format("2006-01-02"),
		Weekday: availability.ISOWeekday(day),
		Open:    res.Window.IsOpen(),
		Source:  string(res.Source),
	}
	if res.Window.IsOpen() {
		out.OpenAt = res.Window.OpenAt().String()
		out.CloseAt = res.Window.CloseAt().String()
	}
	return out, nil
}
