package schedule

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

type BreakInput struct {
	Weekday int
	StartAt string
	EndAt   string
	Reason  string
	Active  *bool
}

type BreakPatch struct {
	Weekday *int
	StartAt *string
	EndAt   *string
	Reason  *string
	Active  *bool
}

type Breaks struct {
	deps
}

func NewBreaks(
	repo domain.Repository,
	rec audit.Recorder,
	c cache.AvailabilityCache,
	log *zap.Logger,
) *Breaks {
	return &Breaks{deps{repo: repo, audit: rec, cache: c, log: log.Named("schedule.breaks")}}
}

func (uc *Breaks) List(ctx context.Context, barberID uint, weekday *int) ([]models.BarberBreak, error) {
	if _, err := uc.branchOf(ctx, availability.EntityStaff, barberID); err != nil {
		return nil, err
	}
	if weekday != nil && !availability.ValidWeekday(*weekday) {
		return nil, httperr.ErrBusiness("invalid_weekday")
	}

	rows, err := uc.repo.ListBreaks(ctx, barberID, weekday)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.BarberBreak{}
	}
	return rows, nil
}

func (uc *Breaks) Create(ctx context.Context, barberID uint, in BreakInput, userID *uint) (*models.BarberBreak, error) {
	row := models.BarberBreak{
		BarberID: barberID,
		Weekday:  in.Weekday,
		StartAt:  in.StartAt,
		EndAt:    in.EndAt,
		Reason:   in.Reason,
		Active:   in.Active == nil || *in.Active,
	}
	return uc.save(ctx, &row, userID, "break_created")
}

func (uc *Breaks) Update(ctx context.Context, id uint, patch BreakPatch, userID *uint) (*models.BarberBreak, error) {
	row, err := uc.repo.GetBreak(ctx, id)
	if err != nil {
		return nil, notFound(err, "break_not_found")
	}

	if patch.Weekday != nil {
		row.Weekday = *patch.Weekday
	}
	if patch.StartAt != nil {
		row.StartAt = *patch.StartAt
	}
	if patch.EndAt != nil {
		row.EndAt = *patch.EndAt
	}
	if patch.Reason != nil {
		row.Reason = *patch.Reason
	}
	if patch.Active != nil {
		row.Active = *patch.Active
	}

	return uc.save(ctx, row, userID, "break_updated")
}

func (uc *Breaks) Delete(ctx context.Context, id uint, userID *uint) error {
	row, err := uc.repo.GetBreak(ctx, id)
	if err != nil {
		return notFound(err, "break_not_found")
	}

	branchID, err := uc.branchOf(ctx, availability.EntityStaff, row.BarberID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteBreak(ctx, id); err != nil {
		return notFound(err, "break_not_found")
	}

	uc.written(ctx, branchID, userID, "break_deleted", "barber_break", id, nil)
	return nil
}

func (uc *Breaks) save(ctx context.Context, row *models.BarberBreak, userID *uint, action string) (*models.BarberBreak, error) {
	branchID, err := uc.branchOf(ctx, availability.EntityStaff, row.BarberID)
	if err != nil {
		return nil, err
	}

	start, err := parseClock(row.StartAt)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(row.EndAt)
	if err != nil {
		return nil, err
	}
	row.StartAt, row.EndAt = start.String(), end.String()

	brk := availability.Break{ID: row.ID, StaffID: row.BarberID, Weekday: row.Weekday, StartAt: start, EndAt: end, Active: row.Active}
	if err := validationError(brk.Validate()); err != nil {
		return nil, err
	}

	if row.Active {
		weekday := row.Weekday
		others, err := uc.repo.ListBreaks(ctx, row.BarberID, &weekday)
		if err != nil {
			return nil, err
		}
		for _, o := range others {
			if o.ID == row.ID || !o.Active || o.Weekday != row.Weekday {
				continue
			}
			other, err := domain.Break(o)
			if err != nil {
				continue
			}
			if availability.Overlaps(start, end, other.StartAt, other.EndAt) {
				return nil, httperr.ErrBusiness("break_overlap")
			}
		}
	}

	if err := uc.repo.SaveBreak(ctx, row); err != nil {
		return nil, err
	}

	uc.written(ctx, branchID, userID, action, "barber_break", row.ID, row)
	return row, nil
}
