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

// ======================================================
// INPUT
// ======================================================

// WeeklyHoursInput describes one weekday row. OpenAt/CloseAt may be empty
// when Closed is set.
type WeeklyHoursInput struct {
	Weekday int
	OpenAt  string
	CloseAt string
	Closed  bool
	Active  *bool
}

// WeeklyHoursPatch updates only the non-nil fields.
type WeeklyHoursPatch struct {
	Weekday *int
	OpenAt  *string
	CloseAt *string
	Closed  *bool
	Active  *bool
}

// WeeklyRow is a branch or barber weekly row, whichever kind was asked for.
type WeeklyRow struct {
	ID       uint   `json:"id"`
	EntityID uint   `json:"entity_id"`
	Weekday  int    `json:"weekday"`
	OpenAt   string `json:"open_at"`
	CloseAt  string `json:"close_at"`
	Closed   bool   `json:"closed"`
	Active   bool   `json:"active"`
}

// ======================================================
// USE CASE
// ======================================================

type WeeklyHours struct {
	deps
}

func NewWeeklyHours(
	repo domain.Repository,
	rec audit.Recorder,
	c cache.AvailabilityCache,
	log *zap.Logger,
) *WeeklyHours {
	return &WeeklyHours{deps{repo: repo, audit: rec, cache: c, log: log.Named("schedule.weekly")}}
}

func (uc *WeeklyHours) List(ctx context.Context, kind availability.EntityKind, entityID uint) ([]WeeklyRow, error) {
	if _, err := uc.branchOf(ctx, kind, entityID); err != nil {
		return nil, err
	}

	out := []WeeklyRow{}
	if kind == availability.EntityBranch {
		rows, err := uc.repo.ListBranchHours(ctx, entityID)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out = append(out, WeeklyRow{r.ID, r.BranchID, r.Weekday, r.OpenAt, r.CloseAt, r.Closed, r.Active})
		}
		return out, nil
	}

	rows, err := uc.repo.ListBarberHours(ctx, entityID)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out = append(out, WeeklyRow{r.ID, r.BarberID, r.Weekday, r.StartAt, r.EndAt, r.Closed, r.Active})
	}
	return out, nil
}

func (uc *WeeklyHours) Create(
	ctx context.Context,
	kind availability.EntityKind,
	entityID uint,
	in WeeklyHoursInput,
	userID *uint,
) (*WeeklyRow, error) {

	branchID, err := uc.branchOf(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}

	row := WeeklyRow{
		EntityID: entityID,
		Weekday:  in.Weekday,
		OpenAt:   in.OpenAt,
		CloseAt:  in.CloseAt,
		Closed:   in.Closed,
		Active:   in.Active == nil || *in.Active,
	}

	if err := uc.save(ctx, kind, &row); err != nil {
		return nil, err
	}

	uc.written(ctx, branchID, userID, "weekly_hours_created", entityName(kind), row.ID, row)
	return &row, nil
}

func (uc *WeeklyHours) Update(
	ctx context.Context,
	kind availability.EntityKind,
	id uint,
	patch WeeklyHoursPatch,
	userID *uint,
) (*WeeklyRow, error) {

	row, err := uc.get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	if patch.Weekday != nil {
		row.Weekday = *patch.Weekday
	}
	if patch.OpenAt != nil {
		row.OpenAt = *patch.OpenAt
	}
	if patch.CloseAt != nil {
		row.CloseAt = *patch.CloseAt
	}
	if patch.Closed != nil {
		row.Closed = *patch.Closed
	}
	if patch.Active != nil {
		row.Active = *patch.Active
	}

	if err := uc.save(ctx, kind, row); err != nil {
		return nil, err
	}

	branchID, err := uc.branchOf(ctx, kind, row.EntityID)
	if err != nil {
		return nil, err
	}
	uc.written(ctx, branchID, userID, "weekly_hours_updated", entityName(kind), row.ID, row)
	return row, nil
}

func (uc *WeeklyHours) Delete(ctx context.Context, kind availability.EntityKind, id uint, userID *uint) error {
	row, err := uc.get(ctx, kind, id)
	if err != nil {
		return err
	}

	if kind == availability.EntityBranch {
		err = uc.repo.DeleteBranchHours(ctx, id)
	} else {
		err = uc.repo.DeleteBarberHours(ctx, id)
	}
	if err != nil {
		return notFound(err, "weekly_hours_not_found")
	}

	branchID, err := uc.branchOf(ctx, kind, row.EntityID)
	if err != nil {
		return err
	}
	uc.written(ctx, branchID, userID, "weekly_hours_deleted", entityName(kind), id, nil)
	return nil
}

// ======================================================
// HELPERS
// ======================================================

func (uc *WeeklyHours) get(ctx context.Context, kind availability.EntityKind, id uint) (*WeeklyRow, error) {
	if kind == availability.EntityBranch {
		r, err := uc.repo.GetBranchHours(ctx, id)
		if err != nil {
			return nil, notFound(err, "weekly_hours_not_found")
		}
		return &WeeklyRow{r.ID, r.BranchID, r.Weekday, r.OpenAt, r.CloseAt, r.Closed, r.Active}, nil
	}

	r, err := uc.repo.GetBarberHours(ctx, id)
	if err != nil {
		return nil, notFound(err, "weekly_hours_not_found")
	}
	return &WeeklyRow{r.ID, r.BarberID, r.Weekday, r.StartAt, r.EndAt, r.Closed, r.Active}, nil
}

// save validates row, enforces one active row per weekday and persists it.
func (uc *WeeklyHours) save(ctx context.Context, kind availability.EntityKind, row *WeeklyRow) error {
	if err := validateWeekly(row); err != nil {
		return err
	}

	existing, err := uc.List(ctx, kind, row.EntityID)
	if err != nil {
		return err
	}
	if row.Active {
		for _, other := range existing {
			if other.ID != row.ID && other.Active && other.Weekday == row.Weekday {
				return httperr.ErrBusiness("weekly_hours_exists")
			}
		}
	}

	if kind == availability.EntityBranch {
		m := models.BranchHours{
			ID: row.ID, BranchID: row.EntityID, Weekday: row.Weekday,
			OpenAt: row.OpenAt, CloseAt: row.CloseAt, Closed: row.Closed, Active: row.Active,
		}
		if err := uc.repo.SaveBranchHours(ctx, &m); err != nil {
			return err
		}
		row.ID = m.ID
		return nil
	}

	m := models.BarberHours{
		ID: row.ID, BarberID: row.EntityID, Weekday: row.Weekday,
		StartAt: row.OpenAt, EndAt: row.CloseAt, Closed: row.Closed, Active: row.Active,
	}
	if err := uc.repo.SaveBarberHours(ctx, &m); err != nil {
		return err
	}
	row.ID = m.ID
	return nil
}

func validateWeekly(row *WeeklyRow) error {
	w := availability.WeeklyHours{Weekday: row.Weekday, Closed: row.Closed}

	if row.Closed && row.OpenAt == "" && row.CloseAt == "" {
		return validationError(w.Validate())
	}

	var err error
	if w.OpenAt, err = parseClock(row.OpenAt); err != nil {
		return err
	}
	if w.CloseAt, err = parseClock(row.CloseAt); err != nil {
		return err
	}

	// stored canonical
	row.OpenAt, row.CloseAt = w.OpenAt.String(), w.CloseAt.String()
	return validationError(w.Validate())
}

func entityName(kind availability.EntityKind) string {
	if kind == availability.EntityBranch {
		return "branch_hours"
	}
	return "barber_hours"
}
