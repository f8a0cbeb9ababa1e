package schedule

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/timezone"
)

// ExceptionInput creates an exception. Dates are YYYY-MM-DD; DateEnd empty
// means a single day.
type ExceptionInput struct {
	Kind      string
	BranchID  *uint
	BarberID  *uint
	DateStart string
	DateEnd   string
	OpenAt    string
	CloseAt   string
	Reason    string
	Active    *bool
}

// ExceptionPatch updates only the non-nil fields. An empty DateEnd clears it.
type ExceptionPatch struct {
	DateStart *string
	DateEnd   *string
	OpenAt    *string
	CloseAt   *string
	Reason    *string
	Active    *bool
}

type ExceptionQuery struct {
	BranchID *uint
	BarberID *uint
	From     string
	To       string
}

type Exceptions struct {
	deps
}

func NewExceptions(
	repo domain.Repository,
	rec audit.Recorder,
	c cache.AvailabilityCache,
	log *zap.Logger,
) *Exceptions {
	return &Exceptions{deps{repo: repo, audit: rec, cache: c, log: log.Named("schedule.exceptions")}}
}

func (uc *Exceptions) List(ctx context.Context, q ExceptionQuery) ([]models.ScheduleException, error) {
	f := domain.ExceptionFilter{BranchID: q.BranchID, BarberID: q.BarberID}

	if q.From != "" {
		from, err := timezone.ParseDay(q.From, time.UTC)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		f.From = &from
	}
	if q.To != "" {
		to, err := timezone.ParseDay(q.To, time.UTC)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	rows, err := uc.repo.ListExceptions(ctx, f)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.ScheduleException{}
	}
	return rows, nil
}

func (uc *Exceptions) Get(ctx context.Context, id uint) (*models.ScheduleException, error) {
	row, err := uc.repo.GetException(ctx, id)
	if err != nil {
		return nil, notFound(err, "exception_not_found")
	}
	return row, nil
}

func (uc *Exceptions) Create(ctx context.Context, in ExceptionInput, userID *uint) (*models.ScheduleException, error) {
	entityKind, _, ok := domain.KindOf(in.Kind)
	if !ok {
		return nil, httperr.ErrBusiness("invalid_kind")
	}

	row := models.ScheduleException{
		Kind:   in.Kind,
		Reason: in.Reason,
		Active: in.Active == nil || *in.Active,
	}

	// only the owner matching the kind is kept
	if entityKind == availability.EntityBranch {
		if in.BranchID == nil {
			return nil, httperr.ErrBusiness("branch_required")
		}
		row.BranchID = in.BranchID
	} else {
		if in.BarberID == nil {
			return nil, httperr.ErrBusiness("barber_required")
		}
		row.BarberID = in.BarberID
	}

	start, err := timezone.ParseDay(in.DateStart, time.UTC)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	row.DateStart = start

	if in.DateEnd != "" {
		end, err := timezone.ParseDay(in.DateEnd, time.UTC)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		row.DateEnd = &end
	}

	row.OpenAt = optional(in.OpenAt)
	row.CloseAt = optional(in.CloseAt)

	return uc.save(ctx, &row, userID, "exception_created")
}

func (uc *Exceptions) Update(ctx context.Context, id uint, patch ExceptionPatch, userID *uint) (*models.ScheduleException, error) {
	row, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.DateStart != nil {
		start, err := timezone.ParseDay(*patch.DateStart, time.UTC)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		row.DateStart = start
	}
	if patch.DateEnd != nil {
		row.DateEnd = nil
		if *patch.DateEnd != "" {
			end, err := timezone.ParseDay(*patch.DateEnd, time.UTC)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_date")
			}
			row.DateEnd = &end
		}
	}
	if patch.OpenAt != nil {
		row.OpenAt = optional(*patch.OpenAt)
	}
	if patch.CloseAt != nil {
		row.CloseAt = optional(*patch.CloseAt)
	}
	if patch.Reason != nil {
		row.Reason = *patch.Reason
	}
	if patch.Active != nil {
		row.Active = *patch.Active
	}

	return uc.save(ctx, row, userID, "exception_updated")
}

func (uc *Exceptions) Delete(ctx context.Context, id uint, userID *uint) error {
	row, err := uc.Get(ctx, id)
	if err != nil {
		return err
	}

	branchID, err := uc.ownerBranch(ctx, row)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteException(ctx, id); err != nil {
		return notFound(err, "exception_not_found")
	}

	uc.written(ctx, branchID, userID, "exception_deleted", "schedule_exception", id, nil)
	return nil
}

// ======================================================
// HELPERS
// ======================================================

func (uc *Exceptions) save(ctx context.Context, row *models.ScheduleException, userID *uint, action string) (*models.ScheduleException, error) {
	kind := exceptionKind(row.Kind)
	if kind == availability.ExceptionClosed {
		row.OpenAt, row.CloseAt = nil, nil
	}

	for _, s := range []*string{row.OpenAt, row.CloseAt} {
		if s == nil {
			continue
		}
		m, err := parseClock(*s)
		if err != nil {
			return nil, err
		}
		*s = m.String()
	}

	exc, err := domain.Exception(*row)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}
	if err := validationError(exc.Validate()); err != nil {
		return nil, err
	}

	branchID, err := uc.ownerBranch(ctx, row)
	if err != nil {
		return nil, err
	}

	if row.Active {
		if err := uc.checkOverlap(ctx, row, exc); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.SaveException(ctx, row); err != nil {
		return nil, err
	}

	uc.written(ctx, branchID, userID, action, "schedule_exception", row.ID, row)
	return row, nil
}

// checkOverlap rejects a second active exception of the same kind and owner
// sharing any day with exc.
func (uc *Exceptions) checkOverlap(ctx context.Context, row *models.ScheduleException, exc availability.Exception) error {
	f := domain.ExceptionFilter{BranchID: row.BranchID, BarberID: row.BarberID}
	from, to := exc.DateStart, exc.LastDay()
	f.From, f.To = &from, &to

	others, err := uc.repo.ListExceptions(ctx, f)
	if err != nil {
		return err
	}

	for _, o := range others {
		if o.ID == row.ID || !o.Active || o.Kind != row.Kind {
			continue
		}
		other, err := domain.Exception(o)
		if err != nil {
			uc.log.Warn("skipping unreadable exception", zap.Uint("exception_id", o.ID), zap.Error(err))
			continue
		}
		if exc.OverlapsDays(other) {
			return httperr.ErrBusiness("exception_overlap")
		}
	}
	return nil
}

func (uc *Exceptions) ownerBranch(ctx context.Context, row *models.ScheduleException) (*uint, error) {
	if row.BranchID != nil {
		return uc.branchOf(ctx, availability.EntityBranch, *row.BranchID)
	}
	if row.BarberID != nil {
		return uc.branchOf(ctx, availability.EntityStaff, *row.BarberID)
	}
	return nil, httperr.ErrBusiness("invalid_kind")
}

func exceptionKind(kind string) availability.ExceptionKind {
	_, k, _ := domain.KindOf(kind)
	return k
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
