package schedule

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/cache"
)

// deps is what every schedule use case carries.
type deps struct {
	repo  domain.Repository
	audit audit.Recorder
	cache cache.AvailabilityCache
	log   *zap.Logger
}

func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// validationError maps engine validation sentinels to business codes.
func validationError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, availability.ErrInvalidWeekday):
		return httperr.ErrBusiness("invalid_weekday")
	case errors.Is(err, availability.ErrInvalidInterval):
		return httperr.ErrBusiness("invalid_interval")
	case errors.Is(err, availability.ErrInvalidRange):
		return httperr.ErrBusiness("invalid_range")
	case errors.Is(err, availability.ErrMissingHours):
		return httperr.ErrBusiness("hours_required")
	}
	return err
}

func parseClock(s string) (availability.Minutes, error) {
	m, err := availability.ParseClock(s)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	return m, nil
}

// branchOf returns the branch whose cached availability an entity write
// affects, nil when a barber is not bound to any.
func (d deps) branchOf(ctx context.Context, kind availability.EntityKind, id uint) (*uint, error) {
	if kind == availability.EntityBranch {
		branch, err := d.repo.GetBranch(ctx, id)
		if err != nil {
			return nil, notFound(err, "branch_not_found")
		}
		return &branch.ID, nil
	}

	barber, err := d.repo.GetBarber(ctx, id)
	if err != nil {
		return nil, notFound(err, "barber_not_found")
	}
	return barber.BranchID, nil
}

// written audits a write and drops the cached availability of the branch.
func (d deps) written(ctx context.Context, branchID *uint, userID *uint, action, entity string, entityID uint, meta any) {
	d.audit.Dispatch(audit.Event{
		BranchID: branchID,
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
		Metadata: meta,
	})

	if branchID == nil {
		return
	}
	if err := d.cache.Invalidate(ctx, *branchID); err != nil {
		d.log.Warn("availability cache invalidation failed", zap.Uint("branch_id", *branchID), zap.Error(err))
	}
}
