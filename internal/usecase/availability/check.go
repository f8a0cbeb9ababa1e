package availability

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/metrics"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CheckAvailabilityInput struct {
	ServiceID uint
	BranchID  uint
	DateStart string
	DateEnd   string
	BarberID  *uint
}

// ======================================================
// USE CASE
// ======================================================

// CheckAvailability lists every slot of a service for one branch over a date
// range, for one barber or for all active barbers of the branch.
type CheckAvailability struct {
	repo  domain.Repository
	cache cache.AvailabilityCache
	log   *zap.Logger
}

func NewCheckAvailability(
	repo domain.Repository,
	c cache.AvailabilityCache,
	log *zap.Logger,
) *CheckAvailability {
	return &CheckAvailability{
		repo:  repo,
		cache: c,
		log:   log.Named("availability.check"),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in CheckAvailabilityInput,
) (res *dto.AvailabilityDTO, err error) {

	started := time.Now()
	defer func() { observe("check", started, res, err) }()

	// --------------------------------------------------
	// Service / branch
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, notFound(err, "service_not_found")
	}

	branch, err := uc.repo.GetBranch(ctx, in.BranchID)
	if err != nil {
		return nil, notFound(err, "branch_not_found")
	}

	// --------------------------------------------------
	// Range in the branch timezone
	// --------------------------------------------------
	loc := timezone.Location(branch.Timezone)

	start, err := timezone.ParseFriendly(in.DateStart, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	endDate, err := timezone.ParseFriendly(in.DateEnd, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	end := endDate.EndOfRange()

	if !start.Time.Before(end) {
		uc.log.Warn("rejected range", logFields(branch.ID, start.Time, end)...)
		return nil, httperr.ErrBusiness("invalid_range")
	}

	// --------------------------------------------------
	// Barbers in scope
	// --------------------------------------------------
	barbers, err := uc.barbers(ctx, branch.ID, in.BarberID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Cache
	// --------------------------------------------------
	key := fmt.Sprintf("check:%d:%s:%d:%d", service.ID, scopeKey(in.BarberID), start.Time.Unix(), end.Unix())

	var cached dto.AvailabilityDTO
	version, hit, cerr := uc.cache.Get(ctx, branch.ID, key, &cached)
	if cerr != nil {
		uc.log.Warn("cache read failed", zap.Error(cerr))
	} else {
		metrics.IncCache(hit)
		if hit {
			return &cached, nil
		}
	}

	// --------------------------------------------------
	// Snapshot + plan
	// --------------------------------------------------
	snap, err := loadSnapshot(ctx, uc.repo, branch, barbers, start.Time, end)
	if err != nil {
		uc.log.Error("snapshot load failed", append(logFields(branch.ID, start.Time, end), zap.Error(err))...)
		return nil, err
	}

	plans, err := snap.plan(ctx, start.Time, end, service.DurationMin)
	if err != nil {
		return nil, engineError(err)
	}

	res = snap.result(plans)

	if cerr == nil {
		if err := uc.cache.Set(ctx, branch.ID, version, key, res); err != nil {
			uc.log.Warn("cache write failed", zap.Error(err))
		}
	}

	return res, nil
}

func (uc *CheckAvailability) barbers(
	ctx context.Context,
	branchID uint,
	barberID *uint,
) ([]models.Barber, error) {

	if barberID == nil {
		barbers, err := uc.repo.ListActiveBarbers(ctx, branchID)
		if err != nil {
			return nil, err
		}
		if len(barbers) == 0 {
			return nil, httperr.ErrBusiness("no_barbers")
		}
		return barbers, nil
	}

	barber, err := uc.repo.GetBarber(ctx, *barberID)
	if err != nil {
		return nil, notFound(err, "barber_not_found")
	}
	if !barber.Active || barber.BranchID == nil || *barber.BranchID != branchID {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	return []models.Barber{*barber}, nil
}

func scopeKey(barberID *uint) string {
	if barberID == nil {
		return "all"
	}
	return fmt.Sprintf("b%d", *barberID)
}
