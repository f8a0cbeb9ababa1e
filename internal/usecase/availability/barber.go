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

type BarberAvailabilityInput struct {
	BarberID  uint
	DateStart string
	DateEnd   string
	// zero means the configured default
	StepMinutes int
}

// BarberAvailability is the service-agnostic query of one barber: slots are
// StepMinutes wide.
type BarberAvailability struct {
	repo        domain.Repository
	cache       cache.AvailabilityCache
	log         *zap.Logger
	defaultStep int
}

func NewBarberAvailability(
	repo domain.Repository,
	c cache.AvailabilityCache,
	log *zap.Logger,
	defaultStep int,
) *BarberAvailability {
	return &BarberAvailability{
		repo:        repo,
		cache:       c,
		log:         log.Named("availability.barber"),
		defaultStep: defaultStep,
	}
}

func (uc *BarberAvailability) Execute(
	ctx context.Context,
	in BarberAvailabilityInput,
) (res *dto.AvailabilityDTO, err error) {

	started := time.Now()
	defer func() { observe("barber", started, res, err) }()

	step := in.StepMinutes
	if step == 0 {
		step = uc.defaultStep
	}
	if step <= 0 {
		return nil, httperr.ErrBusiness("invalid_step")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, notFound(err, "barber_not_found")
	}
	if !barber.Active {
		return nil, httperr.ErrBusiness("barber_not_found")
	}
	if barber.BranchID == nil {
		return nil, httperr.ErrBusiness("barber_without_branch")
	}

	branch, err := uc.repo.GetBranch(ctx, *barber.BranchID)
	if err != nil {
		return nil, notFound(err, "branch_not_found")
	}

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
		return nil, httperr.ErrBusiness("invalid_range")
	}

	key := fmt.Sprintf("barber:%d:%d:%d:%d", barber.ID, step, start.Time.Unix(), end.Unix())

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

	snap, err := loadSnapshot(ctx, uc.repo, branch, []models.Barber{*barber}, start.Time, end)
	if err != nil {
		uc.log.Error("snapshot load failed",
			append(logFields(branch.ID, start.Time, end), zap.Uint("barber_id", barber.ID), zap.Error(err))...,
		)
		return nil, err
	}

	plans, err := snap.plan(ctx, start.Time, end, step)
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
