package availability

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/metrics"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type MallDateAvailabilityInput struct {
	StoreID           uint
	ServiceExternalID string
	AppointmentDate   string
	// optional HH:MM; when set only slots starting then are returned
	AppointmentTime string
}

// ======================================================
// USE CASE
// ======================================================

// MallDateAvailability answers the mall's date-availability request with the
// free slots of one day across all barbers of the store.
type MallDateAvailability struct {
	repo         domain.Repository
	log          *zap.Logger
	maxDaysAhead int
	now          func() time.Time
}

func NewMallDateAvailability(
	repo domain.Repository,
	log *zap.Logger,
	maxDaysAhead int,
) *MallDateAvailability {
	return &MallDateAvailability{
		repo:         repo,
		log:          log.Named("availability.mall"),
		maxDaysAhead: maxDaysAhead,
		now:          time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *MallDateAvailability) Execute(
	ctx context.Context,
	in MallDateAvailabilityInput,
) (out []dto.MallSlotDTO, err error) {

	started := time.Now()
	defer func() {
		outcome := "ok"
		switch {
		case err != nil:
			outcome = "error"
		case len(out) == 0:
			outcome = "empty"
		}
		metrics.ObserveQuery("mall", outcome, started, len(out))
	}()

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	service, err := uc.repo.GetServiceByExternalCode(ctx, in.ServiceExternalID)
	if err != nil {
		return nil, notFound(err, "service_not_found")
	}
	if !service.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}
	if service.BranchID != nil && *service.BranchID != in.StoreID {
		return nil, httperr.ErrBusiness("service_not_in_branch")
	}

	branch, err := uc.repo.GetBranch(ctx, in.StoreID)
	if err != nil {
		return nil, notFound(err, "branch_not_found")
	}

	// --------------------------------------------------
	// Date window
	// --------------------------------------------------
	loc := timezone.Location(branch.Timezone)

	day, err := timezone.ParseDay(in.AppointmentDate, loc)
	if err != nil || day.Year() < 2000 || day.Year() > 2100 {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	today := domain.DateOnly(uc.now().In(loc))
	if day.Before(today) {
		return nil, httperr.ErrBusiness("date_in_past")
	}
	if day.After(today.AddDate(0, 0, uc.maxDaysAhead)) {
		return nil, httperr.ErrBusiness("date_too_far")
	}

	var wantStart *domain.Minutes
	if in.AppointmentTime != "" {
		m, perr := domain.ParseClock(in.AppointmentTime)
		if perr != nil {
			return nil, httperr.ErrBusiness("invalid_time")
		}
		wantStart = &m
	}

	// --------------------------------------------------
	// Plan the day for every barber
	// --------------------------------------------------
	barbers, err := uc.repo.ListActiveBarbers(ctx, branch.ID)
	if err != nil {
		return nil, err
	}
	if len(barbers) == 0 {
		return nil, httperr.ErrBusiness("no_barbers")
	}

	end := day.AddDate(0, 0, 1).Add(-time.Nanosecond)

	snap, err := loadSnapshot(ctx, uc.repo, branch, barbers, day, end)
	if err != nil {
		uc.log.Error("snapshot load failed", append(logFields(branch.ID, day, end), zap.Error(err))...)
		return nil, err
	}

	plans, err := snap.plan(ctx, day, end, service.DurationMin)
	if err != nil {
		return nil, engineError(err)
	}

	// --------------------------------------------------
	// Available slots only
	// --------------------------------------------------
	out = []dto.MallSlotDTO{}
	for i, b := range barbers {
		for _, p := range plans[i] {
			for _, slot := range p.Slots {
				if !slot.Available {
					continue
				}
				if wantStart != nil && domain.MinuteOfDay(slot.Start) != *wantStart {
					continue
				}
				out = append(out, dto.MallSlotDTO{
					ServiceID:       service.ID,
					Start:           slot.Start.Format(dto.SlotLayout),
					End:             slot.End.Format(dto.SlotLayout),
					DurationMinutes: service.DurationMin,
					AppointmentTime: slot.Start.Format("15:04"),
					BarberID:        b.ID,
				})
			}
		}
	}

	return out, nil
}
