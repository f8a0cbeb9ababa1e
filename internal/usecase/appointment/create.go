package appointment

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/httperr"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/metrics"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BranchID  uint
	BarberID  uint
	ServiceID uint
	UserID    *uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	// any friendly date-time, read in the branch timezone
	Start string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
	cache cache.AvailabilityCache
	log   *zap.Logger
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	rec audit.Recorder,
	c cache.AvailabilityCache,
	log *zap.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: rec,
		cache: c,
		log:   log.Named("appointment.create"),
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Branch / barber / service
	// --------------------------------------------------
	branch, err := uc.repo.GetBranch(ctx, in.BranchID)
	if err != nil {
		return nil, notFound(err, "branch_not_found")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, notFound(err, "barber_not_found")
	}
	if !barber.Active || barber.BranchID == nil || *barber.BranchID != branch.ID {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, notFound(err, "service_not_found")
	}
	if !service.Active {
		return nil, httperr.ErrBusiness("service_inactive")
	}
	if service.BranchID != nil && *service.BranchID != branch.ID {
		return nil, httperr.ErrBusiness("service_not_in_branch")
	}

	// --------------------------------------------------
	// Start / end in the branch timezone
	// --------------------------------------------------
	loc := timezone.Location(branch.Timezone)

	parsed, err := timezone.ParseFriendly(in.Start, loc)
	if err != nil || parsed.DateOnly {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	start := parsed.Time
	if start.Before(uc.now()) {
		return nil, httperr.ErrBusiness("date_in_past")
	}
	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	// --------------------------------------------------
	// Window / break / conflict against the snapshot
	// --------------------------------------------------
	booking, err := uc.booking(ctx, branch.ID, barber.ID, start)
	if err != nil {
		uc.log.Error("snapshot load failed", zap.Uint("barber_id", barber.ID), zap.Error(err))
		return nil, err
	}
	if err := domain.CheckFits(booking, start, end); err != nil {
		uc.reject(err)
		return nil, err
	}

	// --------------------------------------------------
	// Client (get or create)
	// --------------------------------------------------
	client, err := uc.repo.GetOrCreateClient(ctx, in.ClientName, in.ClientPhone, in.ClientEmail)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Insert under lock
	// --------------------------------------------------
	ap := &models.Appointment{
		BranchID:  branch.ID,
		BarberID:  barber.ID,
		ClientID:  client.ID,
		ServiceID: service.ID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		uc.reject(err)
		return nil, err
	}
	metrics.IncAppointmentCreated()

	// --------------------------------------------------
	// Audit / cache
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BranchID: &branch.ID,
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	invalidate(ctx, uc.cache, uc.log, branch.ID)

	return ap, nil
}

func (uc *CreateAppointment) booking(
	ctx context.Context,
	branchID uint,
	barberID uint,
	start time.Time,
) (domain.Booking, error) {

	var (
		b   domain.Booking
		err error
	)

	if b.Branch, err = uc.repo.LoadCalendar(ctx, availability.EntityBranch, branchID); err != nil {
		return b, err
	}
	if b.Barber, err = uc.repo.LoadCalendar(ctx, availability.EntityStaff, barberID); err != nil {
		return b, err
	}
	if b.Breaks, err = uc.repo.ListBreaks(ctx, []uint{barberID}); err != nil {
		return b, err
	}

	day := availability.DateOnly(start)
	b.Appointments, err = uc.repo.ListAppointments(ctx, []uint{barberID}, day, day.AddDate(0, 0, 1))
	return b, err
}

func (uc *CreateAppointment) reject(err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		metrics.IncAppointmentRejected(be.Code)
	}
}
