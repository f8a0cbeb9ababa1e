package appointment

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
	cache cache.AvailabilityCache
	log   *zap.Logger
}

func NewCancelAppointment(
	repo domain.Repository,
	rec audit.Recorder,
	c cache.AvailabilityCache,
	log *zap.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: rec,
		cache: c,
		log:   log.Named("appointment.cancel"),
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	branchID uint,
	appointmentID uint,
	userID *uint,
) (*models.Appointment, error) {

	branch, err := uc.repo.GetBranch(ctx, branchID)
	if err != nil {
		return nil, notFound(err, "branch_not_found")
	}

	ap, err := uc.repo.GetAppointment(ctx, branch.ID, appointmentID)
	if err != nil {
		return nil, notFound(err, "appointment_not_found")
	}

	now := timezone.NowIn(branch.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID: &branch.ID,
		UserID:   userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})
	invalidate(ctx, uc.cache, uc.log, branch.ID)

	return ap, nil
}
