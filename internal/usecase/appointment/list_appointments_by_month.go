package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	branchID uint,
	barberID *uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, errInvalidDate
	}

	branch, err := uc.repo.GetBranch(ctx, branchID)
	if err != nil {
		return nil, notFound(err, "branch_not_found")
	}

	loc := timezone.Location(branch.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, branch.ID, barberID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments, loc), nil
}
