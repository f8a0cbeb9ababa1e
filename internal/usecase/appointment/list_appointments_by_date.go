package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbermall-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/dto"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists the appointments of one branch day, optionally for one barber.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	branchID uint,
	barberID *uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	branch, err := uc.repo.GetBranch(ctx, branchID)
	if err != nil {
		return nil, notFound(err, "branch_not_found")
	}

	loc := timezone.Location(branch.Timezone)

	start, err := timezone.ParseDay(date, loc)
	if err != nil {
		return nil, errInvalidDate
	}
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, branch.ID, barberID, start, end)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments, loc), nil
}

func toListDTO(appointments []models.Appointment, loc *time.Location) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime.In(loc),
			EndTime:     ap.EndTime.In(loc),
			Status:      ap.Status,
			BarberID:    ap.BarberID,
			BarberName:  ap.Barber.Name,
			ClientName:  ap.Client.Name,
			ServiceName: ap.Service.Name,
		})
	}
	return out
}
