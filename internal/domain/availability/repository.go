package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

// Repository loads the snapshot the engine plans against. Implementations
// return gorm.ErrRecordNotFound for missing rows and never return inactive
// schedule rows or cancelled appointments.
type Repository interface {
	// -------- Catalog --------
	GetBranch(ctx context.Context, id uint) (*models.Branch, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetServiceByExternalCode(ctx context.Context, code string) (*models.Service, error)

	// ListActiveBarbers returns the active barbers of a branch ordered by id.
	ListActiveBarbers(ctx context.Context, branchID uint) ([]models.Barber, error)

	// -------- Schedule snapshot --------
	LoadCalendar(ctx context.Context, kind EntityKind, entityID uint) (Calendar, error)

	ListBreaks(ctx context.Context, barberIDs []uint) ([]Break, error)

	// ListAppointments returns scheduled appointments of the barbers that
	// intersect [from, to).
	ListAppointments(
		ctx context.Context,
		barberIDs []uint,
		from time.Time,
		to time.Time,
	) ([]Appointment, error)
}
