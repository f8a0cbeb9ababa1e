package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

// ExceptionFilter narrows ListExceptions. Zero fields match everything.
type ExceptionFilter struct {
	BranchID *uint
	BarberID *uint
	From     *time.Time
	To       *time.Time
}

type Repository interface {
	// -------- Owners --------
	GetBranch(ctx context.Context, id uint) (*models.Branch, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)

	// -------- Branch weekly hours --------
	ListBranchHours(ctx context.Context, branchID uint) ([]models.BranchHours, error)
	GetBranchHours(ctx context.Context, id uint) (*models.BranchHours, error)
	SaveBranchHours(ctx context.Context, row *models.BranchHours) error
	DeleteBranchHours(ctx context.Context, id uint) error

	// -------- Barber weekly hours --------
	ListBarberHours(ctx context.Context, barberID uint) ([]models.BarberHours, error)
	GetBarberHours(ctx context.Context, id uint) (*models.BarberHours, error)
	SaveBarberHours(ctx context.Context, row *models.BarberHours) error
	DeleteBarberHours(ctx context.Context, id uint) error

	// -------- Exceptions --------
	ListExceptions(ctx context.Context, f ExceptionFilter) ([]models.ScheduleException, error)
	GetException(ctx context.Context, id uint) (*models.ScheduleException, error)
	SaveException(ctx context.Context, row *models.ScheduleException) error
	DeleteException(ctx context.Context, id uint) error

	// -------- Breaks --------
	ListBreaks(ctx context.Context, barberID uint, weekday *int) ([]models.BarberBreak, error)
	GetBreak(ctx context.Context, id uint) (*models.BarberBreak, error)
	SaveBreak(ctx context.Context, row *models.BarberBreak) error
	DeleteBreak(ctx context.Context, id uint) error
}
