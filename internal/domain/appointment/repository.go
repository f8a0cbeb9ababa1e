package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

type Repository interface {
	// catalog lookups and the schedule snapshot
	availability.Repository

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment locks the barber's scheduled appointments overlapping
	// the new one and inserts it only when there are none (time_conflict).
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		branchID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForPeriod(
		ctx context.Context,
		branchID uint,
		barberID *uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
