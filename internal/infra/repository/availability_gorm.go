package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

type AvailabilityGormRepository struct {
	db *gorm.DB
}

func NewAvailabilityGormRepository(db *gorm.DB) *AvailabilityGormRepository {
	return &AvailabilityGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AvailabilityGormRepository) GetBranch(ctx context.Context, id uint) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *AvailabilityGormRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AvailabilityGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AvailabilityGormRepository) GetServiceByExternalCode(
	ctx context.Context,
	code string,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("external_code = ?", code).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *AvailabilityGormRepository) ListActiveBarbers(
	ctx context.Context,
	branchID uint,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("branch_id = ? AND active = ?", branchID, true).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

// --------------------------------------------------
// Schedule snapshot
// --------------------------------------------------

func (r *AvailabilityGormRepository) LoadCalendar(
	ctx context.Context,
	kind availability.EntityKind,
	entityID uint,
) (availability.Calendar, error) {

	cal := availability.Calendar{Kind: kind, EntityID: entityID}
	db := r.db.WithContext(ctx)

	var (
		ownerColumn string
		kinds       []string
	)

	switch kind {
	case availability.EntityBranch:
		ownerColumn = "branch_id"
		kinds = []string{models.ExceptionBranchClosed, models.ExceptionBranchSpecialHours}

		var rows []models.BranchHours
		if err := db.
			Where("branch_id = ? AND active = ?", entityID, true).
			Order("weekday ASC, id ASC").
			Find(&rows).Error; err != nil {
			return cal, err
		}
		for _, row := range rows {
			w, err := schedule.BranchWeekly(row)
			if err != nil {
				return cal, fmt.Errorf("branch hours %d: %w", row.ID, err)
			}
			cal.Weekly = append(cal.Weekly, w)
		}

	case availability.EntityStaff:
		ownerColumn = "barber_id"
		kinds = []string{models.ExceptionBarberAbsent, models.ExceptionBarberSpecialHours}

		var rows []models.BarberHours
		if err := db.
			Where("barber_id = ? AND active = ?", entityID, true).
			Order("weekday ASC, id ASC").
			Find(&rows).Error; err != nil {
			return cal, err
		}
		for _, row := range rows {
			w, err := schedule.BarberWeekly(row)
			if err != nil {
				return cal, fmt.Errorf("barber hours %d: %w", row.ID, err)
			}
			cal.Weekly = append(cal.Weekly, w)
		}

	default:
		return cal, fmt.Errorf("unknown entity kind %q", kind)
	}

	// date_start, id is the order the resolver's first match relies on
	var rows []models.ScheduleException
	if err := db.
		Where(ownerColumn+" = ? AND kind IN ? AND active = ?", entityID, kinds, true).
		Order("date_start ASC, id ASC").
		Find(&rows).Error; err != nil {
		return cal, err
	}
	for _, row := range rows {
		exc, err := schedule.Exception(row)
		if err != nil {
			return cal, err
		}
		cal.Exceptions = append(cal.Exceptions, exc)
	}

	return cal, nil
}

func (r *AvailabilityGormRepository) ListBreaks(
	ctx context.Context,
	barberIDs []uint,
) ([]availability.Break, error) {

	if len(barberIDs) == 0 {
		return nil, nil
	}

	var rows []models.BarberBreak
	if err := r.db.WithContext(ctx).
		Where("barber_id IN ? AND active = ?", barberIDs, true).
		Order("barber_id ASC, weekday ASC, start_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	breaks := make([]availability.Break, 0, len(rows))
	for _, row := range rows {
		b, err := schedule.Break(row)
		if err != nil {
			return nil, fmt.Errorf("break %d: %w", row.ID, err)
		}
		breaks = append(breaks, b)
	}
	return breaks, nil
}

func (r *AvailabilityGormRepository) ListAppointments(
	ctx context.Context,
	barberIDs []uint,
	from time.Time,
	to time.Time,
) ([]availability.Appointment, error) {

	if len(barberIDs) == 0 {
		return nil, nil
	}

	var rows []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "branch_id", "barber_id", "start_time", "end_time").
		Where(
			"barber_id IN ? AND status = ? AND start_time < ? AND end_time > ?",
			barberIDs, models.AppointmentScheduled, to, from,
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	appts := make([]availability.Appointment, 0, len(rows))
	for _, row := range rows {
		appts = append(appts, schedule.Appointment(row))
	}
	return appts, nil
}

// Compile-time check
var _ availability.Repository = (*AvailabilityGormRepository)(nil)
