package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Owners
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBranch(ctx context.Context, id uint) (*models.Branch, error) {
	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *ScheduleGormRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Branch weekly hours
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBranchHours(ctx context.Context, branchID uint) ([]models.BranchHours, error) {
	var rows []models.BranchHours
	if err := r.db.WithContext(ctx).
		Where("branch_id = ?", branchID).
		Order("weekday ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ScheduleGormRepository) GetBranchHours(ctx context.Context, id uint) (*models.BranchHours, error) {
	var row models.BranchHours
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ScheduleGormRepository) SaveBranchHours(ctx context.Context, row *models.BranchHours) error {
	return mapWriteError(r.db.WithContext(ctx).Save(row).Error, "weekly_hours_exists")
}

func (r *ScheduleGormRepository) DeleteBranchHours(ctx context.Context, id uint) error {
	return deleteByID[models.BranchHours](r.db.WithContext(ctx), id)
}

// --------------------------------------------------
// Barber weekly hours
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBarberHours(ctx context.Context, barberID uint) ([]models.BarberHours, error) {
	var rows []models.BarberHours
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ScheduleGormRepository) GetBarberHours(ctx context.Context, id uint) (*models.BarberHours, error) {
	var row models.BarberHours
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ScheduleGormRepository) SaveBarberHours(ctx context.Context, row *models.BarberHours) error {
	return mapWriteError(r.db.WithContext(ctx).Save(row).Error, "weekly_hours_exists")
}

func (r *ScheduleGormRepository) DeleteBarberHours(ctx context.Context, id uint) error {
	return deleteByID[models.BarberHours](r.db.WithContext(ctx), id)
}

// --------------------------------------------------
// Exceptions
// --------------------------------------------------

func (r *ScheduleGormRepository) ListExceptions(
	ctx context.Context,
	f schedule.ExceptionFilter,
) ([]models.ScheduleException, error) {

	q := r.db.WithContext(ctx).Model(&models.ScheduleException{})

	if f.BranchID != nil {
		q = q.Where("branch_id = ?", *f.BranchID)
	}
	if f.BarberID != nil {
		q = q.Where("barber_id = ?", *f.BarberID)
	}
	// an exception without date_end lasts one day
	if f.From != nil {
		q = q.Where("COALESCE(date_end, date_start) >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date_start <= ?", *f.To)
	}

	var rows []models.ScheduleException
	if err := q.Order("date_start ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ScheduleGormRepository) GetException(ctx context.Context, id uint) (*models.ScheduleException, error) {
	var row models.ScheduleException
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ScheduleGormRepository) SaveException(ctx context.Context, row *models.ScheduleException) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *ScheduleGormRepository) DeleteException(ctx context.Context, id uint) error {
	return deleteByID[models.ScheduleException](r.db.WithContext(ctx), id)
}

// --------------------------------------------------
// Breaks
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBreaks(
	ctx context.Context,
	barberID uint,
	weekday *int,
) ([]models.BarberBreak, error) {

	q := r.db.WithContext(ctx).Where("barber_id = ?", barberID)
	if weekday != nil {
		q = q.Where("weekday = ?", *weekday)
	}

	var rows []models.BarberBreak
	if err := q.Order("weekday ASC, start_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ScheduleGormRepository) GetBreak(ctx context.Context, id uint) (*models.BarberBreak, error) {
	var row models.BarberBreak
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ScheduleGormRepository) SaveBreak(ctx context.Context, row *models.BarberBreak) error {
	return r.db.WithContext(ctx).Save(row).Error
}

func (r *ScheduleGormRepository) DeleteBreak(ctx context.Context, id uint) error {
	return deleteByID[models.BarberBreak](r.db.WithContext(ctx), id)
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func deleteByID[T any](db *gorm.DB, id uint) error {
	res := db.Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Compile-time check
var _ schedule.Repository = (*ScheduleGormRepository)(nil)
