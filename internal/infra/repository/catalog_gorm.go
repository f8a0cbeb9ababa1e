package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/models"
)

// CatalogFilter narrows catalog listings. Nil fields match everything.
type CatalogFilter struct {
	BranchID *uint
	Active   *bool
}

// CatalogGormRepository stores branches, barbers and services.
type CatalogGormRepository struct {
	*AvailabilityGormRepository
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{NewAvailabilityGormRepository(db)}
}

func (r *CatalogGormRepository) ListBranches(ctx context.Context, f CatalogFilter) ([]models.Branch, error) {
	q := r.db.WithContext(ctx)
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}

	var rows []models.Branch
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogGormRepository) SaveBranch(ctx context.Context, branch *models.Branch) error {
	return mapWriteError(r.db.WithContext(ctx).Save(branch).Error, "duplicate_branch_code")
}

func (r *CatalogGormRepository) ListBarbers(ctx context.Context, f CatalogFilter) ([]models.Barber, error) {
	q := r.db.WithContext(ctx)
	if f.BranchID != nil {
		q = q.Where("branch_id = ?", *f.BranchID)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}

	var rows []models.Barber
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogGormRepository) SaveBarber(ctx context.Context, barber *models.Barber) error {
	return r.db.WithContext(ctx).Omit("Branch").Save(barber).Error
}

// ListServices with a BranchID also returns the services offered everywhere.
func (r *CatalogGormRepository) ListServices(ctx context.Context, f CatalogFilter) ([]models.Service, error) {
	q := r.db.WithContext(ctx)
	if f.BranchID != nil {
		q = q.Where("branch_id = ? OR branch_id IS NULL", *f.BranchID)
	}
	if f.Active != nil {
		q = q.Where("active = ?", *f.Active)
	}

	var rows []models.Service
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CatalogGormRepository) SaveService(ctx context.Context, service *models.Service) error {
	return mapWriteError(r.db.WithContext(ctx).Save(service).Error, "duplicate_external_code")
}

func (r *CatalogGormRepository) ListClients(ctx context.Context, query string, limit int) ([]models.Client, error) {
	q := r.db.WithContext(ctx)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var rows []models.Client
	if err := q.Order("name ASC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
