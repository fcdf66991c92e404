package weddings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/internal/repo"
	"github.com/weddingelite/backend/pkg/db/models"
)

// Repository exposes persistence helpers for wedding records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, wedding *models.Wedding) error
	GetByID(ctx context.Context, weddingID uuid.UUID) (*models.Wedding, error)
	List(ctx context.Context) ([]models.Wedding, error)
	Update(ctx context.Context, weddingID uuid.UUID, updates map[string]any) (int64, error)
	DeleteCascade(ctx context.Context, weddingID uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns a wedding repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{Base: repo.NewBase(tx)}
}

func (r *repositoryImpl) Create(ctx context.Context, wedding *models.Wedding) error {
	return r.DB(ctx).Create(wedding).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, weddingID uuid.UUID) (*models.Wedding, error) {
	var wedding models.Wedding
	err := r.DB(ctx).Where("id = ?", weddingID).First(&wedding).Error
	if err != nil {
		return nil, err
	}
	return &wedding, nil
}

func (r *repositoryImpl) List(ctx context.Context) ([]models.Wedding, error) {
	var weddings []models.Wedding
	err := r.DB(ctx).Order("created_at ASC, id ASC").Find(&weddings).Error
	return weddings, err
}

func (r *repositoryImpl) Update(ctx context.Context, weddingID uuid.UUID, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	result := r.DB(ctx).
		Model(&models.Wedding{}).
		Where("id = ?", weddingID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// DeleteCascade removes the wedding and all dependent rows. Callers run it
// inside a transaction so the whole cascade is visible to concurrent readers
// all at once or not at all. The explicit child deletes keep the behavior
// identical across engines regardless of FK cascade support.
func (r *repositoryImpl) DeleteCascade(ctx context.Context, weddingID uuid.UUID) (int64, error) {
	conn := r.DB(ctx)

	children := []any{
		&models.VendorBooking{},
		&models.Task{},
		&models.Guest{},
		&models.Notification{},
		&models.BudgetCategory{},
	}
	for _, child := range children {
		if err := conn.Where("wedding_id = ?", weddingID).Delete(child).Error; err != nil {
			return 0, err
		}
	}

	result := conn.Where("id = ?", weddingID).Delete(&models.Wedding{})
	return result.RowsAffected, result.Error
}
