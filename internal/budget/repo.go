package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/internal/repo"
	"github.com/weddingelite/backend/pkg/db/models"
)

// Repository exposes persistence helpers for budget categories.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, category *models.BudgetCategory) error
	CreateBatch(ctx context.Context, categories []models.BudgetCategory) error
	GetByID(ctx context.Context, weddingID, categoryID uuid.UUID) (*models.BudgetCategory, error)
	ListByWedding(ctx context.Context, weddingID uuid.UUID) ([]models.BudgetCategory, error)
	Update(ctx context.Context, weddingID, categoryID uuid.UUID, updates map[string]any) (int64, error)
	Delete(ctx context.Context, weddingID, categoryID uuid.UUID) (int64, error)
	DeleteIfUnused(ctx context.Context, weddingID, categoryID uuid.UUID) (bookings int64, affected int64, err error)
	ApplyDelta(ctx context.Context, weddingID, categoryID uuid.UUID, delta decimal.Decimal) (int64, error)
	WeddingExists(ctx context.Context, weddingID uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns a budget category repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{Base: repo.NewBase(tx)}
}

func (r *repositoryImpl) Create(ctx context.Context, category *models.BudgetCategory) error {
	return r.DB(ctx).Create(category).Error
}

func (r *repositoryImpl) CreateBatch(ctx context.Context, categories []models.BudgetCategory) error {
	if len(categories) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&categories).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, weddingID, categoryID uuid.UUID) (*models.BudgetCategory, error) {
	var category models.BudgetCategory
	err := r.DB(ctx).
		Where("id = ? AND wedding_id = ?", categoryID, weddingID).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repositoryImpl) ListByWedding(ctx context.Context, weddingID uuid.UUID) ([]models.BudgetCategory, error) {
	var categories []models.BudgetCategory
	err := r.DB(ctx).
		Where("wedding_id = ?", weddingID).
		Order("created_at ASC, id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *repositoryImpl) Update(ctx context.Context, weddingID, categoryID uuid.UUID, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	result := r.DB(ctx).
		Model(&models.BudgetCategory{}).
		Where("id = ? AND wedding_id = ?", categoryID, weddingID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) Delete(ctx context.Context, weddingID, categoryID uuid.UUID) (int64, error) {
	result := r.DB(ctx).
		Where("id = ? AND wedding_id = ?", categoryID, weddingID).
		Delete(&models.BudgetCategory{})
	return result.RowsAffected, result.Error
}

// DeleteIfUnused removes the category only when no booking references it,
// running the count and the delete in one transaction. bookings reports the
// live references the transaction saw; affected is zero when the category
// does not exist under the scoping wedding. The RESTRICT foreign key on
// vendor_bookings.category_id backs this up: a booking committed between the
// count and the delete fails the delete statement instead of being cascaded
// away.
func (r *repositoryImpl) DeleteIfUnused(ctx context.Context, weddingID, categoryID uuid.UUID) (bookings int64, affected int64, err error) {
	err = r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.VendorBooking{}).
			Where("category_id = ?", categoryID).
			Count(&bookings).Error; err != nil {
			return err
		}
		if bookings > 0 {
			return nil
		}
		result := tx.
			Where("id = ? AND wedding_id = ?", categoryID, weddingID).
			Delete(&models.BudgetCategory{})
		affected = result.RowsAffected
		return result.Error
	})
	return bookings, affected, err
}

// ApplyDelta moves actual_amount with a single in-place increment so two
// concurrent booking mutations against the same category cannot lose an
// update. Returns the number of category rows touched; zero means the
// category does not exist under the scoping wedding.
func (r *repositoryImpl) ApplyDelta(ctx context.Context, weddingID, categoryID uuid.UUID, delta decimal.Decimal) (int64, error) {
	if delta.IsZero() {
		var count int64
		err := r.DB(ctx).Model(&models.BudgetCategory{}).
			Where("id = ? AND wedding_id = ?", categoryID, weddingID).
			Count(&count).Error
		return count, err
	}
	result := r.DB(ctx).
		Model(&models.BudgetCategory{}).
		Where("id = ? AND wedding_id = ?", categoryID, weddingID).
		UpdateColumn("actual_amount", gorm.Expr("actual_amount + ?", delta))
	return result.RowsAffected, result.Error
}
