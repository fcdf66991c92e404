package vendors

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/internal/repo"
	"github.com/weddingelite/backend/pkg/db/models"
)

// Repository exposes persistence helpers for vendor bookings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, booking *models.VendorBooking) error
	GetByID(ctx context.Context, weddingID, bookingID uuid.UUID) (*models.VendorBooking, error)
	ListByWedding(ctx context.Context, weddingID uuid.UUID) ([]models.VendorBooking, error)
	ListByCategory(ctx context.Context, weddingID, categoryID uuid.UUID) ([]models.VendorBooking, error)
	Update(ctx context.Context, weddingID, bookingID uuid.UUID, updates map[string]any) (int64, error)
	Delete(ctx context.Context, weddingID, bookingID uuid.UUID) (int64, error)
	WeddingExists(ctx context.Context, weddingID uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns a vendor booking repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{Base: repo.NewBase(tx)}
}

func (r *repositoryImpl) Create(ctx context.Context, booking *models.VendorBooking) error {
	return r.DB(ctx).Create(booking).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, weddingID, bookingID uuid.UUID) (*models.VendorBooking, error) {
	var booking models.VendorBooking
	err := r.DB(ctx).
		Where("id = ? AND wedding_id = ?", bookingID, weddingID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *repositoryImpl) ListByWedding(ctx context.Context, weddingID uuid.UUID) ([]models.VendorBooking, error) {
	var bookings []models.VendorBooking
	err := r.DB(ctx).
		Where("wedding_id = ?", weddingID).
		Order("created_at ASC, id ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repositoryImpl) ListByCategory(ctx context.Context, weddingID, categoryID uuid.UUID) ([]models.VendorBooking, error) {
	var bookings []models.VendorBooking
	err := r.DB(ctx).
		Where("wedding_id = ? AND category_id = ?", weddingID, categoryID).
		Order("created_at ASC, id ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repositoryImpl) Update(ctx context.Context, weddingID, bookingID uuid.UUID, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	result := r.DB(ctx).
		Model(&models.VendorBooking{}).
		Where("id = ? AND wedding_id = ?", bookingID, weddingID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) Delete(ctx context.Context, weddingID, bookingID uuid.UUID) (int64, error) {
	result := r.DB(ctx).
		Where("id = ? AND wedding_id = ?", bookingID, weddingID).
		Delete(&models.VendorBooking{})
	return result.RowsAffected, result.Error
}
