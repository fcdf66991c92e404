package guests

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/internal/repo"
	"github.com/weddingelite/backend/pkg/db/models"
)

// Repository exposes persistence helpers for the guest list.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, guest *models.Guest) error
	GetByID(ctx context.Context, weddingID, guestID uuid.UUID) (*models.Guest, error)
	ListByWedding(ctx context.Context, weddingID uuid.UUID) ([]models.Guest, error)
	Update(ctx context.Context, weddingID, guestID uuid.UUID, updates map[string]any) (int64, error)
	Delete(ctx context.Context, weddingID, guestID uuid.UUID) (int64, error)
	ConfirmedSeats(ctx context.Context, weddingID uuid.UUID) (int64, error)
	WeddingExists(ctx context.Context, weddingID uuid.UUID) (bool, error)
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns a guest repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{Base: repo.NewBase(tx)}
}

func (r *repositoryImpl) Create(ctx context.Context, guest *models.Guest) error {
	return r.DB(ctx).Create(guest).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, weddingID, guestID uuid.UUID) (*models.Guest, error) {
	var guest models.Guest
	err := r.DB(ctx).
		Where("id = ? AND wedding_id = ?", guestID, weddingID).
		First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *repositoryImpl) ListByWedding(ctx context.Context, weddingID uuid.UUID) ([]models.Guest, error) {
	var guests []models.Guest
	err := r.DB(ctx).
		Where("wedding_id = ?", weddingID).
		Order("created_at ASC, id ASC").
		Find(&guests).Error
	return guests, err
}

func (r *repositoryImpl) Update(ctx context.Context, weddingID, guestID uuid.UUID, updates map[string]any) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}
	result := r.DB(ctx).
		Model(&models.Guest{}).
		Where("id = ? AND wedding_id = ?", guestID, weddingID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) Delete(ctx context.Context, weddingID, guestID uuid.UUID) (int64, error) {
	result := r.DB(ctx).
		Where("id = ? AND wedding_id = ?", guestID, weddingID).
		Delete(&models.Guest{})
	return result.RowsAffected, result.Error
}

// ConfirmedSeats sums party sizes over confirmed RSVPs.
func (r *repositoryImpl) ConfirmedSeats(ctx context.Context, weddingID uuid.UUID) (int64, error) {
	var total int64
	err := r.DB(ctx).
		Model(&models.Guest{}).
		Where("wedding_id = ? AND rsvp_status = ?", weddingID, "confirmed").
		Select("COALESCE(SUM(party_size), 0)").
		Scan(&total).Error
	return total, err
}
