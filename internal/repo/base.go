package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/pkg/db/models"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// WeddingExists reports whether the scoping wedding row is present.
func (b Base) WeddingExists(ctx context.Context, weddingID uuid.UUID) (bool, error) {
	var count int64
	err := b.DB(ctx).Model(&models.Wedding{}).Where("id = ?", weddingID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
