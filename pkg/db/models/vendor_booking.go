package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/pkg/enums"
)

type VendorBooking struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID   uuid.UUID           `gorm:"column:wedding_id;type:uuid;not null;index"`
	CategoryID  uuid.UUID           `gorm:"column:category_id;type:uuid;not null;index"`
	Name        string              `gorm:"column:name;not null"`
	Amount      decimal.Decimal     `gorm:"column:amount;type:numeric(12,2);not null;default:0"`
	DepositPaid decimal.Decimal     `gorm:"column:deposit_paid;type:numeric(12,2);not null;default:0"`
	DueDate     *time.Time          `gorm:"column:due_date;type:date"`
	Status      enums.BookingStatus `gorm:"column:status;not null;default:'pending'"`
	Notes       string              `gorm:"column:notes;not null;default:''"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *VendorBooking) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
