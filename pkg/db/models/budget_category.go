package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BudgetCategory holds a planned spend bucket. ActualAmount is a derived
// aggregate: it always equals the sum of the booking amounts attached to
// the category and is only ever moved by in-place SQL deltas.
type BudgetCategory struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID     uuid.UUID       `gorm:"column:wedding_id;type:uuid;not null;index"`
	Name          string          `gorm:"column:name;not null"`
	Icon          string          `gorm:"column:icon;not null;default:''"`
	PlannedAmount decimal.Decimal `gorm:"column:planned_amount;type:numeric(12,2);not null;default:0"`
	ActualAmount  decimal.Decimal `gorm:"column:actual_amount;type:numeric(12,2);not null;default:0"`
	Notes         string          `gorm:"column:notes;not null;default:''"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *BudgetCategory) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
