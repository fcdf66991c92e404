package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wedding is the root record every other table hangs off.
type Wedding struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Partner1Name string          `gorm:"column:partner1_name;not null"`
	Partner2Name string          `gorm:"column:partner2_name;not null"`
	WeddingDate  time.Time       `gorm:"column:wedding_date;type:date;not null"`
	TotalBudget  decimal.Decimal `gorm:"column:total_budget;type:numeric(12,2);not null;default:0"`
	GuestCount   int             `gorm:"column:guest_count;not null;default:0"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (w *Wedding) BeforeCreate(*gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
