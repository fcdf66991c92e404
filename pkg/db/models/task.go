package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/pkg/enums"
)

type Task struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID      uuid.UUID            `gorm:"column:wedding_id;type:uuid;not null;index"`
	Title          string               `gorm:"column:title;not null"`
	Description    string               `gorm:"column:description;not null;default:''"`
	TimelinePeriod enums.TimelinePeriod `gorm:"column:timeline_period;not null"`
	DueDate        *time.Time           `gorm:"column:due_date;type:date"`
	IsUrgent       bool                 `gorm:"column:is_urgent;not null;default:false"`
	IsCompleted    bool                 `gorm:"column:is_completed;not null;default:false"`
	CompletedAt    *time.Time           `gorm:"column:completed_at"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
