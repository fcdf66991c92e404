package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weddingelite/backend/pkg/enums"
)

type Guest struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	WeddingID   uuid.UUID        `gorm:"column:wedding_id;type:uuid;not null;index"`
	Name        string           `gorm:"column:name;not null"`
	Phone       string           `gorm:"column:phone;not null;default:''"`
	Side        enums.GuestSide  `gorm:"column:side;not null;default:'shared'"`
	PartySize   int              `gorm:"column:party_size;not null;default:1"`
	RSVPStatus  enums.RSVPStatus `gorm:"column:rsvp_status;not null;default:'pending'"`
	TableNumber *int             `gorm:"column:table_number"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (g *Guest) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
