package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserBusPreference stores per-user bus timing preferences. A user without a
// row gets the configured defaults.
type UserBusPreference struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:user_id" json:"user_id"`

	// Create calendar events for suggested buses automatically.
	AutoCreateEvents bool `gorm:"column:auto_create_events;default:false" json:"auto_create_events"`

	// How many minutes before the first class the bus should arrive.
	ArrivalBufferMinutes int `gorm:"column:arrival_buffer_minutes;default:15" json:"arrival_buffer_minutes"`

	// How many minutes after the last class the bus home may depart.
	DepartureBufferMinutes int `gorm:"column:departure_buffer_minutes;default:0" json:"departure_buffer_minutes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserBusPreference) TableName() string {
	return "user_bus_preferences"
}

func (p *UserBusPreference) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
