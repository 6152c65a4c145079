package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DayPlan caches one computed plan per (user, date). Invalidated whenever the
// user's assignments change; old rows are swept by the cleanup job.
type DayPlan struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index:idx_day_plans_user_date;column:user_id" json:"user_id"`
	Date            time.Time      `gorm:"type:date;not null;index:idx_day_plans_user_date;column:date" json:"date"`
	Events          datatypes.JSON `gorm:"not null;column:events" json:"events"`
	FreeBlocks      datatypes.JSON `gorm:"not null;column:free_blocks" json:"free_blocks"`
	Recommendations datatypes.JSON `gorm:"not null;column:recommendations" json:"recommendations"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (DayPlan) TableName() string {
	return "day_plans"
}

func (p *DayPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
