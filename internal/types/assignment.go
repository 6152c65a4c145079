package types

import (
	"time"

	"github.com/google/uuid"
)

// Assignment priority levels. Higher is more urgent.
const (
	PriorityLow    = 1
	PriorityMedium = 2
	PriorityHigh   = 3
)

type Assignment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	Title          string    `gorm:"not null;column:title" json:"title"`
	Description    string    `gorm:"type:text;column:description" json:"description"`
	AssignmentType string    `gorm:"column:assignment_type" json:"assignment_type"`
	DueDate        time.Time `gorm:"not null;index;column:due_date" json:"due_date"`
	EstimatedHours float64   `gorm:"column:estimated_hours;default:1.0" json:"estimated_hours"`
	Priority       int       `gorm:"column:priority;default:1" json:"priority"`
	Completed      bool      `gorm:"column:completed;default:false" json:"completed"`
	CreatedAt      time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Assignment) TableName() string {
	return "assignments"
}
