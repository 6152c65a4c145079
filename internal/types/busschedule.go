package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BusDirection string

const (
	// DirectionOutbound runs toward campus.
	DirectionOutbound BusDirection = "outbound"
	// DirectionInbound runs home from campus.
	DirectionInbound BusDirection = "inbound"
)

type BusRoute string

const (
	RouteWestside BusRoute = "westside"
	RouteUnion    BusRoute = "union"
)

// BusSchedule is one scheduled departure on a fixed weekly route/direction.
// Static reference data; seeded once and read-only afterwards.
type BusSchedule struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Route           BusRoute     `gorm:"not null;column:route;default:westside" json:"route"`
	Direction       BusDirection `gorm:"not null;column:direction;index" json:"direction"`
	DepartureTime   TimeOfDay    `gorm:"not null;column:departure_time" json:"departure_time"`
	ArrivalTime     TimeOfDay    `gorm:"not null;column:arrival_time" json:"arrival_time"`
	DayOfWeek       int          `gorm:"not null;column:day_of_week;index" json:"day_of_week"`
	DurationMinutes int          `gorm:"not null;column:duration_minutes" json:"duration_minutes"`
	IsLateNight     bool         `gorm:"column:is_late_night;default:false" json:"is_late_night"`
}

func (BusSchedule) TableName() string {
	return "bus_schedules"
}

// BeforeCreate assigns the id app-side so the model migrates and seeds on any
// driver, not just postgres.
func (b *BusSchedule) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// DepartureOn and ArrivalOn project the trip onto a concrete day. Trips whose
// arrival clock time is before their departure cross midnight, so the arrival
// lands on the next calendar day.
func (b *BusSchedule) DepartureOn(day time.Time) time.Time {
	return b.DepartureTime.On(day)
}

func (b *BusSchedule) ArrivalOn(day time.Time) time.Time {
	arrival := b.ArrivalTime.On(day)
	if b.ArrivalTime < b.DepartureTime {
		arrival = arrival.AddDate(0, 0, 1)
	}
	return arrival
}
