package types

import (
	"fmt"
	"time"
)

// Calendar event categories.
const (
	EventTypeCalendar   = "calendar"
	EventTypeAssignment = "assignment"
	EventTypeCommute    = "commute"
)

// CalendarEvent is an occupied interval on a given day. Events come from the
// calendar collaborator or from the assignment scheduler; the planning core
// treats them as read-only.
type CalendarEvent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Location    string    `json:"location,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description,omitempty"`
	EventType   string    `json:"event_type"`
	Color       string    `json:"color,omitempty"`
}

func (e *CalendarEvent) Validate() error {
	if !e.End.After(e.Start) {
		return fmt.Errorf("event %q: end %s is not after start %s", e.Title, e.End, e.Start)
	}
	return nil
}

func (e *CalendarEvent) DurationHours() float64 {
	return e.End.Sub(e.Start).Hours()
}

// FreeBlock is a derived interval of availability. Never persisted; always
// recomputed when the event list changes.
type FreeBlock struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
}
