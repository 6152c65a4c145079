package services

import (
	"testing"
	"time"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

// testDay is a Wednesday.
var testDay = time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func classEvent(id, title string, day time.Time, startHour, startMin, endHour, endMin int) types.CalendarEvent {
	return types.CalendarEvent{
		ID:        id,
		Title:     title,
		Location:  "UDC Room 210",
		Start:     at(day, startHour, startMin),
		End:       at(day, endHour, endMin),
		EventType: types.EventTypeCalendar,
	}
}
