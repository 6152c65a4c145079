package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yungbote/dayplanner-backend/internal/types"
)

const testFeed = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//test//EN
BEGIN:VEVENT
UID:class-calc@example.edu
SUMMARY:Calc II Lecture
LOCATION:UDC Room 210
DTSTART:20250312T090000Z
DTEND:20250312T103000Z
END:VEVENT
BEGIN:VEVENT
UID:other-day@example.edu
SUMMARY:Thursday Seminar
DTSTART:20250313T140000Z
DTEND:20250313T150000Z
END:VEVENT
BEGIN:VEVENT
UID:allday@example.edu
SUMMARY:Reading Day
DTSTART;VALUE=DATE:20250312
END:VEVENT
BEGIN:VEVENT
UID:no-title@example.edu
DTSTART:20250312T160000Z
DTEND:20250312T170000Z
END:VEVENT
END:VCALENDAR
`

func TestEventsForDayFromFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(testFeed))
	}))
	defer server.Close()

	svc := NewICSCalendarService(newTestLogger(t))
	user := &types.User{CalendarFeedURL: server.URL, Timezone: "UTC"}

	events, err := svc.EventsForDay(context.Background(), user, testDay)
	if err != nil {
		t.Fatalf("EventsForDay: %v", err)
	}

	// Wednesday has the lecture, the all-day event, and the untitled one; the
	// Thursday seminar is out.
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d: %+v", len(events), events)
	}

	byID := make(map[string]types.CalendarEvent, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	lecture, ok := byID["class-calc@example.edu"]
	if !ok {
		t.Fatal("lecture missing")
	}
	if lecture.Title != "Calc II Lecture" || lecture.Location != "UDC Room 210" {
		t.Fatalf("unexpected lecture %+v", lecture)
	}
	if !lecture.Start.Equal(at(testDay, 9, 0)) || !lecture.End.Equal(at(testDay, 10, 30)) {
		t.Fatalf("unexpected lecture times %v-%v", lecture.Start, lecture.End)
	}

	allDay, ok := byID["allday@example.edu"]
	if !ok {
		t.Fatal("all-day event missing")
	}
	if !allDay.Start.Equal(at(testDay, 0, 0)) {
		t.Fatalf("all-day start = %v", allDay.Start)
	}
	if allDay.End.Before(at(testDay, 23, 59)) {
		t.Fatalf("all-day end = %v", allDay.End)
	}

	untitled, ok := byID["no-title@example.edu"]
	if !ok {
		t.Fatal("untitled event missing")
	}
	if untitled.Title != "Untitled Event" {
		t.Fatalf("untitled fallback = %q", untitled.Title)
	}

	if _, found := byID["other-day@example.edu"]; found {
		t.Fatal("Thursday event leaked into Wednesday")
	}
}

func TestEventsForDayNoFeedConfigured(t *testing.T) {
	svc := NewICSCalendarService(newTestLogger(t))
	user := &types.User{}

	events, err := svc.EventsForDay(context.Background(), user, testDay)
	if err != nil {
		t.Fatalf("EventsForDay: %v", err)
	}
	if events != nil {
		t.Fatalf("expected nil events, got %v", events)
	}
}

func TestEventsForDayFeedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	svc := NewICSCalendarService(newTestLogger(t))
	user := &types.User{CalendarFeedURL: server.URL}

	if _, err := svc.EventsForDay(context.Background(), user, testDay); err == nil {
		t.Fatal("expected error for failing feed")
	}
}
