package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

// CalendarService supplies one day's events for a user, already resolved into
// the user's timezone. The ICS implementation fetches the user's subscribed
// calendar feed; OAuth-backed providers live behind the same interface.
type CalendarService interface {
	EventsForDay(ctx context.Context, user *types.User, day time.Time) ([]types.CalendarEvent, error)
}

type icsCalendarService struct {
	httpClient *http.Client
	log        *logger.Logger
}

func NewICSCalendarService(baseLog *logger.Logger) CalendarService {
	return &icsCalendarService{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        baseLog.With("service", "ICSCalendarService"),
	}
}

func (s *icsCalendarService) EventsForDay(ctx context.Context, user *types.User, day time.Time) ([]types.CalendarEvent, error) {
	if user.CalendarFeedURL == "" {
		s.log.Debug("User has no calendar feed configured", "user_id", user.ID)
		return nil, nil
	}

	body, err := s.fetchFeed(ctx, user.CalendarFeedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar feed: %w", err)
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse calendar feed: %w", err)
	}

	loc := user.Location()
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	events := make([]types.CalendarEvent, 0)
	for _, ve := range cal.Events() {
		event, ok := s.parseVEvent(ve, loc, dayStart, dayEnd)
		if !ok {
			continue
		}
		events = append(events, event)
	}

	s.log.Info("Fetched calendar events", "user_id", user.ID, "date", dayStart.Format("2006-01-02"), "events", len(events))
	return events, nil
}

func (s *icsCalendarService) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// parseVEvent normalizes one VEVENT into a CalendarEvent, reporting ok=false
// for events that fail to parse or fall outside the requested day. All-day
// events span the whole local day.
func (s *icsCalendarService) parseVEvent(ve *ical.VEvent, loc *time.Location, dayStart, dayEnd time.Time) (types.CalendarEvent, bool) {
	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return types.CalendarEvent{}, false
	}

	event := types.CalendarEvent{
		ID:        uidProp.Value,
		Title:     "Untitled Event",
		EventType: types.EventTypeCalendar,
	}
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil && p.Value != "" {
		event.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		event.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		event.Description = p.Value
	}

	allDay := false
	if dtStart := ve.GetProperty(ical.ComponentPropertyDtStart); dtStart != nil {
		if vals, ok := dtStart.ICalParameters["VALUE"]; ok && len(vals) > 0 && vals[0] == "DATE" {
			allDay = true
		}
	}

	if allDay {
		start, err := ve.GetAllDayStartAt()
		if err != nil {
			s.log.Debug("Skipping event without parseable start", "uid", event.ID, "error", err)
			return types.CalendarEvent{}, false
		}
		event.Start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
		event.End = event.Start.AddDate(0, 0, 1).Add(-time.Second)
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			s.log.Debug("Skipping event without parseable start", "uid", event.ID, "error", err)
			return types.CalendarEvent{}, false
		}
		end, err := ve.GetEndAt()
		if err != nil {
			end = start.Add(time.Hour)
		}
		event.Start = start.In(loc)
		event.End = end.In(loc)
	}

	if !event.Start.Before(dayEnd) || !event.End.After(dayStart) {
		return types.CalendarEvent{}, false
	}
	return event, true
}
