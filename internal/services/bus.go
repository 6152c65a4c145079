package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/repos"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

// BusService matches calendar boundaries against the fixed weekly bus
// timetable. A day with no qualifying trip is a nil suggestion, never an
// error; only repository failures surface as errors.
type BusService interface {
	FindBusToCampus(ctx context.Context, targetArrival time.Time, bufferMinutes int) (*types.BusSuggestion, error)
	FindBusFromCampus(ctx context.Context, earliestDeparture time.Time, bufferMinutes int) (*types.BusSuggestion, error)
	SuggestionsForDay(ctx context.Context, userID uuid.UUID, day time.Time, events []types.CalendarEvent) (*types.BusSuggestion, *types.BusSuggestion, error)
	AllBusesForDay(ctx context.Context, day time.Time, events []types.CalendarEvent, filterBySchedule bool) (*types.DayTimetable, error)
	Preferences(ctx context.Context, userID uuid.UUID) (*types.UserBusPreference, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, input BusPreferenceInput) (*types.UserBusPreference, error)
}

type BusPreferenceInput struct {
	AutoCreateEvents       bool `json:"auto_create_events"`
	ArrivalBufferMinutes   int  `json:"arrival_buffer_minutes"`
	DepartureBufferMinutes int  `json:"departure_buffer_minutes"`
}

type busService struct {
	cfg      PlannerConfig
	repo     repos.BusScheduleRepo
	prefRepo repos.BusPreferenceRepo
	matcher  CampusMatcher
	log      *logger.Logger
}

func NewBusService(cfg PlannerConfig, repo repos.BusScheduleRepo, prefRepo repos.BusPreferenceRepo, matcher CampusMatcher, baseLog *logger.Logger) BusService {
	return &busService{
		cfg:      cfg,
		repo:     repo,
		prefRepo: prefRepo,
		matcher:  matcher,
		log:      baseLog.With("service", "BusService"),
	}
}

// isoWeekday maps time.Weekday (Sunday=0) onto ISO numbering (Monday=1,
// Sunday=7), which is how timetable rows are keyed.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday())+6)%7 + 1
}

// FindBusToCampus picks the outbound trip that cuts the arrival as close as
// the buffer allows: the latest arrival at or before targetArrival - buffer.
func (s *busService) FindBusToCampus(ctx context.Context, targetArrival time.Time, bufferMinutes int) (*types.BusSuggestion, error) {
	dayOfWeek := isoWeekday(targetArrival)
	if dayOfWeek > 5 {
		return nil, nil
	}

	desiredArrival := targetArrival.Add(-time.Duration(bufferMinutes) * time.Minute)
	desiredClock := types.NewTimeOfDay(desiredArrival.Hour(), desiredArrival.Minute())

	trips, err := s.repo.ListByDirection(ctx, nil, types.DirectionOutbound, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("list outbound trips: %w", err)
	}

	var best *types.BusSchedule
	for _, trip := range trips {
		if trip.ArrivalTime > desiredClock {
			continue
		}
		if best == nil || trip.ArrivalTime > best.ArrivalTime {
			best = trip
		}
	}
	if best == nil {
		return nil, nil
	}

	arrival := best.ArrivalTime.On(targetArrival)
	minutesEarly := int(targetArrival.Sub(arrival).Minutes())
	reason := fmt.Sprintf("Arrives at campus %d min before first class", minutesEarly)

	return tripSuggestion(best, targetArrival, reason), nil
}

// FindBusFromCampus picks the earliest inbound trip departing at or after
// earliestDeparture + buffer.
func (s *busService) FindBusFromCampus(ctx context.Context, earliestDeparture time.Time, bufferMinutes int) (*types.BusSuggestion, error) {
	dayOfWeek := isoWeekday(earliestDeparture)
	if dayOfWeek > 5 {
		return nil, nil
	}

	desiredDeparture := earliestDeparture.Add(time.Duration(bufferMinutes) * time.Minute)
	desiredClock := types.NewTimeOfDay(desiredDeparture.Hour(), desiredDeparture.Minute())

	trips, err := s.repo.ListByDirection(ctx, nil, types.DirectionInbound, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("list inbound trips: %w", err)
	}

	var best *types.BusSchedule
	for _, trip := range trips {
		if trip.DepartureTime < desiredClock {
			continue
		}
		if best == nil || trip.DepartureTime < best.DepartureTime {
			best = trip
		}
	}
	if best == nil {
		return nil, nil
	}

	departure := best.DepartureTime.On(earliestDeparture)
	waitMinutes := int(departure.Sub(earliestDeparture).Minutes())
	reason := fmt.Sprintf("Departs %d min after last class ends", waitMinutes)

	return tripSuggestion(best, earliestDeparture, reason), nil
}

// SuggestionsForDay picks the (morning, evening) pair from the day's campus
// events: the earliest start bounds the to-campus trip, the latest end bounds
// the trip home. No campus events means no suggestions. The user's stored
// buffers apply when a preference row exists.
func (s *busService) SuggestionsForDay(ctx context.Context, userID uuid.UUID, day time.Time, events []types.CalendarEvent) (*types.BusSuggestion, *types.BusSuggestion, error) {
	campusEvents := filterCampusEvents(s.matcher, events)
	if len(campusEvents) == 0 {
		s.log.Debug("No campus events, skipping bus suggestions", "date", dateOf(day).Format("2006-01-02"))
		return nil, nil, nil
	}

	arrivalBuffer := s.cfg.ArrivalBufferMinutes
	departureBuffer := s.cfg.DepartureBufferMinutes
	pref, err := s.prefRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("load bus preferences: %w", err)
	}
	if pref != nil {
		arrivalBuffer = pref.ArrivalBufferMinutes
		departureBuffer = pref.DepartureBufferMinutes
	}

	first := campusEvents[0]
	last := campusEvents[0]
	for _, e := range campusEvents[1:] {
		if e.Start.Before(first.Start) {
			first = e
		}
		if e.End.After(last.End) {
			last = e
		}
	}

	morning, err := s.FindBusToCampus(ctx, first.Start, arrivalBuffer)
	if err != nil {
		return nil, nil, err
	}
	evening, err := s.FindBusFromCampus(ctx, last.End, departureBuffer)
	if err != nil {
		return nil, nil, err
	}
	return morning, evening, nil
}

// Preferences returns the user's stored bus preferences, or the configured
// defaults when none are stored.
func (s *busService) Preferences(ctx context.Context, userID uuid.UUID) (*types.UserBusPreference, error) {
	pref, err := s.prefRepo.GetByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load bus preferences: %w", err)
	}
	if pref == nil {
		return &types.UserBusPreference{
			UserID:                 userID,
			ArrivalBufferMinutes:   s.cfg.ArrivalBufferMinutes,
			DepartureBufferMinutes: s.cfg.DepartureBufferMinutes,
		}, nil
	}
	return pref, nil
}

func (s *busService) UpdatePreferences(ctx context.Context, userID uuid.UUID, input BusPreferenceInput) (*types.UserBusPreference, error) {
	if input.ArrivalBufferMinutes < 0 || input.DepartureBufferMinutes < 0 {
		return nil, fmt.Errorf("buffers must not be negative")
	}

	pref, err := s.prefRepo.Upsert(ctx, nil, &types.UserBusPreference{
		UserID:                 userID,
		AutoCreateEvents:       input.AutoCreateEvents,
		ArrivalBufferMinutes:   input.ArrivalBufferMinutes,
		DepartureBufferMinutes: input.DepartureBufferMinutes,
	})
	if err != nil {
		return nil, fmt.Errorf("save bus preferences: %w", err)
	}
	s.log.Info("Updated bus preferences", "user_id", userID,
		"arrival_buffer", input.ArrivalBufferMinutes, "departure_buffer", input.DepartureBufferMinutes)
	return pref, nil
}

// AllBusesForDay returns the full weekday timetable per route and direction,
// optionally dropping trips that are useless for the day's campus schedule:
// outbound trips arriving after the first class (minus a 5 minute margin),
// inbound trips departing before the last class ends, and any trip whose ride
// overlaps a campus event.
func (s *busService) AllBusesForDay(ctx context.Context, day time.Time, events []types.CalendarEvent, filterBySchedule bool) (*types.DayTimetable, error) {
	timetable := &types.DayTimetable{
		Westside: types.RouteTimetable{ToCampus: []types.BusSuggestion{}, FromCampus: []types.BusSuggestion{}},
		Union:    types.RouteTimetable{ToCampus: []types.BusSuggestion{}, FromCampus: []types.BusSuggestion{}},
	}

	dayOfWeek := isoWeekday(day)
	if dayOfWeek > 5 {
		return timetable, nil
	}

	load := func(route types.BusRoute, direction types.BusDirection) ([]*types.BusSchedule, error) {
		trips, err := s.repo.ListByRouteDirection(ctx, nil, route, direction, dayOfWeek)
		if err != nil {
			return nil, fmt.Errorf("list %s %s trips: %w", route, direction, err)
		}
		return trips, nil
	}

	westOut, err := load(types.RouteWestside, types.DirectionOutbound)
	if err != nil {
		return nil, err
	}
	unionOut, err := load(types.RouteUnion, types.DirectionOutbound)
	if err != nil {
		return nil, err
	}
	westIn, err := load(types.RouteWestside, types.DirectionInbound)
	if err != nil {
		return nil, err
	}
	unionIn, err := load(types.RouteUnion, types.DirectionInbound)
	if err != nil {
		return nil, err
	}

	if filterBySchedule && len(events) > 0 {
		campusEvents := filterCampusEvents(s.matcher, events)
		if len(campusEvents) > 0 {
			first := campusEvents[0]
			last := campusEvents[0]
			for _, e := range campusEvents[1:] {
				if e.Start.Before(first.Start) {
					first = e
				}
				if e.End.After(last.End) {
					last = e
				}
			}
			westOut = filterTrips(westOut, day, campusEvents, &first, nil)
			unionOut = filterTrips(unionOut, day, campusEvents, &first, nil)
			westIn = filterTrips(westIn, day, campusEvents, nil, &last)
			unionIn = filterTrips(unionIn, day, campusEvents, nil, &last)
		}
	}

	timetable.Westside.ToCampus = tripSuggestions(westOut, day)
	timetable.Westside.FromCampus = tripSuggestions(westIn, day)
	timetable.Union.ToCampus = tripSuggestions(unionOut, day)
	timetable.Union.FromCampus = tripSuggestions(unionIn, day)
	return timetable, nil
}

// filterTrips keeps trips useful around the day's first/last campus events
// and without ride/event overlap. firstEvent bounds outbound trips, lastEvent
// bounds inbound ones; exactly one of the two is set.
func filterTrips(trips []*types.BusSchedule, day time.Time, campusEvents []types.CalendarEvent, firstEvent, lastEvent *types.CalendarEvent) []*types.BusSchedule {
	filtered := make([]*types.BusSchedule, 0, len(trips))
	for _, trip := range trips {
		if firstEvent != nil {
			deadline := firstEvent.Start.Add(-5 * time.Minute)
			if trip.ArrivalOn(day).After(deadline) {
				continue
			}
		}
		if lastEvent != nil {
			if trip.DepartureOn(day).Before(lastEvent.End) {
				continue
			}
		}

		departure := trip.DepartureOn(day)
		arrival := trip.ArrivalOn(day)
		conflicts := false
		for _, e := range campusEvents {
			if departure.Before(e.End) && arrival.After(e.Start) {
				conflicts = true
				break
			}
		}
		if !conflicts {
			filtered = append(filtered, trip)
		}
	}
	return filtered
}

func tripSuggestion(trip *types.BusSchedule, day time.Time, reason string) *types.BusSuggestion {
	departure := trip.DepartureOn(day)
	arrival := trip.ArrivalOn(day)
	return &types.BusSuggestion{
		Route:          trip.Route,
		Direction:      trip.Direction,
		DepartureTime:  departure,
		ArrivalTime:    arrival,
		DepartureLabel: trip.DepartureTime.Label(),
		ArrivalLabel:   trip.ArrivalTime.Label(),
		Reason:         reason,
		IsLateNight:    trip.IsLateNight,
	}
}

func tripSuggestions(trips []*types.BusSchedule, day time.Time) []types.BusSuggestion {
	out := make([]types.BusSuggestion, 0, len(trips))
	for _, trip := range trips {
		out = append(out, *tripSuggestion(trip, day, ""))
	}
	return out
}
