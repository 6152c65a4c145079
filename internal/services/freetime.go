package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

// FreeTimeService derives the gaps between a day's events inside the awake
// window. Output is always recomputed from scratch; free blocks are never
// mutated in place.
type FreeTimeService interface {
	Calculate(day time.Time, events []types.CalendarEvent) ([]types.FreeBlock, error)
}

type freeTimeService struct {
	cfg PlannerConfig
	log *logger.Logger
}

func NewFreeTimeService(cfg PlannerConfig, baseLog *logger.Logger) FreeTimeService {
	return &freeTimeService{
		cfg: cfg,
		log: baseLog.With("service", "FreeTimeService"),
	}
}

// Calculate returns the chronologically ordered free blocks of at least
// MinFreeBlockMinutes between day start, each event boundary, and day end.
// Overlapping events are merged into single busy spans before gap-finding, so
// a calendar with double-booked slots cannot under-report free time. Events
// with end <= start are rejected.
func (s *freeTimeService) Calculate(day time.Time, events []types.CalendarEvent) ([]types.FreeBlock, error) {
	for i := range events {
		if err := events[i].Validate(); err != nil {
			return nil, fmt.Errorf("calculate free blocks: %w", err)
		}
	}

	loc := day.Location()
	windowStart := time.Date(day.Year(), day.Month(), day.Day(), s.cfg.DayStartHour, 0, 0, 0, loc)
	windowEnd := time.Date(day.Year(), day.Month(), day.Day(), s.cfg.DayEndHour, 0, 0, 0, loc)

	if len(events) == 0 {
		return []types.FreeBlock{{
			Start:           windowStart,
			End:             windowEnd,
			DurationMinutes: int(windowEnd.Sub(windowStart).Minutes()),
		}}, nil
	}

	busy := mergeIntervals(events)

	free := make([]types.FreeBlock, 0, len(busy)+1)
	cursor := windowStart
	for _, span := range busy {
		if span.start.After(cursor) {
			free = appendIfLongEnough(free, cursor, minTime(span.start, windowEnd), s.cfg.MinFreeBlockMinutes)
		}
		if span.end.After(cursor) {
			cursor = span.end
		}
		if !cursor.Before(windowEnd) {
			break
		}
	}
	if cursor.Before(windowEnd) {
		free = appendIfLongEnough(free, cursor, windowEnd, s.cfg.MinFreeBlockMinutes)
	}

	s.log.Debug("Calculated free blocks", "events", len(events), "free_blocks", len(free))
	return free, nil
}

type interval struct {
	start, end time.Time
}

// mergeIntervals sorts events by start and coalesces overlapping or touching
// spans into disjoint busy intervals.
func mergeIntervals(events []types.CalendarEvent) []interval {
	sorted := make([]types.CalendarEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]interval, 0, len(sorted))
	for _, e := range sorted {
		if len(merged) > 0 && !e.Start.After(merged[len(merged)-1].end) {
			if e.End.After(merged[len(merged)-1].end) {
				merged[len(merged)-1].end = e.End
			}
			continue
		}
		merged = append(merged, interval{start: e.Start, end: e.End})
	}
	return merged
}

func appendIfLongEnough(free []types.FreeBlock, start, end time.Time, minMinutes int) []types.FreeBlock {
	duration := int(end.Sub(start).Minutes())
	if duration < minMinutes {
		return free
	}
	return append(free, types.FreeBlock{Start: start, End: end, DurationMinutes: duration})
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
