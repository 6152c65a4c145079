package services

import (
	"testing"
	"time"

	"github.com/yungbote/dayplanner-backend/internal/types"
)

func TestCalculateFreeBlocksEmptyDay(t *testing.T) {
	svc := NewFreeTimeService(DefaultPlannerConfig(), newTestLogger(t))

	blocks, err := svc.Calculate(testDay, nil)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if !blocks[0].Start.Equal(at(testDay, 8, 0)) || !blocks[0].End.Equal(at(testDay, 22, 0)) {
		t.Fatalf("expected 08:00-22:00, got %v-%v", blocks[0].Start, blocks[0].End)
	}
	if blocks[0].DurationMinutes != 840 {
		t.Fatalf("expected 840 minutes, got %d", blocks[0].DurationMinutes)
	}
}

func TestCalculateFreeBlocksBetweenEvents(t *testing.T) {
	svc := NewFreeTimeService(DefaultPlannerConfig(), newTestLogger(t))

	events := []types.CalendarEvent{
		classEvent("e1", "Calc II", testDay, 9, 0, 10, 30),
		classEvent("e2", "Physics Lab", testDay, 14, 0, 16, 0),
	}
	blocks, err := svc.Calculate(testDay, events)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	want := []struct {
		start, end time.Time
		minutes    int
	}{
		{at(testDay, 8, 0), at(testDay, 9, 0), 60},
		{at(testDay, 10, 30), at(testDay, 14, 0), 210},
		{at(testDay, 16, 0), at(testDay, 22, 0), 360},
	}
	if len(blocks) != len(want) {
		t.Fatalf("expected %d blocks, got %d", len(want), len(blocks))
	}
	for i, w := range want {
		if !blocks[i].Start.Equal(w.start) || !blocks[i].End.Equal(w.end) {
			t.Errorf("block %d: expected %v-%v, got %v-%v", i, w.start, w.end, blocks[i].Start, blocks[i].End)
		}
		if blocks[i].DurationMinutes != w.minutes {
			t.Errorf("block %d: expected %d minutes, got %d", i, w.minutes, blocks[i].DurationMinutes)
		}
	}
}

func TestCalculateFreeBlocksDropsShortGaps(t *testing.T) {
	svc := NewFreeTimeService(DefaultPlannerConfig(), newTestLogger(t))

	// 10-minute gap between events is below the 15-minute floor.
	events := []types.CalendarEvent{
		classEvent("e1", "A", testDay, 8, 0, 12, 0),
		classEvent("e2", "B", testDay, 12, 10, 22, 0),
	}
	blocks, err := svc.Calculate(testDay, events)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(blocks) != 0 {
		t.Fatalf("expected no blocks, got %d", len(blocks))
	}
}

func TestCalculateFreeBlocksMergesOverlaps(t *testing.T) {
	svc := NewFreeTimeService(DefaultPlannerConfig(), newTestLogger(t))

	// Double-booked morning: 9-11 and 10-12 form one busy span.
	events := []types.CalendarEvent{
		classEvent("e1", "A", testDay, 9, 0, 11, 0),
		classEvent("e2", "B", testDay, 10, 0, 12, 0),
	}
	blocks, err := svc.Calculate(testDay, events)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if !blocks[0].End.Equal(at(testDay, 9, 0)) {
		t.Errorf("first block should end at 09:00, got %v", blocks[0].End)
	}
	if !blocks[1].Start.Equal(at(testDay, 12, 0)) {
		t.Errorf("second block should start at 12:00, got %v", blocks[1].Start)
	}
}

func TestCalculateFreeBlocksOutsideWindow(t *testing.T) {
	svc := NewFreeTimeService(DefaultPlannerConfig(), newTestLogger(t))

	// An event straddling the end of the window truncates, not extends.
	events := []types.CalendarEvent{
		classEvent("e1", "Evening seminar", testDay, 21, 0, 23, 0),
	}
	blocks, err := svc.Calculate(testDay, events)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if !blocks[0].Start.Equal(at(testDay, 8, 0)) || !blocks[0].End.Equal(at(testDay, 21, 0)) {
		t.Fatalf("expected 08:00-21:00, got %v-%v", blocks[0].Start, blocks[0].End)
	}
}

func TestCalculateFreeBlocksRejectsInvalidEvent(t *testing.T) {
	svc := NewFreeTimeService(DefaultPlannerConfig(), newTestLogger(t))

	events := []types.CalendarEvent{
		{ID: "bad", Title: "Backwards", Start: at(testDay, 12, 0), End: at(testDay, 11, 0)},
	}
	if _, err := svc.Calculate(testDay, events); err == nil {
		t.Fatal("expected error for end before start")
	}
}
