package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/yungbote/dayplanner-backend/internal/types"
)

// scriptedAIClient replays one canned response per call in order.
type scriptedAIClient struct {
	responses []string
	errs      []error
	calls     int
}

func (s *scriptedAIClient) Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (*AICompletion, error) {
	idx := s.calls
	s.calls++
	if idx < len(s.errs) && s.errs[idx] != nil {
		return nil, s.errs[idx]
	}
	if idx >= len(s.responses) {
		return nil, fmt.Errorf("unexpected advisor call %d", idx)
	}
	return &AICompletion{Content: s.responses[idx]}, nil
}

func newOrchestratorFixture(t *testing.T, cfg PlannerConfig, ai AIClient) OrchestratorService {
	t.Helper()
	log := newTestLogger(t)
	freeTime := NewFreeTimeService(cfg, log)
	scheduler := NewSchedulerService(cfg, log)
	agent := NewPlanningAgentService(cfg, scheduler, ai, log)
	bus := NewBusService(cfg, &fakeBusRepo{}, &fakeBusPrefRepo{}, NewKeywordCampusMatcher(), log)
	return NewOrchestratorService(cfg, freeTime, agent, bus, ai, log)
}

func TestBuildDayPlanEndToEnd(t *testing.T) {
	ai := &scriptedAIClient{
		responses: []string{
			`{"mode": "LIGHT", "kept_block_ids": ["assignment-1-0"], "reason": "Light day"}`,
			`{"lunch_slots": [{"start": "2025-03-12T12:00:00", "end": "2025-03-12T13:00:00", "label": "Lunch"}],
			  "study_slots": [],
			  "summary": "One study block after class."}`,
		},
	}
	// The user wakes at 09:00, so the class opens the day and every free gap
	// falls after it.
	cfg := DefaultPlannerConfig()
	cfg.DayStartHour = 9
	orch := newOrchestratorFixture(t, cfg, ai)

	events := []types.CalendarEvent{
		classEvent("class-1", "Calc II", testDay, 9, 0, 10, 30),
	}
	assignments := []*types.Assignment{
		pendingAssignment(1, "Essay", 2, 1.0, types.PriorityMedium),
	}

	merged, freeBlocks, recs, err := orch.BuildDayPlan(context.Background(), testRiderID, testDay, events, assignments)
	if err != nil {
		t.Fatalf("BuildDayPlan: %v", err)
	}

	// One class plus the one kept study block, sorted by start.
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged events, got %d", len(merged))
	}
	if merged[0].ID != "class-1" || merged[1].ID != "assignment-1-0" {
		t.Fatalf("unexpected merge order: %s, %s", merged[0].ID, merged[1].ID)
	}
	if merged[1].Start.Before(merged[0].End) {
		t.Fatal("study block overlaps the class")
	}
	if !merged[1].Start.Equal(at(testDay, 10, 30)) || !merged[1].End.Equal(at(testDay, 11, 30)) {
		t.Fatalf("study block should fill the gap after class, got %v-%v", merged[1].Start, merged[1].End)
	}

	// Free blocks must reflect the merged calendar, not the original one.
	for _, fb := range freeBlocks {
		for _, e := range merged {
			if fb.Start.Before(e.End) && e.Start.Before(fb.End) {
				t.Fatalf("free block %v-%v overlaps event %s", fb.Start, fb.End, e.ID)
			}
		}
	}

	if recs == nil || recs.Summary != "One study block after class." {
		t.Fatalf("unexpected recommendations %+v", recs)
	}
	if len(recs.LunchSlots) != 1 || recs.LunchSlots[0].Label != "Lunch" {
		t.Fatalf("unexpected lunch slots %+v", recs.LunchSlots)
	}
	if !recs.LunchSlots[0].Start.Equal(at(testDay, 12, 0)) {
		t.Fatalf("zone-less slot should parse into the day's location, got %v", recs.LunchSlots[0].Start)
	}
	if ai.calls != 2 {
		t.Fatalf("expected 2 advisor calls, got %d", ai.calls)
	}
}

func TestBuildDayPlanRecommendationFailurePropagates(t *testing.T) {
	ai := &scriptedAIClient{
		responses: []string{
			`{"mode": "NORMAL", "kept_block_ids": [], "reason": "Rest day"}`,
			"not json at all",
		},
	}
	orch := newOrchestratorFixture(t, DefaultPlannerConfig(), ai)

	assignments := []*types.Assignment{
		pendingAssignment(1, "Essay", 2, 1.0, types.PriorityMedium),
	}
	_, _, _, err := orch.BuildDayPlan(context.Background(), testRiderID, testDay, nil, assignments)
	if err == nil {
		t.Fatal("recommendation failure must propagate")
	}
}

func TestBuildDayPlanPlanningFailureStillCompletes(t *testing.T) {
	// First advisor call fails; the fallback keeps all blocks and the plan
	// build continues into the recommendation pass.
	ai := &scriptedAIClient{
		errs: []error{fmt.Errorf("advisor down")},
		responses: []string{
			"",
			`{"lunch_slots": [], "study_slots": [], "summary": "Fallback day."}`,
		},
	}
	orch := newOrchestratorFixture(t, DefaultPlannerConfig(), ai)

	assignments := []*types.Assignment{
		pendingAssignment(1, "Essay", 2, 1.0, types.PriorityMedium),
	}
	merged, _, recs, err := orch.BuildDayPlan(context.Background(), testRiderID, testDay, nil, assignments)
	if err != nil {
		t.Fatalf("BuildDayPlan: %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("fallback should keep the proposed block, got %d events", len(merged))
	}
	if recs.Summary != "Fallback day." {
		t.Fatalf("unexpected summary %q", recs.Summary)
	}
}

func TestBuildDayPlanNoAssignments(t *testing.T) {
	ai := &scriptedAIClient{
		responses: []string{
			`{"lunch_slots": [], "study_slots": [], "summary": "Free day."}`,
		},
	}
	orch := newOrchestratorFixture(t, DefaultPlannerConfig(), ai)

	merged, freeBlocks, recs, err := orch.BuildDayPlan(context.Background(), testRiderID, testDay, nil, nil)
	if err != nil {
		t.Fatalf("BuildDayPlan: %v", err)
	}
	if len(merged) != 0 {
		t.Fatalf("expected no events, got %d", len(merged))
	}
	if len(freeBlocks) != 1 || freeBlocks[0].DurationMinutes != 840 {
		t.Fatalf("expected the full awake window free, got %+v", freeBlocks)
	}
	if recs.Summary != "Free day." {
		t.Fatalf("unexpected summary %q", recs.Summary)
	}
	// Planning was OFF without candidates, so only the recommendation call
	// reached the advisor.
	if ai.calls != 1 {
		t.Fatalf("expected 1 advisor call, got %d", ai.calls)
	}
}
