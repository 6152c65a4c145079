package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/yungbote/dayplanner-backend/internal/types"
)

type fakeAIClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeAIClient) Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (*AICompletion, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &AICompletion{Content: f.response}, nil
}

func newAgentFixture(t *testing.T, ai AIClient) PlanningAgentService {
	t.Helper()
	cfg := DefaultPlannerConfig()
	scheduler := NewSchedulerService(cfg, newTestLogger(t))
	return NewPlanningAgentService(cfg, scheduler, ai, newTestLogger(t))
}

func TestFilterScheduleOffWithoutCandidates(t *testing.T) {
	ai := &fakeAIClient{}
	agent := newAgentFixture(t, ai)

	kept, decision := agent.FilterScheduleForToday(context.Background(), testDay, nil, fullDayFree(testDay), nil, nil)
	if len(kept) != 0 {
		t.Fatalf("expected no kept blocks, got %d", len(kept))
	}
	if decision.Mode != types.ModeOff {
		t.Fatalf("expected OFF, got %s", decision.Mode)
	}
	if ai.calls != 0 {
		t.Fatalf("advisor should not be called with zero candidates, got %d calls", ai.calls)
	}
}

func TestFilterScheduleKeepsOnlyNamedBlocks(t *testing.T) {
	ai := &fakeAIClient{
		response: `{"mode": "LIGHT", "kept_block_ids": ["assignment-1-0"], "reason": "Exam tomorrow, protect free time"}`,
	}
	agent := newAgentFixture(t, ai)

	assignments := []*types.Assignment{
		pendingAssignment(1, "Essay", 2, 2.0, types.PriorityMedium),
	}
	kept, decision := agent.FilterScheduleForToday(context.Background(), testDay, nil, fullDayFree(testDay), assignments, nil)

	if decision.Mode != types.ModeLight {
		t.Fatalf("expected LIGHT, got %s", decision.Mode)
	}
	if len(kept) != 1 || kept[0].ID != "assignment-1-0" {
		t.Fatalf("expected only assignment-1-0, got %+v", kept)
	}
}

func TestFilterScheduleFallbackOnAdvisorError(t *testing.T) {
	ai := &fakeAIClient{err: fmt.Errorf("connection refused")}
	agent := newAgentFixture(t, ai)

	assignments := []*types.Assignment{
		pendingAssignment(1, "Essay", 2, 1.5, types.PriorityMedium),
	}
	kept, decision := agent.FilterScheduleForToday(context.Background(), testDay, nil, fullDayFree(testDay), assignments, nil)

	if decision.Mode != types.ModeNormal {
		t.Fatalf("fallback mode should be NORMAL, got %s", decision.Mode)
	}
	// Fallback keeps every proposed block.
	if len(kept) != 2 {
		t.Fatalf("expected all 2 proposed blocks kept, got %d", len(kept))
	}
	if len(decision.KeptBlockIDs) != 2 {
		t.Fatalf("decision should name both blocks, got %v", decision.KeptBlockIDs)
	}
}

func TestFilterScheduleFallbackOnGarbageResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose only", "I think you should study in the morning."},
		{"unknown mode", `{"mode": "TURBO", "kept_block_ids": [], "reason": "x"}`},
		{"empty body", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := &fakeAIClient{response: tt.response}
			agent := newAgentFixture(t, ai)

			assignments := []*types.Assignment{
				pendingAssignment(1, "Essay", 2, 1.0, types.PriorityMedium),
			}
			kept, decision := agent.FilterScheduleForToday(context.Background(), testDay, nil, fullDayFree(testDay), assignments, nil)
			if decision.Mode != types.ModeNormal {
				t.Fatalf("expected NORMAL fallback, got %s", decision.Mode)
			}
			if len(kept) != 1 {
				t.Fatalf("expected the proposed block kept, got %d", len(kept))
			}
		})
	}
}

func TestFilterScheduleAcceptsFencedJSON(t *testing.T) {
	ai := &fakeAIClient{
		response: "```json\n{\"mode\": \"HIGH\", \"kept_block_ids\": [\"assignment-1-0\", \"assignment-1-1\"], \"reason\": \"Heavy day ahead\"}\n```",
	}
	agent := newAgentFixture(t, ai)

	assignments := []*types.Assignment{
		pendingAssignment(1, "Essay", 1, 2.0, types.PriorityHigh),
	}
	kept, decision := agent.FilterScheduleForToday(context.Background(), testDay, nil, fullDayFree(testDay), assignments, nil)
	if decision.Mode != types.ModeHigh {
		t.Fatalf("expected HIGH, got %s", decision.Mode)
	}
	if len(kept) != 2 {
		t.Fatalf("expected 2 kept blocks, got %d", len(kept))
	}
}

func TestFilterScheduleEmptyKeepSetDropsEverything(t *testing.T) {
	ai := &fakeAIClient{
		response: `{"mode": "OFF", "kept_block_ids": [], "reason": "Exam today, rest instead"}`,
	}
	agent := newAgentFixture(t, ai)

	assignments := []*types.Assignment{
		pendingAssignment(1, "Essay", 2, 1.0, types.PriorityMedium),
	}
	kept, decision := agent.FilterScheduleForToday(context.Background(), testDay, nil, fullDayFree(testDay), assignments, nil)
	if decision.Mode != types.ModeOff {
		t.Fatalf("expected OFF, got %s", decision.Mode)
	}
	if len(kept) != 0 {
		t.Fatalf("expected no kept blocks, got %d", len(kept))
	}
}
