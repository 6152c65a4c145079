package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

// PlanningAgentService decides which proposed study blocks survive and at what
// intensity. The decision is delegated to the advisor; every advisor failure
// collapses to the same deterministic answer, so this call itself never fails.
type PlanningAgentService interface {
	FilterScheduleForToday(ctx context.Context, today time.Time, events []types.CalendarEvent, freeBlocks []types.FreeBlock, assignments []*types.Assignment, exams []types.CalendarEvent) ([]types.CalendarEvent, types.AgentDecision)
}

type planningAgentService struct {
	cfg       PlannerConfig
	scheduler SchedulerService
	ai        AIClient
	log       *logger.Logger
}

func NewPlanningAgentService(cfg PlannerConfig, scheduler SchedulerService, ai AIClient, baseLog *logger.Logger) PlanningAgentService {
	return &planningAgentService{
		cfg:       cfg,
		scheduler: scheduler,
		ai:        ai,
		log:       baseLog.With("service", "PlanningAgentService"),
	}
}

// FilterScheduleForToday runs propose -> summarize -> decide. With zero
// candidates it short-circuits to OFF without an advisor round-trip. The kept
// blocks are exactly the candidates whose IDs appear in the decision's
// keep-set; unnamed blocks are dropped silently.
func (s *planningAgentService) FilterScheduleForToday(
	ctx context.Context,
	today time.Time,
	events []types.CalendarEvent,
	freeBlocks []types.FreeBlock,
	assignments []*types.Assignment,
	exams []types.CalendarEvent,
) ([]types.CalendarEvent, types.AgentDecision) {
	s.log.Info("Starting intelligent scheduling", "date", dateOf(today).Format("2006-01-02"))

	candidateBlocks := s.scheduler.ProposeBlocksForToday(today, events, freeBlocks, assignments)
	s.log.Info("Scheduler proposed blocks", "count", len(candidateBlocks))

	if len(candidateBlocks) == 0 {
		return nil, types.AgentDecision{
			Mode:         types.ModeOff,
			KeptBlockIDs: []string{},
			Reason:       "No study blocks needed today - no assignments or no free time",
		}
	}

	dayContext := BuildDayContext(s.cfg, today, events, candidateBlocks, assignments, exams)
	s.log.Debug("Day context built",
		"awake_hours", fmt.Sprintf("%.1fh", dayContext.TotalAwakeHours),
		"busy_hours", fmt.Sprintf("%.1fh", dayContext.TotalBusyHours),
		"study_hours", fmt.Sprintf("%.1fh", dayContext.TotalStudyHoursIfApplied),
		"free_hours", fmt.Sprintf("%.1fh", dayContext.FreeHoursIfApplied),
		"exam_within_2d", dayContext.HasExamWithin2Days)

	prompt := buildPlanningPrompt(s.cfg, dayContext, candidateBlocks)

	decision, err := s.askAdvisor(ctx, prompt)
	if err != nil {
		s.log.Error("Advisor call failed, using fallback decision", "error", err)
		keptIDs := make([]string, 0, len(candidateBlocks))
		for _, b := range candidateBlocks {
			keptIDs = append(keptIDs, b.ID)
		}
		decision = types.AgentDecision{
			Mode:         types.ModeNormal,
			KeptBlockIDs: keptIDs,
			Reason:       fmt.Sprintf("Advisor unavailable, keeping all proposed blocks. Error: %v", err),
		}
	} else {
		s.log.Info("Decision made",
			"mode", decision.Mode,
			"kept_blocks", len(decision.KeptBlockIDs),
			"reason", decision.Reason)
	}

	keptIDs := make(map[string]struct{}, len(decision.KeptBlockIDs))
	for _, id := range decision.KeptBlockIDs {
		keptIDs[id] = struct{}{}
	}
	kept := make([]types.CalendarEvent, 0, len(candidateBlocks))
	for _, b := range candidateBlocks {
		if _, ok := keptIDs[b.ID]; ok {
			kept = append(kept, b)
		}
	}

	s.log.Info("Returning kept blocks", "count", len(kept))
	return kept, decision
}

func (s *planningAgentService) askAdvisor(ctx context.Context, prompt string) (types.AgentDecision, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.AdvisorTimeout)
	defer cancel()

	completion, err := s.ai.Chat(callCtx, []AIMessage{{Role: "user", Content: prompt}}, &AIOptions{
		Temperature: 0.3,
		JSONMode:    true,
	})
	if err != nil {
		return types.AgentDecision{}, err
	}

	body, ok := ExtractJSONObject(completion.Content)
	if !ok {
		return types.AgentDecision{}, fmt.Errorf("advisor response is not parseable JSON")
	}

	var decision types.AgentDecision
	if err := json.Unmarshal([]byte(body), &decision); err != nil {
		return types.AgentDecision{}, fmt.Errorf("decode advisor decision: %w", err)
	}
	if !decision.Mode.Valid() {
		return types.AgentDecision{}, fmt.Errorf("advisor returned unknown mode %q", decision.Mode)
	}
	if decision.KeptBlockIDs == nil {
		decision.KeptBlockIDs = []string{}
	}
	return decision, nil
}
