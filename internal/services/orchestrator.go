package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

// OrchestratorService sequences the whole day-plan pipeline: free time,
// planning agent, block merge, free-time re-derivation, bus matching, and the
// final recommendation pass.
type OrchestratorService interface {
	BuildDayPlan(ctx context.Context, userID uuid.UUID, today time.Time, events []types.CalendarEvent, assignments []*types.Assignment) ([]types.CalendarEvent, []types.FreeBlock, *types.Recommendations, error)
}

type orchestratorService struct {
	cfg      PlannerConfig
	freeTime FreeTimeService
	agent    PlanningAgentService
	bus      BusService
	ai       AIClient
	log      *logger.Logger
}

func NewOrchestratorService(
	cfg PlannerConfig,
	freeTime FreeTimeService,
	agent PlanningAgentService,
	bus BusService,
	ai AIClient,
	baseLog *logger.Logger,
) OrchestratorService {
	return &orchestratorService{
		cfg:      cfg,
		freeTime: freeTime,
		agent:    agent,
		bus:      bus,
		ai:       ai,
		log:      baseLog.With("service", "OrchestratorService"),
	}
}

// BuildDayPlan returns the merged event list, the post-merge free blocks, and
// the advisor recommendations. Free blocks are recomputed after the kept study
// blocks land because those blocks consume the very gaps the decision was
// based on; every downstream consumer must see the post-merge picture.
func (s *orchestratorService) BuildDayPlan(
	ctx context.Context,
	userID uuid.UUID,
	today time.Time,
	events []types.CalendarEvent,
	assignments []*types.Assignment,
) ([]types.CalendarEvent, []types.FreeBlock, *types.Recommendations, error) {
	freeBlocks, err := s.freeTime.Calculate(today, events)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initial free blocks: %w", err)
	}

	keptBlocks, decision := s.agent.FilterScheduleForToday(ctx, today, events, freeBlocks, assignments, nil)

	merged := make([]types.CalendarEvent, 0, len(events)+len(keptBlocks))
	merged = append(merged, events...)
	merged = append(merged, keptBlocks...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Start.Before(merged[j].Start)
	})

	freeBlocks, err = s.freeTime.Calculate(today, merged)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("recompute free blocks: %w", err)
	}

	morningBus, eveningBus, err := s.bus.SuggestionsForDay(ctx, userID, today, merged)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("bus suggestions: %w", err)
	}

	recommendations, err := s.generateRecommendations(ctx, today, merged, freeBlocks, morningBus, eveningBus, decision)
	if err != nil {
		// No prose fallback exists for the recommendation pass; surface the
		// failure instead of returning a half-built plan.
		return nil, nil, nil, fmt.Errorf("generate recommendations: %w", err)
	}

	if morningBus != nil || eveningBus != nil {
		recommendations.BusSuggestions = &types.BusSuggestionSet{
			Morning: morningBus,
			Evening: eveningBus,
		}
	}

	return merged, freeBlocks, recommendations, nil
}

// rawRecommendations matches the advisor's JSON shape. Datetimes arrive
// without a zone offset, so they decode as strings and are parsed into the
// day's location afterwards.
type rawRecommendations struct {
	LunchSlots []rawTimeSlot `json:"lunch_slots"`
	StudySlots []rawTimeSlot `json:"study_slots"`
	Commute    *rawCommute   `json:"commute_suggestion"`
	Summary    string        `json:"summary"`
}

type rawTimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
}

type rawCommute struct {
	LeaveBy      string `json:"leave_by"`
	LeaveByLabel string `json:"leave_by_label"`
	Reason       string `json:"reason"`
}

func (s *orchestratorService) generateRecommendations(
	ctx context.Context,
	today time.Time,
	events []types.CalendarEvent,
	freeBlocks []types.FreeBlock,
	morningBus, eveningBus *types.BusSuggestion,
	decision types.AgentDecision,
) (*types.Recommendations, error) {
	morningBusTime := ""
	if morningBus != nil {
		morningBusTime = fmt.Sprintf("%s (arrives %s)", morningBus.DepartureLabel, morningBus.ArrivalLabel)
	}
	eveningBusTime := ""
	if eveningBus != nil {
		eveningBusTime = fmt.Sprintf("%s (arrives %s)", eveningBus.DepartureLabel, eveningBus.ArrivalLabel)
	}

	date := dateOf(today).Format("2006-01-02")
	prompt := buildDayPlanPrompt(date, events, freeBlocks, morningBusTime, eveningBusTime, string(decision.Mode), decision.Reason)

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.AdvisorTimeout)
	defer cancel()

	completion, err := s.ai.Chat(callCtx, []AIMessage{{Role: "user", Content: prompt}}, &AIOptions{
		Temperature: 0.7,
		JSONMode:    true,
	})
	if err != nil {
		return nil, err
	}

	body, ok := ExtractJSONObject(completion.Content)
	if !ok {
		return nil, fmt.Errorf("advisor recommendations are not parseable JSON")
	}

	var raw rawRecommendations
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("decode advisor recommendations: %w", err)
	}

	loc := today.Location()
	lunch, err := parseTimeSlots(raw.LunchSlots, loc)
	if err != nil {
		return nil, fmt.Errorf("lunch slots: %w", err)
	}
	study, err := parseTimeSlots(raw.StudySlots, loc)
	if err != nil {
		return nil, fmt.Errorf("study slots: %w", err)
	}

	rec := &types.Recommendations{
		LunchSlots: lunch,
		StudySlots: study,
		Summary:    raw.Summary,
	}
	if raw.Commute != nil {
		leaveBy, err := parseFlexibleTime(raw.Commute.LeaveBy, loc)
		if err != nil {
			return nil, fmt.Errorf("commute suggestion: %w", err)
		}
		rec.CommuteSuggestion = &types.CommuteSuggestion{
			LeaveBy:      leaveBy,
			LeaveByLabel: raw.Commute.LeaveByLabel,
			Reason:       raw.Commute.Reason,
		}
	}
	return rec, nil
}

func parseTimeSlots(raw []rawTimeSlot, loc *time.Location) ([]types.TimeSlot, error) {
	slots := make([]types.TimeSlot, 0, len(raw))
	for _, r := range raw {
		start, err := parseFlexibleTime(r.Start, loc)
		if err != nil {
			return nil, err
		}
		end, err := parseFlexibleTime(r.End, loc)
		if err != nil {
			return nil, err
		}
		slots = append(slots, types.TimeSlot{Start: start, End: end, Label: r.Label})
	}
	return slots, nil
}

// parseFlexibleTime accepts RFC3339 or the zone-less "2006-01-02T15:04:05"
// form advisors usually emit, interpreting the latter in loc.
func parseFlexibleTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime %q", s)
	}
	return t, nil
}
