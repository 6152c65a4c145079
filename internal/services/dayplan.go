package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/repos"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

// DayPlanService is the request-level workflow around the scheduling core:
// cache lookup, collaborator fetches, orchestration, cache write-back.
type DayPlanService interface {
	GetDayPlan(ctx context.Context, userID uuid.UUID, refresh bool) (*DayPlanResult, error)
	AutoscheduleToday(ctx context.Context, userID uuid.UUID, assignmentID uint) (*AutoscheduleResult, error)
	BusesForToday(ctx context.Context, userID uuid.UUID, filterBySchedule bool) (*types.DayTimetable, error)
}

type DayPlanResult struct {
	Date            string                 `json:"date"`
	Events          []types.CalendarEvent  `json:"events"`
	FreeBlocks      []types.FreeBlock      `json:"free_blocks"`
	Recommendations *types.Recommendations `json:"recommendations"`
	Cached          bool                   `json:"cached"`
}

type AutoscheduleResult struct {
	Decision   string                `json:"decision"`
	Reason     string                `json:"reason"`
	Blocks     []types.CalendarEvent `json:"blocks"`
	Assignment *types.Assignment     `json:"assignment,omitempty"`
}

type dayPlanService struct {
	cfg          PlannerConfig
	userRepo     repos.UserRepo
	assignRepo   repos.AssignmentRepo
	dayPlanRepo  repos.DayPlanRepo
	calendar     CalendarService
	orchestrator OrchestratorService
	freeTime     FreeTimeService
	agent        PlanningAgentService
	bus          BusService
	log          *logger.Logger
}

func NewDayPlanService(
	cfg PlannerConfig,
	userRepo repos.UserRepo,
	assignRepo repos.AssignmentRepo,
	dayPlanRepo repos.DayPlanRepo,
	calendar CalendarService,
	orchestrator OrchestratorService,
	freeTime FreeTimeService,
	agent PlanningAgentService,
	bus BusService,
	baseLog *logger.Logger,
) DayPlanService {
	return &dayPlanService{
		cfg:          cfg,
		userRepo:     userRepo,
		assignRepo:   assignRepo,
		dayPlanRepo:  dayPlanRepo,
		calendar:     calendar,
		orchestrator: orchestrator,
		freeTime:     freeTime,
		agent:        agent,
		bus:          bus,
		log:          baseLog.With("service", "DayPlanService"),
	}
}

// GetDayPlan serves today's plan, preferring the cached copy unless refresh is
// requested. Identical inputs produce identical plans, so serving the cache is
// safe; assignment mutations invalidate it.
func (s *dayPlanService) GetDayPlan(ctx context.Context, userID uuid.UUID, refresh bool) (*DayPlanResult, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	loc := user.Location()
	today := time.Now().In(loc)
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	if !refresh {
		cached, err := s.dayPlanRepo.GetByUserDate(ctx, nil, userID, date)
		if err != nil {
			return nil, fmt.Errorf("read cached plan: %w", err)
		}
		if cached != nil {
			result, err := decodeCachedPlan(cached)
			if err == nil {
				s.log.Debug("Serving cached day plan", "user_id", userID, "date", date.Format("2006-01-02"))
				return result, nil
			}
			s.log.Warn("Cached day plan is unreadable, rebuilding", "user_id", userID, "error", err)
		}
	}

	var events []types.CalendarEvent
	var assignments []*types.Assignment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		events, err = s.calendar.EventsForDay(gctx, user, date)
		if err != nil {
			return fmt.Errorf("fetch calendar events: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		assignments, err = s.assignRepo.ListByUser(gctx, nil, userID, false)
		if err != nil {
			return fmt.Errorf("list assignments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	finalEvents, finalFree, recommendations, err := s.orchestrator.BuildDayPlan(ctx, userID, date, events, assignments)
	if err != nil {
		return nil, fmt.Errorf("build day plan: %w", err)
	}

	if err := s.storePlan(ctx, userID, date, finalEvents, finalFree, recommendations); err != nil {
		// A cache write failure is not worth failing the request over.
		s.log.Warn("Failed to cache day plan", "user_id", userID, "error", err)
	}

	return &DayPlanResult{
		Date:            date.Format("2006-01-02"),
		Events:          finalEvents,
		FreeBlocks:      finalFree,
		Recommendations: recommendations,
	}, nil
}

// AutoscheduleToday runs the planning agent for one assignment in isolation,
// leaving the cached plan untouched.
func (s *dayPlanService) AutoscheduleToday(ctx context.Context, userID uuid.UUID, assignmentID uint) (*AutoscheduleResult, error) {
	assignment, err := s.assignRepo.GetByID(ctx, nil, userID, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("load assignment: %w", err)
	}
	if assignment.Completed {
		return &AutoscheduleResult{
			Decision: "SKIPPED",
			Reason:   "Assignment is already completed",
			Blocks:   []types.CalendarEvent{},
		}, nil
	}

	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	loc := user.Location()
	today := time.Now().In(loc)
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	events, err := s.calendar.EventsForDay(ctx, user, date)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar events: %w", err)
	}

	freeBlocks, err := s.freeTime.Calculate(date, events)
	if err != nil {
		return nil, fmt.Errorf("calculate free blocks: %w", err)
	}

	kept, decision := s.agent.FilterScheduleForToday(ctx, date, events, freeBlocks, []*types.Assignment{assignment}, nil)
	if kept == nil {
		kept = []types.CalendarEvent{}
	}

	return &AutoscheduleResult{
		Decision:   string(decision.Mode),
		Reason:     decision.Reason,
		Blocks:     kept,
		Assignment: assignment,
	}, nil
}

// BusesForToday lists today's remaining timetable per route, optionally
// narrowed to trips that fit around the user's campus events.
func (s *dayPlanService) BusesForToday(ctx context.Context, userID uuid.UUID, filterBySchedule bool) (*types.DayTimetable, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}

	loc := user.Location()
	today := time.Now().In(loc)
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	var events []types.CalendarEvent
	if filterBySchedule {
		events, err = s.calendar.EventsForDay(ctx, user, date)
		if err != nil {
			return nil, fmt.Errorf("fetch calendar events: %w", err)
		}
	}

	return s.bus.AllBusesForDay(ctx, date, events, filterBySchedule)
}

func (s *dayPlanService) storePlan(
	ctx context.Context,
	userID uuid.UUID,
	date time.Time,
	events []types.CalendarEvent,
	freeBlocks []types.FreeBlock,
	recommendations *types.Recommendations,
) error {
	eventsJSON, err := json.Marshal(events)
	if err != nil {
		return err
	}
	freeJSON, err := json.Marshal(freeBlocks)
	if err != nil {
		return err
	}
	recJSON, err := json.Marshal(recommendations)
	if err != nil {
		return err
	}

	_, err = s.dayPlanRepo.Upsert(ctx, nil, &types.DayPlan{
		UserID:          userID,
		Date:            date,
		Events:          datatypes.JSON(eventsJSON),
		FreeBlocks:      datatypes.JSON(freeJSON),
		Recommendations: datatypes.JSON(recJSON),
	})
	return err
}

func decodeCachedPlan(plan *types.DayPlan) (*DayPlanResult, error) {
	var events []types.CalendarEvent
	if err := json.Unmarshal(plan.Events, &events); err != nil {
		return nil, err
	}
	var freeBlocks []types.FreeBlock
	if err := json.Unmarshal(plan.FreeBlocks, &freeBlocks); err != nil {
		return nil, err
	}
	var recommendations types.Recommendations
	if err := json.Unmarshal(plan.Recommendations, &recommendations); err != nil {
		return nil, err
	}
	return &DayPlanResult{
		Date:            plan.Date.Format("2006-01-02"),
		Events:          events,
		FreeBlocks:      freeBlocks,
		Recommendations: &recommendations,
		Cached:          true,
	}, nil
}
