package app

import (
	"github.com/yungbote/dayplanner-backend/internal/jobs"
	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/services"
)

type Services struct {
	FreeTime     services.FreeTimeService
	Scheduler    services.SchedulerService
	Campus       services.CampusMatcher
	Bus          services.BusService
	AI           services.AIClient
	Agent        services.PlanningAgentService
	Orchestrator services.OrchestratorService
	Calendar     services.CalendarService
	DayPlan      services.DayPlanService
	Assignment   services.AssignmentService
	User         services.UserService
	CleanupJob   *jobs.CleanupJob
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	ai, err := services.NewAIClient(log)
	if err != nil {
		return Services{}, err
	}

	freeTime := services.NewFreeTimeService(cfg.Planner, log)
	scheduler := services.NewSchedulerService(cfg.Planner, log)
	campus := services.NewKeywordCampusMatcher()
	bus := services.NewBusService(cfg.Planner, reposet.BusSchedule, reposet.BusPreference, campus, log)
	agent := services.NewPlanningAgentService(cfg.Planner, scheduler, ai, log)
	orchestrator := services.NewOrchestratorService(cfg.Planner, freeTime, agent, bus, ai, log)
	calendar := services.NewICSCalendarService(log)
	dayPlan := services.NewDayPlanService(
		cfg.Planner,
		reposet.User,
		reposet.Assignment,
		reposet.DayPlan,
		calendar,
		orchestrator,
		freeTime,
		agent,
		bus,
		log,
	)
	assignment := services.NewAssignmentService(reposet.Assignment, reposet.DayPlan, log)
	user := services.NewUserService(reposet.User, log)
	cleanup := jobs.NewCleanupJob(reposet.DayPlan, cfg.Planner.DayPlanRetentionDays, log)

	return Services{
		FreeTime:     freeTime,
		Scheduler:    scheduler,
		Campus:       campus,
		Bus:          bus,
		AI:           ai,
		Agent:        agent,
		Orchestrator: orchestrator,
		Calendar:     calendar,
		DayPlan:      dayPlan,
		Assignment:   assignment,
		User:         user,
		CleanupJob:   cleanup,
	}, nil
}
