package app

import (
	"strings"
	"time"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/services"
	"github.com/yungbote/dayplanner-backend/internal/utils"
)

type Config struct {
	Planner        services.PlannerConfig
	AllowOrigins   []string
	TimetablePath  string
	PlanRateLimit  int
	PlanRateWindow time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	planner := services.DefaultPlannerConfig()
	planner.DayStartHour = utils.GetEnvAsInt("PLANNER_DAY_START_HOUR", planner.DayStartHour, log)
	planner.DayEndHour = utils.GetEnvAsInt("PLANNER_DAY_END_HOUR", planner.DayEndHour, log)
	planner.StudyDayEndHour = utils.GetEnvAsInt("PLANNER_STUDY_DAY_END_HOUR", planner.StudyDayEndHour, log)
	planner.MinFreeBlockMinutes = utils.GetEnvAsInt("PLANNER_MIN_FREE_BLOCK_MINUTES", planner.MinFreeBlockMinutes, log)
	planner.MaxStudyHoursPerDay = utils.GetEnvAsFloat("PLANNER_MAX_STUDY_HOURS_PER_DAY", planner.MaxStudyHoursPerDay, log)
	planner.MaxAssignmentHoursPerDay = utils.GetEnvAsFloat("PLANNER_MAX_ASSIGNMENT_HOURS_PER_DAY", planner.MaxAssignmentHoursPerDay, log)
	planner.DefaultBlockHours = utils.GetEnvAsFloat("PLANNER_DEFAULT_BLOCK_HOURS", planner.DefaultBlockHours, log)
	planner.MinBlockMinutes = utils.GetEnvAsInt("PLANNER_MIN_BLOCK_MINUTES", planner.MinBlockMinutes, log)
	planner.ArrivalBufferMinutes = utils.GetEnvAsInt("BUS_ARRIVAL_BUFFER_MINUTES", planner.ArrivalBufferMinutes, log)
	planner.DepartureBufferMinutes = utils.GetEnvAsInt("BUS_DEPARTURE_BUFFER_MINUTES", planner.DepartureBufferMinutes, log)
	planner.CommuteDurationMinutes = utils.GetEnvAsInt("COMMUTE_DURATION_MINUTES", planner.CommuteDurationMinutes, log)
	planner.AdvisorTimeout = time.Duration(utils.GetEnvAsInt("ADVISOR_TIMEOUT_SECONDS", int(planner.AdvisorTimeout.Seconds()), log)) * time.Second
	planner.DayPlanRetentionDays = utils.GetEnvAsInt("DAY_PLAN_RETENTION_DAYS", planner.DayPlanRetentionDays, log)

	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", log)

	return Config{
		Planner:        planner,
		AllowOrigins:   strings.Split(origins, ","),
		TimetablePath:  utils.GetEnv("BUS_TIMETABLE_PATH", "config/bus_timetable.yaml", log),
		PlanRateLimit:  utils.GetEnvAsInt("PLAN_RATE_LIMIT", 20, log),
		PlanRateWindow: time.Duration(utils.GetEnvAsInt("PLAN_RATE_WINDOW_SECONDS", 60, log)) * time.Second,
	}
}
