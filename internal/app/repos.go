package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/repos"
)

type Repos struct {
	User          repos.UserRepo
	Assignment    repos.AssignmentRepo
	BusSchedule   repos.BusScheduleRepo
	BusPreference repos.BusPreferenceRepo
	DayPlan       repos.DayPlanRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          repos.NewUserRepo(db, log),
		Assignment:    repos.NewAssignmentRepo(db, log),
		BusSchedule:   repos.NewBusScheduleRepo(db, log),
		BusPreference: repos.NewBusPreferenceRepo(db, log),
		DayPlan:       repos.NewDayPlanRepo(db, log),
	}
}
