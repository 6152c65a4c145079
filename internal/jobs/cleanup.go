package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/repos"
)

// CleanupJob prunes cached day plans past their retention window on a nightly
// schedule.
type CleanupJob struct {
	cron          *cron.Cron
	dayPlanRepo   repos.DayPlanRepo
	retentionDays int
	log           *logger.Logger
}

func NewCleanupJob(dayPlanRepo repos.DayPlanRepo, retentionDays int, baseLog *logger.Logger) *CleanupJob {
	return &CleanupJob{
		cron:          cron.New(),
		dayPlanRepo:   dayPlanRepo,
		retentionDays: retentionDays,
		log:           baseLog.With("job", "CleanupJob"),
	}
}

func (j *CleanupJob) Start() error {
	// 03:15 local, after any late-night plan refreshes have settled.
	if _, err := j.cron.AddFunc("15 3 * * *", j.runOnce); err != nil {
		return err
	}
	j.cron.Start()
	j.log.Info("Scheduled day plan cleanup", "retention_days", j.retentionDays)
	return nil
}

func (j *CleanupJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *CleanupJob) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -j.retentionDays)
	deleted, err := j.dayPlanRepo.DeleteOlderThan(ctx, nil, cutoff)
	if err != nil {
		j.log.Error("Day plan cleanup failed", "error", err)
		return
	}
	if deleted > 0 {
		j.log.Info("Pruned old day plans", "deleted", deleted, "cutoff", cutoff.Format("2006-01-02"))
	}
}
