package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

// SchedulerService proposes study blocks for pending assignments. It is a pure
// computation: nothing is written to the database or cache, and identical
// inputs always produce the identical block list, IDs included.
type SchedulerService interface {
	ProposeBlocksForToday(today time.Time, events []types.CalendarEvent, freeBlocks []types.FreeBlock, assignments []*types.Assignment) []types.CalendarEvent
}

type schedulerService struct {
	cfg PlannerConfig
	log *logger.Logger
}

func NewSchedulerService(cfg PlannerConfig, baseLog *logger.Logger) SchedulerService {
	return &schedulerService{
		cfg: cfg,
		log: baseLog.With("service", "SchedulerService"),
	}
}

// ProposeBlocksForToday greedily places bounded study sessions into free time.
// Assignments are taken soonest-due first (priority breaks ties), each capped
// at MaxAssignmentHoursPerDay so one urgent task cannot eat the whole daily
// budget, and the sum of all placed blocks never exceeds MaxStudyHoursPerDay.
// The daily budget is seeded from assignment blocks already on the calendar,
// so re-running after a partial commit does not double-book.
func (s *schedulerService) ProposeBlocksForToday(
	today time.Time,
	events []types.CalendarEvent,
	freeBlocks []types.FreeBlock,
	assignments []*types.Assignment,
) []types.CalendarEvent {
	s.log.Info("Starting assignment scheduling",
		"date", dateOf(today).Format("2006-01-02"),
		"free_blocks", len(freeBlocks),
		"total_assignments", len(assignments))

	todayMidnight := dateOf(today)

	eligible := make([]*types.Assignment, 0, len(assignments))
	for _, a := range assignments {
		if a.Completed || a.DueDate.Before(todayMidnight) || a.EstimatedHours <= 0 {
			continue
		}
		eligible = append(eligible, a)
	}
	if len(eligible) == 0 {
		s.log.Info("No eligible assignments to schedule")
		return nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if !eligible[i].DueDate.Equal(eligible[j].DueDate) {
			return eligible[i].DueDate.Before(eligible[j].DueDate)
		}
		return eligible[i].Priority > eligible[j].Priority
	})

	alreadyScheduledHours := 0.0
	for _, e := range events {
		if e.EventType == types.EventTypeAssignment {
			alreadyScheduledHours += e.DurationHours()
		}
	}

	// Gaps are consumed as blocks land in them so a later assignment can never
	// be placed on top of an earlier one's blocks.
	gaps := make([]types.FreeBlock, len(freeBlocks))
	copy(gaps, freeBlocks)
	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].Start.Before(gaps[j].Start)
	})

	minBlockHours := float64(s.cfg.MinBlockMinutes) / 60.0
	blockCounter := make(map[uint]int, len(eligible))
	var placed []types.CalendarEvent

	for _, assignment := range eligible {
		hoursAvailableToday := s.cfg.MaxStudyHoursPerDay - alreadyScheduledHours
		if hoursAvailableToday <= 0 {
			s.log.Debug("Hit max study hours, stopping", "max_hours", s.cfg.MaxStudyHoursPerDay)
			break
		}

		hoursForToday := min3(assignment.EstimatedHours, hoursAvailableToday, s.cfg.MaxAssignmentHoursPerDay)
		if hoursForToday <= 0 {
			continue
		}

		remainingHours := hoursForToday
		blockCounter[assignment.ID] = 0

		for gi := range gaps {
			if remainingHours <= 0 {
				break
			}
			if gaps[gi].End.Sub(gaps[gi].Start).Hours() < minBlockHours {
				continue
			}

			cursor := gaps[gi].Start
			for remainingHours > 0 && cursor.Before(gaps[gi].End) {
				untilFreeEnd := gaps[gi].End.Sub(cursor).Hours()
				if untilFreeEnd < minBlockHours {
					break
				}

				blockHours := min3(s.cfg.DefaultBlockHours, remainingHours, untilFreeEnd)
				blockStart := cursor
				blockEnd := cursor.Add(durationHours(blockHours))

				dayEnd := time.Date(blockStart.Year(), blockStart.Month(), blockStart.Day(),
					s.cfg.StudyDayEndHour, 0, 0, 0, blockStart.Location())
				if blockEnd.After(dayEnd) {
					blockEnd = dayEnd
					blockHours = blockEnd.Sub(blockStart).Hours()
				}
				if blockHours < minBlockHours {
					break
				}

				daysUntilDue := daysBetween(today, assignment.DueDate)
				placed = append(placed, types.CalendarEvent{
					ID:    fmt.Sprintf("assignment-%d-%d", assignment.ID, blockCounter[assignment.ID]),
					Title: fmt.Sprintf("Work on %s", assignment.Title),
					Start: blockStart,
					End:   blockEnd,
					Description: fmt.Sprintf("Auto-scheduled study block for assignment due %s (in %d days)",
						assignment.DueDate.Format(time.RFC3339), daysUntilDue),
					EventType: types.EventTypeAssignment,
				})
				blockCounter[assignment.ID]++

				cursor = blockEnd
				gaps[gi].Start = blockEnd
				remainingHours -= blockHours
				alreadyScheduledHours += blockHours

				if alreadyScheduledHours >= s.cfg.MaxStudyHoursPerDay {
					break
				}
			}
			if alreadyScheduledHours >= s.cfg.MaxStudyHoursPerDay {
				break
			}
		}
	}

	totalHours := 0.0
	for _, e := range placed {
		totalHours += e.DurationHours()
	}
	s.log.Info("Created assignment blocks", "blocks", len(placed), "total_hours", fmt.Sprintf("%.1fh", totalHours))

	return placed
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func durationHours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
