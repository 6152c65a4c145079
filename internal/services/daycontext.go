package services

import (
	"sort"
	"strings"
	"time"

	"github.com/yungbote/dayplanner-backend/internal/types"
)

var examKeywords = []string{"exam", "test", "quiz", "midterm", "final"}

// BuildDayContext reduces a day's events, candidate blocks, and assignments
// into the compact summary the planning agent reasons over. Pure aggregation:
// arithmetic plus exam detection, nothing else.
func BuildDayContext(
	cfg PlannerConfig,
	today time.Time,
	events []types.CalendarEvent,
	candidateBlocks []types.CalendarEvent,
	assignments []*types.Assignment,
	exams []types.CalendarEvent,
) types.DayContext {
	totalAwakeHours := float64(cfg.StudyDayEndHour - cfg.DayStartHour)

	totalBusyHours := 0.0
	for _, e := range events {
		totalBusyHours += e.DurationHours()
	}
	for _, b := range candidateBlocks {
		totalBusyHours += b.DurationHours()
	}

	totalStudyHours := 0.0
	for _, e := range events {
		if e.EventType == types.EventTypeAssignment {
			totalStudyHours += e.DurationHours()
		}
	}
	for _, b := range candidateBlocks {
		totalStudyHours += b.DurationHours()
	}

	freeHours := totalAwakeHours - totalBusyHours

	examEvents := exams
	if len(examEvents) == 0 {
		for _, e := range events {
			if containsAny(strings.ToLower(e.Title), examKeywords) {
				examEvents = append(examEvents, e)
			}
		}
	}

	hasExamWithin2Days := false
	var daysUntilNextExam *int
	futureExams := make([]types.CalendarEvent, 0, len(examEvents))
	for _, e := range examEvents {
		if !dateOf(e.Start).Before(dateOf(today)) {
			futureExams = append(futureExams, e)
		}
	}
	if len(futureExams) > 0 {
		sort.SliceStable(futureExams, func(i, j int) bool {
			return futureExams[i].Start.Before(futureExams[j].Start)
		})
		daysUntil := daysBetween(today, futureExams[0].Start)
		daysUntilNextExam = &daysUntil
		hasExamWithin2Days = daysUntil <= 2
	}

	summaries := make([]types.AssignmentSummary, 0, len(assignments))
	for _, a := range assignments {
		summaries = append(summaries, types.AssignmentSummary{
			ID:             a.ID,
			Title:          a.Title,
			DueInDays:      daysBetween(today, a.DueDate),
			EstimatedHours: a.EstimatedHours,
			Priority:       a.Priority,
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].DueInDays < summaries[j].DueInDays
	})

	return types.DayContext{
		Date:                     dateOf(today),
		TotalAwakeHours:          totalAwakeHours,
		TotalBusyHours:           totalBusyHours,
		TotalStudyHoursIfApplied: totalStudyHours,
		FreeHoursIfApplied:       freeHours,
		HasExamWithin2Days:       hasExamWithin2Days,
		DaysUntilNextExam:        daysUntilNextExam,
		AssignmentsSummary:       summaries,
	}
}
