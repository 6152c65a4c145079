package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yungbote/dayplanner-backend/internal/types"
)

var dueInDaysPattern = regexp.MustCompile(`in (\d+) days`)

// buildPlanningPrompt formats the day context and candidate blocks into the
// decision request for the advisor. The guidance lines are advisory only; the
// advisor's parsed answer is taken as-is.
func buildPlanningPrompt(cfg PlannerConfig, context types.DayContext, candidateBlocks []types.CalendarEvent) string {
	blocksList := make([]string, 0, len(candidateBlocks))
	for _, block := range candidateBlocks {
		dueDays := ""
		if m := dueInDaysPattern.FindStringSubmatch(block.Description); m != nil {
			dueDays = fmt.Sprintf(", due in %sd", m[1])
		}
		blocksList = append(blocksList, fmt.Sprintf("%s: %s-%s%s",
			block.ID, compactClockLabel(block.Start), compactClockLabel(block.End), dueDays))
	}

	assignmentsList := make([]string, 0, len(context.AssignmentsSummary))
	for _, a := range context.AssignmentsSummary {
		assignmentsList = append(assignmentsList, fmt.Sprintf("%s (due %dd, %.1fh, P%d)",
			a.Title, a.DueInDays, a.EstimatedHours, a.Priority))
	}

	examWithin2d := "NO"
	if context.HasExamWithin2Days {
		examWithin2d = "YES"
	}
	nextExam := "none"
	if context.DaysUntilNextExam != nil {
		nextExam = fmt.Sprintf("%dd", *context.DaysUntilNextExam)
	}

	joinOrNone := func(items []string, sep string) string {
		if len(items) == 0 {
			return "None"
		}
		return strings.Join(items, sep)
	}

	return fmt.Sprintf(`Study planner for a busy student. Balance productivity + rest.

**Context (%s)**
Awake: %.0fh | If all blocks applied -> Busy: %.0fh, Study: %.0fh, Free: %.0fh
Exam <2d: %s | Next exam: %s

**Assignments:** %s

**Proposed Blocks:** %s

**Modes:** OFF(0h), LIGHT(0-1h), NORMAL(1-3h), HIGH(3-5h exam prep)
**Rules:** Keep >=%.0fh free (unless exam), prioritize urgent, avoid overload

Return JSON:
{
  "mode": "OFF"|"LIGHT"|"NORMAL"|"HIGH",
  "kept_block_ids": ["id1", "id2"],
  "reason": "Brief explanation"
}`,
		context.Date.Format("2006-01-02"),
		context.TotalAwakeHours, context.TotalBusyHours, context.TotalStudyHoursIfApplied, context.FreeHoursIfApplied,
		examWithin2d, nextExam,
		joinOrNone(assignmentsList, ", "),
		joinOrNone(blocksList, " | "),
		cfg.MinFreeHoursPerDay)
}

// buildDayPlanPrompt formats the recommendation request: lunch slots, optional
// extra study slots, a commute reminder, and a warm prose summary.
func buildDayPlanPrompt(
	date string,
	events []types.CalendarEvent,
	freeBlocks []types.FreeBlock,
	morningBusTime, eveningBusTime string,
	planningMode, planningReason string,
) string {
	var calendarList, assignmentList []string
	for _, e := range events {
		line := fmt.Sprintf("%s %s-%s", e.Title, compactClockLabel(e.Start), compactClockLabel(e.End))
		if e.EventType == types.EventTypeAssignment {
			if m := dueInDaysPattern.FindStringSubmatch(e.Description); m != nil {
				line += fmt.Sprintf(" (due %sd)", m[1])
			}
			assignmentList = append(assignmentList, line)
		} else {
			calendarList = append(calendarList, line)
		}
	}

	freeList := make([]string, 0, len(freeBlocks))
	for _, fb := range freeBlocks {
		freeList = append(freeList, fmt.Sprintf("%s-%s (%dmin)",
			compactClockLabel(fb.Start), compactClockLabel(fb.End), fb.DurationMinutes))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Day planner for a busy student (%s)\n\n", date)
	if len(calendarList) > 0 {
		fmt.Fprintf(&b, "**Classes:** %s\n", strings.Join(calendarList, ", "))
	} else {
		b.WriteString("**Classes:** None\n")
	}
	if len(assignmentList) > 0 {
		fmt.Fprintf(&b, "**Scheduled Study:** %s\n", strings.Join(assignmentList, ", "))
	}
	if len(freeList) > 0 {
		fmt.Fprintf(&b, "**Free Time:** %s\n", strings.Join(freeList, ", "))
	} else {
		b.WriteString("**Free Time:** None\n")
	}

	if morningBusTime != "" || eveningBusTime != "" {
		var busTimes []string
		if morningBusTime != "" {
			busTimes = append(busTimes, "To campus: "+morningBusTime)
		}
		if eveningBusTime != "" {
			busTimes = append(busTimes, "From campus: "+eveningBusTime)
		}
		fmt.Fprintf(&b, "**Bus:** %s\n", strings.Join(busTimes, " | "))
	}
	if planningMode != "" && planningReason != "" {
		fmt.Fprintf(&b, "**Planning Mode:** %s - %s\n", planningMode, planningReason)
	}

	fmt.Fprintf(&b, `
Generate a personalized day plan:
1. **Lunch slots**: Suggest 1-2 realistic lunch times (11AM-2PM, 30-60min) based on the class schedule. If no classes, suggest just ONE midday lunch.
2. **Study slots**: ONLY suggest if there are NO scheduled study blocks AND significant free time (2+ hours) AND there are upcoming exams. Otherwise leave empty.
3. **Commute**: If bus times are provided, remind about the commute. Otherwise omit.
4. **Summary**: Warm, friendly message that highlights scheduled study blocks if any exist, mentions bus times if relevant, and encourages enjoying free time if the day is light.

JSON format (use date %s for all datetimes):
{
  "lunch_slots": [{"start": "%sT12:00:00", "end": "%sT13:00:00", "label": "12:00 PM - 1:00 PM"}],
  "study_slots": [],
  "commute_suggestion": {"leave_by": "%sT19:15:00", "leave_by_label": "7:15 PM", "reason": "Catch evening bus home"} OR null,
  "summary": "..."
}`, date, date, date, date)

	return b.String()
}
