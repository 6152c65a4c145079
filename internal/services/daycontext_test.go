package services

import (
	"testing"

	"github.com/yungbote/dayplanner-backend/internal/types"
)

func TestBuildDayContextArithmetic(t *testing.T) {
	cfg := DefaultPlannerConfig()

	events := []types.CalendarEvent{
		classEvent("e1", "Calc II", testDay, 9, 0, 10, 30),
	}
	blocks := []types.CalendarEvent{{
		ID:        "assignment-1-0",
		Title:     "Work on Essay",
		Start:     at(testDay, 11, 0),
		End:       at(testDay, 12, 0),
		EventType: types.EventTypeAssignment,
	}}
	assignments := []*types.Assignment{
		pendingAssignment(1, "Essay", 2, 1.0, types.PriorityMedium),
	}

	ctx := BuildDayContext(cfg, testDay, events, blocks, assignments, nil)

	if ctx.TotalAwakeHours != 15.0 {
		t.Errorf("awake hours = %.1f, want 15.0", ctx.TotalAwakeHours)
	}
	if ctx.TotalBusyHours != 2.5 {
		t.Errorf("busy hours = %.1f, want 2.5", ctx.TotalBusyHours)
	}
	if ctx.TotalStudyHoursIfApplied != 1.0 {
		t.Errorf("study hours = %.1f, want 1.0", ctx.TotalStudyHoursIfApplied)
	}
	if ctx.FreeHoursIfApplied != 12.5 {
		t.Errorf("free hours = %.1f, want 12.5", ctx.FreeHoursIfApplied)
	}
	if ctx.HasExamWithin2Days {
		t.Error("no exam events, but exam flag set")
	}
	if ctx.DaysUntilNextExam != nil {
		t.Error("no exam events, but DaysUntilNextExam set")
	}
	if len(ctx.AssignmentsSummary) != 1 || ctx.AssignmentsSummary[0].DueInDays != 2 {
		t.Errorf("unexpected assignment summary %+v", ctx.AssignmentsSummary)
	}
}

func TestBuildDayContextDetectsExamsByKeyword(t *testing.T) {
	cfg := DefaultPlannerConfig()

	tests := []struct {
		title      string
		dueInDays  int
		wantWithin bool
	}{
		{"Calc II Midterm", 0, true},
		{"Chem final", 2, true},
		{"History quiz", 3, false},
		{"Study group", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			examDay := testDay.AddDate(0, 0, tt.dueInDays)
			events := []types.CalendarEvent{
				classEvent("e1", tt.title, examDay, 9, 0, 10, 0),
			}
			ctx := BuildDayContext(cfg, testDay, events, nil, nil, nil)

			isExam := tt.title != "Study group"
			if isExam {
				if ctx.DaysUntilNextExam == nil {
					t.Fatal("expected DaysUntilNextExam to be set")
				}
				if *ctx.DaysUntilNextExam != tt.dueInDays {
					t.Fatalf("DaysUntilNextExam = %d, want %d", *ctx.DaysUntilNextExam, tt.dueInDays)
				}
			} else if ctx.DaysUntilNextExam != nil {
				t.Fatal("non-exam title flagged as exam")
			}
			if ctx.HasExamWithin2Days != tt.wantWithin {
				t.Fatalf("HasExamWithin2Days = %v, want %v", ctx.HasExamWithin2Days, tt.wantWithin)
			}
		})
	}
}

func TestBuildDayContextIgnoresPastExams(t *testing.T) {
	cfg := DefaultPlannerConfig()

	exams := []types.CalendarEvent{
		classEvent("e1", "Old exam", testDay.AddDate(0, 0, -3), 9, 0, 10, 0),
	}
	ctx := BuildDayContext(cfg, testDay, nil, nil, nil, exams)
	if ctx.DaysUntilNextExam != nil || ctx.HasExamWithin2Days {
		t.Fatal("past exams should not count")
	}
}
