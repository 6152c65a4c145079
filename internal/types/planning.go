package types

import "time"

// PlanningMode bounds total study time for the day.
type PlanningMode string

const (
	ModeOff    PlanningMode = "OFF"
	ModeLight  PlanningMode = "LIGHT"
	ModeNormal PlanningMode = "NORMAL"
	ModeHigh   PlanningMode = "HIGH"
)

func (m PlanningMode) Valid() bool {
	switch m {
	case ModeOff, ModeLight, ModeNormal, ModeHigh:
		return true
	}
	return false
}

// AgentDecision is the planning agent's verdict on the proposed study blocks.
type AgentDecision struct {
	Mode         PlanningMode `json:"mode"`
	KeptBlockIDs []string     `json:"kept_block_ids"`
	Reason       string       `json:"reason"`
}

// AssignmentSummary is the compact per-assignment line fed to the advisor.
type AssignmentSummary struct {
	ID             uint    `json:"id"`
	Title          string  `json:"title"`
	DueInDays      int     `json:"due_in_days"`
	EstimatedHours float64 `json:"estimated_hours"`
	Priority       int     `json:"priority"`
}

// DayContext is a snapshot of one day's plan-in-progress, built once per
// planning pass for the advisor prompt. Not persisted.
type DayContext struct {
	Date                     time.Time           `json:"date"`
	TotalAwakeHours          float64             `json:"total_awake_hours"`
	TotalBusyHours           float64             `json:"total_busy_hours"`
	TotalStudyHoursIfApplied float64             `json:"total_study_hours_if_applied"`
	FreeHoursIfApplied       float64             `json:"free_hours_if_applied"`
	HasExamWithin2Days       bool                `json:"has_exam_within_2_days"`
	DaysUntilNextExam        *int                `json:"days_until_next_exam"`
	AssignmentsSummary       []AssignmentSummary `json:"assignments_summary"`
}

// TimeSlot is a suggested window in the recommendation payload.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

type CommuteSuggestion struct {
	LeaveBy      time.Time `json:"leave_by"`
	LeaveByLabel string    `json:"leave_by_label"`
	Reason       string    `json:"reason"`
}

// BusSuggestion is one recommended trip, projected onto a concrete day.
type BusSuggestion struct {
	Route          BusRoute     `json:"route"`
	Direction      BusDirection `json:"direction"`
	DepartureTime  time.Time    `json:"departure_time"`
	ArrivalTime    time.Time    `json:"arrival_time"`
	DepartureLabel string       `json:"departure_label"`
	ArrivalLabel   string       `json:"arrival_label"`
	Reason         string       `json:"reason"`
	IsLateNight    bool         `json:"is_late_night"`
}

// BusSuggestionSet pairs the to-campus and from-campus picks for a day.
// Either side can be nil.
type BusSuggestionSet struct {
	Morning *BusSuggestion `json:"morning,omitempty"`
	Evening *BusSuggestion `json:"evening,omitempty"`
}

// RouteTimetable is one route's trips for a day, split by direction.
type RouteTimetable struct {
	ToCampus   []BusSuggestion `json:"to_campus"`
	FromCampus []BusSuggestion `json:"from_campus"`
}

// DayTimetable is the full weekly timetable projected onto one day.
type DayTimetable struct {
	Westside RouteTimetable `json:"westside"`
	Union    RouteTimetable `json:"union"`
}

// Recommendations is the advisor-generated plan payload.
type Recommendations struct {
	LunchSlots        []TimeSlot         `json:"lunch_slots"`
	StudySlots        []TimeSlot         `json:"study_slots"`
	CommuteSuggestion *CommuteSuggestion `json:"commute_suggestion,omitempty"`
	Summary           string             `json:"summary"`
	BusSuggestions    *BusSuggestionSet  `json:"bus_suggestions,omitempty"`
}
