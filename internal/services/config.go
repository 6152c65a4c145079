package services

import "time"

// PlannerConfig carries every tunable the scheduling core reads. It is built
// once at startup and handed to each constructor; nothing in the core reaches
// for ambient state mid-algorithm.
type PlannerConfig struct {
	// Awake window used for free-time computation.
	DayStartHour int
	DayEndHour   int

	// Hard clock end for placed study blocks and the end of the awake span
	// reported to the advisor. Later than DayEndHour so late study is
	// representable even though it is never auto-filled.
	StudyDayEndHour int

	// Gaps shorter than this are not represented as free blocks.
	MinFreeBlockMinutes int

	// Scheduler caps.
	MaxStudyHoursPerDay      float64
	MaxAssignmentHoursPerDay float64
	DefaultBlockHours        float64
	MinBlockMinutes          int

	// Advisor guidance: free time to preserve unless an exam is imminent.
	MinFreeHoursPerDay float64

	// Bus matching buffers.
	ArrivalBufferMinutes   int
	DepartureBufferMinutes int

	// Commute length quoted to the recommendation advisor.
	CommuteDurationMinutes int

	// Single-attempt advisor call budget.
	AdvisorTimeout time.Duration

	// Cached day plans older than this are swept.
	DayPlanRetentionDays int
}

func DefaultPlannerConfig() PlannerConfig {
	return PlannerConfig{
		DayStartHour:             8,
		DayEndHour:               22,
		StudyDayEndHour:          23,
		MinFreeBlockMinutes:      15,
		MaxStudyHoursPerDay:      4.0,
		MaxAssignmentHoursPerDay: 2.0,
		DefaultBlockHours:        1.0,
		MinBlockMinutes:          30,
		MinFreeHoursPerDay:       3.0,
		ArrivalBufferMinutes:     15,
		DepartureBufferMinutes:   0,
		CommuteDurationMinutes:   30,
		AdvisorTimeout:           30 * time.Second,
		DayPlanRetentionDays:     7,
	}
}
