package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/repos"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

// AssignmentService wraps assignment CRUD and keeps the day-plan cache honest:
// any mutation invalidates today's cached plan for the owning user.
type AssignmentService interface {
	Create(ctx context.Context, userID uuid.UUID, input AssignmentInput) (*types.Assignment, error)
	Get(ctx context.Context, userID uuid.UUID, id uint) (*types.Assignment, error)
	List(ctx context.Context, userID uuid.UUID, includeCompleted bool) ([]*types.Assignment, error)
	Update(ctx context.Context, userID uuid.UUID, id uint, input AssignmentUpdate) (*types.Assignment, error)
	Delete(ctx context.Context, userID uuid.UUID, id uint) error
}

type AssignmentInput struct {
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description"`
	AssignmentType string    `json:"assignment_type"`
	DueDate        time.Time `json:"due_date" binding:"required"`
	EstimatedHours float64   `json:"estimated_hours"`
	Priority       int       `json:"priority"`
}

// AssignmentUpdate uses pointers so absent fields stay untouched.
type AssignmentUpdate struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	AssignmentType *string    `json:"assignment_type"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
	Priority       *int       `json:"priority"`
	Completed      *bool      `json:"completed"`
}

type assignmentService struct {
	assignRepo  repos.AssignmentRepo
	dayPlanRepo repos.DayPlanRepo
	log         *logger.Logger
}

func NewAssignmentService(assignRepo repos.AssignmentRepo, dayPlanRepo repos.DayPlanRepo, baseLog *logger.Logger) AssignmentService {
	return &assignmentService{
		assignRepo:  assignRepo,
		dayPlanRepo: dayPlanRepo,
		log:         baseLog.With("service", "AssignmentService"),
	}
}

func (s *assignmentService) Create(ctx context.Context, userID uuid.UUID, input AssignmentInput) (*types.Assignment, error) {
	if err := validateAssignmentInput(input.Title, input.EstimatedHours, input.Priority); err != nil {
		return nil, err
	}

	assignment := &types.Assignment{
		UserID:         userID,
		Title:          input.Title,
		Description:    input.Description,
		AssignmentType: input.AssignmentType,
		DueDate:        input.DueDate,
		EstimatedHours: input.EstimatedHours,
		Priority:       input.Priority,
	}
	if assignment.EstimatedHours == 0 {
		assignment.EstimatedHours = 1.0
	}
	if assignment.Priority == 0 {
		assignment.Priority = types.PriorityMedium
	}

	created, err := s.assignRepo.Create(ctx, nil, assignment)
	if err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	s.invalidateTodayPlan(ctx, userID)
	return created, nil
}

func (s *assignmentService) Get(ctx context.Context, userID uuid.UUID, id uint) (*types.Assignment, error) {
	return s.assignRepo.GetByID(ctx, nil, userID, id)
}

func (s *assignmentService) List(ctx context.Context, userID uuid.UUID, includeCompleted bool) ([]*types.Assignment, error) {
	return s.assignRepo.ListByUser(ctx, nil, userID, includeCompleted)
}

func (s *assignmentService) Update(ctx context.Context, userID uuid.UUID, id uint, input AssignmentUpdate) (*types.Assignment, error) {
	assignment, err := s.assignRepo.GetByID(ctx, nil, userID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		assignment.Title = *input.Title
	}
	if input.Description != nil {
		assignment.Description = *input.Description
	}
	if input.AssignmentType != nil {
		assignment.AssignmentType = *input.AssignmentType
	}
	if input.DueDate != nil {
		assignment.DueDate = *input.DueDate
	}
	if input.EstimatedHours != nil {
		assignment.EstimatedHours = *input.EstimatedHours
	}
	if input.Priority != nil {
		assignment.Priority = *input.Priority
	}
	if input.Completed != nil {
		assignment.Completed = *input.Completed
	}

	if err := validateAssignmentInput(assignment.Title, assignment.EstimatedHours, assignment.Priority); err != nil {
		return nil, err
	}

	updated, err := s.assignRepo.Update(ctx, nil, assignment)
	if err != nil {
		return nil, fmt.Errorf("update assignment: %w", err)
	}
	s.invalidateTodayPlan(ctx, userID)
	return updated, nil
}

func (s *assignmentService) Delete(ctx context.Context, userID uuid.UUID, id uint) error {
	if err := s.assignRepo.Delete(ctx, nil, userID, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	s.invalidateTodayPlan(ctx, userID)
	return nil
}

func (s *assignmentService) invalidateTodayPlan(ctx context.Context, userID uuid.UUID) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if _, err := s.dayPlanRepo.DeleteByUserDate(ctx, nil, userID, today); err != nil {
		s.log.Warn("Failed to invalidate cached day plan", "user_id", userID, "error", err)
	}
}

func validateAssignmentInput(title string, estimatedHours float64, priority int) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if estimatedHours < 0 {
		return fmt.Errorf("estimated_hours must not be negative")
	}
	if priority < 0 || priority > types.PriorityHigh {
		return fmt.Errorf("priority must be between %d and %d", types.PriorityLow, types.PriorityHigh)
	}
	return nil
}
