package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/repos"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

type UserService interface {
	Register(ctx context.Context, input UserInput) (*types.User, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateCalendarFeed(ctx context.Context, userID uuid.UUID, feedURL string) (*types.User, error)
}

type UserInput struct {
	Email           string `json:"email" binding:"required"`
	FirstName       string `json:"first_name"`
	Timezone        string `json:"timezone"`
	CalendarFeedURL string `json:"calendar_feed_url"`
}

type userService struct {
	userRepo repos.UserRepo
	log      *logger.Logger
}

func NewUserService(userRepo repos.UserRepo, baseLog *logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      baseLog.With("service", "UserService"),
	}
}

func (s *userService) Register(ctx context.Context, input UserInput) (*types.User, error) {
	if input.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	existing, err := s.userRepo.GetByEmail(ctx, nil, input.Email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	user := &types.User{
		Email:           input.Email,
		FirstName:       input.FirstName,
		Timezone:        input.Timezone,
		CalendarFeedURL: input.CalendarFeedURL,
	}
	created, err := s.userRepo.Create(ctx, nil, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("Registered user", "user_id", created.ID, "email", created.Email)
	return created, nil
}

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	return s.userRepo.GetByID(ctx, nil, userID)
}

func (s *userService) UpdateCalendarFeed(ctx context.Context, userID uuid.UUID, feedURL string) (*types.User, error) {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	user.CalendarFeedURL = feedURL
	return s.userRepo.Update(ctx, nil, user)
}
