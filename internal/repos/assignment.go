package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

type AssignmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assignment *types.Assignment) (*types.Assignment, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, id uint) (*types.Assignment, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, includeCompleted bool) ([]*types.Assignment, error)
	Update(ctx context.Context, tx *gorm.DB, assignment *types.Assignment) (*types.Assignment, error)
	Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, id uint) error
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	repoLog := baseLog.With("repo", "AssignmentRepo")
	return &assignmentRepo{db: db, log: repoLog}
}

func (ar *assignmentRepo) Create(ctx context.Context, tx *gorm.DB, assignment *types.Assignment) (*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(assignment).Error; err != nil {
		return nil, err
	}
	return assignment, nil
}

func (ar *assignmentRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, id uint) (*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Assignment
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *assignmentRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, includeCompleted bool) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	query := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if !includeCompleted {
		query = query.Where("completed = ?", false)
	}

	var results []*types.Assignment
	if err := query.Order("due_date asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *assignmentRepo) Update(ctx context.Context, tx *gorm.DB, assignment *types.Assignment) (*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Save(assignment).Error; err != nil {
		return nil, err
	}
	return assignment, nil
}

func (ar *assignmentRepo) Delete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, id uint) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&types.Assignment{}).Error
}
