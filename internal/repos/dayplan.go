package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

// DayPlanRepo persists computed day plans keyed by (user, date). The
// scheduling core never touches this; handlers read through it and assignment
// mutations invalidate it.
type DayPlanRepo interface {
	GetByUserDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DayPlan, error)
	Upsert(ctx context.Context, tx *gorm.DB, plan *types.DayPlan) (*types.DayPlan, error)
	DeleteByUserDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (int64, error)
	DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

type dayPlanRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDayPlanRepo(db *gorm.DB, baseLog *logger.Logger) DayPlanRepo {
	repoLog := baseLog.With("repo", "DayPlanRepo")
	return &dayPlanRepo{db: db, log: repoLog}
}

func (dr *dayPlanRepo) GetByUserDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DayPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var result types.DayPlan
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *dayPlanRepo) Upsert(ctx context.Context, tx *gorm.DB, plan *types.DayPlan) (*types.DayPlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	existing, err := dr.GetByUserDate(ctx, transaction, plan.UserID, plan.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Events = plan.Events
		existing.FreeBlocks = plan.FreeBlocks
		existing.Recommendations = plan.Recommendations
		if err := transaction.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	if err := transaction.WithContext(ctx).Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}

func (dr *dayPlanRepo) DeleteByUserDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	result := transaction.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
		Delete(&types.DayPlan{})
	return result.RowsAffected, result.Error
}

func (dr *dayPlanRepo) DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	result := transaction.WithContext(ctx).
		Where("date < ?", cutoff.Format("2006-01-02")).
		Delete(&types.DayPlan{})
	return result.RowsAffected, result.Error
}
