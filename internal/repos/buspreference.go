package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

// BusPreferenceRepo reads per-user bus timing preferences. A user without a
// row is a nil result, not an error; callers fall back to configured defaults.
type BusPreferenceRepo interface {
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserBusPreference, error)
	Upsert(ctx context.Context, tx *gorm.DB, pref *types.UserBusPreference) (*types.UserBusPreference, error)
}

type busPreferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBusPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) BusPreferenceRepo {
	repoLog := baseLog.With("repo", "BusPreferenceRepo")
	return &busPreferenceRepo{db: db, log: repoLog}
}

func (br *busPreferenceRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserBusPreference, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var result types.UserBusPreference
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (br *busPreferenceRepo) Upsert(ctx context.Context, tx *gorm.DB, pref *types.UserBusPreference) (*types.UserBusPreference, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	existing, err := br.GetByUser(ctx, transaction, pref.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.AutoCreateEvents = pref.AutoCreateEvents
		existing.ArrivalBufferMinutes = pref.ArrivalBufferMinutes
		existing.DepartureBufferMinutes = pref.DepartureBufferMinutes
		if err := transaction.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}
	if err := transaction.WithContext(ctx).Create(pref).Error; err != nil {
		return nil, err
	}
	return pref, nil
}
