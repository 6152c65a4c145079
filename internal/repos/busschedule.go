package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/dayplanner-backend/internal/logger"
	"github.com/yungbote/dayplanner-backend/internal/types"
)

type BusScheduleRepo interface {
	ListByDirection(ctx context.Context, tx *gorm.DB, direction types.BusDirection, dayOfWeek int) ([]*types.BusSchedule, error)
	ListByRouteDirection(ctx context.Context, tx *gorm.DB, route types.BusRoute, direction types.BusDirection, dayOfWeek int) ([]*types.BusSchedule, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, trips []*types.BusSchedule) error
}

type busScheduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBusScheduleRepo(db *gorm.DB, baseLog *logger.Logger) BusScheduleRepo {
	repoLog := baseLog.With("repo", "BusScheduleRepo")
	return &busScheduleRepo{db: db, log: repoLog}
}

func (br *busScheduleRepo) ListByDirection(ctx context.Context, tx *gorm.DB, direction types.BusDirection, dayOfWeek int) ([]*types.BusSchedule, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.BusSchedule
	if err := transaction.WithContext(ctx).
		Where("direction = ? AND day_of_week = ?", direction, dayOfWeek).
		Order("departure_time asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *busScheduleRepo) ListByRouteDirection(ctx context.Context, tx *gorm.DB, route types.BusRoute, direction types.BusDirection, dayOfWeek int) ([]*types.BusSchedule, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var results []*types.BusSchedule
	if err := transaction.WithContext(ctx).
		Where("route = ? AND direction = ? AND day_of_week = ?", route, direction, dayOfWeek).
		Order("departure_time asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (br *busScheduleRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.BusSchedule{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (br *busScheduleRepo) CreateBatch(ctx context.Context, tx *gorm.DB, trips []*types.BusSchedule) error {
	transaction := tx
	if transaction == nil {
		transaction = br.db
	}

	if len(trips) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&trips).Error
}
