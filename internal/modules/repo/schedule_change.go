package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"gorm.io/gorm"
)

// ScheduleChangeRepo is read-only: schedule changes are written through
// the relocation aggregate so their status always follows the parent.
type ScheduleChangeRepo interface {
	ListByRelocation(ctx context.Context, relocationID uuid.UUID) ([]*model.ScheduleChange, error)
	List(ctx context.Context, status string) ([]*model.ScheduleChange, error)
}

type scheduleChangeRepo struct{ db *gorm.DB }

func NewScheduleChangeRepo(db *gorm.DB) ScheduleChangeRepo {
	return &scheduleChangeRepo{db: db}
}

func (r *scheduleChangeRepo) ListByRelocation(ctx context.Context, relocationID uuid.UUID) ([]*model.ScheduleChange, error) {
	var items []*model.ScheduleChange
	return items, r.db.WithContext(ctx).
		Where("relocation_id = ?", relocationID).
		Order("created_at ASC").
		Find(&items).Error
}

func (r *scheduleChangeRepo) List(ctx context.Context, status string) ([]*model.ScheduleChange, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var items []*model.ScheduleChange
	return items, q.Order("start_date DESC").Find(&items).Error
}
