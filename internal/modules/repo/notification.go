package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"gorm.io/gorm"
)

type NotificationRepo interface {
	Create(ctx context.Context, n *model.Notification) error
	MarkSent(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, status string, limit int) ([]*model.Notification, error)
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND status = ?", id, model.NotificationStatusPending).
		Updates(map[string]interface{}{
			"status":  model.NotificationStatusSent,
			"sent_at": time.Now(),
		}).Error
}

func (r *notificationRepo) List(ctx context.Context, status string, limit int) ([]*model.Notification, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var items []*model.Notification
	return items, q.Order("created_at DESC").Limit(limit).Find(&items).Error
}
