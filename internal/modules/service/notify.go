package service

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/queue"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/repo"
	"go.uber.org/zap"
)

// Notifier is the write side of the notification shell. It is a pure
// projection: it re-reads nothing and derives messages from the
// entities handed to it.
type Notifier interface {
	RelocationStatusChanged(ctx context.Context, rel *model.RoomRelocation, fromStatus string)
	ScheduleChangeRecorded(ctx context.Context, sc *model.ScheduleChange)
}

type NotifyService interface {
	Notifier
	List(ctx context.Context, status string, limit int) ([]*model.Notification, error)
	// StartDispatcher consumes published notifications and marks their
	// rows sent. Blocks until ctx is cancelled or the channel closes.
	StartDispatcher(ctx context.Context, conn *amqp.Connection, queueName string, prefetch int) error
}

type notifyService struct {
	r   repo.NotificationRepo
	pub *queue.Publisher
	log *zap.Logger
}

func NewNotifyService(r repo.NotificationRepo, pub *queue.Publisher, log *zap.Logger) NotifyService {
	return &notifyService{r: r, pub: pub, log: log}
}

type notificationEnvelope struct {
	NotificationID uuid.UUID `json:"notification_id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
}

// record persists the notification row as pending and publishes it.
// Failures are logged, never propagated: a lost notification must not
// roll back the mutation it describes.
func (s *notifyService) record(ctx context.Context, n *model.Notification) {
	if err := s.r.Create(ctx, n); err != nil {
		s.log.Sugar().Errorw("create notification", "err", err)
		return
	}
	if s.pub == nil {
		return
	}
	env := notificationEnvelope{
		NotificationID: n.ID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
	}
	if err := s.pub.PublishJSON(ctx, env); err != nil {
		s.log.Sugar().Errorw("publish notification", "err", err, "notification_id", n.ID)
	}
}

func (s *notifyService) RelocationStatusChanged(ctx context.Context, rel *model.RoomRelocation, fromStatus string) {
	title := fmt.Sprintf("Relocation %s", rel.Status)
	msg := fmt.Sprintf("Courtroom relocation %s changed from %s to %s (start %s)",
		rel.ID, fromStatus, rel.Status, rel.StartDate.Format("2006-01-02"))
	if rel.Status == model.RelocationStatusCompleted && rel.ActualEndDate != nil {
		msg = fmt.Sprintf("%s, ended %s", msg, rel.ActualEndDate.Format("2006-01-02"))
	}
	s.record(ctx, &model.Notification{
		Type:         model.NotificationTypeRelocation,
		Title:        title,
		Message:      msg,
		RelocationID: &rel.ID,
	})
}

func (s *notifyService) ScheduleChangeRecorded(ctx context.Context, sc *model.ScheduleChange) {
	s.record(ctx, &model.Notification{
		Type:         model.NotificationTypeScheduleChange,
		Title:        "Schedule change",
		Message:      fmt.Sprintf("Court part %s temporarily reassigned to %s", sc.OriginalCourtPart, sc.TemporaryAssignment),
		RelocationID: &sc.RelocationID,
	})
}

func (s *notifyService) List(ctx context.Context, status string, limit int) ([]*model.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.r.List(ctx, status, limit)
}

func (s *notifyService) StartDispatcher(ctx context.Context, conn *amqp.Connection, queueName string, prefetch int) error {
	deliveries, err := queue.Consume(conn, queueName, prefetch)
	if err != nil {
		return err
	}
	s.log.Sugar().Infow("notification dispatcher started", "queue", queueName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			s.dispatch(ctx, d)
		}
	}
}

func (s *notifyService) dispatch(ctx context.Context, d amqp.Delivery) {
	var env notificationEnvelope
	if err := sonic.Unmarshal(d.Body, &env); err != nil {
		s.log.Sugar().Warnw("drop malformed notification", "err", err)
		_ = d.Nack(false, false)
		return
	}
	if err := s.r.MarkSent(ctx, env.NotificationID); err != nil {
		s.log.Sugar().Errorw("mark notification sent", "err", err, "notification_id", env.NotificationID)
		_ = d.Nack(false, true)
		return
	}
	_ = d.Ack(false)
}
