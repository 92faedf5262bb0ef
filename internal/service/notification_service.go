package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"chirp/internal/models"
	"chirp/internal/notifications"
	"chirp/internal/observability"
	"chirp/internal/repository"
)

// NotificationService records events directed at users and exposes the
// unread feed. Realtime delivery is best-effort; the persisted row is
// the source of truth.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	notifier         *notifications.Notifier
}

// NewNotificationService creates a new NotificationService. notifier
// may be nil when no realtime transport is configured.
func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	notifier *notifications.Notifier,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

// Emit appends an unread notification for recipientID. A user is never
// notified of their own action: recipient == actor is a silent no-op.
func (s *NotificationService) Emit(
	ctx context.Context,
	recipientID uint,
	typ models.NotificationType,
	actorID uint,
	postID *uint,
) error {
	if recipientID == actorID {
		return nil
	}

	notification := &models.Notification{
		UserID:  recipientID,
		Type:    typ,
		ActorID: actorID,
		PostID:  postID,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}
	observability.NotificationsEmitted.WithLabelValues(string(typ)).Inc()

	s.publish(ctx, notification)
	return nil
}

func (s *NotificationService) publish(ctx context.Context, notification *models.Notification) {
	if s.notifier == nil {
		return
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		return
	}
	if err := s.notifier.PublishUser(ctx, notification.UserID, string(payload)); err != nil {
		observability.Logger.WarnContext(ctx, "realtime notification publish failed",
			slog.Any("recipient", notification.UserID),
			slog.String("error", err.Error()),
		)
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, page models.Page, unreadOnly bool) ([]*models.Notification, error) {
	return s.notificationRepo.ListByUser(ctx, userID, page.Normalized(), unreadOnly)
}

// UnreadCount returns how many notifications the user has not read.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkAllRead marks every unread notification of the user as read and
// returns the number affected.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
