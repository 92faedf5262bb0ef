package repository

import (
	"context"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository owns the notification feed rows.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uint, page models.Page, unreadOnly bool) ([]*models.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	// MarkAllRead flips every unread notification of the user and
	// returns the number affected.
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return wrapStoreErr(r.db.WithContext(ctx).
		Omit("Actor").
		Create(notification).Error)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, page models.Page, unreadOnly bool) ([]*models.Notification, error) {
	db := r.db.WithContext(ctx).
		Preload("Actor").
		Where("user_id = ?", userID)
	if unreadOnly {
		db = db.Where("read = ?", false)
	}

	var notifications []*models.Notification
	err := db.
		Order("created_at DESC, id ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&notifications).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, wrapStoreErr(err)
	}
	return count, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if res.Error != nil {
		return 0, wrapStoreErr(res.Error)
	}
	return res.RowsAffected, nil
}
