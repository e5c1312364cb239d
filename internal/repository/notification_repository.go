package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/procurement/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateNotification(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) ListNotifications(ctx context.Context, isRead *bool) ([]model.Notification, error) {
	query := r.db.WithContext(ctx).Model(&model.Notification{})
	if isRead != nil {
		query = query.Where("is_read = ?", *isRead)
	}
	var notifications []model.Notification
	if err := query.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Notification{}).Where("is_read = ?", false).Update("is_read", true)
	return result.RowsAffected, result.Error
}
