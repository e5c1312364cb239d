package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/procurement/internal/model"
)

type NotificationService struct {
	repo NotificationRepository
	log  zerolog.Logger
}

func NewNotificationService(repo NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

// Notify stores a notification. A failure is logged and never fails the
// operation that triggered it.
func (s *NotificationService) Notify(ctx context.Context, kind, title, message, refType string, refID uuid.UUID) {
	n := &model.Notification{
		ID:            uuid.New(),
		Type:          kind,
		Title:         title,
		Message:       message,
		ReferenceType: refType,
		CreatedAt:     time.Now().UTC(),
	}
	if refID != uuid.Nil {
		n.ReferenceID = &refID
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		s.log.Warn().Err(err).Str("type", kind).Msg("store notification failed")
	}
}

func (s *NotificationService) List(ctx context.Context, isRead *bool) ([]model.Notification, error) {
	return s.repo.ListNotifications(ctx, isRead)
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return translate(s.repo.MarkRead(ctx, id))
}

func (s *NotificationService) MarkAllRead(ctx context.Context) (int64, error) {
	return s.repo.MarkAllRead(ctx)
}
