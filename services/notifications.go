package services

import (
	"context"
	"time"

	"sweat-battle-system/models"

	"github.com/google/uuid"
)

// NotificationService stores in-app notifications. It is the Notifier used
// by the battle engine and the reward reconciler.
type NotificationService struct {
	store        NotificationStore
	now          func() time.Time
	PollInterval time.Duration
}

func NewNotificationService(store NotificationStore) *NotificationService {
	return &NotificationService{
		store:        store,
		now:          time.Now,
		PollInterval: 2 * time.Second,
	}
}

func (s *NotificationService) Notify(ctx context.Context, userID string, kind models.NotificationType, title, message string, data map[string]any) error {
	n := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      kind,
		Title:     title,
		Message:   message,
		Data:      data,
		CreatedAt: s.now(),
	}
	return s.store.CreateNotification(ctx, n)
}

// List returns the newest notifications for userID.
func (s *NotificationService) List(ctx context.Context, userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.store.ListNotifications(ctx, userID, unreadOnly, time.Time{}, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	if err := s.store.MarkNotificationRead(ctx, userID, id); err != nil {
		return translate(err, "notification", id)
	}
	return nil
}
