package storage

import (
	"context"
	"time"

	"sweat-battle-system/models"

	"github.com/google/uuid"
)

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return s.DB.WithContext(ctx).Create(n).Error
}

// ListNotifications returns userID's notifications created after since,
// oldest first when since is set and newest first otherwise.
func (s *Store) ListNotifications(ctx context.Context, userID string, unreadOnly bool, since time.Time, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	if !since.IsZero() {
		q = q.Where("created_at > ?", since).Order("created_at ASC")
	} else {
		q = q.Order("created_at DESC")
	}
	var out []models.Notification
	err := q.Limit(limit).Find(&out).Error
	return out, err
}

func (s *Store) MarkNotificationRead(ctx context.Context, userID, id string) error {
	res := s.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
