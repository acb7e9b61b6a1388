package services

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sweat-battle-system/logging"
	"sweat-battle-system/models"

	"github.com/gofiber/fiber/v2"
)

// StreamUserNotificationsSSE streams notifications created after the
// connection opened for the user set by the user context middleware.
func (s *NotificationService) StreamUserNotificationsSSE(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing user")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	cursor := s.now()
	interval := s.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	done := c.Context().Done()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		w.WriteString(":\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case <-ticker.C:
				var err error
				cursor, err = s.writePending(w, userID, cursor)
				if err != nil {
					logging.Warn("notification stream closed", logging.Fields{"user_id": userID, "reason": err.Error()})
					return
				}
			case <-done:
				return
			}
		}
	})
	return nil
}

// writePending writes every notification newer than since as one SSE event
// each and returns the advanced cursor.
func (s *NotificationService) writePending(w *bufio.Writer, userID string, since time.Time) (time.Time, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pending, err := s.store.ListNotifications(ctx, userID, false, since, 100)
	if err != nil {
		logging.Error("notification stream query failed", err, logging.Fields{"user_id": userID})
		return since, nil
	}
	if len(pending) == 0 {
		// keepalive
		w.WriteString(":\n\n")
		return since, w.Flush()
	}
	for _, n := range pending {
		if err := writeEvent(w, n); err != nil {
			return since, err
		}
		if n.CreatedAt.After(since) {
			since = n.CreatedAt
		}
	}
	return since, w.Flush()
}

func writeEvent(w *bufio.Writer, n models.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: notification\ndata: %s\n\n", payload)
	return err
}
