// workers/activity_sync_worker.go
package workers

import (
	"context"
	"time"

	"sweat-battle-system/logging"
	"sweat-battle-system/services"
)

// UserLister yields the ids of every registered player.
type UserLister interface {
	ListUserIDs(ctx context.Context) ([]string, error)
}

// ActivitySyncer credits one user's activity for one day.
type ActivitySyncer interface {
	SyncDailyActivity(ctx context.Context, userID string, date time.Time) (*services.SyncResult, error)
}

// ActivitySyncWorker periodically syncs today's activity for every player so
// XP accrues even when the app is not opened.
type ActivitySyncWorker struct {
	users    UserLister
	syncer   ActivitySyncer
	interval time.Duration
	now      func() time.Time
}

func NewActivitySyncWorker(users UserLister, syncer ActivitySyncer, interval time.Duration) *ActivitySyncWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ActivitySyncWorker{
		users:    users,
		syncer:   syncer,
		interval: interval,
		now:      time.Now,
	}
}

func (w *ActivitySyncWorker) Start(ctx context.Context) {
	logging.Info("activity sync worker started", logging.Fields{"interval": w.interval.String()})
	go w.run(ctx)
}

func (w *ActivitySyncWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.SyncAll(ctx); err != nil {
				logging.Error("activity sync pass failed", err, nil)
			}
		case <-ctx.Done():
			logging.Info("activity sync worker stopped", nil)
			return
		}
	}
}

// SyncAll syncs today for every player. One player's failure does not stop
// the pass; it returns how many players synced cleanly.
func (w *ActivitySyncWorker) SyncAll(ctx context.Context) (int, error) {
	ids, err := w.users.ListUserIDs(ctx)
	if err != nil {
		return 0, err
	}

	today := w.now()
	synced := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return synced, ctx.Err()
		}
		if _, err := w.syncer.SyncDailyActivity(ctx, id, today); err != nil {
			logging.Warn("activity sync failed for user", logging.Fields{"user_id": id, "reason": err.Error()})
			continue
		}
		synced++
	}
	logging.Info("activity sync pass finished", logging.Fields{"users": len(ids), "synced": synced})
	return synced, nil
}
