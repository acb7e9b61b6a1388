// services/scheduler.go
package services

import (
	"context"
	"fmt"
	"time"

	"sweat-battle-system/game"
	"sweat-battle-system/logging"
	"sweat-battle-system/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// RewardReconciler pays winners of completed battles that have no reward
// ledger row yet. Crediting is keyed by battle id so running it any number
// of times pays each battle once.
type RewardReconciler struct {
	store     BattleStore
	notifier  Notifier
	reward    game.Reward
	BatchSize int
}

func NewRewardReconciler(store BattleStore, notifier Notifier) *RewardReconciler {
	return &RewardReconciler{
		store:     store,
		notifier:  notifier,
		reward:    game.BattleWinReward,
		BatchSize: 100,
	}
}

// Reconcile runs one pass and returns how many battles were credited.
func (r *RewardReconciler) Reconcile(ctx context.Context) (int, error) {
	battles, err := r.store.ListUnrewardedBattles(ctx, r.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("list unrewarded battles: %w", err)
	}

	credited := 0
	for _, b := range battles {
		if b.WinnerID == nil {
			continue
		}
		ok, err := r.store.CreditBattleReward(ctx, models.BattleReward{
			ID:          uuid.NewString(),
			BattleID:    b.ID,
			UserID:      *b.WinnerID,
			XP:          r.reward.XP,
			SweatPoints: r.reward.SweatPoints,
		})
		if err != nil {
			logging.Error("reward reconcile failed", err, logging.Fields{"battle_id": b.ID})
			continue
		}
		if !ok {
			continue
		}
		credited++
		if r.notifier != nil {
			if err := r.notifier.Notify(ctx, *b.WinnerID, models.NotificationAchievement, "Victory!",
				fmt.Sprintf("You won the battle! +%d XP, +%d Sweat Points", r.reward.XP, r.reward.SweatPoints),
				map[string]any{"battle_id": b.ID}); err != nil {
				logging.Error("notification failed", err, logging.Fields{"user_id": *b.WinnerID})
			}
		}
	}
	if credited > 0 {
		logging.Info("battle rewards reconciled", logging.Fields{"credited": credited})
	}
	return credited, nil
}

// Start schedules Reconcile every interval. The caller shuts the returned
// scheduler down.
func (r *RewardReconciler) Start(interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			if _, err := r.Reconcile(ctx); err != nil {
				logging.Error("reward reconcile pass failed", err, nil)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}
	sched.Start()
	return sched, nil
}
