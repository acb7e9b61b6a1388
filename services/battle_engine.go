// services/battle_engine.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sweat-battle-system/game"
	"sweat-battle-system/logging"
	"sweat-battle-system/models"
	"sweat-battle-system/storage"

	"github.com/google/uuid"
)

const DefaultMaxRetries = 5

// BattleEngine resolves turns of head-to-head races. Each submission is a
// read-modify-write cycle guarded by the battle's version; on conflict the
// battle is re-read and the whole submission is re-validated.
type BattleEngine struct {
	store      RecordStore
	notifier   Notifier
	archiver   BattleArchiver
	cfg        game.BattleConfig
	reward     game.Reward
	maxRetries int
	now        func() time.Time
}

type EngineOption func(*BattleEngine)

func WithArchiver(a BattleArchiver) EngineOption {
	return func(e *BattleEngine) { e.archiver = a }
}

func WithBattleConfig(cfg game.BattleConfig) EngineOption {
	return func(e *BattleEngine) { e.cfg = cfg }
}

func WithMaxRetries(n int) EngineOption {
	return func(e *BattleEngine) {
		if n > 0 {
			e.maxRetries = n
		}
	}
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *BattleEngine) { e.now = now }
}

func NewBattleEngine(store RecordStore, notifier Notifier, opts ...EngineOption) *BattleEngine {
	e := &BattleEngine{
		store:      store,
		notifier:   notifier,
		cfg:        game.DefaultBattleConfig,
		reward:     game.BattleWinReward,
		maxRetries: DefaultMaxRetries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateBattle opens a pending battle and invites the opponent.
func (e *BattleEngine) CreateBattle(ctx context.Context, challengerID, opponentID string) (*models.Battle, error) {
	if challengerID == "" || opponentID == "" || challengerID == opponentID {
		return nil, fmt.Errorf("challenger %q vs opponent %q: %w", challengerID, opponentID, ErrParticipant)
	}
	challenger, err := e.store.GetUser(ctx, challengerID)
	if err != nil {
		return nil, translate(err, "user", challengerID)
	}
	if _, err := e.store.GetUser(ctx, opponentID); err != nil {
		return nil, translate(err, "user", opponentID)
	}

	b := &models.Battle{
		ID:           uuid.NewString(),
		ChallengerID: challengerID,
		OpponentID:   opponentID,
		Status:       models.BattleStatusPending,
		State:        models.NewBattleState(e.cfg.TrackLength),
	}
	if err := e.store.CreateBattle(ctx, b); err != nil {
		return nil, err
	}

	e.notify(ctx, opponentID, models.NotificationBattleInvite, "Battle Challenge!",
		fmt.Sprintf("%s has challenged you to a battle!", challenger.Username),
		map[string]any{"battle_id": b.ID, "challenger_id": challengerID})

	logging.Info("battle created", logging.Fields{"battle_id": b.ID, "challenger_id": challengerID, "opponent_id": opponentID})
	return b, nil
}

// GetBattleState returns the battle as currently stored.
func (e *BattleEngine) GetBattleState(ctx context.Context, battleID string) (*models.Battle, error) {
	b, err := e.store.GetBattle(ctx, battleID)
	if err != nil {
		return nil, translate(err, "battle", battleID)
	}
	return b, nil
}

// ListBattles returns the most recent battles userID takes part in.
func (e *BattleEngine) ListBattles(ctx context.Context, userID string, limit int) ([]models.Battle, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return e.store.ListBattlesForUser(ctx, userID, limit)
}

// SubmitAction records one action for userID in the battle's current turn.
// abilityID may be empty. It returns the battle as persisted by this call.
func (e *BattleEngine) SubmitAction(ctx context.Context, battleID, userID, abilityID string) (*models.Battle, error) {
	// The turn seen on the first read. A retry that finds the turn already
	// advanced must still reject a second action for it.
	firstTurn := -1

	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		b, err := e.store.GetBattle(ctx, battleID)
		if err != nil {
			return nil, translate(err, "battle", battleID)
		}
		user, err := e.store.GetUser(ctx, userID)
		if err != nil {
			return nil, translate(err, "user", userID)
		}
		if b.IsCompleted() {
			return nil, fmt.Errorf("battle %s: %w", battleID, ErrTerminalState)
		}
		side, ok := b.SideOf(userID)
		if !ok {
			return nil, fmt.Errorf("user %s in battle %s: %w", userID, battleID, ErrParticipant)
		}
		if firstTurn < 0 {
			firstTurn = b.State.Turn
		}
		if b.State.HasActed(side, b.State.Turn) || b.State.HasActed(side, firstTurn) {
			return nil, fmt.Errorf("user %s turn %d: %w", userID, b.State.Turn, ErrDuplicateAction)
		}

		items, err := e.store.GetEquippedItems(ctx, userID)
		if err != nil {
			return nil, err
		}
		stats := game.EffectiveStats(user.Class, itemStats(items))

		expected := b.Version
		now := e.now()
		out := resolveAction(e.cfg, b, side, user.Class, stats, abilityID, now)

		credited := false
		if out.Completed {
			credited, err = e.store.CompleteBattle(ctx, b, expected, models.BattleReward{
				ID:          uuid.NewString(),
				BattleID:    b.ID,
				UserID:      *b.WinnerID,
				XP:          e.reward.XP,
				SweatPoints: e.reward.SweatPoints,
			})
		} else {
			err = e.store.UpdateBattle(ctx, b, expected)
		}
		if errors.Is(err, storage.ErrVersionConflict) {
			logging.Warn("battle write conflict, retrying", logging.Fields{"battle_id": battleID, "user_id": userID, "attempt": attempt})
			continue
		}
		if err != nil {
			return nil, err
		}

		logging.Info("battle action accepted", logging.Fields{
			"battle_id":     b.ID,
			"user_id":       userID,
			"turn":          out.Action.Turn,
			"move_distance": out.Action.MoveDistance,
			"turn_advanced": out.TurnAdvanced,
		})
		if out.Completed {
			e.afterCompletion(ctx, b, out.Winner, credited)
		}
		return b, nil
	}

	logging.Warn("battle submission gave up", logging.Fields{"battle_id": battleID, "user_id": userID, "retries": e.maxRetries})
	return nil, fmt.Errorf("battle %s: %w", battleID, ErrConcurrency)
}

func (e *BattleEngine) afterCompletion(ctx context.Context, b *models.Battle, winner models.Side, credited bool) {
	winnerID := *b.WinnerID
	logging.Info("battle completed", logging.Fields{
		"battle_id":   b.ID,
		"winner_id":   winnerID,
		"winner_side": winner,
		"turn":      b.State.Turn,
		"credited":  credited,
	})

	if credited {
		e.notify(ctx, winnerID, models.NotificationAchievement, "Victory!",
			fmt.Sprintf("You won the battle! +%d XP, +%d Sweat Points", e.reward.XP, e.reward.SweatPoints),
			map[string]any{"battle_id": b.ID})
	}

	if e.archiver != nil {
		if err := e.archiver.ArchiveBattle(ctx, b); err != nil {
			logging.Error("battle archive failed", err, logging.Fields{"battle_id": b.ID})
		}
	}
}

func (e *BattleEngine) notify(ctx context.Context, userID string, kind models.NotificationType, title, message string, data map[string]any) {
	if e.notifier == nil {
		return
	}
	if err := e.notifier.Notify(ctx, userID, kind, title, message, data); err != nil {
		logging.Error("notification failed", err, logging.Fields{"user_id": userID, "type": kind})
	}
}

func itemStats(items []models.Item) []game.ItemStats {
	out := make([]game.ItemStats, 0, len(items))
	for _, it := range items {
		out = append(out, it.Stats)
	}
	return out
}
