package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sweat-battle-system/game"
	"sweat-battle-system/logging"
	"sweat-battle-system/models"
)

const syncDateLayout = "2006-01-02"

// PlayerProgress is the level view of a user.
type PlayerProgress struct {
	UserID      string                `json:"user_id"`
	XP          int64                 `json:"xp"`
	Level       int                   `json:"level"`
	SweatPoints int64                 `json:"sweat_points"`
	Tier        game.SubscriptionTier `json:"subscription_tier"`
	NextLevelXP int64                 `json:"next_level_xp"`
	Progress    game.LevelProgress    `json:"progress"`
}

// SyncResult reports what one daily activity sync credited.
type SyncResult struct {
	Date        string          `json:"date"`
	Credit      game.SyncCredit `json:"credit"`
	SweatPoints int64           `json:"sweat_points"`
	Credited    game.Reward     `json:"credited"`
	LeveledUp   bool            `json:"leveled_up"`
	User        *models.User    `json:"user"`
}

type ProgressionService struct {
	store  UserStore
	health HealthProvider
	limits game.AntiCheatLimits
	now    func() time.Time
}

func NewProgressionService(store UserStore, health HealthProvider) *ProgressionService {
	return &ProgressionService{
		store:  store,
		health: health,
		limits: game.DefaultAntiCheat,
		now:    time.Now,
	}
}

// RegisterPlayer creates the progression record for userID. Registering an
// existing player returns the stored record unchanged.
func (s *ProgressionService) RegisterPlayer(ctx context.Context, userID, username string, class game.UserClass) (*models.User, error) {
	username = strings.TrimSpace(username)
	if userID == "" || username == "" {
		return nil, fmt.Errorf("user id and username are required: %w", ErrInvalidInput)
	}
	if !class.Valid() {
		return nil, fmt.Errorf("class %q: %w", class, ErrInvalidInput)
	}

	u := &models.User{
		ID:               userID,
		Username:         username,
		Class:            class,
		Level:            1,
		SubscriptionTier: game.TierFree,
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	stored, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, translate(err, "user", userID)
	}
	logging.Info("player registered", logging.Fields{"user_id": userID, "class": stored.Class})
	return stored, nil
}

// GetProgress derives the level view from the user's XP.
func (s *ProgressionService) GetProgress(ctx context.Context, userID string) (*PlayerProgress, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, translate(err, "user", userID)
	}

	level := game.LevelFromXP(u.XP)
	var progress game.LevelProgress
	if first := game.XPRequiredForLevel(1); u.XP < first {
		// below the first threshold the bar fills toward level 1 itself
		progress = game.LevelProgress{Current: u.XP, Required: first, Percentage: 100 * float64(u.XP) / float64(first)}
	} else {
		progress, err = game.ProgressWithinLevel(u.XP, level)
		if err != nil {
			return nil, err
		}
	}

	return &PlayerProgress{
		UserID:      u.ID,
		XP:          u.XP,
		Level:       level,
		SweatPoints: u.SweatPoints,
		Tier:        u.SubscriptionTier,
		NextLevelXP: game.XPRequiredForLevel(level + 1),
		Progress:    progress,
	}, nil
}

func (s *ProgressionService) UpdateProfile(ctx context.Context, userID string, patch models.UserPatch) (*models.User, error) {
	if patch.Username != nil {
		name := strings.TrimSpace(*patch.Username)
		if name == "" {
			return nil, fmt.Errorf("username is empty: %w", ErrInvalidInput)
		}
		patch.Username = &name
	}
	if patch.Class != nil && !patch.Class.Valid() {
		return nil, fmt.Errorf("class %q: %w", *patch.Class, ErrInvalidInput)
	}
	u, err := s.store.UpdateUser(ctx, userID, patch)
	if err != nil {
		return nil, translate(err, "user", userID)
	}
	return u, nil
}

// SyncDailyActivity pulls the day's totals from the health provider and
// credits what the anti-cheat limits allow. Syncing the same day again only
// pays the increase over what was already credited for it.
func (s *ProgressionService) SyncDailyActivity(ctx context.Context, userID string, date time.Time) (*SyncResult, error) {
	if s.health == nil {
		return nil, fmt.Errorf("no health provider configured: %w", ErrInvalidInput)
	}
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, translate(err, "user", userID)
	}
	if date.IsZero() {
		date = s.now()
	}
	day := date.UTC().Format(syncDateLayout)

	totals, err := s.health.GetDailyTotals(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("fetch activity for %s on %s: %w", userID, day, err)
	}

	credit := s.limits.CreditForSync(totals.Steps, totals.Calories)
	sweat := game.ApplySubscriptionMultiplier(credit.SweatPoints, u.SubscriptionTier)

	updated, delta, err := s.store.ApplyHealthSync(ctx, models.HealthSync{
		UserID:            userID,
		Date:              day,
		Steps:             credit.Steps,
		Calories:          credit.Calories,
		XPEarned:          credit.XP,
		SweatPointsEarned: sweat,
		SyncedAt:          s.now(),
	})
	if err != nil {
		return nil, translate(err, "user", userID)
	}

	res := &SyncResult{
		Date:        day,
		Credit:      credit,
		SweatPoints: sweat,
		Credited:    delta,
		LeveledUp:   updated.Level > u.Level,
		User:        updated,
	}
	logging.Info("activity synced", logging.Fields{
		"user_id":     userID,
		"date":        day,
		"steps":       credit.Steps,
		"calories":    credit.Calories,
		"xp_credited": delta.XP,
		"sp_credited": delta.SweatPoints,
		"level":       updated.Level,
		"leveled_up":  res.LeveledUp,
	})
	return res, nil
}
