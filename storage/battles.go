package storage

import (
	"context"
	"time"

	"sweat-battle-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) CreateBattle(ctx context.Context, b *models.Battle) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return s.DB.WithContext(ctx).Create(b).Error
}

func (s *Store) GetBattle(ctx context.Context, id string) (*models.Battle, error) {
	var b models.Battle
	if err := s.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// ListBattlesForUser returns the battles userID takes part in, newest first.
func (s *Store) ListBattlesForUser(ctx context.Context, userID string, limit int) ([]models.Battle, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var battles []models.Battle
	err := s.DB.WithContext(ctx).
		Where("challenger_id = ? OR opponent_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&battles).Error
	return battles, err
}

// UpdateBattle writes b only if the stored version still equals
// expectedVersion. On success b.Version is expectedVersion+1.
func (s *Store) UpdateBattle(ctx context.Context, b *models.Battle, expectedVersion int64) error {
	return updateBattleCAS(s.DB.WithContext(ctx), b, expectedVersion)
}

// CompleteBattle persists the completed battle and pays reward in one
// transaction. credited is false when the battle had already been rewarded.
func (s *Store) CompleteBattle(ctx context.Context, b *models.Battle, expectedVersion int64, reward models.BattleReward) (bool, error) {
	var credited bool
	prev := b.Version
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateBattleCAS(tx, b, expectedVersion); err != nil {
			return err
		}
		var err error
		credited, err = creditReward(tx, reward)
		return err
	})
	if err != nil {
		b.Version = prev
		return false, err
	}
	return credited, nil
}

// CreditBattleReward pays reward unless the battle already has a ledger row.
func (s *Store) CreditBattleReward(ctx context.Context, reward models.BattleReward) (bool, error) {
	var credited bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		credited, err = creditReward(tx, reward)
		return err
	})
	return credited, err
}

// ListUnrewardedBattles returns completed battles with a winner but no
// reward ledger row.
func (s *Store) ListUnrewardedBattles(ctx context.Context, limit int) ([]models.Battle, error) {
	if limit <= 0 {
		limit = 100
	}
	var battles []models.Battle
	err := s.DB.WithContext(ctx).
		Select("battles.*").
		Joins("LEFT JOIN battle_rewards ON battle_rewards.battle_id = battles.id").
		Where("battles.status = ? AND battles.winner_id IS NOT NULL AND battle_rewards.id IS NULL", models.BattleStatusCompleted).
		Order("battles.completed_at ASC").
		Limit(limit).
		Find(&battles).Error
	return battles, err
}

func updateBattleCAS(tx *gorm.DB, b *models.Battle, expectedVersion int64) error {
	prev := b.Version
	b.Version = expectedVersion + 1
	res := tx.Model(b).
		Where("version = ?", expectedVersion).
		Select("Status", "WinnerID", "State", "Version", "CompletedAt", "UpdatedAt").
		Updates(b)
	if res.Error != nil {
		b.Version = prev
		return res.Error
	}
	if res.RowsAffected == 0 {
		b.Version = prev
		return ErrVersionConflict
	}
	return nil
}

func creditReward(tx *gorm.DB, reward models.BattleReward) (bool, error) {
	if reward.ID == "" {
		reward.ID = uuid.NewString()
	}
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "battle_id"}},
		DoNothing: true,
	}).Create(&reward)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if _, err := creditUser(tx, reward.UserID, reward.XP, reward.SweatPoints, time.Now()); err != nil {
		return false, err
	}
	return true, nil
}
