package storage

import (
	"context"
	"time"

	"sweat-battle-system/game"
	"sweat-battle-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateUser inserts u unless a user with the same id exists (idempotent).
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.Level < 1 {
		u.Level = 1
	}
	if u.SubscriptionTier == "" {
		u.SubscriptionTier = game.TierFree
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(u).Error
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// UpdateUser applies the non-nil fields of patch.
func (s *Store) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	updates := map[string]interface{}{}
	if patch.Username != nil {
		updates["username"] = *patch.Username
	}
	if patch.Class != nil {
		updates["class"] = *patch.Class
	}
	if len(updates) > 0 {
		res := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrRecordNotFound
		}
	}
	return s.GetUser(ctx, id)
}

func (s *Store) ListUserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.DB.WithContext(ctx).Model(&models.User{}).Order("created_at ASC").Pluck("id", &ids).Error
	return ids, err
}

// GetEquippedItems returns the items userID currently has equipped.
func (s *Store) GetEquippedItems(ctx context.Context, userID string) ([]models.Item, error) {
	var inv []models.InventoryItem
	if err := s.DB.WithContext(ctx).
		Preload("Item").
		Where("user_id = ? AND is_equipped = ?", userID, true).
		Find(&inv).Error; err != nil {
		return nil, err
	}
	items := make([]models.Item, 0, len(inv))
	for _, entry := range inv {
		items = append(items, entry.Item)
	}
	return items, nil
}

// AddInventoryItem grants itemID to userID.
func (s *Store) AddInventoryItem(ctx context.Context, userID, itemID string, equipped bool) (*models.InventoryItem, error) {
	entry := &models.InventoryItem{
		ID:         uuid.NewString(),
		UserID:     userID,
		ItemID:     itemID,
		Quantity:   1,
		IsEquipped: equipped,
	}
	if err := s.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return s.DB.WithContext(ctx).Create(item).Error
}

// ApplyHealthSync records sync as the latest credited figures for its day
// and credits the user with whatever exceeds what that day already paid.
// Returns the updated user and the delta actually credited.
//
// The day's row is created empty if missing and then locked, so concurrent
// syncs of the same day serialize on it and each delta is paid once.
func (s *Store) ApplyHealthSync(ctx context.Context, sync models.HealthSync) (*models.User, game.Reward, error) {
	var (
		user  *models.User
		delta game.Reward
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seed := models.HealthSync{
			ID:       uuid.NewString(),
			UserID:   sync.UserID,
			Date:     sync.Date,
			SyncedAt: sync.SyncedAt,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}).Create(&seed).Error; err != nil {
			return err
		}

		var prev models.HealthSync
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND date = ?", sync.UserID, sync.Date).
			First(&prev).Error; err != nil {
			return notFound(err)
		}

		delta.XP = positive(sync.XPEarned - prev.XPEarned)
		delta.SweatPoints = positive(sync.SweatPointsEarned - prev.SweatPointsEarned)
		prev.Steps = max(prev.Steps, sync.Steps)
		prev.Calories = max(prev.Calories, sync.Calories)
		prev.XPEarned = max(prev.XPEarned, sync.XPEarned)
		prev.SweatPointsEarned = max(prev.SweatPointsEarned, sync.SweatPointsEarned)
		prev.SyncedAt = sync.SyncedAt
		if err := tx.Save(&prev).Error; err != nil {
			return err
		}

		var err error
		user, err = creditUser(tx, sync.UserID, delta.XP, delta.SweatPoints, sync.SyncedAt)
		return err
	})
	if err != nil {
		return nil, game.Reward{}, err
	}
	return user, delta, nil
}

// creditUser increments xp and sweat points atomically and raises the level
// if the new total crosses a threshold.
func creditUser(tx *gorm.DB, userID string, xp, sweatPoints int64, now time.Time) (*models.User, error) {
	res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"xp":           gorm.Expr("xp + ?", positive(xp)),
		"sweat_points": gorm.Expr("sweat_points + ?", positive(sweatPoints)),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrRecordNotFound
	}

	var u models.User
	if err := tx.First(&u, "id = ?", userID).Error; err != nil {
		return nil, notFound(err)
	}
	if u.RaiseLevel(now) {
		if err := tx.Model(&models.User{}).
			Where("id = ? AND level < ?", userID, u.Level).
			Updates(map[string]interface{}{"level": u.Level, "last_level_up_at": now}).Error; err != nil {
			return nil, err
		}
	}
	return &u, nil
}

func positive(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
