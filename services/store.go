package services

import (
	"context"
	"time"

	"sweat-battle-system/game"
	"sweat-battle-system/models"
)

// BattleStore persists battles and the reward ledger. UpdateBattle and
// CompleteBattle are compare-and-swap on Battle.Version and return
// storage.ErrVersionConflict when the record moved on.
type BattleStore interface {
	CreateBattle(ctx context.Context, b *models.Battle) error
	GetBattle(ctx context.Context, id string) (*models.Battle, error)
	ListBattlesForUser(ctx context.Context, userID string, limit int) ([]models.Battle, error)
	UpdateBattle(ctx context.Context, b *models.Battle, expectedVersion int64) error
	CompleteBattle(ctx context.Context, b *models.Battle, expectedVersion int64, reward models.BattleReward) (bool, error)
	CreditBattleReward(ctx context.Context, reward models.BattleReward) (bool, error)
	ListUnrewardedBattles(ctx context.Context, limit int) ([]models.Battle, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	ListUserIDs(ctx context.Context) ([]string, error)
	GetEquippedItems(ctx context.Context, userID string) ([]models.Item, error)
	ApplyHealthSync(ctx context.Context, sync models.HealthSync) (*models.User, game.Reward, error)
}

// RecordStore is everything the battle engine reads and writes.
type RecordStore interface {
	BattleStore
	UserStore
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID string, unreadOnly bool, since time.Time, limit int) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error
}

// Notifier is a fire-and-forget sink; callers log and ignore its errors.
type Notifier interface {
	Notify(ctx context.Context, userID string, kind models.NotificationType, title, message string, data map[string]any) error
}

// BattleArchiver keeps a copy of finished battles outside the database.
type BattleArchiver interface {
	ArchiveBattle(ctx context.Context, b *models.Battle) error
}
