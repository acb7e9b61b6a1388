package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"sweat-battle-system/game"
	"sweat-battle-system/models"
	"sweat-battle-system/storage"
)

// memStore is an in-memory RecordStore and NotificationStore with the same
// compare-and-swap semantics as storage.Store.
type memStore struct {
	mu            sync.Mutex
	users         map[string]models.User
	battles       map[string]models.Battle
	rewards       map[string]models.BattleReward
	equipped      map[string][]models.Item
	syncs         map[string]models.HealthSync
	notifications []models.Notification

	// beforeWrite runs once, outside the lock, before the next battle write.
	beforeWrite func()
	// conflicts forces that many battle writes to fail with a version conflict.
	conflicts int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]models.User{},
		battles:  map[string]models.Battle{},
		rewards:  map[string]models.BattleReward{},
		equipped: map[string][]models.Item{},
		syncs:    map[string]models.HealthSync{},
	}
}

func (m *memStore) addUser(id string, class game.UserClass) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[id] = models.User{ID: id, Username: id, Class: class, Level: 1, SubscriptionTier: game.TierFree}
}

func (m *memStore) user(id string) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.users[id]
}

func (m *memStore) CreateBattle(_ context.Context, b *models.Battle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.battles[b.ID] = cloneBattle(*b)
	return nil
}

func (m *memStore) GetBattle(_ context.Context, id string) (*models.Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.battles[id]
	if !ok {
		return nil, storage.ErrRecordNotFound
	}
	out := cloneBattle(b)
	return &out, nil
}

func (m *memStore) ListBattlesForUser(_ context.Context, userID string, limit int) ([]models.Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Battle
	for _, b := range m.battles {
		if b.ChallengerID == userID || b.OpponentID == userID {
			out = append(out, cloneBattle(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) hook() {
	m.mu.Lock()
	fn := m.beforeWrite
	m.beforeWrite = nil
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// casLocked must be called with mu held.
func (m *memStore) casLocked(b *models.Battle, expected int64) error {
	if m.conflicts > 0 {
		m.conflicts--
		return storage.ErrVersionConflict
	}
	cur, ok := m.battles[b.ID]
	if !ok {
		return storage.ErrRecordNotFound
	}
	if cur.Version != expected {
		return storage.ErrVersionConflict
	}
	b.Version = expected + 1
	m.battles[b.ID] = cloneBattle(*b)
	return nil
}

func (m *memStore) UpdateBattle(_ context.Context, b *models.Battle, expected int64) error {
	m.hook()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.casLocked(b, expected)
}

func (m *memStore) CompleteBattle(_ context.Context, b *models.Battle, expected int64, reward models.BattleReward) (bool, error) {
	m.hook()
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.casLocked(b, expected); err != nil {
		return false, err
	}
	return m.creditLocked(reward), nil
}

func (m *memStore) CreditBattleReward(_ context.Context, reward models.BattleReward) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creditLocked(reward), nil
}

func (m *memStore) creditLocked(reward models.BattleReward) bool {
	if _, ok := m.rewards[reward.BattleID]; ok {
		return false
	}
	m.rewards[reward.BattleID] = reward
	m.creditUserLocked(reward.UserID, reward.XP, reward.SweatPoints, time.Now())
	return true
}

func (m *memStore) ListUnrewardedBattles(_ context.Context, limit int) ([]models.Battle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Battle
	for id, b := range m.battles {
		if _, ok := m.rewards[id]; ok || !b.IsCompleted() || b.WinnerID == nil {
			continue
		}
		out = append(out, cloneBattle(b))
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.ID]; ok {
		return nil
	}
	if u.Level == 0 {
		u.Level = 1
	}
	if u.SubscriptionTier == "" {
		u.SubscriptionTier = game.TierFree
	}
	m.users[u.ID] = *u
	return nil
}

func (m *memStore) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrRecordNotFound
	}
	return &u, nil
}

func (m *memStore) UpdateUser(_ context.Context, id string, patch models.UserPatch) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrRecordNotFound
	}
	if patch.Username != nil {
		u.Username = *patch.Username
	}
	if patch.Class != nil {
		u.Class = *patch.Class
	}
	m.users[id] = u
	return &u, nil
}

func (m *memStore) ListUserIDs(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *memStore) GetEquippedItems(_ context.Context, userID string) ([]models.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Item(nil), m.equipped[userID]...), nil
}

func (m *memStore) ApplyHealthSync(_ context.Context, sync models.HealthSync) (*models.User, game.Reward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[sync.UserID]
	if !ok {
		return nil, game.Reward{}, storage.ErrRecordNotFound
	}
	key := sync.UserID + "/" + sync.Date
	prev := m.syncs[key]
	delta := game.Reward{
		XP:          max(sync.XPEarned-prev.XPEarned, 0),
		SweatPoints: max(sync.SweatPointsEarned-prev.SweatPointsEarned, 0),
	}
	sync.XPEarned = max(sync.XPEarned, prev.XPEarned)
	sync.SweatPointsEarned = max(sync.SweatPointsEarned, prev.SweatPointsEarned)
	m.syncs[key] = sync
	u = m.creditUserLocked(sync.UserID, delta.XP, delta.SweatPoints, sync.SyncedAt)
	return &u, delta, nil
}

// creditUserLocked mirrors storage's creditUser. Must be called with mu held.
func (m *memStore) creditUserLocked(userID string, xp, sweatPoints int64, now time.Time) models.User {
	u := m.users[userID]
	u.XP += max(xp, 0)
	u.SweatPoints += max(sweatPoints, 0)
	u.RaiseLevel(now)
	m.users[userID] = u
	return u
}

func (m *memStore) CreateNotification(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifications = append(m.notifications, *n)
	return nil
}

func (m *memStore) ListNotifications(_ context.Context, userID string, unreadOnly bool, since time.Time, limit int) ([]models.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.notifications {
		if n.UserID != userID || (unreadOnly && n.Read) || !n.CreatedAt.After(since) {
			continue
		}
		out = append(out, n)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) MarkNotificationRead(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range m.notifications {
		if n.ID == id && n.UserID == userID {
			m.notifications[i].Read = true
			return nil
		}
	}
	return storage.ErrRecordNotFound
}

func (m *memStore) notificationsFor(userID string, kind models.NotificationType) []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Notification
	for _, n := range m.notifications {
		if n.UserID == userID && n.Type == kind {
			out = append(out, n)
		}
	}
	return out
}

// cloneBattle deep-copies b so a failed write never leaks into a caller's
// view of the stored battle.
func cloneBattle(b models.Battle) models.Battle {
	b.State.ChallengerActions = cloneActions(b.State.ChallengerActions)
	b.State.OpponentActions = cloneActions(b.State.OpponentActions)
	if b.WinnerID != nil {
		w := *b.WinnerID
		b.WinnerID = &w
	}
	return b
}

func cloneActions(in []models.BattleAction) []models.BattleAction {
	out := make([]models.BattleAction, len(in))
	for i, a := range in {
		a.StatusEffectsApplied = append([]models.AppliedStatusEffect(nil), a.StatusEffectsApplied...)
		if a.AbilityID != nil {
			id := *a.AbilityID
			a.AbilityID = &id
		}
		out[i] = a
	}
	return out
}
