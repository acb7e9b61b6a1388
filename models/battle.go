// models/battle.go
package models

import (
	"time"

	"sweat-battle-system/game"
)

type BattleStatus string

const (
	BattleStatusPending   BattleStatus = "pending"
	BattleStatusActive    BattleStatus = "active"
	BattleStatusCompleted BattleStatus = "completed"
)

// Side identifies which participant of a battle acted.
type Side string

const (
	SideChallenger Side = "challenger"
	SideOpponent   Side = "opponent"
)

// Battle is a head-to-head race between two users. Version is bumped on
// every write and guards concurrent read-modify-write cycles.
type Battle struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	ChallengerID string       `gorm:"index;not null" json:"challenger_id"`
	OpponentID   string       `gorm:"index;not null" json:"opponent_id"`
	WinnerID     *string      `gorm:"index" json:"winner_id,omitempty"`
	Status       BattleStatus `gorm:"type:varchar(16);index;default:'pending'" json:"status"`
	State        BattleState  `gorm:"serializer:json" json:"battle_data"`
	Version      int64        `gorm:"not null;default:0" json:"version"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`

	Timestamps
}

// BattleState is owned by its Battle. Positions and Turn never decrease and
// the action lists are append-only.
type BattleState struct {
	TrackLength        float64        `json:"track_length"`
	ChallengerPosition float64        `json:"challenger_position"`
	OpponentPosition   float64        `json:"opponent_position"`
	Turn               int            `json:"turn"`
	ChallengerActions  []BattleAction `json:"challenger_actions"`
	OpponentActions    []BattleAction `json:"opponent_actions"`
}

// AppliedStatusEffect records a status effect landed on the opponent. The
// duration is stored as-is; no later turn consumes it.
type AppliedStatusEffect struct {
	Effect   game.StatusEffect `json:"effect"`
	Duration int               `json:"duration"`
}

type BattleAction struct {
	Turn                 int                   `json:"turn"`
	AbilityID            *string               `json:"ability_id,omitempty"`
	MoveDistance         float64               `json:"move_distance"`
	StatusEffectsApplied []AppliedStatusEffect `json:"status_effects_applied"`
	Timestamp            time.Time             `json:"timestamp"`
}

// NewBattleState returns the initial state for a battle on a track of the
// given length.
func NewBattleState(trackLength float64) BattleState {
	return BattleState{
		TrackLength:       trackLength,
		ChallengerActions: []BattleAction{},
		OpponentActions:   []BattleAction{},
	}
}

// SideOf reports which side userID plays in b.
func (b *Battle) SideOf(userID string) (Side, bool) {
	switch userID {
	case b.ChallengerID:
		return SideChallenger, true
	case b.OpponentID:
		return SideOpponent, true
	}
	return "", false
}

// ParticipantID returns the user id playing side.
func (b *Battle) ParticipantID(side Side) string {
	if side == SideChallenger {
		return b.ChallengerID
	}
	return b.OpponentID
}

func (b *Battle) IsCompleted() bool {
	return b.Status == BattleStatusCompleted
}

func (s *BattleState) Actions(side Side) []BattleAction {
	if side == SideChallenger {
		return s.ChallengerActions
	}
	return s.OpponentActions
}

// HasActed reports whether side already has an action recorded for turn.
func (s *BattleState) HasActed(side Side, turn int) bool {
	for _, a := range s.Actions(side) {
		if a.Turn == turn {
			return true
		}
	}
	return false
}

// Append records action for side and advances that side's position.
func (s *BattleState) Append(side Side, action BattleAction) {
	if side == SideChallenger {
		s.ChallengerActions = append(s.ChallengerActions, action)
		s.ChallengerPosition += action.MoveDistance
		return
	}
	s.OpponentActions = append(s.OpponentActions, action)
	s.OpponentPosition += action.MoveDistance
}

// BattleReward is the ledger row written when a battle's winner is paid.
// The unique BattleID makes reward crediting idempotent.
type BattleReward struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	BattleID    string    `gorm:"uniqueIndex;not null" json:"battle_id"`
	UserID      string    `gorm:"index;not null" json:"user_id"`
	XP          int64     `json:"xp"`
	SweatPoints int64     `json:"sweat_points"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
