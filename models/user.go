package models

import (
	"time"

	"sweat-battle-system/game"

	"gorm.io/gorm"
)

// User is the authoritative progression record for a player. XP, Level and
// SweatPoints only ever grow; SubscriptionTier is owned by billing.
type User struct {
	ID               string                `gorm:"primaryKey;size:36" json:"id"`
	Username         string                `gorm:"index;not null" json:"username"`
	Class            game.UserClass        `gorm:"type:varchar(16);not null" json:"class"`
	XP               int64                 `gorm:"default:0" json:"xp"`
	Level            int                   `gorm:"default:1" json:"level"`
	SweatPoints      int64                 `gorm:"default:0" json:"sweat_points"`
	SubscriptionTier game.SubscriptionTier `gorm:"type:varchar(16);default:'free'" json:"subscription_tier"`
	LastLevelUpAt    *time.Time            `json:"last_level_up_at,omitempty"`

	Timestamps
}

// UserPatch lists the profile fields a player may change. Nil fields are
// left untouched.
type UserPatch struct {
	Username *string         `json:"username,omitempty"`
	Class    *game.UserClass `json:"class,omitempty"`
}

// RaiseLevel lifts Level to the level u.XP has reached and reports whether
// it changed. Level never goes down.
func (u *User) RaiseLevel(now time.Time) bool {
	lvl := game.LevelFromXP(u.XP)
	if lvl <= u.Level {
		return false
	}
	u.Level = lvl
	u.LastLevelUpAt = &now
	return true
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
