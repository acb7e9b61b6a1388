package models

import "time"

type NotificationType string

const (
	NotificationBattleInvite  NotificationType = "battle_invite"
	NotificationClubInvite    NotificationType = "club_invite"
	NotificationFriendRequest NotificationType = "friend_request"
	NotificationAchievement   NotificationType = "achievement"
	NotificationQuestComplete NotificationType = "quest_complete"
)

type Notification struct {
	ID        string           `gorm:"primaryKey;size:36" json:"id"`
	UserID    string           `gorm:"index;not null" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      map[string]any   `gorm:"serializer:json" json:"data,omitempty"`
	Read      bool             `gorm:"default:false;index" json:"read"`
	CreatedAt time.Time        `gorm:"autoCreateTime;index" json:"created_at"`
}
