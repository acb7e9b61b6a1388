package models

import "time"

// HealthSync is the credited result of the latest activity sync for a user
// and calendar day. Re-syncing a day only credits what exceeds this row.
type HealthSync struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	UserID            string    `gorm:"uniqueIndex:idx_health_sync_user_date;not null" json:"user_id"`
	Date              string    `gorm:"uniqueIndex:idx_health_sync_user_date;type:varchar(10);not null" json:"date"` // YYYY-MM-DD
	Steps             int64     `json:"steps"`
	Calories          int64     `json:"calories"`
	XPEarned          int64     `json:"xp_earned"`
	SweatPointsEarned int64     `json:"sweat_points_earned"`
	SyncedAt          time.Time `json:"synced_at"`
}
