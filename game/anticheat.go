// game/anticheat.go
package game

// SyncCredit is what one activity sync is allowed to credit after the
// anti-cheat clamp. SweatPoints are before the subscription multiplier.
type SyncCredit struct {
	Steps       int64 `json:"steps"`
	Calories    int64 `json:"calories"`
	BaseXP      int64 `json:"base_xp"`
	MilestoneXP int64 `json:"milestone_xp"`
	XP          int64 `json:"xp"`
	SweatPoints int64 `json:"sweat_points"`
}

// ClampActivity caps reported activity at the daily maximums. Out-of-range
// values are clamped, never rejected, so a misbehaving provider cannot block
// a sync.
func (l AntiCheatLimits) ClampActivity(steps, calories int64) (int64, int64) {
	return clamp(steps, l.MaxStepsPerDay), clamp(calories, l.MaxCaloriesPerDay)
}

// CapSyncXP caps the total XP credited from a single sync.
func (l AntiCheatLimits) CapSyncXP(xp int64) int64 {
	return clamp(xp, l.MaxXPPerSync)
}

// CreditForSync runs the whole validation pipeline for one sync: clamp the
// raw figures, compute base and milestone XP, then cap their sum.
func (l AntiCheatLimits) CreditForSync(steps, calories int64) SyncCredit {
	steps, calories = l.ClampActivity(steps, calories)
	base := XPFromActivity(steps, calories)
	milestones := MilestoneRewards(steps, calories)
	return SyncCredit{
		Steps:       steps,
		Calories:    calories,
		BaseXP:      base,
		MilestoneXP: milestones.XP,
		XP:          l.CapSyncXP(base + milestones.XP),
		SweatPoints: milestones.SweatPoints,
	}
}

func clamp(v, max int64) int64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
