// game/leveling.go
package game

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidLevel = errors.New("level is inconsistent with xp")

// XPRequiredForLevel returns floor(100 * level^1.5), the total XP at which
// level is reached. level^1.5 is computed as level*sqrt(level) so perfect
// squares land on exact integers. Levels below 1 need no XP; thresholds past
// the int64 range saturate at math.MaxInt64.
func XPRequiredForLevel(level int) int64 {
	if level < 1 {
		return 0
	}
	l := float64(level)
	v := math.Floor(100 * l * math.Sqrt(l))
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

// LevelFromXP returns the largest level whose threshold is <= xp, never less
// than 1. It starts from the closed-form inverse and corrects for rounding.
func LevelFromXP(xp int64) int {
	if xp < XPRequiredForLevel(2) {
		return 1
	}
	level := int(math.Pow(float64(xp)/100, 2.0/3))
	if level < 1 {
		level = 1
	}
	for level > 1 && XPRequiredForLevel(level) > xp {
		level--
	}
	for {
		next := XPRequiredForLevel(level + 1)
		if next > xp || next == math.MaxInt64 {
			return level
		}
		level++
	}
}

// LevelProgress describes how far a player is into their current level.
type LevelProgress struct {
	Current    int64   `json:"current"`
	Required   int64   `json:"required"`
	Percentage float64 `json:"percentage"`
}

// ProgressWithinLevel returns the progress of xp inside level. level must be
// the value LevelFromXP reports for xp.
func ProgressWithinLevel(xp int64, level int) (LevelProgress, error) {
	if level < 1 {
		return LevelProgress{}, fmt.Errorf("level %d: %w", level, ErrInvalidLevel)
	}
	floor := XPRequiredForLevel(level)
	next := XPRequiredForLevel(level + 1)
	if floor > xp || xp >= next {
		return LevelProgress{}, fmt.Errorf("xp %d outside level %d [%d, %d): %w", xp, level, floor, next, ErrInvalidLevel)
	}
	current := xp - floor
	required := next - floor
	return LevelProgress{
		Current:    current,
		Required:   required,
		Percentage: 100 * float64(current) / float64(required),
	}, nil
}

// XPFromActivity converts raw daily activity into base XP.
func XPFromActivity(steps, calories int64) int64 {
	return xpFromActivity(DefaultXPRates, steps, calories)
}

func xpFromActivity(rates XPRates, steps, calories int64) int64 {
	return int64(math.Floor(float64(steps)*rates.Steps + float64(calories)*rates.Calories))
}

// MilestoneRewards sums every daily milestone reached by steps and calories.
// Milestones are additive: 10,000 steps pays both the 5k and 10k rewards.
func MilestoneRewards(steps, calories int64) Reward {
	var total Reward
	for _, m := range DailyMilestones {
		var value int64
		switch m.Metric {
		case MetricSteps:
			value = steps
		case MetricCalories:
			value = calories
		default:
			continue
		}
		if value >= m.Threshold {
			total.XP += m.Reward.XP
			total.SweatPoints += m.Reward.SweatPoints
		}
	}
	return total
}

// ApplySubscriptionMultiplier scales sweat points by tier. XP is never
// multiplied.
func ApplySubscriptionMultiplier(sweatPoints int64, tier SubscriptionTier) int64 {
	mult, ok := subscriptionMultipliers[tier]
	if !ok {
		mult = 1
	}
	return sweatPoints * mult
}
