// game/constants.go
package game

import "time"

// UserClass is the RPG class a player picks at registration.
type UserClass string

const (
	ClassSprinter  UserClass = "sprinter"
	ClassTank      UserClass = "tank"
	ClassTrickster UserClass = "trickster"
	ClassEndurance UserClass = "endurance"
)

// Valid reports whether c is one of the known classes.
func (c UserClass) Valid() bool {
	_, ok := ClassStats[c]
	return ok
}

type SubscriptionTier string

const (
	TierFree    SubscriptionTier = "free"
	TierPremium SubscriptionTier = "premium"
)

// BattleConfig holds the race-track tuning. TrackLength is copied into each
// battle at creation so later tuning changes never affect running battles.
type BattleConfig struct {
	TrackLength   float64
	BaseMoveSpeed float64
	TurnDuration  time.Duration
	MaxTurns      int
}

var DefaultBattleConfig = BattleConfig{
	TrackLength:   1000,
	BaseMoveSpeed: 50,
	TurnDuration:  30 * time.Second,
	MaxTurns:      20,
}

// SpeedMoveFactor scales effective speed into extra distance per action.
const SpeedMoveFactor = 0.5

// Reward is an XP + sweat points pair.
type Reward struct {
	XP          int64 `json:"xp"`
	SweatPoints int64 `json:"sweat_points"`
}

// BattleWinReward is paid once to the winner of a battle.
var BattleWinReward = Reward{XP: 500, SweatPoints: 50}

// XPRates convert raw activity into XP.
type XPRates struct {
	Steps    float64
	Calories float64
}

var DefaultXPRates = XPRates{
	Steps:    1, // 1 step = 1 XP
	Calories: 5, // 1 calorie = 5 XP
}

// Milestone pays out when the daily metric reaches Threshold.
type Milestone struct {
	Metric    string
	Threshold int64
	Reward    Reward
}

const (
	MetricSteps    = "steps"
	MetricCalories = "calories"
)

// DailyMilestones is evaluated in order; every reached threshold pays.
var DailyMilestones = []Milestone{
	{Metric: MetricSteps, Threshold: 5000, Reward: Reward{XP: 500, SweatPoints: 50}},
	{Metric: MetricSteps, Threshold: 10000, Reward: Reward{XP: 1000, SweatPoints: 100}},
	{Metric: MetricSteps, Threshold: 15000, Reward: Reward{XP: 2000, SweatPoints: 200}},
	{Metric: MetricCalories, Threshold: 250, Reward: Reward{XP: 750, SweatPoints: 75}},
	{Metric: MetricCalories, Threshold: 500, Reward: Reward{XP: 1500, SweatPoints: 150}},
	{Metric: MetricCalories, Threshold: 1000, Reward: Reward{XP: 3000, SweatPoints: 300}},
}

// AntiCheatLimits bound what a single activity sync may credit.
type AntiCheatLimits struct {
	MaxStepsPerDay    int64
	MaxCaloriesPerDay int64
	MaxXPPerSync      int64
}

var DefaultAntiCheat = AntiCheatLimits{
	MaxStepsPerDay:    50000,
	MaxCaloriesPerDay: 5000,
	MaxXPPerSync:      100000,
}

var subscriptionMultipliers = map[SubscriptionTier]int64{
	TierFree:    1,
	TierPremium: 2,
}
