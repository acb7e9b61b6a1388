// game/stats.go
package game

import "math"

// StatBlock is a full set of combat stats.
type StatBlock struct {
	Speed   int `json:"speed"`
	Defense int `json:"defense"`
	Attack  int `json:"attack"`
	Stamina int `json:"stamina"`
}

// ItemStats holds the optional bonuses an item grants. Absent fields count
// as zero.
type ItemStats struct {
	Speed                    *int `json:"speed,omitempty"`
	Defense                  *int `json:"defense,omitempty"`
	Attack                   *int `json:"attack,omitempty"`
	Stamina                  *int `json:"stamina,omitempty"`
	AbilityCooldownReduction *int `json:"ability_cooldown_reduction,omitempty"`
}

var ClassStats = map[UserClass]StatBlock{
	ClassSprinter:  {Speed: 100, Defense: 60, Attack: 80, Stamina: 70},
	ClassTank:      {Speed: 60, Defense: 100, Attack: 70, Stamina: 90},
	ClassTrickster: {Speed: 85, Defense: 65, Attack: 90, Stamina: 65},
	ClassEndurance: {Speed: 75, Defense: 80, Attack: 70, Stamina: 100},
}

// EffectiveStats returns the class base block plus the bonuses of every
// equipped item. Callers pass only equipped items.
func EffectiveStats(class UserClass, equipped []ItemStats) StatBlock {
	total := ClassStats[class]
	for _, s := range equipped {
		total.Speed += deref(s.Speed)
		total.Defense += deref(s.Defense)
		total.Attack += deref(s.Attack)
		total.Stamina += deref(s.Stamina)
	}
	return total
}

// MoveDistance is the base distance an action covers for the given stats.
// It is never negative, whatever the equipped items subtract.
func (c BattleConfig) MoveDistance(stats StatBlock) float64 {
	return math.Max(0, c.BaseMoveSpeed+float64(stats.Speed)*SpeedMoveFactor)
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
