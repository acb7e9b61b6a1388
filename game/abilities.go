// game/abilities.go
package game

type StatusEffect string

const (
	StatusSlow       StatusEffect = "slow"
	StatusStun       StatusEffect = "stun"
	StatusSpeedBoost StatusEffect = "speed_boost"
	StatusShield     StatusEffect = "shield"
	StatusPoison     StatusEffect = "poison"
	StatusInvincible StatusEffect = "invincible"
)

type EffectType string

const (
	EffectDamage EffectType = "damage"
	EffectHeal   EffectType = "heal"
	EffectStatus EffectType = "status"
	EffectBuff   EffectType = "buff"
	EffectDebuff EffectType = "debuff"
)

type EffectTarget string

const (
	TargetSelf     EffectTarget = "self"
	TargetOpponent EffectTarget = "opponent"
)

// AbilityEffect describes what an ability does. StatusEffect and Duration
// are only set for EffectStatus.
type AbilityEffect struct {
	Type         EffectType   `json:"type"`
	Value        float64      `json:"value"`
	Target       EffectTarget `json:"target"`
	StatusEffect StatusEffect `json:"status_effect,omitempty"`
	Duration     int          `json:"duration,omitempty"`
}

type Ability struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Cooldown int           `json:"cooldown"`
	Effect   AbilityEffect `json:"effect"`
}

var ClassAbilities = map[UserClass][]Ability{
	ClassSprinter: {
		{ID: "dash", Name: "Dash", Cooldown: 3, Effect: AbilityEffect{Type: EffectBuff, Value: 50, Target: TargetSelf}},
		{ID: "sonic_boom", Name: "Sonic Boom", Cooldown: 5, Effect: AbilityEffect{Type: EffectDamage, Value: 30, Target: TargetOpponent}},
	},
	ClassTank: {
		{ID: "shield_wall", Name: "Shield Wall", Cooldown: 4, Effect: AbilityEffect{Type: EffectBuff, Value: 40, Target: TargetSelf}},
		{ID: "ground_slam", Name: "Ground Slam", Cooldown: 5, Effect: AbilityEffect{Type: EffectStatus, Value: 20, Target: TargetOpponent, StatusEffect: StatusStun, Duration: 2}},
	},
	ClassTrickster: {
		{ID: "smoke_bomb", Name: "Smoke Bomb", Cooldown: 3, Effect: AbilityEffect{Type: EffectStatus, Value: 0, Target: TargetOpponent, StatusEffect: StatusSlow, Duration: 3}},
		{ID: "poison_dart", Name: "Poison Dart", Cooldown: 4, Effect: AbilityEffect{Type: EffectStatus, Value: 15, Target: TargetOpponent, StatusEffect: StatusPoison, Duration: 4}},
	},
	ClassEndurance: {
		{ID: "second_wind", Name: "Second Wind", Cooldown: 5, Effect: AbilityEffect{Type: EffectHeal, Value: 50, Target: TargetSelf}},
		{ID: "steady_pace", Name: "Steady Pace", Cooldown: 3, Effect: AbilityEffect{Type: EffectBuff, Value: 30, Target: TargetSelf}},
	},
}

// LookupAbility finds an ability of class by id.
func LookupAbility(class UserClass, id string) (Ability, bool) {
	for _, a := range ClassAbilities[class] {
		if a.ID == id {
			return a, true
		}
	}
	return Ability{}, false
}
