package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestEffectiveStats_SumsEquippedBonuses(t *testing.T) {
	items := []ItemStats{
		{Speed: intPtr(10)},
		{Speed: intPtr(5), Defense: intPtr(3)},
	}
	got := EffectiveStats(ClassSprinter, items)
	assert.Equal(t, StatBlock{Speed: 115, Defense: 63, Attack: 80, Stamina: 70}, got)
}

func TestEffectiveStats_OrderIndependent(t *testing.T) {
	a := ItemStats{Speed: intPtr(7), Attack: intPtr(-2)}
	b := ItemStats{Stamina: intPtr(12)}
	c := ItemStats{Speed: intPtr(1), Defense: intPtr(4), AbilityCooldownReduction: intPtr(1)}

	forward := EffectiveStats(ClassTank, []ItemStats{a, b, c})
	reverse := EffectiveStats(ClassTank, []ItemStats{c, b, a})
	assert.Equal(t, forward, reverse)
	assert.Equal(t, StatBlock{Speed: 68, Defense: 104, Attack: 68, Stamina: 102}, forward)
}

func TestEffectiveStats_NoItems(t *testing.T) {
	assert.Equal(t, ClassStats[ClassEndurance], EffectiveStats(ClassEndurance, nil))
}

func TestMoveDistance(t *testing.T) {
	d := DefaultBattleConfig.MoveDistance(StatBlock{Speed: 100})
	assert.Equal(t, 100.0, d)
}

func TestMoveDistance_NeverNegative(t *testing.T) {
	stats := EffectiveStats(ClassTank, []ItemStats{{Speed: intPtr(-200)}})
	assert.Equal(t, -140, stats.Speed)
	assert.Equal(t, 0.0, DefaultBattleConfig.MoveDistance(stats))
}

func TestLookupAbility(t *testing.T) {
	a, ok := LookupAbility(ClassSprinter, "dash")
	assert.True(t, ok)
	assert.Equal(t, EffectBuff, a.Effect.Type)

	_, ok = LookupAbility(ClassSprinter, "ground_slam")
	assert.False(t, ok, "abilities are scoped to their class")
}
