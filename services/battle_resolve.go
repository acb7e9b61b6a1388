package services

import (
	"math"
	"time"

	"sweat-battle-system/game"
	"sweat-battle-system/logging"
	"sweat-battle-system/models"
)

type turnOutcome struct {
	Action       models.BattleAction
	TurnAdvanced bool
	Completed    bool
	Winner       models.Side
}

// resolveAction applies one action for side to b in place. The caller has
// already checked that b is open, side belongs to b and side has not acted
// this turn.
func resolveAction(cfg game.BattleConfig, b *models.Battle, side models.Side, class game.UserClass, stats game.StatBlock, abilityID string, now time.Time) turnOutcome {
	state := &b.State
	turn := state.Turn

	action := models.BattleAction{
		Turn:                 turn,
		MoveDistance:         cfg.MoveDistance(stats),
		StatusEffectsApplied: []models.AppliedStatusEffect{},
		Timestamp:            now,
	}

	if abilityID != "" {
		id := abilityID
		action.AbilityID = &id

		ability, ok := game.LookupAbility(class, abilityID)
		switch {
		case !ok:
			logging.Warn("unknown ability ignored", logging.Fields{"battle_id": b.ID, "class": class, "ability_id": abilityID})
		case ability.Effect.Type == game.EffectBuff && ability.Effect.Target == game.TargetSelf:
			action.MoveDistance += ability.Effect.Value
		case ability.Effect.Type == game.EffectStatus && ability.Effect.Target == game.TargetOpponent && ability.Effect.StatusEffect != "":
			action.StatusEffectsApplied = append(action.StatusEffectsApplied, models.AppliedStatusEffect{
				Effect:   ability.Effect.StatusEffect,
				Duration: ability.Effect.Duration,
			})
		}
		// damage, heal and debuff abilities are recorded but have no effect on the race
	}
	action.MoveDistance = math.Max(0, action.MoveDistance)

	state.Append(side, action)
	if b.Status == models.BattleStatusPending {
		b.Status = models.BattleStatusActive
	}

	out := turnOutcome{Action: action}
	if state.HasActed(models.SideChallenger, turn) && state.HasActed(models.SideOpponent, turn) {
		state.Turn = turn + 1
		out.TurnAdvanced = true
	}

	if winner, done := decideWinner(cfg, state); done {
		winnerID := b.ParticipantID(winner)
		completedAt := now
		b.Status = models.BattleStatusCompleted
		b.WinnerID = &winnerID
		b.CompletedAt = &completedAt
		out.Completed = true
		out.Winner = winner
	}
	return out
}

// decideWinner checks the finish line, challenger first, then the turn
// limit. Ties at the turn limit go to the challenger.
func decideWinner(cfg game.BattleConfig, s *models.BattleState) (models.Side, bool) {
	switch {
	case s.ChallengerPosition >= s.TrackLength:
		return models.SideChallenger, true
	case s.OpponentPosition >= s.TrackLength:
		return models.SideOpponent, true
	case s.Turn >= cfg.MaxTurns:
		if s.OpponentPosition > s.ChallengerPosition {
			return models.SideOpponent, true
		}
		return models.SideChallenger, true
	}
	return "", false
}
