// Package duel drives a one-on-one fight between two fighters, turn by turn.
// It is a simulation harness: all combat rules live in package fighter.
package duel

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/duel/internal/game/fighter"
)

// Exchange records one attack within a turn.
type Exchange struct {
	Turn     int
	Attacker string
	Defender string
	// Damage is the value reported by Attack.
	Damage int
	// DefenderHealth is the defender's health after the attack.
	DefenderHealth int
}

// Result summarizes a finished duel.
type Result struct {
	ID    uuid.UUID
	Turns int
	// Winner is the surviving fighter's name, or "" when the turn limit was
	// reached or both fell.
	Winner string
	// Experience is the loser's GrantExperience value, awarded to the winner.
	Experience int
	Exchanges  []Exchange
}

// Run fights a against b for at most maxTurns turns. Each turn a attacks b,
// then b attacks a if still alive, then AfterTurn runs for both fighters.
// The duel ends as soon as either fighter is defeated.
//
// Precondition: a and b must be non-nil and distinct; maxTurns >= 1; logger non-nil.
// Postcondition: Result.Turns <= maxTurns.
func Run(a, b *fighter.Fighter, maxTurns int, logger *zap.Logger) Result {
	res := Result{ID: uuid.New()}
	log := logger.With(zap.String("duel_id", res.ID.String()))
	log.Info("duel started",
		zap.String("a", a.Name()),
		zap.String("b", b.Name()),
		zap.Int("max_turns", maxTurns),
	)

	for turn := 1; turn <= maxTurns && a.IsAlive() && b.IsAlive(); turn++ {
		res.Turns = turn
		res.Exchanges = append(res.Exchanges, strike(turn, a, b))
		if b.IsAlive() {
			res.Exchanges = append(res.Exchanges, strike(turn, b, a))
		}
		a.AfterTurn()
		b.AfterTurn()
		log.Debug("turn finished",
			zap.Int("turn", turn),
			zap.Int("a_health", a.Health()),
			zap.Int("b_health", b.Health()),
		)
	}

	switch {
	case a.IsAlive() && !b.IsAlive():
		res.Winner = a.Name()
		res.Experience = b.GrantExperience()
	case b.IsAlive() && !a.IsAlive():
		res.Winner = b.Name()
		res.Experience = a.GrantExperience()
	}

	log.Info("duel finished",
		zap.Int("turns", res.Turns),
		zap.String("winner", res.Winner),
		zap.Int("experience", res.Experience),
	)
	return res
}

func strike(turn int, attacker, defender *fighter.Fighter) Exchange {
	dmg := attacker.Attack(defender)
	return Exchange{
		Turn:           turn,
		Attacker:       attacker.Name(),
		Defender:       defender.Name(),
		Damage:         dmg,
		DefenderHealth: defender.Health(),
	}
}
