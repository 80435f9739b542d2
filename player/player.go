package player

import (
	"fmt"

	"war/engine"
	"war/game"

	"github.com/rs/zerolog/log"
)

// Outcome is how an automated game ended.
type Outcome int

const (
	Won Outcome = iota
	Drawn
	Stalled   // active, but no legal attack remains
	TurnLimit // active after the maximum number of turns
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	case Stalled:
		return "stalled"
	case TurnLimit:
		return "turn limit"
	default:
		return "unknown"
	}
}

// Policy picks the next attack for a session. ok is false when it has none.
type Policy interface {
	Choose(s engine.Engine) (move game.Move, ok bool)
}

// Random picks uniformly among the legal attacks.
type Random struct {
	Source game.Source
}

func (p Random) Choose(s engine.Engine) (game.Move, bool) {
	moves := s.LegalAttacks()
	if len(moves) == 0 {
		return game.Move{}, false
	}
	return moves[p.Source.Intn(len(moves))], true
}

// Greedy picks the attack whose capture would move the player's mission
// furthest, preferring weaker defenders. Ties are broken at random.
type Greedy struct {
	Source   game.Source
	Evaluate game.Evaluate
}

func (p Greedy) Choose(s engine.Engine) (game.Move, bool) {
	moves := s.LegalAttacks()
	if len(moves) == 0 {
		return game.Move{}, false
	}
	evaluate := p.Evaluate
	if evaluate == nil {
		evaluate = game.MissionProgress
	}

	reg := s.Registry()
	mission := s.Mission()
	current := evaluate(reg, mission, s.Faction())

	var best []game.Move
	bestScore := 0.0
	for _, move := range moves {
		attacker, defender := reg.At(move.Attacker), reg.At(move.Defender)
		after := reg.Conquered(move.Defender, attacker.Faction)
		score := evaluate(after, mission, s.Faction()) - current
		score += 0.01 * float64(attacker.Troops) / float64(defender.Troops)

		switch {
		case len(best) == 0 || score > bestScore:
			best = []game.Move{move}
			bestScore = score
		case score == bestScore:
			best = append(best, move)
		}
	}
	return best[p.Source.Intn(len(best))], true
}

// Play drives the session with policy until it ends, stalls or reaches
// maxTurns.
func Play(s engine.Engine, policy Policy, maxTurns int) (Outcome, error) {
	for turns := 0; turns < maxTurns; turns++ {
		switch s.Status() {
		case engine.Won:
			return Won, nil
		case engine.Drawn:
			return Drawn, nil
		}

		move, ok := policy.Choose(s)
		if !ok {
			log.Debug().Msgf("session %s has no legal attack left", s.ID())
			return Stalled, nil
		}
		if _, err := s.Play(move.Attacker, move.Defender); err != nil {
			return 0, fmt.Errorf("session %s: %w", s.ID(), err)
		}
	}

	switch s.Status() {
	case engine.Won:
		return Won, nil
	case engine.Drawn:
		return Drawn, nil
	}
	log.Warn().Msgf("session %s stopped after %d turns", s.ID(), maxTurns)
	return TurnLimit, nil
}
