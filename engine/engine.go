package engine

import (
	"errors"

	"war/game"
)

var (
	ErrGameOver         = errors.New("game is over - no moves allowed")
	ErrInvalidTerritory = errors.New("territory index out of range")
)

// Status is where a session stands: it starts Active and ends Won or Drawn.
type Status int

const (
	Active Status = iota
	Won
	Drawn
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return "unknown"
	}
}

// Over reports whether s is terminal.
func (s Status) Over() bool {
	return s == Won || s == Drawn
}

// Engine is what a player sees of a running game.
type Engine interface {
	// Play resolves one attack and advances the session state machine.
	Play(attacker, defender int) (Turn, error)
	Status() Status
	LegalAttacks() []game.Move

	ID() string
	Faction() string
	Mission() game.Mission
	Rules() game.Rules
	// Registry returns a copy the caller may modify freely.
	Registry() *game.Registry
}

// Recorder receives every resolved turn, e.g. to persist a session history.
type Recorder interface {
	RecordTurn(sessionID string, turn Turn) error
}
