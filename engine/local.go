package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"

	"war/config"
	"war/game"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Turn is the record of one resolved attack and the checks that followed it.
type Turn struct {
	Number int `json:"number"`
	game.AttackResult
	MissionComplete bool           `json:"missionComplete"`
	Status          Status         `json:"status"`
	Hash            game.StateHash `json:"hash"`
}

type Option func(s *Session)

func WithSource(src game.Source) Option {
	return func(s *Session) {
		if src != nil {
			s.source = src
		}
	}
}

func WithRules(rules game.Rules) Option {
	return func(s *Session) {
		if rules != nil {
			s.rules = rules
		}
	}
}

func WithRecorder(recorder Recorder) Option {
	return func(s *Session) {
		s.recorder = recorder
	}
}

func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

var _ Engine = (*Session)(nil)

// Session owns one game: the registry, the active mission and the player's
// faction. It is not safe for concurrent use.
type Session struct {
	id       string
	registry *game.Registry
	mission  game.Mission
	faction  string
	source   game.Source
	rules    game.Rules
	recorder Recorder
	status   Status
	turns    []Turn
}

func NewSession(reg *game.Registry, mission game.Mission, faction string, options ...Option) *Session {
	s := &Session{ // Default values
		id:       uuid.NewString(),
		registry: reg,
		mission:  mission,
		faction:  faction,
		rules:    game.NewStandardRules(),
		status:   Active,
	}
	for _, option := range options {
		option(s)
	}
	if s.source == nil {
		seed, err := NewSeed()
		if err != nil {
			panic(err)
		}
		s.source = game.NewSource(seed)
	}
	return s
}

// New builds a session from configuration: a freshly rolled registry and a
// mission drawn from the default catalog, both from a source seeded with
// cfg.Seed (or a random seed when it is zero).
func New(cfg config.Config, options ...Option) (*Session, error) {
	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, err
		}
	}
	src := game.NewSource(seed)
	rules := Rules(cfg)

	reg := game.NewRegistry(len(cfg.Territories), cfg.Factions, cfg.Territories, src, rules)
	mission := game.GenerateMission(game.DefaultCatalog(), src)

	options = append([]Option{WithSource(src), WithRules(rules)}, options...)
	s := NewSession(reg, mission, cfg.PlayerFaction, options...)

	log.Debug().Msgf("session %s started with seed %d, mission: %s", s.id, seed, mission.Description)
	return s, nil
}

// Rules converts the configured dice and troop settings into game rules.
func Rules(cfg config.Config) *game.StandardRules {
	rules := game.NewStandardRules()
	rules.Sides = cfg.DiceSides
	rules.MinTroops = cfg.MinTroops
	rules.MaxTroops = cfg.MaxTroops
	return rules
}

// NewSeed draws a seed from crypto/rand.
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func (s *Session) Play(attacker, defender int) (Turn, error) {
	if s.status.Over() {
		return Turn{}, ErrGameOver
	}
	for _, idx := range []int{attacker, defender} {
		if idx < 0 || idx >= s.registry.Len() {
			return Turn{}, fmt.Errorf("%w: %d", ErrInvalidTerritory, idx)
		}
	}

	result, err := game.Attack(s.registry, attacker, defender, s.source, s.rules)
	if err != nil {
		return Turn{}, fmt.Errorf("cannot attack: %w", err)
	}

	if result.Refused() {
		log.Debug().Msgf("%s does not have enough troops to attack", s.registry.At(attacker).Name)
	} else {
		log.Debug().
			Str("session", s.id).
			Int("attack_roll", result.AttackRoll).
			Int("defense_roll", result.DefenseRoll).
			Stringer("outcome", result.Outcome).
			Msgf("%s attacked %s", s.registry.At(attacker).Name, s.registry.At(defender).Name)
	}

	if game.CheckMission(&s.mission, s.registry, s.faction) {
		s.status = Won
		log.Debug().Msgf("session %s won: %s", s.id, s.mission.Description)
	} else if game.IsDeadlocked(s.registry, s.mission, s.rules) {
		s.status = Drawn
		log.Debug().Msgf("session %s drawn: no territory can attack", s.id)
	}

	turn := Turn{
		Number:          len(s.turns) + 1,
		AttackResult:    result,
		MissionComplete: s.mission.Completed,
		Status:          s.status,
		Hash:            s.registry.Hash(),
	}
	s.turns = append(s.turns, turn)

	if s.recorder != nil {
		if err := s.recorder.RecordTurn(s.id, turn); err != nil {
			log.Error().Err(err).Msgf("failed to record turn %d of session %s", turn.Number, s.id)
			return turn, fmt.Errorf("record turn %d: %w", turn.Number, err)
		}
	}

	return turn, nil
}

// LegalAttacks lists every attack the resolver would neither refuse nor
// reject: an attacker above the garrison floor against another faction.
func (s *Session) LegalAttacks() []game.Move {
	if s.status.Over() {
		return nil
	}
	var moves []game.Move
	territories := s.registry.Territories()
	for a, attacker := range territories {
		if attacker.Troops <= s.rules.MinGarrison() {
			continue
		}
		for d, defender := range territories {
			if a != d && attacker.Faction != defender.Faction {
				moves = append(moves, game.Move{Attacker: a, Defender: d})
			}
		}
	}
	return moves
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Status() Status {
	return s.status
}

func (s *Session) Faction() string {
	return s.faction
}

func (s *Session) Mission() game.Mission {
	return s.mission
}

func (s *Session) Rules() game.Rules {
	return s.rules
}

// Registry returns a copy of the current territories.
func (s *Session) Registry() *game.Registry {
	return s.registry.Copy()
}

func (s *Session) Turns() []Turn {
	turns := make([]Turn, len(s.turns))
	copy(turns, s.turns)
	return turns
}
