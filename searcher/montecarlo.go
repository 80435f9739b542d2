package searcher

import (
	"math"
	"strconv"
	"sync"

	"war/engine"
	"war/game"

	"github.com/rs/zerolog/log"
)

type Option func(m *MonteCarlo)

func WithEpisodes(episodes int) Option {
	return func(m *MonteCarlo) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MonteCarlo) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MonteCarlo) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MonteCarlo) {
		m.metrics = NewMetricsCollector()
	}
}

// MonteCarlo scores every legal attack by the mean reward of random
// playouts that start with it, and picks the best one.
//
// Every playout gets its own source, seeded from a base drawn from source
// plus the playout's index, so a choice does not depend on the number of
// goroutines.
type MonteCarlo struct {
	source     game.Source
	goroutines int
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	metrics    MetricsCollector
	last       SearchMetrics
}

func NewMonteCarlo(source game.Source, goroutines int, options ...Option) *MonteCarlo {
	if goroutines <= 0 {
		panic("goroutines must be positive")
	}
	m := &MonteCarlo{ // Default values
		source:     source,
		goroutines: goroutines,
		episodes:   DefaultEpisodes,
		cutoff:     MaxCutoff,
		evaluate:   game.MissionProgress,
		metrics:    NewNoMetricsCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Metrics describes the most recent search.
func (m *MonteCarlo) Metrics() SearchMetrics {
	return m.last
}

func (m *MonteCarlo) Choose(s engine.Engine) (game.Move, bool) {
	moves := s.LegalAttacks()
	switch len(moves) {
	case 0:
		return game.Move{}, false
	case 1:
		return moves[0], true
	}

	scores := m.Simulate(s, moves)
	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}
	log.Debug().Msgf("session %s: picked %v with mean reward %.3f", s.ID(), moves[best], scores[best])
	return moves[best], true
}

// Simulate returns the mean playout reward of each move.
func (m *MonteCarlo) Simulate(s engine.Engine, moves []game.Move) []float64 {
	base := uint64(m.source.Intn(math.MaxInt32))
	total := len(moves) * m.episodes
	rewards := make([]float64, total)

	m.metrics.Start(len(moves))
	task := make(chan int, total)
	for i := 0; i < total; i++ {
		task <- i
	}
	close(task)

	var wg sync.WaitGroup
	for g := 0; g < m.goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for i := range task {
				move := moves[i/m.episodes]
				rewards[i] = m.playout(s, move, game.NewSource(base+uint64(i)))
				m.metrics.AddEpisode()
			}
		}()
	}
	wg.Wait()
	m.last = m.metrics.Complete()

	// Summed in index order so the result is the same for any goroutine count
	scores := make([]float64, len(moves))
	for i, reward := range rewards {
		scores[i/m.episodes] += reward
	}
	for i := range scores {
		scores[i] /= float64(m.episodes)
	}
	return scores
}

// playout plays move on a copy of the session, then random attacks until the
// game ends or the cutoff is reached.
func (m *MonteCarlo) playout(s engine.Engine, move game.Move, src game.Source) float64 {
	sim := engine.NewSession(s.Registry(), s.Mission(), s.Faction(),
		engine.WithID("playout-"+strconv.Itoa(move.Attacker)+"-"+strconv.Itoa(move.Defender)),
		engine.WithSource(src),
		engine.WithRules(s.Rules()),
	)

	next := move
	for depth := 0; depth < m.cutoff; depth++ {
		if _, err := sim.Play(next.Attacker, next.Defender); err != nil {
			panic(err) // LegalAttacks only yields playable attacks
		}
		if sim.Status().Over() {
			break
		}
		moves := sim.LegalAttacks()
		if len(moves) == 0 {
			break
		}
		next = moves[src.Intn(len(moves))] // Random rollout policy
	}

	switch sim.Status() {
	case engine.Won:
		m.metrics.AddFullPlayout()
		return WIN
	case engine.Drawn:
		m.metrics.AddFullPlayout()
		return LOSS
	}
	return m.evaluate(sim.Registry(), sim.Mission(), sim.Faction())
}
