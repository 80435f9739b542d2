package experiments

import (
	"fmt"
	"sync"
	"time"

	"war/config"
	"war/engine"
	"war/experiments/metrics"
	"war/game"
	"war/history"
	"war/player"
	"war/searcher"

	"github.com/rs/zerolog/log"
)

const (
	RandomPolicy     = "random"
	GreedyPolicy     = "greedy"
	MonteCarloPolicy = "montecarlo"
)

// Result holds every record of a batch run.
type Result struct {
	Policy  string
	Seed    uint64
	Games   []metrics.GameRecord
	Turns   []metrics.TurnRecord
	Summary metrics.Summary
}

// Setup is the JSON document stored next to a run's CSV files.
type Setup struct {
	Config  config.Config   `json:"config"`
	Policy  string          `json:"policy"`
	Seed    uint64          `json:"seed"`
	Summary metrics.Summary `json:"summary"`
}

// Run plays cfg.Games sessions on cfg.Goroutines workers. Game i is seeded
// with the base seed plus i, so a run with a fixed cfg.Seed is reproducible.
// When db is not nil every session and turn is stored there too.
func Run(cfg config.Config, policy string, db *history.DB) (Result, error) {
	if err := config.Validate(cfg); err != nil {
		return Result{}, fmt.Errorf("invalid experiment config: %w", err)
	}
	switch policy {
	case RandomPolicy, GreedyPolicy, MonteCarloPolicy:
	default:
		return Result{}, fmt.Errorf("unknown policy %q", policy)
	}
	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = engine.NewSeed(); err != nil {
			return Result{}, err
		}
	}

	log.Info().Msgf("starting %d %s games on %d goroutines with seed %d...", cfg.Games, policy, cfg.Goroutines, seed)

	collector := metrics.NewCollector()
	collector.Start()

	games := make([]metrics.GameRecord, cfg.Games)
	turns := make([][]metrics.TurnRecord, cfg.Games)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	jobs := make(chan int)
	worker := func() {
		defer wg.Done()
		for i := range jobs {
			gameCfg := cfg
			gameCfg.Seed = seed + uint64(i)
			record, turnRecords, err := runGame(gameCfg, policy, i+1, db)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				continue
			}
			games[i] = record
			turns[i] = turnRecords
			collector.AddGame(record.GameMetric)
			log.Debug().Msgf("completed game %d with outcome: %s", i+1, record.Outcome)
		}
	}

	for g := 0; g < cfg.Goroutines; g++ {
		wg.Add(1)
		go worker()
	}
	for i := 0; i < cfg.Games; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return Result{}, firstErr
	}

	result := Result{
		Policy:  policy,
		Seed:    seed,
		Games:   games,
		Summary: collector.Complete(),
	}
	for _, t := range turns {
		result.Turns = append(result.Turns, t...)
	}

	log.Info().Msgf("completed %d games: %d won, %d drawn, %d stalled", result.Summary.Games, result.Summary.Won, result.Summary.Drawn, result.Summary.Stalled)
	return result, nil
}

// runGame plays one session to its end and returns its records.
func runGame(cfg config.Config, policy string, id int, db *history.DB) (metrics.GameRecord, []metrics.TurnRecord, error) {
	start := time.Now()

	var options []engine.Option
	if db != nil {
		options = append(options, engine.WithRecorder(db.Recorder(cfg.Territories)))
	}
	s, err := engine.New(cfg, options...)
	if err != nil {
		return metrics.GameRecord{}, nil, fmt.Errorf("game %d: %w", id, err)
	}
	if db != nil {
		if err := db.CreateSession(s); err != nil {
			return metrics.GameRecord{}, nil, fmt.Errorf("game %d: %w", id, err)
		}
	}

	// The policy gets its own stream so its choices do not shift the dice.
	policySource := game.NewSource(cfg.Seed ^ 0x9e3779b97f4a7c15)
	var p player.Policy
	switch policy {
	case GreedyPolicy:
		p = player.Greedy{Source: policySource}
	case MonteCarloPolicy:
		// Games already run in parallel, so each search stays on one goroutine
		p = searcher.NewMonteCarlo(policySource, 1)
	default:
		p = player.Random{Source: policySource}
	}

	outcome, err := player.Play(s, p, cfg.MaxTurns)
	if err != nil {
		return metrics.GameRecord{}, nil, fmt.Errorf("game %d: %w", id, err)
	}
	if db != nil {
		if err := db.FinishSession(s.ID(), outcome.String()); err != nil {
			return metrics.GameRecord{}, nil, fmt.Errorf("game %d: %w", id, err)
		}
	}

	end := time.Now()
	mission := s.Mission()
	record := metrics.GameRecord{
		ID:        id,
		SessionID: s.ID(),
		Policy:    policy,
		GameMetric: metrics.GameMetric{
			Seed:      cfg.Seed,
			MissionID: mission.ID,
			Mission:   mission.Description,
			Outcome:   outcome.String(),
			StartTime: start,
			EndTime:   end,
			Duration:  end.Sub(start),
		},
	}

	var turnRecords []metrics.TurnRecord
	for _, turn := range s.Turns() {
		record.Turns++
		switch {
		case turn.Captured():
			record.Captures++
		case turn.Refused():
			record.Refused++
		}
		turnRecords = append(turnRecords, metrics.TurnRecord{
			Game: id,
			TurnMetric: metrics.TurnMetric{
				Step:        turn.Number,
				Attacker:    turn.Attacker,
				Defender:    turn.Defender,
				AttackRoll:  turn.AttackRoll,
				DefenseRoll: turn.DefenseRoll,
				Outcome:     turn.Outcome.String(),
				Status:      turn.Status.String(),
			},
		})
	}

	return record, turnRecords, nil
}

// Write stores the run under dir/name/<timestamp> and returns that directory.
func Write(dir, name string, cfg config.Config, result Result) (string, error) {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	setup := Setup{Config: cfg, Policy: result.Policy, Seed: result.Seed, Summary: result.Summary}
	if err := writer.WriteSetup(setup); err != nil {
		return "", err
	}
	log.Info().Msg("stored setup")

	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", err
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteTurnRecords(result.Turns); err != nil {
		return "", err
	}
	log.Info().Msg("stored turn records")

	return writer.Dir(), nil
}
