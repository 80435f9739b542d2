package experiments

import (
	"time"

	"war/config"
	"war/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// RunThroughput replays the same batch once per goroutine count and measures
// games per second.
func RunThroughput(cfg config.Config, policy string, goroutines []int) ([]metrics.ThroughputRecord, error) {
	log.Info().Msg("starting throughput experiment...")

	records := make([]metrics.ThroughputRecord, 0, len(goroutines))
	for _, g := range goroutines {
		runCfg := cfg
		runCfg.Goroutines = g

		start := time.Now()
		result, err := Run(runCfg, policy, nil)
		if err != nil {
			return nil, err
		}
		elapsed := time.Since(start)

		record := metrics.ThroughputRecord{
			Goroutines: g,
			Games:      len(result.Games),
			Duration:   elapsed,
		}
		if elapsed > 0 {
			record.GamesPerSecond = float64(record.Games) / elapsed.Seconds()
		}
		records = append(records, record)
		log.Info().Msgf("completed %d goroutines: %.2f games/s", g, record.GamesPerSecond)
	}

	log.Info().Msg("completed throughput experiment")
	return records, nil
}
