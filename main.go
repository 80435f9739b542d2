package main

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"war/config"
	"war/experiments"
	"war/experiments/metrics"
	"war/history"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	configPath := flag.String("config", "", "Path to a TOML config file")
	games := flag.Int("games", 0, "Number of games to play (overrides config)")
	goroutines := flag.Int("goroutines", 0, "Number of games played in parallel (overrides config)")
	seed := flag.Uint64("seed", 0, "Base seed, 0 picks a random one (overrides config)")
	dbPath := flag.String("db", "", "SQLite file to record sessions in (overrides config)")
	outDir := flag.String("out", "", "Directory for experiment records (overrides config)")
	policy := flag.String("policy", experiments.RandomPolicy, "Player policy: random, greedy or montecarlo")
	throughput := flag.String("throughput", "", "Comma separated goroutine counts for a throughput run, e.g. 1,2,4,8")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *goroutines > 0 {
		cfg.Goroutines = *goroutines
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatal().Err(err).Msg("invalid flags")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	if *throughput != "" {
		runThroughput(cfg, *policy, *throughput)
		return
	}
	runBatch(cfg, *policy)
}

func runBatch(cfg config.Config, policy string) {
	var db *history.DB
	if cfg.DBPath != "" {
		var err error
		db, err = history.Open(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open history")
		}
		defer db.Close()
	}

	result, err := experiments.Run(cfg, policy, db)
	if err != nil {
		log.Fatal().Err(err).Msg("batch failed")
	}

	dir, err := experiments.Write(cfg.OutDir, policy, cfg, result)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to store records")
	}

	s := result.Summary
	log.Info().Msgf("%s games (%s turns, %s captures) in %s, win rate %.1f%%",
		humanize.Comma(s.Games), humanize.Comma(s.Turns), humanize.Comma(s.Captures),
		s.Duration.Round(time.Millisecond), 100*s.WinRate())
	log.Info().Msgf("records stored in %s", dir)
}

func runThroughput(cfg config.Config, policy string, counts string) {
	var goroutines []int
	for _, field := range strings.Split(counts, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n <= 0 {
			log.Fatal().Msgf("invalid goroutine count %q", field)
		}
		goroutines = append(goroutines, n)
	}

	records, err := experiments.RunThroughput(cfg, policy, goroutines)
	if err != nil {
		log.Fatal().Err(err).Msg("throughput run failed")
	}

	writer, err := metrics.NewWriter(cfg.OutDir, "throughput")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create writer")
	}
	if err := writer.WriteThroughputRecords(records); err != nil {
		log.Fatal().Err(err).Msg("failed to store throughput records")
	}
	for _, r := range records {
		log.Info().Msgf("%d goroutines: %s games/s", r.Goroutines, humanize.CommafWithDigits(r.GamesPerSecond, 1))
	}
}
