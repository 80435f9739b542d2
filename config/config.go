package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"war/game"
	"war/meta"
	"war/utils"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds everything needed to set up sessions and batch simulations.
type Config struct {
	Territories   []string `toml:"territories" env:"TERRITORIES"`
	Factions      []string `toml:"factions" env:"FACTIONS"`
	PlayerFaction string   `toml:"player_faction" env:"PLAYER_FACTION"`

	MinTroops int `toml:"min_troops" env:"MIN_TROOPS"`
	MaxTroops int `toml:"max_troops" env:"MAX_TROOPS"`
	DiceSides int `toml:"dice_sides" env:"DICE_SIDES"`

	// Seed seeds every random draw; zero picks a random seed.
	Seed       uint64 `toml:"seed" env:"SEED"`
	Games      int    `toml:"games" env:"GAMES"`
	Goroutines int    `toml:"goroutines" env:"GOROUTINES"`
	MaxTurns   int    `toml:"max_turns" env:"MAX_TURNS"`

	DBPath   string `toml:"db_path" env:"DB_PATH"`
	OutDir   string `toml:"out_dir" env:"OUT_DIR"`
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`
}

// Default returns the standard five-territory setup.
func Default() Config {
	rules := game.NewStandardRules()
	return Config{
		Territories:   append([]string(nil), game.DefaultTerritories...),
		Factions:      append([]string(nil), game.DefaultFactions...),
		PlayerFaction: game.DefaultPlayerFaction,
		MinTroops:     rules.MinTroops,
		MaxTroops:     rules.MaxTroops,
		DiceSides:     rules.Sides,
		Games:         meta.GAMES,
		Goroutines:    meta.GO_ROUTINES,
		MaxTurns:      meta.MAX_TURNS,
		OutDir:        "experiments",
		LogLevel:      "info",
	}
}

// Load reads the TOML file at path (skipped when path is empty), applies
// WAR_* environment overrides and validates the result. Fields left unset
// keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadToml(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: meta.ENV_PREFIX}); err != nil {
		return Config{}, fmt.Errorf("config env parse failed: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if _, err := toml.Decode(string(data), out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func Validate(cfg Config) error {
	if len(cfg.Territories) == 0 {
		return errors.New("config missing territories")
	}
	for i, name := range cfg.Territories {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("territory[%d] has no name", i)
		}
	}
	if len(cfg.Factions) == 0 {
		return errors.New("config missing factions")
	}
	// Territory i starts owned by faction i
	if len(cfg.Factions) < len(cfg.Territories) {
		return fmt.Errorf("%d factions for %d territories", len(cfg.Factions), len(cfg.Territories))
	}
	if strings.TrimSpace(cfg.PlayerFaction) == "" {
		return errors.New("config missing player_faction")
	}
	if utils.FindIndex(cfg.Factions, cfg.PlayerFaction) < 0 {
		return fmt.Errorf("player_faction %q is not one of the factions", cfg.PlayerFaction)
	}
	if cfg.MinTroops < 1 {
		return fmt.Errorf("min_troops must be at least 1, got %d", cfg.MinTroops)
	}
	if cfg.MaxTroops < cfg.MinTroops {
		return fmt.Errorf("max_troops %d is below min_troops %d", cfg.MaxTroops, cfg.MinTroops)
	}
	if cfg.DiceSides < 2 {
		return fmt.Errorf("dice_sides must be at least 2, got %d", cfg.DiceSides)
	}
	if cfg.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	if cfg.Goroutines < 1 {
		return fmt.Errorf("goroutines must be positive, got %d", cfg.Goroutines)
	}
	if cfg.MaxTurns < 1 {
		return fmt.Errorf("max_turns must be positive, got %d", cfg.MaxTurns)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}
	return nil
}

// Level returns the configured zerolog level, defaulting to info.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
