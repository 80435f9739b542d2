package config

import (
	"os"
	"path/filepath"
	"testing"

	"war/game"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "war.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		cfg, err := Load("")

		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
		require.Equal(t, game.DefaultTerritories, cfg.Territories)
		require.Equal(t, "Green", cfg.PlayerFaction)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		path := writeConfig(t, `
territories = ["Alderaan", "Tatooine", "Hoth", "Naboo", "Endor"]
factions = ["Vermelho", "Azul", "Verde", "Amarelo", "Roxo"]
player_faction = "Verde"
seed = 42
games = 10
log_level = "debug"
`)

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, "Verde", cfg.PlayerFaction)
		require.Equal(t, []string{"Vermelho", "Azul", "Verde", "Amarelo", "Roxo"}, cfg.Factions)
		require.Equal(t, uint64(42), cfg.Seed)
		require.Equal(t, 10, cfg.Games)
		require.Equal(t, 6, cfg.DiceSides, "Unset fields should keep defaults")
		require.Equal(t, zerolog.DebugLevel, cfg.Level())
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		path := writeConfig(t, "games = 10\n")
		t.Setenv("WAR_GAMES", "3")
		t.Setenv("WAR_PLAYER_FACTION", "Blue")
		t.Setenv("WAR_TERRITORIES", "Hoth,Naboo")
		t.Setenv("WAR_FACTIONS", "Red,Blue")

		cfg, err := Load(path)

		require.NoError(t, err)
		require.Equal(t, 3, cfg.Games)
		require.Equal(t, "Blue", cfg.PlayerFaction)
		require.Equal(t, []string{"Hoth", "Naboo"}, cfg.Territories)
		require.Equal(t, []string{"Red", "Blue"}, cfg.Factions)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))

		require.ErrorContains(t, err, "config load failed")
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeConfig(t, "games = [")

		_, err := Load(path)

		require.ErrorContains(t, err, "config parse failed")
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		path := writeConfig(t, "min_troops = 5\nmax_troops = 4\n")

		_, err := Load(path)

		require.ErrorContains(t, err, "max_troops 4 is below min_troops 5")
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate func(*Config)
		want   string
	}{
		"no territories":    {func(c *Config) { c.Territories = nil }, "missing territories"},
		"blank territory":   {func(c *Config) { c.Territories[1] = " " }, "territory[1] has no name"},
		"no factions":       {func(c *Config) { c.Factions = nil }, "missing factions"},
		"no player faction": {func(c *Config) { c.PlayerFaction = "" }, "missing player_faction"},
		"too few factions":  {func(c *Config) { c.Factions = c.Factions[:4] }, "4 factions for 5 territories"},
		"unknown player":    {func(c *Config) { c.PlayerFaction = "Verde" }, `player_faction "Verde" is not one of the factions`},
		"zero min troops":   {func(c *Config) { c.MinTroops = 0 }, "min_troops must be at least 1"},
		"one-sided dice":    {func(c *Config) { c.DiceSides = 1 }, "dice_sides must be at least 2"},
		"no games":          {func(c *Config) { c.Games = 0 }, "games must be positive"},
		"no goroutines":     {func(c *Config) { c.Goroutines = 0 }, "goroutines must be positive"},
		"no turns":          {func(c *Config) { c.MaxTurns = 0 }, "max_turns must be positive"},
		"unknown log level": {func(c *Config) { c.LogLevel = "loud" }, "invalid log_level"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)

			require.ErrorContains(t, Validate(cfg), tc.want)
		})
	}

	require.NoError(t, Validate(Default()))
}
