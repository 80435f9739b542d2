package player

import (
	"errors"
	"testing"

	"war/engine"
	"war/game"

	"github.com/stretchr/testify/require"
)

func newSession(src game.Source, mission game.Mission, territories ...game.Territory) *engine.Session {
	return engine.NewSession(game.RegistryOf(territories...), mission, "Green", engine.WithSource(src))
}

// failingEngine accepts every choice but fails to play it.
type failingEngine struct {
	*engine.Session
}

func (f failingEngine) Play(attacker, defender int) (engine.Turn, error) {
	return engine.Turn{}, errors.New("connection lost")
}

func standardMap(troops int) []game.Territory {
	territories := make([]game.Territory, len(game.DefaultTerritories))
	for i := range territories {
		territories[i] = game.Territory{Name: game.DefaultTerritories[i], Faction: game.DefaultFactions[i], Troops: troops}
	}
	return territories
}

func TestRandomChoose(t *testing.T) {
	t.Run("picking the drawn legal attack", func(t *testing.T) {
		s := newSession(game.Dice(1, 6), game.Conquer(0, 3), standardMap(3)...)
		policy := Random{Source: &game.FixedSource{Draws: []int{1}}}

		got, ok := policy.Choose(s)

		require.True(t, ok)
		require.Equal(t, s.LegalAttacks()[1], got)
	})

	t.Run("no legal attack", func(t *testing.T) {
		s := newSession(game.Dice(1, 6), game.Conquer(0, 3), standardMap(1)...)
		policy := Random{Source: game.NewSource(1)}

		_, ok := policy.Choose(s)

		require.False(t, ok)
	})
}

func TestGreedyChoose(t *testing.T) {
	t.Run("attacking the mission territory with the player's faction", func(t *testing.T) {
		s := newSession(game.Dice(1, 6), game.Control(3, "Naboo"), standardMap(3)...)
		policy := Greedy{Source: &game.FixedSource{Draws: []int{0}}}

		got, ok := policy.Choose(s)

		require.True(t, ok)
		require.Equal(t, game.Move{Attacker: 2, Defender: 3}, got)
	})

	t.Run("any faction may help eliminate a target", func(t *testing.T) {
		territories := standardMap(3)
		territories[2].Troops = 1 // Green cannot attack
		s := newSession(game.Dice(1, 6), game.Eliminate(1, "Red"), territories...)
		policy := Greedy{Source: &game.FixedSource{Draws: []int{0}}}

		got, ok := policy.Choose(s)

		require.True(t, ok)
		require.Equal(t, 0, got.Defender, "Greedy should strike the faction to eliminate")
	})

	t.Run("custom evaluation", func(t *testing.T) {
		s := newSession(game.Dice(1, 6), game.Conquer(0, 3), standardMap(3)...)
		endor := func(r *game.Registry, _ game.Mission, _ string) float64 {
			if r.At(4).Faction != "Purple" {
				return 1
			}
			return 0
		}
		policy := Greedy{Source: &game.FixedSource{Draws: []int{0}}, Evaluate: endor}

		got, ok := policy.Choose(s)

		require.True(t, ok)
		require.Equal(t, 4, got.Defender)
	})
}

func TestPlay(t *testing.T) {
	t.Run("driving a session to a terminal state", func(t *testing.T) {
		for seed := uint64(1); seed <= 20; seed++ {
			src := game.NewSource(seed)
			reg := game.CreateRegistry(src, game.NewStandardRules())
			s := engine.NewSession(reg, game.GenerateMission(game.DefaultCatalog(), src), "Green", engine.WithSource(src))

			got, err := Play(s, Random{Source: src}, 10000)

			require.NoError(t, err)
			switch got {
			case Won:
				require.Equal(t, engine.Won, s.Status())
				require.True(t, s.Mission().Completed)
			case Drawn:
				require.Equal(t, engine.Drawn, s.Status())
				require.False(t, s.Registry().CanAttack(1))
			case Stalled:
				require.Equal(t, engine.Active, s.Status())
				require.Empty(t, s.LegalAttacks())
			default:
				t.Fatalf("seed %d: unexpected outcome %s", seed, got)
			}
			for _, territory := range s.Registry().Territories() {
				require.GreaterOrEqual(t, territory.Troops, 1)
			}
		}
	})

	t.Run("stalling when one faction holds the map", func(t *testing.T) {
		territories := standardMap(3)
		for i := range territories {
			territories[i].Faction = "Red"
		}
		s := newSession(game.Dice(1, 6), game.Control(3, "Naboo"), territories...)

		got, err := Play(s, Random{Source: game.NewSource(1)}, 100)

		require.NoError(t, err)
		require.Equal(t, Stalled, got)
	})

	t.Run("surfacing engine failures", func(t *testing.T) {
		s := newSession(game.Dice(1, 6), game.Conquer(0, 3), standardMap(3)...)

		_, err := Play(failingEngine{s}, Random{Source: game.NewSource(1)}, 10)

		require.ErrorContains(t, err, "connection lost")
		require.Empty(t, s.Turns())
	})

	t.Run("stopping at the turn limit", func(t *testing.T) {
		s := newSession(game.Dice(1, 6), game.Conquer(0, 3), standardMap(5)...)

		got, err := Play(s, Random{Source: game.NewSource(1)}, 3)

		require.NoError(t, err)
		require.Equal(t, TurnLimit, got)
		require.Len(t, s.Turns(), 3)
	})

	t.Run("winning with the greedy policy", func(t *testing.T) {
		s := newSession(game.Dice(6, 1), game.Control(3, "Naboo"), standardMap(3)...)

		got, err := Play(s, Greedy{Source: game.NewSource(1)}, 10)

		require.NoError(t, err)
		require.Equal(t, Won, got)
		require.Len(t, s.Turns(), 2, "Naboo should fall after two winning rolls")
	})
}

func TestOutcomeString(t *testing.T) {
	require.Equal(t, "stalled", Stalled.String())
	require.Equal(t, "turn limit", TurnLimit.String())
}
