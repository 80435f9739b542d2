package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMissionEvaluate(t *testing.T) {
	t.Run("conquer three with three of five territories", func(t *testing.T) {
		reg := RegistryOf(
			Territory{Name: "Alderaan", Faction: "Verde", Troops: 2},
			Territory{Name: "Tatooine", Faction: "Verde", Troops: 2},
			Territory{Name: "Hoth", Faction: "Verde", Troops: 2},
			Territory{Name: "Naboo", Faction: "Amarelo", Troops: 2},
			Territory{Name: "Endor", Faction: "Roxo", Troops: 2},
		)
		m := Conquer(0, 3)

		require.True(t, CheckMission(&m, reg, "Verde"))
		require.True(t, m.Completed)
	})

	t.Run("conquer three with two territories", func(t *testing.T) {
		reg := fiveTerritories()
		reg.territory(0).Faction = "Green"
		m := Conquer(0, 3)

		require.False(t, CheckMission(&m, reg, "Green"))
		require.False(t, m.Completed)
	})

	t.Run("eliminate a faction", func(t *testing.T) {
		reg := fiveTerritories()
		m := Eliminate(1, "Red")

		require.False(t, m.Evaluate(reg, "Green"))

		reg.territory(0).Faction = "Blue"
		require.True(t, m.Evaluate(reg, "Green"), "No Red territory should remain")
	})

	t.Run("eliminate ignores the player's own faction", func(t *testing.T) {
		reg := fiveTerritories()
		reg.territory(3).Faction = "Red"
		m := Eliminate(4, "Yellow")

		require.True(t, m.Evaluate(reg, "Purple"))
	})

	t.Run("control a named territory", func(t *testing.T) {
		reg := fiveTerritories()
		m := Control(3, "Naboo")

		require.False(t, m.Evaluate(reg, "Green"))

		reg.territory(3).Faction = "Green"
		require.True(t, m.Evaluate(reg, "Green"))
		require.False(t, m.Evaluate(reg, "Yellow"))
	})

	t.Run("control a territory missing from the map", func(t *testing.T) {
		reg := fiveTerritories()
		m := Control(3, "Coruscant")

		require.False(t, m.Evaluate(reg, "Red"))
	})

	t.Run("evaluating does not mutate", func(t *testing.T) {
		reg := fiveTerritories()
		before := reg.Territories()
		for _, m := range DefaultCatalog() {
			m.Evaluate(reg, "Green")
			require.False(t, m.Completed)
		}
		require.Equal(t, before, reg.Territories())
	})

	t.Run("panics on an unknown kind", func(t *testing.T) {
		require.Panics(t, func() {
			Mission{Kind: MissionKind(9)}.Evaluate(fiveTerritories(), "Green")
		})
	})
}

func TestCheckMissionMonotonic(t *testing.T) {
	reg := fiveTerritories()
	reg.territory(3).Faction = "Green"
	m := Control(3, "Naboo")

	require.True(t, CheckMission(&m, reg, "Green"))

	// Losing the territory again does not undo the victory.
	reg.territory(3).Faction = "Yellow"
	require.False(t, m.Evaluate(reg, "Green"))
	require.True(t, CheckMission(&m, reg, "Green"))
	require.True(t, m.Completed)
	require.Equal(t, "completed", m.Status())
}

func TestGenerateMission(t *testing.T) {
	t.Run("selects by the drawn index", func(t *testing.T) {
		catalog := DefaultCatalog()
		src := &FixedSource{Draws: []int{0, 1, 2, 3, 4}}

		for i := range catalog {
			got := GenerateMission(catalog, src)
			require.Equal(t, catalog[i], got)
			require.Equal(t, "in progress", got.Status())
		}
	})

	t.Run("every variant is reachable", func(t *testing.T) {
		src := NewSource(1)
		seen := map[int]int{}
		for i := 0; i < 1000; i++ {
			seen[GenerateMission(DefaultCatalog(), src).ID]++
		}
		require.Len(t, seen, 5)
		for id, n := range seen {
			require.InDelta(t, 200, n, 60, "mission %d should be drawn about a fifth of the time", id)
		}
	})

	t.Run("resets completion", func(t *testing.T) {
		catalog := []Mission{Conquer(0, 3)}
		catalog[0].Completed = true

		got := GenerateMission(catalog, &FixedSource{Draws: []int{0}})

		require.False(t, got.Completed)
	})

	t.Run("panics on an empty catalog", func(t *testing.T) {
		require.Panics(t, func() {
			GenerateMission(nil, NewSource(1))
		})
	})
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	require.Len(t, catalog, 5)
	for i, m := range catalog {
		require.Equal(t, i, m.ID)
		require.NotEmpty(t, m.Description)
	}
	require.Equal(t, ConquerTerritories, catalog[0].Kind)
	require.Equal(t, 3, catalog[0].Count)
	require.Equal(t, "Red", catalog[1].Target)
	require.Equal(t, "Blue", catalog[2].Target)
	require.Equal(t, ControlTerritory, catalog[3].Kind)
	require.Equal(t, "Naboo", catalog[3].Target)
	require.Equal(t, "Yellow", catalog[4].Target)
}

func TestMissionProgress(t *testing.T) {
	reg := fiveTerritories()

	require.InDelta(t, 1.0/3, MissionProgress(reg, Conquer(0, 3), "Green"), 1e-9)
	require.InDelta(t, 0.8, MissionProgress(reg, Eliminate(1, "Red"), "Green"), 1e-9)
	require.Equal(t, 0.0, MissionProgress(reg, Control(3, "Naboo"), "Green"))

	reg.territory(3).Faction = "Green"
	require.Equal(t, 1.0, MissionProgress(reg, Control(3, "Naboo"), "Green"))

	done := Conquer(0, 5)
	done.Completed = true
	require.Equal(t, 1.0, MissionProgress(reg, done, "Green"))
}
