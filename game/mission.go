package game

import "fmt"

// MissionKind tags the victory condition a Mission checks.
type MissionKind int

const (
	ConquerTerritories MissionKind = iota // own at least Count territories
	EliminateFaction                      // no territory left with faction Target
	ControlTerritory                      // own the territory named Target
)

func (k MissionKind) String() string {
	switch k {
	case ConquerTerritories:
		return "conquer"
	case EliminateFaction:
		return "eliminate"
	case ControlTerritory:
		return "control"
	default:
		return "unknown"
	}
}

// Mission is a victory condition bound to one player for a whole session.
type Mission struct {
	ID          int         `json:"id"`
	Kind        MissionKind `json:"kind"`
	Target      string      `json:"target,omitempty"`
	Count       int         `json:"count,omitempty"`
	Description string      `json:"description"`
	Completed   bool        `json:"completed"`
}

// Evaluate reports whether the mission's condition holds for faction on the
// given registry. It never mutates either.
func (m Mission) Evaluate(r *Registry, faction string) bool {
	switch m.Kind {
	case ConquerTerritories:
		return r.Count(faction) >= m.Count
	case EliminateFaction:
		return r.Count(m.Target) == 0
	case ControlTerritory:
		return r.Owns(faction, m.Target)
	default:
		panic(fmt.Sprintf("unknown mission kind %d", m.Kind))
	}
}

// Status is the display label of the mission's completion state.
func (m Mission) Status() string {
	if m.Completed {
		return "completed"
	}
	return "in progress"
}

// Conquer returns a mission won by owning count territories.
func Conquer(id, count int) Mission {
	return Mission{
		ID:          id,
		Kind:        ConquerTerritories,
		Count:       count,
		Description: fmt.Sprintf("Conquer %d territories", count),
	}
}

// Eliminate returns a mission won once faction holds no territory.
func Eliminate(id int, faction string) Mission {
	return Mission{
		ID:          id,
		Kind:        EliminateFaction,
		Target:      faction,
		Description: fmt.Sprintf("Eliminate every %s territory", faction),
	}
}

// Control returns a mission won by owning the named territory.
func Control(id int, territory string) Mission {
	return Mission{
		ID:          id,
		Kind:        ControlTerritory,
		Target:      territory,
		Description: fmt.Sprintf("Conquer the territory %s", territory),
	}
}

// DefaultCatalog is the standard set of five equally likely missions.
func DefaultCatalog() []Mission {
	return []Mission{
		Conquer(0, 3),
		Eliminate(1, "Red"),
		Eliminate(2, "Blue"),
		Control(3, "Naboo"),
		Eliminate(4, "Yellow"),
	}
}

// GenerateMission picks one catalog entry uniformly at random.
func GenerateMission(catalog []Mission, src Source) Mission {
	if len(catalog) == 0 {
		panic("empty mission catalog")
	}
	m := catalog[src.Intn(len(catalog))]
	m.Completed = false
	return m
}

// CheckMission evaluates m for faction and marks it completed the first time
// it holds. Completion is sticky: once set, CheckMission keeps returning true.
func CheckMission(m *Mission, r *Registry, faction string) bool {
	if m.Completed {
		return true
	}
	if m.Evaluate(r, faction) {
		m.Completed = true
	}
	return m.Completed
}

// MissionProgress scores how far faction is from completing m, in [0, 1].
func MissionProgress(r *Registry, m Mission, faction string) float64 {
	if m.Completed || m.Evaluate(r, faction) {
		return 1
	}
	switch m.Kind {
	case ConquerTerritories:
		if m.Count <= 0 {
			return 1
		}
		return float64(r.Count(faction)) / float64(m.Count)
	case EliminateFaction:
		if r.Len() == 0 {
			return 1
		}
		return 1 - float64(r.Count(m.Target))/float64(r.Len())
	default:
		return 0
	}
}
