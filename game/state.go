package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"war/utils"
)

// Territory is a named unit of the map with an owning faction and a troop count.
type Territory struct {
	Name    string `json:"name"`
	Faction string `json:"faction"`
	Troops  int    `json:"troops"`
}

// Registry is the ordered, fixed-size collection of territories that makes up
// the game state. Troops and factions change only through Attack.
type Registry struct {
	territories []Territory
}

// NewRegistry creates n territories. Territory i takes names[i] and
// factions[i] when those indices exist; troops are drawn uniformly from the
// rules' initial range.
func NewRegistry(n int, factions, names []string, src Source, rules Rules) *Registry {
	lo, hi := rules.InitialTroops()
	r := &Registry{territories: make([]Territory, n)}
	for i := range r.territories {
		t := &r.territories[i]
		if i < len(names) {
			t.Name = names[i]
		}
		if i < len(factions) {
			t.Faction = factions[i]
		}
		t.Troops = lo + src.Intn(hi-lo+1)
	}
	return r
}

// RegistryOf builds a registry from explicit territories, e.g. a restored or
// hand-made position.
func RegistryOf(territories ...Territory) *Registry {
	r := &Registry{territories: make([]Territory, len(territories))}
	copy(r.territories, territories)
	return r
}

func (r *Registry) Len() int {
	return len(r.territories)
}

// At returns a copy of territory i. It panics if i is out of range.
func (r *Registry) At(i int) Territory {
	return *r.territory(i)
}

func (r *Registry) territory(i int) *Territory {
	if i < 0 || i >= len(r.territories) {
		panic(fmt.Sprintf("territory index %d out of range [0, %d)", i, len(r.territories)))
	}
	return &r.territories[i]
}

// Territories returns a copy of all territories in registry order.
func (r *Registry) Territories() []Territory {
	out := make([]Territory, len(r.territories))
	copy(out, r.territories)
	return out
}

// Index returns the index of the territory with the given name, or -1.
func (r *Registry) Index(name string) int {
	names := make([]string, len(r.territories))
	for i, t := range r.territories {
		names[i] = t.Name
	}
	return utils.FindIndex(names, name)
}

// Count returns how many territories the faction owns.
func (r *Registry) Count(faction string) int {
	return utils.Count(r.territories, func(t Territory) bool {
		return t.Faction == faction
	})
}

// Owns reports whether the faction holds the named territory.
func (r *Registry) Owns(faction, name string) bool {
	for _, t := range r.territories {
		if t.Name == name && t.Faction == faction {
			return true
		}
	}
	return false
}

// Factions lists the factions still on the map, in order of first appearance.
func (r *Registry) Factions() []string {
	var factions []string
	for _, t := range r.territories {
		if utils.FindIndex(factions, t.Faction) < 0 {
			factions = append(factions, t.Faction)
		}
	}
	return factions
}

// CanAttack reports whether any territory holds more than garrison troops,
// the floor below which Attack refuses to move.
func (r *Registry) CanAttack(garrison int) bool {
	for _, t := range r.territories {
		if t.Troops > garrison {
			return true
		}
	}
	return false
}

func (r *Registry) Copy() *Registry {
	return RegistryOf(r.territories...)
}

func (r *Registry) Hash() StateHash {
	hasher := fnv.New64a()

	for _, t := range r.territories {
		hasher.Write([]byte(t.Name))
		hasher.Write([]byte{0})
		hasher.Write([]byte(t.Faction))
		hasher.Write([]byte{0})
		binary.Write(hasher, binary.LittleEndian, int64(t.Troops))
	}

	return StateHash(hasher.Sum64())
}

// Conquered returns a copy of the registry with territory i handed to
// faction. The receiver is left untouched; use it to score hypothetical
// captures.
func (r *Registry) Conquered(i int, faction string) *Registry {
	c := r.Copy()
	c.territory(i).Faction = faction
	return c
}
