// Package game holds the rules of a territory-conquest match: the territory
// registry, dice combat, missions and deadlock detection.
package game

// StateHash identifies a registry configuration (names, factions, troops).
type StateHash uint64

// Evaluate scores how close a faction is to completing its mission, in [0, 1].
type Evaluate func(r *Registry, m Mission, faction string) float64
