package game

// DefaultTerritories and DefaultFactions describe the standard five-territory
// map. Territory i starts owned by faction i.
var DefaultTerritories = []string{"Alderaan", "Tatooine", "Hoth", "Naboo", "Endor"}

var DefaultFactions = []string{"Red", "Blue", "Green", "Yellow", "Purple"}

// DefaultPlayerFaction is the faction the player controls on the standard map.
const DefaultPlayerFaction = "Green"

// CreateRegistry initializes the standard map with randomized troops.
func CreateRegistry(src Source, rules Rules) *Registry {
	return NewRegistry(len(DefaultTerritories), DefaultFactions, DefaultTerritories, src, rules)
}
