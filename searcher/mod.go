package searcher

// Rewards for a finished playout
const WIN = 1.0
const LOSS = 1 - WIN

const (
	DefaultEpisodes = 32 // Playouts per candidate attack
	MaxCutoff       = 50 // Attacks per playout, the candidate included
)
