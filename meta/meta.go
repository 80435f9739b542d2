// meta/meta.go
package meta

// GO_ROUTINES defines the number of goroutines running simulated games.
const GO_ROUTINES = 8

// GAMES defines the number of games in a batch simulation.
const GAMES = 100

// MAX_TURNS caps the attacks played in a single session.
const MAX_TURNS = 1000

// ENV_PREFIX prefixes every environment variable read by the config package.
const ENV_PREFIX = "WAR_"
