package game

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Source is the randomness capability every draw goes through: initial
// troops, mission selection and dice.
type Source interface {
	// Intn returns a uniform int in [0, n). n must be positive.
	Intn(n int) int
}

// NewSource returns a pseudo-random Source seeded once with seed.
// It is not safe for concurrent use; give each session its own.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}

// FixedSource replays a fixed sequence of raw draws, cycling when exhausted.
// Each draw is reduced modulo n.
type FixedSource struct {
	Draws []int
	next  int
}

// Dice returns a FixedSource whose draws produce the given die faces when
// rolled with rollDie.
func Dice(faces ...int) *FixedSource {
	draws := make([]int, len(faces))
	for i, f := range faces {
		draws[i] = f - 1
	}
	return &FixedSource{Draws: draws}
}

func (f *FixedSource) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("invalid argument to Intn: %d", n))
	}
	if len(f.Draws) == 0 {
		panic("fixed source has no draws")
	}
	v := f.Draws[f.next%len(f.Draws)]
	f.next++
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Drawn reports how many values have been consumed.
func (f *FixedSource) Drawn() int {
	return f.next
}

func rollDie(src Source, sides int) int {
	return src.Intn(sides) + 1
}
