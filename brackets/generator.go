package brackets

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// Shuffler is the single source of randomness for fixture ordering, bracket
// pairing and group distribution. *math/rand.Rand satisfies it, which lets
// tests pin the outcome with a seed.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultShuffler draws from the process-wide random source.
var DefaultShuffler Shuffler = globalShuffler{}

func orDefault(rng Shuffler) Shuffler {
	if rng == nil {
		return DefaultShuffler
	}
	return rng
}

func newID() string {
	return uuid.NewString()
}
