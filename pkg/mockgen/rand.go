package mockgen

import (
	mathrand "math/rand/v2"

	"github.com/google/uuid"
)

// rngIntN returns a random int in [0, n) using rng if non-nil, otherwise the
// global math/rand/v2 source.
func rngIntN(rng *mathrand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	if rng != nil {
		return rng.IntN(n)
	}
	return mathrand.IntN(n)
}

// rngFloat64 returns a random float64 in [0, 1).
func rngFloat64(rng *mathrand.Rand) float64 {
	if rng != nil {
		return rng.Float64()
	}
	return mathrand.Float64()
}

// rngUUID returns a version 4 UUID. A seeded rng makes the value reproducible;
// without one google/uuid reads from crypto/rand.
func rngUUID(rng *mathrand.Rand) string {
	if rng == nil {
		return uuid.NewString()
	}
	id, err := uuid.NewRandomFromReader(rngReader{rng: rng})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// rngReader adapts a PRNG to io.Reader for uuid.NewRandomFromReader.
type rngReader struct {
	rng *mathrand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.UintN(256))
	}
	return len(p), nil
}

// pick returns a uniformly chosen element of values.
func pick[T any](rng *mathrand.Rand, values []T) T {
	return values[rngIntN(rng, len(values))]
}

// randomInt returns a uniformly random int in [lo, hi].
func randomInt(rng *mathrand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rngIntN(rng, hi-lo+1)
}
