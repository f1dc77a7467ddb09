package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Every AI,
// deck and simulated game derives its generator here so a single seed
// reproduces a whole run.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seeded is like New but treats a zero seed as "pick one from the clock".
// It returns the seed actually used so callers can log it for replay.
func Seeded(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return New(seed), seed
}

// Derive returns a child seed for stream i of a parent seed, so parallel
// workers get independent but reproducible generators.
func Derive(parent int64, i int) int64 {
	return int64(mix(uint64(parent) + uint64(i+1)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
