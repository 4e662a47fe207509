package engine

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
)

// RandomSource abstracts the uniform randomness every sampling and
// probability-draw path consumes. Threading it through the session makes a
// whole playthrough reproducible from its seed.
type RandomSource interface {
	Float64() float64 // [0, 1)
}

// cryptoRNG is the default source for live play.
type cryptoRNG struct{}

func (cryptoRNG) Float64() float64 {
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err != nil {
		// fall back to math/rand/v2
		return rand.Float64()
	}
	// top 53 bits => [0, 1)
	u := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(u) / (1 << 53)
}

// DefaultRNG returns the crypto-backed source.
func DefaultRNG() RandomSource { return cryptoRNG{} }

// seededRNG is a replicable source for tests and per-session determinism.
type seededRNG struct{ r *rand.Rand }

// NewSeededRNG returns a PCG source with a fixed seed.
func NewSeededRNG(seed uint64) RandomSource {
	return &seededRNG{r: rand.New(rand.NewPCG(seed, 0))}
}

func (s *seededRNG) Float64() float64 { return s.r.Float64() }

// SeedFromID hashes a session identifier into an RNG seed, so a session
// replayed with the same id and inputs reproduces its draws.
func SeedFromID(id string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return h.Sum64()
}
