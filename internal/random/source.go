// Package random provides the seeded field generators used to synthesize
// invoice content.
//
// All generators draw from a single Source. A Source is not safe for
// concurrent use; the generator loop owns exactly one per run, which makes
// the produced documents reproducible for a given seed.
package random

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Common alphabets used by the invoice builder.
const (
	Uppercase      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase      = "abcdefghijklmnopqrstuvwxyz"
	Digits         = "0123456789"
	UpperAlnum     = Uppercase + Digits
	LowerText      = Lowercase + " "
	LowerAlnumText = Lowercase + Digits + " "
)

// Source is a seeded pseudo-random generator.
type Source struct {
	rng  *rand.Rand
	seed uint64
}

// New returns a Source seeded with seed.
func New(seed uint64) *Source {
	return &Source{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// NewSeed returns a time based seed for runs that don't request one.
func NewSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// Seed returns the seed the Source was created with.
func (s *Source) Seed() uint64 {
	return s.seed
}

// Read fills p with pseudo-random bytes. It never fails.
func (s *Source) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(buf[:], s.rng.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}

// Integer returns a uniform integer in [min, max].
func (s *Source) Integer(min, max int) (int, error) {
	if min > max {
		return 0, newRangeError("Integer", min, max, "")
	}
	return min + int(s.uint64n(uint64(max)-uint64(min))), nil
}

// uint64n returns a uniform value in [0, span]. The span is computed in
// unsigned arithmetic so the full int range does not overflow.
func (s *Source) uint64n(span uint64) uint64 {
	if span == math.MaxUint64 {
		return s.rng.Uint64()
	}
	return s.rng.Uint64N(span + 1)
}

// String returns a string whose length is uniform in [minLen, maxLen] and
// whose characters are sampled independently from alphabet.
func (s *Source) String(alphabet string, minLen, maxLen int) (string, error) {
	if minLen < 0 || minLen > maxLen {
		return "", newRangeError("String", minLen, maxLen, "")
	}
	chars := []rune(alphabet)
	if len(chars) == 0 && maxLen > 0 {
		return "", newRangeError("String", minLen, maxLen, "empty alphabet")
	}

	n, err := s.Integer(minLen, maxLen)
	if err != nil {
		return "", err
	}
	buf := make([]byte, 0, n*utf8.UTFMax)
	for i := 0; i < n; i++ {
		buf = utf8.AppendRune(buf, chars[s.rng.IntN(len(chars))])
	}
	return string(buf), nil
}

// Decimal returns a uniform value in [min, max] rounded half-to-even to
// digits decimal places.
func (s *Source) Decimal(min, max float64, digits int32) (decimal.Decimal, error) {
	if min > max {
		return decimal.Zero, newRangeError("Decimal", min, max, "")
	}
	if digits < 0 {
		return decimal.Zero, newRangeError("Decimal", min, max, "negative digits")
	}
	v := min + s.rng.Float64()*(max-min)
	return decimal.NewFromFloat(v).RoundBank(digits), nil
}

// Timestamp returns date at a uniformly random second of that day.
func (s *Source) Timestamp(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, s.rng.IntN(24), s.rng.IntN(60), s.rng.IntN(60), 0, date.Location())
}

// UUID returns a version 4 UUID built from the source's bytes.
func (s *Source) UUID() (uuid.UUID, error) {
	return uuid.NewRandomFromReader(s)
}
