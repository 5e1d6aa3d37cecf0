// Package rng provides the deterministic random streams that drive combat.
//
// Every stream is seeded from a run Seed so that identical seeds reproduce
// identical enemy parties, AI decisions, shuffles, and random targeting.
package rng

import (
	"errors"
	"fmt"
	"strings"
)

// SeedLength is the number of characters in the textual form of a Seed.
const SeedLength = 13

// seedAlphabet is base 35: the letter O is omitted to avoid confusion with 0.
const seedAlphabet = "0123456789ABCDEFGHIJKLMNPQRSTUVWXYZ"

// ErrInvalidSeed is returned when a seed string cannot be parsed.
var ErrInvalidSeed = errors.New("invalid seed")

// Seed is the 64-bit value from which every random stream of a run derives.
type Seed uint64

// WithOffset returns the seed shifted by n, wrapping on overflow.
//
// Postcondition: Returns s+n modulo 2^64.
func (s Seed) WithOffset(n uint64) Seed {
	return Seed(uint64(s) + n)
}

// ForFloor returns the seed used for combat on the given floor.
func (s Seed) ForFloor(floor int) Seed {
	return s.WithOffset(uint64(floor))
}

// String renders the seed as a 13 character base-35 string.
//
// Postcondition: ParseSeed(s.String()) == s.
func (s Seed) String() string {
	var buf [SeedLength]byte
	for i := range buf {
		buf[i] = '0'
	}
	v := uint64(s)
	for i := SeedLength - 1; v > 0 && i >= 0; i-- {
		buf[i] = seedAlphabet[v%35]
		v /= 35
	}
	return string(buf[:])
}

// ParseSeed parses a 13 character base-35 seed string. Lowercase letters are
// accepted.
//
// Precondition: str must be exactly SeedLength characters.
// Postcondition: Returns the parsed Seed, or an error wrapping ErrInvalidSeed
// on bad length, bad digit, or overflow.
func ParseSeed(str string) (Seed, error) {
	if len(str) != SeedLength {
		return 0, fmt.Errorf("%w: %q must be exactly %d characters", ErrInvalidSeed, str, SeedLength)
	}
	var v uint64
	for _, c := range strings.ToUpper(str) {
		d := strings.IndexRune(seedAlphabet, c)
		if d < 0 {
			return 0, fmt.Errorf("%w: %q is not base 35 (0-9, A-N, P-Z)", ErrInvalidSeed, str)
		}
		if v > (^uint64(0))/35 {
			return 0, fmt.Errorf("%w: %q is too large", ErrInvalidSeed, str)
		}
		v *= 35
		if v > ^uint64(0)-uint64(d) {
			return 0, fmt.Errorf("%w: %q is too large", ErrInvalidSeed, str)
		}
		v += uint64(d)
	}
	return Seed(v), nil
}
