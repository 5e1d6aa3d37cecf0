package rng

// Source is a deterministic stream of random values.
//
// Implementations must be reproducible: two Sources constructed from the
// same seed yield the same sequence for the same sequence of calls.
type Source interface {
	// NextU64 returns the next raw 64-bit value.
	NextU64() uint64
	// Bounded returns a value in [0, bound).
	//
	// Precondition: bound > 0.
	Bounded(bound uint64) uint64
	// Bool returns true or false with equal probability.
	Bool() bool
	// Float32 returns a value in [0, 1).
	Float32() float32
}

// Sts is the game's xorshift128+ generator with murmur3 seeding.
//
// Invariant: the state pair is never (0, 0).
type Sts struct {
	seed   uint64
	state0 uint64
	state1 uint64
	draws  int
}

// NewSts returns a generator seeded with seed.
//
// Postcondition: Returns a generator whose first NextU64 depends only on seed.
func NewSts(seed Seed) *Sts {
	s := uint64(seed)
	if s == 0 {
		s = 1 << 63
	}
	state0 := murmur3(s)
	return &Sts{
		seed:   uint64(seed),
		state0: state0,
		state1: murmur3(state0),
	}
}

func murmur3(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	return x ^ (x >> 33)
}

// NextU64 advances the generator one step.
func (r *Sts) NextU64() uint64 {
	s1 := r.state0
	s0 := r.state1
	r.state0 = s0
	s1 ^= s1 << 23
	r.state1 = s1 ^ s0 ^ (s1 >> 17) ^ (s0 >> 26)
	r.draws++
	return r.state1 + s0
}

// Bounded returns a value in [0, bound) using rejection sampling.
//
// Precondition: bound > 0. Panics otherwise.
func (r *Sts) Bounded(bound uint64) uint64 {
	if bound == 0 {
		panic("rng: Bounded called with bound == 0")
	}
	for {
		bits := r.NextU64() >> 1
		v := bits % bound
		if (bits-v+bound-1)&(1<<63) == 0 {
			return v
		}
	}
}

// Bool returns the low bit of the next value.
func (r *Sts) Bool() bool {
	return r.NextU64()&1 == 1
}

// Float32 scales the top 24 bits of the next value into [0, 1).
func (r *Sts) Float32() float32 {
	return float32(r.NextU64()>>40) * float32(5.9604645e-8)
}

// Draws reports how many raw values have been consumed.
func (r *Sts) Draws() int { return r.draws }

// Seed reports the seed the generator was built from.
func (r *Sts) Seed() Seed { return Seed(r.seed) }
