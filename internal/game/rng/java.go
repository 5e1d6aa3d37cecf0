package rng

const (
	javaMultiplier = 0x5DEECE66D
	javaAddend     = 0xB
	javaMask       = (1 << 48) - 1
)

// Java is the 48-bit linear congruential generator of java.util.Random.
// The game forks one into existence for every legacy shuffle.
type Java struct {
	state uint64
}

// NewJava seeds a Java generator the way java.util.Random does.
func NewJava(seed uint64) *Java {
	return &Java{state: (seed ^ javaMultiplier) & javaMask}
}

func (j *Java) next(bits uint) int32 {
	j.state = (j.state*javaMultiplier + javaAddend) & javaMask
	return int32(j.state >> (48 - bits))
}

// NextInt returns a value in [0, bound).
//
// Precondition: bound > 0.
func (j *Java) NextInt(bound int32) int32 {
	r := j.next(31)
	m := bound - 1
	if bound&m == 0 {
		return int32((int64(bound) * int64(r)) >> 31)
	}
	for r+m < 0 {
		r = j.next(31)
	}
	return r % bound
}

// Shuffle permutes n elements in place with Fisher-Yates, walking from the
// back as java.util.Collections.shuffle does.
func (j *Java) Shuffle(n int, swap func(i, k int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, int(j.NextInt(int32(i+1))))
	}
}
