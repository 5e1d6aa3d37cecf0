package rng

// Weighted pairs a value with its selection weight.
type Weighted[T any] struct {
	Value  T
	Weight float32
}

// IntRange returns a value in [lo, hi].
//
// Precondition: lo <= hi.
func IntRange(src Source, lo, hi int) int {
	if hi < lo {
		panic("rng: IntRange called with hi < lo")
	}
	return lo + int(src.Bounded(uint64(hi-lo)+1))
}

// Choose picks a value by subtracting weights from a single float draw. When
// rounding leaves a remainder the last value is returned.
//
// Precondition: choices must be non-empty.
// Postcondition: Exactly one value is drawn from src.
func Choose[T any](src Source, choices []Weighted[T]) T {
	if len(choices) == 0 {
		panic("rng: Choose called with no choices")
	}
	choice := src.Float32()
	for _, c := range choices {
		choice -= c.Weight
		if choice <= 0 {
			return c.Value
		}
	}
	return choices[len(choices)-1].Value
}

// Pick returns a uniformly chosen element.
//
// Precondition: items must be non-empty.
func Pick[T any](src Source, items []T) T {
	return items[src.Bounded(uint64(len(items)))]
}

// JavaShuffle shuffles items with a java.util.Random forked from one draw of
// src, matching the game's legacy shuffle.
//
// Postcondition: Exactly one value is drawn from src.
func JavaShuffle[T any](src Source, items []T) {
	NewJava(src.NextU64()).Shuffle(len(items), func(i, k int) {
		items[i], items[k] = items[k], items[i]
	})
}
