package rng_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/spiresim/internal/game/rng"
)

const slayTheSpire = rng.Seed(2665621045298406349)

func TestParseSeed(t *testing.T) {
	s, err := rng.ParseSeed("0SLAYTHESPIRE")
	require.NoError(t, err)
	assert.Equal(t, slayTheSpire, s)

	s, err = rng.ParseSeed("0000000000001")
	require.NoError(t, err)
	assert.Equal(t, rng.Seed(1), s)

	s, err = rng.ParseSeed("0slaythespire")
	require.NoError(t, err)
	assert.Equal(t, slayTheSpire, s)
}

func TestParseSeed_Errors(t *testing.T) {
	for _, in := range []string{"", "0", "00SLAYTHESPIRE", "ZSLAYTHESPIRE", "5G24A25UXKXFG", "0SLAYTHESP!RE", "0SLAYTHESPORE"} {
		_, err := rng.ParseSeed(in)
		assert.Truef(t, errors.Is(err, rng.ErrInvalidSeed), "input %q", in)
	}
}

func TestSeed_String(t *testing.T) {
	assert.Equal(t, "0000000000000", rng.Seed(0).String())
	assert.Equal(t, "0000000000001", rng.Seed(1).String())
	assert.Equal(t, "0SLAYTHESPIRE", slayTheSpire.String())
	assert.Equal(t, "5G24A25UXKXFF", rng.Seed(^uint64(0)).String())
}

// TestSeed_RoundTrip verifies ParseSeed inverts String for every seed.
func TestSeed_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rng.Seed(rapid.Uint64().Draw(rt, "seed"))
		got, err := rng.ParseSeed(s.String())
		require.NoError(rt, err)
		assert.Equal(rt, s, got)
	})
}

func TestSeed_WithOffsetWraps(t *testing.T) {
	assert.Equal(t, rng.Seed(0), rng.Seed(^uint64(0)).WithOffset(1))
	assert.Equal(t, rng.Seed(11), rng.Seed(8).ForFloor(3))
}

func TestSts_NextU64(t *testing.T) {
	r := rng.NewSts(slayTheSpire)
	for _, want := range []uint64{
		6241938426952260625,
		16912281428050050838,
		9935128893071954383,
		10223835979718960854,
		10988809226805338205,
	} {
		assert.Equal(t, want, r.NextU64())
	}
	assert.Equal(t, 5, r.Draws())
}

func TestSts_NextU64_AfterMillion(t *testing.T) {
	r := rng.NewSts(slayTheSpire)
	for i := 0; i < 1_000_005; i++ {
		r.NextU64()
	}
	assert.Equal(t, uint64(14363862663833285939), r.NextU64())
	assert.Equal(t, uint64(1656846756039688891), r.NextU64())
}

func TestSts_Bounded(t *testing.T) {
	r := rng.NewSts(slayTheSpire)
	assert.Equal(t, uint64(0), r.Bounded(1<<2))
	assert.Equal(t, uint64(130955), r.Bounded(1<<17))
	assert.Equal(t, uint64(2057504999), r.Bounded(1<<32))
	assert.Equal(t, uint64(50937817256811), r.Bounded(1<<47))
	assert.Equal(t, uint64(882718594975281198), r.Bounded(1<<62))
}

func TestSts_Bool(t *testing.T) {
	r := rng.NewSts(slayTheSpire)
	var got []string
	for i := 0; i < 20; i++ {
		if r.Bool() {
			got = append(got, "T")
		} else {
			got = append(got, "F")
		}
	}
	assert.Equal(t, "T F T F T T F T F F F T F F F T T F F T", strings.Join(got, " "))
}

func TestSts_Float32(t *testing.T) {
	r := rng.NewSts(slayTheSpire)
	assert.Equal(t, "0.338376105", fmt.Sprintf("%.9f", r.Float32()))
	assert.Equal(t, "0.916816592", fmt.Sprintf("%.9f", r.Float32()))
}

// TestSts_BoundedInRange verifies Bounded never leaves [0, bound).
func TestSts_BoundedInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := rng.NewSts(rng.Seed(rapid.Uint64().Draw(rt, "seed")))
		bound := rapid.Uint64Range(1, 1<<40).Draw(rt, "bound")
		for i := 0; i < 16; i++ {
			assert.Less(rt, r.Bounded(bound), bound)
		}
	})
}

func TestSts_SameSeedSameStream(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rng.Seed(rapid.Uint64().Draw(rt, "seed"))
		a, b := rng.NewSts(seed), rng.NewSts(seed)
		for i := 0; i < 8; i++ {
			assert.Equal(rt, a.NextU64(), b.NextU64())
		}
	})
}

func TestSts_ZeroSeed(t *testing.T) {
	a := rng.NewSts(0)
	assert.NotEqual(t, uint64(0), a.NextU64()|a.NextU64())
}

func TestIntRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := rng.NewSts(rng.Seed(rapid.Uint64().Draw(rt, "seed")))
		lo := rapid.IntRange(-50, 50).Draw(rt, "lo")
		hi := lo + rapid.IntRange(0, 50).Draw(rt, "span")
		v := rng.IntRange(r, lo, hi)
		assert.GreaterOrEqual(rt, v, lo)
		assert.LessOrEqual(rt, v, hi)
	})
}

func TestJava_Shuffle(t *testing.T) {
	render := func(xs []int) string {
		parts := make([]string, len(xs))
		for i, x := range xs {
			parts[i] = fmt.Sprint(x)
		}
		return strings.Join(parts, " ")
	}
	arr := make([]int, 15)
	for i := range arr {
		arr[i] = i
	}
	shuffle := func() {
		rng.NewJava(uint64(slayTheSpire)).Shuffle(len(arr), func(i, k int) { arr[i], arr[k] = arr[k], arr[i] })
	}
	shuffle()
	assert.Equal(t, "13 0 8 7 3 11 5 1 14 2 12 6 4 10 9", render(arr))
	shuffle()
	assert.Equal(t, "10 13 14 1 7 6 11 0 9 8 4 5 3 12 2", render(arr))
	shuffle()
	assert.Equal(t, "12 10 9 0 1 5 6 13 2 14 3 11 7 4 8", render(arr))
	for i := 0; i < 21; i++ {
		shuffle()
	}
	assert.Equal(t, "0 1 2 3 4 5 6 7 8 9 10 11 12 13 14", render(arr))
}

// TestJavaShuffle_Permutation verifies the legacy shuffle keeps every element
// and consumes exactly one draw.
func TestJavaShuffle_Permutation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		items := rapid.SliceOf(rapid.Int()).Draw(rt, "items")
		seed := rng.Seed(rapid.Uint64().Draw(rt, "seed"))
		counts := make(map[int]int)
		for _, v := range items {
			counts[v]++
		}
		src := rng.NewSts(seed)
		rng.JavaShuffle(src, items)
		assert.Equal(rt, 1, src.Draws())
		for _, v := range items {
			counts[v]--
		}
		for _, c := range counts {
			assert.Zero(rt, c)
		}
	})
}

type fixedFloat struct {
	rng.Source
	f float32
}

func (f fixedFloat) Float32() float32 { return f.f }

func TestChoose(t *testing.T) {
	choices := []rng.Weighted[string]{{"a", 0.25}, {"b", 0.5}, {"c", 0.25}}
	assert.Equal(t, "a", rng.Choose[string](fixedFloat{f: 0.1}, choices))
	assert.Equal(t, "a", rng.Choose[string](fixedFloat{f: 0.25}, choices))
	assert.Equal(t, "b", rng.Choose[string](fixedFloat{f: 0.5}, choices))
	assert.Equal(t, "c", rng.Choose[string](fixedFloat{f: 0.9}, choices))
	assert.Equal(t, "c", rng.Choose[string](fixedFloat{f: 0.9999}, []rng.Weighted[string]{{"a", 0.5}, {"c", 0.4999}}))
}

func TestLogged_LogsEachDraw(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := rng.NewLogged("ai", rng.NewSts(slayTheSpire), zap.New(core))
	l.Bounded(100)
	l.Bool()
	l.Float32()
	l.NextU64()
	require.Equal(t, 4, logs.Len())
	for _, e := range logs.All() {
		assert.Equal(t, "rng draw", e.Message)
		assert.Equal(t, "ai", e.ContextMap()["stream"])
	}
}

func TestLogged_MatchesUnderlying(t *testing.T) {
	a := rng.NewLogged("x", rng.NewSts(slayTheSpire), nil)
	b := rng.NewSts(slayTheSpire)
	for i := 0; i < 10; i++ {
		assert.Equal(t, b.Bounded(100), a.Bounded(100))
	}
}

func TestNewStreams_IndependentButEqual(t *testing.T) {
	s := rng.NewStreams(3, 1, nil)
	assert.Equal(t, s.AI.NextU64(), s.Misc.NextU64())
	s.Shuffle.NextU64()
	s.Shuffle.NextU64()
	first := rng.NewSts(rng.Seed(4))
	assert.Equal(t, first.NextU64(), s.CardRandomizer.NextU64())
	assert.Equal(t, first.NextU64(), s.AI.NextU64())
}
