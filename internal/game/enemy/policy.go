package enemy

import "github.com/cory-johannsen/spiresim/internal/game/rng"

// Policy chooses the next move of an archetype from the move it is about to
// make (last) and how many consecutive turns that move has been chosen
// (runLength). last is MoveNone and runLength zero when choosing the first
// move at spawn.
//
// Every policy draws exactly one bounded value in [0, 100) per call before
// anything else, whether or not it uses it, so that the AI stream stays
// aligned with the game's. Re-rolls inside a bucket draw further values.
type Policy func(src rng.Source, last Move, runLength int) Move

func roll(src rng.Source) uint64 { return src.Bounded(100) }

// repeats reports whether choosing m again would make it appear more than
// limit times in a row.
func repeats(last, m Move, runLength, limit int) bool {
	return last == m && runLength >= limit
}

func acidSlimeMPolicy(src rng.Source, last Move, runLength int) Move {
	n := roll(src)
	switch {
	case n < 30:
		if !repeats(last, AcidSlimeMCorrosiveSpit, runLength, 2) {
			return AcidSlimeMCorrosiveSpit
		}
		if src.Bool() {
			return AcidSlimeMTackle
		}
		return AcidSlimeMLick
	case n < 70:
		if last != AcidSlimeMTackle {
			return AcidSlimeMTackle
		}
		return rng.Choose(src, []rng.Weighted[Move]{
			{Value: AcidSlimeMCorrosiveSpit, Weight: 0.5},
			{Value: AcidSlimeMLick, Weight: 0.5},
		})
	default:
		if !repeats(last, AcidSlimeMLick, runLength, 2) {
			return AcidSlimeMLick
		}
		return rng.Choose(src, []rng.Weighted[Move]{
			{Value: AcidSlimeMCorrosiveSpit, Weight: 0.4},
			{Value: AcidSlimeMTackle, Weight: 0.6},
		})
	}
}

func acidSlimeSPolicy(src rng.Source, last Move, _ int) Move {
	roll(src)
	switch last {
	case MoveNone:
		if src.Bool() {
			return AcidSlimeSTackle
		}
		return AcidSlimeSLick
	case AcidSlimeSLick:
		return AcidSlimeSTackle
	default:
		return AcidSlimeSLick
	}
}

func cultistPolicy(src rng.Source, last Move, _ int) Move {
	roll(src)
	if last == MoveNone {
		return CultistIncantation
	}
	return CultistDarkStrike
}

func fungiBeastPolicy(src rng.Source, last Move, runLength int) Move {
	if roll(src) < 60 {
		if !repeats(last, FungiBeastBite, runLength, 2) {
			return FungiBeastBite
		}
		return FungiBeastGrow
	}
	if last != FungiBeastGrow {
		return FungiBeastGrow
	}
	return FungiBeastBite
}

// lousePolicy builds the shared louse pattern: 25% the utility move, 75%
// bite, neither three times in a row.
func lousePolicy(bite, utility Move) Policy {
	return func(src rng.Source, last Move, runLength int) Move {
		if roll(src) < 25 {
			if !repeats(last, utility, runLength, 2) {
				return utility
			}
			return bite
		}
		if !repeats(last, bite, runLength, 2) {
			return bite
		}
		return utility
	}
}

func gremlinNobPolicy(src rng.Source, last Move, runLength int) Move {
	n := roll(src)
	switch {
	case last == MoveNone:
		return GremlinNobBellow
	case n < 33:
		return GremlinNobSkullBash
	case repeats(last, GremlinNobRush, runLength, 2):
		return GremlinNobSkullBash
	default:
		return GremlinNobRush
	}
}

func jawWormPolicy(src rng.Source, last Move, runLength int) Move {
	n := roll(src)
	switch {
	case last == MoveNone:
		return JawWormChomp
	case n < 25:
		if last != JawWormChomp {
			return JawWormChomp
		}
		return rng.Choose(src, []rng.Weighted[Move]{
			{Value: JawWormBellow, Weight: 0.5625},
			{Value: JawWormThrash, Weight: 1 - 0.5625},
		})
	case n < 55:
		if !repeats(last, JawWormThrash, runLength, 2) {
			return JawWormThrash
		}
		return rng.Choose(src, []rng.Weighted[Move]{
			{Value: JawWormChomp, Weight: 0.357},
			{Value: JawWormBellow, Weight: 1 - 0.357},
		})
	default:
		if !repeats(last, JawWormBellow, runLength, 2) {
			return JawWormBellow
		}
		return rng.Choose(src, []rng.Weighted[Move]{
			{Value: JawWormChomp, Weight: 0.416},
			{Value: JawWormThrash, Weight: 1 - 0.416},
		})
	}
}

func spikeSlimeMPolicy(src rng.Source, last Move, runLength int) Move {
	if roll(src) < 30 {
		if !repeats(last, SpikeSlimeMFlameTackle, runLength, 2) {
			return SpikeSlimeMFlameTackle
		}
		return SpikeSlimeMLick
	}
	if !repeats(last, SpikeSlimeMLick, runLength, 2) {
		return SpikeSlimeMLick
	}
	return SpikeSlimeMFlameTackle
}

func spikeSlimeSPolicy(src rng.Source, _ Move, _ int) Move {
	roll(src)
	return SpikeSlimeSTackle
}
