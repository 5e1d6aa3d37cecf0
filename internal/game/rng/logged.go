package rng

import "go.uber.org/zap"

// Logged wraps a Source and logs every draw at debug level, tagged with the
// stream name so that interleaved streams can be told apart in a combat log.
type Logged struct {
	src    Source
	stream string
	logger *zap.Logger
}

// NewLogged wraps src.
//
// Precondition: src must be non-nil. A nil logger disables logging.
func NewLogged(stream string, src Source, logger *zap.Logger) *Logged {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Logged{src: src, stream: stream, logger: logger}
}

// NextU64 delegates to the wrapped source.
func (l *Logged) NextU64() uint64 {
	v := l.src.NextU64()
	l.logger.Debug("rng draw",
		zap.String("stream", l.stream),
		zap.String("kind", "u64"),
		zap.Uint64("value", v),
	)
	return v
}

// Bounded delegates to the wrapped source.
func (l *Logged) Bounded(bound uint64) uint64 {
	v := l.src.Bounded(bound)
	l.logger.Debug("rng draw",
		zap.String("stream", l.stream),
		zap.String("kind", "bounded"),
		zap.Uint64("bound", bound),
		zap.Uint64("value", v),
	)
	return v
}

// Bool delegates to the wrapped source.
func (l *Logged) Bool() bool {
	v := l.src.Bool()
	l.logger.Debug("rng draw",
		zap.String("stream", l.stream),
		zap.String("kind", "bool"),
		zap.Bool("value", v),
	)
	return v
}

// Float32 delegates to the wrapped source.
func (l *Logged) Float32() float32 {
	v := l.src.Float32()
	l.logger.Debug("rng draw",
		zap.String("stream", l.stream),
		zap.String("kind", "f32"),
		zap.Float32("value", v),
	)
	return v
}

// Streams bundles the per-combat random streams.
//
// All streams start from the floor seed; they are kept apart so that a draw
// on one never shifts the sequence of another.
type Streams struct {
	AI             Source
	Misc           Source
	Shuffle        Source
	CardRandomizer Source
}

// NewStreams builds the streams for combat on floor of a run seeded by seed.
//
// Postcondition: Each stream is an independent Sts seeded with seed.ForFloor(floor).
func NewStreams(seed Seed, floor int, logger *zap.Logger) Streams {
	s := seed.ForFloor(floor)
	return Streams{
		AI:             NewLogged("ai", NewSts(s), logger),
		Misc:           NewLogged("misc", NewSts(s), logger),
		Shuffle:        NewLogged("shuffle", NewSts(s), logger),
		CardRandomizer: NewLogged("card_randomizer", NewSts(s), logger),
	}
}
