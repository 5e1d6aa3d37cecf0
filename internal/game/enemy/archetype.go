// Package enemy models the enemies of a combat: their archetypes, the
// finite set of moves each can make, the deterministic policies choosing
// those moves, and the generation of an enemy party for an encounter.
package enemy

import "errors"

// ErrUnimplemented is returned for archetypes or encounters with no
// registered behavior.
var ErrUnimplemented = errors.New("unimplemented content")

// Archetype identifies a kind of enemy.
type Archetype int

const (
	AcidSlimeM Archetype = iota + 1
	AcidSlimeS
	Cultist
	FungiBeast
	GreenLouse
	GremlinNob
	JawWorm
	RedLouse
	SpikeSlimeM
	SpikeSlimeS
	// Archetypes below are known by name only.
	BlueSlaver
	Lagavulin
	Looter
	RedSlaver
	Sentry
)

var archetypeNames = map[Archetype]string{
	AcidSlimeM:  "AcidSlimeM",
	AcidSlimeS:  "AcidSlimeS",
	Cultist:     "Cultist",
	FungiBeast:  "FungiBeast",
	GreenLouse:  "GreenLouse",
	GremlinNob:  "GremlinNob",
	JawWorm:     "JawWorm",
	RedLouse:    "RedLouse",
	SpikeSlimeM: "SpikeSlimeM",
	SpikeSlimeS: "SpikeSlimeS",
	BlueSlaver:  "BlueSlaver",
	Lagavulin:   "Lagavulin",
	Looter:      "Looter",
	RedSlaver:   "RedSlaver",
	Sentry:      "Sentry",
}

// String returns the archetype name.
func (a Archetype) String() string {
	if s, ok := archetypeNames[a]; ok {
		return s
	}
	return "Unknown"
}

// ParseArchetype resolves an archetype name.
func ParseArchetype(s string) (Archetype, bool) {
	for a, name := range archetypeNames {
		if name == s {
			return a, true
		}
	}
	return 0, false
}
