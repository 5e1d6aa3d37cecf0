package enemy

import (
	"fmt"

	"github.com/cory-johannsen/spiresim/internal/game/rng"
)

// MaxSlots is the number of positions in an enemy party.
const MaxSlots = 5

// Party is the ordered set of enemy slots. A nil slot is empty and is never
// targeted.
type Party [MaxSlots]*Enemy

// Living returns the indices of occupied slots in ascending order.
func (p *Party) Living() []int {
	var out []int
	for i, e := range p {
		if e != nil {
			out = append(out, i)
		}
	}
	return out
}

// IsEmpty reports whether every slot is empty.
func (p *Party) IsEmpty() bool {
	for _, e := range p {
		if e != nil {
			return false
		}
	}
	return true
}

// Statuses snapshots every slot; empty slots are nil.
func (p *Party) Statuses() []*Status {
	out := make([]*Status, MaxSlots)
	for i, e := range p {
		if e != nil {
			s := e.Status()
			out[i] = &s
		}
	}
	return out
}

// Encounter identifies a group of enemies fought together.
type Encounter int

const (
	EncounterCultist Encounter = iota + 1
	EncounterJawWorm
	EncounterTwoLouses
	EncounterSmallSlimes
	EncounterExordiumWildlife
	EncounterGremlinNob
	// Encounters below are known by name only.
	EncounterBlueSlaver
	EncounterExordiumThugs
	EncounterGremlinGang
	EncounterLagavulin
	EncounterLargeSlime
	EncounterLooter
	EncounterLotsOfSlimes
	EncounterRedSlaver
	EncounterThreeLouses
	EncounterThreeSentries
	EncounterTwoFungiBeasts
)

var encounterNames = map[Encounter]string{
	EncounterCultist:          "Cultist",
	EncounterJawWorm:          "JawWorm",
	EncounterTwoLouses:        "TwoLouses",
	EncounterSmallSlimes:      "SmallSlimes",
	EncounterExordiumWildlife: "ExordiumWildlife",
	EncounterGremlinNob:       "GremlinNob",
	EncounterBlueSlaver:       "BlueSlaver",
	EncounterExordiumThugs:    "ExordiumThugs",
	EncounterGremlinGang:      "GremlinGang",
	EncounterLagavulin:        "Lagavulin",
	EncounterLargeSlime:       "LargeSlime",
	EncounterLooter:           "Looter",
	EncounterLotsOfSlimes:     "LotsOfSlimes",
	EncounterRedSlaver:        "RedSlaver",
	EncounterThreeLouses:      "ThreeLouses",
	EncounterThreeSentries:    "ThreeSentries",
	EncounterTwoFungiBeasts:   "TwoFungiBeasts",
}

// String returns the encounter name.
func (e Encounter) String() string {
	if s, ok := encounterNames[e]; ok {
		return s
	}
	return "Unknown"
}

// ParseEncounter resolves an encounter name.
func ParseEncounter(s string) (Encounter, error) {
	for e, name := range encounterNames {
		if name == s {
			return e, nil
		}
	}
	return 0, fmt.Errorf("unknown encounter %q", s)
}

// generator holds the streams of one party generation.
type generator struct {
	reg  *Registry
	hp   rng.Source
	ai   rng.Source
	misc rng.Source
}

func (g *generator) roll(a Archetype) (Stats, error) { return g.reg.Roll(a, g.hp) }

func (g *generator) spawn(s Stats) (*Enemy, error) { return g.reg.Spawn(s, g.ai) }

// fill rolls and spawns each archetype in turn into consecutive slots.
func (g *generator) fill(p *Party, archetypes ...Archetype) error {
	for i, a := range archetypes {
		s, err := g.roll(a)
		if err != nil {
			return err
		}
		if p[i], err = g.spawn(s); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) louse() Archetype {
	if g.misc.Bool() {
		return RedLouse
	}
	return GreenLouse
}

// Generate builds the party for enc on the floor seeded by seedForFloor.
//
// Health and other characteristics are rolled on a fresh generator seeded
// with seedForFloor; first moves are drawn from ai; random composition is
// drawn from misc.
//
// Precondition: reg, ai and misc must be non-nil.
// Postcondition: Returns an error wrapping ErrUnimplemented for encounters
// or archetypes with no registered behavior.
func Generate(reg *Registry, seedForFloor rng.Seed, enc Encounter, ai, misc rng.Source) (*Party, error) {
	g := &generator{reg: reg, hp: rng.NewSts(seedForFloor), ai: ai, misc: misc}
	p := &Party{}
	var err error
	switch enc {
	case EncounterCultist:
		err = g.fill(p, Cultist)
	case EncounterJawWorm:
		err = g.fill(p, JawWorm)
	case EncounterGremlinNob:
		err = g.fill(p, GremlinNob)
	case EncounterTwoLouses:
		first := g.louse()
		second := g.louse()
		err = g.fill(p, first, second)
	case EncounterSmallSlimes:
		if g.misc.Bool() {
			err = g.fill(p, SpikeSlimeS, AcidSlimeM)
		} else {
			err = g.fill(p, AcidSlimeS, SpikeSlimeM)
		}
	case EncounterExordiumWildlife:
		err = g.exordiumWildlife(p)
	default:
		err = fmt.Errorf("encounter %s: %w", enc, ErrUnimplemented)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// exordiumWildlife rolls every candidate before choosing, so unused
// candidates still consume health draws.
func (g *generator) exordiumWildlife(p *Party) error {
	var strong [2]Stats
	for i, a := range []Archetype{FungiBeast, JawWorm} {
		s, err := g.roll(a)
		if err != nil {
			return err
		}
		strong[i] = s
	}
	var err error
	if p[0], err = g.spawn(strong[rng.IntRange(g.misc, 0, 1)]); err != nil {
		return err
	}
	var weak [3]Stats
	for i, a := range []Archetype{g.louse(), SpikeSlimeM, AcidSlimeM} {
		if weak[i], err = g.roll(a); err != nil {
			return err
		}
	}
	p[1], err = g.spawn(weak[rng.IntRange(g.misc, 0, 2)])
	return err
}
