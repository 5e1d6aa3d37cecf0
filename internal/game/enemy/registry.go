package enemy

import (
	"fmt"

	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/rng"
)

// Range is an inclusive integer range. The zero Range means "not rolled".
type Range struct {
	Min, Max int
}

func (r Range) rolled() bool { return r.Max > 0 }

// Spec is the static description of an archetype.
type Spec struct {
	HP Range
	// BiteDamage is the damage range of a louse bite, rolled at creation.
	BiteDamage Range
	// CurlUp is the block range of the CurlUp condition, rolled at creation.
	CurlUp Range
	// Conditions are granted at spawn in addition to any rolled CurlUp.
	Conditions []condition.Enemy
	Policy     Policy
}

// Registry maps archetypes to their specs.
//
// Invariant: each archetype is registered at most once.
type Registry struct {
	specs map[Archetype]Spec
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[Archetype]Spec)}
}

// Register stores spec for a.
//
// Precondition: spec.Policy must not be nil and spec.HP must be rolled.
// Postcondition: Returns an error on an archetype collision or an invalid spec.
func (r *Registry) Register(a Archetype, spec Spec) error {
	if _, exists := r.specs[a]; exists {
		return fmt.Errorf("enemy.Registry: archetype %s already registered", a)
	}
	if spec.Policy == nil || !spec.HP.rolled() {
		return fmt.Errorf("enemy.Registry: archetype %s needs a policy and an hp range", a)
	}
	r.specs[a] = spec
	return nil
}

// Spec returns the spec of a.
//
// Postcondition: Returns an error wrapping ErrUnimplemented when a is not registered.
func (r *Registry) Spec(a Archetype) (Spec, error) {
	s, ok := r.specs[a]
	if !ok {
		return Spec{}, fmt.Errorf("archetype %s: %w", a, ErrUnimplemented)
	}
	return s, nil
}

// DefaultRegistry returns a Registry holding every implemented archetype.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	louseCurl := Range{Min: 3, Max: 7}
	louseBite := Range{Min: 5, Max: 7}
	defaults := map[Archetype]Spec{
		AcidSlimeM: {HP: Range{28, 32}, Policy: acidSlimeMPolicy},
		AcidSlimeS: {HP: Range{8, 12}, Policy: acidSlimeSPolicy},
		Cultist:    {HP: Range{48, 54}, Policy: cultistPolicy},
		FungiBeast: {
			HP:         Range{22, 28},
			Conditions: []condition.Enemy{condition.NewEnemy(condition.EnemySporeCloud, 2)},
			Policy:     fungiBeastPolicy,
		},
		GreenLouse: {HP: Range{11, 17}, BiteDamage: louseBite, CurlUp: louseCurl,
			Policy: lousePolicy(GreenLouseBite, GreenLouseSpitWeb)},
		GremlinNob: {HP: Range{82, 86}, Policy: gremlinNobPolicy},
		JawWorm:    {HP: Range{40, 44}, Policy: jawWormPolicy},
		RedLouse: {HP: Range{10, 15}, BiteDamage: louseBite, CurlUp: louseCurl,
			Policy: lousePolicy(RedLouseBite, RedLouseGrow)},
		SpikeSlimeM: {HP: Range{28, 32}, Policy: spikeSlimeMPolicy},
		SpikeSlimeS: {HP: Range{10, 14}, Policy: spikeSlimeSPolicy},
	}
	for a, s := range defaults {
		if err := r.Register(a, s); err != nil {
			panic(err)
		}
	}
	return r
}

// Stats are the characteristics rolled for one enemy when it is created.
type Stats struct {
	Archetype  Archetype
	HPMax      int
	BiteDamage int
	CurlUp     int
}

// Roll draws the characteristics of a from src: health, then bite damage,
// then curl-up block, skipping ranges the archetype does not use.
//
// Postcondition: Returns an error wrapping ErrUnimplemented when a is not registered.
func (r *Registry) Roll(a Archetype, src rng.Source) (Stats, error) {
	spec, err := r.Spec(a)
	if err != nil {
		return Stats{}, err
	}
	s := Stats{Archetype: a, HPMax: rng.IntRange(src, spec.HP.Min, spec.HP.Max)}
	if spec.BiteDamage.rolled() {
		s.BiteDamage = rng.IntRange(src, spec.BiteDamage.Min, spec.BiteDamage.Max)
	}
	if spec.CurlUp.rolled() {
		s.CurlUp = rng.IntRange(src, spec.CurlUp.Min, spec.CurlUp.Max)
	}
	return s, nil
}

// Spawn brings an enemy with stats s into combat, choosing its first move
// from ai.
//
// Postcondition: The enemy is at full health with run length 1.
func (r *Registry) Spawn(s Stats, ai rng.Source) (*Enemy, error) {
	spec, err := r.Spec(s.Archetype)
	if err != nil {
		return nil, err
	}
	conds := condition.NewEnemySet(spec.Conditions...)
	if s.CurlUp > 0 {
		conds.Apply(condition.NewEnemy(condition.EnemyCurlUp, s.CurlUp))
	}
	return &Enemy{
		Stats:      s,
		HP:         s.HPMax,
		Conditions: conds,
		Next:       spec.Policy(ai, MoveNone, 0),
		RunLength:  1,
		policy:     spec.Policy,
	}, nil
}
