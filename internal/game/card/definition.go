// Package card holds the card catalog loaded from YAML and the per-combat
// card piles.
package card

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/damage"
	"github.com/cory-johannsen/spiresim/internal/game/effect"
)

// ErrUnimplemented is returned for card effects with no handler.
var ErrUnimplemented = errors.New("unimplemented card effect")

// ErrUnknownCard is returned when a card identifier is not in the registry.
var ErrUnknownCard = errors.New("unknown card")

// Type is the card category.
type Type string

const (
	TypeAttack Type = "attack"
	TypeSkill  Type = "skill"
	TypePower  Type = "power"
	TypeStatus Type = "status"
	TypeCurse  Type = "curse"
)

func (t Type) valid() bool {
	switch t {
	case TypeAttack, TypeSkill, TypePower, TypeStatus, TypeCurse:
		return true
	default:
		return false
	}
}

// EffectSpec is one entry of a card's effect list as written in YAML.
type EffectSpec struct {
	Op     string `yaml:"op"`
	Amount int    `yaml:"amount"`
	// Times repeats the effect; zero means once.
	Times int `yaml:"times"`
	// Target overrides the card target for this effect.
	Target string `yaml:"target"`
	// Condition is the condition identifier for apply and inflict.
	Condition string `yaml:"condition"`
	// Damage is the secondary payload of conditions such as combust.
	Damage int `yaml:"damage"`
	// Kind is the damage kind for deal and take_damage: attack (default),
	// non_attack or hp_loss.
	Kind string `yaml:"kind"`
	// Card is the card identifier for add_to_discard and add_to_hand.
	Card string `yaml:"card"`
}

// Definition is a card as defined in content.
type Definition struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Type        Type         `yaml:"type"`
	Cost        int          `yaml:"cost"`
	Target      string       `yaml:"target"`
	Exhaust     bool         `yaml:"exhaust"`
	Innate      bool         `yaml:"innate"`
	Ethereal    bool         `yaml:"ethereal"`
	Unplayable  bool         `yaml:"unplayable"`
	Description string       `yaml:"description"`
	Specs       []EffectSpec `yaml:"effects"`

	// Resolved by compile.
	target  effect.Target
	effects []effect.Player
}

// CardTarget returns the target chosen when the card is played.
func (d *Definition) CardTarget() effect.Target { return d.target }

// Effects returns the compiled effect chain.
func (d *Definition) Effects() []effect.Player {
	out := make([]effect.Player, len(d.effects))
	copy(out, d.effects)
	return out
}

// RequiresTarget reports whether playing the card prompts for an enemy.
func (d *Definition) RequiresTarget() bool { return d.target == effect.TargetSingle }

func damageKind(s string) (damage.Kind, error) {
	switch s {
	case "", "attack":
		return damage.Blockable, nil
	case "non_attack":
		return damage.BlockableNonAttack, nil
	case "hp_loss":
		return damage.HPLoss, nil
	default:
		return 0, fmt.Errorf("unknown damage kind %q", s)
	}
}

// compile resolves the YAML strings of d into typed effects.
//
// Postcondition: Returns an error wrapping ErrUnimplemented for an unknown
// op, or a plain error for malformed fields.
func (d *Definition) compile() error {
	if !d.Type.valid() {
		return fmt.Errorf("card %q: invalid type %q", d.ID, d.Type)
	}
	t, err := effect.ParseTarget(d.Target)
	if err != nil {
		return fmt.Errorf("card %q: %w", d.ID, err)
	}
	d.target = t
	d.effects = d.effects[:0]
	for i, spec := range d.Specs {
		e, err := spec.compile(t)
		if err != nil {
			return fmt.Errorf("card %q effect %d: %w", d.ID, i, err)
		}
		for n := max(spec.Times, 1); n > 0; n-- {
			d.effects = append(d.effects, e)
		}
	}
	return nil
}

func (s EffectSpec) compile(cardTarget effect.Target) (effect.Player, error) {
	op, ok := effect.ParsePlayerOp(s.Op)
	if !ok {
		return effect.Player{}, fmt.Errorf("op %q: %w", s.Op, ErrUnimplemented)
	}
	target := cardTarget
	if s.Target != "" {
		t, err := effect.ParseTarget(s.Target)
		if err != nil {
			return effect.Player{}, err
		}
		target = t
	}
	switch op {
	case effect.OpDeal, effect.OpTakeDamage:
		kind, err := damageKind(s.Kind)
		if err != nil {
			return effect.Player{}, err
		}
		d := damage.Damage{Kind: kind, Amount: s.Amount}
		if op == effect.OpTakeDamage {
			return effect.TakeDamage(d), nil
		}
		if target == effect.TargetNone {
			return effect.Player{}, fmt.Errorf("deal needs an enemy target")
		}
		return effect.DealTo(target, d), nil
	case effect.OpInflict:
		kind, ok := condition.ParseEnemyKind(s.Condition)
		if !ok {
			return effect.Player{}, fmt.Errorf("unknown enemy condition %q", s.Condition)
		}
		if target == effect.TargetNone {
			return effect.Player{}, fmt.Errorf("inflict needs an enemy target")
		}
		return effect.InflictTo(target, condition.NewEnemy(kind, s.Amount)), nil
	case effect.OpApply:
		kind, ok := condition.ParsePlayerKind(s.Condition)
		if !ok {
			return effect.Player{}, fmt.Errorf("unknown player condition %q", s.Condition)
		}
		return effect.Apply(condition.Player{Kind: kind, Amount: s.Amount, Damage: s.Damage}), nil
	case effect.OpAddToDiscard, effect.OpAddToHand:
		if s.Card == "" {
			return effect.Player{}, fmt.Errorf("%s needs a card", op)
		}
		n := max(s.Amount, 1)
		if op == effect.OpAddToHand {
			return effect.AddToHand(s.Card, n), nil
		}
		return effect.AddToDiscard(s.Card, n), nil
	default:
		return effect.Player{Op: op, Amount: s.Amount}, nil
	}
}
