// Package effect defines the immutable effect descriptions that cards and
// enemy actions resolve into. Effects never carry their own target; the
// combat resolver supplies it at resolution time.
package effect

import (
	"fmt"

	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/damage"
)

// Target selects which enemies a player effect lands on.
type Target int

const (
	// TargetNone marks an effect that acts on the player.
	TargetNone Target = iota
	// TargetSingle uses the enemy chosen when the card was played.
	TargetSingle
	// TargetAll visits every living enemy in slot order.
	TargetAll
	// TargetRandom samples one living enemy when the effect resolves.
	TargetRandom
)

var targetNames = map[Target]string{
	TargetNone:   "none",
	TargetSingle: "single",
	TargetAll:    "all",
	TargetRandom: "random",
}

// String returns the content identifier of the target.
func (t Target) String() string {
	if s, ok := targetNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseTarget resolves a content identifier. The empty string is TargetNone.
func ParseTarget(s string) (Target, error) {
	if s == "" {
		return TargetNone, nil
	}
	for t, name := range targetNames {
		if name == s {
			return t, nil
		}
	}
	return TargetNone, fmt.Errorf("unknown target %q", s)
}

// PlayerOp is the operation performed by a player-origin effect.
type PlayerOp int

const (
	// OpApply grants a condition to the player.
	OpApply PlayerOp = iota + 1
	// OpDeal deals damage to the targeted enemies.
	OpDeal
	// OpInflict applies a condition to the targeted enemies.
	OpInflict
	OpGainBlock
	OpGainEnergy
	OpGainStrength
	OpLoseStrength
	OpGainDexterity
	OpLoseHP
	OpHeal
	OpDraw
	// OpAddToDiscard creates Count copies of Card in the discard pile.
	OpAddToDiscard
	// OpAddToHand creates Count copies of Card in the hand.
	OpAddToHand
	// OpTakeDamage deals damage to the player, routed through block.
	OpTakeDamage
)

var playerOpNames = map[PlayerOp]string{
	OpApply:         "apply",
	OpDeal:          "deal",
	OpInflict:       "inflict",
	OpGainBlock:     "gain_block",
	OpGainEnergy:    "gain_energy",
	OpGainStrength:  "gain_strength",
	OpLoseStrength:  "lose_strength",
	OpGainDexterity: "gain_dexterity",
	OpLoseHP:        "lose_hp",
	OpHeal:          "heal",
	OpDraw:          "draw",
	OpAddToDiscard:  "add_to_discard",
	OpAddToHand:     "add_to_hand",
	OpTakeDamage:    "take_damage",
}

// String returns the content identifier of the operation.
func (o PlayerOp) String() string {
	if s, ok := playerOpNames[o]; ok {
		return s
	}
	return "unknown"
}

// ParsePlayerOp resolves a content identifier.
func ParsePlayerOp(s string) (PlayerOp, bool) {
	for o, name := range playerOpNames {
		if name == s {
			return o, true
		}
	}
	return 0, false
}

// Player is a player-origin effect: produced by a card, by a player
// condition trigger or by a relic.
//
// Only the fields relevant to Op are meaningful.
type Player struct {
	Op     PlayerOp
	Target Target
	Amount int
	// Damage is the payload of OpDeal and OpTakeDamage.
	Damage damage.Damage
	// Condition is the payload of OpApply.
	Condition condition.Player
	// Debuff is the payload of OpInflict.
	Debuff condition.Enemy
	// Card is the card identifier created by OpAddToDiscard and OpAddToHand.
	Card string
}

// String renders the effect for logs.
func (e Player) String() string {
	switch e.Op {
	case OpDeal:
		return fmt.Sprintf("deal %s %d to %s", e.Damage.Kind, e.Damage.Amount, e.Target)
	case OpTakeDamage:
		return fmt.Sprintf("take %s %d", e.Damage.Kind, e.Damage.Amount)
	case OpApply:
		return fmt.Sprintf("apply %s", e.Condition)
	case OpInflict:
		return fmt.Sprintf("inflict %s on %s", e.Debuff, e.Target)
	case OpAddToDiscard, OpAddToHand:
		return fmt.Sprintf("%s %dx %s", e.Op, e.Amount, e.Card)
	default:
		return fmt.Sprintf("%s %d", e.Op, e.Amount)
	}
}

// IsTargeted reports whether the effect needs an enemy target to resolve.
func (e Player) IsTargeted() bool {
	return e.Op == OpDeal || e.Op == OpInflict
}

// DealTo deals d to the enemies selected by t.
func DealTo(t Target, d damage.Damage) Player {
	return Player{Op: OpDeal, Target: t, Damage: d}
}

// InflictTo applies c to the enemies selected by t.
func InflictTo(t Target, c condition.Enemy) Player {
	return Player{Op: OpInflict, Target: t, Debuff: c}
}

// Apply grants c to the player.
func Apply(c condition.Player) Player {
	return Player{Op: OpApply, Condition: c}
}

// GainBlock is block gained through the dexterity and frail chain.
func GainBlock(n int) Player { return Player{Op: OpGainBlock, Amount: n} }

// GainEnergy adds n energy.
func GainEnergy(n int) Player { return Player{Op: OpGainEnergy, Amount: n} }

// GainStrength adds n strength.
func GainStrength(n int) Player { return Player{Op: OpGainStrength, Amount: n} }

// LoseStrength removes n strength.
func LoseStrength(n int) Player { return Player{Op: OpLoseStrength, Amount: n} }

// GainDexterity adds n dexterity.
func GainDexterity(n int) Player { return Player{Op: OpGainDexterity, Amount: n} }

// LoseHP removes n health, ignoring block.
func LoseHP(n int) Player { return Player{Op: OpLoseHP, Amount: n} }

// Heal restores n health up to the maximum.
func Heal(n int) Player { return Player{Op: OpHeal, Amount: n} }

// Draw draws n cards.
func Draw(n int) Player { return Player{Op: OpDraw, Amount: n} }

// AddToDiscard creates n copies of card in the discard pile.
func AddToDiscard(card string, n int) Player {
	return Player{Op: OpAddToDiscard, Card: card, Amount: n}
}

// AddToHand creates n copies of card in the hand.
func AddToHand(card string, n int) Player {
	return Player{Op: OpAddToHand, Card: card, Amount: n}
}

// TakeDamage deals d to the player.
func TakeDamage(d damage.Damage) Player {
	return Player{Op: OpTakeDamage, Damage: d}
}
