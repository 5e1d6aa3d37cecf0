package effect

import (
	"fmt"

	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/damage"
)

// EnemyOp is the operation performed by an enemy-origin effect. Enemy
// effects act either on the player or on the acting enemy itself.
type EnemyOp int

const (
	// EnemyOpDeal deals damage to the player.
	EnemyOpDeal EnemyOp = iota + 1
	// EnemyOpInflict applies a player condition to the player.
	EnemyOpInflict
	// EnemyOpApply grants a condition to the acting enemy.
	EnemyOpApply
	EnemyOpGainBlock
	EnemyOpGainStrength
	// EnemyOpAddToDiscard creates Amount copies of Card in the player's discard pile.
	EnemyOpAddToDiscard
)

var enemyOpNames = map[EnemyOp]string{
	EnemyOpDeal:         "deal",
	EnemyOpInflict:      "inflict",
	EnemyOpApply:        "apply",
	EnemyOpGainBlock:    "gain_block",
	EnemyOpGainStrength: "gain_strength",
	EnemyOpAddToDiscard: "add_to_discard",
}

// String returns the identifier of the operation.
func (o EnemyOp) String() string {
	if s, ok := enemyOpNames[o]; ok {
		return s
	}
	return "unknown"
}

// Enemy is an enemy-origin effect: a step of an enemy action or a reaction
// fired by an enemy condition.
type Enemy struct {
	Op     EnemyOp
	Amount int
	// Damage is the payload of EnemyOpDeal.
	Damage damage.Damage
	// Debuff is the payload of EnemyOpInflict.
	Debuff condition.Player
	// Condition is the payload of EnemyOpApply.
	Condition condition.Enemy
	// Card is the card identifier created by EnemyOpAddToDiscard.
	Card string
}

// String renders the effect for logs.
func (e Enemy) String() string {
	switch e.Op {
	case EnemyOpDeal:
		return fmt.Sprintf("deal %s %d", e.Damage.Kind, e.Damage.Amount)
	case EnemyOpInflict:
		return fmt.Sprintf("inflict %s", e.Debuff)
	case EnemyOpApply:
		return fmt.Sprintf("apply %s", e.Condition)
	case EnemyOpAddToDiscard:
		return fmt.Sprintf("add %dx %s to discard", e.Amount, e.Card)
	default:
		return fmt.Sprintf("%s %d", e.Op, e.Amount)
	}
}

// EnemyDeal deals d to the player.
func EnemyDeal(d damage.Damage) Enemy { return Enemy{Op: EnemyOpDeal, Damage: d} }

// EnemyInflict applies c to the player.
func EnemyInflict(c condition.Player) Enemy { return Enemy{Op: EnemyOpInflict, Debuff: c} }

// EnemyApply grants c to the acting enemy.
func EnemyApply(c condition.Enemy) Enemy { return Enemy{Op: EnemyOpApply, Condition: c} }

// EnemyGainBlock adds n block to the acting enemy.
func EnemyGainBlock(n int) Enemy { return Enemy{Op: EnemyOpGainBlock, Amount: n} }

// EnemyGainStrength adds n strength to the acting enemy.
func EnemyGainStrength(n int) Enemy { return Enemy{Op: EnemyOpGainStrength, Amount: n} }

// EnemyAddToDiscard creates n copies of card in the player's discard pile.
func EnemyAddToDiscard(card string, n int) Enemy {
	return Enemy{Op: EnemyOpAddToDiscard, Card: card, Amount: n}
}
