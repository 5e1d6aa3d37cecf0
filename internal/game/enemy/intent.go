package enemy

import (
	"fmt"

	"github.com/cory-johannsen/spiresim/internal/game/effect"
)

// IntentKind classifies an enemy's queued action for display.
type IntentKind int

const (
	IntentUnknown IntentKind = iota
	IntentAggressive
	IntentAggressiveBuff
	IntentAggressiveDebuff
	IntentAggressiveDefensive
	IntentDefensive
	IntentDefensiveBuff
	IntentDefensiveDebuff
	IntentStrategicBuff
	IntentStrategicDebuff
)

var intentNames = [...]string{
	IntentUnknown:             "unknown",
	IntentAggressive:          "aggressive",
	IntentAggressiveBuff:      "aggressive_buff",
	IntentAggressiveDebuff:    "aggressive_debuff",
	IntentAggressiveDefensive: "aggressive_defensive",
	IntentDefensive:           "defensive",
	IntentDefensiveBuff:       "defensive_buff",
	IntentDefensiveDebuff:     "defensive_debuff",
	IntentStrategicBuff:       "strategic_buff",
	IntentStrategicDebuff:     "strategic_debuff",
}

// String returns the intent name.
func (k IntentKind) String() string {
	if k >= 0 && int(k) < len(intentNames) {
		return intentNames[k]
	}
	return "unknown"
}

// Intent is the display classification of an action. Damage and Count are
// set only for aggressive kinds: the nominal damage of the first hit and
// the number of hits.
type Intent struct {
	Kind   IntentKind
	Damage int
	Count  int
}

// String renders the intent, e.g. "aggressive(7x1)".
func (i Intent) String() string {
	if i.Count > 0 {
		return fmt.Sprintf("%s(%dx%d)", i.Kind, i.Damage, i.Count)
	}
	return i.Kind.String()
}

// IntentOf derives the intent of an effect chain.
//
// Inflicting a condition on the player or adding cards to the player's piles
// counts as a debuff; applying a condition to itself or gaining strength
// counts as a buff; gaining block counts as defense.
func IntentOf(effects []effect.Enemy) Intent {
	var buff, debuff, defense bool
	var hits, first int
	for _, e := range effects {
		switch e.Op {
		case effect.EnemyOpDeal:
			if hits == 0 {
				first = e.Damage.Amount
			}
			hits++
		case effect.EnemyOpInflict, effect.EnemyOpAddToDiscard:
			debuff = true
		case effect.EnemyOpApply, effect.EnemyOpGainStrength:
			buff = true
		case effect.EnemyOpGainBlock:
			defense = true
		}
	}
	if hits > 0 {
		kind := IntentAggressive
		switch {
		case buff:
			kind = IntentAggressiveBuff
		case debuff:
			kind = IntentAggressiveDebuff
		case defense:
			kind = IntentAggressiveDefensive
		}
		return Intent{Kind: kind, Damage: first, Count: hits}
	}
	switch {
	case defense && buff:
		return Intent{Kind: IntentDefensiveBuff}
	case defense && debuff:
		return Intent{Kind: IntentDefensiveDebuff}
	case defense:
		return Intent{Kind: IntentDefensive}
	case buff:
		return Intent{Kind: IntentStrategicBuff}
	case debuff:
		return Intent{Kind: IntentStrategicDebuff}
	default:
		return Intent{Kind: IntentUnknown}
	}
}
