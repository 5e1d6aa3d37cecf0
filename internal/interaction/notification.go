package interaction

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/enemy"
)

// NotificationKind tags a Notification.
type NotificationKind int

const (
	KindStartingCombat NotificationKind = iota + 1
	KindEndingCombat
	KindAddToDiscardPile
	KindBlock
	KindBlockGained
	KindCardDiscarded
	KindCardDrawn
	KindCardExhausted
	KindConditions
	KindDamageBlocked
	KindDamageTaken
	KindDexterity
	KindEnemyDied
	KindEnemyParty
	KindEnemyStatus
	KindEnergy
	KindHandDiscarded
	KindHealth
	KindShufflingDiscardPileIntoDrawPile
	KindStrength
)

var kindNames = map[NotificationKind]string{
	KindStartingCombat:                   "starting_combat",
	KindEndingCombat:                     "ending_combat",
	KindAddToDiscardPile:                 "add_to_discard_pile",
	KindBlock:                            "block",
	KindBlockGained:                      "block_gained",
	KindCardDiscarded:                    "card_discarded",
	KindCardDrawn:                        "card_drawn",
	KindCardExhausted:                    "card_exhausted",
	KindConditions:                       "conditions",
	KindDamageBlocked:                    "damage_blocked",
	KindDamageTaken:                      "damage_taken",
	KindDexterity:                        "dexterity",
	KindEnemyDied:                        "enemy_died",
	KindEnemyParty:                       "enemy_party",
	KindEnemyStatus:                      "enemy_status",
	KindEnergy:                           "energy",
	KindHandDiscarded:                    "hand_discarded",
	KindHealth:                           "health",
	KindShufflingDiscardPileIntoDrawPile: "shuffling_discard_pile_into_draw_pile",
	KindStrength:                         "strength",
}

// String returns the snake_case name of k.
func (k NotificationKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText encodes k by name so persisted logs survive reordering.
func (k NotificationKind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("unknown notification kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a name written by MarshalText.
func (k *NotificationKind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown notification kind %q", string(b))
}

// Notification is a one-way state update sent to the interaction
// collaborator. Only the fields relevant to Kind are set.
type Notification struct {
	Kind       NotificationKind   `json:"kind"`
	Amount     int                `json:"amount,omitempty"`
	Max        int                `json:"max,omitempty"`
	Victory    bool               `json:"victory,omitempty"`
	HandIndex  int                `json:"hand_index,omitempty"`
	Card       string             `json:"card,omitempty"`
	Cost       int                `json:"cost,omitempty"`
	Cards      []string           `json:"cards,omitempty"`
	Slot       int                `json:"slot,omitempty"`
	Enemy      *enemy.Status      `json:"enemy,omitempty"`
	Party      []*enemy.Status    `json:"party,omitempty"`
	Conditions []condition.Player `json:"conditions,omitempty"`
}

// StartingCombat opens a combat.
func StartingCombat() Notification { return Notification{Kind: KindStartingCombat} }

// EndingCombat closes a combat with its outcome.
func EndingCombat(victory bool) Notification {
	return Notification{Kind: KindEndingCombat, Victory: victory}
}

// AddToDiscardPile reports cards created in the discard pile.
func AddToDiscardPile(cards []string) Notification {
	return Notification{Kind: KindAddToDiscardPile, Cards: cards}
}

// Block reports the player's block after a change.
func Block(n int) Notification { return Notification{Kind: KindBlock, Amount: n} }

// BlockGained reports block added to the player.
func BlockGained(n int) Notification { return Notification{Kind: KindBlockGained, Amount: n} }

// CardDiscarded reports a card leaving the hand for the discard pile.
func CardDiscarded(handIdx int, card string) Notification {
	return Notification{Kind: KindCardDiscarded, HandIndex: handIdx, Card: card}
}

// CardDrawn reports a card entering the hand at handIdx.
func CardDrawn(handIdx int, card string, cost int) Notification {
	return Notification{Kind: KindCardDrawn, HandIndex: handIdx, Card: card, Cost: cost}
}

// CardExhausted reports a card moved to the exhaust pile.
func CardExhausted(card string) Notification {
	return Notification{Kind: KindCardExhausted, Card: card}
}

// Conditions reports the player's full condition list.
func Conditions(c []condition.Player) Notification {
	return Notification{Kind: KindConditions, Conditions: c}
}

// DamageBlocked reports damage absorbed by the player's block.
func DamageBlocked(n int) Notification { return Notification{Kind: KindDamageBlocked, Amount: n} }

// DamageTaken reports health lost by the player.
func DamageTaken(n int) Notification { return Notification{Kind: KindDamageTaken, Amount: n} }

// Dexterity reports the player's dexterity after a change.
func Dexterity(n int) Notification { return Notification{Kind: KindDexterity, Amount: n} }

// EnemyDied reports the enemy removed from slot.
func EnemyDied(slot int, s enemy.Status) Notification {
	return Notification{Kind: KindEnemyDied, Slot: slot, Enemy: &s}
}

// EnemyParty reports every slot; empty slots are nil.
func EnemyParty(party []*enemy.Status) Notification {
	return Notification{Kind: KindEnemyParty, Party: party}
}

// EnemyStatus reports the state of the enemy in slot.
func EnemyStatus(slot int, s enemy.Status) Notification {
	return Notification{Kind: KindEnemyStatus, Slot: slot, Enemy: &s}
}

// Energy reports the player's energy after a change.
func Energy(n int) Notification { return Notification{Kind: KindEnergy, Amount: n} }

// HandDiscarded reports the end-of-turn hand discard.
func HandDiscarded() Notification { return Notification{Kind: KindHandDiscarded} }

// Health reports the player's health and maximum health after a change.
func Health(hp, hpMax int) Notification {
	return Notification{Kind: KindHealth, Amount: hp, Max: hpMax}
}

// ShufflingDiscardPileIntoDrawPile reports a reshuffle.
func ShufflingDiscardPileIntoDrawPile() Notification {
	return Notification{Kind: KindShufflingDiscardPileIntoDrawPile}
}

// Strength reports the player's strength after a change.
func Strength(n int) Notification { return Notification{Kind: KindStrength, Amount: n} }

// String renders n as a single line.
func (n Notification) String() string {
	switch n.Kind {
	case KindStartingCombat, KindHandDiscarded, KindShufflingDiscardPileIntoDrawPile:
		return n.Kind.String()
	case KindEndingCombat:
		if n.Victory {
			return "ending_combat victory"
		}
		return "ending_combat defeat"
	case KindAddToDiscardPile:
		return fmt.Sprintf("%s [%s]", n.Kind, strings.Join(n.Cards, ", "))
	case KindCardDiscarded:
		return fmt.Sprintf("%s #%d %s", n.Kind, n.HandIndex, n.Card)
	case KindCardDrawn:
		return fmt.Sprintf("%s #%d %s(%d)", n.Kind, n.HandIndex, n.Card, n.Cost)
	case KindCardExhausted:
		return fmt.Sprintf("%s %s", n.Kind, n.Card)
	case KindHealth:
		return fmt.Sprintf("%s %d/%d", n.Kind, n.Amount, n.Max)
	case KindConditions:
		return fmt.Sprintf("%s %v", n.Kind, n.Conditions)
	case KindEnemyDied, KindEnemyStatus:
		if n.Enemy == nil {
			return fmt.Sprintf("%s [%d]", n.Kind, n.Slot)
		}
		return fmt.Sprintf("%s [%d] %s", n.Kind, n.Slot, n.Enemy)
	case KindEnemyParty:
		parts := make([]string, len(n.Party))
		for i, s := range n.Party {
			if s == nil {
				parts[i] = "-"
				continue
			}
			parts[i] = s.String()
		}
		return fmt.Sprintf("%s [%s]", n.Kind, strings.Join(parts, "; "))
	default:
		return fmt.Sprintf("%s %d", n.Kind, n.Amount)
	}
}
