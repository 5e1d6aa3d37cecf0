// Package interaction defines the collaborator through which a combat
// reports state changes and asks for the player's decisions, along with
// the transports that implement it.
package interaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/cory-johannsen/spiresim/internal/game/enemy"
)

// ErrProtocol is returned for an out-of-range choice or an empty choice list.
var ErrProtocol = errors.New("interaction protocol violation")

// ErrTransportClosed is returned when the collaborator can no longer answer.
var ErrTransportClosed = errors.New("interaction transport closed")

// Prompt identifies the decision being asked for.
type Prompt int

const (
	PromptCombatAction Prompt = iota + 1
	PromptTargetEnemy
)

// String returns the prompt name.
func (p Prompt) String() string {
	switch p {
	case PromptCombatAction:
		return "combat_action"
	case PromptTargetEnemy:
		return "target_enemy"
	default:
		return "unknown"
	}
}

// ChoiceKind tags a Choice.
type ChoiceKind int

const (
	ChoicePlayCard ChoiceKind = iota + 1
	ChoiceEndTurn
	ChoiceTargetEnemy
)

// Choice is one option offered with a Prompt.
type Choice struct {
	Kind      ChoiceKind    `json:"kind"`
	HandIndex int           `json:"hand_index,omitempty"`
	Card      string        `json:"card,omitempty"`
	Cost      int           `json:"cost,omitempty"`
	Slot      int           `json:"slot,omitempty"`
	Enemy     *enemy.Status `json:"enemy,omitempty"`
}

// PlayCard offers the card at handIdx.
func PlayCard(handIdx int, card string, cost int) Choice {
	return Choice{Kind: ChoicePlayCard, HandIndex: handIdx, Card: card, Cost: cost}
}

// EndTurn offers ending the player's turn.
func EndTurn() Choice { return Choice{Kind: ChoiceEndTurn} }

// TargetEnemy offers the enemy in slot as a target.
func TargetEnemy(slot int, s enemy.Status) Choice {
	return Choice{Kind: ChoiceTargetEnemy, Slot: slot, Enemy: &s}
}

// String renders the choice for menus and logs.
func (c Choice) String() string {
	switch c.Kind {
	case ChoicePlayCard:
		return fmt.Sprintf("play %s (%d)", c.Card, c.Cost)
	case ChoiceEndTurn:
		return "end turn"
	case ChoiceTargetEnemy:
		if c.Enemy == nil {
			return fmt.Sprintf("target [%d]", c.Slot)
		}
		return fmt.Sprintf("target [%d] %s hp=%d", c.Slot, c.Enemy.Archetype, c.Enemy.HP)
	default:
		return "unknown"
	}
}

// Interaction is the collaborator a combat session talks to.
//
// Prompt is the only operation that may block; it must honor ctx.
type Interaction interface {
	// Notify delivers a one-way state update.
	Notify(n Notification)
	// Prompt asks for one of choices and returns its index.
	Prompt(ctx context.Context, p Prompt, choices []Choice) (int, error)
}

// Ask prompts ia and validates the answer.
//
// Precondition: ia must not be nil.
// Postcondition: Returns the selected choice, an error wrapping ErrProtocol
// for an empty list or out-of-range index, or the collaborator's error.
func Ask(ctx context.Context, ia Interaction, p Prompt, choices []Choice) (Choice, error) {
	if len(choices) == 0 {
		return Choice{}, fmt.Errorf("prompt %s with no choices: %w", p, ErrProtocol)
	}
	idx, err := ia.Prompt(ctx, p, choices)
	if err != nil {
		return Choice{}, err
	}
	if idx < 0 || idx >= len(choices) {
		return Choice{}, fmt.Errorf("prompt %s: index %d out of range [0,%d): %w", p, idx, len(choices), ErrProtocol)
	}
	return choices[idx], nil
}
