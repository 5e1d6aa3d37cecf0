package interaction

import (
	"context"
	"sync"
)

// Strategy picks the index of a choice.
type Strategy func(p Prompt, choices []Choice) int

// Scripted answers prompts with a Strategy and discards notifications.
type Scripted struct {
	strategy Strategy
}

// NewScripted returns a Scripted driven by s.
//
// Precondition: s must not be nil.
func NewScripted(s Strategy) *Scripted { return &Scripted{strategy: s} }

// Notify implements Interaction.
func (s *Scripted) Notify(Notification) {}

// Prompt implements Interaction.
func (s *Scripted) Prompt(ctx context.Context, p Prompt, choices []Choice) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.strategy(p, choices), nil
}

// FirstCard plays the first offered card, targets the first offered enemy
// and ends the turn once no card is offered.
func FirstCard(p Prompt, choices []Choice) int {
	for i, c := range choices {
		if c.Kind == ChoicePlayCard || c.Kind == ChoiceTargetEnemy {
			return i
		}
	}
	return indexOf(choices, ChoiceEndTurn)
}

// AlwaysEndTurn never plays a card.
func AlwaysEndTurn(p Prompt, choices []Choice) int {
	if p == PromptTargetEnemy {
		return 0
	}
	return indexOf(choices, ChoiceEndTurn)
}

// Sequence answers with each index of answers in turn, then with fallback.
func Sequence(fallback Strategy, answers ...int) Strategy {
	var mu sync.Mutex
	return func(p Prompt, choices []Choice) int {
		mu.Lock()
		defer mu.Unlock()
		if len(answers) == 0 {
			return fallback(p, choices)
		}
		next := answers[0]
		answers = answers[1:]
		return next
	}
}

func indexOf(choices []Choice, kind ChoiceKind) int {
	for i, c := range choices {
		if c.Kind == kind {
			return i
		}
	}
	return 0
}
