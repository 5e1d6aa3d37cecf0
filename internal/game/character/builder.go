package character

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/cory-johannsen/spiresim/internal/game/combat"
)

// Overrides replace parts of a character's starting state. Zero values keep
// the character's own.
type Overrides struct {
	HP     int
	Deck   []string
	Relics []string
}

// Loadout is what the player brings into one combat.
type Loadout struct {
	Character string
	HP        int
	HPMax     int
	Deck      []string
	Relics    []combat.Relic
}

// Build combines c with o.
//
// Precondition: c must be non-nil.
// Postcondition: Returns every problem at once: health outside (0, HPMax],
// an empty deck, or relics with no combat behavior (wrapping
// combat.ErrUnimplemented). Deck and Relics are fresh slices.
func Build(c *Character, o Overrides) (Loadout, error) {
	l := Loadout{Character: c.ID, HP: c.HPMax, HPMax: c.HPMax}
	if o.HP != 0 {
		l.HP = o.HP
	}
	deck := c.Deck
	if len(o.Deck) > 0 {
		deck = o.Deck
	}
	l.Deck = append([]string(nil), deck...)
	relics := c.Relics
	if o.Relics != nil {
		relics = o.Relics
	}

	var err error
	if l.HP <= 0 || l.HP > l.HPMax {
		err = multierr.Append(err, fmt.Errorf("hp %d outside (0, %d]", l.HP, l.HPMax))
	}
	if len(l.Deck) == 0 {
		err = multierr.Append(err, fmt.Errorf("%s has an empty deck", c.ID))
	}
	for _, id := range relics {
		r, rerr := combat.ParseRelic(id)
		if rerr != nil {
			err = multierr.Append(err, rerr)
			continue
		}
		l.Relics = append(l.Relics, r)
	}
	if err != nil {
		return Loadout{}, err
	}
	return l, nil
}
