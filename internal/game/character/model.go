// Package character defines the playable characters and builds the loadout
// a character brings into combat.
package character

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCharacter is returned by Lookup for an unregistered id.
var ErrUnknownCharacter = errors.New("unknown character")

// Character is a playable character's starting state.
type Character struct {
	ID     string
	Name   string
	HPMax  int
	Deck   []string
	Relics []string
}

// Ironclad is the default character.
var Ironclad = Character{
	ID:    "ironclad",
	Name:  "The Ironclad",
	HPMax: 80,
	Deck: []string{
		"strike", "strike", "strike", "strike", "strike",
		"defend", "defend", "defend", "defend",
		"bash",
	},
	Relics: []string{"burning_blood"},
}

var characters = map[string]*Character{
	Ironclad.ID: &Ironclad,
}

// Lookup returns the character registered under id.
//
// Postcondition: Returns an error wrapping ErrUnknownCharacter when id is
// not registered.
func Lookup(id string) (*Character, error) {
	c, ok := characters[id]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownCharacter, id, IDs())
	}
	return c, nil
}

// IDs returns every registered character id in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(characters))
	for id := range characters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
