package card

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/spiresim/internal/game/rng"
)

// HandLimit is the maximum number of cards in hand.
const HandLimit = 10

// Card is one card instance in a combat.
//
// Cost is the energy cost for this combat and may differ from Def.Cost.
type Card struct {
	Def  *Definition
	Cost int
}

// New returns a card instance at its printed cost.
func New(def *Definition) *Card {
	return &Card{Def: def, Cost: def.Cost}
}

// String returns the card name with its current cost.
func (c *Card) String() string {
	return fmt.Sprintf("%s(%d)", c.Def.Name, c.Cost)
}

// Playable reports whether c can be played at all, ignoring energy.
func (c *Card) Playable() bool { return !c.Def.Unplayable }

// Drawn describes the outcome of drawing one card.
type Drawn struct {
	Card *Card
	// HandIndex is the position the card took in hand.
	HandIndex int
	// Reshuffled is true when the discard pile was shuffled into the draw
	// pile to make the draw.
	Reshuffled bool
}

// Piles are the hand, draw, discard and exhaust piles of one combat. The
// top of the draw pile is the end of its slice.
//
// Invariant: every card instance is in exactly one pile, or held by the
// caller between TakeFromHand and its disposal.
type Piles struct {
	hand    []*Card
	draw    []*Card
	discard []*Card
	exhaust []*Card
	shuffle rng.Source
}

// NewPiles shuffles deck into a fresh draw pile.
//
// Innate cards are moved to the top, keeping the shuffled order within the
// innate and non-innate groups.
//
// Precondition: shuffle must not be nil.
func NewPiles(deck []*Card, shuffle rng.Source) *Piles {
	draw := make([]*Card, len(deck))
	copy(draw, deck)
	rng.JavaShuffle(shuffle, draw)
	sort.SliceStable(draw, func(i, j int) bool {
		return !draw[i].Def.Innate && draw[j].Def.Innate
	})
	return &Piles{draw: draw, shuffle: shuffle}
}

// DrawOne moves the top draw card into hand.
//
// When the draw pile is empty and the discard pile is not, the discard pile
// is shuffled and becomes the draw pile first.
//
// Postcondition: ok is false when the hand is full or both piles are empty.
func (p *Piles) DrawOne() (d Drawn, ok bool) {
	if len(p.hand) >= HandLimit {
		return Drawn{}, false
	}
	if len(p.draw) == 0 {
		if len(p.discard) == 0 {
			return Drawn{}, false
		}
		p.Reshuffle()
		d.Reshuffled = true
	}
	c := p.draw[len(p.draw)-1]
	p.draw = p.draw[:len(p.draw)-1]
	p.hand = append(p.hand, c)
	d.Card = c
	d.HandIndex = len(p.hand) - 1
	return d, true
}

// Reshuffle shuffles the discard pile under the draw pile.
func (p *Piles) Reshuffle() {
	rng.JavaShuffle(p.shuffle, p.discard)
	p.draw = append(p.discard, p.draw...)
	p.discard = nil
}

// TakeFromHand removes and returns the card at idx.
//
// Precondition: 0 <= idx < HandLen().
func (p *Piles) TakeFromHand(idx int) *Card {
	c := p.hand[idx]
	p.hand = append(p.hand[:idx], p.hand[idx+1:]...)
	return c
}

// Discard places c on the discard pile.
func (p *Piles) Discard(c *Card) { p.discard = append(p.discard, c) }

// Exhaust places c on the exhaust pile.
func (p *Piles) Exhaust(c *Card) { p.exhaust = append(p.exhaust, c) }

// AddToDiscard appends new cards to the discard pile.
func (p *Piles) AddToDiscard(cards ...*Card) { p.discard = append(p.discard, cards...) }

// AddToHand places c in hand, or on the discard pile when the hand is full.
//
// Postcondition: Returns true iff c went to the hand.
func (p *Piles) AddToHand(c *Card) bool {
	if len(p.hand) >= HandLimit {
		p.Discard(c)
		return false
	}
	p.hand = append(p.hand, c)
	return true
}

// DiscardHand empties the hand from the last card to the first. Ethereal
// cards are exhausted, everything else is discarded.
//
// Postcondition: The hand is empty. Returns the exhausted cards.
func (p *Piles) DiscardHand() (exhausted []*Card) {
	for i := len(p.hand) - 1; i >= 0; i-- {
		c := p.hand[i]
		if c.Def.Ethereal {
			p.Exhaust(c)
			exhausted = append(exhausted, c)
			continue
		}
		p.Discard(c)
	}
	p.hand = p.hand[:0]
	return exhausted
}

// Hand returns a copy of the hand.
func (p *Piles) Hand() []*Card { return clone(p.hand) }

// HandLen returns the number of cards in hand.
func (p *Piles) HandLen() int { return len(p.hand) }

// InHand returns the card at idx without removing it.
//
// Precondition: 0 <= idx < HandLen().
func (p *Piles) InHand(idx int) *Card { return p.hand[idx] }

// DrawPile returns a copy of the draw pile, bottom first.
func (p *Piles) DrawPile() []*Card { return clone(p.draw) }

// DiscardPile returns a copy of the discard pile, bottom first.
func (p *Piles) DiscardPile() []*Card { return clone(p.discard) }

// ExhaustPile returns a copy of the exhaust pile.
func (p *Piles) ExhaustPile() []*Card { return clone(p.exhaust) }

// Total returns the number of cards across every pile.
func (p *Piles) Total() int {
	return len(p.hand) + len(p.draw) + len(p.discard) + len(p.exhaust)
}

func clone(cards []*Card) []*Card {
	out := make([]*Card, len(cards))
	copy(out, cards)
	return out
}
