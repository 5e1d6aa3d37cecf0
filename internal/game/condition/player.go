package condition

import "fmt"

// Player is one condition held by the player.
//
// Amount is the kind's primary payload: a stack count, a turn counter, a
// block or damage value. Damage is the secondary payload used by Combust
// (damage to enemies), Panache and TheBomb.
type Player struct {
	Kind   PlayerKind
	Amount int
	Damage int
}

// NewPlayer returns a player condition with a single payload.
func NewPlayer(kind PlayerKind, amount int) Player {
	return Player{Kind: kind, Amount: amount}
}

// String renders the condition for logs.
func (c Player) String() string {
	if c.Damage != 0 {
		return fmt.Sprintf("%s(%d,%d)", c.Kind, c.Amount, c.Damage)
	}
	return fmt.Sprintf("%s(%d)", c.Kind, c.Amount)
}

// Merge folds incoming into c when they share a kind.
//
// Postcondition: Returns true iff incoming was absorbed. TheBomb never
// merges; flag kinds report true without changing c; Panache keeps the
// larger stack count and sums damage; all other kinds sum their payloads.
func (c *Player) Merge(incoming Player) bool {
	if c.Kind != incoming.Kind {
		return false
	}
	switch incoming.Kind {
	case PlayerTheBomb:
		return false
	case PlayerBarricade, PlayerConfused, PlayerCorruption, PlayerNoDraw:
		return true
	case PlayerPanache:
		c.Amount = max(c.Amount, incoming.Amount)
		c.Damage += incoming.Damage
		return true
	case PlayerCombust:
		c.Amount += incoming.Amount
		c.Damage += incoming.Damage
		return true
	default:
		c.Amount += incoming.Amount
		return true
	}
}

// StartTurn advances c across the start of the player's turn.
//
// Postcondition: Returns true iff c remains active.
func (c *Player) StartTurn() bool {
	switch c.Kind {
	case PlayerFlameBarrier:
		return false
	default:
		return true
	}
}

// EndTurn advances c across the end of the player's turn.
//
// Postcondition: Returns true iff c remains active. Turn counters are
// decremented and expire at zero; this-turn-only kinds always expire.
func (c *Player) EndTurn() bool {
	switch c.Kind {
	case PlayerDoubleTap, PlayerNoDraw, PlayerRage, PlayerStrengthDown:
		return false
	case PlayerFrail, PlayerIntangible, PlayerNoBlock, PlayerVulnerable, PlayerWeak, PlayerTheBomb:
		c.Amount = max(c.Amount-1, 0)
		return c.Amount > 0
	case PlayerPanache:
		c.Amount = 5
		return true
	default:
		return true
	}
}

// startTriggers are the effects c fires as the player's turn starts, before
// decay is applied.
func (c Player) startTriggers() []Trigger {
	switch c.Kind {
	case PlayerDemonForm:
		return []Trigger{{Kind: TriggerGainStrength, Amount: c.Amount, Source: c.Kind.String()}}
	case PlayerBerserk:
		return []Trigger{{Kind: TriggerGainEnergy, Amount: c.Amount, Source: c.Kind.String()}}
	case PlayerBrutality:
		return []Trigger{
			{Kind: TriggerLoseHP, Amount: 1, Source: c.Kind.String()},
			{Kind: TriggerDrawCards, Amount: c.Amount, Source: c.Kind.String()},
		}
	default:
		return nil
	}
}

// endTriggers are the effects c fires as the player's turn ends. after is the
// condition once decay has been applied.
func (c Player) endTriggers(after Player) []Trigger {
	switch c.Kind {
	case PlayerMetallicize:
		return []Trigger{{Kind: TriggerGainBlock, Amount: c.Amount, Source: c.Kind.String()}}
	case PlayerCombust:
		return []Trigger{
			{Kind: TriggerLoseHP, Amount: c.Amount, Source: c.Kind.String()},
			{Kind: TriggerDamageAllEnemies, Amount: c.Damage, Source: c.Kind.String()},
		}
	case PlayerStrengthDown:
		return []Trigger{{Kind: TriggerLoseStrength, Amount: c.Amount, Source: c.Kind.String()}}
	case PlayerTheBomb:
		if after.Amount == 0 {
			return []Trigger{{Kind: TriggerDamageAllEnemies, Amount: c.Damage, Source: c.Kind.String()}}
		}
		return nil
	default:
		return nil
	}
}

// PlayerSet is the ordered list of conditions held by the player.
// It is not safe for concurrent use.
type PlayerSet struct {
	list []Player
}

// NewPlayerSet returns an empty set.
func NewPlayerSet() *PlayerSet {
	return &PlayerSet{}
}

// Apply merges c into an existing entry of its kind or appends it.
//
// Postcondition: At most one entry per kind exists, except TheBomb.
// Returns true iff c was merged.
func (s *PlayerSet) Apply(c Player) bool {
	for i := range s.list {
		if s.list[i].Merge(c) {
			return true
		}
	}
	s.list = append(s.list, c)
	return false
}

// Has reports whether an entry of kind is held.
func (s *PlayerSet) Has(kind PlayerKind) bool {
	_, ok := s.Get(kind)
	return ok
}

// Get returns the first entry of kind.
func (s *PlayerSet) Get(kind PlayerKind) (Player, bool) {
	for _, c := range s.list {
		if c.Kind == kind {
			return c, true
		}
	}
	return Player{}, false
}

// Amount returns the payload of kind, or zero when absent.
func (s *PlayerSet) Amount(kind PlayerKind) int {
	c, _ := s.Get(kind)
	return c.Amount
}

// Consume reduces the first entry of kind by n, removing it at zero.
//
// Postcondition: Returns false iff no entry of kind was held.
func (s *PlayerSet) Consume(kind PlayerKind, n int) bool {
	for i := range s.list {
		if s.list[i].Kind != kind {
			continue
		}
		s.list[i].Amount -= n
		if s.list[i].Amount <= 0 {
			s.list = append(s.list[:i], s.list[i+1:]...)
		}
		return true
	}
	return false
}

// Update replaces the first entry of kind with fn's result.
func (s *PlayerSet) Update(kind PlayerKind, fn func(Player) Player) bool {
	for i := range s.list {
		if s.list[i].Kind == kind {
			s.list[i] = fn(s.list[i])
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (s *PlayerSet) Len() int { return len(s.list) }

// All returns a copy of the entries in application order.
func (s *PlayerSet) All() []Player {
	out := make([]Player, len(s.list))
	copy(out, s.list)
	return out
}

// Clear removes every entry.
func (s *PlayerSet) Clear() { s.list = nil }

// StartTurn fires start-of-turn triggers then drops expired entries.
func (s *PlayerSet) StartTurn() []Trigger {
	var triggers []Trigger
	kept := s.list[:0]
	for _, c := range s.list {
		triggers = append(triggers, c.startTriggers()...)
		if c.StartTurn() {
			kept = append(kept, c)
		}
	}
	s.list = kept
	return triggers
}

// EndTurn applies end-of-turn decay and returns the triggers it fired.
//
// Postcondition: Entries whose counters reached zero are removed in the same step.
func (s *PlayerSet) EndTurn() []Trigger {
	var triggers []Trigger
	kept := s.list[:0]
	for _, c := range s.list {
		before := c
		keep := c.EndTurn()
		triggers = append(triggers, before.endTriggers(c)...)
		if keep {
			kept = append(kept, c)
		}
	}
	s.list = kept
	return triggers
}
