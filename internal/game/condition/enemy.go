package condition

import "fmt"

// Enemy is one condition held by an enemy.
//
// JustApplied is only meaningful for Ritual: it suppresses strength accrual
// on the boundary of the turn the condition was granted.
type Enemy struct {
	Kind        EnemyKind
	Amount      int
	JustApplied bool
}

// NewEnemy returns an enemy condition with a single payload.
func NewEnemy(kind EnemyKind, amount int) Enemy {
	return Enemy{Kind: kind, Amount: amount}
}

// String renders the condition for logs.
func (c Enemy) String() string {
	if c.JustApplied {
		return fmt.Sprintf("%s(%d,new)", c.Kind, c.Amount)
	}
	return fmt.Sprintf("%s(%d)", c.Kind, c.Amount)
}

// Merge folds incoming into c when they share a kind.
//
// Postcondition: Returns true iff incoming was absorbed. Payloads sum;
// Ritual keeps JustApplied if either side carries it. SporeCloud keeps
// its payload.
func (c *Enemy) Merge(incoming Enemy) bool {
	if c.Kind != incoming.Kind {
		return false
	}
	switch incoming.Kind {
	case EnemyRitual:
		c.Amount += incoming.Amount
		c.JustApplied = c.JustApplied || incoming.JustApplied
	case EnemySporeCloud:
	default:
		c.Amount += incoming.Amount
	}
	return true
}

// StartTurn is a no-op boundary for every enemy kind.
func (c *Enemy) StartTurn() bool { return true }

// EndTurn advances c across the end of the enemies' turn.
//
// Postcondition: Returns true iff c remains active.
func (c *Enemy) EndTurn() bool {
	switch c.Kind {
	case EnemyRitual:
		c.JustApplied = false
		return true
	case EnemyStrengthLossThisTurn:
		return false
	case EnemyVulnerable, EnemyWeak:
		c.Amount = max(c.Amount-1, 0)
		return c.Amount > 0
	default:
		return true
	}
}

func (c Enemy) endTriggers() []Trigger {
	switch c.Kind {
	case EnemyRitual:
		if c.JustApplied {
			return nil
		}
		return []Trigger{{Kind: TriggerGainStrength, Amount: c.Amount, Source: c.Kind.String()}}
	case EnemyStrengthLossThisTurn:
		return []Trigger{{Kind: TriggerGainStrength, Amount: c.Amount, Source: c.Kind.String()}}
	default:
		return nil
	}
}

// EnemySet is the ordered list of conditions held by one enemy.
// It is not safe for concurrent use.
type EnemySet struct {
	list []Enemy
}

// NewEnemySet returns a set holding initial, merged as if applied in order.
func NewEnemySet(initial ...Enemy) *EnemySet {
	s := &EnemySet{}
	for _, c := range initial {
		s.Apply(c)
	}
	return s
}

// Apply merges c into an existing entry of its kind or appends it.
//
// Postcondition: At most one entry per kind exists. Returns true iff c was merged.
func (s *EnemySet) Apply(c Enemy) bool {
	for i := range s.list {
		if s.list[i].Merge(c) {
			return true
		}
	}
	s.list = append(s.list, c)
	return false
}

// Has reports whether an entry of kind is held.
func (s *EnemySet) Has(kind EnemyKind) bool {
	_, ok := s.Get(kind)
	return ok
}

// Get returns the entry of kind.
func (s *EnemySet) Get(kind EnemyKind) (Enemy, bool) {
	for _, c := range s.list {
		if c.Kind == kind {
			return c, true
		}
	}
	return Enemy{}, false
}

// Amount returns the payload of kind, or zero when absent.
func (s *EnemySet) Amount(kind EnemyKind) int {
	c, _ := s.Get(kind)
	return c.Amount
}

// Remove drops the entry of kind.
//
// Postcondition: Returns the removed entry and true, or false when absent.
func (s *EnemySet) Remove(kind EnemyKind) (Enemy, bool) {
	for i, c := range s.list {
		if c.Kind == kind {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return c, true
		}
	}
	return Enemy{}, false
}

// Len returns the number of entries.
func (s *EnemySet) Len() int { return len(s.list) }

// All returns a copy of the entries in application order.
func (s *EnemySet) All() []Enemy {
	out := make([]Enemy, len(s.list))
	copy(out, s.list)
	return out
}

// StartTurn applies the start-of-turn boundary.
func (s *EnemySet) StartTurn() []Trigger {
	kept := s.list[:0]
	for _, c := range s.list {
		if c.StartTurn() {
			kept = append(kept, c)
		}
	}
	s.list = kept
	return nil
}

// EndTurn applies end-of-turn decay and returns the triggers it fired.
//
// Postcondition: Entries whose counters reached zero are removed in the same step.
func (s *EnemySet) EndTurn() []Trigger {
	var triggers []Trigger
	kept := s.list[:0]
	for _, c := range s.list {
		triggers = append(triggers, c.endTriggers()...)
		if c.EndTurn() {
			kept = append(kept, c)
		}
	}
	s.list = kept
	return triggers
}
