package enemy

import (
	"fmt"

	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/damage"
	"github.com/cory-johannsen/spiresim/internal/game/rng"
)

// Enemy is the combat state of one enemy in a party slot.
//
// Next is the move the enemy will make on its coming turn and RunLength the
// number of consecutive turns Next has been chosen, counting Next itself.
type Enemy struct {
	Stats
	HP         int
	Block      int
	Strength   int
	Conditions *condition.EnemySet
	Next       Move
	RunLength  int
	policy     Policy
}

// IsDead reports whether the enemy's health has reached zero.
func (e *Enemy) IsDead() bool { return e.HP <= 0 }

// Action returns the action queued for the enemy's coming turn.
func (e *Enemy) Action() Action { return ActionFor(e.Next, e.Stats) }

// Advance consumes the queued move and chooses the following one.
//
// Precondition: e must have been created by Registry.Spawn.
// Postcondition: Returns the move that was queued. RunLength is incremented
// when the new move repeats the old one and reset to 1 otherwise.
func (e *Enemy) Advance(src rng.Source) Move {
	current := e.Next
	next := e.policy(src, current, e.RunLength)
	if next == current {
		e.RunLength++
	} else {
		e.RunLength = 1
	}
	e.Next = next
	return current
}

// AsAttacker is the snapshot used when the enemy deals damage.
func (e *Enemy) AsAttacker() damage.Attacker {
	return damage.Attacker{Strength: e.Strength, Weak: e.Conditions.IsWeak()}
}

// AsDefender is the snapshot used when the enemy receives damage.
func (e *Enemy) AsDefender() damage.Defender {
	return damage.Defender{Vulnerable: e.Conditions.IsVulnerable()}
}

// Status is a read-only snapshot of an enemy for notifications.
type Status struct {
	Archetype  Archetype
	HP         int
	HPMax      int
	Block      int
	Strength   int
	Conditions []condition.Enemy
	Intent     Intent
}

// String renders the status for logs and console output.
func (s Status) String() string {
	return fmt.Sprintf("%s hp=%d/%d block=%d str=%d conditions=%v intent=%s",
		s.Archetype, s.HP, s.HPMax, s.Block, s.Strength, s.Conditions, s.Intent)
}

// Status snapshots e.
func (e *Enemy) Status() Status {
	return Status{
		Archetype:  e.Archetype,
		HP:         e.HP,
		HPMax:      e.HPMax,
		Block:      e.Block,
		Strength:   e.Strength,
		Conditions: e.Conditions.All(),
		Intent:     e.Action().Intent,
	}
}
