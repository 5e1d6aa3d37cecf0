package combat

import (
	"fmt"

	"github.com/cory-johannsen/spiresim/internal/game/effect"
)

// Origin records where a queued effect came from.
type Origin int

const (
	// OriginCard is an effect of a card being played.
	OriginCard Origin = iota + 1
	// OriginEnemyPlaybook is an effect of an enemy's chosen move.
	OriginEnemyPlaybook
	// OriginEnemyState is a reaction produced by an enemy's conditions.
	OriginEnemyState
	// OriginPlayerState is a reaction produced by the player's conditions or relics.
	OriginPlayerState
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case OriginCard:
		return "card"
	case OriginEnemyPlaybook:
		return "enemy_playbook"
	case OriginEnemyState:
		return "enemy_state"
	case OriginPlayerState:
		return "player_state"
	default:
		return "unknown"
	}
}

// IsEnemy reports whether entries of o carry an enemy effect.
func (o Origin) IsEnemy() bool { return o == OriginEnemyPlaybook || o == OriginEnemyState }

// Entry is one queued effect. Player is set for card and player-state
// origins; Enemy and Slot are set for enemy origins, Slot naming the enemy
// that produced the effect.
type Entry struct {
	Origin Origin
	Player effect.Player
	Enemy  effect.Enemy
	Slot   int
}

// String renders the entry for logs.
func (e Entry) String() string {
	if e.Origin.IsEnemy() {
		return fmt.Sprintf("%s[%d] %s", e.Origin, e.Slot, e.Enemy)
	}
	return fmt.Sprintf("%s %s", e.Origin, e.Player)
}

// FromCard wraps a card effect.
func FromCard(p effect.Player) Entry { return Entry{Origin: OriginCard, Player: p} }

// FromPlayerState wraps a reaction of the player's conditions.
func FromPlayerState(p effect.Player) Entry { return Entry{Origin: OriginPlayerState, Player: p} }

// FromEnemyPlaybook wraps an effect of the move made by the enemy in slot.
func FromEnemyPlaybook(slot int, e effect.Enemy) Entry {
	return Entry{Origin: OriginEnemyPlaybook, Enemy: e, Slot: slot}
}

// FromEnemyState wraps a reaction of the conditions of the enemy in slot.
func FromEnemyState(slot int, e effect.Enemy) Entry {
	return Entry{Origin: OriginEnemyState, Enemy: e, Slot: slot}
}

// Queue is a double-ended queue of effects. Reactions are pushed to the
// front so they resolve before the rest of the chain that provoked them.
type Queue struct {
	items []Entry
}

// PushBack appends e.
func (q *Queue) PushBack(e Entry) { q.items = append(q.items, e) }

// PushFront prepends e.
func (q *Queue) PushFront(e Entry) {
	q.items = append(q.items, Entry{})
	copy(q.items[1:], q.items)
	q.items[0] = e
}

// PopFront removes and returns the first entry.
//
// Postcondition: ok is false iff the queue was empty.
func (q *Queue) PopFront() (e Entry, ok bool) {
	if len(q.items) == 0 {
		return Entry{}, false
	}
	e = q.items[0]
	q.items[0] = Entry{}
	q.items = q.items[1:]
	return e, true
}

// Len returns the number of queued entries.
func (q *Queue) Len() int { return len(q.items) }

// Clear drops every entry.
func (q *Queue) Clear() { q.items = nil }

// DropMove removes the remaining playbook entries of the enemy in slot.
// Reactions of any origin stay queued.
func (q *Queue) DropMove(slot int) {
	kept := q.items[:0]
	for _, e := range q.items {
		if e.Origin == OriginEnemyPlaybook && e.Slot == slot {
			continue
		}
		kept = append(kept, e)
	}
	clear(q.items[len(kept):])
	q.items = kept
}
