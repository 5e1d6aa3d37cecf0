package combat

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/spiresim/internal/game/card"
	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/damage"
	"github.com/cory-johannsen/spiresim/internal/game/effect"
	"github.com/cory-johannsen/spiresim/internal/game/enemy"
	"github.com/cory-johannsen/spiresim/internal/game/rng"
	"github.com/cory-johannsen/spiresim/internal/interaction"
)

// State is the mutable state of one combat.
type State struct {
	Player     Player
	Conditions *condition.PlayerSet
	Piles      *card.Piles
	Party      *enemy.Party
}

// ShouldEnd reports whether the player is dead or every enemy slot is empty.
func (s *State) ShouldEnd() bool {
	return s.Player.IsDead() || s.Party.IsEmpty()
}

const noTarget = -1

// Resolver applies queued effects to a State.
//
// Invariant: while an entry is being resolved only reactions are queued,
// and always at the front.
type Resolver struct {
	state          *State
	queue          Queue
	target         int
	misc           rng.Source
	cardRandomizer rng.Source
	cards          *card.Registry
	ia             interaction.Interaction
	logger         *zap.Logger
}

// NewResolver creates a Resolver over state.
//
// Precondition: state, cards and ia must not be nil; streams.Misc and
// streams.CardRandomizer must not be nil.
// Postcondition: The resolver has no current target. A nil logger is
// replaced with a no-op logger.
func NewResolver(state *State, cards *card.Registry, streams rng.Streams, ia interaction.Interaction, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		state:          state,
		target:         noTarget,
		misc:           streams.Misc,
		cardRandomizer: streams.CardRandomizer,
		cards:          cards,
		ia:             ia,
		logger:         logger,
	}
}

// Queue returns the resolver's effect queue.
func (r *Resolver) Queue() *Queue { return &r.queue }

// SetTarget makes slot the current enemy.
func (r *Resolver) SetTarget(slot int) { r.target = slot }

// ClearTarget forgets the current enemy.
func (r *Resolver) ClearTarget() { r.target = noTarget }

// Target returns the current enemy slot and whether one is set.
func (r *Resolver) Target() (int, bool) { return r.target, r.target != noTarget }

// Drain resolves queued entries front to back.
//
// Postcondition: Returns true, with the queue emptied, as soon as the
// combat should end. On error the queue is emptied.
func (r *Resolver) Drain() (bool, error) {
	for {
		if r.state.ShouldEnd() {
			r.queue.Clear()
			return true, nil
		}
		e, ok := r.queue.PopFront()
		if !ok {
			return false, nil
		}
		if err := r.Resolve(e); err != nil {
			r.queue.Clear()
			return false, err
		}
	}
}

// drainFront resolves the reactions queued ahead of the last base entries.
func (r *Resolver) drainFront(base int) error {
	for r.queue.Len() > base && !r.state.ShouldEnd() {
		e, _ := r.queue.PopFront()
		if err := r.Resolve(e); err != nil {
			return err
		}
	}
	return nil
}

// Resolve applies one entry, then clears every dead enemy from the party.
//
// Postcondition: Returns an error wrapping ErrUnimplemented for an operation
// with no handler, or card.ErrUnknownCard when a created card is missing.
// Panics with InvariantError when a targeted effect has no target.
func (r *Resolver) Resolve(e Entry) error {
	r.logger.Debug("resolving effect",
		zap.Stringer("entry", e),
		zap.Int("target", r.target),
	)
	var err error
	if e.Origin.IsEnemy() {
		err = r.resolveEnemy(e)
	} else {
		err = r.resolvePlayer(e.Player)
	}
	if err != nil {
		return err
	}
	r.removeDead()
	return nil
}

func (r *Resolver) resolvePlayer(p effect.Player) error {
	pl := &r.state.Player
	conds := r.state.Conditions
	switch p.Op {
	case effect.OpDeal, effect.OpInflict:
		return r.toTargets(p)
	case effect.OpApply:
		r.applyToPlayer(p.Condition)
	case effect.OpGainBlock:
		if conds.CanGainBlock() {
			r.gainBlock(damage.Block(p.Amount, pl.Dexterity, conds.IsFrail()))
		}
	case effect.OpGainEnergy:
		pl.Energy += p.Amount
		r.ia.Notify(interaction.Energy(pl.Energy))
	case effect.OpGainStrength:
		pl.Strength += p.Amount
		r.ia.Notify(interaction.Strength(pl.Strength))
	case effect.OpLoseStrength:
		pl.Strength -= p.Amount
		r.ia.Notify(interaction.Strength(pl.Strength))
	case effect.OpGainDexterity:
		pl.Dexterity += p.Amount
		r.ia.Notify(interaction.Dexterity(pl.Dexterity))
	case effect.OpLoseHP:
		r.damagePlayer(damage.HPLoss, p.Amount, false)
	case effect.OpHeal:
		r.heal(p.Amount)
	case effect.OpDraw:
		r.draw(p.Amount)
	case effect.OpAddToDiscard:
		return r.createCards(p.Card, p.Amount, false)
	case effect.OpAddToHand:
		return r.createCards(p.Card, p.Amount, true)
	case effect.OpTakeDamage:
		amount := damage.Calculate(p.Damage, damage.Attacker{}, pl.AsDefender(conds))
		r.damagePlayer(p.Damage.Kind, amount, false)
	default:
		return fmt.Errorf("player effect %s: %w", p.Op, ErrUnimplemented)
	}
	return nil
}

// toTargets resolves a targeted player effect against the enemies its
// target selects.
func (r *Resolver) toTargets(p effect.Player) error {
	switch p.Target {
	case effect.TargetSingle:
		if r.target == noTarget {
			invariant("resolve", "%s has no target", p)
		}
		r.toEnemy(r.target, p)
	case effect.TargetRandom:
		living := r.state.Party.Living()
		if len(living) == 0 {
			return nil
		}
		saved := r.target
		r.target = rng.Pick(r.misc, living)
		r.toEnemy(r.target, p)
		r.target = saved
	case effect.TargetAll:
		saved := r.target
		for slot := 0; slot < enemy.MaxSlots; slot++ {
			if r.state.Party[slot] == nil {
				continue
			}
			r.target = slot
			base := r.queue.Len()
			r.toEnemy(slot, p)
			r.removeDead()
			if err := r.drainFront(base); err != nil {
				return err
			}
			if r.state.ShouldEnd() {
				break
			}
		}
		r.target = saved
	default:
		invariant("resolve", "%s cannot target %s", p.Op, p.Target)
	}
	return nil
}

// toEnemy applies p to the enemy in slot. An empty slot means the enemy died
// earlier in the chain and the effect fizzles.
func (r *Resolver) toEnemy(slot int, p effect.Player) {
	e := r.state.Party[slot]
	if e == nil {
		return
	}
	switch p.Op {
	case effect.OpDeal:
		amount := damage.Calculate(p.Damage, r.state.Player.AsAttacker(r.state.Conditions), e.AsDefender())
		r.damageEnemy(slot, e, p.Damage.Kind, amount)
	case effect.OpInflict:
		e.Conditions.Apply(p.Debuff)
		r.ia.Notify(interaction.EnemyStatus(slot, e.Status()))
	}
}

func (r *Resolver) resolveEnemy(entry Entry) error {
	var src *enemy.Enemy
	if entry.Slot >= 0 && entry.Slot < enemy.MaxSlots {
		src = r.state.Party[entry.Slot]
	}
	fx := entry.Enemy
	pl := &r.state.Player
	switch fx.Op {
	case effect.EnemyOpDeal:
		var atk damage.Attacker
		if src != nil {
			atk = src.AsAttacker()
		}
		amount := damage.Calculate(fx.Damage, atk, pl.AsDefender(r.state.Conditions))
		if r.state.Conditions.Has(condition.PlayerIntangible) {
			amount = min(amount, 1)
		}
		r.damagePlayer(fx.Damage.Kind, amount, true)
	case effect.EnemyOpInflict:
		r.applyToPlayer(fx.Debuff)
	case effect.EnemyOpApply:
		if src != nil {
			src.Conditions.Apply(fx.Condition)
			r.ia.Notify(interaction.EnemyStatus(entry.Slot, src.Status()))
		}
	case effect.EnemyOpGainBlock:
		if src != nil {
			src.Block += damage.Block(fx.Amount, 0, false)
		}
	case effect.EnemyOpGainStrength:
		if src != nil {
			src.Strength += fx.Amount
		}
	case effect.EnemyOpAddToDiscard:
		return r.createCards(fx.Card, fx.Amount, false)
	default:
		return fmt.Errorf("enemy effect %s: %w", fx.Op, ErrUnimplemented)
	}
	return nil
}

// damagePlayer absorbs amount with the player's block and removes the rest
// from health. Attacks made by an enemy provoke thorns retaliation against
// the current enemy.
func (r *Resolver) damagePlayer(kind damage.Kind, amount int, byEnemy bool) {
	pl := &r.state.Player
	ab := damage.Absorb(kind, amount, pl.Block)
	if ab.Blocked > 0 {
		pl.Block = ab.BlockLeft
		r.ia.Notify(interaction.DamageBlocked(ab.Blocked))
		r.ia.Notify(interaction.Block(pl.Block))
	}
	if byEnemy && kind.IsAttack() && r.target != noTarget {
		if ret := r.state.Conditions.Retaliation(); ret > 0 {
			r.queue.PushFront(FromPlayerState(effect.DealTo(effect.TargetSingle, damage.NonAttack(ret))))
		}
	}
	if ab.HPLost > 0 {
		pl.HP = max(pl.HP-ab.HPLost, 0)
		r.ia.Notify(interaction.DamageTaken(ab.HPLost))
		r.ia.Notify(interaction.Health(pl.HP, pl.HPMax))
	}
}

// damageEnemy absorbs amount with the enemy's block and removes the rest
// from its health, queueing thorns and granting curl-up block.
func (r *Resolver) damageEnemy(slot int, e *enemy.Enemy, kind damage.Kind, amount int) {
	if kind.IsAttack() {
		if thorns := e.Conditions.Amount(condition.EnemyThorns); thorns > 0 {
			r.queue.PushFront(FromEnemyState(slot, effect.EnemyDeal(damage.NonAttack(thorns))))
		}
	}
	ab := damage.Absorb(kind, amount, e.Block)
	e.Block = ab.BlockLeft
	e.HP = max(e.HP-ab.HPLost, 0)
	if kind.IsAttack() && ab.HPLost > 0 && !e.IsDead() {
		if curl, ok := e.Conditions.Remove(condition.EnemyCurlUp); ok {
			e.Block += curl.Amount
		}
	}
	r.ia.Notify(interaction.EnemyStatus(slot, e.Status()))
}

// removeDead clears every slot whose enemy has no health left, queueing
// its death reactions.
func (r *Resolver) removeDead() {
	for slot, e := range r.state.Party {
		if e == nil || !e.IsDead() {
			continue
		}
		if spores := e.Conditions.Amount(condition.EnemySporeCloud); spores > 0 {
			r.queue.PushFront(FromEnemyState(slot, effect.EnemyInflict(
				condition.NewPlayer(condition.PlayerVulnerable, spores))))
		}
		r.logger.Debug("enemy died", zap.Int("slot", slot), zap.Stringer("archetype", e.Archetype))
		r.ia.Notify(interaction.EnemyDied(slot, e.Status()))
		r.state.Party[slot] = nil
	}
}

// applyToPlayer grants c, unless it is a debuff and an Artifact charge
// negates it.
func (r *Resolver) applyToPlayer(c condition.Player) {
	conds := r.state.Conditions
	if !c.Kind.IsDebuff() || !conds.Consume(condition.PlayerArtifact, 1) {
		conds.Apply(c)
	}
	r.ia.Notify(interaction.Conditions(conds.All()))
}

// gainBlock adds n block with no further modifiers.
func (r *Resolver) gainBlock(n int) {
	if n <= 0 {
		return
	}
	pl := &r.state.Player
	pl.Block += n
	r.ia.Notify(interaction.BlockGained(n))
	r.ia.Notify(interaction.Block(pl.Block))
	if j := r.state.Conditions.Amount(condition.PlayerJuggernaut); j > 0 {
		r.queue.PushFront(FromPlayerState(effect.DealTo(effect.TargetRandom, damage.NonAttack(j))))
	}
}

func (r *Resolver) heal(n int) {
	pl := &r.state.Player
	pl.HP = min(pl.HP+n, pl.HPMax)
	r.ia.Notify(interaction.Health(pl.HP, pl.HPMax))
}

// draw draws up to n cards, stopping early when no card can be drawn.
func (r *Resolver) draw(n int) {
	for i := 0; i < n; i++ {
		if !r.drawOne() {
			return
		}
	}
}

func (r *Resolver) drawOne() bool {
	conds := r.state.Conditions
	if !conds.CanDraw() {
		return false
	}
	d, ok := r.state.Piles.DrawOne()
	if d.Reshuffled {
		r.ia.Notify(interaction.ShufflingDiscardPileIntoDrawPile())
	}
	if !ok {
		return false
	}
	if conds.Has(condition.PlayerConfused) {
		d.Card.Cost = rng.IntRange(r.cardRandomizer, 0, 3)
	}
	r.ia.Notify(interaction.CardDrawn(d.HandIndex, d.Card.Def.Name, d.Card.Cost))
	if d.Card.Def.Type == card.TypeStatus {
		if n := conds.Amount(condition.PlayerEvolve); n > 0 {
			r.draw(n)
		}
	}
	return true
}

// exhaust moves c to the exhaust pile and fires exhaust reactions.
func (r *Resolver) exhaust(c *card.Card) {
	r.state.Piles.Exhaust(c)
	r.onExhausted(c)
}

func (r *Resolver) onExhausted(c *card.Card) {
	r.ia.Notify(interaction.CardExhausted(c.Def.Name))
	conds := r.state.Conditions
	if n := conds.Amount(condition.PlayerFeelNoPain); n > 0 {
		r.gainBlock(n)
	}
	if n := conds.Amount(condition.PlayerDarkEmbrace); n > 0 {
		r.draw(n)
	}
}

// createCards makes n new copies of card id in the hand or discard pile.
// Copies that do not fit in hand go to the discard pile.
func (r *Resolver) createCards(id string, n int, toHand bool) error {
	def, err := r.cards.Get(id)
	if err != nil {
		return err
	}
	var discarded []string
	for i := 0; i < n; i++ {
		c := card.New(def)
		if toHand {
			if r.state.Piles.AddToHand(c) {
				r.ia.Notify(interaction.CardDrawn(r.state.Piles.HandLen()-1, def.Name, c.Cost))
				continue
			}
		} else {
			r.state.Piles.AddToDiscard(c)
		}
		discarded = append(discarded, def.Name)
	}
	if len(discarded) > 0 {
		r.ia.Notify(interaction.AddToDiscardPile(discarded))
	}
	return nil
}

// enact queues the player effects fired by condition triggers.
func (r *Resolver) enact(triggers []condition.Trigger) {
	for _, t := range triggers {
		r.logger.Debug("condition trigger",
			zap.String("source", t.Source),
			zap.Stringer("kind", t.Kind),
			zap.Int("amount", t.Amount),
		)
		switch t.Kind {
		case condition.TriggerGainStrength:
			r.queue.PushBack(FromPlayerState(effect.GainStrength(t.Amount)))
		case condition.TriggerLoseStrength:
			r.queue.PushBack(FromPlayerState(effect.LoseStrength(t.Amount)))
		case condition.TriggerGainBlock:
			r.gainBlock(t.Amount)
		case condition.TriggerGainEnergy:
			r.queue.PushBack(FromPlayerState(effect.GainEnergy(t.Amount)))
		case condition.TriggerLoseHP:
			r.queue.PushBack(FromPlayerState(effect.LoseHP(t.Amount)))
		case condition.TriggerDrawCards:
			r.queue.PushBack(FromPlayerState(effect.Draw(t.Amount)))
		case condition.TriggerDamageAllEnemies:
			r.queue.PushBack(FromPlayerState(effect.DealTo(effect.TargetAll, damage.NonAttack(t.Amount))))
		}
	}
}
