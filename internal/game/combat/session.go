package combat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/cory-johannsen/spiresim/internal/game/card"
	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/enemy"
	"github.com/cory-johannsen/spiresim/internal/game/rng"
	"github.com/cory-johannsen/spiresim/internal/interaction"
)

// ErrAlreadyRun is returned when Run is called on a finished session.
var ErrAlreadyRun = errors.New("combat session already run")

// Outcome is how a combat ended.
type Outcome int

const (
	// OutcomeVictory means every enemy died while the player lived.
	OutcomeVictory Outcome = iota + 1
	// OutcomeDefeat means the player's health reached zero.
	OutcomeDefeat
	// OutcomeTurnLimit means the session stopped after its turn limit.
	OutcomeTurnLimit
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeTurnLimit:
		return "turn_limit"
	default:
		return "unknown"
	}
}

// Result summarizes a finished combat.
type Result struct {
	Outcome Outcome
	Turns   int
	HP      int
	HPMax   int
}

// Setup is everything needed to start a combat.
type Setup struct {
	HP    int
	HPMax int
	// Deck lists card identifiers; each becomes one card in the draw pile.
	Deck   []string
	Relics []Relic
	Party  *enemy.Party
	// Streams must be the streams the party was generated with.
	Streams     rng.Streams
	Cards       *card.Registry
	Interaction interaction.Interaction
	Logger      *zap.Logger
	// MaxTurns stops the combat after that many rounds; zero means no limit.
	MaxTurns int
}

func (s Setup) validate() error {
	var err error
	if s.HPMax <= 0 {
		err = multierr.Append(err, fmt.Errorf("max hp must be positive, got %d", s.HPMax))
	}
	if s.HP <= 0 || s.HP > s.HPMax {
		err = multierr.Append(err, fmt.Errorf("hp %d outside (0, %d]", s.HP, s.HPMax))
	}
	if s.Party == nil || s.Party.IsEmpty() {
		err = multierr.Append(err, errors.New("party has no enemies"))
	}
	if s.Cards == nil {
		err = multierr.Append(err, errors.New("card registry is required"))
	}
	if s.Interaction == nil {
		err = multierr.Append(err, errors.New("interaction is required"))
	}
	if s.Streams.AI == nil || s.Streams.Misc == nil || s.Streams.Shuffle == nil || s.Streams.CardRandomizer == nil {
		err = multierr.Append(err, errors.New("all random streams are required"))
	}
	if s.MaxTurns < 0 {
		err = multierr.Append(err, fmt.Errorf("max turns must not be negative, got %d", s.MaxTurns))
	}
	return err
}

// Session is one combat between the player and an enemy party.
type Session struct {
	ID       uuid.UUID
	state    State
	resolver *Resolver
	relics   map[Relic]bool
	ai       rng.Source
	ia       interaction.Interaction
	logger   *zap.Logger
	maxTurns int
	turn     int
	ran      bool
}

// NewSession prepares a combat from s. The deck is shuffled on the
// shuffle stream immediately.
//
// Postcondition: Returns every setup problem at once, combined with
// multierr. Returns an error wrapping card.ErrUnknownCard for a deck entry
// missing from s.Cards.
func NewSession(s Setup) (*Session, error) {
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid combat setup: %w", err)
	}
	deck, err := s.Cards.Instantiate(s.Deck)
	if err != nil {
		return nil, fmt.Errorf("building deck: %w", err)
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New()
	logger = logger.With(zap.Stringer("combat", id))
	sess := &Session{
		ID: id,
		state: State{
			Player:     Player{HP: s.HP, HPMax: s.HPMax},
			Conditions: condition.NewPlayerSet(),
			Piles:      card.NewPiles(deck, s.Streams.Shuffle),
			Party:      s.Party,
		},
		relics:   make(map[Relic]bool, len(s.Relics)),
		ai:       s.Streams.AI,
		ia:       s.Interaction,
		logger:   logger,
		maxTurns: s.MaxTurns,
	}
	for _, r := range s.Relics {
		sess.relics[r] = true
	}
	sess.resolver = NewResolver(&sess.state, s.Cards, s.Streams, s.Interaction, logger)
	return sess, nil
}

// Player returns a copy of the player's resources.
func (s *Session) Player() Player { return s.state.Player }

// Conditions returns the player's conditions.
func (s *Session) Conditions() *condition.PlayerSet { return s.state.Conditions }

// Piles returns the player's card piles.
func (s *Session) Piles() *card.Piles { return s.state.Piles }

// Party returns the enemy party.
func (s *Session) Party() *enemy.Party { return s.state.Party }

// Turn returns the number of the current or last round, starting at 1.
func (s *Session) Turn() int { return s.turn }

// HasRelic reports whether the player carries r.
func (s *Session) HasRelic(r Relic) bool { return s.relics[r] }

// Run plays the combat to its end.
//
// Precondition: Run has not been called before on s.
// Postcondition: On success the interaction has received EndingCombat.
// Errors from the interaction are returned wrapped; ctx cancellation
// surfaces through the interaction's Prompt.
func (s *Session) Run(ctx context.Context) (Result, error) {
	if s.ran {
		return Result{}, ErrAlreadyRun
	}
	s.ran = true
	s.logger.Info("combat starting",
		zap.Int("hp", s.state.Player.HP),
		zap.Int("hp_max", s.state.Player.HPMax),
		zap.Int("enemies", len(s.state.Party.Living())),
		zap.Int("deck", s.state.Piles.Total()),
	)
	s.start()
	outcome, err := s.loop(ctx)
	if err != nil {
		s.logger.Warn("combat aborted", zap.Int("turn", s.turn), zap.Error(err))
		return Result{}, err
	}
	s.finish(outcome)
	res := Result{Outcome: outcome, Turns: s.turn, HP: s.state.Player.HP, HPMax: s.state.Player.HPMax}
	s.logger.Info("combat ended",
		zap.Stringer("outcome", outcome),
		zap.Int("turns", res.Turns),
		zap.Int("hp", res.HP),
	)
	return res, nil
}

func (s *Session) loop(ctx context.Context) (Outcome, error) {
	for {
		s.turn++
		if err := s.playerTurn(ctx); err != nil {
			return 0, err
		}
		if s.state.ShouldEnd() {
			return s.outcome(), nil
		}
		if err := s.enemyTurn(); err != nil {
			return 0, err
		}
		if s.state.ShouldEnd() {
			return s.outcome(), nil
		}
		if s.maxTurns > 0 && s.turn >= s.maxTurns {
			return OutcomeTurnLimit, nil
		}
	}
}

func (s *Session) outcome() Outcome {
	if s.state.Player.IsDead() {
		return OutcomeDefeat
	}
	return OutcomeVictory
}

func (s *Session) start() {
	if s.relics[RelicSneckoEye] {
		s.state.Conditions.Apply(condition.NewPlayer(condition.PlayerConfused, 1))
	}
	s.ia.Notify(interaction.StartingCombat())
	s.notifyState()
}

func (s *Session) finish(o Outcome) {
	if o == OutcomeVictory && s.relics[RelicBurningBlood] {
		s.resolver.heal(BurningBloodHeal)
	}
	s.ia.Notify(interaction.EndingCombat(o == OutcomeVictory))
}

func (s *Session) notifyState() {
	pl := s.state.Player
	s.ia.Notify(interaction.EnemyParty(s.state.Party.Statuses()))
	s.ia.Notify(interaction.Health(pl.HP, pl.HPMax))
	s.ia.Notify(interaction.Energy(pl.Energy))
	s.ia.Notify(interaction.Strength(pl.Strength))
	s.ia.Notify(interaction.Dexterity(pl.Dexterity))
	s.ia.Notify(interaction.Conditions(s.state.Conditions.All()))
}

func (s *Session) drawCount() int {
	if s.relics[RelicSneckoEye] {
		return CardsPerTurn + SneckoEyeDraw
	}
	return CardsPerTurn
}

// costOf is the energy c costs to play right now.
func (s *Session) costOf(c *card.Card) int {
	if c.Def.Type == card.TypeSkill && s.state.Conditions.Has(condition.PlayerCorruption) {
		return 0
	}
	return c.Cost
}

func (s *Session) playerTurn(ctx context.Context) error {
	r := s.resolver
	pl := &s.state.Player
	conds := s.state.Conditions
	r.ClearTarget()

	triggers := conds.StartTurn()
	s.ia.Notify(interaction.Conditions(conds.All()))
	if !conds.RetainsBlock() && pl.Block > 0 {
		pl.Block = 0
		s.ia.Notify(interaction.Block(0))
	}
	pl.Energy = EnergyPerTurn
	s.ia.Notify(interaction.Energy(pl.Energy))
	r.draw(s.drawCount())
	r.enact(triggers)
	if ended, err := r.Drain(); err != nil || ended {
		return err
	}

	for {
		s.notifyState()
		choice, err := interaction.Ask(ctx, s.ia, interaction.PromptCombatAction, s.actionChoices())
		if err != nil {
			return fmt.Errorf("turn %d: %w", s.turn, err)
		}
		switch choice.Kind {
		case interaction.ChoiceEndTurn:
			return s.endPlayerTurn()
		case interaction.ChoicePlayCard:
			ended, err := s.playCard(ctx, choice.HandIndex)
			if err != nil {
				return fmt.Errorf("turn %d: playing %s: %w", s.turn, choice.Card, err)
			}
			if ended {
				return nil
			}
		default:
			return fmt.Errorf("turn %d: unexpected choice %s: %w", s.turn, choice, interaction.ErrProtocol)
		}
	}
}

// actionChoices lists every playable, affordable card in hand order,
// followed by ending the turn.
func (s *Session) actionChoices() []interaction.Choice {
	var choices []interaction.Choice
	for i, c := range s.state.Piles.Hand() {
		cost := s.costOf(c)
		if c.Playable() && cost <= s.state.Player.Energy {
			choices = append(choices, interaction.PlayCard(i, c.Def.Name, cost))
		}
	}
	return append(choices, interaction.EndTurn())
}

// playCard plays the card at idx in hand.
//
// Postcondition: Returns true when the combat should end.
func (s *Session) playCard(ctx context.Context, idx int) (bool, error) {
	r := s.resolver
	piles := s.state.Piles
	c := piles.InHand(idx)
	r.ClearTarget()
	if c.Def.RequiresTarget() {
		slot, err := s.chooseTarget(ctx)
		if err != nil {
			return false, err
		}
		r.SetTarget(slot)
	}

	cost := s.costOf(c)
	s.state.Player.Energy -= cost
	s.ia.Notify(interaction.Energy(s.state.Player.Energy))
	piles.TakeFromHand(idx)
	target, _ := r.Target()
	s.logger.Debug("card played",
		zap.Int("turn", s.turn),
		zap.String("card", c.Def.ID),
		zap.Int("cost", cost),
		zap.Int("target", target),
	)

	times := s.onCardPlayed(c)
	s.dispose(idx, c)
	if ended, err := r.Drain(); err != nil || ended {
		return ended, err
	}
	for i := 0; i < times; i++ {
		for _, fx := range c.Def.Effects() {
			r.Queue().PushBack(FromCard(fx))
		}
	}
	return r.Drain()
}

func (s *Session) chooseTarget(ctx context.Context) (int, error) {
	party := s.state.Party
	var targets []interaction.Choice
	for _, slot := range party.Living() {
		targets = append(targets, interaction.TargetEnemy(slot, party[slot].Status()))
	}
	choice, err := interaction.Ask(ctx, s.ia, interaction.PromptTargetEnemy, targets)
	if err != nil {
		return 0, err
	}
	if choice.Kind != interaction.ChoiceTargetEnemy || choice.Slot < 0 || choice.Slot >= enemy.MaxSlots || party[choice.Slot] == nil {
		return 0, fmt.Errorf("invalid target %s: %w", choice, interaction.ErrProtocol)
	}
	return choice.Slot, nil
}

// onCardPlayed fires the reactions to playing c and returns how many
// times its effects resolve.
func (s *Session) onCardPlayed(c *card.Card) int {
	conds := s.state.Conditions
	times := 1
	switch c.Def.Type {
	case card.TypeAttack:
		if n := conds.Amount(condition.PlayerRage); n > 0 {
			s.resolver.gainBlock(n)
		}
		if conds.Consume(condition.PlayerDoubleTap, 1) {
			times = 2
			s.ia.Notify(interaction.Conditions(conds.All()))
		}
	case card.TypeSkill:
		party := s.state.Party
		for _, slot := range party.Living() {
			e := party[slot]
			if n := e.Conditions.Amount(condition.EnemyEnrage); n > 0 {
				e.Strength += n
				s.ia.Notify(interaction.EnemyStatus(slot, e.Status()))
			}
		}
	}
	return times
}

// dispose moves a played card out of play. Powers leave play entirely.
func (s *Session) dispose(idx int, c *card.Card) {
	switch {
	case c.Def.Type == card.TypePower:
	case c.Def.Exhaust || (c.Def.Type == card.TypeSkill && s.state.Conditions.Has(condition.PlayerCorruption)):
		s.resolver.exhaust(c)
	default:
		s.state.Piles.Discard(c)
		s.ia.Notify(interaction.CardDiscarded(idx, c.Def.Name))
	}
}

func (s *Session) endPlayerTurn() error {
	r := s.resolver
	exhausted := s.state.Piles.DiscardHand()
	s.ia.Notify(interaction.HandDiscarded())
	for _, c := range exhausted {
		r.onExhausted(c)
	}
	triggers := s.state.Conditions.EndTurn()
	s.ia.Notify(interaction.Conditions(s.state.Conditions.All()))
	r.ClearTarget()
	r.enact(triggers)
	_, err := r.Drain()
	return err
}

// enemyTurn lets every enemy act in slot order. An enemy killed by a
// reaction stops acting and the rest of its move is dropped; reactions
// already queued, its own death reactions included, still resolve.
func (s *Session) enemyTurn() error {
	r := s.resolver
	party := s.state.Party
	for _, slot := range party.Living() {
		e := party[slot]
		e.Conditions.StartTurn()
		e.Block = 0
	}

	for slot := 0; slot < enemy.MaxSlots; slot++ {
		e := party[slot]
		if e == nil {
			continue
		}
		r.SetTarget(slot)
		action := e.Action()
		s.logger.Debug("enemy acts",
			zap.Int("turn", s.turn),
			zap.Int("slot", slot),
			zap.Stringer("move", action.Move),
		)
		for _, fx := range action.Effects {
			r.Queue().PushBack(FromEnemyPlaybook(slot, fx))
		}
		for r.Queue().Len() > 0 {
			if s.state.ShouldEnd() {
				r.Queue().Clear()
				break
			}
			if party[slot] == nil {
				r.Queue().DropMove(slot)
				if r.Queue().Len() == 0 {
					break
				}
			}
			entry, _ := r.Queue().PopFront()
			if err := r.Resolve(entry); err != nil {
				r.Queue().Clear()
				return fmt.Errorf("turn %d: enemy %d: %w", s.turn, slot, err)
			}
		}
		if s.state.ShouldEnd() {
			return nil
		}
	}

	for _, slot := range party.Living() {
		e := party[slot]
		for _, t := range e.Conditions.EndTurn() {
			if t.Kind == condition.TriggerGainStrength {
				e.Strength += t.Amount
			}
		}
		e.Advance(s.ai)
		s.ia.Notify(interaction.EnemyStatus(slot, e.Status()))
	}
	r.ClearTarget()
	return nil
}
