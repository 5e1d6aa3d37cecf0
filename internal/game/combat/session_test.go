package combat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/spiresim/internal/game/card"
	"github.com/cory-johannsen/spiresim/internal/game/combat"
	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/effect"
	"github.com/cory-johannsen/spiresim/internal/game/enemy"
	"github.com/cory-johannsen/spiresim/internal/game/rng"
	"github.com/cory-johannsen/spiresim/internal/interaction"
)

func repeat(id string, n int) []string {
	deck := make([]string, n)
	for i := range deck {
		deck[i] = id
	}
	return deck
}

func slimeSetup(t *testing.T, slimeHP int, ia interaction.Interaction) combat.Setup {
	t.Helper()
	return combat.Setup{
		HP:          80,
		HPMax:       80,
		Deck:        repeat("strike", 10),
		Party:       &enemy.Party{spawn(t, enemy.SpikeSlimeS, slimeHP)},
		Streams:     rng.NewStreams(rng.Seed(42), 1, zaptest.NewLogger(t)),
		Cards:       loadCards(t),
		Interaction: ia,
		Logger:      zaptest.NewLogger(t),
	}
}

func run(t *testing.T, s combat.Setup) (*combat.Session, combat.Result) {
	t.Helper()
	sess, err := combat.NewSession(s)
	require.NoError(t, err)
	res, err := sess.Run(context.Background())
	require.NoError(t, err)
	return sess, res
}

func TestRun_PassivePlayerTakesEveryTackle(t *testing.T) {
	rec := interaction.NewRecorder(interaction.NewScripted(interaction.AlwaysEndTurn))
	setup := slimeSetup(t, 12, rec)
	setup.MaxTurns = 3

	_, res := run(t, setup)
	assert.Equal(t, combat.OutcomeTurnLimit, res.Outcome)
	assert.Equal(t, 3, res.Turns)
	assert.Equal(t, 65, res.HP)

	taken := rec.OfKind(interaction.KindDamageTaken)
	require.Len(t, taken, 3)
	for _, n := range taken {
		assert.Equal(t, 5, n.Amount)
	}
	assert.Empty(t, rec.OfKind(interaction.KindDamageBlocked))

	ending := rec.OfKind(interaction.KindEndingCombat)
	require.Len(t, ending, 1)
	assert.False(t, ending[0].Victory)
}

func TestRun_StrikesKillSlime(t *testing.T) {
	rec := interaction.NewRecorder(interaction.NewScripted(interaction.FirstCard))
	_, res := run(t, slimeSetup(t, 12, rec))
	assert.Equal(t, combat.OutcomeVictory, res.Outcome)
	assert.Equal(t, 1, res.Turns)
	assert.Equal(t, 80, res.HP)

	first := rec.Notifications()[0]
	assert.Equal(t, interaction.KindStartingCombat, first.Kind)
	ending := rec.OfKind(interaction.KindEndingCombat)
	require.Len(t, ending, 1)
	assert.True(t, ending[0].Victory)
	assert.Len(t, rec.OfKind(interaction.KindEnemyDied), 1)
}

func TestRun_BurningBloodHealsOnVictory(t *testing.T) {
	setup := slimeSetup(t, 12, interaction.NewScripted(interaction.FirstCard))
	setup.HP = 70
	setup.Relics = []combat.Relic{combat.RelicBurningBlood}
	_, res := run(t, setup)
	assert.Equal(t, combat.OutcomeVictory, res.Outcome)
	assert.Equal(t, 76, res.HP)
}

func TestRun_DefeatAtZeroHealth(t *testing.T) {
	rec := interaction.NewRecorder(interaction.NewScripted(interaction.AlwaysEndTurn))
	setup := slimeSetup(t, 12, rec)
	setup.HP = 5
	setup.Relics = []combat.Relic{combat.RelicBurningBlood}
	_, res := run(t, setup)
	assert.Equal(t, combat.OutcomeDefeat, res.Outcome)
	assert.Equal(t, 1, res.Turns)
	assert.Equal(t, 0, res.HP)
}

func TestRun_SneckoEyeDrawsSevenAndConfuses(t *testing.T) {
	setup := slimeSetup(t, 12, interaction.NewScripted(interaction.AlwaysEndTurn))
	setup.Relics = []combat.Relic{combat.RelicSneckoEye}
	setup.MaxTurns = 1
	rec := interaction.NewRecorder(setup.Interaction)
	setup.Interaction = rec
	sess, _ := run(t, setup)

	assert.True(t, sess.Conditions().Has(condition.PlayerConfused))
	drawn := rec.OfKind(interaction.KindCardDrawn)
	require.Len(t, drawn, 7)
	for _, n := range drawn {
		assert.GreaterOrEqual(t, n.Cost, 0)
		assert.LessOrEqual(t, n.Cost, 3)
	}
}

func TestRun_PowersLeavePlay(t *testing.T) {
	setup := slimeSetup(t, 14, interaction.NewScripted(interaction.FirstCard))
	setup.Deck = repeat("inflame", 5)
	setup.MaxTurns = 1
	sess, res := run(t, setup)
	assert.Equal(t, combat.OutcomeTurnLimit, res.Outcome)
	assert.Equal(t, 6, sess.Player().Strength)
	assert.Equal(t, 2, sess.Piles().Total())
	assert.Empty(t, sess.Piles().ExhaustPile())
}

func TestRun_MetallicizeBlocksEnemyAttack(t *testing.T) {
	rec := interaction.NewRecorder(interaction.NewScripted(interaction.FirstCard))
	setup := slimeSetup(t, 14, rec)
	setup.Deck = repeat("metallicize", 5)
	setup.MaxTurns = 1
	sess, res := run(t, setup)
	assert.Equal(t, 80, res.HP)
	assert.Equal(t, 9, sess.Conditions().Amount(condition.PlayerMetallicize))
	blocked := rec.OfKind(interaction.KindDamageBlocked)
	require.Len(t, blocked, 1)
	assert.Equal(t, 5, blocked[0].Amount)
}

func TestRun_RageBlocksOncePerAttack(t *testing.T) {
	rec := interaction.NewRecorder(interaction.NewScripted(interaction.FirstCard))
	setup := slimeSetup(t, 60, rec)
	setup.Deck = repeat("strike", 5)
	setup.MaxTurns = 1
	sess, err := combat.NewSession(setup)
	require.NoError(t, err)
	sess.Conditions().Apply(condition.NewPlayer(condition.PlayerRage, 3))
	res, err := sess.Run(context.Background())
	require.NoError(t, err)

	gained := rec.OfKind(interaction.KindBlockGained)
	require.Len(t, gained, 3)
	for _, n := range gained {
		assert.Equal(t, 3, n.Amount)
	}
	assert.Equal(t, 42, sess.Party()[0].HP)
	assert.Equal(t, 80, res.HP)
	assert.False(t, sess.Conditions().Has(condition.PlayerRage))
}

func TestRun_DoubleTapReplaysOneAttack(t *testing.T) {
	setup := slimeSetup(t, 60, interaction.NewScripted(interaction.FirstCard))
	setup.Deck = repeat("strike", 5)
	setup.MaxTurns = 1
	sess, err := combat.NewSession(setup)
	require.NoError(t, err)
	sess.Conditions().Apply(condition.NewPlayer(condition.PlayerDoubleTap, 1))
	_, err = sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 36, sess.Party()[0].HP)
	assert.False(t, sess.Conditions().Has(condition.PlayerDoubleTap))
}

func TestRun_EnrageStrengthensOnSkill(t *testing.T) {
	rec := interaction.NewRecorder(interaction.NewScripted(interaction.FirstCard))
	setup := slimeSetup(t, 60, rec)
	setup.Party[0].Conditions.Apply(condition.NewEnemy(condition.EnemyEnrage, 2))
	setup.Deck = repeat("defend", 5)
	setup.MaxTurns = 1
	sess, res := run(t, setup)

	assert.Equal(t, 6, sess.Party()[0].Strength)
	assert.Equal(t, 80, res.HP)
	blocked := rec.OfKind(interaction.KindDamageBlocked)
	require.Len(t, blocked, 1)
	assert.Equal(t, 11, blocked[0].Amount)
}

func TestRun_CorruptionSkillsAreFreeAndExhaust(t *testing.T) {
	rec := interaction.NewRecorder(interaction.NewScripted(interaction.FirstCard))
	setup := slimeSetup(t, 60, rec)
	setup.Deck = repeat("defend", 5)
	setup.MaxTurns = 1
	sess, err := combat.NewSession(setup)
	require.NoError(t, err)
	sess.Conditions().Apply(condition.NewPlayer(condition.PlayerCorruption, 1))
	_, err = sess.Run(context.Background())
	require.NoError(t, err)

	var plays int
	for _, c := range rec.Choices() {
		if c.Kind == interaction.ChoicePlayCard {
			plays++
			assert.Equal(t, 0, c.Cost)
		}
	}
	assert.Positive(t, plays)
	assert.Len(t, rec.OfKind(interaction.KindCardExhausted), 5)
	assert.Len(t, sess.Piles().ExhaustPile(), 5)
	assert.Equal(t, 20, sess.Player().Block)
}

func TestRun_BarricadeKeepsBlock(t *testing.T) {
	rec := interaction.NewRecorder(interaction.NewScripted(interaction.FirstCard))
	setup := slimeSetup(t, 60, rec)
	setup.Deck = repeat("defend", 10)
	setup.MaxTurns = 2
	sess, err := combat.NewSession(setup)
	require.NoError(t, err)
	sess.Conditions().Apply(condition.NewPlayer(condition.PlayerBarricade, 1))
	res, err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 80, res.HP)
	assert.Equal(t, 20, sess.Player().Block)
	assert.Empty(t, rec.OfKind(interaction.KindDamageTaken))
}

func TestRun_SporeCloudFiresWhenBeastDiesMidMove(t *testing.T) {
	beast := spawn(t, enemy.FungiBeast, 1)
	beast.Next = enemy.FungiBeastBite
	worm := spawn(t, enemy.JawWorm, 40)
	worm.Next = enemy.JawWormChomp

	rec := interaction.NewRecorder(interaction.NewScripted(interaction.AlwaysEndTurn))
	setup := slimeSetup(t, 12, rec)
	setup.Party = &enemy.Party{beast, worm}
	setup.MaxTurns = 1
	sess, err := combat.NewSession(setup)
	require.NoError(t, err)
	sess.Conditions().Apply(condition.NewPlayer(condition.PlayerThorns, 3))
	res, err := sess.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, combat.OutcomeTurnLimit, res.Outcome)
	assert.Len(t, rec.OfKind(interaction.KindEnemyDied), 1)
	assert.Nil(t, sess.Party()[0])
	assert.Equal(t, 2, sess.Conditions().Amount(condition.PlayerVulnerable))

	taken := rec.OfKind(interaction.KindDamageTaken)
	require.Len(t, taken, 2)
	assert.Equal(t, 6, taken[0].Amount)
	assert.Equal(t, 16, taken[1].Amount)
	assert.Equal(t, 58, res.HP)
	assert.Equal(t, 37, sess.Party()[1].HP)
}

func TestRun_OffersOnlyAffordableCards(t *testing.T) {
	rec := interaction.NewRecorder(interaction.NewScripted(interaction.FirstCard))
	setup := slimeSetup(t, 60, rec)
	setup.Deck = repeat("bash", 5)
	setup.MaxTurns = 1
	run(t, setup)

	var plays int
	for _, c := range rec.Choices() {
		if c.Kind == interaction.ChoicePlayCard {
			plays++
			assert.Equal(t, 2, c.Cost)
		}
	}
	assert.Equal(t, 1, plays)
}

func TestRun_TwiceFails(t *testing.T) {
	sess, _ := run(t, slimeSetup(t, 12, interaction.NewScripted(interaction.FirstCard)))
	_, err := sess.Run(context.Background())
	assert.ErrorIs(t, err, combat.ErrAlreadyRun)
}

func TestRun_CancelledContext(t *testing.T) {
	sess, err := combat.NewSession(slimeSetup(t, 12, interaction.NewScripted(interaction.FirstCard)))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = sess.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSession_Invalid(t *testing.T) {
	_, err := combat.NewSession(combat.Setup{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max hp")
	assert.Contains(t, err.Error(), "party has no enemies")
	assert.Contains(t, err.Error(), "interaction is required")

	setup := slimeSetup(t, 12, interaction.NewScripted(interaction.FirstCard))
	setup.Deck = []string{"strike", "no_such_card"}
	_, err = combat.NewSession(setup)
	assert.ErrorIs(t, err, card.ErrUnknownCard)
}

func TestParseRelic(t *testing.T) {
	r, err := combat.ParseRelic("snecko_eye")
	require.NoError(t, err)
	assert.Equal(t, combat.RelicSneckoEye, r)
	_, err = combat.ParseRelic("anchor")
	assert.ErrorIs(t, err, combat.ErrUnimplemented)
}

func TestRun_PassivePlayerLosesFivePerTurn(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		hp := rapid.IntRange(1, 80).Draw(rt, "hp")
		turns := rapid.IntRange(1, 20).Draw(rt, "turns")
		seed := rapid.Uint64().Draw(rt, "seed")

		e, err := enemy.DefaultRegistry().Spawn(enemy.Stats{Archetype: enemy.SpikeSlimeS, HPMax: 12}, rng.NewSts(rng.Seed(seed)))
		require.NoError(rt, err)
		sess, err := combat.NewSession(combat.Setup{
			HP:          hp,
			HPMax:       80,
			Deck:        repeat("defend", 8),
			Party:       &enemy.Party{e},
			Streams:     rng.NewStreams(rng.Seed(seed), 1, nil),
			Cards:       loadCards(t),
			Interaction: interaction.NewScripted(interaction.AlwaysEndTurn),
			MaxTurns:    turns,
		})
		require.NoError(rt, err)
		res, err := sess.Run(context.Background())
		require.NoError(rt, err)

		want := max(hp-5*turns, 0)
		assert.Equal(rt, want, res.HP)
		if want == 0 {
			assert.Equal(rt, combat.OutcomeDefeat, res.Outcome)
		} else {
			assert.Equal(rt, combat.OutcomeTurnLimit, res.Outcome)
		}
	})
}

func TestEngine_Lifecycle(t *testing.T) {
	eng := combat.NewEngine()
	sess, err := eng.Start(slimeSetup(t, 12, interaction.NewScripted(interaction.FirstCard)))
	require.NoError(t, err)
	assert.Equal(t, 1, eng.Len())
	got, ok := eng.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	res, err := eng.Run(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, combat.OutcomeVictory, res.Outcome)
	assert.Equal(t, 0, eng.Len())

	_, err = eng.Run(context.Background(), sess.ID)
	assert.Error(t, err)
}

func TestQueue_FrontAndBack(t *testing.T) {
	var q combat.Queue
	q.PushBack(combat.FromPlayerState(effect.Draw(1)))
	q.PushBack(combat.FromPlayerState(effect.Draw(2)))
	q.PushFront(combat.FromPlayerState(effect.Draw(3)))
	require.Equal(t, 3, q.Len())

	var got []int
	for {
		e, ok := q.PopFront()
		if !ok {
			break
		}
		got = append(got, e.Player.Amount)
	}
	assert.Equal(t, []int{3, 1, 2}, got)
}

func TestQueue_DropMoveKeepsReactions(t *testing.T) {
	var q combat.Queue
	q.PushBack(combat.FromEnemyState(0, effect.EnemyGainBlock(1)))
	q.PushBack(combat.FromEnemyPlaybook(0, effect.EnemyGainBlock(2)))
	q.PushBack(combat.FromPlayerState(effect.Draw(3)))
	q.PushBack(combat.FromEnemyPlaybook(1, effect.EnemyGainBlock(4)))
	q.PushBack(combat.FromEnemyPlaybook(0, effect.EnemyGainBlock(5)))

	q.DropMove(0)
	require.Equal(t, 3, q.Len())
	var got []combat.Origin
	for {
		e, ok := q.PopFront()
		if !ok {
			break
		}
		got = append(got, e.Origin)
	}
	assert.Equal(t, []combat.Origin{combat.OriginEnemyState, combat.OriginPlayerState, combat.OriginEnemyPlaybook}, got)
}
