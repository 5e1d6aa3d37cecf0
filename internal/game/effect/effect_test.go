package effect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/damage"
	"github.com/cory-johannsen/spiresim/internal/game/effect"
)

func TestParseTarget(t *testing.T) {
	for _, tgt := range []effect.Target{effect.TargetNone, effect.TargetSingle, effect.TargetAll, effect.TargetRandom} {
		got, err := effect.ParseTarget(tgt.String())
		require.NoError(t, err)
		assert.Equal(t, tgt, got)
	}
	got, err := effect.ParseTarget("")
	require.NoError(t, err)
	assert.Equal(t, effect.TargetNone, got)
	_, err = effect.ParseTarget("everyone")
	assert.Error(t, err)
}

func TestParsePlayerOp(t *testing.T) {
	op, ok := effect.ParsePlayerOp("gain_block")
	require.True(t, ok)
	assert.Equal(t, effect.OpGainBlock, op)
	_, ok = effect.ParsePlayerOp("scry")
	assert.False(t, ok)
}

func TestPlayer_IsTargeted(t *testing.T) {
	assert.True(t, effect.DealTo(effect.TargetSingle, damage.Attack(6)).IsTargeted())
	assert.True(t, effect.InflictTo(effect.TargetAll, condition.NewEnemy(condition.EnemyVulnerable, 1)).IsTargeted())
	assert.False(t, effect.GainBlock(5).IsTargeted())
	assert.False(t, effect.Apply(condition.NewPlayer(condition.PlayerRage, 3)).IsTargeted())
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "deal blockable 6 to single", effect.DealTo(effect.TargetSingle, damage.Attack(6)).String())
	assert.Equal(t, "add_to_discard 1x slimed", effect.AddToDiscard("slimed", 1).String())
	assert.Equal(t, "draw 2", effect.Draw(2).String())
	assert.Equal(t, "inflict weak(1)", effect.EnemyInflict(condition.NewPlayer(condition.PlayerWeak, 1)).String())
	assert.Equal(t, "gain_block 6", effect.EnemyGainBlock(6).String())
}
