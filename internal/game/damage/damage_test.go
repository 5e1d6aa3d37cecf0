package damage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/spiresim/internal/game/damage"
)

func TestCalculate_Plain(t *testing.T) {
	assert.Equal(t, 6, damage.Calculate(damage.Attack(6), damage.Attacker{}, damage.Defender{}))
	assert.Equal(t, 9, damage.Calculate(damage.Attack(6), damage.Attacker{Strength: 3}, damage.Defender{}))
	assert.Equal(t, 0, damage.Calculate(damage.Attack(6), damage.Attacker{Strength: -10}, damage.Defender{}))
}

// TestCalculate_Order verifies strength applies before weak, and weak before vulnerable.
func TestCalculate_Order(t *testing.T) {
	// (6+1)*3/4 = 5, 5*3/2 = 7
	got := damage.Calculate(damage.Attack(6), damage.Attacker{Strength: 1, Weak: true}, damage.Defender{Vulnerable: true})
	assert.Equal(t, 7, got)
}

func TestCalculate_NonAttackIgnoresModifiers(t *testing.T) {
	a := damage.Attacker{Strength: 5, Weak: true}
	d := damage.Defender{Vulnerable: true}
	assert.Equal(t, 3, damage.Calculate(damage.NonAttack(3), a, d))
	assert.Equal(t, 3, damage.Calculate(damage.Loss(3), a, d))
}

// TestCalculate_Vulnerable verifies final = floor((d+str) * 1.5) for a vulnerable defender.
func TestCalculate_Vulnerable(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.IntRange(0, 1000).Draw(rt, "d")
		str := rapid.IntRange(0, 50).Draw(rt, "str")
		got := damage.Calculate(damage.Attack(d), damage.Attacker{Strength: str}, damage.Defender{Vulnerable: true})
		assert.Equal(rt, int(float64(d+str)*1.5), got)
	})
}

// TestCalculate_Weak verifies final = floor((d+str) * 0.75) for a weak attacker.
func TestCalculate_Weak(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.IntRange(0, 1000).Draw(rt, "d")
		str := rapid.IntRange(0, 50).Draw(rt, "str")
		got := damage.Calculate(damage.Attack(d), damage.Attacker{Strength: str, Weak: true}, damage.Defender{})
		assert.Equal(rt, int(float64(d+str)*0.75), got)
	})
}

func TestCalculate_NeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.IntRange(-100, 1000).Draw(rt, "d")
		a := damage.Attacker{
			Strength: rapid.IntRange(-100, 100).Draw(rt, "str"),
			Weak:     rapid.Bool().Draw(rt, "weak"),
		}
		def := damage.Defender{Vulnerable: rapid.Bool().Draw(rt, "vuln")}
		kind := damage.Kind(rapid.IntRange(0, 2).Draw(rt, "kind"))
		assert.GreaterOrEqual(rt, damage.Calculate(damage.Damage{Kind: kind, Amount: d}, a, def), 0)
	})
}

// TestAbsorb_Property verifies block absorption for both the covered and
// uncovered cases.
func TestAbsorb_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		amount := rapid.IntRange(0, 200).Draw(rt, "amount")
		block := rapid.IntRange(0, 200).Draw(rt, "block")
		got := damage.Absorb(damage.Blockable, amount, block)
		if amount <= block {
			assert.Equal(rt, block-amount, got.BlockLeft)
			assert.Equal(rt, 0, got.HPLost)
		} else {
			assert.Equal(rt, 0, got.BlockLeft)
			assert.Equal(rt, amount-block, got.HPLost)
		}
		assert.Equal(rt, amount, got.Blocked+got.HPLost)
	})
}

func TestAbsorb_HPLossIgnoresBlock(t *testing.T) {
	got := damage.Absorb(damage.HPLoss, 4, 10)
	assert.Equal(t, damage.Absorption{HPLost: 4, BlockLeft: 10}, got)
}

func TestBlock(t *testing.T) {
	assert.Equal(t, 5, damage.Block(5, 0, false))
	assert.Equal(t, 7, damage.Block(5, 2, false))
	assert.Equal(t, 3, damage.Block(5, 0, true))
	assert.Equal(t, 5, damage.Block(5, 2, true))
	assert.Equal(t, 0, damage.Block(5, -9, false))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "blockable", damage.Blockable.String())
	assert.Equal(t, "hp_loss", damage.HPLoss.String())
	assert.True(t, damage.Blockable.IsAttack())
	assert.False(t, damage.BlockableNonAttack.IsAttack())
}
