package enemy

import (
	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/damage"
	"github.com/cory-johannsen/spiresim/internal/game/effect"
)

// SlimedCard is the status card slimes add to the player's discard pile.
const SlimedCard = "slimed"

// Move identifies one action of one archetype. MoveNone is the previous move
// of an enemy that has not acted yet.
type Move int

const (
	MoveNone Move = iota
	AcidSlimeMCorrosiveSpit
	AcidSlimeMLick
	AcidSlimeMTackle
	AcidSlimeSLick
	AcidSlimeSTackle
	CultistDarkStrike
	CultistIncantation
	FungiBeastBite
	FungiBeastGrow
	GreenLouseBite
	GreenLouseSpitWeb
	GremlinNobBellow
	GremlinNobRush
	GremlinNobSkullBash
	JawWormBellow
	JawWormChomp
	JawWormThrash
	RedLouseBite
	RedLouseGrow
	SpikeSlimeMFlameTackle
	SpikeSlimeMLick
	SpikeSlimeSTackle
)

var moveNames = [...]string{
	MoveNone:                "None",
	AcidSlimeMCorrosiveSpit: "AcidSlimeMCorrosiveSpit",
	AcidSlimeMLick:          "AcidSlimeMLick",
	AcidSlimeMTackle:        "AcidSlimeMTackle",
	AcidSlimeSLick:          "AcidSlimeSLick",
	AcidSlimeSTackle:        "AcidSlimeSTackle",
	CultistDarkStrike:       "CultistDarkStrike",
	CultistIncantation:      "CultistIncantation",
	FungiBeastBite:          "FungiBeastBite",
	FungiBeastGrow:          "FungiBeastGrow",
	GreenLouseBite:          "GreenLouseBite",
	GreenLouseSpitWeb:       "GreenLouseSpitWeb",
	GremlinNobBellow:        "GremlinNobBellow",
	GremlinNobRush:          "GremlinNobRush",
	GremlinNobSkullBash:     "GremlinNobSkullBash",
	JawWormBellow:           "JawWormBellow",
	JawWormChomp:            "JawWormChomp",
	JawWormThrash:           "JawWormThrash",
	RedLouseBite:            "RedLouseBite",
	RedLouseGrow:            "RedLouseGrow",
	SpikeSlimeMFlameTackle:  "SpikeSlimeMFlameTackle",
	SpikeSlimeMLick:         "SpikeSlimeMLick",
	SpikeSlimeSTackle:       "SpikeSlimeSTackle",
}

// String returns the move name.
func (m Move) String() string {
	if m >= 0 && int(m) < len(moveNames) {
		return moveNames[m]
	}
	return "Unknown"
}

// Action is a move together with its effect chain and the intent derived
// from that chain.
type Action struct {
	Move    Move
	Effects []effect.Enemy
	Intent  Intent
}

// ActionFor returns the action performed when an enemy with stats s makes
// move m.
//
// Postcondition: Effects is a fresh slice; Intent equals IntentOf(Effects).
func ActionFor(m Move, s Stats) Action {
	effects := effectsFor(m, s)
	return Action{Move: m, Effects: effects, Intent: IntentOf(effects)}
}

func attack(n int) effect.Enemy { return effect.EnemyDeal(damage.Attack(n)) }

func effectsFor(m Move, s Stats) []effect.Enemy {
	switch m {
	case AcidSlimeMCorrosiveSpit:
		return []effect.Enemy{attack(7), effect.EnemyAddToDiscard(SlimedCard, 1)}
	case AcidSlimeMLick, AcidSlimeSLick:
		return []effect.Enemy{effect.EnemyInflict(condition.NewPlayer(condition.PlayerWeak, 1))}
	case AcidSlimeMTackle:
		return []effect.Enemy{attack(10)}
	case AcidSlimeSTackle:
		return []effect.Enemy{attack(3)}
	case CultistDarkStrike:
		return []effect.Enemy{attack(6)}
	case CultistIncantation:
		return []effect.Enemy{effect.EnemyApply(condition.Enemy{Kind: condition.EnemyRitual, Amount: 3, JustApplied: true})}
	case FungiBeastBite:
		return []effect.Enemy{attack(6)}
	case FungiBeastGrow, RedLouseGrow:
		return []effect.Enemy{effect.EnemyGainStrength(3)}
	case GreenLouseBite, RedLouseBite:
		return []effect.Enemy{attack(s.BiteDamage)}
	case GreenLouseSpitWeb:
		return []effect.Enemy{effect.EnemyInflict(condition.NewPlayer(condition.PlayerWeak, 2))}
	case GremlinNobBellow:
		return []effect.Enemy{effect.EnemyApply(condition.NewEnemy(condition.EnemyEnrage, 2))}
	case GremlinNobRush:
		return []effect.Enemy{attack(14)}
	case GremlinNobSkullBash:
		return []effect.Enemy{attack(6), effect.EnemyInflict(condition.NewPlayer(condition.PlayerVulnerable, 2))}
	case JawWormBellow:
		return []effect.Enemy{effect.EnemyGainStrength(3), effect.EnemyGainBlock(6)}
	case JawWormChomp:
		return []effect.Enemy{attack(11)}
	case JawWormThrash:
		return []effect.Enemy{attack(7), effect.EnemyGainBlock(5)}
	case SpikeSlimeMFlameTackle:
		return []effect.Enemy{attack(8), effect.EnemyAddToDiscard(SlimedCard, 1)}
	case SpikeSlimeMLick:
		return []effect.Enemy{effect.EnemyInflict(condition.NewPlayer(condition.PlayerFrail, 1))}
	case SpikeSlimeSTackle:
		return []effect.Enemy{attack(5)}
	default:
		return nil
	}
}
