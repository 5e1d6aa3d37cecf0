package combat

import (
	"fmt"

	"github.com/cory-johannsen/spiresim/internal/game/condition"
	"github.com/cory-johannsen/spiresim/internal/game/damage"
)

// EnergyPerTurn is the energy the player starts each turn with.
const EnergyPerTurn = 3

// CardsPerTurn is the number of cards drawn at the start of each turn.
const CardsPerTurn = 5

// Player holds the player's combat resources.
type Player struct {
	HP        int
	HPMax     int
	Block     int
	Energy    int
	Strength  int
	Dexterity int
}

// IsDead reports whether the player's health has reached zero.
func (p *Player) IsDead() bool { return p.HP <= 0 }

// AsAttacker is the snapshot used when the player deals damage.
func (p *Player) AsAttacker(c *condition.PlayerSet) damage.Attacker {
	return damage.Attacker{Strength: p.Strength, Weak: c.IsWeak()}
}

// AsDefender is the snapshot used when the player receives damage.
func (p *Player) AsDefender(c *condition.PlayerSet) damage.Defender {
	return damage.Defender{Vulnerable: c.IsVulnerable()}
}

// Relic is a passive item carried into combat.
type Relic string

const (
	// RelicBurningBlood heals 6 at the end of a won combat.
	RelicBurningBlood Relic = "burning_blood"
	// RelicSneckoEye draws 2 extra cards each turn and confuses the player.
	RelicSneckoEye Relic = "snecko_eye"
)

// BurningBloodHeal is the health restored by RelicBurningBlood.
const BurningBloodHeal = 6

// SneckoEyeDraw is the extra draw granted by RelicSneckoEye.
const SneckoEyeDraw = 2

// ParseRelic resolves a relic identifier.
//
// Postcondition: Returns an error wrapping ErrUnimplemented for relics with
// no combat behavior.
func ParseRelic(s string) (Relic, error) {
	switch r := Relic(s); r {
	case RelicBurningBlood, RelicSneckoEye:
		return r, nil
	default:
		return "", fmt.Errorf("relic %q: %w", s, ErrUnimplemented)
	}
}
