// Package condition implements the stacking status conditions carried by the
// player and by each enemy: how a reapplication merges into an existing
// entry, how entries decay at turn boundaries, and which behavioral triggers
// fire when they do.
//
// The player and enemies use separate catalogs with the same operations.
package condition

// PlayerKind identifies a condition that can be held by the player.
type PlayerKind int

const (
	PlayerArtifact PlayerKind = iota + 1
	PlayerBarricade
	PlayerBerserk
	PlayerBrutality
	PlayerCombust
	PlayerConfused
	PlayerCorruption
	PlayerDarkEmbrace
	PlayerDemonForm
	PlayerDoubleTap
	PlayerEvolve
	PlayerFeelNoPain
	PlayerFireBreathing
	PlayerFlameBarrier
	PlayerFrail
	PlayerIntangible
	PlayerJuggernaut
	PlayerMagnetism
	PlayerMayhem
	PlayerMetallicize
	PlayerNoBlock
	PlayerNoDraw
	PlayerPanache
	PlayerRage
	PlayerRupture
	PlayerSadistic
	PlayerStrengthDown
	PlayerTheBomb
	PlayerThorns
	PlayerVulnerable
	PlayerWeak
)

var playerKindIDs = map[PlayerKind]string{
	PlayerArtifact:      "artifact",
	PlayerBarricade:     "barricade",
	PlayerBerserk:       "berserk",
	PlayerBrutality:     "brutality",
	PlayerCombust:       "combust",
	PlayerConfused:      "confused",
	PlayerCorruption:    "corruption",
	PlayerDarkEmbrace:   "dark_embrace",
	PlayerDemonForm:     "demon_form",
	PlayerDoubleTap:     "double_tap",
	PlayerEvolve:        "evolve",
	PlayerFeelNoPain:    "feel_no_pain",
	PlayerFireBreathing: "fire_breathing",
	PlayerFlameBarrier:  "flame_barrier",
	PlayerFrail:         "frail",
	PlayerIntangible:    "intangible",
	PlayerJuggernaut:    "juggernaut",
	PlayerMagnetism:     "magnetism",
	PlayerMayhem:        "mayhem",
	PlayerMetallicize:   "metallicize",
	PlayerNoBlock:       "no_block",
	PlayerNoDraw:        "no_draw",
	PlayerPanache:       "panache",
	PlayerRage:          "rage",
	PlayerRupture:       "rupture",
	PlayerSadistic:      "sadistic",
	PlayerStrengthDown:  "strength_down",
	PlayerTheBomb:       "the_bomb",
	PlayerThorns:        "thorns",
	PlayerVulnerable:    "vulnerable",
	PlayerWeak:          "weak",
}

// String returns the content identifier of the kind.
func (k PlayerKind) String() string {
	if id, ok := playerKindIDs[k]; ok {
		return id
	}
	return "unknown"
}

// IsDebuff reports whether Artifact negates the kind.
func (k PlayerKind) IsDebuff() bool {
	switch k {
	case PlayerConfused, PlayerFrail, PlayerNoBlock, PlayerNoDraw, PlayerStrengthDown, PlayerVulnerable, PlayerWeak:
		return true
	default:
		return false
	}
}

// PlayerKinds returns every player kind in declaration order.
func PlayerKinds() []PlayerKind {
	out := make([]PlayerKind, 0, len(playerKindIDs))
	for k := PlayerArtifact; k <= PlayerWeak; k++ {
		out = append(out, k)
	}
	return out
}

// ParsePlayerKind resolves a content identifier.
func ParsePlayerKind(id string) (PlayerKind, bool) {
	for k, v := range playerKindIDs {
		if v == id {
			return k, true
		}
	}
	return 0, false
}

// EnemyKind identifies a condition that can be held by an enemy.
type EnemyKind int

const (
	EnemyCurlUp EnemyKind = iota + 1
	EnemyEnrage
	EnemyRitual
	EnemySporeCloud
	EnemyStrengthLossThisTurn
	EnemyThorns
	EnemyVulnerable
	EnemyWeak
)

var enemyKindIDs = map[EnemyKind]string{
	EnemyCurlUp:               "curl_up",
	EnemyEnrage:               "enrage",
	EnemyRitual:               "ritual",
	EnemySporeCloud:           "spore_cloud",
	EnemyStrengthLossThisTurn: "strength_loss_this_turn",
	EnemyThorns:               "thorns",
	EnemyVulnerable:           "vulnerable",
	EnemyWeak:                 "weak",
}

// String returns the content identifier of the kind.
func (k EnemyKind) String() string {
	if id, ok := enemyKindIDs[k]; ok {
		return id
	}
	return "unknown"
}

// EnemyKinds returns every enemy kind in declaration order.
func EnemyKinds() []EnemyKind {
	out := make([]EnemyKind, 0, len(enemyKindIDs))
	for k := EnemyCurlUp; k <= EnemyWeak; k++ {
		out = append(out, k)
	}
	return out
}

// ParseEnemyKind resolves a content identifier.
func ParseEnemyKind(id string) (EnemyKind, bool) {
	for k, v := range enemyKindIDs {
		if v == id {
			return k, true
		}
	}
	return 0, false
}
