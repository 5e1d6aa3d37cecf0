package condition

// IsWeak reports whether the player's attacks are weakened.
func (s *PlayerSet) IsWeak() bool { return s.Has(PlayerWeak) }

// IsVulnerable reports whether the player takes increased attack damage.
func (s *PlayerSet) IsVulnerable() bool { return s.Has(PlayerVulnerable) }

// IsFrail reports whether the player's block gains are reduced.
func (s *PlayerSet) IsFrail() bool { return s.Has(PlayerFrail) }

// RetainsBlock reports whether block survives the start of the player's turn.
func (s *PlayerSet) RetainsBlock() bool { return s.Has(PlayerBarricade) }

// CanDraw reports whether card draw is currently allowed.
func (s *PlayerSet) CanDraw() bool { return !s.Has(PlayerNoDraw) }

// CanGainBlock reports whether block gains from cards are currently allowed.
func (s *PlayerSet) CanGainBlock() bool { return !s.Has(PlayerNoBlock) }

// Retaliation returns the non-attack damage dealt back to an attacker.
func (s *PlayerSet) Retaliation() int {
	return s.Amount(PlayerThorns) + s.Amount(PlayerFlameBarrier)
}

// IsWeak reports whether the enemy's attacks are weakened.
func (s *EnemySet) IsWeak() bool { return s.Has(EnemyWeak) }

// IsVulnerable reports whether the enemy takes increased attack damage.
func (s *EnemySet) IsVulnerable() bool { return s.Has(EnemyVulnerable) }
