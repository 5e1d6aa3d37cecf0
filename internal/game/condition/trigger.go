package condition

// TriggerKind names a behavioral side effect fired by a condition at a turn
// boundary.
type TriggerKind int

const (
	TriggerGainStrength TriggerKind = iota + 1
	TriggerLoseStrength
	TriggerGainBlock
	TriggerGainEnergy
	TriggerLoseHP
	TriggerDrawCards
	TriggerDamageAllEnemies
)

// String returns the trigger name.
func (k TriggerKind) String() string {
	switch k {
	case TriggerGainStrength:
		return "gain_strength"
	case TriggerLoseStrength:
		return "lose_strength"
	case TriggerGainBlock:
		return "gain_block"
	case TriggerGainEnergy:
		return "gain_energy"
	case TriggerLoseHP:
		return "lose_hp"
	case TriggerDrawCards:
		return "draw_cards"
	case TriggerDamageAllEnemies:
		return "damage_all_enemies"
	default:
		return "unknown"
	}
}

// Trigger is a side effect the holder's owner must enact. Source is the
// identifier of the condition that fired it.
type Trigger struct {
	Kind   TriggerKind
	Amount int
	Source string
}
