// Package damage implements the pure damage and block arithmetic of combat.
//
// Nothing here mutates state: the combat resolver applies the results.
package damage

// Kind distinguishes how an amount of damage interacts with modifiers, block
// and retaliation.
type Kind int

const (
	// Blockable is attack damage: strength, weak and vulnerable apply, block
	// absorbs it, and it provokes thorns.
	Blockable Kind = iota
	// BlockableNonAttack is absorbed by block but ignores attack modifiers
	// and never provokes thorns.
	BlockableNonAttack
	// HPLoss bypasses block entirely.
	HPLoss
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Blockable:
		return "blockable"
	case BlockableNonAttack:
		return "blockable_non_attack"
	case HPLoss:
		return "hp_loss"
	default:
		return "unknown"
	}
}

// IsAttack reports whether damage of this kind is an attack.
func (k Kind) IsAttack() bool { return k == Blockable }

// Damage is a nominal amount of damage of a given kind.
type Damage struct {
	Kind   Kind
	Amount int
}

// Attack returns attack damage of amount.
func Attack(amount int) Damage { return Damage{Kind: Blockable, Amount: amount} }

// NonAttack returns blockable non-attack damage of amount.
func NonAttack(amount int) Damage { return Damage{Kind: BlockableNonAttack, Amount: amount} }

// Loss returns unblockable hp loss of amount.
func Loss(amount int) Damage { return Damage{Kind: HPLoss, Amount: amount} }

// Attacker is the snapshot of the dealer's state relevant to outgoing damage.
type Attacker struct {
	Strength int
	Weak     bool
}

// Defender is the snapshot of the receiver's state relevant to incoming damage.
type Defender struct {
	Vulnerable bool
}

// Calculate applies the attack modifier chain to d.
//
// Order: strength is added, weak reduces by 25% rounding down, vulnerable
// increases by 50% rounding down, and the result is clamped at zero.
// Non-attack kinds pass through unchanged apart from the clamp.
//
// Postcondition: Returns a value >= 0.
func Calculate(d Damage, a Attacker, def Defender) int {
	amount := d.Amount
	if d.Kind.IsAttack() {
		amount = saturatingAdd(amount, a.Strength)
		if amount < 0 {
			amount = 0
		}
		if a.Weak {
			amount = amount * 3 / 4
		}
		if def.Vulnerable {
			amount = amount * 3 / 2
		}
	}
	if amount < 0 {
		return 0
	}
	return amount
}

// Absorption is the split of incoming damage between block and health.
type Absorption struct {
	Blocked   int
	HPLost    int
	BlockLeft int
}

// Absorb splits amount between block and health.
//
// HPLoss skips block entirely. Otherwise block absorbs up to its full value:
// an amount no larger than block reduces block by exactly that amount, and a
// larger amount empties block with the excess lost as health.
//
// Precondition: amount >= 0 and block >= 0.
// Postcondition: Blocked+HPLost == amount and BlockLeft == block-Blocked.
func Absorb(kind Kind, amount, block int) Absorption {
	if kind == HPLoss {
		return Absorption{HPLost: amount, BlockLeft: block}
	}
	blocked := min(amount, block)
	return Absorption{
		Blocked:   blocked,
		HPLost:    amount - blocked,
		BlockLeft: block - blocked,
	}
}

// Block returns the block actually gained from a nominal amount.
//
// Dexterity is added first, then frail reduces by 25% rounding down.
//
// Postcondition: Returns a value >= 0.
func Block(amount, dexterity int, frail bool) int {
	v := saturatingAdd(amount, dexterity)
	if v <= 0 {
		return 0
	}
	if frail {
		v = v * 3 / 4
	}
	return v
}

func saturatingAdd(a, b int) int {
	s := a + b
	if b > 0 && s < a {
		return int(^uint(0) >> 1)
	}
	if b < 0 && s > a {
		return -int(^uint(0)>>1) - 1
	}
	return s
}
