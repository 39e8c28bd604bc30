package combat

// Tuning holds the engine constants that operators may override through
// configuration.
type Tuning struct {
	// BaseCritChance is the starting percentage of each critical sub-check.
	BaseCritChance int
	// MinAttackCost is the floor on the move cost of a swing.
	MinAttackCost int
	// DodgesPerTurn and BlocksPerTurn are the per-turn allotments restored by
	// Encounter at the start of each turn.
	DodgesPerTurn int
	BlocksPerTurn int
	// StunCap bounds the turns of stun from a critical blunt hit.
	StunCap int
	// KnockdownThreshold is the stab move-loss at which a target is forced to the ground.
	KnockdownThreshold int
	// MaxCounterDepth bounds chains of counter-attacks.
	MaxCounterDepth int
	// StuckArmor is the armor assumed for non-monster targets when rolling
	// the weapon-stuck penalty.
	StuckArmor int
}

// DefaultTuning returns the standard constants.
func DefaultTuning() Tuning {
	return Tuning{
		BaseCritChance:     25,
		MinAttackCost:      25,
		DodgesPerTurn:      1,
		BlocksPerTurn:      1,
		StunCap:            6,
		KnockdownThreshold: 150,
		MaxCounterDepth:    3,
		StuckArmor:         6,
	}
}
