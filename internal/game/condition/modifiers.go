package condition

// Status IDs read or written by the melee engine.
const (
	Stunned     = "stunned"
	Downed      = "downed"
	AttackBoost = "attack_boost"
	DodgeBoost  = "dodge_boost"
	DamageBoost = "damage_boost"
	SpeedBoost  = "speed_boost"
	ArmorBoost  = "armor_boost"
	ViperCombo  = "viper_combo"
	Poison      = "poison"
	OnFire      = "onfire"
	Drunk       = "drunk"
	Sleep       = "sleep"
	LyingDown   = "lying_down"
	BearTrap    = "beartrap"
)

// HitBonus returns the extra to-hit dice granted by attack_boost.
//
// Postcondition: Returns >= 0.
func HitBonus(s *ActiveSet) int {
	return max(0, s.Intensity(AttackBoost))
}

// CritBonus returns the percentage points attack_boost adds to each
// critical-hit check.
func CritBonus(s *ActiveSet) int {
	return 4 * HitBonus(s)
}

// DodgeBonus returns the dodge value granted by dodge_boost.
func DodgeBonus(s *ActiveSet) int {
	return s.Intensity(DodgeBoost)
}

// DamageBonus returns the flat bash damage granted by damage_boost.
func DamageBonus(s *ActiveSet) int {
	return s.Intensity(DamageBoost)
}

// SpeedBonus returns the attack move cost removed by speed_boost.
func SpeedBonus(s *ActiveSet) int {
	return s.Intensity(SpeedBoost)
}

// Incapacitated reports whether the combatant cannot react to attacks at all.
func Incapacitated(s *ActiveSet) bool {
	return s.Has(Sleep) || s.Has(LyingDown)
}
