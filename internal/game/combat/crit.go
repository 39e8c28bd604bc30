package combat

import (
	"github.com/cory-johannsen/melee/internal/game/condition"
)

// critTally returns how many of the three critical sub-checks succeed.
// Each check consumes exactly one rng(0,99) draw, in the order weapon,
// attribute, skill.
func (e *Engine) critTally(c *Combatant, st Stance) int {
	base := e.tuning.BaseCritChance
	boost := condition.CritBonus(c.statuses())
	w := c.ActiveWeapon()
	n := 0

	// Weapon: half the unarmed skill and each point of positive to-hit add a
	// diminishing step; each point of negative to-hit halves the chance.
	chance := base
	if w.IsUnarmed() {
		for i := 1; i <= c.Skill(SkillUnarmed)/2; i++ {
			chance += 50 / (2 + i)
		}
	}
	if w.ToHit > 0 {
		for i := 1; i <= w.ToHit; i++ {
			chance += 50 / (2 + i)
		}
	} else {
		for i := 0; i > w.ToHit; i-- {
			chance /= 2
		}
	}
	if e.rng.Rng(0, 99) < chance+boost {
		n++
	}

	// Attribute: 12, 11, 10... per point above 8; 5, 5, 4, 4... per point below 8.
	stat := st.HitStat(c)
	chance = base
	if stat > 8 {
		for i := 9; i <= stat; i++ {
			chance += 21 - i
		}
	} else {
		decrease := 5
		for i := 7; i >= stat; i-- {
			chance -= decrease
			if i%2 == 0 {
				decrease--
			}
		}
	}
	if e.rng.Rng(0, 99) < chance {
		n++
	}

	// Skill: the best skill that applies to the weapon plus melee/2.5.
	best := 0
	if w.IsBashingWeapon() {
		best = max(best, c.Skill(SkillBashing))
	}
	if w.IsCuttingWeapon() {
		best = max(best, c.Skill(SkillCutting))
	}
	if w.IsStabbing() {
		best = max(best, c.Skill(SkillStabbing))
	}
	if w.IsUnarmed() {
		best = max(best, c.Skill(SkillUnarmed))
	}
	best += int(float64(c.Skill(SkillMelee)) / 2.5)
	chance = base
	for i := 3; i < best; i++ {
		chance += 50 / (2 + i)
	}
	if e.rng.Rng(0, 99) < chance+boost {
		n++
	}
	return n
}

// scoredCrit decides whether a connecting hit is critical. Three successful
// sub-checks always crit; two crit only if a fresh hit roll reaches 1.5x the
// target's dodge roll and a 1-in-4 veto does not fire.
func (e *Engine) scoredCrit(c *Combatant, st Stance, targetDodge int) bool {
	switch e.critTally(c, st) {
	case 3:
		return true
	case 2:
		return 2*e.hitRoll(c, st) >= 3*targetDodge && !e.rng.OneIn(4)
	default:
		return false
	}
}
