package combat

import (
	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/game/technique"
)

// strengthRequirement is the size-derived bar for brutal strikes and throws:
// the size class of a monster, 1 + (2+str)/4 for a character.
func strengthRequirement(tgt *Combatant) int {
	if tgt.IsMonster() {
		return int(tgt.Size)
	}
	return 1 + (2+tgt.str())/4
}

// pickTechnique chooses the offensive technique for a connecting hit.
//
// Crit-only techniques (SWEEP, PRECISE, BRUTAL) are considered first and only
// on a critical. If none qualify, the ordinary tier is considered: DISARM,
// GRAB, RAPID, THROW, WIDE. NONE is appended to any non-empty candidate list
// and one candidate is drawn uniformly; an empty list yields NONE without a draw.
//
// Postcondition: never returns a crit-only technique when x.crit is false, and
// never returns GRAB when x.allowGrab is false.
func (e *Engine) pickTechnique(x *exchange) technique.Technique {
	att, tgt := x.att, x.tgt
	if tgt == nil {
		return technique.None
	}
	w := att.ActiveWeapon()
	unarmed := att.Skill(SkillUnarmed)
	has := func(t technique.Technique) bool { return w.HasTechnique(t, unarmed) }

	downed := tgt.HasStatus(condition.Downed)
	req := strengthRequirement(tgt)
	allowGrab := x.allowGrab && !(tgt.IsMonster() && tgt.HasFlag(FlagPlastic))
	power := att.str() + att.Skill(SkillMelee)

	var possible []technique.Technique
	if x.crit {
		if has(technique.Sweep) && !(tgt.IsMonster() && tgt.HasFlag(FlagFlies)) && !downed {
			possible = append(possible, technique.Sweep)
		}
		if has(technique.Precise) {
			possible = append(possible, technique.Precise)
		}
		if has(technique.Brutal) && !downed && power >= 4+req {
			possible = append(possible, technique.Brutal)
		}
	}

	if len(possible) == 0 {
		if has(technique.Disarm) && !tgt.IsMonster() && canBeDisarmed(tgt) &&
			e.rng.Dice(att.dex()+unarmed, 8) > e.rng.Dice(tgt.dex()+tgt.Skill(SkillMelee), 10) {
			possible = append(possible, technique.Disarm)
		}
		if has(technique.Grab) && allowGrab {
			possible = append(possible, technique.Grab)
		}
		if has(technique.Rapid) {
			possible = append(possible, technique.Rapid)
		}
		if has(technique.Throw) && !downed && power >= 4+req*4+e.rng.Rng(-4, 4) {
			possible = append(possible, technique.Throw)
		}
		if has(technique.Wide) {
			need := 3
			if len(possible) == 0 {
				need = 2
			}
			if e.enemiesAround(att, tgt) >= need {
				possible = append(possible, technique.Wide)
			}
		}
	}

	if len(possible) == 0 {
		return technique.None
	}
	possible = append(possible, technique.None)
	return possible[e.rng.Rng(0, len(possible)-1)]
}

// canBeDisarmed reports whether c wields a real weapon that can be knocked away.
func canBeDisarmed(c *Combatant) bool {
	w := c.ActiveWeapon()
	return !w.IsNull() && !w.IsStyle() && !w.HasFlag(inventory.FlagUnarmed)
}

// enemiesAround scores the 3x3 block around c, ignoring c and the primary
// target: +1 for each hostile combatant, -2 for each friendly one.
func (e *Engine) enemiesAround(c, primary *Combatant) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			other := e.world.CombatantAt(c.Pos.Add(dx, dy))
			if other == nil || other == c || other == primary {
				continue
			}
			if c.Hostile(other) {
				count++
			} else {
				count -= 2
			}
		}
	}
	return count
}
