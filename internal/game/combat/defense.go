package combat

import (
	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/game/technique"
)

// pickDefense chooses the defender's reaction to an incoming hit from foe.
// One block is spent up front and refunded if nothing qualifies. Techniques
// are tried in fixed priority: WBLOCK_3, WBLOCK_2, WBLOCK_1, DEF_DISARM,
// DEF_THROW, COUNTER, BLOCK_LEGS, BLOCK.
//
// Postcondition: Returns None without any draw when no blocks remain.
func (e *Engine) pickDefense(def, foe *Combatant) technique.Technique {
	if def.BlocksLeft <= 0 {
		return technique.None
	}
	w := def.ActiveWeapon()
	unarmed := def.Skill(SkillUnarmed)
	has := func(t technique.Technique) bool { return w.HasTechnique(t, unarmed) }
	st := e.stanceOf(def)

	var foeSkill, foeSize int
	if foe.IsMonster() {
		foeSkill = foe.MeleeSkill
		foeSize = 4 + int(foe.Size)*4
	} else {
		foeSkill = foe.dex() + foe.Skill(SkillMelee)
		foeSize = 12
		if foe.Max.Str <= 5 {
			foeSize -= 3
		}
		if foe.Max.Str >= 12 {
			foeSize += 3
		}
	}
	foeDodge := e.DodgeRoll(foe)

	def.BlocksLeft--
	agility := def.dex() + def.Skill(SkillMelee)
	if has(technique.WBlock3) && e.rng.Dice(agility, 12) > e.rng.Dice(foeSkill, 10) {
		return technique.WBlock3
	}
	if has(technique.WBlock2) && e.rng.Dice(agility, 6) > e.rng.Dice(foeSkill, 10) {
		return technique.WBlock2
	}
	if has(technique.WBlock1) && e.rng.Dice(agility, 3) > e.rng.Dice(foeSkill, 10) {
		return technique.WBlock1
	}
	if has(technique.DefDisarm) && !foe.IsMonster() && canBeDisarmed(foe) &&
		e.rng.Dice(def.dex()+unarmed, 8) > e.rng.Dice(foe.dex()+foe.Skill(SkillMelee), 10) {
		return technique.DefDisarm
	}
	if has(technique.DefThrow) &&
		def.str()+def.Skill(SkillMelee) >= foeSize+e.rng.Rng(-4, 4) &&
		e.hitRoll(def, st) > e.rng.Rng(1, 5)+foeDodge && !e.rng.OneIn(3) {
		return technique.DefThrow
	}
	if has(technique.Counter) && e.hitRoll(def, st) > e.rng.Rng(1, 10)+foeDodge && !e.rng.OneIn(3) {
		return technique.Counter
	}
	fighting := def.dex() + unarmed + def.Skill(SkillMelee)
	if has(technique.BlockLegs) && (def.HP[HPLegL] >= 20 || def.HP[HPLegR] >= 20) &&
		e.rng.Dice(fighting, 13) > e.rng.Dice(8+foeSkill, 10) {
		return technique.BlockLegs
	}
	if has(technique.Block) && (def.HP[HPArmL] >= 20 || def.HP[HPArmR] >= 20) &&
		e.rng.Dice(fighting, 16) > e.rng.Dice(6+foeSkill, 10) {
		return technique.Block
	}

	def.BlocksLeft++
	return technique.None
}

// applyDefense applies the defender's technique to the incoming damage and
// redirects the blow for blocks.
func (e *Engine) applyDefense(x *exchange, def technique.Technique) {
	defender, foe := x.tgt, x.att
	switch def {
	case technique.Block, technique.BlockLegs:
		if def == technique.Block {
			x.part = inventory.PartArms
			x.side = strongerSide(defender.HP[HPArmL], defender.HP[HPArmR])
		} else {
			x.part = inventory.PartLegs
			x.side = strongerSide(defender.HP[HPLegL], defender.HP[HPLegR])
		}
		e.say(x, e.playerOrNPC(defender, "You block with your %s!", "%s blocks with their %s!", partName(x.part, x.side)))
		if def == technique.Block {
			x.bash = int(float64(x.bash) * 0.7)
		} else {
			x.bash = int(float64(x.bash) * 0.5 * e.stanceOf(defender).BlockReduction(defender))
		}

	case technique.WBlock1, technique.WBlock2, technique.WBlock3:
		x.bash, x.cut, x.stab = 0, 0, 0
		e.say(x, e.playerOrNPC(defender, "You block with your %s!", "%s blocks with their %s!", defender.ActiveWeapon().Name))

	case technique.DefThrow:
		e.say(x, e.playerOrNPC(defender, "You throw %s.", "%s throws %s.", targetName(foe)))
		x.bash, x.cut, x.stab = 0, 0, 0
		foe.AddStatus(condition.Downed, e.rng.Rng(1, 2), 0, 0)
		e.world.KnockBack(foe, e.jitter(defender.Pos))

	case technique.DefDisarm:
		e.world.DropWeapon(foe.Pos, foe.RemoveWeapon())
		st := e.stanceOf(foe)
		x.bash = e.rollBash(foe, st, nil, false)
		x.cut = e.rollCut(foe, nil, false)
		x.stab = e.rollStab(foe, nil, false)
		e.say(x, e.playerOrNPC(defender, "You disarm %s.", "%s disarms %s.", targetName(foe)))
	}
}

// strongerSide returns 0 (left) when left >= right, else 1.
func strongerSide(left, right int) int {
	if left >= right {
		return 0
	}
	return 1
}
