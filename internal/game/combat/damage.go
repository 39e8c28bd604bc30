package combat

import (
	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
)

// BaseDamage rolls the strength-scaled component of bash damage:
// rng(0, stat/2), plus (stat-9)/2 above 10 and 1.5*(stat-20) above 20.
// Both superhuman bonuses stack.
//
// Postcondition: Returns >= 0.
func (e *Engine) BaseDamage(stat int) int {
	stat = max(0, stat)
	dam := e.rng.Rng(0, stat/2)
	if stat > 10 {
		dam += (stat - 9) / 2
	}
	if stat > 20 {
		dam += int(float64(stat-20) * 1.5)
	}
	return dam
}

// isMonster reports whether tgt is a non-nil monster. Only monster armor is
// applied by the damage rollers; character armor goes through the Absorber.
func isMonster(tgt *Combatant) bool {
	return tgt != nil && tgt.IsMonster()
}

// rollBash rolls bash damage against tgt.
//
// Postcondition: Returns >= 0.
func (e *Engine) rollBash(c *Combatant, st Stance, tgt *Combatant, crit bool) int {
	w := c.ActiveWeapon()
	stat := st.DamageStat(c)
	skill := c.Skill(SkillBashing)
	if w.IsUnarmed() {
		skill = c.Skill(SkillUnarmed)
	}

	ret := e.BaseDamage(stat)

	if c.HasTrait(TraitDrunken) && c.HasStatus(condition.Drunk) {
		drunk := c.statuses().Level(condition.Drunk)
		if w.IsUnarmed() {
			ret += e.rng.Rng(drunk/600, drunk/250)
		} else {
			ret += e.rng.Rng(drunk/900, drunk/400)
		}
	}

	bash := stat/2 + w.Bash
	limit := 5 + stat + skill
	if w.IsUnarmed() {
		bash = e.rng.Rng(0, stat/2+c.Skill(SkillUnarmed))
	}
	if crit {
		bash = int(float64(bash) * 1.5)
		limit *= 2
	}
	if bash > limit {
		bash = (limit*3 + bash) / 4
	}
	if isMonster(tgt) && tgt.HasFlag(FlagPlastic) {
		bash /= e.rng.Rng(2, 4)
	}

	bash = e.rng.Rng(bash/4, bash)
	if floor := skill + stat/2; bash < floor {
		bash = e.rng.Rng(bash, floor)
	}
	ret += bash
	ret += condition.DamageBonus(c.statuses())

	armorBash := 0
	if isMonster(tgt) {
		armorBash = tgt.ArmorBash
	}
	if crit {
		ret += stat/2 + skill
		ret -= armorBash / 2
	} else {
		ret -= armorBash
	}
	return max(0, ret)
}

// rollCut rolls cut damage against tgt. Spears never cut.
//
// Postcondition: Returns >= 0.
func (e *Engine) rollCut(c *Combatant, tgt *Combatant, crit bool) int {
	w := c.ActiveWeapon()
	if w.HasFlag(inventory.FlagSpear) {
		return 0
	}
	cutting := c.Skill(SkillCutting)
	armor := 0
	if isMonster(tgt) {
		armor = tgt.ArmorCut - cutting/2
	}
	if crit {
		armor /= 2
	}
	armor = max(0, armor)

	ret := float64(w.Cut - armor)
	if w.IsUnarmed() && !c.Wearing(inventory.PartHands) {
		if c.HasTrait(TraitClaws) {
			ret += 6
		}
		if c.HasTrait(TraitTalons) {
			ret += float64(6 + min(c.Skill(SkillUnarmed), 8))
		}
		if c.HasTrait(TraitSlimeHands) && (tgt == nil || !tgt.HasFlag(FlagAcidProof)) {
			ret += float64(e.rng.Rng(4, 6))
		}
	}
	if ret <= 0 {
		return 0
	}
	ret *= cutSkillFactor(cutting)
	if crit {
		ret *= 1.0 + float64(cutting)/12.0
	}
	return int(ret)
}

// cutSkillFactor scales cut damage by skill: 80%, 88%, 96%, 104%, 112% up to
// skill 5, then 116%, 120%, 124%...
func cutSkillFactor(skill int) float64 {
	if skill <= 5 {
		return 0.8 + 0.08*float64(skill)
	}
	return 0.92 + 0.04*float64(skill)
}

// rollStab rolls stab damage against tgt. Only bare clawed, nailed or thorned
// hands and SPEAR or STAB weapons can stab.
//
// Postcondition: Returns >= 0.
func (e *Engine) rollStab(c *Combatant, tgt *Combatant, crit bool) int {
	w := c.ActiveWeapon()
	stabbing := c.Skill(SkillStabbing)
	armor := 0
	if isMonster(tgt) {
		armor = tgt.ArmorCut - 3*stabbing
	}
	if crit {
		armor /= 3
	}
	armor = max(0, armor)

	var ret float64
	switch {
	case w.IsUnarmed() && !c.Wearing(inventory.PartHands):
		ret = float64(-armor)
		if c.HasTrait(TraitClaws) {
			ret += 6
		}
		if c.HasTrait(TraitNails) && armor == 0 {
			ret++
		}
		if c.HasTrait(TraitThorns) {
			ret += 4
		}
	case w.IsStabbing():
		ret = float64((w.Cut - armor) / 4)
	default:
		return 0
	}

	if isMonster(tgt) && tgt.Speed > 100 {
		bonus := e.rng.Rng((tgt.Speed-100)/10, (tgt.Speed-100)/5)
		if float64(bonus) > ret*2 {
			bonus = int(ret * 2)
		}
		if bonus > 0 {
			ret += float64(bonus)
		}
	}
	if ret <= 0 {
		return 0
	}
	if crit {
		ret *= min(1.0+float64(stabbing)/5.0, 2.5)
	}
	return int(ret)
}

// stuckPenalty returns the move cost of freeing a weapon lodged in tgt.
// Stabbing strikes weigh cut and armor by 3; other strikes weigh cut and cut
// armor by 4 and bash armor by 5. Skill dice reduce it. Style weapons never
// get stuck.
//
// Postcondition: 0 <= result <= 10 * weapon cut.
func (e *Engine) stuckPenalty(c *Combatant, tgt *Combatant, stabbing bool) int {
	w := c.ActiveWeapon()
	if w.IsStyle() {
		return 0
	}
	armorBash, armorCut := e.tuning.StuckArmor, e.tuning.StuckArmor
	if isMonster(tgt) {
		armorBash, armorCut = tgt.ArmorBash, tgt.ArmorCut
	}
	var pen int
	if stabbing {
		pen = w.Cut*3 + armorBash*3 + armorCut*3 - e.rng.Dice(c.Skill(SkillStabbing), 10)
	} else {
		pen = w.Cut*4 + armorBash*5 + armorCut*4 - e.rng.Dice(c.Skill(SkillCutting), 10)
	}
	pen = min(pen, 10*w.Cut)
	return max(0, pen)
}
