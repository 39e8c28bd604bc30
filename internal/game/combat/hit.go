package combat

import (
	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/game/technique"
)

// HitRoll rolls c's to-hit dice.
//
// Precondition: c must be a character.
// Postcondition: Returns >= 0.
func (e *Engine) HitRoll(c *Combatant) int {
	return e.hitRoll(c, e.stanceOf(c))
}

// hitRoll rolls numdice d sides, where numdice is 1 + stat/2 + melee + weapon
// to-hit + attack_boost + the best weapon-class bonus, and sides is
// 10 - torso encumbrance. A pool that collapses below one die rolls a single
// die of 8 - torso encumbrance instead. Sides never drop below 2.
func (e *Engine) hitRoll(c *Combatant, st Stance) int {
	w := c.ActiveWeapon()
	stat := st.HitStat(c)
	numdice := 1 + stat/2 + c.Skill(SkillMelee) + w.ToHit + condition.HitBonus(c.statuses())
	torso := c.Encumbrance(inventory.PartTorso)
	sides := max(2, 10-torso)

	best := 0
	if w.IsUnarmed() {
		unarmed := c.Skill(SkillUnarmed)
		best = unarmed
		if unarmed > 4 {
			best += unarmed - 4
		}
	}
	if w.IsBashingWeapon() {
		best = max(best, c.Skill(SkillBashing)/3)
	}
	if w.IsCuttingWeapon() {
		best = max(best, c.Skill(SkillCutting)/2)
	}
	if w.IsStabbing() {
		best = max(best, c.Skill(SkillStabbing)/2)
	}
	numdice += best

	if c.HasTrait(TraitDrunken) {
		drunk := c.statuses().Level(condition.Drunk)
		if w.IsUnarmed() {
			numdice += drunk / 300
		} else {
			numdice += drunk / 400
		}
	}
	if c.HasTrait(TraitHyperopic) && !c.wearingAny(readingGlasses) {
		numdice -= 2
	}

	if numdice < 1 {
		numdice = 1
		sides = max(2, 8-torso)
	}
	return e.rng.Dice(numdice, sides)
}

func (c *Combatant) wearingAny(ids []string) bool {
	for _, id := range ids {
		if c.WearingItem(id) {
			return true
		}
	}
	return false
}

// Dodge returns c's dodge value and spends one dodge from the turn allotment.
// Monsters return their dodge skill adjusted for traps and exhaustion.
//
// Postcondition: Returns >= 0. A sleeping, prone or busy character returns 0
// without spending a dodge.
func (e *Engine) Dodge(c *Combatant) int {
	if c.IsMonster() {
		return e.monsterDodge(c)
	}
	st := c.statuses()
	if condition.Incapacitated(st) || c.Busy {
		return 0
	}
	dodgeSkill := c.Skill(SkillDodge)
	dex := c.dex()

	ret := dex/2 + dodgeSkill + condition.DodgeBonus(st)
	ret -= c.Encumbrance(inventory.PartLegs)/2 + c.Encumbrance(inventory.PartTorso)
	ret += c.currentSpeed() / 150

	if c.HasTrait(TraitTailLong) {
		ret += 2
	}
	if c.HasTrait(TraitTailFluffy) {
		ret += 4
	}
	if c.HasTrait(TraitWhiskers) {
		ret++
	}
	if c.HasTrait(TraitWingsBat) {
		ret -= 3
	}
	if c.Max.Str >= 16 {
		ret--
	} else if c.Max.Str <= 5 {
		ret++
	}

	if c.DodgesLeft <= 0 {
		if e.rng.Rng(0, dodgeSkill+dex+15) <= dodgeSkill+dex {
			ret = e.rng.Rng(ret/2, ret)
		} else {
			ret = 0
		}
	}

	if limit := dex/2 + 2*dodgeSkill; ret > limit {
		ret = (ret + limit) / 2
	}
	c.DodgesLeft--
	return max(0, ret)
}

// DodgeRoll rolls c's dodge dice: dodge value d6 for characters, and
// (dodge + size modifier + speed/80) d10 for monsters.
//
// Postcondition: Returns >= 0.
func (e *Engine) DodgeRoll(c *Combatant) int {
	if c.IsMonster() {
		return e.monsterDodgeRoll(c)
	}
	return e.rng.Dice(e.Dodge(c), 6)
}

func (e *Engine) monsterDodge(c *Combatant) int {
	if c.HasStatus(condition.Downed) {
		return 0
	}
	ret := max(0, c.DodgeSkill)
	if c.HasStatus(condition.BearTrap) {
		ret /= 2
	}
	if c.Moves <= -100-c.Speed {
		ret = e.rng.Rng(0, ret)
	}
	return ret
}

var sizeDodgeModifier = map[Size]int{
	SizeTiny:  6,
	SizeSmall: 3,
	SizeLarge: -2,
	SizeHuge:  -4,
}

func (e *Engine) monsterDodgeRoll(c *Combatant) int {
	numdice := e.monsterDodge(c) + sizeDodgeModifier[c.Size] + c.Speed/80
	return e.rng.Dice(numdice, 10)
}

// AttackSpeed returns the move cost of one swing: weapon attack time plus
// 20 per point of torso encumbrance, scaled by bone mutations and reduced by
// speed_boost.
//
// Postcondition: Returns >= Tuning.MinAttackCost.
func (e *Engine) AttackSpeed(c *Combatant) int {
	cost := c.ActiveWeapon().AttackTime() + 20*c.Encumbrance(inventory.PartTorso)
	if c.HasTrait(TraitLightBones) {
		cost = int(float64(cost) * 0.9)
	}
	if c.HasTrait(TraitHollowBones) {
		cost = int(float64(cost) * 0.8)
	}
	cost -= c.statuses().Intensity(condition.SpeedBoost)
	return max(e.tuning.MinAttackCost, cost)
}

// stumble returns the extra move cost of a missed swing with a heavy or bulky
// weapon. Strong or agile characters, and lucky ones, stumble only part of it.
//
// Postcondition: Returns >= 0.
func (e *Engine) stumble(c *Combatant) int {
	w := c.ActiveWeapon()
	pen := 2*w.Volume + w.WeightUnits()
	if c.HasTrait(TraitDeft) {
		pen = int(float64(pen)*0.3) - 10
	}
	if pen < 0 {
		pen = 0
	}
	str, dex := c.str(), c.dex()
	if pen > 0 && (str >= 15 || dex >= 21 || e.rng.OneIn(16-str) || e.rng.OneIn(22-dex)) {
		pen = e.rng.Rng(0, pen)
	}
	return pen
}

// missed applies the cost of a swing that did not connect.
func (e *Engine) missed(x *exchange, cost int) {
	att := x.att
	w := att.ActiveWeapon()
	pen := e.stumble(att)
	feint := w.HasTechnique(technique.Feint, att.Skill(SkillUnarmed))
	if att.IsPlayer() {
		switch {
		case feint:
			e.say(x, "You feint.")
		case pen >= 60:
			e.say(x, "You miss and stumble with the momentum.")
		case pen >= 10:
			e.say(x, "You swing wildly and miss.")
		default:
			e.say(x, "You miss.")
		}
	}
	e.practice(att, false, w.IsUnarmed(), w.IsBashingWeapon(), w.IsCuttingWeapon(), w.IsStabbing())
	cost += pen
	if feint {
		cost = e.rng.Rng(cost/3, cost)
	}
	att.Moves -= cost
	x.res.MoveCost = cost
}
