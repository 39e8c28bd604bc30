package combat

import (
	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
)

// postHit runs the after-hit pipeline: move loss from bash and stab, blunt
// critical stuns, bionic shock and heat drain, counter-shock from electric
// monsters, glass shatter, weapon sticking and finally the stance effect.
func (e *Engine) postHit(x *exchange) {
	att, tgt := x.att, x.tgt
	mon := tgt.IsMonster()
	w := att.ActiveWeapon()
	unarmed := w.IsUnarmed()

	tgt.Moves -= e.rng.Rng(0, x.bash*2)

	if x.crit && !unarmed {
		turns := x.bash/20 + e.rng.Rng(0, att.Skill(SkillBashing)/2)
		turns = min(turns, e.tuning.StunCap)
		if turns > 0 {
			if mon {
				tgt.AddStatus(condition.Stunned, turns, 0, 0)
			} else {
				tgt.AddStatus(condition.Stunned, 1+turns/2, 0, 0)
			}
		}
	}

	stabMoves := e.rng.Rng(x.stab/2, int(float64(x.stab)*1.5))
	if x.crit {
		stabMoves = int(float64(stabMoves) * 1.5)
	}
	if stabMoves >= e.tuning.KnockdownThreshold {
		e.say(x, e.playerOrNPC(att, "You force %s to the ground!", "%s forces %s to the ground!", targetName(tgt)))
		tgt.AddStatus(condition.Downed, 1, 0, 0)
		tgt.Moves -= stabMoves / 2
	} else {
		tgt.Moves -= stabMoves
	}

	e.bionicEffects(x)

	if mon && tgt.HasFlag(FlagElectric) && !att.Wearing(inventory.PartHands) && w.Conductive() {
		att.hurtAll(e.rng.Rng(0, 1))
		att.Moves -= e.rng.Rng(0, 50)
		if att.IsPlayer() {
			e.sayf(x, "Contact with %s shocks you!", targetName(tgt))
		}
	}

	if w.MadeOf(inventory.MaterialGlass) && e.rng.Rng(0, w.Volume+8) < w.Volume+att.str() {
		e.shatter(x, w)
		w = att.ActiveWeapon()
		unarmed = w.IsUnarmed()
	}

	e.weaponStuck(x, w, unarmed)

	x.stance.onHit(e, x)
}

// bionicEffects fires the shock and heat-drain bionics.
func (e *Engine) bionicEffects(x *exchange) {
	att, tgt := x.att, x.tgt
	mon := tgt.IsMonster()
	w := att.ActiveWeapon()

	shock := att.HasBionic(BionicShock) && att.Power >= 2 &&
		(w.IsUnarmed() || w.MadeOf(inventory.MaterialIron) || w.MadeOf(inventory.MaterialSteel) || w.MadeOf(inventory.MaterialSilver)) &&
		(!mon || !tgt.HasFlag(FlagElectric)) && e.rng.OneIn(3)

	drain := att.HasBionic(BionicHeatAbsorb) && att.Power >= 1 && !w.IsArmed() &&
		(!mon || tgt.HasFlag(FlagWarm))
	// The coin flip is drawn even when the bionic cannot fire.
	drain = e.rng.OneIn(2) && drain

	if drain {
		att.Power--
	}
	if shock {
		att.Power -= 2
		volts := e.rng.Rng(2, 5)
		if mon {
			tgt.hurt(volts * e.rng.Rng(1, 3))
			tgt.Moves -= volts * 180
			e.say(x, e.playerOrNPC(att, "You shock %s.", "%s shocks %s.", targetName(tgt)))
		} else {
			tgt.hurtPart(HPTorso, volts*e.rng.Rng(1, 3))
			tgt.Moves -= volts * 80
		}
	}
	if drain {
		att.Power += e.rng.Rng(0, 2)
		e.say(x, e.playerOrNPC(att, "You drain %s body heat!", "%s drains %s body heat!", targetPossessive(tgt)))
		if mon {
			tgt.Moves -= e.rng.Rng(80, 120)
			tgt.Speed -= e.rng.Rng(4, 6)
		} else {
			tgt.Moves -= e.rng.Rng(80, 120)
		}
	}
}

// shatter breaks a glass weapon: it spills its contents, cuts the wielder's
// arms and adds extra cut damage to the blow.
func (e *Engine) shatter(x *exchange, w *inventory.WeaponDef) {
	att := x.att
	e.say(x, e.playerOrNPC(att, "Your %s shatters!", "%s's %s shatters!", w.Name))
	e.world.Sound(att.Pos, 16)
	for _, id := range w.Contents {
		e.world.DropItem(att.Pos, id)
	}
	e.damageCharacter(att, inventory.PartArms, 1, 0, e.rng.Rng(0, w.Volume*2))
	if w.IsTwoHanded(att.str()) {
		e.damageCharacter(att, inventory.PartArms, 0, 0, e.rng.Rng(0, w.Volume))
	}
	x.cut += e.rng.Rng(0, 5+int(float64(w.Volume)*1.5))
	att.RemoveWeapon()
	x.res.WeaponShattered = true
}

// weaponStuck rolls whether the weapon lodges in the target, costing moves or
// wrenching it out of the attacker's hands.
func (e *Engine) weaponStuck(x *exchange, w *inventory.WeaponDef, unarmed bool) {
	att, tgt := x.att, x.tgt
	mon := tgt.IsMonster()

	pen := e.stuckPenalty(att, tgt, x.stab > x.cut)
	if w.HasFlag(inventory.FlagMessy) {
		pen /= 6
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if !e.rng.OneIn(3) {
					e.world.Splatter(tgt.Pos.Add(dx, dy))
				}
			}
		}
	}

	if !unarmed && pen > e.rng.Dice(att.str()*2, 20) {
		if att.IsPlayer() {
			e.sayf(x, "Your %s gets stuck in %s, pulling it out of your hands!", w.Name, targetName(tgt))
		}
		lost := att.RemoveWeapon()
		if mon {
			if w.IsStabbing() {
				tgt.Speed = int(float64(tgt.Speed) * 0.7)
			} else {
				tgt.Speed = int(float64(tgt.Speed) * 0.85)
			}
			if lost != nil {
				tgt.Carried = append(tgt.Carried, lost)
			}
		} else {
			e.world.DropWeapon(att.Pos, lost)
		}
		x.res.WeaponLost = true
		return
	}

	if mon && (x.cut >= tgt.HitPoints || x.stab >= tgt.HitPoints) {
		cutting := att.Skill(SkillCutting)
		pen /= 2
		pen -= e.rng.Rng(cutting, cutting*2+2)
	}
	if pen > 0 {
		att.Moves -= pen
	}
	if pen >= 50 && att.IsPlayer() {
		e.sayf(x, "Your %s gets stuck in %s, but you yank it free.", w.Name, targetName(tgt))
	}
	if mon && w.IsStabbing() {
		tgt.Speed = int(float64(tgt.Speed) * 0.9)
	}
}
