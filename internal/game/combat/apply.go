package combat

import (
	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/game/technique"
)

// FallDamage rolls the extra bash damage a monster takes when swept off its
// feet. Fliers take none.
//
// Postcondition: Returns >= 0.
func (e *Engine) FallDamage(c *Combatant) int {
	if c.HasFlag(FlagFlies) {
		return 0
	}
	switch c.Size {
	case SizeTiny:
		return e.rng.Rng(0, 4)
	case SizeSmall:
		return e.rng.Rng(0, 6)
	case SizeMedium:
		return e.rng.Dice(2, 4)
	case SizeLarge:
		return e.rng.Dice(2, 6)
	case SizeHuge:
		return e.rng.Dice(3, 5)
	default:
		return 0
	}
}

// performTechnique applies the effects of the chosen offensive technique to
// the exchange and the target.
func (e *Engine) performTechnique(x *exchange) {
	att, tgt := x.att, x.tgt
	switch x.tech {
	case technique.Rapid:
		att.Moves += e.AttackSpeed(att) / 2
		return
	case technique.Block:
		x.bash = int(float64(x.bash) * 0.7)
		return
	}

	mon := tgt.IsMonster()
	switch x.tech {
	case technique.Sweep:
		if mon {
			if !tgt.HasFlag(FlagFlies) {
				tgt.AddStatus(condition.Downed, e.rng.Rng(1, 2), 0, 0)
				x.bash += e.FallDamage(tgt)
			}
		} else if !e.stanceOf(tgt).ResistsTakedown() {
			tgt.AddStatus(condition.Downed, e.rng.Rng(1, 2), 0, 0)
			x.bash += 3
		}

	case technique.Precise:
		if mon {
			tgt.AddStatus(condition.Stunned, e.rng.Rng(1, 4), 0, 0)
		} else {
			tgt.AddStatus(condition.Stunned, e.rng.Rng(1, 2), 0, 0)
		}
		x.pain += e.rng.Rng(5, 8)

	case technique.Brutal:
		tgt.AddStatus(condition.Stunned, 1, 0, 0)
		e.world.KnockBack(tgt, att.Pos)

	case technique.Throw:
		if mon {
			tgt.AddStatus(condition.Downed, e.rng.Rng(1, 2), 0, 0)
			e.world.KnockBack(tgt, e.jitter(att.Pos))
		} else {
			e.world.KnockBack(tgt, e.jitter(att.Pos))
			if !e.stanceOf(tgt).ResistsTakedown() {
				tgt.AddStatus(condition.Downed, e.rng.Rng(1, 2), 0, 0)
			}
		}

	case technique.Wide:
		e.wideSweep(x)

	case technique.Disarm:
		w := tgt.RemoveWeapon()
		e.world.DropWeapon(tgt.Pos, w)
		e.say(x, e.playerOrNPC(att, "You disarm %s!", "%s disarms %s!", targetName(tgt)))
	}
}

// jitter returns p moved by rng(-1,1) on each axis, x first.
func (e *Engine) jitter(p Point) Point {
	dx := e.rng.Rng(-1, 1)
	dy := e.rng.Rng(-1, 1)
	return p.Add(dx, dy)
}

// wideSweep strikes every other combatant around the attacker, column by
// column, skipping the primary target's tile. Each must beat its own dodge to
// be hit.
func (e *Engine) wideSweep(x *exchange) {
	att := x.att
	flaming := att.ActiveWeapon().HasTechnique(technique.Flaming, att.Skill(SkillUnarmed))
	hits := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			p := att.Pos.Add(dx, dy)
			if p == x.tgt.Pos {
				continue
			}
			other := e.world.CombatantAt(p)
			if other == nil || other == att || other == x.tgt {
				continue
			}
			if e.hitRoll(att, x.stance) < e.rng.Rng(0, 5)+e.DodgeRoll(other) {
				continue
			}
			hits++
			x.res.WideHits = append(x.res.WideHits, other.ID)
			if other.IsMonster() {
				dam := e.rollBash(att, x.stance, other, false) + e.rollCut(att, other, false)
				other.hurt(dam)
				if flaming {
					other.AddStatus(condition.OnFire, e.rng.Rng(3, 4), 0, 0)
				}
			} else {
				bash := e.rollBash(att, x.stance, nil, false)
				cut := e.rollCut(att, nil, false)
				e.damageCharacter(other, inventory.PartLegs, 0, bash, cut)
				if flaming {
					other.AddStatus(condition.OnFire, e.rng.Rng(2, 3), 0, 0)
				}
			}
			e.say(x, e.playerOrNPC(att, "You hit %s!", "%s hits %s!", targetName(other)))
		}
	}
	if att.IsPlayer() {
		if hits == 1 {
			e.say(x, "1 enemy hit!")
		} else {
			e.sayf(x, "%d enemies hit!", hits)
		}
	}
}

// damageCharacter runs raw damage through the Absorber and subtracts the
// remainder from the struck part's pool.
//
// Postcondition: Returns the damage actually taken.
func (e *Engine) damageCharacter(c *Combatant, part inventory.BodyPart, side, bash, cut int) int {
	bash, cut = e.absorber.Absorb(c, part, bash, cut)
	dam := max(0, bash) + max(0, cut)
	c.hurtPart(hpPartFor(part, side), dam)
	return dam
}
