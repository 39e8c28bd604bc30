package combat

import "github.com/cory-johannsen/melee/internal/game/inventory"

// practice awards skill practice for one exchange. Melee always improves;
// the damage disciplines actually used improve in an order set by the weapon.
// Monsters do not learn.
func (e *Engine) practice(c *Combatant, hit, unarmed, bashing, cutting, stabbing bool) {
	if c.IsMonster() {
		return
	}
	lo, hi := 2, 2
	if hit {
		lo, hi = 5, 10
		c.practice(SkillMelee, e.rng.Rng(5, 10))
	} else {
		c.practice(SkillMelee, e.rng.Rng(2, 5))
	}

	type step struct {
		skill Skill
		used  bool
	}
	bash := step{SkillBashing, bashing}
	cut := step{SkillCutting, cutting}
	stab := step{SkillStabbing, stabbing}

	var order [3]step
	w := c.ActiveWeapon()
	switch {
	case w.HasFlag(inventory.FlagSpear):
		order = [3]step{stab, bash, cut}
	case w.HasFlag(inventory.FlagStab):
		if e.rng.OneIn(2) {
			order = [3]step{stab, cut, bash}
		} else {
			order = [3]step{cut, stab, bash}
		}
	case w.IsCuttingWeapon():
		order = [3]step{cut, bash, stab}
	default:
		order = [3]step{bash, cut, stab}
	}

	if unarmed {
		c.practice(SkillUnarmed, e.rng.Rng(lo, hi))
	}
	for _, s := range order {
		if s.used {
			c.practice(s.skill, e.rng.Rng(lo, hi))
		}
	}
}
