package combat

import (
	"fmt"

	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
)

// SpecialAttack is one mutation-driven bonus attack rolled for a single
// exchange.
type SpecialAttack struct {
	Bash int
	Cut  int
	Stab int
	Text string
}

// mutationAttack describes a trait that can add a bonus attack. roll makes
// the trait's chance draws; the verbs take the attacker, the target and the
// attacker's possessive by index.
type mutationAttack struct {
	trait  string
	roll   func(e *Engine, c *Combatant) bool
	you    string
	npc    string
	damage func(c *Combatant) SpecialAttack
}

// oneIn returns a roll of 1 in (n - dex - k*unarmed).
func oneIn(n, k int) func(*Engine, *Combatant) bool {
	return func(e *Engine, c *Combatant) bool {
		return e.rng.OneIn(n - c.dex() - k*c.Skill(SkillUnarmed))
	}
}

// tailRoll needs both a 1-in-3 and a 1-in-(10 - dex) roll.
func tailRoll(e *Engine, c *Combatant) bool {
	return e.rng.OneIn(3) && e.rng.OneIn(10-c.dex())
}

func fixed(atk SpecialAttack) func(*Combatant) SpecialAttack {
	return func(*Combatant) SpecialAttack { return atk }
}

// mutationAttacks lists the trait attacks in evaluation order. Tentacles roll
// once per tentacle and are handled separately.
var mutationAttacks = []mutationAttack{
	{
		trait: TraitFangs,
		roll: func(e *Engine, c *Combatant) bool {
			return !c.Wearing(inventory.PartMouth) && oneIn(20, 1)(e, c)
		},
		you: "%[1]s sink %[3]s fangs into %[2]s!", npc: "%[1]s sinks %[3]s fangs into %[2]s!",
		damage: fixed(SpecialAttack{Stab: 20}),
	},
	{
		trait: TraitMandibles, roll: oneIn(22, 1),
		you: "%[1]s slice %[2]s with %[3]s mandibles!", npc: "%[1]s slices %[2]s with %[3]s mandibles!",
		damage: fixed(SpecialAttack{Cut: 12}),
	},
	{
		trait: TraitBeak, roll: oneIn(15, 1),
		you: "%[1]s peck %[2]s!", npc: "%[1]s pecks %[2]s!",
		damage: fixed(SpecialAttack{Stab: 15}),
	},
	{
		trait: TraitHooves, roll: oneIn(25, 2),
		you: "%[1]s kick %[2]s with %[3]s hooves!", npc: "%[1]s kicks %[2]s with %[3]s hooves!",
		damage: func(c *Combatant) SpecialAttack { return SpecialAttack{Bash: min(c.str()*3, 40)} },
	},
	{
		trait: TraitHorns, roll: oneIn(20, 1),
		you: "%[1]s headbutt %[2]s with %[3]s horns!", npc: "%[1]s headbutts %[2]s with %[3]s horns!",
		damage: fixed(SpecialAttack{Bash: 3, Stab: 3}),
	},
	{
		trait: TraitHornsCurled, roll: oneIn(20, 1),
		you: "%[1]s headbutt %[2]s with %[3]s curled horns!", npc: "%[1]s headbutts %[2]s with %[3]s curled horns!",
		damage: fixed(SpecialAttack{Bash: 14}),
	},
	{
		trait: TraitHornsPointed, roll: oneIn(22, 1),
		you: "%[1]s stab %[2]s with %[3]s pointed horns!", npc: "%[1]s stabs %[2]s with %[3]s pointed horns!",
		damage: fixed(SpecialAttack{Stab: 24}),
	},
	{
		trait: TraitAntlers, roll: oneIn(20, 1),
		you: "%[1]s butt %[2]s with %[3]s antlers!", npc: "%[1]s butts %[2]s with %[3]s antlers!",
		damage: fixed(SpecialAttack{Bash: 4}),
	},
	{
		trait: TraitTailSting, roll: tailRoll,
		you: "%[1]s sting %[2]s with %[3]s tail!", npc: "%[1]s stings %[2]s with %[3]s tail!",
		damage: fixed(SpecialAttack{Stab: 20}),
	},
	{
		trait: TraitTailClub, roll: tailRoll,
		you: "%[1]s hit %[2]s with %[3]s tail!", npc: "%[1]s hits %[2]s with %[3]s tail!",
		damage: fixed(SpecialAttack{Bash: 18}),
	},
}

// MutationAttacks rolls the bonus attacks c's traits grant against tgt this
// exchange. The result depends only on traits, stats and the draws made; it
// is recomputed on every call.
func (e *Engine) MutationAttacks(c, tgt *Combatant) []SpecialAttack {
	if tgt == nil {
		return nil
	}
	you, target, your := actorName(c), targetName(tgt), possessivePronoun(c)
	text := func(youFmt, npcFmt string) string {
		if c.IsPlayer() {
			return fmt.Sprintf(youFmt, you, target, your)
		}
		return fmt.Sprintf(npcFmt, you, target, your)
	}

	var out []SpecialAttack
	for _, m := range mutationAttacks {
		if !c.HasTrait(m.trait) || !m.roll(e, c) {
			continue
		}
		atk := m.damage(c)
		atk.Text = text(m.you, m.npc)
		out = append(out, atk)
	}
	if n := tentacleCount(c); n > 0 {
		if c.ActiveWeapon().IsTwoHanded(c.str()) {
			n--
		}
		for i := 0; i < n; i++ {
			if oneIn(18, 1)(e, c) {
				out = append(out, SpecialAttack{
					Bash: c.str() / 2,
					Text: text("%[1]s slap %[2]s with %[3]s tentacle!", "%[1]s slaps %[2]s with %[3]s tentacle!"),
				})
			}
		}
	}
	return out
}

// tentacleCount returns the tentacle swings per exchange: 7, 3, 1 or 0.
func tentacleCount(c *Combatant) int {
	switch {
	case c.HasTrait(TraitTentacles8):
		return 7
	case c.HasTrait(TraitTentacles4):
		return 3
	case c.HasTrait(TraitTentacles):
		return 1
	default:
		return 0
	}
}

// performSpecialAttacks adds every mutation attack that beats the target's
// armor to the exchange damage, and may poison the target.
func (e *Engine) performSpecialAttacks(x *exchange) {
	armorBash, armorCut := 0, 0
	if x.tgt.IsMonster() {
		armorBash, armorCut = x.tgt.ArmorBash, x.tgt.ArmorCut
	}
	stabArmor := float64(armorCut) * 0.8

	canPoison := false
	for _, atk := range e.MutationAttacks(x.att, x.tgt) {
		did := false
		if atk.Bash > armorBash {
			x.bash += atk.Bash
			did = true
		}
		if atk.Cut > armorCut {
			x.cut += atk.Cut - armorCut
			did = true
		}
		if float64(atk.Stab) > stabArmor {
			x.stab = int(float64(x.stab) + float64(atk.Stab) - stabArmor)
			did = true
		}
		if !canPoison && e.rng.OneIn(2) && (atk.Cut > armorCut || float64(atk.Stab) > stabArmor) {
			canPoison = true
		}
		if did {
			e.say(x, atk.Text)
			x.res.Specials = append(x.res.Specials, atk)
		}
	}

	if canPoison && x.att.HasTrait(TraitPoisonous) {
		if !x.tgt.HasStatus(condition.Poison) {
			e.say(x, e.playerOrNPC(x.att, "You poison %s!", "%s poisons %s!", targetName(x.tgt)))
		}
		x.tgt.AddStatus(condition.Poison, 6, 0, 0)
	}
}
