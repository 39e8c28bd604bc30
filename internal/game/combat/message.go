package combat

import (
	"fmt"

	"github.com/cory-johannsen/melee/internal/game/inventory"
	"github.com/cory-johannsen/melee/internal/game/technique"
)

// actorName returns how c is named as the subject of a sentence.
func actorName(c *Combatant) string {
	if c.IsPlayer() {
		return "You"
	}
	return c.Name
}

// targetName returns how c is named as the object of a sentence.
func targetName(c *Combatant) string {
	switch {
	case c.IsPlayer():
		return "you"
	case c.IsMonster():
		return "the " + c.Name
	default:
		return c.Name
	}
}

// targetPossessive returns the possessive form of targetName.
func targetPossessive(c *Combatant) string {
	switch {
	case c.IsPlayer():
		return "your"
	case c.IsMonster():
		return "the " + c.Name + "'s"
	default:
		return c.Name + "'s"
	}
}

// possessivePronoun returns the pronoun for things c owns.
func possessivePronoun(c *Combatant) string {
	if c.IsPlayer() {
		return "your"
	}
	return "their"
}

// playerOrNPC formats you for the player and npc for everyone else. The npc
// format receives c's name before args.
func (e *Engine) playerOrNPC(c *Combatant, you, npc string, args ...any) string {
	if c.IsPlayer() {
		return fmt.Sprintf(you, args...)
	}
	return fmt.Sprintf(npc, append([]any{c.Name}, args...)...)
}

func (e *Engine) say(x *exchange, msg string) {
	x.res.Messages = append(x.res.Messages, msg)
}

func (e *Engine) sayf(x *exchange, format string, args ...any) {
	e.say(x, fmt.Sprintf(format, args...))
}

// verb returns the format of the hit sentence. Arguments by index: the
// attacker, the attacker's possessive pronoun, the weapon name and the target.
func verb(c *Combatant, tech technique.Technique, bash, cut, stab int) string {
	npc := !c.IsPlayer()
	w := c.ActiveWeapon()
	if tech != technique.None {
		if m, ok := w.Move(tech); ok && m.Name != "" {
			if npc {
				return "%[1]s " + m.VerbNPC + " %[4]s"
			}
			return "%[1]s " + m.VerbYou + " %[4]s"
		}
	}

	pick := func(you, them string) string {
		if npc {
			return them
		}
		return you
	}
	switch tech {
	case technique.Sweep:
		return pick("%[1]s sweep %[2]s %[3]s at %[4]s", "%[1]s sweeps %[2]s %[3]s at %[4]s")
	case technique.Precise:
		return pick("%[1]s jab %[2]s %[3]s at %[4]s", "%[1]s jabs %[2]s %[3]s at %[4]s")
	case technique.Brutal:
		return pick("%[1]s slam %[2]s %[3]s against %[4]s", "%[1]s slams %[2]s %[3]s against %[4]s")
	case technique.Grab:
		return pick("%[1]s wrap %[2]s %[3]s around %[4]s", "%[1]s wraps %[2]s %[3]s around %[4]s")
	case technique.Wide:
		return pick("%[1]s swing %[2]s %[3]s wide at %[4]s", "%[1]s swings %[2]s %[3]s wide at %[4]s")
	case technique.Throw:
		return pick("%[1]s use %[2]s %[3]s to toss %[4]s", "%[1]s uses %[2]s %[3]s to toss %[4]s")
	}

	total := bash + cut + stab
	tier := func(verbs [4][2]string) string {
		switch {
		case total >= 30:
			return pick(verbs[0][0], verbs[0][1])
		case total >= 20:
			return pick(verbs[1][0], verbs[1][1])
		case total >= 10:
			return pick(verbs[2][0], verbs[2][1])
		default:
			return pick(verbs[3][0], verbs[3][1])
		}
	}
	switch {
	case w.HasFlag(inventory.FlagSpear) || (w.HasFlag(inventory.FlagStab) && stab > cut):
		return tier(stabVerbs)
	case w.IsCuttingWeapon():
		return tier(cutVerbs)
	default:
		return tier(bashVerbs)
	}
}

var (
	stabVerbs = [4][2]string{
		{"%[1]s impale %[4]s", "%[1]s impales %[4]s"},
		{"%[1]s pierce %[4]s", "%[1]s pierces %[4]s"},
		{"%[1]s stab %[4]s", "%[1]s stabs %[4]s"},
		{"%[1]s poke %[4]s", "%[1]s pokes %[4]s"},
	}
	cutVerbs = [4][2]string{
		{"%[1]s hack %[4]s", "%[1]s hacks %[4]s"},
		{"%[1]s slice %[4]s", "%[1]s slices %[4]s"},
		{"%[1]s cut %[4]s", "%[1]s cuts %[4]s"},
		{"%[1]s nick %[4]s", "%[1]s nicks %[4]s"},
	}
	bashVerbs = [4][2]string{
		{"%[1]s clobber %[4]s", "%[1]s clobbers %[4]s"},
		{"%[1]s batter %[4]s", "%[1]s batters %[4]s"},
		{"%[1]s whack %[4]s", "%[1]s whacks %[4]s"},
		{"%[1]s hit %[4]s", "%[1]s hits %[4]s"},
	}
)

// hitMessage renders the sentence describing a landed blow. target is the
// already-formatted object of the sentence.
func hitMessage(att *Combatant, target, weapon, verbFmt string, dam int, crit bool) string {
	msg := fmt.Sprintf(verbFmt, actorName(att), possessivePronoun(att), weapon, target)
	if dam <= 0 {
		if att.IsPlayer() {
			return msg + " but do no damage."
		}
		return msg + " but does no damage."
	}
	msg += fmt.Sprintf(" for %d damage.", dam)
	if crit {
		msg = "Critical! " + msg
	}
	return msg
}
