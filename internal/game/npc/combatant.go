package npc

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/melee/internal/game/combat"
	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
)

// NewCombatant creates a live combatant from tmpl with a fresh uuid ID.
// Current stats start at their maximum; every body part starts at tmpl.HP.
//
// Precondition: tmpl must be valid; items and statuses must be non-nil.
// Postcondition: Returns an error if the weapon or any worn armor is unknown.
func NewCombatant(tmpl *Template, items *inventory.Registry, statuses *condition.Registry) (*combat.Combatant, error) {
	c := &combat.Combatant{
		ID:       uuid.NewString(),
		Name:     tmpl.Name,
		Kind:     kinds[tmpl.Kind],
		Faction:  tmpl.Faction,
		Cur:      tmpl.Stats,
		Max:      tmpl.Stats,
		Skills:   make(map[combat.Skill]int, len(tmpl.Skills)),
		Traits:   toSet(tmpl.Traits),
		Bionics:  toSet(tmpl.Bionics),
		Flags:    toSet(tmpl.Flags),
		Power:    tmpl.Power,
		Speed:    tmpl.Speed,
		Statuses: condition.NewActiveSet(statuses),
	}
	for name, lvl := range tmpl.Skills {
		c.Skills[skills[name]] = lvl
	}

	if tmpl.IsMonster() {
		c.Size = sizes[tmpl.Size]
		c.DodgeSkill = tmpl.DodgeSkill
		c.MeleeSkill = tmpl.MeleeSkill
		c.ArmorBash = tmpl.ArmorBash
		c.ArmorCut = tmpl.ArmorCut
		c.HitPoints = tmpl.HitPoints
		c.MaxHitPoints = tmpl.HitPoints
	} else {
		for p := range c.HP {
			c.HP[p] = tmpl.HP
			c.MaxHP[p] = tmpl.HP
		}
		if tmpl.Weapon != "" {
			w := items.Weapon(tmpl.Weapon)
			if w == nil {
				return nil, fmt.Errorf("combatant template %q: unknown weapon %q", tmpl.ID, tmpl.Weapon)
			}
			if !w.IsNull() {
				c.Weapon = w
			}
		}
		for _, id := range tmpl.Worn {
			a, ok := items.Armor(id)
			if !ok {
				return nil, fmt.Errorf("combatant template %q: unknown armor %q", tmpl.ID, id)
			}
			c.Worn = append(c.Worn, a)
		}
	}

	for _, s := range tmpl.Statuses {
		c.AddStatus(s.ID, s.Duration, s.Intensity, 0)
	}
	return c, nil
}

func toSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}
