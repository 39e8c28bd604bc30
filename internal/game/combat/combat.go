// Package combat implements the melee exchange engine: hit and dodge rolls,
// critical hits, damage, offensive and defensive techniques, mutation attacks,
// post-hit effects and fighting-style stances.
package combat

import (
	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
)

// Kind distinguishes the avatar, NPCs and monsters.
type Kind int

const (
	KindPlayer Kind = iota
	KindNPC
	KindMonster
)

// String returns a human-readable kind label.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindNPC:
		return "npc"
	case KindMonster:
		return "monster"
	default:
		return "unknown"
	}
}

// Size is a monster's body size class.
type Size int

const (
	SizeTiny Size = iota
	SizeSmall
	SizeMedium
	SizeLarge
	SizeHuge
)

// Skill names a trainable discipline.
type Skill string

const (
	SkillMelee    Skill = "melee"
	SkillUnarmed  Skill = "unarmed"
	SkillBashing  Skill = "bashing"
	SkillCutting  Skill = "cutting"
	SkillStabbing Skill = "stabbing"
	SkillDodge    Skill = "dodge"
)

// Stats holds the four primary attributes.
type Stats struct {
	Str int `yaml:"str"`
	Dex int `yaml:"dex"`
	Int int `yaml:"int"`
	Per int `yaml:"per"`
}

// Point is a map tile coordinate.
type Point struct {
	X, Y int
}

// Add returns p offset by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// HPPart indexes a character's hit point pools.
type HPPart int

const (
	HPHead HPPart = iota
	HPTorso
	HPArmL
	HPArmR
	HPLegL
	HPLegR
	NumHPParts
)

// hpPartFor maps a struck body part and side (0 left, 1 right) to its pool.
func hpPartFor(part inventory.BodyPart, side int) HPPart {
	switch part {
	case inventory.PartHead, inventory.PartEyes, inventory.PartMouth:
		return HPHead
	case inventory.PartArms, inventory.PartHands:
		if side == 0 {
			return HPArmL
		}
		return HPArmR
	case inventory.PartLegs, inventory.PartFeet:
		if side == 0 {
			return HPLegL
		}
		return HPLegR
	default:
		return HPTorso
	}
}

// partName returns the body part label used in combat text, e.g. "left arm".
func partName(part inventory.BodyPart, side int) string {
	switch part {
	case inventory.PartArms, inventory.PartHands, inventory.PartLegs, inventory.PartFeet:
		if side == 0 {
			return "left " + part.DisplayName()
		}
		return "right " + part.DisplayName()
	default:
		return part.DisplayName()
	}
}

// Combatant is one participant in a melee exchange: the player avatar, an NPC
// or a monster. Character-only fields are ignored for monsters and vice versa.
type Combatant struct {
	ID      string
	Name    string
	Kind    Kind
	Faction string

	Cur Stats
	Max Stats

	Skills  map[Skill]int
	Traits  map[string]bool
	Bionics map[string]bool
	Power   int

	Statuses *condition.ActiveSet

	HP    [NumHPParts]int
	MaxHP [NumHPParts]int

	Weapon *inventory.WeaponDef
	Worn   inventory.Worn

	Moves int
	Speed int
	Pain  int

	DodgesLeft int
	BlocksLeft int
	// Busy is true while the character is occupied by a long activity.
	Busy bool

	Pos        Point
	Initiative int

	// Monster fields.
	Size         Size
	DodgeSkill   int
	MeleeSkill   int
	ArmorBash    int
	ArmorCut     int
	Flags        map[string]bool
	HitPoints    int
	MaxHitPoints int
	// Carried holds weapons that got stuck in this monster.
	Carried []*inventory.WeaponDef

	// Practice accumulates skill practice points awarded by exchanges.
	Practice map[Skill]int
}

// IsPlayer reports whether this combatant is the player avatar.
func (c *Combatant) IsPlayer() bool { return c.Kind == KindPlayer }

// IsMonster reports whether this combatant is a monster.
func (c *Combatant) IsMonster() bool { return c.Kind == KindMonster }

// IsDead reports whether this combatant can no longer fight.
//
// Postcondition: monsters are dead at HitPoints <= 0; characters when the
// head or torso pool reaches 0.
func (c *Combatant) IsDead() bool {
	if c.IsMonster() {
		return c.HitPoints <= 0
	}
	return c.HP[HPHead] <= 0 || c.HP[HPTorso] <= 0
}

// Hostile reports whether c and other fight on different sides.
func (c *Combatant) Hostile(other *Combatant) bool {
	return other != nil && c != other && c.Faction != other.Faction
}

// HasTrait reports whether the combatant carries the named mutation trait.
func (c *Combatant) HasTrait(name string) bool { return c.Traits[name] }

// HasFlag reports whether a monster carries the named flag.
func (c *Combatant) HasFlag(name string) bool { return c.Flags[name] }

// HasBionic reports whether the named bionic is installed and active.
func (c *Combatant) HasBionic(name string) bool { return c.Bionics[name] }

// Skill returns the level of s, clamped at zero.
func (c *Combatant) Skill(s Skill) int { return max(0, c.Skills[s]) }

// ActiveWeapon returns the wielded weapon, or BareHands.
//
// Postcondition: never returns nil.
func (c *Combatant) ActiveWeapon() *inventory.WeaponDef {
	if c.Weapon == nil {
		return inventory.BareHands
	}
	return c.Weapon
}

// RemoveWeapon empties the combatant's hands and returns what was wielded,
// or nil if the hands were already empty.
func (c *Combatant) RemoveWeapon() *inventory.WeaponDef {
	w := c.Weapon
	c.Weapon = nil
	if w.IsNull() {
		return nil
	}
	return w
}

// Unarmed reports whether the combatant fights with bare hands, a style or an
// unarmed weapon.
func (c *Combatant) Unarmed() bool { return c.ActiveWeapon().IsUnarmed() }

// statuses returns the status set, creating an empty one on first use.
func (c *Combatant) statuses() *condition.ActiveSet {
	if c.Statuses == nil {
		c.Statuses = condition.NewActiveSet(nil)
	}
	return c.Statuses
}

// HasStatus reports whether the status id is active.
func (c *Combatant) HasStatus(id string) bool { return c.statuses().Has(id) }

// AddStatus adds or extends a status effect.
func (c *Combatant) AddStatus(id string, duration, intensity, limit int) {
	c.statuses().Add(id, duration, intensity, limit)
}

// Encumbrance returns the worn encumbrance on part.
func (c *Combatant) Encumbrance(part inventory.BodyPart) int {
	return c.Worn.Encumbrance(part)
}

// Wearing reports whether any worn item covers part.
func (c *Combatant) Wearing(part inventory.BodyPart) bool {
	return c.Worn.Covers(part)
}

// WearingItem reports whether an armor piece with the given id is worn.
func (c *Combatant) WearingItem(id string) bool {
	for _, a := range c.Worn {
		if a != nil && a.ID == id {
			return true
		}
	}
	return false
}

// Clamped current attributes. Pain and other penalties may drive the raw
// values negative; combat formulas never see them below zero.
func (c *Combatant) str() int { return max(0, c.Cur.Str) }
func (c *Combatant) dex() int { return max(0, c.Cur.Dex) }
func (c *Combatant) intl() int { return max(0, c.Cur.Int) }
func (c *Combatant) per() int { return max(0, c.Cur.Per) }

// currentSpeed returns speed including speed_boost.
func (c *Combatant) currentSpeed() int {
	return c.Speed + condition.SpeedBonus(c.statuses())
}

// hurt removes hit points from a monster.
//
// Postcondition: HitPoints never drops below zero.
func (c *Combatant) hurt(dam int) {
	if dam <= 0 {
		return
	}
	c.HitPoints = max(0, c.HitPoints-dam)
}

// hurtPart removes hit points from one of a character's pools.
func (c *Combatant) hurtPart(p HPPart, dam int) {
	if dam <= 0 {
		return
	}
	c.HP[p] = max(0, c.HP[p]-dam)
}

// hurtAll removes dam from every pool, or from HitPoints for a monster.
func (c *Combatant) hurtAll(dam int) {
	if c.IsMonster() {
		c.hurt(dam)
		return
	}
	for p := HPPart(0); p < NumHPParts; p++ {
		c.hurtPart(p, dam)
	}
}

// practice records skill practice.
func (c *Combatant) practice(s Skill, amount int) {
	if c.Practice == nil {
		c.Practice = make(map[Skill]int)
	}
	c.Practice[s] += amount
}
