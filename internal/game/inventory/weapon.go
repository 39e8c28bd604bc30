// Package inventory provides definitions and loaders for melee weapons, fighting
// styles and worn armor used by the melee engine.
package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/melee/internal/game/technique"
)

// Weapon flags read by the melee engine.
const (
	// FlagSpear marks a weapon that only stabs; it deals no cut damage.
	FlagSpear = "SPEAR"
	// FlagStab marks a weapon whose cut rating also drives stab damage.
	FlagStab = "STAB"
	// FlagUnarmed marks a wielded item that still counts as fighting unarmed.
	FlagUnarmed = "UNARMED_WEAPON"
	// FlagMessy marks a weapon that sprays gore and rarely gets stuck.
	FlagMessy = "MESSY"
)

// Materials with melee side effects.
const (
	MaterialIron   = "iron"
	MaterialSteel  = "steel"
	MaterialSilver = "silver"
	MaterialGlass  = "glass"
)

// GramsPerWeightUnit converts Weight (grams) into the coarse weight units used
// by attack-time, stumble and two-handed checks.
const GramsPerWeightUnit = 113

// BareHandsID is the ID of the implicit weapon of an empty-handed combatant.
const BareHandsID = "null"

// BareHands is the weapon every combatant without a wielded item fights with.
// It has no stats, materials or flags.
var BareHands = &WeaponDef{ID: BareHandsID, Name: "fists"}

// StyleMove is one technique a fighting style teaches once the wielder's unarmed
// skill reaches Level.
type StyleMove struct {
	Name      string              `yaml:"name"`
	VerbYou   string              `yaml:"verb_you"`
	VerbNPC   string              `yaml:"verb_npc"`
	Technique technique.Technique `yaml:"technique"`
	Level     int                 `yaml:"level"`
}

// WeaponDef defines the static melee properties of a wieldable item loaded from YAML.
// A definition with a non-empty Stance is a fighting style rather than an object.
type WeaponDef struct {
	ID         string        `yaml:"id"`
	Name       string        `yaml:"name"`
	Bash       int           `yaml:"bash"`
	Cut        int           `yaml:"cut"`
	ToHit      int           `yaml:"to_hit"`
	Volume     int           `yaml:"volume"`
	Weight     int           `yaml:"weight"` // grams
	Materials  []string      `yaml:"materials"`
	Flags      []string      `yaml:"flags"`
	Techniques technique.Set `yaml:"techniques"`
	Stance     string        `yaml:"stance"`
	Moves      []StyleMove   `yaml:"moves"`
	Contents   []string      `yaml:"contents"` // item IDs spilled if the weapon shatters
}

// IsNull reports whether w is the empty-hands weapon.
func (w *WeaponDef) IsNull() bool {
	return w == nil || w.ID == BareHandsID
}

// IsStyle reports whether w is a fighting style.
func (w *WeaponDef) IsStyle() bool {
	return !w.IsNull() && w.Stance != ""
}

// IsUnarmed reports whether attacking with w counts as an unarmed attack.
func (w *WeaponDef) IsUnarmed() bool {
	return w.IsNull() || w.IsStyle() || w.HasFlag(FlagUnarmed)
}

// IsArmed reports whether w is a real object rather than bare hands or a style.
func (w *WeaponDef) IsArmed() bool {
	return !w.IsNull() && !w.IsStyle()
}

// HasFlag reports whether w carries flag.
func (w *WeaponDef) HasFlag(flag string) bool {
	if w.IsNull() {
		return false
	}
	for _, f := range w.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// MadeOf reports whether material is one of w's materials.
func (w *WeaponDef) MadeOf(material string) bool {
	if w.IsNull() {
		return false
	}
	for _, m := range w.Materials {
		if m == material {
			return true
		}
	}
	return false
}

// Conductive reports whether w conducts electricity: every material is iron,
// steel or silver, or no material is listed at all. Bare hands do not conduct.
func (w *WeaponDef) Conductive() bool {
	if w.IsNull() {
		return false
	}
	for _, m := range w.Materials {
		if m != MaterialIron && m != MaterialSteel && m != MaterialSilver {
			return false
		}
	}
	return true
}

// IsBashingWeapon reports whether w is heavy enough to train bashing.
func (w *WeaponDef) IsBashingWeapon() bool {
	return !w.IsNull() && w.Bash >= 8
}

// IsCuttingWeapon reports whether w has an edge worth training cutting with.
func (w *WeaponDef) IsCuttingWeapon() bool {
	return !w.IsNull() && w.Cut >= 8 && !w.HasFlag(FlagSpear)
}

// IsStabbing reports whether w stabs.
func (w *WeaponDef) IsStabbing() bool {
	return w.HasFlag(FlagSpear) || w.HasFlag(FlagStab)
}

// WeightUnits returns Weight in coarse weight units.
func (w *WeaponDef) WeightUnits() int {
	if w.IsNull() {
		return 0
	}
	return w.Weight / GramsPerWeightUnit
}

// IsTwoHanded reports whether a wielder with the given current strength needs
// both hands for w.
func (w *WeaponDef) IsTwoHanded(strength int) bool {
	return w.WeightUnits() > strength*4
}

// AttackTime returns the base move cost of one swing with w.
//
// Postcondition: Returns >= 65.
func (w *WeaponDef) AttackTime() int {
	if w.IsNull() {
		return 65
	}
	return 65 + 4*w.Volume + 2*w.WeightUnits()
}

// HasTechnique reports whether w grants t to a wielder with the given unarmed
// skill. Style moves unlock at their Level; plain techniques are always granted.
func (w *WeaponDef) HasTechnique(t technique.Technique, unarmed int) bool {
	if w.IsNull() {
		return false
	}
	if w.IsStyle() {
		for _, m := range w.Moves {
			if m.Technique == t && unarmed >= m.Level {
				return true
			}
		}
	}
	return w.Techniques.Has(t)
}

// Move returns the style move that teaches t, if any.
func (w *WeaponDef) Move(t technique.Technique) (StyleMove, bool) {
	if !w.IsStyle() {
		return StyleMove{}, false
	}
	for _, m := range w.Moves {
		if m.Technique == t {
			return m, true
		}
	}
	return StyleMove{}, false
}

// Validate checks that the WeaponDef satisfies its invariants.
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid, otherwise every violation joined.
func (w *WeaponDef) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if w.ID == BareHandsID {
		errs = append(errs, fmt.Errorf("id %q is reserved", BareHandsID))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if w.Bash < 0 || w.Cut < 0 {
		errs = append(errs, errors.New("bash and cut must be >= 0"))
	}
	if w.Volume < 0 || w.Weight < 0 {
		errs = append(errs, errors.New("volume and weight must be >= 0"))
	}
	if len(w.Moves) > 0 && w.Stance == "" {
		errs = append(errs, errors.New("moves require a stance"))
	}
	for i, m := range w.Moves {
		if m.Technique == technique.None {
			errs = append(errs, fmt.Errorf("moves[%d]: technique must not be none", i))
		}
		if m.Level < 0 {
			errs = append(errs, fmt.Errorf("moves[%d]: level must be >= 0", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// LoadWeapons reads all *.yaml files from dir, parses each as a WeaponDef,
// validates it, and returns the collected slice sorted by ID.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid WeaponDefs or the first encountered error.
func LoadWeapons(dir string) ([]*WeaponDef, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot read directory %q: %w", dir, err)
	}

	var weapons []*WeaponDef
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", path, err)
		}
		var w WeaponDef
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot parse file %q: %w", path, err)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", path, err)
		}
		weapons = append(weapons, &w)
	}
	sort.Slice(weapons, func(i, j int) bool { return weapons[i].ID < weapons[j].ID })
	return weapons, nil
}
