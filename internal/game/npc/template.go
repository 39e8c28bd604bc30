// Package npc provides combatant template definitions and turns them into
// live combat.Combatant values.
package npc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/melee/internal/game/combat"
)

// StatusSpec is a status a combatant starts with.
type StatusSpec struct {
	ID        string `yaml:"id"`
	Duration  int    `yaml:"duration"`
	Intensity int    `yaml:"intensity"`
}

// Template defines a reusable combatant archetype loaded from YAML.
// Character fields are ignored for monsters and monster fields for characters.
type Template struct {
	ID      string       `yaml:"id"`
	Name    string       `yaml:"name"`
	Kind    string       `yaml:"kind"` // "player" | "npc" | "monster"
	Faction string       `yaml:"faction"`
	Stats   combat.Stats `yaml:"stats"`
	// Skills maps a skill name (melee, unarmed, bashing, cutting, stabbing,
	// dodge) to its level.
	Skills   map[string]int `yaml:"skills"`
	Traits   []string       `yaml:"traits"`
	Bionics  []string       `yaml:"bionics"`
	Power    int            `yaml:"power"`
	HP       int            `yaml:"hp"` // per body-part pool
	Weapon   string         `yaml:"weapon"`
	Worn     []string       `yaml:"worn"`
	Speed    int            `yaml:"speed"`
	Statuses []StatusSpec   `yaml:"statuses"`

	Size       string   `yaml:"size"` // tiny | small | medium | large | huge
	DodgeSkill int      `yaml:"dodge"`
	MeleeSkill int      `yaml:"melee"`
	ArmorBash  int      `yaml:"armor_bash"`
	ArmorCut   int      `yaml:"armor_cut"`
	Flags      []string `yaml:"flags"`
	HitPoints  int      `yaml:"hit_points"`
}

var kinds = map[string]combat.Kind{
	"player":  combat.KindPlayer,
	"npc":     combat.KindNPC,
	"monster": combat.KindMonster,
}

var sizes = map[string]combat.Size{
	"tiny":   combat.SizeTiny,
	"small":  combat.SizeSmall,
	"medium": combat.SizeMedium,
	"large":  combat.SizeLarge,
	"huge":   combat.SizeHuge,
}

var skills = map[string]combat.Skill{
	string(combat.SkillMelee):    combat.SkillMelee,
	string(combat.SkillUnarmed):  combat.SkillUnarmed,
	string(combat.SkillBashing):  combat.SkillBashing,
	string(combat.SkillCutting):  combat.SkillCutting,
	string(combat.SkillStabbing): combat.SkillStabbing,
	string(combat.SkillDodge):    combat.SkillDodge,
}

// IsMonster reports whether the template describes a monster.
func (t *Template) IsMonster() bool { return t.Kind == "monster" }

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff all fields are valid, otherwise every
// violation joined.
func (t *Template) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if t.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if _, ok := kinds[t.Kind]; !ok {
		errs = append(errs, fmt.Errorf("kind %q must be one of player, npc, monster", t.Kind))
	}
	if t.Speed < 1 {
		errs = append(errs, fmt.Errorf("speed must be >= 1, got %d", t.Speed))
	}
	if t.IsMonster() {
		if _, ok := sizes[t.Size]; !ok {
			errs = append(errs, fmt.Errorf("size %q is not a valid monster size", t.Size))
		}
		if t.HitPoints < 1 {
			errs = append(errs, fmt.Errorf("hit_points must be >= 1, got %d", t.HitPoints))
		}
	} else {
		if t.HP < 1 {
			errs = append(errs, fmt.Errorf("hp must be >= 1, got %d", t.HP))
		}
		for name, lvl := range t.Skills {
			if _, ok := skills[name]; !ok {
				errs = append(errs, fmt.Errorf("unknown skill %q", name))
			}
			if lvl < 0 {
				errs = append(errs, fmt.Errorf("skill %q must be >= 0, got %d", name, lvl))
			}
		}
	}
	for _, s := range t.Statuses {
		if s.ID == "" || s.Duration < 1 {
			errs = append(errs, fmt.Errorf("status %q needs an id and a duration >= 1", s.ID))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("combatant template %q: %w", t.ID, errors.Join(errs...))
	}
	return nil
}

// LoadTemplateFromBytes parses a single combatant template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading combatant dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
