package condition

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Duration types understood by ActiveSet.Tick.
const (
	DurationTurns     = "turns"
	DurationPermanent = "permanent"
)

// StatusDef is the static definition of a status effect, loaded from YAML.
type StatusDef struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	DurationType string `yaml:"duration_type"` // "turns" | "permanent"
	MaxIntensity int    `yaml:"max_intensity"` // 0 = uncapped
}

// Validate checks that the definition is usable.
//
// Postcondition: Returns nil if valid, or an error joining every violation.
func (d *StatusDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.DurationType != DurationTurns && d.DurationType != DurationPermanent {
		errs = append(errs, fmt.Errorf("duration_type must be %q or %q, got %q", DurationTurns, DurationPermanent, d.DurationType))
	}
	if d.MaxIntensity < 0 {
		errs = append(errs, fmt.Errorf("max_intensity must be >= 0, got %d", d.MaxIntensity))
	}
	return errors.Join(errs...)
}

// Registry holds all known StatusDefs keyed by ID.
type Registry struct {
	defs map[string]*StatusDef
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*StatusDef)}
}

// Register adds def to the registry, overwriting any existing entry with the same ID.
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *StatusDef) {
	r.defs[def.ID] = def
}

// Get returns the StatusDef for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*StatusDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Resolve returns the registered definition for id. Unknown ids get an
// uncapped turn-limited definition, which is also registered so later
// lookups return the same pointer.
//
// Postcondition: Returns a non-nil StatusDef with ID == id.
func (r *Registry) Resolve(id string) *StatusDef {
	if d, ok := r.defs[id]; ok {
		return d
	}
	d := &StatusDef{ID: id, Name: id, DurationType: DurationTurns}
	r.defs[id] = d
	return d
}

// All returns the registered definitions sorted by ID.
func (r *Registry) All() []*StatusDef {
	out := make([]*StatusDef, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDirectory reads every *.yaml file in dir on top of the built-in
// statuses, so content may override or extend DefaultRegistry.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading status dir %q: %w", dir, err)
	}
	reg := DefaultRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def StatusDef
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		reg.Register(&def)
	}
	return reg, nil
}

// DefaultRegistry returns a registry holding every status the melee engine
// reads or writes.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, d := range []StatusDef{
		{ID: Stunned, Name: "Stunned", DurationType: DurationTurns},
		{ID: Downed, Name: "Downed", DurationType: DurationTurns},
		{ID: AttackBoost, Name: "Attack Boost", DurationType: DurationTurns},
		{ID: DodgeBoost, Name: "Dodge Boost", DurationType: DurationTurns},
		{ID: DamageBoost, Name: "Damage Boost", DurationType: DurationTurns},
		{ID: SpeedBoost, Name: "Speed Boost", DurationType: DurationTurns},
		{ID: ArmorBoost, Name: "Armor Boost", DurationType: DurationTurns},
		{ID: ViperCombo, Name: "Viper Combo", DurationType: DurationTurns, MaxIntensity: 2},
		{ID: Poison, Name: "Poisoned", DurationType: DurationTurns},
		{ID: OnFire, Name: "On Fire", DurationType: DurationTurns},
		{ID: Drunk, Name: "Drunk", DurationType: DurationTurns},
		{ID: Sleep, Name: "Asleep", DurationType: DurationTurns},
		{ID: LyingDown, Name: "Lying Down", DurationType: DurationPermanent},
		{ID: BearTrap, Name: "Caught in a Bear Trap", DurationType: DurationPermanent},
	} {
		def := d
		reg.Register(&def)
	}
	return reg
}
