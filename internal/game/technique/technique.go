// Package technique defines the closed catalog of special melee maneuvers a
// weapon or fighting style can grant.
package technique

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Technique identifies one maneuver. The zero value is None.
type Technique int

const (
	None Technique = iota
	Sweep
	Precise
	Brutal
	Grab
	Throw
	Wide
	Disarm
	Rapid
	Feint
	Flaming
	Block
	BlockLegs
	WBlock1
	WBlock2
	WBlock3
	Counter
	Break
	DefThrow
	DefDisarm
)

var names = [...]string{
	None:      "none",
	Sweep:     "sweep",
	Precise:   "precise",
	Brutal:    "brutal",
	Grab:      "grab",
	Throw:     "throw",
	Wide:      "wide",
	Disarm:    "disarm",
	Rapid:     "rapid",
	Feint:     "feint",
	Flaming:   "flaming",
	Block:     "block",
	BlockLegs: "block_legs",
	WBlock1:   "wblock_1",
	WBlock2:   "wblock_2",
	WBlock3:   "wblock_3",
	Counter:   "counter",
	Break:     "break",
	DefThrow:  "def_throw",
	DefDisarm: "def_disarm",
}

// String returns the lower-case catalog name.
func (t Technique) String() string {
	if t < 0 || int(t) >= len(names) {
		return "unknown"
	}
	return names[t]
}

// Parse resolves a catalog name (case-insensitive) to a Technique.
//
// Postcondition: Returns a known Technique or a non-nil error.
func Parse(s string) (Technique, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == key {
			return Technique(i), nil
		}
	}
	return None, fmt.Errorf("technique: unknown technique %q", s)
}

// UnmarshalYAML decodes a technique from its catalog name.
func (t *Technique) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// MarshalYAML encodes a technique as its catalog name.
func (t Technique) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// CritOnly reports whether the technique can only be selected on a critical hit.
func (t Technique) CritOnly() bool {
	return t == Sweep || t == Precise || t == Brutal
}

// Defensive reports whether the technique is chosen by a defender.
func (t Technique) Defensive() bool {
	switch t {
	case Block, BlockLegs, WBlock1, WBlock2, WBlock3, Counter, DefThrow, DefDisarm:
		return true
	}
	return false
}

// All returns every catalog entry except None, in declaration order.
func All() []Technique {
	out := make([]Technique, 0, len(names)-1)
	for i := 1; i < len(names); i++ {
		out = append(out, Technique(i))
	}
	return out
}

// Set is an ordered collection of techniques granted by one weapon.
type Set []Technique

// Has reports whether t is in the set.
func (s Set) Has(t Technique) bool {
	for _, x := range s {
		if x == t {
			return true
		}
	}
	return false
}
