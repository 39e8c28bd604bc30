package inventory

import (
	"fmt"
	"sort"
)

// Registry holds all loaded weapon and armor definitions indexed by ID.
type Registry struct {
	weapons map[string]*WeaponDef
	armors  map[string]*ArmorDef
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{
		weapons: make(map[string]*WeaponDef),
		armors:  make(map[string]*ArmorDef),
	}
}

// RegisterWeapon adds w to the registry.
//
// Precondition:  w must not be nil.
// Postcondition: Weapon(w.ID) returns w; returns error if w.ID already registered.
func (r *Registry) RegisterWeapon(w *WeaponDef) error {
	if _, exists := r.weapons[w.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterWeapon: weapon ID %q already registered", w.ID)
	}
	r.weapons[w.ID] = w
	return nil
}

// RegisterArmor adds a to the registry.
//
// Precondition:  a must not be nil.
// Postcondition: Armor(a.ID) returns (a, true); returns error if a.ID already registered.
func (r *Registry) RegisterArmor(a *ArmorDef) error {
	if _, exists := r.armors[a.ID]; exists {
		return fmt.Errorf("inventory: Registry.RegisterArmor: armor ID %q already registered", a.ID)
	}
	r.armors[a.ID] = a
	return nil
}

// Weapon returns the WeaponDef for the given id, or nil if not found.
// The empty string and BareHandsID resolve to BareHands.
func (r *Registry) Weapon(id string) *WeaponDef {
	if id == "" || id == BareHandsID {
		return BareHands
	}
	return r.weapons[id]
}

// Armor returns the ArmorDef for the given id and whether it was found.
func (r *Registry) Armor(id string) (*ArmorDef, bool) {
	a, ok := r.armors[id]
	return a, ok
}

// AllWeapons returns all registered WeaponDefs sorted by ID.
//
// Postcondition: len(result) == number of registered weapons.
func (r *Registry) AllWeapons() []*WeaponDef {
	out := make([]*WeaponDef, 0, len(r.weapons))
	for _, w := range r.weapons {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadRegistry loads weapons from weaponDir and armor from armorDir.
// An empty directory path skips that kind.
//
// Postcondition: Returns a populated Registry or the first load/registration error.
func LoadRegistry(weaponDir, armorDir string) (*Registry, error) {
	reg := NewRegistry()
	if weaponDir != "" {
		weapons, err := LoadWeapons(weaponDir)
		if err != nil {
			return nil, err
		}
		for _, w := range weapons {
			if err := reg.RegisterWeapon(w); err != nil {
				return nil, err
			}
		}
	}
	if armorDir != "" {
		armors, err := LoadArmors(armorDir)
		if err != nil {
			return nil, err
		}
		for _, a := range armors {
			if err := reg.RegisterArmor(a); err != nil {
				return nil, err
			}
		}
	}
	return reg, nil
}
