package npc

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cory-johannsen/melee/internal/game/combat"
	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
)

// Manager holds the loaded templates and tracks every live combatant spawned
// from them by ID. All methods are safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	templates map[string]*Template
	live      map[string]*combat.Combatant
	items     *inventory.Registry
	statuses  *condition.Registry
}

// NewManager creates a Manager over the given templates.
//
// Precondition: items and statuses must be non-nil.
// Postcondition: Returns an error if two templates share an ID.
func NewManager(templates []*Template, items *inventory.Registry, statuses *condition.Registry) (*Manager, error) {
	m := &Manager{
		templates: make(map[string]*Template, len(templates)),
		live:      make(map[string]*combat.Combatant),
		items:     items,
		statuses:  statuses,
	}
	for _, t := range templates {
		if _, dup := m.templates[t.ID]; dup {
			return nil, fmt.Errorf("npc.NewManager: duplicate template id %q", t.ID)
		}
		m.templates[t.ID] = t
	}
	return m, nil
}

// Template returns the template with the given ID.
//
// Postcondition: Returns (tmpl, true) if found, or (nil, false) otherwise.
func (m *Manager) Template(id string) (*Template, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.templates[id]
	return t, ok
}

// TemplateIDs returns all template IDs in sorted order.
func (m *Manager) TemplateIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.templates))
	for id := range m.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Spawn creates a live combatant from the template templateID placed at pos.
//
// Postcondition: Returns a new Combatant with a unique ID registered in the
// manager, or an error if the template is unknown or cannot be equipped.
func (m *Manager) Spawn(templateID string, pos combat.Point) (*combat.Combatant, error) {
	tmpl, ok := m.Template(templateID)
	if !ok {
		return nil, fmt.Errorf("npc.Manager.Spawn: unknown template %q", templateID)
	}
	c, err := NewCombatant(tmpl, m.items, m.statuses)
	if err != nil {
		return nil, err
	}
	c.Pos = pos

	m.mu.Lock()
	defer m.mu.Unlock()
	m.live[c.ID] = c
	return c, nil
}

// Remove deletes a live combatant by ID.
//
// Postcondition: Returns an error if the combatant is not found.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.live[id]; !ok {
		return fmt.Errorf("combatant %q not found", id)
	}
	delete(m.live, id)
	return nil
}

// Get returns the live combatant with the given ID.
//
// Postcondition: Returns (c, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(id string) (*combat.Combatant, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.live[id]
	return c, ok
}

// Find returns the first live combatant whose Name has target as a
// case-insensitive prefix, preferring the lowest ID. Returns nil if none match.
func (m *Manager) Find(target string) *combat.Combatant {
	m.mu.RLock()
	defer m.mu.RUnlock()
	lower := strings.ToLower(target)
	var best *combat.Combatant
	for _, c := range m.live {
		if strings.HasPrefix(strings.ToLower(c.Name), lower) && (best == nil || c.ID < best.ID) {
			best = c
		}
	}
	return best
}
