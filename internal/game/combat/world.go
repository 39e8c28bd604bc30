package combat

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cory-johannsen/melee/internal/game/condition"
	"github.com/cory-johannsen/melee/internal/game/inventory"
)

// World is the map collaborator the engine queries and reports to.
type World interface {
	// CombatantAt returns the combatant standing on p, or nil.
	CombatantAt(p Point) *Combatant
	// KnockBack pushes target one tile directly away from from.
	KnockBack(target *Combatant, from Point)
	// Sound emits a noise of the given volume at p.
	Sound(at Point, volume int)
	// DropWeapon places a weapon on the ground at p.
	DropWeapon(at Point, w *inventory.WeaponDef)
	// DropItem places a plain item on the ground at p.
	DropItem(at Point, itemID string)
	// Splatter leaves blood on the tile at p.
	Splatter(at Point)
}

// Absorber mitigates raw damage against a character's worn armor before it
// is subtracted from hit points.
type Absorber interface {
	Absorb(target *Combatant, part inventory.BodyPart, bash, cut int) (int, int)
}

// WornAbsorber subtracts the summed protection of every worn piece covering
// the struck part.
type WornAbsorber struct{}

// Absorb implements Absorber.
//
// Postcondition: both results are >= 0.
func (WornAbsorber) Absorb(target *Combatant, part inventory.BodyPart, bash, cut int) (int, int) {
	pb, pc := target.Worn.Protection(part)
	return max(0, bash-pb), max(0, cut-pc)
}

// SoundEvent records one noise emitted on a Grid.
type SoundEvent struct {
	At     Point
	Volume int
}

// Grid is an in-memory World: an occupancy map, a floor of dropped items,
// a sound log and blood splatter counts.
// It is safe for concurrent use.
type Grid struct {
	mu       sync.RWMutex
	occupant map[Point]*Combatant
	floor    *inventory.FloorManager
	sounds   []SoundEvent
	blood    map[Point]int
}

// NewGrid creates an empty Grid.
//
// Postcondition: Returns a non-nil Grid with no occupants.
func NewGrid() *Grid {
	return &Grid{
		occupant: make(map[Point]*Combatant),
		floor:    inventory.NewFloorManager(),
		blood:    make(map[Point]int),
	}
}

// Place puts c on the grid at c.Pos.
//
// Precondition: c must be non-nil.
// Postcondition: Returns an error if the tile is already occupied by another combatant.
func (g *Grid) Place(c *Combatant) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if other, ok := g.occupant[c.Pos]; ok && other != c {
		return fmt.Errorf("tile (%d,%d) already occupied by %q", c.Pos.X, c.Pos.Y, other.Name)
	}
	g.occupant[c.Pos] = c
	return nil
}

// Remove takes c off the grid.
func (g *Grid) Remove(c *Combatant) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.occupant[c.Pos] == c {
		delete(g.occupant, c.Pos)
	}
}

// CombatantAt implements World.
func (g *Grid) CombatantAt(p Point) *Combatant {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.occupant[p]
}

// KnockBack implements World. The target moves one tile along the direction
// from from to its position. A target knocked into an occupied tile stays put
// and is stunned for a turn instead.
func (g *Grid) KnockBack(target *Combatant, from Point) {
	dx, dy := sign(target.Pos.X-from.X), sign(target.Pos.Y-from.Y)
	if dx == 0 && dy == 0 {
		return
	}
	dest := target.Pos.Add(dx, dy)

	g.mu.Lock()
	defer g.mu.Unlock()
	if other, ok := g.occupant[dest]; ok && other != target {
		target.AddStatus(condition.Stunned, 1, 0, 0)
		return
	}
	if g.occupant[target.Pos] == target {
		delete(g.occupant, target.Pos)
	}
	target.Pos = dest
	g.occupant[dest] = target
}

// Sound implements World.
func (g *Grid) Sound(at Point, volume int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sounds = append(g.sounds, SoundEvent{At: at, Volume: volume})
}

// DropWeapon implements World.
func (g *Grid) DropWeapon(at Point, w *inventory.WeaponDef) {
	if w.IsNull() {
		return
	}
	g.floor.DropWeapon(inventory.Spot{X: at.X, Y: at.Y}, w)
}

// DropItem implements World.
func (g *Grid) DropItem(at Point, itemID string) {
	g.floor.DropItem(inventory.Spot{X: at.X, Y: at.Y}, itemID)
}

// Splatter implements World.
func (g *Grid) Splatter(at Point) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.blood[at]++
}

// ItemsAt returns the items lying on p.
func (g *Grid) ItemsAt(p Point) []inventory.ItemInstance {
	return g.floor.ItemsAt(inventory.Spot{X: p.X, Y: p.Y})
}

// Sounds returns a copy of every sound emitted so far, in order.
func (g *Grid) Sounds() []SoundEvent {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]SoundEvent(nil), g.sounds...)
}

// Blood returns the splatter count on p.
func (g *Grid) Blood(p Point) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.blood[p]
}

// Occupants returns every combatant on the grid ordered by position.
func (g *Grid) Occupants() []*Combatant {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Combatant, 0, len(g.occupant))
	for _, c := range g.occupant {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pos.Y != out[j].Pos.Y {
			return out[i].Pos.Y < out[j].Pos.Y
		}
		return out[i].Pos.X < out[j].Pos.X
	})
	return out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// nullWorld discards every report and has no occupants.
type nullWorld struct{}

func (nullWorld) CombatantAt(Point) *Combatant { return nil }
func (nullWorld) KnockBack(*Combatant, Point) {}
func (nullWorld) Sound(Point, int) {}
func (nullWorld) DropWeapon(Point, *inventory.WeaponDef) {}
func (nullWorld) DropItem(Point, string) {}
func (nullWorld) Splatter(Point) {}
