package inventory

import (
	"sync"

	"github.com/google/uuid"
)

// Spot is a map tile coordinate.
type Spot struct {
	X, Y int
}

// ItemInstance is one item lying on the ground.
type ItemInstance struct {
	InstanceID string
	ItemDefID  string
	// Weapon is set when the item is a weapon knocked or dropped from a hand.
	Weapon *WeaponDef
}

// FloorManager tracks item instances lying on map tiles.
// It is thread-safe via sync.RWMutex.
type FloorManager struct {
	mu    sync.RWMutex
	spots map[Spot][]ItemInstance
}

// NewFloorManager creates a FloorManager with no items on any tile.
//
// Postcondition: returned FloorManager is ready for use with zero items.
func NewFloorManager() *FloorManager {
	return &FloorManager{
		spots: make(map[Spot][]ItemInstance),
	}
}

// DropWeapon places w on the tile at s and returns the new instance.
//
// Precondition: w must not be nil.
func (fm *FloorManager) DropWeapon(s Spot, w *WeaponDef) ItemInstance {
	return fm.drop(s, ItemInstance{ItemDefID: w.ID, Weapon: w})
}

// DropItem places an item with definition id on the tile at s and returns the new instance.
func (fm *FloorManager) DropItem(s Spot, id string) ItemInstance {
	return fm.drop(s, ItemInstance{ItemDefID: id})
}

func (fm *FloorManager) drop(s Spot, inst ItemInstance) ItemInstance {
	inst.InstanceID = uuid.NewString()
	fm.mu.Lock()
	defer fm.mu.Unlock()
	fm.spots[s] = append(fm.spots[s], inst)
	return inst
}

// Pickup removes and returns the item with the given instanceID from the tile.
// Returns false if the item is not found.
//
// Postcondition: on success, the item is removed from the tile and returned;
// on failure, tile state is unchanged.
func (fm *FloorManager) Pickup(s Spot, instanceID string) (ItemInstance, bool) {
	fm.mu.Lock()
	defer fm.mu.Unlock()
	items := fm.spots[s]
	for i, inst := range items {
		if inst.InstanceID == instanceID {
			fm.spots[s] = append(items[:i], items[i+1:]...)
			return inst, true
		}
	}
	return ItemInstance{}, false
}

// ItemsAt returns a snapshot copy of all items on the tile at s.
//
// Postcondition: returned slice is a copy; mutations do not affect internal state.
func (fm *FloorManager) ItemsAt(s Spot) []ItemInstance {
	fm.mu.RLock()
	defer fm.mu.RUnlock()
	items := fm.spots[s]
	out := make([]ItemInstance, len(items))
	copy(out, items)
	return out
}
