package entity

// Inventory holds the items the player carries. Items are actors that are
// not placed in any scene.
type Inventory struct {
	items map[string]*Actor
	order []string
}

// NewInventory creates an empty inventory
func NewInventory() *Inventory {
	return &Inventory{items: make(map[string]*Actor)}
}

// Put adds an item, replacing any item with the same id
func (inv *Inventory) Put(item *Actor) {
	if _, exists := inv.items[item.ID]; !exists {
		inv.order = append(inv.order, item.ID)
	}
	inv.items[item.ID] = item
}

// Take removes and returns an item
func (inv *Inventory) Take(id string) (*Actor, bool) {
	item, ok := inv.items[id]
	if !ok {
		return nil, false
	}
	delete(inv.items, id)
	for i, o := range inv.order {
		if o == id {
			inv.order = append(inv.order[:i], inv.order[i+1:]...)
			break
		}
	}
	return item, true
}

// Has reports whether an item with the given id is held
func (inv *Inventory) Has(id string) bool {
	_, ok := inv.items[id]
	return ok
}

// Get returns an item without removing it
func (inv *Inventory) Get(id string) (*Actor, bool) {
	item, ok := inv.items[id]
	return item, ok
}

// Len returns the number of items
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// IDs returns item ids in the order they were received
func (inv *Inventory) IDs() []string {
	out := make([]string, len(inv.order))
	copy(out, inv.order)
	return out
}
