// Package cart implements the in-memory order cart: an observable
// container of catalog items with quantities, plus the drawer visibility
// flag the storefront UI tracks alongside it.
package cart

import (
	"sync"

	"github.com/vxxious/aunty-burger/internal/catalog"
)

// Line is one distinct catalog item in the cart with its quantity.
// Quantity is always >= 1; a line that would drop to zero is removed.
type Line struct {
	Item     catalog.Item `json:"item"`
	Quantity int          `json:"quantity"`
}

// Subtotal is the line's contribution to the cart total.
func (l Line) Subtotal() int64 {
	return l.Item.Price * int64(l.Quantity)
}

// Snapshot is a point-in-time copy of the cart handed to readers and
// observers. Mutating a snapshot has no effect on the cart.
type Snapshot struct {
	Lines      []Line `json:"lines"`
	IsOpen     bool   `json:"isOpen"`
	TotalItems int    `json:"totalItems"`
	TotalPrice int64  `json:"totalPrice"`
}

// Observer receives the post-mutation snapshot after every change to the
// cart's lines or visibility.
type Observer func(Snapshot)

// Cart holds the order lines in insertion order. At most one line exists
// per catalog item id; adding an existing id merges into its quantity.
// All reads and writes go through the methods below.
type Cart struct {
	mu        sync.Mutex
	lines     []Line
	isOpen    bool
	observers []Observer
}

// New returns an empty, closed cart.
func New() *Cart {
	return &Cart{}
}

// Restore seeds the cart's lines, typically from the persistence mirror.
// Lines with a non-positive quantity or a duplicate id are dropped so the
// cart invariants hold even over a corrupted snapshot. Observers are not
// notified; restoring is not a user mutation.
func (c *Cart) Restore(lines []Line) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool, len(lines))
	c.lines = c.lines[:0]
	for _, l := range lines {
		if l.Quantity < 1 || l.Item.ID == "" || seen[l.Item.ID] {
			continue
		}
		seen[l.Item.ID] = true
		c.lines = append(c.lines, l)
	}
}

// Subscribe registers an observer for subsequent mutations.
func (c *Cart) Subscribe(fn Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// Add puts one unit of the item in the cart, merging with an existing
// line for the same id.
func (c *Cart) Add(item catalog.Item) {
	c.mu.Lock()
	for i := range c.lines {
		if c.lines[i].Item.ID == item.ID {
			c.lines[i].Quantity++
			c.notifyLocked()
			return
		}
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
	c.notifyLocked()
}

// Remove deletes the line with the given id. Removing an absent id is a
// no-op, not an error, and observers are not notified.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	for i := range c.lines {
		if c.lines[i].Item.ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.notifyLocked()
			return
		}
	}
	c.mu.Unlock()
}

// SetQuantity sets the line's quantity. A quantity of zero or less removes
// the line. An absent id is a no-op and observers are not notified.
func (c *Cart) SetQuantity(id string, quantity int) {
	if quantity <= 0 {
		c.Remove(id)
		return
	}
	c.mu.Lock()
	for i := range c.lines {
		if c.lines[i].Item.ID == id {
			c.lines[i].Quantity = quantity
			c.notifyLocked()
			return
		}
	}
	c.mu.Unlock()
}

// Clear empties the lines. The visibility flag is untouched.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.notifyLocked()
}

// Open shows the cart drawer.
func (c *Cart) Open() {
	c.mu.Lock()
	c.isOpen = true
	c.notifyLocked()
}

// Close hides the cart drawer.
func (c *Cart) Close() {
	c.mu.Lock()
	c.isOpen = false
	c.notifyLocked()
}

// Toggle flips the cart drawer visibility.
func (c *Cart) Toggle() {
	c.mu.Lock()
	c.isOpen = !c.isOpen
	c.notifyLocked()
}

// Snapshot returns a copy of the current cart with totals computed fresh
// from the lines.
func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	return c.Snapshot().TotalItems
}

// TotalPrice is the sum of price times quantity over all lines.
func (c *Cart) TotalPrice() int64 {
	return c.Snapshot().TotalPrice
}

func (c *Cart) snapshotLocked() Snapshot {
	s := Snapshot{
		Lines:  make([]Line, len(c.lines)),
		IsOpen: c.isOpen,
	}
	copy(s.Lines, c.lines)
	for _, l := range c.lines {
		s.TotalItems += l.Quantity
		s.TotalPrice += l.Subtotal()
	}
	return s
}

// notifyLocked releases the lock and delivers the post-mutation snapshot
// to observers. Callers must hold the lock; it is not reacquired.
func (c *Cart) notifyLocked() {
	s := c.snapshotLocked()
	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(s)
	}
}
