package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vxxious/aunty-burger/internal/catalog"
)

var (
	burger = catalog.Item{ID: "regular-cheese-burger", Name: "Regular Cheese Burger", Price: 4000, Category: "burgers"}
	wings  = catalog.Item{ID: "wings-5pcs", Name: "Chicken Wings (Pack of 5)", Price: 3000, Category: "wings"}
	coke   = catalog.Item{ID: "coca-cola", Name: "Coca-Cola", Price: 600, Category: "drinks"}
)

func TestAddMergesByID(t *testing.T) {
	c := New()
	c.Add(burger)
	c.Add(wings)
	c.Add(burger)
	c.Add(burger)

	s := c.Snapshot()
	require.Len(t, s.Lines, 2)
	assert.Equal(t, "regular-cheese-burger", s.Lines[0].Item.ID)
	assert.Equal(t, 3, s.Lines[0].Quantity)
	assert.Equal(t, 1, s.Lines[1].Quantity)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	c := New()
	c.Add(coke)
	c.Add(burger)
	c.Add(wings)
	c.Add(coke)

	s := c.Snapshot()
	require.Len(t, s.Lines, 3)
	assert.Equal(t, "coca-cola", s.Lines[0].Item.ID)
	assert.Equal(t, "regular-cheese-burger", s.Lines[1].Item.ID)
	assert.Equal(t, "wings-5pcs", s.Lines[2].Item.ID)
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(burger)
	c.Add(burger)
	c.Add(burger)
	c.Remove(burger.ID)

	// Removing deletes the whole line, not one unit.
	assert.Empty(t, c.Snapshot().Lines)

	// Absent id is a no-op.
	c.Add(wings)
	c.Remove("no-such-item")
	assert.Len(t, c.Snapshot().Lines, 1)
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.Add(burger)
	c.SetQuantity(burger.ID, 5)
	assert.Equal(t, 5, c.Snapshot().Lines[0].Quantity)

	// Unknown id is a no-op.
	c.SetQuantity("no-such-item", 3)
	s := c.Snapshot()
	require.Len(t, s.Lines, 1)
	assert.Equal(t, 5, s.Lines[0].Quantity)
}

func TestSetQuantityZeroEqualsRemove(t *testing.T) {
	viaZero := New()
	viaZero.Add(burger)
	viaZero.Add(wings)
	viaZero.SetQuantity(burger.ID, 0)

	viaRemove := New()
	viaRemove.Add(burger)
	viaRemove.Add(wings)
	viaRemove.Remove(burger.ID)

	assert.Equal(t, viaRemove.Snapshot(), viaZero.Snapshot())

	viaNegative := New()
	viaNegative.Add(burger)
	viaNegative.Add(wings)
	viaNegative.SetQuantity(burger.ID, -2)
	assert.Equal(t, viaRemove.Snapshot(), viaNegative.Snapshot())
}

func TestTotals(t *testing.T) {
	c := New()
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, int64(0), c.TotalPrice())

	c.Add(burger)
	c.Add(burger)
	c.Add(wings)
	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, int64(11000), c.TotalPrice())

	c.SetQuantity(wings.ID, 4)
	assert.Equal(t, 6, c.TotalItems())
	assert.Equal(t, int64(20000), c.TotalPrice())

	c.Clear()
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, int64(0), c.TotalPrice())
}

func TestClearKeepsVisibility(t *testing.T) {
	c := New()
	c.Add(burger)
	c.Open()
	c.Clear()

	s := c.Snapshot()
	assert.Empty(t, s.Lines)
	assert.True(t, s.IsOpen)
}

func TestVisibility(t *testing.T) {
	c := New()
	assert.False(t, c.Snapshot().IsOpen)

	c.Open()
	assert.True(t, c.Snapshot().IsOpen)
	c.Close()
	assert.False(t, c.Snapshot().IsOpen)
	c.Toggle()
	assert.True(t, c.Snapshot().IsOpen)
	c.Toggle()
	assert.False(t, c.Snapshot().IsOpen)

	// Visibility changes never touch the lines.
	c.Add(burger)
	c.Toggle()
	assert.Len(t, c.Snapshot().Lines, 1)
}

func TestObserverSeesEveryMutation(t *testing.T) {
	c := New()
	var got []Snapshot
	c.Subscribe(func(s Snapshot) { got = append(got, s) })

	c.Add(burger)
	c.Add(burger)
	c.SetQuantity(burger.ID, 1)
	c.Open()
	c.Clear()

	require.Len(t, got, 5)
	assert.Equal(t, 1, got[0].TotalItems)
	assert.Equal(t, 2, got[1].TotalItems)
	assert.Equal(t, 1, got[2].TotalItems)
	assert.True(t, got[3].IsOpen)
	assert.Equal(t, 0, got[4].TotalItems)
	assert.Equal(t, int64(0), got[4].TotalPrice)
}

func TestObserverSkipsNoOpMutations(t *testing.T) {
	c := New()
	c.Add(burger)

	var calls int
	c.Subscribe(func(Snapshot) { calls++ })

	// Mutations referencing an absent id change nothing and must not
	// trigger an observer round (or a redundant mirror save).
	c.Remove("no-such-item")
	c.SetQuantity("no-such-item", 3)
	c.SetQuantity("no-such-item", 0)
	assert.Equal(t, 0, calls)

	c.Remove(burger.ID)
	assert.Equal(t, 1, calls)
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New()
	c.Add(burger)

	s := c.Snapshot()
	s.Lines[0].Quantity = 99

	assert.Equal(t, 1, c.Snapshot().Lines[0].Quantity)
}

func TestRestore(t *testing.T) {
	c := New()
	c.Restore([]Line{
		{Item: burger, Quantity: 2},
		{Item: wings, Quantity: 1},
	})
	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, int64(11000), c.TotalPrice())
}

func TestRestoreDropsCorruptLines(t *testing.T) {
	c := New()
	c.Restore([]Line{
		{Item: burger, Quantity: 0},
		{Item: catalog.Item{}, Quantity: 3},
		{Item: wings, Quantity: 2},
		{Item: wings, Quantity: 5},
	})

	s := c.Snapshot()
	require.Len(t, s.Lines, 1)
	assert.Equal(t, "wings-5pcs", s.Lines[0].Item.ID)
	assert.Equal(t, 2, s.Lines[0].Quantity)
}
