package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

func product(id int64, name string, price int64) domain.Product {
	return domain.Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
		Unit:  "kg",
	}
}

func TestAddItem_RepeatedCallsIncrementQuantity(t *testing.T) {
	c := &Cart{}
	p := product(1, "Tomatoes", 40)

	for i := 0; i < 5; i++ {
		c.AddItem(p)
	}

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Lines[0].Quantity)
	assert.Equal(t, 5, c.ItemCount())
}

func TestAddItem_SnapshotsProductAtInsertion(t *testing.T) {
	c := &Cart{}
	p := product(1, "Tomatoes", 40)
	p.ImageURL = "/images/tomato.png"
	c.AddItem(p)

	// A later catalog price change must not leak into the existing line.
	p.Price = decimal.NewFromInt(90)
	c.AddItem(p)

	require.Len(t, c.Lines, 1)
	assert.True(t, c.Lines[0].UnitPrice.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "Tomatoes", c.Lines[0].Name)
	assert.Equal(t, "kg", c.Lines[0].Unit)
	assert.Equal(t, "/images/tomato.png", c.Lines[0].ImageURL)
}

func TestTotalPriceAndItemCount(t *testing.T) {
	c := &Cart{}
	assert.True(t, c.TotalPrice().IsZero())
	assert.Equal(t, 0, c.ItemCount())

	c.AddItem(product(1, "Tomatoes", 40))
	c.AddItem(product(1, "Tomatoes", 40))
	c.AddItem(product(2, "Spinach", 25))
	c.UpdateQuantity(2, 3)

	// 2*40 + 3*25
	assert.True(t, c.TotalPrice().Equal(decimal.NewFromInt(155)))
	assert.Equal(t, 5, c.ItemCount())
}

func TestRemoveItem(t *testing.T) {
	c := &Cart{}
	c.AddItem(product(1, "Tomatoes", 40))
	c.AddItem(product(2, "Spinach", 25))

	c.RemoveItem(1)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, int64(2), c.Lines[0].ProductID)

	// Absent id is a no-op, not an error.
	c.RemoveItem(99)
	assert.Len(t, c.Lines, 1)
}

func TestUpdateQuantity_NonPositiveRemoves(t *testing.T) {
	for _, qty := range []int{0, -1, -7} {
		c := &Cart{}
		c.AddItem(product(1, "Tomatoes", 40))
		c.UpdateQuantity(1, qty)
		assert.Empty(t, c.Lines, "qty %d should remove the line", qty)
	}
}

func TestUpdateQuantity_AbsentIDIsNoop(t *testing.T) {
	c := &Cart{}
	c.AddItem(product(1, "Tomatoes", 40))
	c.UpdateQuantity(42, 3)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
}

func TestUpdateQuantity_SetsAbsoluteValue(t *testing.T) {
	c := &Cart{}
	c.AddItem(product(1, "Tomatoes", 40))
	c.UpdateQuantity(1, 7)
	c.UpdateQuantity(1, 2)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestClear_LeavesDrawerUntouched(t *testing.T) {
	c := &Cart{DrawerOpen: true}
	c.AddItem(product(1, "Tomatoes", 40))
	c.AddItem(product(2, "Spinach", 25))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.True(t, c.TotalPrice().IsZero())
	assert.Equal(t, 0, c.ItemCount())
	assert.True(t, c.DrawerOpen)
}

func TestToggleDrawer_IsInvolution(t *testing.T) {
	c := &Cart{}
	c.ToggleDrawer()
	assert.True(t, c.DrawerOpen)
	c.ToggleDrawer()
	assert.False(t, c.DrawerOpen)
}

func TestClone_DoesNotAliasLines(t *testing.T) {
	c := &Cart{}
	c.AddItem(product(1, "Tomatoes", 40))

	cp := c.Clone()
	cp.UpdateQuantity(1, 9)

	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Equal(t, 9, cp.Lines[0].Quantity)
}
