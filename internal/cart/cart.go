// Package cart keeps a visitor's in-progress selection of products. The
// Cart itself is a plain value mutated through a small operation surface;
// persistence is layered on by Session, which writes a snapshot to Storage
// after every mutation.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/NaveenSasalu/organic-farm/internal/domain"
)

// Line is one product in the cart. Name, price, unit and image are
// snapshotted when the product is first added; later catalog changes are
// reconciled at checkout, not here.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Unit      string          `json:"unit"`
	ImageURL  string          `json:"image_url,omitempty"`
}

// Cart holds at most one Line per product id, each with quantity >= 1.
// DrawerOpen is pure UI state, persisted alongside the lines.
type Cart struct {
	Lines      []Line `json:"items"`
	DrawerOpen bool   `json:"drawer_open"`
}

// AddItem adds one unit of the product, inserting a new line with a
// snapshot of the product's current name, price, unit and image when the
// product is not in the cart yet.
func (c *Cart) AddItem(p domain.Product) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
		Unit:      p.Unit,
		ImageURL:  p.ImageURL,
	})
}

// RemoveItem deletes the line for the product. Removing an absent product
// is a no-op.
func (c *Cart) RemoveItem(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the line's quantity to exactly qty. A qty of zero or
// less removes the line, keeping the no-line-with-qty<=0 invariant. An
// absent product id is a no-op.
func (c *Cart) UpdateQuantity(productID int64, qty int) {
	if qty <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = qty
			return
		}
	}
}

// Clear empties the lines and leaves the drawer flag untouched.
func (c *Cart) Clear() {
	c.Lines = nil
}

// ToggleDrawer flips the drawer flag.
func (c *Cart) ToggleDrawer() {
	c.DrawerOpen = !c.DrawerOpen
}

// TotalPrice recomputes the cart total on every call; there is no cached
// value to go stale.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// ItemCount is the sum of all line quantities, not the number of lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Clone returns a deep copy so storage implementations and callers cannot
// alias the live line slice.
func (c *Cart) Clone() *Cart {
	cp := &Cart{DrawerOpen: c.DrawerOpen}
	if len(c.Lines) > 0 {
		cp.Lines = make([]Line, len(c.Lines))
		copy(cp.Lines, c.Lines)
	}
	return cp
}
