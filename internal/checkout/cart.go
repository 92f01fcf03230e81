package checkout

import (
	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
)

// Cart is an ordered list of line items addressed by index. Lines for the same
// menu item are never merged.
type Cart struct {
	items []model.LineItem
}

// Add appends a new line.
func (c *Cart) Add(ref model.MenuItemRef, quantity int, note string) error {
	if quantity <= 0 {
		return domainErrors.ErrInvalidQuantity
	}
	c.items = append(c.items, model.LineItem{MenuItem: ref, Quantity: quantity, Note: note})
	return nil
}

// SetQuantity replaces quantity of the line at index. A quantity of zero or
// less removes the line; emptied is true only when this call removed the last line.
func (c *Cart) SetQuantity(index, quantity int) (emptied bool, err error) {
	if index < 0 || index >= len(c.items) {
		return false, domainErrors.ErrInvalidLineItem
	}
	if quantity > 0 {
		c.items[index].Quantity = quantity
		return false, nil
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return len(c.items) == 0, nil
}

// RemoveItem drops the line at index.
func (c *Cart) RemoveItem(index int) (bool, error) {
	return c.SetQuantity(index, 0)
}

// Items returns a copy of the lines.
func (c *Cart) Items() []model.LineItem {
	out := make([]model.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) Clear() {
	c.items = nil
}
