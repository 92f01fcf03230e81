package model

// MenuItemRef is the part of a menu item captured by a cart line.
type MenuItemRef struct {
	ID           int64
	RestaurantID int64
	Name         string
	Price        Money
}

// LineItem is one menu item plus quantity and note within a cart.
type LineItem struct {
	MenuItem MenuItemRef
	Quantity int
	Note     string
}

// Subtotal returns price times quantity.
func (l LineItem) Subtotal() Money {
	return l.MenuItem.Price * Money(l.Quantity)
}
