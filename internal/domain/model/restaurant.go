package model

// DefaultEstimatedDeliveryTime is used when a restaurant does not publish one.
const DefaultEstimatedDeliveryTime = "30-45 min"

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64
	Lng float64
}

// FeeSchedule describes restaurant specific charges applied at checkout.
type FeeSchedule struct {
	DeliveryFee           Money
	MinimumOrder          Money
	ServiceChargePercent  float64
	TaxRatePercent        float64
	EstimatedDeliveryTime string
}

// Restaurant is a venue customers order from.
type Restaurant struct {
	ID       int64
	OwnerID  int64
	Name     string
	Cuisine  string
	Active   bool
	Location *Location
	Schedule FeeSchedule
}

// MenuItem is a dish offered by a restaurant.
type MenuItem struct {
	ID           int64
	RestaurantID int64
	Name         string
	Description  string
	Category     string
	Price        Money
	Available    bool
}

// Ref returns the reference stored in cart line items.
func (m MenuItem) Ref() MenuItemRef {
	return MenuItemRef{ID: m.ID, RestaurantID: m.RestaurantID, Name: m.Name, Price: m.Price}
}
