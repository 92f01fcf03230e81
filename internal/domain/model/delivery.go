package model

import (
	"time"

	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
)

// DeliveryStatus is the closed set of states visible to a delivery actor.
type DeliveryStatus uint8

const (
	DeliveryReadyForPickup DeliveryStatus = iota + 1
	DeliveryPickedUp
	DeliveryOnTheWay
	DeliveryDelivered
	DeliveryCancelled
)

var deliveryStatusNames = map[DeliveryStatus]OrderStatus{
	DeliveryReadyForPickup: OrderStatusReadyForPickup,
	DeliveryPickedUp:       OrderStatusPickedUp,
	DeliveryOnTheWay:       OrderStatusOnTheWay,
	DeliveryDelivered:      OrderStatusDelivered,
	DeliveryCancelled:      OrderStatusCancelled,
}

var deliveryTransitions = map[DeliveryStatus]DeliveryStatus{
	DeliveryReadyForPickup: DeliveryPickedUp,
	DeliveryPickedUp:       DeliveryOnTheWay,
	DeliveryOnTheWay:       DeliveryDelivered,
}

// ParseDeliveryStatus maps a stored status. Values outside the delivery state
// machine are rejected.
func ParseDeliveryStatus(raw string) (DeliveryStatus, error) {
	for status, name := range deliveryStatusNames {
		if string(name) == raw {
			return status, nil
		}
	}
	return 0, domainErrors.ErrUnknownStatus
}

// OrderStatus returns the stored representation.
func (s DeliveryStatus) OrderStatus() OrderStatus {
	return deliveryStatusNames[s]
}

func (s DeliveryStatus) String() string {
	return string(deliveryStatusNames[s])
}

// Next returns the only transition offered from s.
func (s DeliveryStatus) Next() (DeliveryStatus, bool) {
	next, ok := deliveryTransitions[s]
	return next, ok
}

// Terminal reports whether no further transition exists.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryCancelled
}

// Active reports whether the delivery is still in progress.
func (s DeliveryStatus) Active() bool {
	return s == DeliveryReadyForPickup || s == DeliveryPickedUp || s == DeliveryOnTheWay
}

// DeliveryOrderView is the projection of an order shown to a delivery actor.
type DeliveryOrderView struct {
	OrderID      string
	OrderNumber  string
	Status       DeliveryStatus
	Restaurant   RestaurantSnapshot
	CustomerName string
	Phone        string
	Address      Address
	Instructions string
	Total        Money
	Earnings     Money
	DistanceKm   float64
	CreatedAt    time.Time
	PickedUpAt   *time.Time
	DeliveredAt  *time.Time
}

// DeliveryFilter narrows the delivery list.
type DeliveryFilter string

const (
	DeliveryFilterAll       DeliveryFilter = "all"
	DeliveryFilterActive    DeliveryFilter = "active"
	DeliveryFilterCompleted DeliveryFilter = "completed"
	DeliveryFilterCancelled DeliveryFilter = "cancelled"
)

// ParseDeliveryFilter defaults empty values to all.
func ParseDeliveryFilter(raw string) (DeliveryFilter, bool) {
	switch f := DeliveryFilter(raw); f {
	case "":
		return DeliveryFilterAll, true
	case DeliveryFilterAll, DeliveryFilterActive, DeliveryFilterCompleted, DeliveryFilterCancelled:
		return f, true
	default:
		return "", false
	}
}

// Matches reports whether status belongs to the filter partition.
func (f DeliveryFilter) Matches(s DeliveryStatus) bool {
	switch f {
	case DeliveryFilterActive:
		return s.Active()
	case DeliveryFilterCompleted:
		return s == DeliveryDelivered
	case DeliveryFilterCancelled:
		return s == DeliveryCancelled
	default:
		return true
	}
}

// FilterDeliveryOrders returns views matching f preserving order.
func FilterDeliveryOrders(views []DeliveryOrderView, f DeliveryFilter) []DeliveryOrderView {
	result := make([]DeliveryOrderView, 0, len(views))
	for _, v := range views {
		if f.Matches(v.Status) {
			result = append(result, v)
		}
	}
	return result
}
