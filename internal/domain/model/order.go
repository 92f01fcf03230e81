package model

import (
	"strings"
	"time"
)

// OrderStatus is the stored lifecycle value of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReadyForPickup OrderStatus = "ready_for_pickup"
	OrderStatusPickedUp       OrderStatus = "picked_up"
	OrderStatusOnTheWay       OrderStatus = "on_the_way"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

var kitchenTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:   OrderStatusConfirmed,
	OrderStatusConfirmed: OrderStatusPreparing,
	OrderStatusPreparing: OrderStatusReadyForPickup,
}

// KitchenNext returns the status a restaurant may move the order to next.
func (s OrderStatus) KitchenNext() (OrderStatus, bool) {
	next, ok := kitchenTransitions[s]
	return next, ok
}

// KitchenCancellable reports whether the restaurant may still cancel the order.
func (s OrderStatus) KitchenCancellable() bool {
	_, ok := kitchenTransitions[s]
	return ok
}

// CustomerSnapshot captures who placed the order.
type CustomerSnapshot struct {
	UserID int64
	Email  string
	Name   string
	Phone  string
}

// RestaurantSnapshot captures the restaurant at submission time.
type RestaurantSnapshot struct {
	ID                    int64
	Name                  string
	EstimatedDeliveryTime string
	Location              *Location
}

// OrderItem is a frozen line item.
type OrderItem struct {
	MenuItemID int64
	Name       string
	Price      Money
	Quantity   int
	Subtotal   Money
	Note       string
}

// Pricing is the rounded price breakdown persisted with an order.
type Pricing struct {
	Subtotal      Money
	ServiceCharge Money
	Tax           Money
	DeliveryFee   Money
	Total         Money
}

// Order is the append-only record created at checkout. Only status, payment
// status, delivery assignment and timestamps change after creation.
type Order struct {
	ID              string
	IdempotencyKey  string
	Customer        CustomerSnapshot
	Restaurant      RestaurantSnapshot
	Items           []OrderItem
	Address         Address
	Payment         PaymentSelection
	Instructions    string
	Pricing         Pricing
	Status          OrderStatus
	PaymentStatus   PaymentStatus
	DeliveryActorID *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	PickedUpAt      *time.Time
	DeliveredAt     *time.Time
}

// Number returns the user facing order number.
func (o Order) Number() string {
	return OrderNumber(o.ID)
}

// OrderNumber derives "#XXXXXX" from the last six characters of a document id.
func OrderNumber(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) > 6 {
		compact = compact[len(compact)-6:]
	}
	return "#" + strings.ToUpper(compact)
}

// StatusChange describes a single conditional status update.
type StatusChange struct {
	OrderID     string
	From        OrderStatus
	To          OrderStatus
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
}

// NewStatusChange builds a change stamping pickedUpAt on entering picked_up and
// deliveredAt on entering delivered.
func NewStatusChange(orderID string, from, to OrderStatus, at time.Time) StatusChange {
	change := StatusChange{OrderID: orderID, From: from, To: to}
	switch to {
	case OrderStatusPickedUp:
		change.PickedUpAt = &at
	case OrderStatusDelivered:
		change.DeliveredAt = &at
	}
	return change
}
