package handlers

import (
	"context"

	"github.com/polkiloo/foodcourier/internal/checkout"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.Registration) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (model.Principal, error)
}

// AddressFacade manages saved delivery addresses.
type AddressFacade interface {
	Addresses(ctx context.Context, userID int64) ([]model.Address, error)
	AddAddress(ctx context.Context, userID int64, address model.Address) (*model.Address, error)
	SetDefaultAddress(ctx context.Context, userID, addressID int64) error
}

// CheckoutFacade drives the checkout session of a customer.
type CheckoutFacade interface {
	StartCheckout(ctx context.Context, customerID, restaurantID int64) (checkout.Snapshot, error)
	CheckoutSummary(customerID int64) (checkout.Snapshot, error)
	CancelCheckout(customerID int64)
	AddCartItem(ctx context.Context, customerID, menuItemID int64, quantity int, note string) (checkout.Snapshot, error)
	SetCartQuantity(customerID int64, index, quantity int) (usecase.CartUpdate, error)
	RemoveCartItem(customerID int64, index int) (usecase.CartUpdate, error)
	SelectAddress(ctx context.Context, customerID, addressID int64) (checkout.Snapshot, error)
	SelectPayment(customerID int64, payment model.PaymentSelection) (checkout.Snapshot, error)
	SetInstructions(customerID int64, instructions string) (checkout.Snapshot, error)
	PlaceOrder(ctx context.Context, customerID int64, profileName, idempotencyKey string) (*usecase.Receipt, error)
}

// OrderFacade exposes stored orders scoped to the caller.
type OrderFacade interface {
	Order(ctx context.Context, principal model.Principal, orderID string) (*model.Order, error)
	Orders(ctx context.Context, principal model.Principal) ([]model.Order, error)
}

// DeliveryFacade serves delivery actors.
type DeliveryFacade interface {
	DeliveryOrders(ctx context.Context, actorID int64, filter model.DeliveryFilter) ([]model.DeliveryOrderView, error)
	AvailableDeliveries(ctx context.Context) ([]model.DeliveryOrderView, error)
	ClaimDelivery(ctx context.Context, actorID int64, orderID string) (*model.DeliveryOrderView, error)
	AdvanceDelivery(ctx context.Context, actorID int64, orderID string, target model.DeliveryStatus) (*model.DeliveryOrderView, error)
	// SubscribeDeliveries pushes the delivery list of actorID to fn until the
	// returned function is called.
	SubscribeDeliveries(actorID int64, fn func([]model.DeliveryOrderView)) (unsubscribe func())
}

// KitchenFacade serves restaurant staff.
type KitchenFacade interface {
	KitchenOrders(ctx context.Context, principal model.Principal) ([]model.Order, error)
	AdvanceKitchenOrder(ctx context.Context, principal model.Principal, orderID string, target model.OrderStatus) (*model.Order, error)
}

// SearchFacade searches the catalog.
type SearchFacade interface {
	Search(ctx context.Context, callerID int64, term string, filter model.SearchFilter) (*usecase.SearchResponse, error)
}

// HealthFacade reports backend readiness.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	AddressFacade
	CheckoutFacade
	OrderFacade
	DeliveryFacade
	KitchenFacade
	SearchFacade
	HealthFacade
}
