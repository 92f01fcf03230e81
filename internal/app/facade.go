package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/polkiloo/foodcourier/internal/checkout"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/usecase"
	"github.com/polkiloo/foodcourier/internal/worker"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// DeliveryFeed fans delivery list changes out to live subscribers.
type DeliveryFeed interface {
	Subscribe(actorID int64, cb worker.Callback) worker.Token
	Unsubscribe(token worker.Token)
	Notify(actorID int64)
}

type facadeParams struct {
	fx.In

	Auth      *usecase.AuthUseCase
	Addresses *usecase.AddressUseCase
	Checkout  *usecase.CheckoutUseCase
	Orders    *usecase.OrderUseCase
	Delivery  *usecase.DeliveryUseCase
	Kitchen   *usecase.KitchenUseCase
	Search    *usecase.SearchUseCase
	Feed      *worker.FeedDispatcher
	Health    HealthChecker
}

// MarketplaceFacade binds use cases into the surface served over HTTP.
type MarketplaceFacade struct {
	auth      *usecase.AuthUseCase
	addresses *usecase.AddressUseCase
	checkout  *usecase.CheckoutUseCase
	orders    *usecase.OrderUseCase
	delivery  *usecase.DeliveryUseCase
	kitchen   *usecase.KitchenUseCase
	search    *usecase.SearchUseCase
	feed      DeliveryFeed
	health    HealthChecker
}

func newMarketplaceFacade(p facadeParams) *MarketplaceFacade {
	return &MarketplaceFacade{
		auth:      p.Auth,
		addresses: p.Addresses,
		checkout:  p.Checkout,
		orders:    p.Orders,
		delivery:  p.Delivery,
		kitchen:   p.Kitchen,
		search:    p.Search,
		feed:      p.Feed,
		health:    p.Health,
	}
}

func (f *MarketplaceFacade) Register(ctx context.Context, in usecase.Registration) (*model.User, string, error) {
	return f.auth.Register(ctx, in)
}

func (f *MarketplaceFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *MarketplaceFacade) ParseToken(token string) (model.Principal, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketplaceFacade) Addresses(ctx context.Context, userID int64) ([]model.Address, error) {
	return f.addresses.List(ctx, userID)
}

func (f *MarketplaceFacade) AddAddress(ctx context.Context, userID int64, address model.Address) (*model.Address, error) {
	return f.addresses.Add(ctx, userID, address)
}

func (f *MarketplaceFacade) SetDefaultAddress(ctx context.Context, userID, addressID int64) error {
	return f.addresses.SetDefault(ctx, userID, addressID)
}

func (f *MarketplaceFacade) StartCheckout(ctx context.Context, customerID, restaurantID int64) (checkout.Snapshot, error) {
	return f.checkout.Start(ctx, customerID, restaurantID)
}

func (f *MarketplaceFacade) CheckoutSummary(customerID int64) (checkout.Snapshot, error) {
	return f.checkout.Summary(customerID)
}

func (f *MarketplaceFacade) CancelCheckout(customerID int64) {
	f.checkout.Cancel(customerID)
}

func (f *MarketplaceFacade) AddCartItem(ctx context.Context, customerID, menuItemID int64, quantity int, note string) (checkout.Snapshot, error) {
	return f.checkout.AddItem(ctx, customerID, menuItemID, quantity, note)
}

func (f *MarketplaceFacade) SetCartQuantity(customerID int64, index, quantity int) (usecase.CartUpdate, error) {
	return f.checkout.SetQuantity(customerID, index, quantity)
}

func (f *MarketplaceFacade) RemoveCartItem(customerID int64, index int) (usecase.CartUpdate, error) {
	return f.checkout.RemoveItem(customerID, index)
}

func (f *MarketplaceFacade) SelectAddress(ctx context.Context, customerID, addressID int64) (checkout.Snapshot, error) {
	return f.checkout.SelectAddress(ctx, customerID, addressID)
}

func (f *MarketplaceFacade) SelectPayment(customerID int64, payment model.PaymentSelection) (checkout.Snapshot, error) {
	return f.checkout.SelectPayment(customerID, payment)
}

func (f *MarketplaceFacade) SetInstructions(customerID int64, instructions string) (checkout.Snapshot, error) {
	return f.checkout.SetInstructions(customerID, instructions)
}

func (f *MarketplaceFacade) PlaceOrder(ctx context.Context, customerID int64, profileName, idempotencyKey string) (*usecase.Receipt, error) {
	return f.orders.PlaceOrder(ctx, customerID, profileName, idempotencyKey)
}

func (f *MarketplaceFacade) Order(ctx context.Context, principal model.Principal, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, principal, orderID)
}

func (f *MarketplaceFacade) Orders(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	return f.orders.List(ctx, principal)
}

func (f *MarketplaceFacade) DeliveryOrders(ctx context.Context, actorID int64, filter model.DeliveryFilter) ([]model.DeliveryOrderView, error) {
	return f.delivery.Orders(ctx, actorID, filter)
}

func (f *MarketplaceFacade) AvailableDeliveries(ctx context.Context) ([]model.DeliveryOrderView, error) {
	return f.delivery.Available(ctx)
}

// ClaimDelivery assigns the order and refreshes the claimant's live list.
func (f *MarketplaceFacade) ClaimDelivery(ctx context.Context, actorID int64, orderID string) (*model.DeliveryOrderView, error) {
	view, err := f.delivery.Claim(ctx, actorID, orderID)
	if err == nil {
		f.feed.Notify(actorID)
	}
	return view, err
}

// AdvanceDelivery applies the transition and refreshes the actor's live list.
func (f *MarketplaceFacade) AdvanceDelivery(ctx context.Context, actorID int64, orderID string, target model.DeliveryStatus) (*model.DeliveryOrderView, error) {
	view, err := f.delivery.Advance(ctx, actorID, orderID, target)
	if err == nil {
		f.feed.Notify(actorID)
	}
	return view, err
}

func (f *MarketplaceFacade) SubscribeDeliveries(actorID int64, fn func([]model.DeliveryOrderView)) func() {
	token := f.feed.Subscribe(actorID, fn)
	return func() { f.feed.Unsubscribe(token) }
}

func (f *MarketplaceFacade) KitchenOrders(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	return f.kitchen.Orders(ctx, principal)
}

func (f *MarketplaceFacade) AdvanceKitchenOrder(ctx context.Context, principal model.Principal, orderID string, target model.OrderStatus) (*model.Order, error) {
	return f.kitchen.Advance(ctx, principal, orderID, target)
}

func (f *MarketplaceFacade) Search(ctx context.Context, callerID int64, term string, filter model.SearchFilter) (*usecase.SearchResponse, error) {
	return f.search.Search(ctx, callerID, term, filter)
}

func (f *MarketplaceFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
