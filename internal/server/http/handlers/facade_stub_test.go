package handlers

import (
	"context"

	"github.com/polkiloo/foodcourier/internal/checkout"
	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/usecase"
)

// facadeStub implements MarketplaceFacade with per-method overrides. Methods
// without an override return zero values.
type facadeStub struct {
	RegisterFn     func(context.Context, usecase.Registration) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)

	AddressesFn  func(context.Context, int64) ([]model.Address, error)
	AddAddressFn func(context.Context, int64, model.Address) (*model.Address, error)
	SetDefaultFn func(context.Context, int64, int64) error

	StartFn        func(context.Context, int64, int64) (checkout.Snapshot, error)
	SummaryFn      func(int64) (checkout.Snapshot, error)
	CancelFn       func(int64)
	AddItemFn      func(context.Context, int64, int64, int, string) (checkout.Snapshot, error)
	SetQuantityFn  func(int64, int, int) (usecase.CartUpdate, error)
	RemoveItemFn   func(int64, int) (usecase.CartUpdate, error)
	SelectAddrFn   func(context.Context, int64, int64) (checkout.Snapshot, error)
	SelectPayFn    func(int64, model.PaymentSelection) (checkout.Snapshot, error)
	InstructionsFn func(int64, string) (checkout.Snapshot, error)
	PlaceFn        func(context.Context, int64, string, string) (*usecase.Receipt, error)

	OrderFn  func(context.Context, model.Principal, string) (*model.Order, error)
	OrdersFn func(context.Context, model.Principal) ([]model.Order, error)

	DeliveryOrdersFn func(context.Context, int64, model.DeliveryFilter) ([]model.DeliveryOrderView, error)
	AvailableFn      func(context.Context) ([]model.DeliveryOrderView, error)
	ClaimFn          func(context.Context, int64, string) (*model.DeliveryOrderView, error)
	AdvanceFn        func(context.Context, int64, string, model.DeliveryStatus) (*model.DeliveryOrderView, error)
	SubscribeFn      func(int64, func([]model.DeliveryOrderView)) func()

	KitchenOrdersFn  func(context.Context, model.Principal) ([]model.Order, error)
	KitchenAdvanceFn func(context.Context, model.Principal, string, model.OrderStatus) (*model.Order, error)

	SearchFn func(context.Context, int64, string, model.SearchFilter) (*usecase.SearchResponse, error)
	HealthFn func(context.Context) error
}

var _ MarketplaceFacade = (*facadeStub)(nil)

func (s *facadeStub) Register(ctx context.Context, in usecase.Registration) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.User{ID: 1, Email: in.Email, Role: model.RoleCustomer}, "token", nil
}

func (s *facadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleCustomer}, "token", nil
}

func (s *facadeStub) ParseToken(string) (model.Principal, error) {
	return model.Principal{}, domainErrors.ErrForbidden
}

func (s *facadeStub) Addresses(ctx context.Context, userID int64) ([]model.Address, error) {
	if s.AddressesFn != nil {
		return s.AddressesFn(ctx, userID)
	}
	return nil, nil
}

func (s *facadeStub) AddAddress(ctx context.Context, userID int64, address model.Address) (*model.Address, error) {
	if s.AddAddressFn != nil {
		return s.AddAddressFn(ctx, userID, address)
	}
	address.ID, address.UserID = 1, userID
	return &address, nil
}

func (s *facadeStub) SetDefaultAddress(ctx context.Context, userID, addressID int64) error {
	if s.SetDefaultFn != nil {
		return s.SetDefaultFn(ctx, userID, addressID)
	}
	return nil
}

func (s *facadeStub) StartCheckout(ctx context.Context, customerID, restaurantID int64) (checkout.Snapshot, error) {
	if s.StartFn != nil {
		return s.StartFn(ctx, customerID, restaurantID)
	}
	return checkout.Snapshot{CustomerID: customerID}, nil
}

func (s *facadeStub) CheckoutSummary(customerID int64) (checkout.Snapshot, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(customerID)
	}
	return checkout.Snapshot{}, domainErrors.ErrNoSession
}

func (s *facadeStub) CancelCheckout(customerID int64) {
	if s.CancelFn != nil {
		s.CancelFn(customerID)
	}
}

func (s *facadeStub) AddCartItem(ctx context.Context, customerID, menuItemID int64, quantity int, note string) (checkout.Snapshot, error) {
	if s.AddItemFn != nil {
		return s.AddItemFn(ctx, customerID, menuItemID, quantity, note)
	}
	return checkout.Snapshot{CustomerID: customerID}, nil
}

func (s *facadeStub) SetCartQuantity(customerID int64, index, quantity int) (usecase.CartUpdate, error) {
	if s.SetQuantityFn != nil {
		return s.SetQuantityFn(customerID, index, quantity)
	}
	return usecase.CartUpdate{}, nil
}

func (s *facadeStub) RemoveCartItem(customerID int64, index int) (usecase.CartUpdate, error) {
	if s.RemoveItemFn != nil {
		return s.RemoveItemFn(customerID, index)
	}
	return usecase.CartUpdate{}, nil
}

func (s *facadeStub) SelectAddress(ctx context.Context, customerID, addressID int64) (checkout.Snapshot, error) {
	if s.SelectAddrFn != nil {
		return s.SelectAddrFn(ctx, customerID, addressID)
	}
	return checkout.Snapshot{}, nil
}

func (s *facadeStub) SelectPayment(customerID int64, payment model.PaymentSelection) (checkout.Snapshot, error) {
	if s.SelectPayFn != nil {
		return s.SelectPayFn(customerID, payment)
	}
	return checkout.Snapshot{Payment: &payment}, nil
}

func (s *facadeStub) SetInstructions(customerID int64, instructions string) (checkout.Snapshot, error) {
	if s.InstructionsFn != nil {
		return s.InstructionsFn(customerID, instructions)
	}
	return checkout.Snapshot{Instructions: instructions}, nil
}

func (s *facadeStub) PlaceOrder(ctx context.Context, customerID int64, profileName, idempotencyKey string) (*usecase.Receipt, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, customerID, profileName, idempotencyKey)
	}
	return &usecase.Receipt{OrderID: "o-1", OrderNumber: "#000001", Created: true}, nil
}

func (s *facadeStub) Order(ctx context.Context, principal model.Principal, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, principal, orderID)
	}
	return nil, domainErrors.ErrNotFound
}

func (s *facadeStub) Orders(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, principal)
	}
	return nil, nil
}

func (s *facadeStub) DeliveryOrders(ctx context.Context, actorID int64, filter model.DeliveryFilter) ([]model.DeliveryOrderView, error) {
	if s.DeliveryOrdersFn != nil {
		return s.DeliveryOrdersFn(ctx, actorID, filter)
	}
	return nil, nil
}

func (s *facadeStub) AvailableDeliveries(ctx context.Context) ([]model.DeliveryOrderView, error) {
	if s.AvailableFn != nil {
		return s.AvailableFn(ctx)
	}
	return nil, nil
}

func (s *facadeStub) ClaimDelivery(ctx context.Context, actorID int64, orderID string) (*model.DeliveryOrderView, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, actorID, orderID)
	}
	return &model.DeliveryOrderView{OrderID: orderID, Status: model.DeliveryReadyForPickup}, nil
}

func (s *facadeStub) AdvanceDelivery(ctx context.Context, actorID int64, orderID string, target model.DeliveryStatus) (*model.DeliveryOrderView, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, actorID, orderID, target)
	}
	return &model.DeliveryOrderView{OrderID: orderID, Status: target}, nil
}

func (s *facadeStub) SubscribeDeliveries(actorID int64, fn func([]model.DeliveryOrderView)) func() {
	if s.SubscribeFn != nil {
		return s.SubscribeFn(actorID, fn)
	}
	return func() {}
}

func (s *facadeStub) KitchenOrders(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	if s.KitchenOrdersFn != nil {
		return s.KitchenOrdersFn(ctx, principal)
	}
	return nil, nil
}

func (s *facadeStub) AdvanceKitchenOrder(ctx context.Context, principal model.Principal, orderID string, target model.OrderStatus) (*model.Order, error) {
	if s.KitchenAdvanceFn != nil {
		return s.KitchenAdvanceFn(ctx, principal, orderID, target)
	}
	return &model.Order{ID: orderID, Status: target}, nil
}

func (s *facadeStub) Search(ctx context.Context, callerID int64, term string, filter model.SearchFilter) (*usecase.SearchResponse, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, callerID, term, filter)
	}
	return &usecase.SearchResponse{Term: term, Filter: filter}, nil
}

func (s *facadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
