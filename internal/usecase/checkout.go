package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/polkiloo/foodcourier/internal/checkout"
	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/domain/repository"
)

// CartUpdate is the session state after a cart mutation. Emptied reports that
// the last line was removed and the session was closed.
type CartUpdate struct {
	Summary checkout.Snapshot
	Emptied bool
}

// CheckoutUseCase drives the per-customer checkout session.
type CheckoutUseCase struct {
	sessions            *checkout.SessionStore
	restaurants         repository.RestaurantRepository
	menu                repository.MenuRepository
	addresses           repository.AddressRepository
	defaultDeliveryTime string
	logger              *slog.Logger
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	sessions *checkout.SessionStore,
	restaurants repository.RestaurantRepository,
	menu repository.MenuRepository,
	addresses repository.AddressRepository,
	defaultDeliveryTime string,
	logger *slog.Logger,
) *CheckoutUseCase {
	if strings.TrimSpace(defaultDeliveryTime) == "" {
		defaultDeliveryTime = model.DefaultEstimatedDeliveryTime
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutUseCase{
		sessions:            sessions,
		restaurants:         restaurants,
		menu:                menu,
		addresses:           addresses,
		defaultDeliveryTime: defaultDeliveryTime,
		logger:              logger,
	}
}

// Start opens a session for restaurantID, replacing any previous one. The fee
// schedule is read once here. The customer's default address is preselected.
func (u *CheckoutUseCase) Start(ctx context.Context, customerID, restaurantID int64) (checkout.Snapshot, error) {
	restaurant, err := u.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return checkout.Snapshot{}, err
	}
	if !restaurant.Active {
		return checkout.Snapshot{}, domainErrors.ErrRestaurantClosed
	}
	if strings.TrimSpace(restaurant.Schedule.EstimatedDeliveryTime) == "" {
		restaurant.Schedule.EstimatedDeliveryTime = u.defaultDeliveryTime
	}

	session := u.sessions.Start(customerID, restaurant)

	addresses, err := u.addresses.ListByUser(ctx, customerID)
	if err != nil {
		u.logger.Warn("default address lookup failed",
			slog.Int64("customer_id", customerID),
			slog.String("error", err.Error()),
		)
	}
	for _, a := range addresses {
		if a.IsDefault {
			session.SelectAddress(a)
			break
		}
	}

	return session.Snapshot(), nil
}

// AddItem appends a menu item to the cart.
func (u *CheckoutUseCase) AddItem(ctx context.Context, customerID, menuItemID int64, quantity int, note string) (checkout.Snapshot, error) {
	session, err := u.sessions.Get(customerID)
	if err != nil {
		return checkout.Snapshot{}, err
	}
	item, err := u.menu.GetByID(ctx, menuItemID)
	if err != nil {
		return checkout.Snapshot{}, err
	}
	if err := session.AddItem(*item, quantity, strings.TrimSpace(note)); err != nil {
		return checkout.Snapshot{}, err
	}
	return session.Snapshot(), nil
}

// SetQuantity changes the line at index. Removing the last line closes the session.
func (u *CheckoutUseCase) SetQuantity(customerID int64, index, quantity int) (CartUpdate, error) {
	session, err := u.sessions.Get(customerID)
	if err != nil {
		return CartUpdate{}, err
	}
	emptied, err := session.SetQuantity(index, quantity)
	if err != nil {
		return CartUpdate{}, err
	}
	summary := session.Snapshot()
	if emptied {
		u.sessions.Delete(customerID, session)
	}
	return CartUpdate{Summary: summary, Emptied: emptied}, nil
}

// RemoveItem drops the line at index.
func (u *CheckoutUseCase) RemoveItem(customerID int64, index int) (CartUpdate, error) {
	return u.SetQuantity(customerID, index, 0)
}

// SelectAddress copies one of the customer's saved addresses into the session.
func (u *CheckoutUseCase) SelectAddress(ctx context.Context, customerID, addressID int64) (checkout.Snapshot, error) {
	session, err := u.sessions.Get(customerID)
	if err != nil {
		return checkout.Snapshot{}, err
	}
	address, err := u.addresses.GetByID(ctx, customerID, addressID)
	if err != nil {
		return checkout.Snapshot{}, err
	}
	session.SelectAddress(*address)
	return session.Snapshot(), nil
}

// SelectPayment records the chosen payment method.
func (u *CheckoutUseCase) SelectPayment(customerID int64, payment model.PaymentSelection) (checkout.Snapshot, error) {
	session, err := u.sessions.Get(customerID)
	if err != nil {
		return checkout.Snapshot{}, err
	}
	kind, err := model.ParsePaymentKind(string(payment.Kind))
	if err != nil {
		return checkout.Snapshot{}, err
	}
	payment.Kind = kind
	payment.DisplayName = strings.TrimSpace(payment.DisplayName)
	if payment.DisplayName == "" {
		payment.DisplayName = defaultPaymentName(kind)
	}
	session.SelectPayment(payment)
	return session.Snapshot(), nil
}

func (u *CheckoutUseCase) SetInstructions(customerID int64, instructions string) (checkout.Snapshot, error) {
	session, err := u.sessions.Get(customerID)
	if err != nil {
		return checkout.Snapshot{}, err
	}
	session.SetInstructions(strings.TrimSpace(instructions))
	return session.Snapshot(), nil
}

// Summary returns current items, pricing and eligibility.
func (u *CheckoutUseCase) Summary(customerID int64) (checkout.Snapshot, error) {
	session, err := u.sessions.Get(customerID)
	if err != nil {
		return checkout.Snapshot{}, err
	}
	return session.Snapshot(), nil
}

// Cancel drops the session.
func (u *CheckoutUseCase) Cancel(customerID int64) {
	u.sessions.Delete(customerID, nil)
}

func defaultPaymentName(kind model.PaymentKind) string {
	switch kind {
	case model.PaymentKindMobileMoney:
		return "Mobile money"
	case model.PaymentKindCard:
		return "Card"
	default:
		return "Cash on delivery"
	}
}
