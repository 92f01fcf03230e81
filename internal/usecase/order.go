package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/polkiloo/foodcourier/internal/checkout"
	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/domain/repository"
)

const (
	fallbackCustomerName = "Customer"
	recentOrdersLimit    = 100
)

// Receipt is returned after a successful submission.
type Receipt struct {
	OrderID               string
	OrderNumber           string
	EstimatedDeliveryTime string
	// Created is false when an order with the same idempotency key already existed.
	Created bool
	Order   *model.Order
}

// OrderUseCase encapsulates order submission and retrieval.
type OrderUseCase struct {
	sessions    *checkout.SessionStore
	orders      repository.OrderRepository
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
	logger      *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	sessions *checkout.SessionStore,
	orders repository.OrderRepository,
	users repository.UserRepository,
	restaurants repository.RestaurantRepository,
	logger *slog.Logger,
) *OrderUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderUseCase{sessions: sessions, orders: orders, users: users, restaurants: restaurants, logger: logger}
}

// PlaceOrder turns the customer's checkout session into a persisted order.
// The session is closed on success and left intact on failure so the
// customer can retry. idempotencyKey overrides the session key when set; a
// key that resolves to an order from another session returns that order and
// keeps the current session.
func (u *OrderUseCase) PlaceOrder(ctx context.Context, customerID int64, profileName, idempotencyKey string) (*Receipt, error) {
	session, err := u.sessions.Get(customerID)
	if err != nil {
		return nil, err
	}

	snapshot, err := session.BeginPlacing()
	if err != nil {
		return nil, err
	}
	placed := false
	defer func() { session.FinishPlacing(placed) }()

	customer, err := u.users.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w: %w", domainErrors.ErrBackendUnavailable, err)
	}

	sessionKey := snapshot.IdempotencyKey
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		snapshot.IdempotencyKey = key
	}

	order := buildOrder(snapshot, customer, profileName)
	stored, created, err := u.orders.Create(ctx, order)
	if err != nil {
		u.logger.Error("order submission failed",
			slog.Int64("customer_id", customerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("persist order: %w: %w", domainErrors.ErrBackendUnavailable, err)
	}
	if stored.Customer.UserID != customerID {
		return nil, domainErrors.ErrAlreadyExists
	}

	if created || stored.IdempotencyKey == sessionKey {
		placed = true
		u.sessions.Delete(customerID, session)
	}

	u.logger.Info("order placed",
		slog.String("order_id", stored.ID),
		slog.Int64("customer_id", customerID),
		slog.Bool("created", created),
	)

	return &Receipt{
		OrderID:               stored.ID,
		OrderNumber:           stored.Number(),
		EstimatedDeliveryTime: stored.Restaurant.EstimatedDeliveryTime,
		Created:               created,
		Order:                 stored,
	}, nil
}

// Get returns an order visible to principal.
func (u *OrderUseCase) Get(ctx context.Context, principal model.Principal, orderID string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	allowed, err := u.canView(ctx, principal, order)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// List returns orders scoped to the principal's role.
func (u *OrderUseCase) List(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	switch principal.Role {
	case model.RoleCustomer:
		return u.orders.ListByCustomer(ctx, principal.UserID)
	case model.RoleDelivery:
		return u.orders.ListByDeliveryActor(ctx, principal.UserID)
	case model.RoleRestaurant:
		return u.orders.ListByRestaurantOwner(ctx, principal.UserID)
	case model.RoleAdmin:
		return u.orders.ListRecent(ctx, recentOrdersLimit)
	default:
		return nil, domainErrors.ErrForbidden
	}
}

func (u *OrderUseCase) canView(ctx context.Context, principal model.Principal, order *model.Order) (bool, error) {
	switch principal.Role {
	case model.RoleAdmin:
		return true, nil
	case model.RoleCustomer:
		return order.Customer.UserID == principal.UserID, nil
	case model.RoleDelivery:
		return order.DeliveryActorID != nil && *order.DeliveryActorID == principal.UserID, nil
	case model.RoleRestaurant:
		restaurant, err := u.restaurants.GetByID(ctx, order.Restaurant.ID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		return restaurant.OwnerID == principal.UserID, nil
	default:
		return false, nil
	}
}

func buildOrder(s checkout.Snapshot, customer *model.User, profileName string) model.Order {
	items := make([]model.OrderItem, 0, len(s.Items))
	for _, line := range s.Items {
		items = append(items, model.OrderItem{
			MenuItemID: line.MenuItem.ID,
			Name:       line.MenuItem.Name,
			Price:      line.MenuItem.Price,
			Quantity:   line.Quantity,
			Subtotal:   line.Subtotal(),
			Note:       line.Note,
		})
	}

	restaurant := model.RestaurantSnapshot{
		ID:                    s.Restaurant.ID,
		Name:                  s.Restaurant.Name,
		EstimatedDeliveryTime: s.Restaurant.Schedule.EstimatedDeliveryTime,
		Location:              s.Restaurant.Location,
	}
	if restaurant.EstimatedDeliveryTime == "" {
		restaurant.EstimatedDeliveryTime = model.DefaultEstimatedDeliveryTime
	}

	return model.Order{
		IdempotencyKey: s.IdempotencyKey,
		Customer: model.CustomerSnapshot{
			UserID: customer.ID,
			Email:  customer.Email,
			Name:   customerName(customer, profileName, s.Address),
			Phone:  customer.Phone,
		},
		Restaurant:    restaurant,
		Items:         items,
		Address:       *s.Address,
		Payment:       *s.Payment,
		Instructions:  s.Instructions,
		Pricing:       s.Pricing.Round(),
		Status:        model.OrderStatusPending,
		PaymentStatus: s.Payment.InitialStatus(),
	}
}

// customerName picks the first non-empty of account display name, profile
// name, address label and email local part.
func customerName(user *model.User, profileName string, address *model.Address) string {
	candidates := []string{user.DisplayName, profileName}
	if address != nil {
		candidates = append(candidates, address.Label)
	}
	if local, _, ok := strings.Cut(user.Email, "@"); ok {
		candidates = append(candidates, local)
	}
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return fallbackCustomerName
}
