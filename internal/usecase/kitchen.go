package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/domain/repository"
)

// KitchenUseCase lets a restaurant move its orders up to ready_for_pickup.
type KitchenUseCase struct {
	orders      repository.OrderRepository
	restaurants repository.RestaurantRepository
	now         func() time.Time
	logger      *slog.Logger
}

// NewKitchenUseCase constructs KitchenUseCase.
func NewKitchenUseCase(orders repository.OrderRepository, restaurants repository.RestaurantRepository, logger *slog.Logger) *KitchenUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &KitchenUseCase{orders: orders, restaurants: restaurants, now: time.Now, logger: logger}
}

// Orders lists orders of the principal's restaurants; admins see recent orders.
func (u *KitchenUseCase) Orders(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	switch principal.Role {
	case model.RoleAdmin:
		return u.orders.ListRecent(ctx, recentOrdersLimit)
	case model.RoleRestaurant:
		return u.orders.ListByRestaurantOwner(ctx, principal.UserID)
	default:
		return nil, domainErrors.ErrForbidden
	}
}

// Advance applies target if it is the next kitchen step or a permitted cancellation.
func (u *KitchenUseCase) Advance(ctx context.Context, principal model.Principal, orderID string, target model.OrderStatus) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := u.authorize(ctx, principal, order); err != nil {
		return nil, err
	}

	from := order.Status
	if target == model.OrderStatusCancelled {
		if !from.KitchenCancellable() {
			return nil, domainErrors.ErrTransitionNotAllowed
		}
	} else if next, ok := from.KitchenNext(); !ok || next != target {
		return nil, domainErrors.ErrTransitionNotAllowed
	}

	now := u.now()
	if err := u.orders.UpdateStatus(ctx, model.NewStatusChange(order.ID, from, target, now)); err != nil {
		return nil, err
	}
	order.Status = target
	order.UpdatedAt = now

	u.logger.Info("kitchen status changed",
		slog.String("order_id", order.ID),
		slog.String("from", string(from)),
		slog.String("to", string(target)),
	)
	return order, nil
}

func (u *KitchenUseCase) authorize(ctx context.Context, principal model.Principal, order *model.Order) error {
	switch principal.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleRestaurant:
		restaurant, err := u.restaurants.GetByID(ctx, order.Restaurant.ID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return domainErrors.ErrForbidden
			}
			return err
		}
		if restaurant.OwnerID != principal.UserID {
			return domainErrors.ErrForbidden
		}
		return nil
	default:
		return domainErrors.ErrForbidden
	}
}
