package repository

import (
	"context"

	"github.com/polkiloo/foodcourier/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create inserts order snapshot. Returns whether order was newly created;
	// an existing order with the same idempotency key is returned otherwise.
	Create(ctx context.Context, order model.Order) (*model.Order, bool, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	ListByDeliveryActor(ctx context.Context, actorID int64) ([]model.Order, error)
	ListByRestaurantOwner(ctx context.Context, ownerID int64) ([]model.Order, error)
	ListAwaitingPickup(ctx context.Context, limit int) ([]model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
	// UpdateStatus applies change only if the order is still in change.From.
	UpdateStatus(ctx context.Context, change model.StatusChange) error
	// Assign sets delivery actor on an unassigned order awaiting pickup.
	Assign(ctx context.Context, orderID string, actorID int64) error
}
