package repository

import (
	"context"

	"github.com/polkiloo/foodcourier/internal/domain/model"
)

// AddressRepository manages saved delivery addresses.
type AddressRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Address, error)
	GetByID(ctx context.Context, userID, id int64) (*model.Address, error)
	// Create stores address; the first address of a user becomes default.
	Create(ctx context.Context, address model.Address) (*model.Address, error)
	SetDefault(ctx context.Context, userID, id int64) error
}
