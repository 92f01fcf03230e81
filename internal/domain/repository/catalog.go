package repository

import (
	"context"

	"github.com/polkiloo/foodcourier/internal/domain/model"
)

// RestaurantRepository reads restaurants and their fee schedules.
type RestaurantRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Restaurant, error)
	ListActive(ctx context.Context, limit int) ([]model.Restaurant, error)
}

// MenuRepository reads menu items.
type MenuRepository interface {
	GetByID(ctx context.Context, id int64) (*model.MenuItem, error)
	ListAvailable(ctx context.Context, limit int) ([]model.MenuItem, error)
}
