package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/foodcourier/internal/checkout"
	"github.com/polkiloo/foodcourier/internal/config"
	"github.com/polkiloo/foodcourier/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newSessionStore,
	NewAuthUseCase,
	newCheckoutUseCase,
	NewOrderUseCase,
	NewDeliveryUseCase,
	NewKitchenUseCase,
	newSearchUseCase,
	NewAddressUseCase,
)

func newSessionStore(cfg *config.Config, logger *slog.Logger) *checkout.SessionStore {
	return checkout.NewSessionStore(cfg.CheckoutSessionTTL, logger)
}

type checkoutParams struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	Sessions    *checkout.SessionStore
	Restaurants repository.RestaurantRepository
	Menu        repository.MenuRepository
	Addresses   repository.AddressRepository
}

func newCheckoutUseCase(p checkoutParams) *CheckoutUseCase {
	return NewCheckoutUseCase(p.Sessions, p.Restaurants, p.Menu, p.Addresses, p.Config.DefaultDeliveryTime, p.Logger)
}

type searchParams struct {
	fx.In

	Config      *config.Config
	Restaurants repository.RestaurantRepository
	Menu        repository.MenuRepository
}

func newSearchUseCase(p searchParams) *SearchUseCase {
	return NewSearchUseCase(p.Restaurants, p.Menu, p.Config.SearchLimit)
}
