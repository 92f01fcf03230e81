package di

import (
	"github.com/polkiloo/foodcourier/internal/app"
	"github.com/polkiloo/foodcourier/internal/config"
	"github.com/polkiloo/foodcourier/internal/logger"
	"github.com/polkiloo/foodcourier/internal/pkg/auth"
	"github.com/polkiloo/foodcourier/internal/server/http/router"
	"github.com/polkiloo/foodcourier/internal/storage/postgres"
	"github.com/polkiloo/foodcourier/internal/usecase"
	"go.uber.org/fx"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
