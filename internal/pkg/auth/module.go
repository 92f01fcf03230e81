package auth

import (
	"github.com/polkiloo/foodcourier/internal/config"
	"go.uber.org/fx"
)

// Module provides password hashing and the bearer token strategy.
var Module = fx.Provide(newPasswordHasher, newTokenStrategy)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newPasswordHasher(p strategyParams) PasswordHasher {
	return NewBcryptHasher(p.Config.PasswordCost)
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewJWTStrategy(p.Config.JWTSecret, Options{TTL: p.Config.TokenTTL})
}
