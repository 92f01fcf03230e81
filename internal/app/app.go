package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/foodcourier/internal/checkout"
	"github.com/polkiloo/foodcourier/internal/config"
	"github.com/polkiloo/foodcourier/internal/server/http/handlers"
	"github.com/polkiloo/foodcourier/internal/storage/postgres"
	"github.com/polkiloo/foodcourier/internal/usecase"
	"github.com/polkiloo/foodcourier/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newMarketplaceFacade,
		func(f *MarketplaceFacade) handlers.MarketplaceFacade { return f },
		func(s *postgres.Storage) HealthChecker { return s },
		newHTTPServer,
		newFeedDispatcher,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

// newHTTPServer derives request contexts from a base context that is cancelled
// on Shutdown, so open delivery streams end instead of holding shutdown.
func newHTTPServer(p serverParams) *http.Server {
	baseCtx, cancel := context.WithCancel(context.Background())
	server := &http.Server{
		Addr:        p.Config.RunAddress,
		Handler:     p.Router,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}
	server.RegisterOnShutdown(cancel)
	return server
}

type feedParams struct {
	fx.In

	Delivery *usecase.DeliveryUseCase
	Listener *postgres.Listener
	Config   *config.Config
	Logger   *slog.Logger
}

func newFeedDispatcher(p feedParams) *worker.FeedDispatcher {
	var source worker.ChangeSource
	if p.Listener != nil {
		source = p.Listener
	}
	return worker.NewFeedDispatcher(
		p.Delivery,
		source,
		p.Config.FeedRefreshInterval,
		p.Config.WorkerPoolSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Ctx        context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Feed       *worker.FeedDispatcher
	Sessions   *checkout.SessionStore
	Config     *config.Config
}

// registerLifecycle runs background work on the application context. The start
// hook context ends together with startup.
func registerLifecycle(p lifecycleParams) {
	var stopSweeper context.CancelFunc

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx := p.Ctx
			if runCtx == nil {
				runCtx = context.Background()
			}
			p.Logger.Info("starting foodcourier", slog.String("addr", p.Server.Addr))
			p.Feed.Start(runCtx)

			var sweepCtx context.Context
			sweepCtx, stopSweeper = context.WithCancel(runCtx)
			go p.Sessions.RunSweeper(sweepCtx, sweepInterval(p.Config))

			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			if stopSweeper != nil {
				stopSweeper()
			}
			p.Feed.Stop()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("foodcourier stopped")
			return nil
		},
	})
}

// sweepInterval checks for idle checkout sessions four times per TTL.
func sweepInterval(cfg *config.Config) time.Duration {
	return cfg.CheckoutSessionTTL / 4
}
