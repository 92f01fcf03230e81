package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/server/http/handlers"
	"github.com/polkiloo/foodcourier/internal/server/http/middleware"
)

// DeliveryStreamPath is served uncompressed so events reach clients as flushed.
const DeliveryStreamPath = "/api/delivery/orders/stream"

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketplaceFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(middleware.MaxRequestBody))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{DeliveryStreamPath})))

	authHandler := handlers.NewAuthHandler(facade)
	addressHandler := handlers.NewAddressHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	deliveryHandler := handlers.NewDeliveryHandler(facade)
	kitchenHandler := handlers.NewKitchenHandler(facade)
	searchHandler := handlers.NewSearchHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/user/addresses", addressHandler.List)
	authed.POST("/user/addresses", addressHandler.Create)
	authed.PUT("/user/addresses/:id/default", addressHandler.SetDefault)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.GET("/search", searchHandler.Search)

	cart := authed.Group("/checkout")
	cart.Use(middleware.RequireRole(model.RoleCustomer))
	cart.POST("", checkoutHandler.Start)
	cart.GET("", checkoutHandler.Summary)
	cart.DELETE("", checkoutHandler.Cancel)
	cart.POST("/items", checkoutHandler.AddItem)
	cart.PATCH("/items/:index", checkoutHandler.UpdateItem)
	cart.DELETE("/items/:index", checkoutHandler.RemoveItem)
	cart.PUT("/address", checkoutHandler.SelectAddress)
	cart.PUT("/payment", checkoutHandler.SelectPayment)
	cart.PUT("/instructions", checkoutHandler.SetInstructions)
	cart.POST("/place", checkoutHandler.Place)

	delivery := authed.Group("/delivery")
	delivery.Use(middleware.RequireRole(model.RoleDelivery))
	delivery.GET("/orders", deliveryHandler.Orders)
	delivery.GET("/orders/stream", deliveryHandler.Stream)
	delivery.GET("/available", deliveryHandler.Available)
	delivery.POST("/orders/:id/claim", deliveryHandler.Claim)
	delivery.POST("/orders/:id/status", deliveryHandler.Advance)

	kitchen := authed.Group("/restaurant")
	kitchen.Use(middleware.RequireRole(model.RoleRestaurant, model.RoleAdmin))
	kitchen.GET("/orders", kitchenHandler.List)
	kitchen.POST("/orders/:id/status", kitchenHandler.Advance)

	return engine
}
