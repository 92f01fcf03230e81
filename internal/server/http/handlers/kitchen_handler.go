package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/server/http/dto"
)

// KitchenHandler lets restaurant staff move orders towards pickup.
type KitchenHandler struct {
	facade KitchenFacade
}

// NewKitchenHandler constructs KitchenHandler.
func NewKitchenHandler(facade KitchenFacade) *KitchenHandler {
	return &KitchenHandler{facade: facade}
}

// List handles GET /api/restaurant/orders.
func (h *KitchenHandler) List(c *gin.Context) {
	orders, err := h.facade.KitchenOrders(c.Request.Context(), CurrentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

// Advance handles POST /api/restaurant/orders/:id/status.
func (h *KitchenHandler) Advance(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	order, err := h.facade.AdvanceKitchenOrder(c.Request.Context(), CurrentPrincipal(c), c.Param("id"), model.OrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}
