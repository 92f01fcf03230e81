package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/server/http/dto"
)

// DeliveryStreamEvent names the server-sent event carrying the order list.
const DeliveryStreamEvent = "orders"

// DeliveryHandler serves the delivery actor's order list and transitions.
type DeliveryHandler struct {
	facade DeliveryFacade
}

// NewDeliveryHandler constructs DeliveryHandler.
func NewDeliveryHandler(facade DeliveryFacade) *DeliveryHandler {
	return &DeliveryHandler{facade: facade}
}

// Orders handles GET /api/delivery/orders?filter=.
func (h *DeliveryHandler) Orders(c *gin.Context) {
	filter, ok := model.ParseDeliveryFilter(c.Query("filter"))
	if !ok {
		badRequest(c, "filter must be one of all, active, completed, cancelled")
		return
	}
	views, err := h.facade.DeliveryOrders(c.Request.Context(), CurrentUserID(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeliveryResponses(views))
}

// Available handles GET /api/delivery/available.
func (h *DeliveryHandler) Available(c *gin.Context) {
	views, err := h.facade.AvailableDeliveries(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeliveryResponses(views))
}

// Claim handles POST /api/delivery/orders/:id/claim.
func (h *DeliveryHandler) Claim(c *gin.Context) {
	view, err := h.facade.ClaimDelivery(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeliveryResponse(*view))
}

// Advance handles POST /api/delivery/orders/:id/status.
func (h *DeliveryHandler) Advance(c *gin.Context) {
	var req dto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	target, err := model.ParseDeliveryStatus(req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	view, err := h.facade.AdvanceDelivery(c.Request.Context(), CurrentUserID(c), c.Param("id"), target)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDeliveryResponse(*view))
}

// Stream handles GET /api/delivery/orders/stream. Every change to the actor's
// orders is pushed as a full list; only the latest pending list is kept when
// the client reads slower than updates arrive.
func (h *DeliveryHandler) Stream(c *gin.Context) {
	updates := make(chan []model.DeliveryOrderView, 1)
	unsubscribe := h.facade.SubscribeDeliveries(CurrentUserID(c), func(views []model.DeliveryOrderView) {
		for {
			select {
			case updates <- views:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case views := <-updates:
			c.SSEvent(DeliveryStreamEvent, toDeliveryResponses(views))
			c.Writer.Flush()
		}
	}
}
