package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodcourier/internal/checkout"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/server/http/dto"
	"github.com/polkiloo/foodcourier/internal/usecase"
)

// IdempotencyKeyHeader lets clients retry order submission safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// CheckoutHandler exposes the checkout session of the calling customer.
type CheckoutHandler struct {
	facade CheckoutFacade
}

// NewCheckoutHandler constructs CheckoutHandler.
func NewCheckoutHandler(facade CheckoutFacade) *CheckoutHandler {
	return &CheckoutHandler{facade: facade}
}

// Start handles POST /api/checkout.
func (h *CheckoutHandler) Start(c *gin.Context) {
	var req dto.StartCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "restaurant_id is required")
		return
	}
	snapshot, err := h.facade.StartCheckout(c.Request.Context(), CurrentUserID(c), req.RestaurantID)
	h.respond(c, http.StatusCreated, snapshot, err)
}

// Summary handles GET /api/checkout.
func (h *CheckoutHandler) Summary(c *gin.Context) {
	snapshot, err := h.facade.CheckoutSummary(CurrentUserID(c))
	h.respond(c, http.StatusOK, snapshot, err)
}

// Cancel handles DELETE /api/checkout.
func (h *CheckoutHandler) Cancel(c *gin.Context) {
	h.facade.CancelCheckout(CurrentUserID(c))
	c.Status(http.StatusNoContent)
}

// AddItem handles POST /api/checkout/items. Quantity defaults to one.
func (h *CheckoutHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "menu_item_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	snapshot, err := h.facade.AddCartItem(c.Request.Context(), CurrentUserID(c), req.MenuItemID, req.Quantity, req.Note)
	h.respond(c, http.StatusOK, snapshot, err)
}

// UpdateItem handles PATCH /api/checkout/items/:index.
func (h *CheckoutHandler) UpdateItem(c *gin.Context) {
	index, ok := pathInt(c, "index")
	if !ok {
		return
	}
	var req dto.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	update, err := h.facade.SetCartQuantity(CurrentUserID(c), int(index), req.Quantity)
	h.respondUpdate(c, update, err)
}

// RemoveItem handles DELETE /api/checkout/items/:index.
func (h *CheckoutHandler) RemoveItem(c *gin.Context) {
	index, ok := pathInt(c, "index")
	if !ok {
		return
	}
	update, err := h.facade.RemoveCartItem(CurrentUserID(c), int(index))
	h.respondUpdate(c, update, err)
}

// SelectAddress handles PUT /api/checkout/address.
func (h *CheckoutHandler) SelectAddress(c *gin.Context) {
	var req dto.SelectAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "address_id is required")
		return
	}
	snapshot, err := h.facade.SelectAddress(c.Request.Context(), CurrentUserID(c), req.AddressID)
	h.respond(c, http.StatusOK, snapshot, err)
}

// SelectPayment handles PUT /api/checkout/payment.
func (h *CheckoutHandler) SelectPayment(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	snapshot, err := h.facade.SelectPayment(CurrentUserID(c), model.PaymentSelection{
		Kind:         model.PaymentKind(req.Kind),
		DisplayName:  req.DisplayName,
		MaskedDetail: req.MaskedDetail,
	})
	h.respond(c, http.StatusOK, snapshot, err)
}

// SetInstructions handles PUT /api/checkout/instructions.
func (h *CheckoutHandler) SetInstructions(c *gin.Context) {
	var req dto.InstructionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	snapshot, err := h.facade.SetInstructions(CurrentUserID(c), req.Instructions)
	h.respond(c, http.StatusOK, snapshot, err)
}

// Place handles POST /api/checkout/place. A repeated Idempotency-Key returns
// the stored order with 200 instead of 201.
func (h *CheckoutHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "malformed request body")
		return
	}

	receipt, err := h.facade.PlaceOrder(c.Request.Context(), CurrentUserID(c), req.CustomerName, c.GetHeader(IdempotencyKeyHeader))
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusCreated
	if !receipt.Created {
		status = http.StatusOK
	}
	resp := dto.ReceiptResponse{
		OrderID:               receipt.OrderID,
		OrderNumber:           receipt.OrderNumber,
		EstimatedDeliveryTime: receipt.EstimatedDeliveryTime,
	}
	if receipt.Order != nil {
		resp.Pricing = toPricingResponse(receipt.Order.Pricing)
	}
	c.JSON(status, resp)
}

func (h *CheckoutHandler) respond(c *gin.Context, status int, snapshot checkout.Snapshot, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(status, toCheckoutResponse(snapshot))
}

func (h *CheckoutHandler) respondUpdate(c *gin.Context, update usecase.CartUpdate, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	resp := toCheckoutResponse(update.Summary)
	resp.Emptied = update.Emptied
	c.JSON(http.StatusOK, resp)
}
