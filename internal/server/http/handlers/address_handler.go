package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/server/http/dto"
)

// AddressHandler manages saved delivery addresses of the caller.
type AddressHandler struct {
	facade AddressFacade
}

// NewAddressHandler constructs AddressHandler.
func NewAddressHandler(facade AddressFacade) *AddressHandler {
	return &AddressHandler{facade: facade}
}

// List handles GET /api/user/addresses.
func (h *AddressHandler) List(c *gin.Context) {
	addresses, err := h.facade.Addresses(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	resp := make([]dto.AddressResponse, 0, len(addresses))
	for _, a := range addresses {
		resp = append(resp, toAddressResponse(a))
	}
	c.JSON(http.StatusOK, resp)
}

// Create handles POST /api/user/addresses.
func (h *AddressHandler) Create(c *gin.Context) {
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed request body")
		return
	}
	if (req.Lat == nil) != (req.Lng == nil) {
		badRequest(c, "lat and lng must be set together")
		return
	}

	address := model.Address{
		Label:      req.Label,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}
	if req.Lat != nil {
		address.Location = &model.Location{Lat: *req.Lat, Lng: *req.Lng}
	}

	stored, err := h.facade.AddAddress(c.Request.Context(), CurrentUserID(c), address)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAddressResponse(*stored))
}

// SetDefault handles PUT /api/user/addresses/:id/default.
func (h *AddressHandler) SetDefault(c *gin.Context) {
	id, ok := pathInt(c, "id")
	if !ok {
		return
	}
	if err := h.facade.SetDefaultAddress(c.Request.Context(), CurrentUserID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
