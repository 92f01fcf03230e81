package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodcourier/internal/checkout"
	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/server/http/dto"
	"github.com/polkiloo/foodcourier/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentPrincipal extracts the authenticated user and role from context.
func CurrentPrincipal(c *gin.Context) model.Principal {
	principal := model.Principal{UserID: CurrentUserID(c)}
	if val, ok := c.Get(middleware.RoleContextKey); ok {
		principal.Role, _ = val.(model.Role)
	}
	return principal
}

var errorStatuses = []struct {
	err    error
	status int
}{
	{domainErrors.ErrNotFound, http.StatusNotFound},
	{domainErrors.ErrNoSession, http.StatusNotFound},
	{domainErrors.ErrForbidden, http.StatusForbidden},
	{domainErrors.ErrInvalidCredentials, http.StatusBadRequest},
	{domainErrors.ErrInvalidRole, http.StatusBadRequest},
	{domainErrors.ErrInvalidLineItem, http.StatusBadRequest},
	{domainErrors.ErrInvalidQuantity, http.StatusBadRequest},
	{domainErrors.ErrInvalidPayment, http.StatusBadRequest},
	{domainErrors.ErrInvalidAddress, http.StatusBadRequest},
	{domainErrors.ErrUnknownStatus, http.StatusBadRequest},
	{domainErrors.ErrCartEmpty, http.StatusUnprocessableEntity},
	{domainErrors.ErrScheduleMissing, http.StatusUnprocessableEntity},
	{domainErrors.ErrAddressMissing, http.StatusUnprocessableEntity},
	{domainErrors.ErrPaymentMissing, http.StatusUnprocessableEntity},
	{domainErrors.ErrItemUnavailable, http.StatusUnprocessableEntity},
	{domainErrors.ErrRestaurantClosed, http.StatusUnprocessableEntity},
	{domainErrors.ErrAlreadyExists, http.StatusConflict},
	{domainErrors.ErrOrderInProgress, http.StatusConflict},
	{domainErrors.ErrStatusConflict, http.StatusConflict},
	{domainErrors.ErrTransitionNotAllowed, http.StatusConflict},
	{domainErrors.ErrSearchSuperseded, http.StatusConflict},
	{domainErrors.ErrBackendUnavailable, http.StatusServiceUnavailable},
}

// writeError maps domain errors onto HTTP statuses. Server side failures are
// reported with a generic message and attached to the context for logging.
func writeError(c *gin.Context, err error) {
	var below *domainErrors.BelowMinimumError
	if errors.As(err, &below) {
		shortfall := model.Money(below.Shortfall).Float64()
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: below.Error(), Shortfall: &shortfall})
		return
	}

	for _, candidate := range errorStatuses {
		if !errors.Is(err, candidate.err) {
			continue
		}
		if candidate.status >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.JSON(candidate.status, dto.ErrorResponse{Error: candidate.err.Error()})
		return
	}

	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: message})
}

func pathInt(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v < 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func toAddressResponse(a model.Address) dto.AddressResponse {
	resp := dto.AddressResponse{
		ID:         a.ID,
		Label:      a.Label,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
	}
	if a.Location != nil {
		lat, lng := a.Location.Lat, a.Location.Lng
		resp.Lat, resp.Lng = &lat, &lng
	}
	return resp
}

func toPricingResponse(p model.Pricing) dto.PricingResponse {
	return dto.PricingResponse{
		Subtotal:      p.Subtotal.Float64(),
		ServiceCharge: p.ServiceCharge.Float64(),
		Tax:           p.Tax.Float64(),
		DeliveryFee:   p.DeliveryFee.Float64(),
		Total:         p.Total.Float64(),
	}
}

func toPaymentResponse(p model.PaymentSelection) dto.PaymentResponse {
	return dto.PaymentResponse{Kind: string(p.Kind), DisplayName: p.DisplayName, MaskedDetail: p.MaskedDetail}
}

func toCheckoutResponse(s checkout.Snapshot) dto.CheckoutResponse {
	resp := dto.CheckoutResponse{
		Items:        make([]dto.LineItemResponse, 0, len(s.Items)),
		Instructions: s.Instructions,
		Pricing:      toPricingResponse(s.Pricing.Round()),
		Eligibility: dto.EligibilityResponse{
			CanPlaceOrder:   s.Eligibility.CanPlaceOrder() && s.Eligibility.HasItems,
			HasItems:        s.Eligibility.HasItems,
			AddressSelected: s.Eligibility.AddressSelected,
			PaymentSelected: s.Eligibility.PaymentSelected,
			MeetsMinimum:    s.Eligibility.MeetsMinimum,
			Shortfall:       s.Eligibility.Shortfall.Float64(),
		},
	}
	if err := s.Eligibility.Err(); err != nil {
		resp.Eligibility.Reason = err.Error()
	}
	if s.Restaurant != nil {
		resp.RestaurantID = s.Restaurant.ID
		resp.RestaurantName = s.Restaurant.Name
		resp.EstimatedDeliveryTime = s.Restaurant.Schedule.EstimatedDeliveryTime
	}
	for i, line := range s.Items {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			Index:      i,
			MenuItemID: line.MenuItem.ID,
			Name:       line.MenuItem.Name,
			Price:      line.MenuItem.Price.Float64(),
			Quantity:   line.Quantity,
			Subtotal:   line.Subtotal().Float64(),
			Note:       line.Note,
		})
	}
	if s.Address != nil {
		address := toAddressResponse(*s.Address)
		resp.Address = &address
	}
	if s.Payment != nil {
		payment := toPaymentResponse(*s.Payment)
		resp.Payment = &payment
	}
	return resp
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, dto.OrderItemResponse{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      item.Price.Float64(),
			Quantity:   item.Quantity,
			Subtotal:   item.Subtotal.Float64(),
			Note:       item.Note,
		})
	}
	return dto.OrderResponse{
		ID:            o.ID,
		Number:        o.Number(),
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		CustomerName:  o.Customer.Name,
		Restaurant: dto.RestaurantResponse{
			ID:                    o.Restaurant.ID,
			Name:                  o.Restaurant.Name,
			EstimatedDeliveryTime: o.Restaurant.EstimatedDeliveryTime,
		},
		Items:           items,
		Address:         toAddressResponse(o.Address),
		Payment:         toPaymentResponse(o.Payment),
		Instructions:    o.Instructions,
		Pricing:         toPricingResponse(o.Pricing),
		DeliveryActorID: o.DeliveryActorID,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		PickedUpAt:      o.PickedUpAt,
		DeliveredAt:     o.DeliveredAt,
	}
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	return resp
}

func toDeliveryResponse(v model.DeliveryOrderView) dto.DeliveryOrderResponse {
	return dto.DeliveryOrderResponse{
		OrderID:        v.OrderID,
		OrderNumber:    v.OrderNumber,
		Status:         v.Status.String(),
		RestaurantName: v.Restaurant.Name,
		CustomerName:   v.CustomerName,
		Phone:          v.Phone,
		Address:        toAddressResponse(v.Address),
		Instructions:   v.Instructions,
		Total:          v.Total.Float64(),
		Earnings:       v.Earnings.Float64(),
		DistanceKm:     v.DistanceKm,
		CreatedAt:      v.CreatedAt,
		PickedUpAt:     v.PickedUpAt,
		DeliveredAt:    v.DeliveredAt,
	}
}

func toDeliveryResponses(views []model.DeliveryOrderView) []dto.DeliveryOrderResponse {
	resp := make([]dto.DeliveryOrderResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, toDeliveryResponse(v))
	}
	return resp
}
