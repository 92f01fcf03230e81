package dto

// StartCheckoutRequest opens a checkout session for a restaurant.
type StartCheckoutRequest struct {
	RestaurantID int64 `json:"restaurant_id" binding:"required"`
}

// AddItemRequest appends a menu item to the cart.
type AddItemRequest struct {
	MenuItemID int64  `json:"menu_item_id" binding:"required"`
	Quantity   int    `json:"quantity"`
	Note       string `json:"note"`
}

// QuantityRequest replaces the quantity of a cart line.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SelectAddressRequest picks one of the saved addresses.
type SelectAddressRequest struct {
	AddressID int64 `json:"address_id" binding:"required"`
}

// PaymentRequest selects the payment method.
type PaymentRequest struct {
	Kind         string `json:"kind"`
	DisplayName  string `json:"display_name"`
	MaskedDetail string `json:"masked_detail"`
}

// InstructionsRequest sets free-text delivery instructions.
type InstructionsRequest struct {
	Instructions string `json:"instructions"`
}

// PlaceOrderRequest carries optional submission details.
type PlaceOrderRequest struct {
	CustomerName string `json:"customer_name"`
}

// LineItemResponse is a cart line.
type LineItemResponse struct {
	Index      int     `json:"index"`
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
	Note       string  `json:"note,omitempty"`
}

// PricingResponse is a rounded pricing breakdown in major currency units.
type PricingResponse struct {
	Subtotal      float64 `json:"subtotal"`
	ServiceCharge float64 `json:"service_charge"`
	Tax           float64 `json:"tax"`
	DeliveryFee   float64 `json:"delivery_fee"`
	Total         float64 `json:"total"`
}

// EligibilityResponse reports whether the order can be placed.
type EligibilityResponse struct {
	CanPlaceOrder   bool    `json:"can_place_order"`
	HasItems        bool    `json:"has_items"`
	AddressSelected bool    `json:"address_selected"`
	PaymentSelected bool    `json:"payment_selected"`
	MeetsMinimum    bool    `json:"meets_minimum"`
	Shortfall       float64 `json:"shortfall"`
	Reason          string  `json:"reason,omitempty"`
}

// PaymentResponse is the selected payment method.
type PaymentResponse struct {
	Kind         string `json:"kind"`
	DisplayName  string `json:"display_name"`
	MaskedDetail string `json:"masked_detail,omitempty"`
}

// CheckoutResponse is the state of a checkout session.
type CheckoutResponse struct {
	RestaurantID          int64               `json:"restaurant_id"`
	RestaurantName        string              `json:"restaurant_name"`
	EstimatedDeliveryTime string              `json:"estimated_delivery_time"`
	Items                 []LineItemResponse  `json:"items"`
	Address               *AddressResponse    `json:"address,omitempty"`
	Payment               *PaymentResponse    `json:"payment,omitempty"`
	Instructions          string              `json:"instructions,omitempty"`
	Pricing               PricingResponse     `json:"pricing"`
	Eligibility           EligibilityResponse `json:"eligibility"`
	Emptied               bool                `json:"emptied,omitempty"`
}

// ReceiptResponse confirms a placed order.
type ReceiptResponse struct {
	OrderID               string          `json:"order_id"`
	OrderNumber           string          `json:"order_number"`
	EstimatedDeliveryTime string          `json:"estimated_delivery_time"`
	Pricing               PricingResponse `json:"pricing"`
}
