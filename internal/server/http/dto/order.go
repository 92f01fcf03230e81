package dto

import "time"

// OrderItemResponse is a frozen order line.
type OrderItemResponse struct {
	MenuItemID int64   `json:"menu_item_id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
	Note       string  `json:"note,omitempty"`
}

// RestaurantResponse is the restaurant snapshot of an order.
type RestaurantResponse struct {
	ID                    int64  `json:"id"`
	Name                  string `json:"name"`
	EstimatedDeliveryTime string `json:"estimated_delivery_time"`
}

// OrderResponse is the full order record.
type OrderResponse struct {
	ID              string              `json:"id"`
	Number          string              `json:"number"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	CustomerName    string              `json:"customer_name"`
	Restaurant      RestaurantResponse  `json:"restaurant"`
	Items           []OrderItemResponse `json:"items"`
	Address         AddressResponse     `json:"address"`
	Payment         PaymentResponse     `json:"payment"`
	Instructions    string              `json:"instructions,omitempty"`
	Pricing         PricingResponse     `json:"pricing"`
	DeliveryActorID *int64              `json:"delivery_actor_id,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	PickedUpAt      *time.Time          `json:"picked_up_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
}

// StatusRequest asks for an order status change.
type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}
