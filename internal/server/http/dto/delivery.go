package dto

import "time"

// DeliveryOrderResponse is an order as seen by a delivery actor.
type DeliveryOrderResponse struct {
	OrderID        string          `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	Status         string          `json:"status"`
	RestaurantName string          `json:"restaurant_name"`
	CustomerName   string          `json:"customer_name"`
	Phone          string          `json:"phone,omitempty"`
	Address        AddressResponse `json:"address"`
	Instructions   string          `json:"instructions,omitempty"`
	Total          float64         `json:"total"`
	Earnings       float64         `json:"earnings"`
	DistanceKm     float64         `json:"distance_km"`
	CreatedAt      time.Time       `json:"created_at"`
	PickedUpAt     *time.Time      `json:"picked_up_at,omitempty"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
}
