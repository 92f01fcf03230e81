package dto

// AddressRequest describes a new delivery address.
type AddressRequest struct {
	Label      string   `json:"label"`
	Street     string   `json:"street"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postal_code"`
	Country    string   `json:"country"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
}

// AddressResponse is a saved delivery address.
type AddressResponse struct {
	ID         int64    `json:"id"`
	Label      string   `json:"label,omitempty"`
	Street     string   `json:"street"`
	City       string   `json:"city"`
	State      string   `json:"state,omitempty"`
	PostalCode string   `json:"postal_code,omitempty"`
	Country    string   `json:"country,omitempty"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
	IsDefault  bool     `json:"is_default"`
}
