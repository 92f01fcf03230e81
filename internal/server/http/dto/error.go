package dto

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error     string   `json:"error"`
	Shortfall *float64 `json:"shortfall,omitempty"`
}
