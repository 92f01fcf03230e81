package dto

// SearchResultResponse is one merged search hit.
type SearchResultResponse struct {
	Type         string  `json:"type"`
	ID           int64   `json:"id"`
	RestaurantID int64   `json:"restaurant_id"`
	Name         string  `json:"name"`
	Subtitle     string  `json:"subtitle,omitempty"`
	Price        float64 `json:"price,omitempty"`
}

// SearchResponse is the ranked search output.
type SearchResponse struct {
	Generation uint64                 `json:"generation"`
	Query      string                 `json:"query"`
	Type       string                 `json:"type"`
	Results    []SearchResultResponse `json:"results"`
}
