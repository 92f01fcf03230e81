package model

// SearchResultType tells restaurants and dishes apart in merged results.
type SearchResultType string

const (
	SearchResultRestaurant SearchResultType = "restaurant"
	SearchResultDish       SearchResultType = "dish"
)

// SearchFilter narrows merged results without re-querying.
type SearchFilter string

const (
	SearchFilterAll         SearchFilter = "all"
	SearchFilterRestaurants SearchFilter = "restaurants"
	SearchFilterDishes      SearchFilter = "dishes"
)

// ParseSearchFilter defaults empty values to all.
func ParseSearchFilter(raw string) (SearchFilter, bool) {
	switch f := SearchFilter(raw); f {
	case "":
		return SearchFilterAll, true
	case SearchFilterAll, SearchFilterRestaurants, SearchFilterDishes:
		return f, true
	default:
		return "", false
	}
}

// SearchResult is one entry of merged search output.
type SearchResult struct {
	Type         SearchResultType
	ID           int64
	RestaurantID int64
	Name         string
	Subtitle     string
	Price        Money
}

// Matches reports whether the result should be shown under f.
func (f SearchFilter) Matches(r SearchResult) bool {
	switch f {
	case SearchFilterRestaurants:
		return r.Type == SearchResultRestaurant
	case SearchFilterDishes:
		return r.Type == SearchResultDish
	default:
		return true
	}
}
