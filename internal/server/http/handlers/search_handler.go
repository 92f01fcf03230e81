package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/server/http/dto"
)

// SearchHandler serves catalog search.
type SearchHandler struct {
	facade SearchFacade
}

// NewSearchHandler constructs SearchHandler.
func NewSearchHandler(facade SearchFacade) *SearchHandler {
	return &SearchHandler{facade: facade}
}

// Search handles GET /api/search?q=&type=.
func (h *SearchHandler) Search(c *gin.Context) {
	filter, ok := model.ParseSearchFilter(c.Query("type"))
	if !ok {
		badRequest(c, "type must be one of all, restaurants, dishes")
		return
	}

	result, err := h.facade.Search(c.Request.Context(), CurrentUserID(c), c.Query("q"), filter)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := dto.SearchResponse{
		Generation: result.Generation,
		Query:      result.Term,
		Type:       string(result.Filter),
		Results:    make([]dto.SearchResultResponse, 0, len(result.Results)),
	}
	for _, r := range result.Results {
		resp.Results = append(resp.Results, dto.SearchResultResponse{
			Type:         string(r.Type),
			ID:           r.ID,
			RestaurantID: r.RestaurantID,
			Name:         r.Name,
			Subtitle:     r.Subtitle,
			Price:        r.Price.Float64(),
		})
	}
	c.JSON(http.StatusOK, resp)
}
