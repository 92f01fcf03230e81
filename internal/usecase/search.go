package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/domain/repository"
)

const defaultSearchLimit = 50

// SearchResponse is the merged, ranked output of one search call.
type SearchResponse struct {
	// Generation increases with every search of a caller; clients drop
	// responses older than the newest they have seen.
	Generation uint64
	Term       string
	Filter     model.SearchFilter
	Results    []model.SearchResult
}

type inflightSearch struct {
	generation uint64
	cancel     context.CancelFunc
}

// SearchUseCase searches restaurants and dishes. A newer search of the same
// caller cancels the older one still running.
type SearchUseCase struct {
	restaurants repository.RestaurantRepository
	menu        repository.MenuRepository
	limit       int

	mu         sync.Mutex
	generation uint64
	inflight   map[int64]inflightSearch
}

// NewSearchUseCase constructs SearchUseCase fetching at most limit rows per collection.
func NewSearchUseCase(restaurants repository.RestaurantRepository, menu repository.MenuRepository, limit int) *SearchUseCase {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return &SearchUseCase{
		restaurants: restaurants,
		menu:        menu,
		limit:       limit,
		inflight:    make(map[int64]inflightSearch),
	}
}

// Search runs both collection queries concurrently and merges matches.
func (u *SearchUseCase) Search(ctx context.Context, callerID int64, term string, filter model.SearchFilter) (*SearchResponse, error) {
	callCtx, generation := u.begin(ctx, callerID)
	defer u.end(callerID, generation)

	term = strings.TrimSpace(term)
	resp := &SearchResponse{Generation: generation, Term: term, Filter: filter, Results: []model.SearchResult{}}
	if term == "" {
		return resp, nil
	}

	var (
		restaurants []model.Restaurant
		items       []model.MenuItem
	)
	g, gctx := errgroup.WithContext(callCtx)
	g.Go(func() error {
		var err error
		restaurants, err = u.restaurants.ListActive(gctx, u.limit)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = u.menu.ListAvailable(gctx, u.limit)
		return err
	})
	err := g.Wait()

	if callCtx.Err() != nil && ctx.Err() == nil {
		return nil, domainErrors.ErrSearchSuperseded
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("search: %w: %w", domainErrors.ErrBackendUnavailable, err)
	}

	merged := MatchResults(term, restaurants, items)
	RankResults(merged, term)
	resp.Results = FilterResults(merged, filter)
	return resp, nil
}

func (u *SearchUseCase) begin(ctx context.Context, callerID int64) (context.Context, uint64) {
	callCtx, cancel := context.WithCancel(ctx)

	u.mu.Lock()
	defer u.mu.Unlock()
	u.generation++
	if prev, ok := u.inflight[callerID]; ok {
		prev.cancel()
	}
	u.inflight[callerID] = inflightSearch{generation: u.generation, cancel: cancel}
	return callCtx, u.generation
}

func (u *SearchUseCase) end(callerID int64, generation uint64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if current, ok := u.inflight[callerID]; ok && current.generation == generation {
		current.cancel()
		delete(u.inflight, callerID)
	}
}

// MatchResults keeps restaurants matching name or cuisine and dishes matching
// name, description or category, case-insensitively. Restaurants come first.
func MatchResults(term string, restaurants []model.Restaurant, items []model.MenuItem) []model.SearchResult {
	needle := strings.ToLower(term)
	contains := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), needle) {
				return true
			}
		}
		return false
	}

	results := make([]model.SearchResult, 0, len(restaurants)+len(items))
	for _, r := range restaurants {
		if contains(r.Name, r.Cuisine) {
			results = append(results, model.SearchResult{
				Type:         model.SearchResultRestaurant,
				ID:           r.ID,
				RestaurantID: r.ID,
				Name:         r.Name,
				Subtitle:     r.Cuisine,
			})
		}
	}
	for _, item := range items {
		if contains(item.Name, item.Description, item.Category) {
			results = append(results, model.SearchResult{
				Type:         model.SearchResultDish,
				ID:           item.ID,
				RestaurantID: item.RestaurantID,
				Name:         item.Name,
				Subtitle:     item.Category,
				Price:        item.Price,
			})
		}
	}
	return results
}

// RankResults moves results whose name starts with term ahead of the rest,
// keeping relative order otherwise.
func RankResults(results []model.SearchResult, term string) {
	prefix := strings.ToLower(term)
	sort.SliceStable(results, func(i, j int) bool {
		pi := strings.HasPrefix(strings.ToLower(results[i].Name), prefix)
		pj := strings.HasPrefix(strings.ToLower(results[j].Name), prefix)
		return pi && !pj
	})
}

// FilterResults narrows results by type without re-querying.
func FilterResults(results []model.SearchResult, filter model.SearchFilter) []model.SearchResult {
	out := make([]model.SearchResult, 0, len(results))
	for _, r := range results {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
