package test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	key := strings.ToLower(user.Email)
	if _, exists := s.Users[key]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	s.Next++
	stored := &user
	s.Users[key] = stored
	s.ByID[user.ID] = stored
	return stored, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[strings.ToLower(email)]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// RestaurantRepositoryStub serves restaurants from a slice.
type RestaurantRepositoryStub struct {
	Restaurants []model.Restaurant
	Err         error
	ListFn      func(context.Context, int) ([]model.Restaurant, error)
}

func (s *RestaurantRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, r := range s.Restaurants {
		if r.ID == id {
			restaurant := r
			return &restaurant, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *RestaurantRepositoryStub) ListActive(ctx context.Context, limit int) ([]model.Restaurant, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Restaurant
	for _, r := range s.Restaurants {
		if r.Active && len(result) < limit {
			result = append(result, r)
		}
	}
	return result, nil
}

// MenuRepositoryStub serves menu items from a slice.
type MenuRepositoryStub struct {
	Items  []model.MenuItem
	Err    error
	ListFn func(context.Context, int) ([]model.MenuItem, error)
}

func (s *MenuRepositoryStub) GetByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	for _, item := range s.Items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *MenuRepositoryStub) ListAvailable(ctx context.Context, limit int) ([]model.MenuItem, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, limit)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.MenuItem
	for _, item := range s.Items {
		if item.Available && len(result) < limit {
			result = append(result, item)
		}
	}
	return result, nil
}

// AddressRepositoryStub keeps addresses in memory and mirrors the default rule.
type AddressRepositoryStub struct {
	mu        sync.Mutex
	Addresses []model.Address
	Next      int64
	Err       error
}

func (s *AddressRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Address
	for _, a := range s.Addresses {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *AddressRepositoryStub) GetByID(ctx context.Context, userID, id int64) (*model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, a := range s.Addresses {
		if a.ID == id && a.UserID == userID {
			found := a
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *AddressRepositoryStub) Create(ctx context.Context, address model.Address) (*model.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Next++
	address.ID = s.Next
	address.IsDefault = true
	for _, a := range s.Addresses {
		if a.UserID == address.UserID {
			address.IsDefault = false
			break
		}
	}
	s.Addresses = append(s.Addresses, address)
	return &address, nil
}

func (s *AddressRepositoryStub) SetDefault(ctx context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	found := false
	for _, a := range s.Addresses {
		if a.ID == id && a.UserID == userID {
			found = true
		}
	}
	if !found {
		return domainErrors.ErrNotFound
	}
	for i := range s.Addresses {
		if s.Addresses[i].UserID == userID {
			s.Addresses[i].IsDefault = s.Addresses[i].ID == id
		}
	}
	return nil
}

// OrderRepositoryStub is an in-memory order store honouring idempotency keys
// and conditional status updates.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	Orders []model.Order
	Next   int
	Now    func() time.Time
	// Owners maps restaurant ids to owner ids for ListByRestaurantOwner.
	Owners map[int64]int64

	CreateFn       func(context.Context, model.Order) (*model.Order, bool, error)
	UpdateStatusFn func(context.Context, model.StatusChange) error
	Err            error

	Updates []model.StatusChange
}

// Snapshot returns a copy of stored orders.
func (s *OrderRepositoryStub) Snapshot() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, len(s.Orders))
	copy(out, s.Orders)
	return out
}

func (s *OrderRepositoryStub) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (*model.Order, bool, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, false, s.Err
	}
	for _, existing := range s.Orders {
		if order.IdempotencyKey != "" && existing.IdempotencyKey == order.IdempotencyKey {
			found := existing
			return &found, false, nil
		}
	}
	s.Next++
	order.ID = fmt.Sprintf("00000000-0000-4000-8000-%012x", 0xa1b2c0+s.Next)
	order.CreatedAt = s.now()
	order.UpdatedAt = order.CreatedAt
	s.Orders = append(s.Orders, order)
	return &order, true, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, o := range s.Orders {
		if o.ID == id {
			found := o
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) list(match func(model.Order) bool, limit int) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, o := range s.Orders {
		if match(o) {
			result = append(result, o)
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *OrderRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return s.list(func(o model.Order) bool { return o.Customer.UserID == customerID }, 0)
}

func (s *OrderRepositoryStub) ListByDeliveryActor(ctx context.Context, actorID int64) ([]model.Order, error) {
	return s.list(func(o model.Order) bool { return o.DeliveryActorID != nil && *o.DeliveryActorID == actorID }, 0)
}

func (s *OrderRepositoryStub) ListByRestaurantOwner(ctx context.Context, ownerID int64) ([]model.Order, error) {
	return s.list(func(o model.Order) bool {
		owner, ok := s.Owners[o.Restaurant.ID]
		return ok && owner == ownerID
	}, 0)
}

func (s *OrderRepositoryStub) ListAwaitingPickup(ctx context.Context, limit int) ([]model.Order, error) {
	return s.list(func(o model.Order) bool {
		return o.DeliveryActorID == nil && o.Status == model.OrderStatusReadyForPickup
	}, limit)
}

func (s *OrderRepositoryStub) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	return s.list(func(model.Order) bool { return true }, limit)
}

func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, change model.StatusChange) error {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, change)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Orders {
		o := &s.Orders[i]
		if o.ID != change.OrderID {
			continue
		}
		if o.Status != change.From {
			return domainErrors.ErrStatusConflict
		}
		o.Status = change.To
		o.UpdatedAt = s.now()
		if change.PickedUpAt != nil {
			o.PickedUpAt = change.PickedUpAt
		}
		if change.DeliveredAt != nil {
			o.DeliveredAt = change.DeliveredAt
		}
		s.Updates = append(s.Updates, change)
		return nil
	}
	return domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) Assign(ctx context.Context, orderID string, actorID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Orders {
		o := &s.Orders[i]
		if o.ID != orderID {
			continue
		}
		if o.DeliveryActorID != nil || o.Status != model.OrderStatusReadyForPickup {
			return domainErrors.ErrStatusConflict
		}
		id := actorID
		o.DeliveryActorID = &id
		o.UpdatedAt = s.now()
		return nil
	}
	return domainErrors.ErrNotFound
}

var (
	_ repository.UserRepository       = (*UserRepositoryStub)(nil)
	_ repository.RestaurantRepository = (*RestaurantRepositoryStub)(nil)
	_ repository.MenuRepository       = (*MenuRepositoryStub)(nil)
	_ repository.AddressRepository    = (*AddressRepositoryStub)(nil)
	_ repository.OrderRepository      = (*OrderRepositoryStub)(nil)
)
