package checkout

import (
	"sync"
	"time"

	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/pricing"
)

// Eligibility is the evaluated checkout gate.
type Eligibility struct {
	ScheduleLoaded  bool
	HasItems        bool
	AddressSelected bool
	PaymentSelected bool
	MeetsMinimum    bool
	Shortfall       model.Money
}

// CanPlaceOrder reports whether every gate condition holds.
func (e Eligibility) CanPlaceOrder() bool {
	return e.ScheduleLoaded && e.AddressSelected && e.PaymentSelected && e.MeetsMinimum
}

// Err returns the first failing condition.
func (e Eligibility) Err() error {
	switch {
	case !e.ScheduleLoaded:
		return domainErrors.ErrScheduleMissing
	case !e.HasItems:
		return domainErrors.ErrCartEmpty
	case !e.AddressSelected:
		return domainErrors.ErrAddressMissing
	case !e.PaymentSelected:
		return domainErrors.ErrPaymentMissing
	case !e.MeetsMinimum:
		return &domainErrors.BelowMinimumError{Shortfall: int64(e.Shortfall)}
	}
	return nil
}

// Snapshot is a read-only copy of session state.
type Snapshot struct {
	CustomerID     int64
	Restaurant     *model.Restaurant
	Items          []model.LineItem
	Address        *model.Address
	Payment        *model.PaymentSelection
	Instructions   string
	IdempotencyKey string
	Pricing        pricing.Breakdown
	Eligibility    Eligibility
}

// Session is the checkout state of one customer.
type Session struct {
	mu sync.Mutex

	customerID     int64
	restaurant     *model.Restaurant
	cart           Cart
	address        *model.Address
	payment        *model.PaymentSelection
	instructions   string
	idempotencyKey string
	placing        bool
	touchedAt      time.Time
}

func newSession(customerID int64, restaurant *model.Restaurant, key string, now time.Time) *Session {
	var snapshot *model.Restaurant
	if restaurant != nil {
		r := *restaurant
		snapshot = &r
	}
	return &Session{customerID: customerID, restaurant: snapshot, idempotencyKey: key, touchedAt: now}
}

// AddItem appends a line for item, which must come from the session restaurant.
func (s *Session) AddItem(item model.MenuItem, quantity int, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restaurant == nil || item.RestaurantID != s.restaurant.ID || !item.Available {
		return domainErrors.ErrItemUnavailable
	}
	return s.cart.Add(item.Ref(), quantity, note)
}

// SetQuantity adjusts line at index; see Cart.SetQuantity.
func (s *Session) SetQuantity(index, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.SetQuantity(index, quantity)
}

// RemoveItem drops line at index.
func (s *Session) RemoveItem(index int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.RemoveItem(index)
}

// SelectAddress stores a copy of address.
func (s *Session) SelectAddress(address model.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.address = &address
}

// SelectPayment stores payment selection.
func (s *Session) SelectPayment(payment model.PaymentSelection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payment = &payment
}

func (s *Session) SetInstructions(instructions string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instructions = instructions
}

// Eligibility evaluates the gate against current state.
func (s *Session) Eligibility() Eligibility {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eligibilityLocked()
}

// CanPlaceOrder is shorthand for Eligibility().CanPlaceOrder().
func (s *Session) CanPlaceOrder() bool {
	return s.Eligibility().CanPlaceOrder()
}

// Validate returns the first failing gate condition as an error.
func (s *Session) Validate() error {
	return s.Eligibility().Err()
}

// Snapshot copies current state with pricing and gate evaluated.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// BeginPlacing validates the gate and marks the session as submitting.
// A second call before FinishPlacing fails with ErrOrderInProgress.
func (s *Session) BeginPlacing() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.placing {
		return Snapshot{}, domainErrors.ErrOrderInProgress
	}
	snapshot := s.snapshotLocked()
	if err := snapshot.Eligibility.Err(); err != nil {
		return Snapshot{}, err
	}
	s.placing = true
	return snapshot, nil
}

// FinishPlacing releases the submitting flag. On success the cart is cleared.
func (s *Session) FinishPlacing(placed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placing = false
	if placed {
		s.cart.Clear()
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.touchedAt = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.placing {
		return 0
	}
	return now.Sub(s.touchedAt)
}

func (s *Session) schedule() *model.FeeSchedule {
	if s.restaurant == nil {
		return nil
	}
	return &s.restaurant.Schedule
}

func (s *Session) eligibilityLocked() Eligibility {
	schedule := s.schedule()
	e := Eligibility{
		ScheduleLoaded:  schedule != nil,
		HasItems:        s.cart.Len() > 0,
		AddressSelected: s.address != nil,
		PaymentSelected: s.payment != nil,
	}
	if schedule != nil {
		subtotal := pricing.Subtotal(s.cart.items)
		e.Shortfall = pricing.Shortfall(subtotal, schedule.MinimumOrder)
		e.MeetsMinimum = subtotal >= schedule.MinimumOrder
	}
	return e
}

func (s *Session) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		CustomerID:     s.customerID,
		Items:          s.cart.Items(),
		Instructions:   s.instructions,
		IdempotencyKey: s.idempotencyKey,
		Pricing:        pricing.Compute(s.cart.items, s.schedule()),
		Eligibility:    s.eligibilityLocked(),
	}
	if s.restaurant != nil {
		r := *s.restaurant
		snapshot.Restaurant = &r
	}
	if s.address != nil {
		a := *s.address
		snapshot.Address = &a
	}
	if s.payment != nil {
		p := *s.payment
		snapshot.Payment = &p
	}
	return snapshot
}
