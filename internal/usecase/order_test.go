package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	testhelpers "github.com/polkiloo/foodcourier/internal/test"
)

type orderFixture struct {
	*checkoutFixture
	users  *testhelpers.UserRepositoryStub
	orders *testhelpers.OrderRepositoryStub
	placer *OrderUseCase
}

func newOrderFixture() *orderFixture {
	users := testhelpers.NewUserRepositoryStub()
	users.ByID[customerID] = &model.User{ID: customerID, Email: "wanjiru@example.com", DisplayName: "Wanjiru", Phone: "+254700000001", Role: model.RoleCustomer}
	users.ByID[2] = &model.User{ID: 2, Email: "otieno@example.com", Role: model.RoleCustomer}

	f := &orderFixture{
		checkoutFixture: newCheckoutFixture(),
		users:           users,
		orders: &testhelpers.OrderRepositoryStub{
			Now:    fixedClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
			Owners: map[int64]int64{restaurantID: ownerID},
		},
	}
	f.placer = NewOrderUseCase(f.sessions, f.orders, f.users, f.restaurants, discardLogger())
	return f
}

func TestPlaceOrderSuccess(t *testing.T) {
	f := newOrderFixture()
	if err := f.readyCart(customerID); err != nil {
		t.Fatalf("prepare cart: %v", err)
	}
	if _, err := f.uc.SetInstructions(customerID, "call on arrival"); err != nil {
		t.Fatalf("set instructions: %v", err)
	}

	receipt, err := f.placer.PlaceOrder(testContext(), customerID, "", "")
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if receipt.OrderNumber != "#A1B2C1" {
		t.Fatalf("unexpected order number %q", receipt.OrderNumber)
	}
	if !receipt.Created || receipt.EstimatedDeliveryTime != "25-35 min" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}

	order := receipt.Order
	if order.Status != model.OrderStatusPending || order.PaymentStatus != model.PaymentStatusPaid {
		t.Fatalf("unexpected statuses %s/%s", order.Status, order.PaymentStatus)
	}
	if order.Customer.Name != "Wanjiru" || order.Customer.Phone != "+254700000001" {
		t.Fatalf("unexpected customer snapshot %+v", order.Customer)
	}
	if order.Address.Label != "Home" || order.Instructions != "call on arrival" {
		t.Fatalf("unexpected address/instructions %+v %q", order.Address, order.Instructions)
	}
	if len(order.Items) != 1 || order.Items[0].Subtotal != 2198 || order.Items[0].Name != "Pilau" {
		t.Fatalf("unexpected items %+v", order.Items)
	}
	if order.Pricing.Total != 2970 {
		t.Fatalf("unexpected total %d", order.Pricing.Total)
	}
	if order.Restaurant.Location == nil || order.Restaurant.Name != "Mama Oliech" {
		t.Fatalf("unexpected restaurant snapshot %+v", order.Restaurant)
	}
	if f.sessions.Len() != 0 {
		t.Fatal("session must be closed after placing")
	}
}

func TestPlaceOrderCashIsPendingPayment(t *testing.T) {
	f := newOrderFixture()
	if err := f.readyCart(customerID); err != nil {
		t.Fatalf("prepare cart: %v", err)
	}
	if _, err := f.uc.SelectPayment(customerID, model.PaymentSelection{Kind: model.PaymentKindCash}); err != nil {
		t.Fatalf("select payment: %v", err)
	}

	receipt, err := f.placer.PlaceOrder(testContext(), customerID, "", "")
	if err != nil {
		t.Fatalf("place order returned error: %v", err)
	}
	if receipt.Order.PaymentStatus != model.PaymentStatusPending {
		t.Fatalf("cash order must await payment, got %s", receipt.Order.PaymentStatus)
	}
}

func TestPlaceOrderIdempotencyKey(t *testing.T) {
	f := newOrderFixture()
	ctx := testContext()

	if err := f.readyCart(customerID); err != nil {
		t.Fatalf("prepare cart: %v", err)
	}
	first, err := f.placer.PlaceOrder(ctx, customerID, "", "retry-1")
	if err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	if err := f.readyCart(customerID); err != nil {
		t.Fatalf("prepare cart: %v", err)
	}
	second, err := f.placer.PlaceOrder(ctx, customerID, "", " retry-1 ")
	if err != nil {
		t.Fatalf("repeated submission failed: %v", err)
	}
	if second.Created || second.OrderID != first.OrderID {
		t.Fatalf("expected existing order to be returned, got %+v", second)
	}
	if len(f.orders.Snapshot()) != 1 {
		t.Fatalf("expected single stored order, got %d", len(f.orders.Snapshot()))
	}
	summary, err := f.uc.Summary(customerID)
	if err != nil {
		t.Fatalf("session with a new cart must survive a replayed key: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("replayed key must not clear the cart, got %+v", summary.Items)
	}

	if err := f.readyCart(2); err != nil {
		t.Fatalf("prepare cart: %v", err)
	}
	if _, err := f.placer.PlaceOrder(ctx, 2, "", "retry-1"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("key of another customer must be rejected, got %v", err)
	}
}

func TestPlaceOrderRejectsIncompleteSession(t *testing.T) {
	f := newOrderFixture()
	ctx := testContext()

	if _, err := f.placer.PlaceOrder(ctx, customerID, "", ""); !errors.Is(err, domainErrors.ErrNoSession) {
		t.Fatalf("expected no session, got %v", err)
	}

	if _, err := f.uc.Start(ctx, customerID, restaurantID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := f.placer.PlaceOrder(ctx, customerID, "", ""); !errors.Is(err, domainErrors.ErrCartEmpty) {
		t.Fatalf("expected empty cart, got %v", err)
	}

	if _, err := f.uc.AddItem(ctx, customerID, pilauID, 1, ""); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := f.placer.PlaceOrder(ctx, customerID, "", ""); !errors.Is(err, domainErrors.ErrPaymentMissing) {
		t.Fatalf("expected missing payment, got %v", err)
	}
	if len(f.orders.Snapshot()) != 0 {
		t.Fatal("nothing must be persisted")
	}
}

func TestPlaceOrderBackendFailureKeepsSession(t *testing.T) {
	f := newOrderFixture()
	if err := f.readyCart(customerID); err != nil {
		t.Fatalf("prepare cart: %v", err)
	}

	f.orders.Err = errors.New("connection reset")
	if _, err := f.placer.PlaceOrder(testContext(), customerID, "", ""); !errors.Is(err, domainErrors.ErrBackendUnavailable) {
		t.Fatalf("expected backend error, got %v", err)
	}
	snapshot, err := f.uc.Summary(customerID)
	if err != nil {
		t.Fatalf("session must survive failure: %v", err)
	}
	if len(snapshot.Items) != 1 {
		t.Fatalf("cart must be intact, got %+v", snapshot.Items)
	}

	f.orders.Err = nil
	if _, err := f.placer.PlaceOrder(testContext(), customerID, "", ""); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

func TestPlaceOrderUserLookupFailure(t *testing.T) {
	f := newOrderFixture()
	if err := f.readyCart(customerID); err != nil {
		t.Fatalf("prepare cart: %v", err)
	}
	f.users.Err = errors.New("users offline")

	if _, err := f.placer.PlaceOrder(testContext(), customerID, "", ""); !errors.Is(err, domainErrors.ErrBackendUnavailable) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if f.sessions.Len() != 1 {
		t.Fatal("session must survive failure")
	}
}

func TestPlaceOrderRejectsConcurrentSubmission(t *testing.T) {
	f := newOrderFixture()
	if err := f.readyCart(customerID); err != nil {
		t.Fatalf("prepare cart: %v", err)
	}

	entered := make(chan struct{})
	release := make(chan struct{})
	f.orders.CreateFn = func(_ context.Context, o model.Order) (*model.Order, bool, error) {
		close(entered)
		<-release
		o.ID = "00000000-0000-4000-8000-0000000000ff"
		return &o, true, nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.placer.PlaceOrder(testContext(), customerID, "", "")
		done <- err
	}()
	<-entered

	if _, err := f.placer.PlaceOrder(testContext(), customerID, "", ""); !errors.Is(err, domainErrors.ErrOrderInProgress) {
		t.Fatalf("expected in progress error, got %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submission failed: %v", err)
	}
}

func TestCustomerName(t *testing.T) {
	home := &model.Address{Label: "Home"}
	tests := []struct {
		name    string
		user    model.User
		profile string
		address *model.Address
		want    string
	}{
		{name: "display name", user: model.User{DisplayName: "Amina", Email: "a@x.io"}, profile: "Profile", address: home, want: "Amina"},
		{name: "profile name", user: model.User{Email: "a@x.io"}, profile: " Profile ", address: home, want: "Profile"},
		{name: "address label", user: model.User{Email: "a@x.io"}, address: home, want: "Home"},
		{name: "email local part", user: model.User{Email: "amina@x.io"}, want: "amina"},
		{name: "fallback", user: model.User{}, address: &model.Address{}, want: "Customer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := customerName(&tt.user, tt.profile, tt.address); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func seedOrders(f *orderFixture) []model.Order {
	actor := int64(30)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.orders.Orders = []model.Order{
		{ID: "o-1", Customer: model.CustomerSnapshot{UserID: customerID}, Restaurant: model.RestaurantSnapshot{ID: restaurantID},
			Status: model.OrderStatusPending, CreatedAt: base},
		{ID: "o-2", Customer: model.CustomerSnapshot{UserID: 2}, Restaurant: model.RestaurantSnapshot{ID: restaurantID},
			Status: model.OrderStatusPickedUp, DeliveryActorID: &actor, CreatedAt: base.Add(time.Minute)},
		{ID: "o-3", Customer: model.CustomerSnapshot{UserID: 2}, Restaurant: model.RestaurantSnapshot{ID: 20},
			Status: model.OrderStatusDelivered, CreatedAt: base.Add(2 * time.Minute)},
	}
	return f.orders.Orders
}

func TestOrderGetScoping(t *testing.T) {
	f := newOrderFixture()
	seedOrders(f)
	ctx := testContext()

	tests := []struct {
		name      string
		principal model.Principal
		orderID   string
		want      error
	}{
		{name: "own order", principal: model.Principal{UserID: customerID, Role: model.RoleCustomer}, orderID: "o-1"},
		{name: "foreign order", principal: model.Principal{UserID: customerID, Role: model.RoleCustomer}, orderID: "o-2", want: domainErrors.ErrForbidden},
		{name: "assigned courier", principal: model.Principal{UserID: 30, Role: model.RoleDelivery}, orderID: "o-2"},
		{name: "unassigned courier", principal: model.Principal{UserID: 30, Role: model.RoleDelivery}, orderID: "o-1", want: domainErrors.ErrForbidden},
		{name: "restaurant owner", principal: model.Principal{UserID: ownerID, Role: model.RoleRestaurant}, orderID: "o-1"},
		{name: "other restaurant", principal: model.Principal{UserID: ownerID, Role: model.RoleRestaurant}, orderID: "o-3", want: domainErrors.ErrForbidden},
		{name: "admin", principal: model.Principal{UserID: 99, Role: model.RoleAdmin}, orderID: "o-3"},
		{name: "missing", principal: model.Principal{UserID: 99, Role: model.RoleAdmin}, orderID: "nope", want: domainErrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := f.placer.Get(ctx, tt.principal, tt.orderID)
			if tt.want != nil {
				if !errors.Is(err, tt.want) {
					t.Fatalf("expected %v, got %v", tt.want, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("get returned error: %v", err)
			}
			if order.ID != tt.orderID {
				t.Fatalf("unexpected order %s", order.ID)
			}
		})
	}
}

func TestOrderListScoping(t *testing.T) {
	f := newOrderFixture()
	seedOrders(f)
	ctx := testContext()

	tests := []struct {
		name      string
		principal model.Principal
		want      []string
		wantErr   error
	}{
		{name: "customer", principal: model.Principal{UserID: 2, Role: model.RoleCustomer}, want: []string{"o-3", "o-2"}},
		{name: "delivery", principal: model.Principal{UserID: 30, Role: model.RoleDelivery}, want: []string{"o-2"}},
		{name: "restaurant", principal: model.Principal{UserID: ownerID, Role: model.RoleRestaurant}, want: []string{"o-2", "o-1"}},
		{name: "admin", principal: model.Principal{UserID: 99, Role: model.RoleAdmin}, want: []string{"o-3", "o-2", "o-1"}},
		{name: "unknown role", principal: model.Principal{UserID: 99, Role: "guest"}, wantErr: domainErrors.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders, err := f.placer.List(ctx, tt.principal)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("list returned error: %v", err)
			}
			if len(orders) != len(tt.want) {
				t.Fatalf("expected %v, got %d orders", tt.want, len(orders))
			}
			for i, id := range tt.want {
				if orders[i].ID != id {
					t.Fatalf("position %d: expected %s, got %s", i, id, orders[i].ID)
				}
			}
		})
	}
}
