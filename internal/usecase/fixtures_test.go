package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/polkiloo/foodcourier/internal/checkout"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	testhelpers "github.com/polkiloo/foodcourier/internal/test"
)

const (
	customerID   int64 = 1
	ownerID      int64 = 50
	restaurantID int64 = 10
	pilauID      int64 = 100
	sodaID       int64 = 101
	soldOutID    int64 = 102
	foreignID    int64 = 200
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sampleRestaurant() model.Restaurant {
	return model.Restaurant{
		ID:       restaurantID,
		OwnerID:  ownerID,
		Name:     "Mama Oliech",
		Cuisine:  "Kenyan",
		Active:   true,
		Location: &model.Location{Lat: -1.2921, Lng: 36.8219},
		Schedule: model.FeeSchedule{
			DeliveryFee:           200,
			MinimumOrder:          1000,
			ServiceChargePercent:  10,
			TaxRatePercent:        16,
			EstimatedDeliveryTime: "25-35 min",
		},
	}
}

func sampleMenu() []model.MenuItem {
	return []model.MenuItem{
		{ID: pilauID, RestaurantID: restaurantID, Name: "Pilau", Category: "Rice", Price: 1099, Available: true},
		{ID: sodaID, RestaurantID: restaurantID, Name: "Soda", Category: "Drinks", Price: 500, Available: true},
		{ID: soldOutID, RestaurantID: restaurantID, Name: "Tilapia", Category: "Fish", Price: 1800},
		{ID: foreignID, RestaurantID: 20, Name: "Burger", Category: "Grill", Price: 900, Available: true},
	}
}

func sampleAddresses() []model.Address {
	return []model.Address{
		{ID: 1, UserID: customerID, Label: "Home", Street: "Ngong Rd 12", City: "Nairobi", IsDefault: true,
			Location: &model.Location{Lat: -1.3000, Lng: 36.8000}},
		{ID: 2, UserID: customerID, Label: "Office", Street: "Kenyatta Ave 3", City: "Nairobi"},
		{ID: 3, UserID: 2, Label: "Elsewhere", Street: "Moi Ave 1", City: "Mombasa", IsDefault: true},
	}
}

type checkoutFixture struct {
	sessions    *checkout.SessionStore
	restaurants *testhelpers.RestaurantRepositoryStub
	menu        *testhelpers.MenuRepositoryStub
	addresses   *testhelpers.AddressRepositoryStub
	uc          *CheckoutUseCase
}

func newCheckoutFixture() *checkoutFixture {
	closed := sampleRestaurant()
	closed.ID = 11
	closed.Active = false

	f := &checkoutFixture{
		sessions:    checkout.NewSessionStore(0, discardLogger()),
		restaurants: &testhelpers.RestaurantRepositoryStub{Restaurants: []model.Restaurant{sampleRestaurant(), closed}},
		menu:        &testhelpers.MenuRepositoryStub{Items: sampleMenu()},
		addresses:   &testhelpers.AddressRepositoryStub{Addresses: sampleAddresses(), Next: 3},
	}
	f.uc = NewCheckoutUseCase(f.sessions, f.restaurants, f.menu, f.addresses, "", discardLogger())
	return f
}

// readyCart starts a session with two portions of pilau and mobile money payment.
func (f *checkoutFixture) readyCart(customer int64) error {
	ctx := testContext()
	if _, err := f.uc.Start(ctx, customer, restaurantID); err != nil {
		return err
	}
	if _, err := f.uc.AddItem(ctx, customer, pilauID, 2, ""); err != nil {
		return err
	}
	_, err := f.uc.SelectPayment(customer, model.PaymentSelection{Kind: model.PaymentKindMobileMoney})
	return err
}
