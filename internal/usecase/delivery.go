package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/domain/repository"
	"github.com/polkiloo/foodcourier/internal/pkg/geo"
)

const availableOrdersLimit = 50

// DeliveryUseCase implements the delivery actor side of the order lifecycle.
type DeliveryUseCase struct {
	orders repository.OrderRepository
	now    func() time.Time
	logger *slog.Logger
}

// NewDeliveryUseCase constructs DeliveryUseCase.
func NewDeliveryUseCase(orders repository.OrderRepository, logger *slog.Logger) *DeliveryUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &DeliveryUseCase{orders: orders, now: time.Now, logger: logger}
}

// Views derives the delivery list of actorID, newest first. Orders whose
// stored status is outside the delivery state machine are skipped.
func (u *DeliveryUseCase) Views(ctx context.Context, actorID int64) ([]model.DeliveryOrderView, error) {
	orders, err := u.orders.ListByDeliveryActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return u.project(orders, actorID), nil
}

// Orders returns the delivery list of actorID narrowed by filter.
func (u *DeliveryUseCase) Orders(ctx context.Context, actorID int64, filter model.DeliveryFilter) ([]model.DeliveryOrderView, error) {
	views, err := u.Views(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return model.FilterDeliveryOrders(views, filter), nil
}

// Available lists unassigned orders ready for pickup.
func (u *DeliveryUseCase) Available(ctx context.Context) ([]model.DeliveryOrderView, error) {
	orders, err := u.orders.ListAwaitingPickup(ctx, availableOrdersLimit)
	if err != nil {
		return nil, err
	}
	return u.project(orders, 0), nil
}

// Claim assigns an unassigned ready order to actorID.
func (u *DeliveryUseCase) Claim(ctx context.Context, actorID int64, orderID string) (*model.DeliveryOrderView, error) {
	if err := u.orders.Assign(ctx, orderID, actorID); err != nil {
		return nil, err
	}
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	status, err := model.ParseDeliveryStatus(string(order.Status))
	if err != nil {
		return nil, err
	}
	view := BuildDeliveryView(*order, status)
	return &view, nil
}

// Advance moves an order assigned to actorID one step forward. target must be
// the single successor of the current status.
func (u *DeliveryUseCase) Advance(ctx context.Context, actorID int64, orderID string, target model.DeliveryStatus) (*model.DeliveryOrderView, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.DeliveryActorID == nil || *order.DeliveryActorID != actorID {
		return nil, domainErrors.ErrForbidden
	}

	current, err := model.ParseDeliveryStatus(string(order.Status))
	if err != nil {
		return nil, domainErrors.ErrTransitionNotAllowed
	}
	next, ok := current.Next()
	if !ok || next != target {
		return nil, domainErrors.ErrTransitionNotAllowed
	}

	now := u.now()
	change := model.NewStatusChange(order.ID, current.OrderStatus(), target.OrderStatus(), now)
	if err := u.orders.UpdateStatus(ctx, change); err != nil {
		return nil, err
	}

	order.Status = change.To
	order.UpdatedAt = now
	if change.PickedUpAt != nil {
		order.PickedUpAt = change.PickedUpAt
	}
	if change.DeliveredAt != nil {
		order.DeliveredAt = change.DeliveredAt
	}

	u.logger.Info("delivery status advanced",
		slog.String("order_id", order.ID),
		slog.Int64("actor_id", actorID),
		slog.String("from", current.String()),
		slog.String("to", target.String()),
	)

	view := BuildDeliveryView(*order, target)
	return &view, nil
}

func (u *DeliveryUseCase) project(orders []model.Order, actorID int64) []model.DeliveryOrderView {
	views := make([]model.DeliveryOrderView, 0, len(orders))
	for _, o := range orders {
		status, err := model.ParseDeliveryStatus(string(o.Status))
		if err != nil {
			if o.Status != model.OrderStatusPending && o.Status != model.OrderStatusConfirmed && o.Status != model.OrderStatusPreparing {
				u.logger.Warn("skipping order with unknown status",
					slog.String("order_id", o.ID),
					slog.Int64("actor_id", actorID),
					slog.String("status", string(o.Status)),
				)
			}
			continue
		}
		views = append(views, BuildDeliveryView(o, status))
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views
}

// BuildDeliveryView projects an order for a delivery actor.
func BuildDeliveryView(o model.Order, status model.DeliveryStatus) model.DeliveryOrderView {
	view := model.DeliveryOrderView{
		OrderID:      o.ID,
		OrderNumber:  o.Number(),
		Status:       status,
		Restaurant:   o.Restaurant,
		CustomerName: o.Customer.Name,
		Phone:        o.Customer.Phone,
		Address:      o.Address,
		Instructions: o.Instructions,
		Total:        o.Pricing.Total,
		Earnings:     o.Pricing.DeliveryFee,
		CreatedAt:    o.CreatedAt,
		PickedUpAt:   o.PickedUpAt,
		DeliveredAt:  o.DeliveredAt,
	}
	if from, to := o.Restaurant.Location, o.Address.Location; from != nil && to != nil {
		view.DistanceKm = geo.RoundKm(geo.HaversineKm(from.Lat, from.Lng, to.Lat, to.Lng))
	}
	return view
}
