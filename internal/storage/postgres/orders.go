package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
)

var orderColumns = []string{
	"id", "idempotency_key", "customer_id", "restaurant_id", "snapshot", "status", "payment_status",
	"delivery_actor_id", "created_at", "updated_at", "picked_up_at", "delivered_at",
}

// orderDocument is the JSONB snapshot frozen at submission.
type orderDocument struct {
	Customer     customerDocument   `json:"customer"`
	Restaurant   restaurantDocument `json:"restaurant"`
	Items        []itemDocument     `json:"items"`
	Address      addressDocument    `json:"address"`
	Payment      paymentDocument    `json:"payment"`
	Instructions string             `json:"instructions,omitempty"`
	Pricing      pricingDocument    `json:"pricing"`
}

type customerDocument struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type restaurantDocument struct {
	Name                  string            `json:"name"`
	EstimatedDeliveryTime string            `json:"estimated_delivery_time,omitempty"`
	Location              *locationDocument `json:"location,omitempty"`
}

type locationDocument struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type itemDocument struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int    `json:"quantity"`
	Subtotal   int64  `json:"subtotal"`
	Note       string `json:"note,omitempty"`
}

type addressDocument struct {
	ID         int64             `json:"id,omitempty"`
	Label      string            `json:"label,omitempty"`
	Street     string            `json:"street"`
	City       string            `json:"city"`
	State      string            `json:"state,omitempty"`
	PostalCode string            `json:"postal_code,omitempty"`
	Country    string            `json:"country,omitempty"`
	Location   *locationDocument `json:"location,omitempty"`
}

type paymentDocument struct {
	Kind         string `json:"kind"`
	DisplayName  string `json:"display_name,omitempty"`
	MaskedDetail string `json:"masked_detail,omitempty"`
}

type pricingDocument struct {
	Subtotal      int64 `json:"subtotal"`
	ServiceCharge int64 `json:"service_charge"`
	Tax           int64 `json:"tax"`
	DeliveryFee   int64 `json:"delivery_fee"`
	Total         int64 `json:"total"`
}

func encodeLocation(l *model.Location) *locationDocument {
	if l == nil {
		return nil
	}
	return &locationDocument{Lat: l.Lat, Lng: l.Lng}
}

func (l *locationDocument) model() *model.Location {
	if l == nil {
		return nil
	}
	return &model.Location{Lat: l.Lat, Lng: l.Lng}
}

func encodeOrder(o model.Order) ([]byte, error) {
	doc := orderDocument{
		Customer: customerDocument{Email: o.Customer.Email, Name: o.Customer.Name, Phone: o.Customer.Phone},
		Restaurant: restaurantDocument{
			Name:                  o.Restaurant.Name,
			EstimatedDeliveryTime: o.Restaurant.EstimatedDeliveryTime,
			Location:              encodeLocation(o.Restaurant.Location),
		},
		Items: make([]itemDocument, 0, len(o.Items)),
		Address: addressDocument{
			ID:         o.Address.ID,
			Label:      o.Address.Label,
			Street:     o.Address.Street,
			City:       o.Address.City,
			State:      o.Address.State,
			PostalCode: o.Address.PostalCode,
			Country:    o.Address.Country,
			Location:   encodeLocation(o.Address.Location),
		},
		Payment: paymentDocument{
			Kind:         string(o.Payment.Kind),
			DisplayName:  o.Payment.DisplayName,
			MaskedDetail: o.Payment.MaskedDetail,
		},
		Instructions: o.Instructions,
		Pricing: pricingDocument{
			Subtotal:      int64(o.Pricing.Subtotal),
			ServiceCharge: int64(o.Pricing.ServiceCharge),
			Tax:           int64(o.Pricing.Tax),
			DeliveryFee:   int64(o.Pricing.DeliveryFee),
			Total:         int64(o.Pricing.Total),
		},
	}
	for _, item := range o.Items {
		doc.Items = append(doc.Items, itemDocument{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      int64(item.Price),
			Quantity:   item.Quantity,
			Subtotal:   int64(item.Subtotal),
			Note:       item.Note,
		})
	}
	return json.Marshal(doc)
}

// decodeOrder applies the snapshot document on top of the scalar columns.
func decodeOrder(raw []byte, o *model.Order) error {
	var doc orderDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode order %s: %w", o.ID, err)
	}

	o.Customer.Email = doc.Customer.Email
	o.Customer.Name = doc.Customer.Name
	o.Customer.Phone = doc.Customer.Phone
	o.Restaurant.Name = doc.Restaurant.Name
	o.Restaurant.EstimatedDeliveryTime = doc.Restaurant.EstimatedDeliveryTime
	if o.Restaurant.EstimatedDeliveryTime == "" {
		o.Restaurant.EstimatedDeliveryTime = model.DefaultEstimatedDeliveryTime
	}
	o.Restaurant.Location = doc.Restaurant.Location.model()

	o.Items = make([]model.OrderItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		o.Items = append(o.Items, model.OrderItem{
			MenuItemID: item.MenuItemID,
			Name:       item.Name,
			Price:      model.Money(item.Price),
			Quantity:   item.Quantity,
			Subtotal:   model.Money(item.Subtotal),
			Note:       item.Note,
		})
	}

	o.Address = model.Address{
		ID:         doc.Address.ID,
		UserID:     o.Customer.UserID,
		Label:      doc.Address.Label,
		Street:     doc.Address.Street,
		City:       doc.Address.City,
		State:      doc.Address.State,
		PostalCode: doc.Address.PostalCode,
		Country:    doc.Address.Country,
		Location:   doc.Address.Location.model(),
	}
	o.Payment = model.PaymentSelection{
		Kind:         model.PaymentKind(doc.Payment.Kind),
		DisplayName:  doc.Payment.DisplayName,
		MaskedDetail: doc.Payment.MaskedDetail,
	}
	o.Instructions = doc.Instructions
	o.Pricing = model.Pricing{
		Subtotal:      model.Money(doc.Pricing.Subtotal),
		ServiceCharge: model.Money(doc.Pricing.ServiceCharge),
		Tax:           model.Money(doc.Pricing.Tax),
		DeliveryFee:   model.Money(doc.Pricing.DeliveryFee),
		Total:         model.Money(doc.Pricing.Total),
	}
	return nil
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o        model.Order
		snapshot []byte
	)
	err := row.Scan(&o.ID, &o.IdempotencyKey, &o.Customer.UserID, &o.Restaurant.ID, &snapshot, &o.Status,
		&o.PaymentStatus, &o.DeliveryActorID, &o.CreatedAt, &o.UpdatedAt, &o.PickedUpAt, &o.DeliveredAt)
	if err != nil {
		return nil, err
	}
	if err := decodeOrder(snapshot, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts the order unless one with the same idempotency key exists,
// in which case the stored order is returned.
func (r *orderRepository) Create(ctx context.Context, order model.Order) (*model.Order, bool, error) {
	snapshot, err := encodeOrder(order)
	if err != nil {
		return nil, false, err
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = order.Payment.InitialStatus()
	}

	const query = `INSERT INTO orders (idempotency_key, customer_id, restaurant_id, snapshot, status, payment_status)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (idempotency_key) DO NOTHING
                   RETURNING id, created_at, updated_at`
	created := order
	err = r.storage.pool.QueryRow(ctx, query, order.IdempotencyKey, order.Customer.UserID, order.Restaurant.ID,
		snapshot, string(order.Status), string(order.PaymentStatus)).
		Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.getOne(ctx, sq.Eq{"idempotency_key": order.IdempotencyKey})
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &created, true, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return r.list(ctx, sq.Eq{"customer_id": customerID}, 0)
}

func (r *orderRepository) ListByDeliveryActor(ctx context.Context, actorID int64) ([]model.Order, error) {
	return r.list(ctx, sq.Eq{"delivery_actor_id": actorID}, 0)
}

func (r *orderRepository) ListByRestaurantOwner(ctx context.Context, ownerID int64) ([]model.Order, error) {
	return r.list(ctx, sq.Expr("restaurant_id IN (SELECT id FROM restaurants WHERE owner_id = ?)", ownerID), 0)
}

func (r *orderRepository) ListAwaitingPickup(ctx context.Context, limit int) ([]model.Order, error) {
	return r.list(ctx, sq.Eq{"status": string(model.OrderStatusReadyForPickup), "delivery_actor_id": nil}, limit)
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	return r.list(ctx, nil, limit)
}

func (r *orderRepository) getOne(ctx context.Context, where sq.Sqlizer) (*model.Order, error) {
	query, args, err := psql.Select(orderColumns...).From("orders").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return order, nil
}

func (r *orderRepository) list(ctx context.Context, where sq.Sqlizer, limit int) ([]model.Order, error) {
	builder := psql.Select(orderColumns...).From("orders").OrderBy("created_at DESC")
	if where != nil {
		builder = builder.Where(where)
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus applies change only if the order still has change.From and
// notifies the assigned delivery actor in the same transaction.
func (r *orderRepository) UpdateStatus(ctx context.Context, change model.StatusChange) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `UPDATE orders
                       SET status=$1, updated_at=NOW(),
                           picked_up_at=COALESCE($2, picked_up_at),
                           delivered_at=COALESCE($3, delivered_at)
                       WHERE id=$4 AND status=$5
                       RETURNING delivery_actor_id`
		var actorID *int64
		err := tx.QueryRow(ctx, query, string(change.To), change.PickedUpAt, change.DeliveredAt,
			change.OrderID, string(change.From)).Scan(&actorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return missingOrConflict(ctx, tx, change.OrderID)
			}
			return mapNotFound(err)
		}
		return notifyActor(ctx, tx, actorID)
	})
}

// Assign hands an unassigned order awaiting pickup to actorID.
func (r *orderRepository) Assign(ctx context.Context, orderID string, actorID int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `UPDATE orders SET delivery_actor_id=$1, updated_at=NOW()
                       WHERE id=$2 AND status=$3 AND delivery_actor_id IS NULL`
		tag, err := tx.Exec(ctx, query, actorID, orderID, string(model.OrderStatusReadyForPickup))
		if err != nil {
			return mapNotFound(err)
		}
		if tag.RowsAffected() == 0 {
			return missingOrConflict(ctx, tx, orderID)
		}
		return notifyActor(ctx, tx, &actorID)
	})
}

func missingOrConflict(ctx context.Context, tx pgx.Tx, orderID string) error {
	var exists int
	if err := tx.QueryRow(ctx, `SELECT 1 FROM orders WHERE id=$1`, orderID).Scan(&exists); err != nil {
		return mapNotFound(err)
	}
	return domainErrors.ErrStatusConflict
}

func notifyActor(ctx context.Context, tx pgx.Tx, actorID *int64) error {
	if actorID == nil {
		return nil
	}
	_, err := tx.Exec(ctx, `SELECT pg_notify($1, $2)`, orderChangesChannel, strconv.FormatInt(*actorID, 10))
	return err
}
