package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/foodcourier/internal/domain/model"
)

var restaurantColumns = []string{
	"id", "owner_id", "name", "cuisine", "active", "lat", "lng",
	"delivery_fee", "minimum_order", "service_charge_percent", "tax_rate_percent", "estimated_delivery_time",
}

var menuColumns = []string{
	"id", "restaurant_id", "name", "COALESCE(description, '')", "COALESCE(category, '')", "price", "available",
}

// scheduleRow holds the optional fee columns of a restaurant row.
type scheduleRow struct {
	deliveryFee   *int64
	minimumOrder  *int64
	serviceCharge *float64
	taxRate       *float64
	deliveryTime  *string
}

// decodeSchedule fills absent fee fields with their fallbacks.
func decodeSchedule(row scheduleRow) model.FeeSchedule {
	schedule := model.FeeSchedule{EstimatedDeliveryTime: model.DefaultEstimatedDeliveryTime}
	if row.deliveryFee != nil && *row.deliveryFee > 0 {
		schedule.DeliveryFee = model.Money(*row.deliveryFee)
	}
	if row.minimumOrder != nil && *row.minimumOrder > 0 {
		schedule.MinimumOrder = model.Money(*row.minimumOrder)
	}
	if row.serviceCharge != nil && *row.serviceCharge > 0 {
		schedule.ServiceChargePercent = *row.serviceCharge
	}
	if row.taxRate != nil && *row.taxRate > 0 {
		schedule.TaxRatePercent = *row.taxRate
	}
	if row.deliveryTime != nil && *row.deliveryTime != "" {
		schedule.EstimatedDeliveryTime = *row.deliveryTime
	}
	return schedule
}

func decodeLocation(lat, lng *float64) *model.Location {
	if lat == nil || lng == nil {
		return nil
	}
	return &model.Location{Lat: *lat, Lng: *lng}
}

func scanRestaurant(row pgx.Row) (*model.Restaurant, error) {
	var (
		r        model.Restaurant
		lat, lng *float64
		fees     scheduleRow
	)
	err := row.Scan(&r.ID, &r.OwnerID, &r.Name, &r.Cuisine, &r.Active, &lat, &lng,
		&fees.deliveryFee, &fees.minimumOrder, &fees.serviceCharge, &fees.taxRate, &fees.deliveryTime)
	if err != nil {
		return nil, err
	}
	r.Location = decodeLocation(lat, lng)
	r.Schedule = decodeSchedule(fees)
	return &r, nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id int64) (*model.Restaurant, error) {
	query, args, err := psql.Select(restaurantColumns...).From("restaurants").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	restaurant, err := scanRestaurant(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return restaurant, nil
}

func (r *restaurantRepository) ListActive(ctx context.Context, limit int) ([]model.Restaurant, error) {
	builder := psql.Select(restaurantColumns...).From("restaurants").
		Where(sq.Eq{"active": true}).
		OrderBy("name")
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

	var result []model.Restaurant
	for rows.Next() {
		restaurant, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *restaurant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanMenuItem(row pgx.Row) (*model.MenuItem, error) {
	var (
		m     model.MenuItem
		price int64
	)
	if err := row.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Category, &price, &m.Available); err != nil {
		return nil, err
	}
	m.Price = model.Money(price)
	return &m, nil
}

func (r *menuRepository) GetByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	query, args, err := psql.Select(menuColumns...).From("menu_items").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	item, err := scanMenuItem(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return item, nil
}

func (r *menuRepository) ListAvailable(ctx context.Context, limit int) ([]model.MenuItem, error) {
	builder := psql.Select(menuColumns...).From("menu_items").
		Where(sq.Eq{"available": true}).
		OrderBy("name")
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

	var result []model.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
