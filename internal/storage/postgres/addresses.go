package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
)

const addressColumns = `id, user_id, label, street, city, state, postal_code, country, is_default, lat, lng`

func scanAddress(row pgx.Row) (*model.Address, error) {
	var (
		a        model.Address
		lat, lng *float64
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Label, &a.Street, &a.City, &a.State, &a.PostalCode, &a.Country,
		&a.IsDefault, &lat, &lng)
	if err != nil {
		return nil, err
	}
	a.Location = decodeLocation(lat, lng)
	return &a, nil
}

func (r *addressRepository) ListByUser(ctx context.Context, userID int64) ([]model.Address, error) {
	const query = `SELECT ` + addressColumns + ` FROM addresses WHERE user_id=$1 ORDER BY is_default DESC, id`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *addressRepository) GetByID(ctx context.Context, userID, id int64) (*model.Address, error) {
	const query = `SELECT ` + addressColumns + ` FROM addresses WHERE id=$1 AND user_id=$2`
	a, err := scanAddress(r.storage.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return a, nil
}

// Create marks the address default when the user has none yet.
func (r *addressRepository) Create(ctx context.Context, address model.Address) (*model.Address, error) {
	const query = `INSERT INTO addresses (user_id, label, street, city, state, postal_code, country, is_default, lat, lng)
                   VALUES ($1, $2, $3, $4, $5, $6, $7,
                           NOT EXISTS (SELECT 1 FROM addresses WHERE user_id=$1 AND is_default), $8, $9)
                   RETURNING id, is_default`
	var lat, lng *float64
	if address.Location != nil {
		lat, lng = &address.Location.Lat, &address.Location.Lng
	}

	a := address
	err := r.storage.pool.QueryRow(ctx, query, a.UserID, a.Label, a.Street, a.City, a.State, a.PostalCode, a.Country, lat, lng).
		Scan(&a.ID, &a.IsDefault)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &a, nil
}

// SetDefault moves the default flag to id within one transaction.
func (r *addressRepository) SetDefault(ctx context.Context, userID, id int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const clearQuery = `UPDATE addresses SET is_default=FALSE WHERE user_id=$1 AND is_default AND id<>$2`
		if _, err := tx.Exec(ctx, clearQuery, userID, id); err != nil {
			return err
		}

		const setQuery = `UPDATE addresses SET is_default=TRUE WHERE user_id=$1 AND id=$2`
		tag, err := tx.Exec(ctx, setQuery, userID, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}
		return nil
	})
}
