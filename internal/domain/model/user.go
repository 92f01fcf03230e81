package model

import (
	"time"

	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
)

// Role identifies which side of the marketplace a user acts on.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleDelivery   Role = "delivery"
	RoleAdmin      Role = "admin"
)

// ParseRole validates raw role value.
func ParseRole(raw string) (Role, error) {
	switch role := Role(raw); role {
	case RoleCustomer, RoleRestaurant, RoleDelivery, RoleAdmin:
		return role, nil
	default:
		return "", domainErrors.ErrInvalidRole
	}
}

// User represents a registered account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	DisplayName  string
	Phone        string
	Role         Role
	CreatedAt    time.Time
}

// Principal is the authenticated caller.
type Principal struct {
	UserID int64
	Role   Role
}
