package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/foodcourier/internal/domain/errors"
	"github.com/polkiloo/foodcourier/internal/domain/model"
	"github.com/polkiloo/foodcourier/internal/domain/repository"
)

// AddressUseCase manages saved delivery addresses.
type AddressUseCase struct {
	addresses repository.AddressRepository
}

// NewAddressUseCase constructs AddressUseCase.
func NewAddressUseCase(addresses repository.AddressRepository) *AddressUseCase {
	return &AddressUseCase{addresses: addresses}
}

func (u *AddressUseCase) List(ctx context.Context, userID int64) ([]model.Address, error) {
	return u.addresses.ListByUser(ctx, userID)
}

// Add stores a new address for userID. Street and city are required.
func (u *AddressUseCase) Add(ctx context.Context, userID int64, address model.Address) (*model.Address, error) {
	address.UserID = userID
	address.Label = strings.TrimSpace(address.Label)
	address.Street = strings.TrimSpace(address.Street)
	address.City = strings.TrimSpace(address.City)
	address.State = strings.TrimSpace(address.State)
	address.PostalCode = strings.TrimSpace(address.PostalCode)
	address.Country = strings.TrimSpace(address.Country)
	if address.Street == "" || address.City == "" {
		return nil, domainErrors.ErrInvalidAddress
	}
	if loc := address.Location; loc != nil && (loc.Lat < -90 || loc.Lat > 90 || loc.Lng < -180 || loc.Lng > 180) {
		return nil, domainErrors.ErrInvalidAddress
	}
	return u.addresses.Create(ctx, address)
}

// SetDefault marks id as the only default address of userID.
func (u *AddressUseCase) SetDefault(ctx context.Context, userID, id int64) error {
	return u.addresses.SetDefault(ctx, userID, id)
}
