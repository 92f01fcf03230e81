package test

import (
	"errors"

	"github.com/polkiloo/foodcourier/internal/domain/model"
	pkgAuth "github.com/polkiloo/foodcourier/internal/pkg/auth"
)

// ErrHashMismatch is returned by HasherStub when a password does not match.
var ErrHashMismatch = errors.New("hash mismatch")

// HasherStub hashes by prefixing "hash:" and applies the same length policy
// as the bcrypt hasher.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	if len(password) < pkgAuth.MinPasswordLength || len(password) > pkgAuth.MaxPasswordLength {
		return "", pkgAuth.ErrWeakPassword
	}
	return "hash:" + password, nil
}

func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return ErrHashMismatch
	}
	return nil
}

// StrategyStub is a token strategy for tests. Without overrides every token
// parses to Principal, or to customer 1 when Principal is empty. A non-nil
// Err fails every parse.
type StrategyStub struct {
	IssueFn   func(model.Principal) (string, error)
	ParseFn   func(string) (model.Principal, error)
	Principal model.Principal
	Err       error
}

func (s StrategyStub) IssueToken(principal model.Principal) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(principal)
	}
	return "token", nil
}

func (s StrategyStub) ParseToken(token string) (model.Principal, error) {
	switch {
	case s.ParseFn != nil:
		return s.ParseFn(token)
	case s.Err != nil:
		return model.Principal{}, s.Err
	case s.Principal.UserID != 0:
		return s.Principal, nil
	}
	return model.Principal{UserID: 1, Role: model.RoleCustomer}, nil
}

func (s StrategyStub) Name() string { return "stub" }

var (
	_ pkgAuth.PasswordHasher = HasherStub{}
	_ pkgAuth.Strategy       = StrategyStub{}
)
