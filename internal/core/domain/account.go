package domain

import (
	"errors"
	"time"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidEmail = errors.New("invalid email address")
var ErrWeakPassword = errors.New("password too weak")
var ErrValidation = errors.New("validation failed")
var ErrInvalidDelta = errors.New("points delta must be a signed integer")
var ErrForbidden = errors.New("access forbidden")

// Account models a customer or administrator identity record.
// CardNumber and Points are only meaningful for customers: the card is
// assigned once at registration and never reassigned, and the balance is
// mutated exclusively through the ledger.
type Account struct {
	ID           string    `json:"id"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname,omitempty"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	CardNumber   string    `json:"card_number,omitempty"`
	Points       int64     `json:"points"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsCustomer reports whether the account carries a card and a balance.
func (a *Account) IsCustomer() bool {
	return a.Role == RoleCustomer
}
