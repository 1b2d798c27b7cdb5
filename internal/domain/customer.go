package domain

import (
	"errors"
	"time"
)

var (
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrCustomerNameEmpty    = errors.New("customer full name is required")
	ErrCustomerNameTooLong  = errors.New("customer full name must be 200 characters or less")
	ErrCustomerPhoneEmpty   = errors.New("customer phone number is required")
	ErrCustomerPhoneTooLong = errors.New("customer phone number must be 30 characters or less")
)

// Customer is the buyer on an installment contract. A new customer row is
// created for every contract; there is no dedup by name or phone.
type Customer struct {
	ID          int32     `json:"id"`
	FullName    string    `json:"fullName"`
	PhoneNumber string    `json:"phoneNumber"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (c *Customer) Validate() error {
	if c.FullName == "" {
		return ErrCustomerNameEmpty
	}
	if len(c.FullName) > 200 {
		return ErrCustomerNameTooLong
	}
	if c.PhoneNumber == "" {
		return ErrCustomerPhoneEmpty
	}
	if len(c.PhoneNumber) > 30 {
		return ErrCustomerPhoneTooLong
	}
	return nil
}

type CustomerRepository interface {
	CreateTx(tx interface{}, customer *Customer) (*Customer, error) // Transactional create
	GetByID(id int32) (*Customer, error)
}
