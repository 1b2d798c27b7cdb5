package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrContractNotFound       = errors.New("contract not found")
	ErrContractItemEmpty      = errors.New("item description is required")
	ErrContractItemTooLong    = errors.New("item description must be 200 characters or less")
	ErrContractAmountInvalid  = errors.New("total amount must be positive")
	ErrContractTotalTooSmall  = errors.New("total amount is too small to split across the requested months")
	ErrContractMonthsInvalid  = errors.New("number of months must be at least 1")
	ErrContractMonthsTooLarge = errors.New("number of months must be 360 or less")
)

// Contract is an agreement for a total amount to be paid in equal monthly
// installments. Immutable once created.
type Contract struct {
	ID              int32           `json:"id"`
	CustomerID      int32           `json:"customerId"`
	ItemDescription string          `json:"itemDescription"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	NumMonths       int32           `json:"numMonths"`
	StartDate       time.Time       `json:"startDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

func (c *Contract) Validate() error {
	if c.ItemDescription == "" {
		return ErrContractItemEmpty
	}
	if len(c.ItemDescription) > 200 {
		return ErrContractItemTooLong
	}
	if c.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return ErrContractAmountInvalid
	}
	if c.NumMonths < 1 {
		return ErrContractMonthsInvalid
	}
	if c.NumMonths > 360 {
		return ErrContractMonthsTooLarge
	}
	return nil
}

type ContractRepository interface {
	CreateTx(tx interface{}, contract *Contract) (*Contract, error) // Transactional create
	GetByID(id int32) (*Contract, error)
}
