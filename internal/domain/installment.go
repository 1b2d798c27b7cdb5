package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInstallmentNotFound    = errors.New("installment not found")
	ErrInstallmentAlreadyPaid = errors.New("installment is already paid")
)

// Installment is one scheduled payment obligation derived from a contract.
// It starts Unpaid and transitions to Paid exactly once; there is no reverse
// transition.
type Installment struct {
	ID          int32           `json:"id"`
	ContractID  int32           `json:"contractId"`
	DueDate     time.Time       `json:"dueDate"`
	Amount      decimal.Decimal `json:"amount"`
	IsPaid      bool            `json:"isPaid"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	PaymentDate *time.Time      `json:"paymentDate,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// IsOverdue reports whether the installment is unpaid and past its due date
func (i *Installment) IsOverdue(now time.Time) bool {
	return !i.IsPaid && i.DueDate.Before(now)
}

// InstallmentStatus is one row of the denormalized ledger view joining
// installments with their contract and customer, used for listing and export.
type InstallmentStatus struct {
	InstallmentID   int32           `json:"installmentId"`
	ContractID      int32           `json:"contractId"`
	CustomerName    string          `json:"customerName"`
	PhoneNumber     string          `json:"phoneNumber"`
	ItemDescription string          `json:"itemDescription"`
	ContractTotal   decimal.Decimal `json:"contractTotal"`
	DueDate         time.Time       `json:"dueDate"`
	Amount          decimal.Decimal `json:"amount"`
	IsPaid          bool            `json:"isPaid"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	PaymentDate     *time.Time      `json:"paymentDate,omitempty"`
}

// Summary holds the three running totals over the ledger. All fields are
// explicit zeros when the ledger is empty.
type Summary struct {
	Collected decimal.Decimal `json:"collected"`
	Pending   decimal.Decimal `json:"pending"`
	Overdue   decimal.Decimal `json:"overdue"`
}

// ComputeSummary aggregates collected, pending and overdue totals over the
// given installments. Paid installments contribute nothing to pending or
// overdue; overdue counts only unpaid installments with a due date before now.
func ComputeSummary(installments []*Installment, now time.Time) Summary {
	s := Summary{
		Collected: decimal.Zero,
		Pending:   decimal.Zero,
		Overdue:   decimal.Zero,
	}
	for _, inst := range installments {
		s.Collected = s.Collected.Add(inst.PaidAmount)
		remaining := inst.Amount.Sub(inst.PaidAmount)
		s.Pending = s.Pending.Add(remaining)
		if inst.IsOverdue(now) {
			s.Overdue = s.Overdue.Add(remaining)
		}
	}
	return s
}

type InstallmentRepository interface {
	CreateBatchTx(tx interface{}, installments []*Installment) error // Transactional batch create
	GetByID(id int32) (*Installment, error)
	GetByContractID(contractID int32) ([]*Installment, error)
	ListStatus() ([]*InstallmentStatus, error)
	MarkPaid(id int32, paymentDate time.Time) (*Installment, error)
	Summarize(now time.Time) (Summary, error)
}
