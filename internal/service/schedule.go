package service

import (
	"time"

	"github.com/aqsaty/aqsaty-backend/internal/domain"
	"github.com/aqsaty/aqsaty-backend/internal/util"
	"github.com/shopspring/decimal"
)

// ScheduleEntry is one (due date, amount) pair of a generated payment schedule
type ScheduleEntry struct {
	DueDate time.Time
	Amount  decimal.Decimal
}

// GenerateSchedule produces the monthly payment schedule for a contract:
// months entries, each due one calendar month after the previous, the first
// one month after startDate. Day of month is preserved, clamped for shorter
// months. Amounts are the total divided equally and rounded to cents; the
// last installment absorbs the rounding remainder so the schedule always
// sums exactly to totalAmount. Totals too small to leave every installment
// positive are rejected.
func GenerateSchedule(totalAmount decimal.Decimal, months int32, startDate time.Time) ([]ScheduleEntry, error) {
	if months < 1 {
		return nil, domain.ErrContractMonthsInvalid
	}
	if totalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrContractAmountInvalid
	}

	perInstallment := totalAmount.Div(decimal.NewFromInt32(months)).Round(2)

	// Remainder correction: total - per*(n-1) keeps the sum exact
	lastInstallment := totalAmount.Sub(perInstallment.Mul(decimal.NewFromInt32(months - 1)))

	// Rounding can push either share to zero or below when the total is
	// smaller than a cent per month (0.01/3) or rounds up against the
	// remainder (1.00/200). Every installment must stay positive.
	if !perInstallment.IsPositive() || !lastInstallment.IsPositive() {
		return nil, domain.ErrContractTotalTooSmall
	}

	entries := make([]ScheduleEntry, months)
	for i := int32(0); i < months; i++ {
		entries[i] = ScheduleEntry{
			DueDate: util.AddMonths(startDate, int(i)+1),
			Amount:  perInstallment,
		}
	}
	entries[months-1].Amount = lastInstallment

	return entries, nil
}
