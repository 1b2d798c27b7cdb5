package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/aqsaty/aqsaty-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InstallmentRepository implements domain.InstallmentRepository using PostgreSQL
type InstallmentRepository struct {
	pool *pgxpool.Pool
}

// NewInstallmentRepository creates a new InstallmentRepository
func NewInstallmentRepository(pool *pgxpool.Pool) *InstallmentRepository {
	return &InstallmentRepository{pool: pool}
}

const insertInstallmentSQL = `
	INSERT INTO installments (contract_id, due_date, amount)
	VALUES ($1, $2, $3)
`

const selectInstallmentSQL = `
	SELECT id, contract_id, due_date, amount, is_paid, paid_amount, payment_date, created_at
	FROM installments
`

// CreateBatchTx creates all installments of a schedule within a transaction
func (r *InstallmentRepository) CreateBatchTx(tx interface{}, installments []*domain.Installment) error {
	ctx := context.Background()
	pgxTx, ok := tx.(pgx.Tx)
	if !ok {
		return errors.New("invalid transaction type")
	}

	batch := &pgx.Batch{}
	for _, inst := range installments {
		amount, err := decimalToPgNumeric(inst.Amount)
		if err != nil {
			return err
		}
		dueDate := pgtype.Date{Time: inst.DueDate, Valid: true}
		batch.Queue(insertInstallmentSQL, inst.ContractID, dueDate, amount)
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()

	for range installments {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}

// GetByID retrieves an installment by its ID
func (r *InstallmentRepository) GetByID(id int32) (*domain.Installment, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, selectInstallmentSQL+" WHERE id = $1", id)
	inst, err := scanInstallment(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrInstallmentNotFound
		}
		return nil, err
	}
	return inst, nil
}

// GetByContractID retrieves all installments of a contract ordered by due date
func (r *InstallmentRepository) GetByContractID(contractID int32) ([]*domain.Installment, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, selectInstallmentSQL+" WHERE contract_id = $1 ORDER BY due_date ASC", contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Installment
	for rows.Next() {
		inst, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, inst)
	}
	return result, rows.Err()
}

// ListStatus retrieves the denormalized ledger view ordered by due date ascending
func (r *InstallmentRepository) ListStatus() ([]*domain.InstallmentStatus, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT
			installment_id, contract_id, customer_name, phone_number,
			item_description, contract_total, due_date, amount,
			is_paid, paid_amount, payment_date
		FROM v_installment_status
		ORDER BY due_date ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.InstallmentStatus
	for rows.Next() {
		row := &domain.InstallmentStatus{}
		var contractTotal, amount, paidAmount pgtype.Numeric
		var dueDate pgtype.Date
		var paymentDate pgtype.Timestamptz

		err := rows.Scan(
			&row.InstallmentID,
			&row.ContractID,
			&row.CustomerName,
			&row.PhoneNumber,
			&row.ItemDescription,
			&contractTotal,
			&dueDate,
			&amount,
			&row.IsPaid,
			&paidAmount,
			&paymentDate,
		)
		if err != nil {
			return nil, err
		}

		row.ContractTotal = pgNumericToDecimal(contractTotal)
		row.Amount = pgNumericToDecimal(amount)
		row.PaidAmount = pgNumericToDecimal(paidAmount)
		if dueDate.Valid {
			row.DueDate = dueDate.Time
		}
		if paymentDate.Valid {
			row.PaymentDate = &paymentDate.Time
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// MarkPaid transitions an unpaid installment to paid, setting paid_amount to
// the owed amount and stamping the payment date. The is_paid guard makes the
// transition race-safe; a concurrent or repeated pay matches zero rows.
func (r *InstallmentRepository) MarkPaid(id int32, paymentDate time.Time) (*domain.Installment, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		UPDATE installments
		SET is_paid = TRUE,
		    paid_amount = amount,
		    payment_date = $2
		WHERE id = $1 AND is_paid = FALSE
		RETURNING id, contract_id, due_date, amount, is_paid, paid_amount, payment_date, created_at
	`, id, paymentDate)
	inst, err := scanInstallment(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrInstallmentAlreadyPaid
		}
		return nil, err
	}
	return inst, nil
}

// Summarize computes the collected/pending/overdue totals over all
// installments. COALESCE keeps an empty ledger at explicit zeros.
func (r *InstallmentRepository) Summarize(now time.Time) (domain.Summary, error) {
	ctx := context.Background()

	var collected, pending, overdue pgtype.Numeric
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(paid_amount), 0) AS collected,
			COALESCE(SUM(amount - paid_amount), 0) AS pending,
			COALESCE(SUM(CASE WHEN due_date < $1 AND NOT is_paid THEN amount - paid_amount ELSE 0 END), 0) AS overdue
		FROM installments
	`, now).Scan(&collected, &pending, &overdue)
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Summary{
		Collected: pgNumericToDecimal(collected),
		Pending:   pgNumericToDecimal(pending),
		Overdue:   pgNumericToDecimal(overdue),
	}, nil
}

func scanInstallment(row pgx.Row) (*domain.Installment, error) {
	inst := &domain.Installment{}
	var amount, paidAmount pgtype.Numeric
	var dueDate pgtype.Date
	var paymentDate pgtype.Timestamptz

	err := row.Scan(
		&inst.ID,
		&inst.ContractID,
		&dueDate,
		&amount,
		&inst.IsPaid,
		&paidAmount,
		&paymentDate,
		&inst.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	inst.Amount = pgNumericToDecimal(amount)
	inst.PaidAmount = pgNumericToDecimal(paidAmount)
	if dueDate.Valid {
		inst.DueDate = dueDate.Time
	}
	if paymentDate.Valid {
		inst.PaymentDate = &paymentDate.Time
	}
	return inst, nil
}
