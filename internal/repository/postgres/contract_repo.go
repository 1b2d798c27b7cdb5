package postgres

import (
	"context"
	"errors"

	"github.com/aqsaty/aqsaty-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContractRepository implements domain.ContractRepository using PostgreSQL
type ContractRepository struct {
	pool *pgxpool.Pool
}

// NewContractRepository creates a new ContractRepository
func NewContractRepository(pool *pgxpool.Pool) *ContractRepository {
	return &ContractRepository{pool: pool}
}

const insertContractSQL = `
	INSERT INTO contracts (customer_id, item_description, total_amount, num_months, start_date)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, customer_id, item_description, total_amount, num_months, start_date, created_at
`

// CreateTx creates a new contract within a transaction
func (r *ContractRepository) CreateTx(tx interface{}, contract *domain.Contract) (*domain.Contract, error) {
	ctx := context.Background()
	pgxTx, ok := tx.(pgx.Tx)
	if !ok {
		return nil, errors.New("invalid transaction type")
	}

	totalAmount, err := decimalToPgNumeric(contract.TotalAmount)
	if err != nil {
		return nil, err
	}
	startDate := pgtype.Date{Time: contract.StartDate, Valid: true}

	row := pgxTx.QueryRow(ctx, insertContractSQL,
		contract.CustomerID, contract.ItemDescription, totalAmount, contract.NumMonths, startDate)
	return scanContract(row)
}

// GetByID retrieves a contract by its ID
func (r *ContractRepository) GetByID(id int32) (*domain.Contract, error) {
	ctx := context.Background()

	row := r.pool.QueryRow(ctx, `
		SELECT id, customer_id, item_description, total_amount, num_months, start_date, created_at
		FROM contracts
		WHERE id = $1
	`, id)
	contract, err := scanContract(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrContractNotFound
		}
		return nil, err
	}
	return contract, nil
}

func scanContract(row pgx.Row) (*domain.Contract, error) {
	contract := &domain.Contract{}
	var totalAmount pgtype.Numeric
	var startDate pgtype.Date

	err := row.Scan(
		&contract.ID,
		&contract.CustomerID,
		&contract.ItemDescription,
		&totalAmount,
		&contract.NumMonths,
		&startDate,
		&contract.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	contract.TotalAmount = pgNumericToDecimal(totalAmount)
	if startDate.Valid {
		contract.StartDate = startDate.Time
	}
	return contract, nil
}
