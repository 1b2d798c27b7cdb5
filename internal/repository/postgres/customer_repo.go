package postgres

import (
	"context"
	"errors"

	"github.com/aqsaty/aqsaty-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CustomerRepository implements domain.CustomerRepository using PostgreSQL
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const insertCustomerSQL = `
	INSERT INTO customers (full_name, phone_number)
	VALUES ($1, $2)
	RETURNING id, full_name, phone_number, created_at
`

// CreateTx creates a new customer within a transaction
func (r *CustomerRepository) CreateTx(tx interface{}, customer *domain.Customer) (*domain.Customer, error) {
	ctx := context.Background()
	pgxTx, ok := tx.(pgx.Tx)
	if !ok {
		return nil, errors.New("invalid transaction type")
	}

	created := &domain.Customer{}
	err := pgxTx.QueryRow(ctx, insertCustomerSQL, customer.FullName, customer.PhoneNumber).
		Scan(&created.ID, &created.FullName, &created.PhoneNumber, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetByID retrieves a customer by its ID
func (r *CustomerRepository) GetByID(id int32) (*domain.Customer, error) {
	ctx := context.Background()

	customer := &domain.Customer{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, full_name, phone_number, created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&customer.ID, &customer.FullName, &customer.PhoneNumber, &customer.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer, nil
}
