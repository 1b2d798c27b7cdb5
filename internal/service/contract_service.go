package service

import (
	"context"
	"strings"
	"time"

	"github.com/aqsaty/aqsaty-backend/internal/domain"
	"github.com/aqsaty/aqsaty-backend/internal/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TxBeginner starts database transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// ContractService handles contract creation business logic
type ContractService struct {
	db              TxBeginner
	customerRepo    domain.CustomerRepository
	contractRepo    domain.ContractRepository
	installmentRepo domain.InstallmentRepository
	eventPublisher  websocket.EventPublisher
}

// NewContractService creates a new ContractService
func NewContractService(db TxBeginner, customerRepo domain.CustomerRepository, contractRepo domain.ContractRepository, installmentRepo domain.InstallmentRepository) *ContractService {
	return &ContractService{
		db:              db,
		customerRepo:    customerRepo,
		contractRepo:    contractRepo,
		installmentRepo: installmentRepo,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *ContractService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *ContractService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateContractInput contains input for creating a contract
type CreateContractInput struct {
	FullName        string
	PhoneNumber     string
	ItemDescription string
	TotalAmount     decimal.Decimal
	NumMonths       int32
	StartDate       time.Time
}

// CreateContract creates a customer, a contract and its full installment
// schedule as a single transaction. On any failure nothing is persisted.
func (s *ContractService) CreateContract(ctx context.Context, input CreateContractInput) (*domain.Contract, error) {
	customer := &domain.Customer{
		FullName:    strings.TrimSpace(input.FullName),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	contract := &domain.Contract{
		ItemDescription: strings.TrimSpace(input.ItemDescription),
		TotalAmount:     input.TotalAmount,
		NumMonths:       input.NumMonths,
		StartDate:       input.StartDate,
	}
	if err := contract.Validate(); err != nil {
		return nil, err
	}

	schedule, err := GenerateSchedule(input.TotalAmount, input.NumMonths, input.StartDate)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("begin transaction", err)
	}
	defer tx.Rollback(ctx)

	createdCustomer, err := s.customerRepo.CreateTx(tx, customer)
	if err != nil {
		return nil, domain.NewPersistenceError("insert customer", err)
	}

	contract.CustomerID = createdCustomer.ID
	createdContract, err := s.contractRepo.CreateTx(tx, contract)
	if err != nil {
		return nil, domain.NewPersistenceError("insert contract", err)
	}

	installments := make([]*domain.Installment, len(schedule))
	for i, entry := range schedule {
		installments[i] = &domain.Installment{
			ContractID: createdContract.ID,
			DueDate:    entry.DueDate,
			Amount:     entry.Amount,
			PaidAmount: decimal.Zero,
		}
	}
	if err := s.installmentRepo.CreateBatchTx(tx, installments); err != nil {
		return nil, domain.NewPersistenceError("insert installments", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.NewPersistenceError("commit transaction", err)
	}

	log.Info().
		Int32("contract_id", createdContract.ID).
		Int32("customer_id", createdCustomer.ID).
		Str("item", createdContract.ItemDescription).
		Int32("months", createdContract.NumMonths).
		Msg("Contract created")

	s.publishEvent(websocket.ContractCreated(createdContract))

	return createdContract, nil
}

// GetContract retrieves a contract with its installments
func (s *ContractService) GetContract(ctx context.Context, id int32) (*domain.Contract, []*domain.Installment, error) {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}

	installments, err := s.installmentRepo.GetByContractID(id)
	if err != nil {
		return nil, nil, err
	}

	return contract, installments, nil
}
