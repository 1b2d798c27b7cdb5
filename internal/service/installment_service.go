package service

import (
	"context"
	"time"

	"github.com/aqsaty/aqsaty-backend/internal/domain"
	"github.com/aqsaty/aqsaty-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// InstallmentService handles ledger reads and the pay transition
type InstallmentService struct {
	installmentRepo domain.InstallmentRepository
	eventPublisher  websocket.EventPublisher
}

// NewInstallmentService creates a new InstallmentService
func NewInstallmentService(installmentRepo domain.InstallmentRepository) *InstallmentService {
	return &InstallmentService{installmentRepo: installmentRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *InstallmentService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

// publishEvent publishes a WebSocket event if a publisher is configured
func (s *InstallmentService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// LedgerView is the installment list together with its summary totals
type LedgerView struct {
	Installments []*domain.InstallmentStatus
	Summary      domain.Summary
}

// GetLedger retrieves all installments (due date ascending) with the
// collected/pending/overdue summary
func (s *InstallmentService) GetLedger(ctx context.Context) (*LedgerView, error) {
	installments, err := s.installmentRepo.ListStatus()
	if err != nil {
		return nil, domain.NewPersistenceError("list installments", err)
	}

	summary, err := s.installmentRepo.Summarize(time.Now())
	if err != nil {
		return nil, domain.NewPersistenceError("summarize installments", err)
	}

	return &LedgerView{Installments: installments, Summary: summary}, nil
}

// MarkPaid transitions an installment from Unpaid to Paid, setting the paid
// amount to the owed amount and stamping the payment date. The transition is
// explicit: a missing installment is ErrInstallmentNotFound and an already
// paid one is ErrInstallmentAlreadyPaid; the payment date is never re-stamped.
func (s *InstallmentService) MarkPaid(ctx context.Context, id int32) (*domain.Installment, error) {
	installment, err := s.installmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if installment.IsPaid {
		return nil, domain.ErrInstallmentAlreadyPaid
	}

	// The repository re-checks is_paid inside the UPDATE, so a concurrent
	// pay still results in exactly one transition.
	paid, err := s.installmentRepo.MarkPaid(id, time.Now())
	if err != nil {
		return nil, err
	}

	log.Info().
		Int32("installment_id", paid.ID).
		Int32("contract_id", paid.ContractID).
		Str("amount", paid.Amount.String()).
		Msg("Installment paid")

	s.publishEvent(websocket.InstallmentPaid(paid))

	return paid, nil
}
