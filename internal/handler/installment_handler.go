package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aqsaty/aqsaty-backend/internal/domain"
	"github.com/aqsaty/aqsaty-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// InstallmentHandler handles installment-related HTTP requests
type InstallmentHandler struct {
	installmentService *service.InstallmentService
}

// NewInstallmentHandler creates a new InstallmentHandler
func NewInstallmentHandler(installmentService *service.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{installmentService: installmentService}
}

// InstallmentResponse represents an installment in API responses
type InstallmentResponse struct {
	ID          int32   `json:"id"`
	ContractID  int32   `json:"contractId"`
	DueDate     string  `json:"dueDate"`
	Amount      string  `json:"amount"`
	IsPaid      bool    `json:"isPaid"`
	PaidAmount  string  `json:"paidAmount"`
	PaymentDate *string `json:"paymentDate,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

// InstallmentStatusResponse represents a ledger row in API responses
type InstallmentStatusResponse struct {
	InstallmentID   int32   `json:"installmentId"`
	ContractID      int32   `json:"contractId"`
	CustomerName    string  `json:"customerName"`
	PhoneNumber     string  `json:"phoneNumber"`
	ItemDescription string  `json:"itemDescription"`
	ContractTotal   string  `json:"contractTotal"`
	DueDate         string  `json:"dueDate"`
	Amount          string  `json:"amount"`
	IsPaid          bool    `json:"isPaid"`
	PaidAmount      string  `json:"paidAmount"`
	PaymentDate     *string `json:"paymentDate,omitempty"`
}

// SummaryResponse represents the collected/pending/overdue totals
type SummaryResponse struct {
	Collected string `json:"collected"`
	Pending   string `json:"pending"`
	Overdue   string `json:"overdue"`
}

// LedgerResponse represents the installment list with its summary
type LedgerResponse struct {
	Installments []InstallmentStatusResponse `json:"installments"`
	Summary      SummaryResponse             `json:"summary"`
}

func toInstallmentResponse(inst *domain.Installment) InstallmentResponse {
	resp := InstallmentResponse{
		ID:         inst.ID,
		ContractID: inst.ContractID,
		DueDate:    inst.DueDate.Format("2006-01-02"),
		Amount:     inst.Amount.StringFixed(2),
		IsPaid:     inst.IsPaid,
		PaidAmount: inst.PaidAmount.StringFixed(2),
		CreatedAt:  inst.CreatedAt.Format(time.RFC3339),
	}
	if inst.PaymentDate != nil {
		paymentDate := inst.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &paymentDate
	}
	return resp
}

func toInstallmentStatusResponse(row *domain.InstallmentStatus) InstallmentStatusResponse {
	resp := InstallmentStatusResponse{
		InstallmentID:   row.InstallmentID,
		ContractID:      row.ContractID,
		CustomerName:    row.CustomerName,
		PhoneNumber:     row.PhoneNumber,
		ItemDescription: row.ItemDescription,
		ContractTotal:   row.ContractTotal.StringFixed(2),
		DueDate:         row.DueDate.Format("2006-01-02"),
		Amount:          row.Amount.StringFixed(2),
		IsPaid:          row.IsPaid,
		PaidAmount:      row.PaidAmount.StringFixed(2),
	}
	if row.PaymentDate != nil {
		paymentDate := row.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &paymentDate
	}
	return resp
}

// GetInstallments handles GET /api/v1/installments
func (h *InstallmentHandler) GetInstallments(c echo.Context) error {
	view, err := h.installmentService.GetLedger(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to get installments")
		return NewInternalError(c, "Failed to get installments")
	}

	resp := LedgerResponse{
		Installments: make([]InstallmentStatusResponse, len(view.Installments)),
		Summary: SummaryResponse{
			Collected: view.Summary.Collected.StringFixed(2),
			Pending:   view.Summary.Pending.StringFixed(2),
			Overdue:   view.Summary.Overdue.StringFixed(2),
		},
	}
	for i, row := range view.Installments {
		resp.Installments[i] = toInstallmentStatusResponse(row)
	}

	return c.JSON(http.StatusOK, resp)
}

// MarkPaid handles POST /api/v1/installments/:id/pay
func (h *InstallmentHandler) MarkPaid(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid installment ID", nil)
	}

	installment, err := h.installmentService.MarkPaid(c.Request().Context(), int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrInstallmentNotFound) {
			return NewNotFoundError(c, "Installment not found")
		}
		if errors.Is(err, domain.ErrInstallmentAlreadyPaid) {
			return NewConflictError(c, "Installment is already paid")
		}
		log.Error().Err(err).Int64("installment_id", id).Msg("Failed to mark installment paid")
		return NewInternalError(c, "Failed to mark installment paid")
	}

	return c.JSON(http.StatusOK, toInstallmentResponse(installment))
}
