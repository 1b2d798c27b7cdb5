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
	"github.com/shopspring/decimal"
)

// ContractHandler handles contract-related HTTP requests
type ContractHandler struct {
	contractService *service.ContractService
}

// NewContractHandler creates a new ContractHandler
func NewContractHandler(contractService *service.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// CreateContractRequest represents the create contract request body
type CreateContractRequest struct {
	FullName        string `json:"fullName"`
	PhoneNumber     string `json:"phoneNumber"`
	ItemDescription string `json:"itemDescription"`
	TotalAmount     string `json:"totalAmount"`
	NumMonths       int32  `json:"numMonths"`
	StartDate       string `json:"startDate"`
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID              int32  `json:"id"`
	CustomerID      int32  `json:"customerId"`
	ItemDescription string `json:"itemDescription"`
	TotalAmount     string `json:"totalAmount"`
	NumMonths       int32  `json:"numMonths"`
	StartDate       string `json:"startDate"`
	CreatedAt       string `json:"createdAt"`
}

// ContractDetailResponse represents a contract with its installment schedule
type ContractDetailResponse struct {
	ContractResponse
	Installments []InstallmentResponse `json:"installments"`
}

func toContractResponse(contract *domain.Contract) ContractResponse {
	return ContractResponse{
		ID:              contract.ID,
		CustomerID:      contract.CustomerID,
		ItemDescription: contract.ItemDescription,
		TotalAmount:     contract.TotalAmount.StringFixed(2),
		NumMonths:       contract.NumMonths,
		StartDate:       contract.StartDate.Format("2006-01-02"),
		CreatedAt:       contract.CreatedAt.Format(time.RFC3339),
	}
}

// CreateContract handles POST /api/v1/contracts
func (h *ContractHandler) CreateContract(c echo.Context) error {
	var req CreateContractRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	totalAmount, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		return NewValidationError(c, "Invalid total amount", []ValidationError{
			{Field: "totalAmount", Message: "Must be a valid decimal number"},
		})
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return NewValidationError(c, "Invalid start date", []ValidationError{
			{Field: "startDate", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	input := service.CreateContractInput{
		FullName:        req.FullName,
		PhoneNumber:     req.PhoneNumber,
		ItemDescription: req.ItemDescription,
		TotalAmount:     totalAmount,
		NumMonths:       req.NumMonths,
		StartDate:       startDate,
	}

	contract, err := h.contractService.CreateContract(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrCustomerNameEmpty) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "fullName", Message: "Customer name is required"},
			})
		}
		if errors.Is(err, domain.ErrCustomerNameTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "fullName", Message: "Customer name must be 200 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrCustomerPhoneEmpty) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "phoneNumber", Message: "Phone number is required"},
			})
		}
		if errors.Is(err, domain.ErrCustomerPhoneTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "phoneNumber", Message: "Phone number must be 30 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrContractItemEmpty) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "itemDescription", Message: "Item description is required"},
			})
		}
		if errors.Is(err, domain.ErrContractItemTooLong) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "itemDescription", Message: "Item description must be 200 characters or less"},
			})
		}
		if errors.Is(err, domain.ErrContractAmountInvalid) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "totalAmount", Message: "Amount must be positive"},
			})
		}
		if errors.Is(err, domain.ErrContractTotalTooSmall) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "totalAmount", Message: "Amount is too small to split across the requested months"},
			})
		}
		if errors.Is(err, domain.ErrContractMonthsInvalid) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "numMonths", Message: "Number of months must be at least 1"},
			})
		}
		if errors.Is(err, domain.ErrContractMonthsTooLarge) {
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "numMonths", Message: "Number of months must be 360 or less"},
			})
		}
		log.Error().Err(err).Msg("Failed to create contract")
		return NewInternalError(c, "Failed to create contract")
	}

	log.Info().Int32("contract_id", contract.ID).Str("item", contract.ItemDescription).Msg("Contract created")

	return c.JSON(http.StatusCreated, toContractResponse(contract))
}

// GetContract handles GET /api/v1/contracts/:id
func (h *ContractHandler) GetContract(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return NewValidationError(c, "Invalid contract ID", nil)
	}

	contract, installments, err := h.contractService.GetContract(c.Request().Context(), int32(id))
	if err != nil {
		if errors.Is(err, domain.ErrContractNotFound) {
			return NewNotFoundError(c, "Contract not found")
		}
		log.Error().Err(err).Int64("contract_id", id).Msg("Failed to get contract")
		return NewInternalError(c, "Failed to get contract")
	}

	resp := ContractDetailResponse{
		ContractResponse: toContractResponse(contract),
		Installments:     make([]InstallmentResponse, len(installments)),
	}
	for i, inst := range installments {
		resp.Installments[i] = toInstallmentResponse(inst)
	}

	return c.JSON(http.StatusOK, resp)
}
