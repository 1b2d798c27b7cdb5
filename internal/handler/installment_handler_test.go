package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aqsaty/aqsaty-backend/internal/domain"
	"github.com/aqsaty/aqsaty-backend/internal/service"
	"github.com/aqsaty/aqsaty-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func addUnpaidInstallment(repo *testutil.MockInstallmentRepository, id int32, amount string, dueDate time.Time) {
	repo.AddInstallment(&domain.Installment{
		ID:         id,
		ContractID: 1,
		DueDate:    dueDate,
		Amount:     decimal.RequireFromString(amount),
		PaidAmount: decimal.Zero,
	})
}

func TestGetInstallments_Success(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockInstallmentRepository()
	handler := NewInstallmentHandler(service.NewInstallmentService(repo))

	now := time.Now()
	addUnpaidInstallment(repo, 1, "100.00", now.AddDate(0, -1, 0))
	addUnpaidInstallment(repo, 2, "100.00", now.AddDate(0, 1, 0))
	repo.StatusRows = []*domain.InstallmentStatus{
		{
			InstallmentID:   1,
			ContractID:      1,
			CustomerName:    "Ahmed Ali",
			PhoneNumber:     "0770",
			ItemDescription: "TV",
			ContractTotal:   decimal.RequireFromString("200.00"),
			DueDate:         now.AddDate(0, -1, 0),
			Amount:          decimal.RequireFromString("100.00"),
			PaidAmount:      decimal.Zero,
		},
		{
			InstallmentID:   2,
			ContractID:      1,
			CustomerName:    "Ahmed Ali",
			PhoneNumber:     "0770",
			ItemDescription: "TV",
			ContractTotal:   decimal.RequireFromString("200.00"),
			DueDate:         now.AddDate(0, 1, 0),
			Amount:          decimal.RequireFromString("100.00"),
			PaidAmount:      decimal.Zero,
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/installments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetInstallments(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response LedgerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(response.Installments) != 2 {
		t.Errorf("Expected 2 installments, got %d", len(response.Installments))
	}
	if response.Installments[0].CustomerName != "Ahmed Ali" {
		t.Errorf("Expected customer 'Ahmed Ali', got %s", response.Installments[0].CustomerName)
	}
	if response.Summary.Collected != "0.00" {
		t.Errorf("Expected collected 0.00, got %s", response.Summary.Collected)
	}
	if response.Summary.Pending != "200.00" {
		t.Errorf("Expected pending 200.00, got %s", response.Summary.Pending)
	}
	if response.Summary.Overdue != "100.00" {
		t.Errorf("Expected overdue 100.00, got %s", response.Summary.Overdue)
	}
}

func TestGetInstallments_Empty(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockInstallmentRepository()
	handler := NewInstallmentHandler(service.NewInstallmentService(repo))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/installments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetInstallments(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response LedgerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Installments) != 0 {
		t.Errorf("Expected no installments, got %d", len(response.Installments))
	}
	if response.Summary.Collected != "0.00" || response.Summary.Pending != "0.00" || response.Summary.Overdue != "0.00" {
		t.Errorf("Expected zero summary, got %+v", response.Summary)
	}
}

func TestMarkPaid_Success(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockInstallmentRepository()
	handler := NewInstallmentHandler(service.NewInstallmentService(repo))

	addUnpaidInstallment(repo, 1, "150.00", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/installments/1/pay", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.MarkPaid(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response InstallmentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if !response.IsPaid {
		t.Error("Expected installment to be paid")
	}
	if response.PaidAmount != "150.00" {
		t.Errorf("Expected paid amount 150.00, got %s", response.PaidAmount)
	}
	if response.PaymentDate == nil {
		t.Error("Expected a payment date")
	}
}

func TestMarkPaid_NotFound(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockInstallmentRepository()
	handler := NewInstallmentHandler(service.NewInstallmentService(repo))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/installments/42/pay", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := handler.MarkPaid(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestMarkPaid_AlreadyPaid(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockInstallmentRepository()
	handler := NewInstallmentHandler(service.NewInstallmentService(repo))

	paymentDate := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("150.00")
	repo.AddInstallment(&domain.Installment{
		ID:          1,
		ContractID:  1,
		DueDate:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Amount:      amount,
		IsPaid:      true,
		PaidAmount:  amount,
		PaymentDate: &paymentDate,
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/installments/1/pay", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.MarkPaid(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != ErrorTypeConflict {
		t.Errorf("Expected conflict problem type, got %s", problem.Type)
	}
}

func TestMarkPaid_InvalidID(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockInstallmentRepository()
	handler := NewInstallmentHandler(service.NewInstallmentService(repo))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/installments/abc/pay", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	if err := handler.MarkPaid(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
