package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aqsaty/aqsaty-backend/internal/domain"
	"github.com/aqsaty/aqsaty-backend/internal/service"
	"github.com/aqsaty/aqsaty-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestExportInstallments_Success(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockInstallmentRepository()
	repo.StatusRows = []*domain.InstallmentStatus{
		{
			InstallmentID:   1,
			ContractID:      1,
			CustomerName:    "Ahmed Ali",
			PhoneNumber:     "0770",
			ItemDescription: "TV",
			ContractTotal:   decimal.RequireFromString("300.00"),
			DueDate:         time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
			Amount:          decimal.RequireFromString("100.00"),
			PaidAmount:      decimal.Zero,
		},
	}
	handler := NewExportHandler(service.NewExportService(repo, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/installments/export", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ExportInstallments(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	contentType := rec.Header().Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, exportContentType) {
		t.Errorf("Expected xlsx content type, got %s", contentType)
	}

	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(disposition, "Installments_Report.xlsx") {
		t.Errorf("Expected attachment filename, got %s", disposition)
	}

	// The body must be a readable workbook
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("Expected a valid xlsx body: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Installments")
	if err != nil {
		t.Fatalf("Expected the Installments sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Expected header plus 1 row, got %d rows", len(rows))
	}
}

func TestExportInstallments_RepositoryFailure(t *testing.T) {
	e := echo.New()
	repo := testutil.NewMockInstallmentRepository()
	repo.ListStatusErr = testutil.ErrInjected
	handler := NewExportHandler(service.NewExportService(repo, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/installments/export", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.ExportInstallments(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rec.Code)
	}
}
