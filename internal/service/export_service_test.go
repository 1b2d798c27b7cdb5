package service

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aqsaty/aqsaty-backend/internal/domain"
	"github.com/aqsaty/aqsaty-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func statusRow(id int32, customer string, paid bool) *domain.InstallmentStatus {
	row := &domain.InstallmentStatus{
		InstallmentID:   id,
		ContractID:      1,
		CustomerName:    customer,
		PhoneNumber:     "07701234567",
		ItemDescription: "Refrigerator",
		ContractTotal:   decimal.RequireFromString("1200"),
		DueDate:         time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.RequireFromString("100.00"),
		IsPaid:          paid,
		PaidAmount:      decimal.Zero,
	}
	if paid {
		row.PaidAmount = row.Amount
		paymentDate := time.Date(2024, 2, 20, 10, 30, 0, 0, time.UTC)
		row.PaymentDate = &paymentDate
	}
	return row
}

func TestBuildReport(t *testing.T) {
	repo := testutil.NewMockInstallmentRepository()
	repo.StatusRows = []*domain.InstallmentStatus{
		statusRow(1, "Ahmed Ali", true),
		statusRow(2, "Sara Hasan", false),
	}
	svc := NewExportService(repo, nil)

	data, err := svc.BuildReport()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per installment")

	header := rows[0]
	assert.Equal(t, "Installment ID", header[0])
	assert.Equal(t, "Customer", header[2])
	assert.Equal(t, "Payment Date", header[10])

	assert.Equal(t, "Ahmed Ali", rows[1][2])
	assert.Equal(t, "2024-02-15", rows[1][6])
	assert.Equal(t, "2024-02-20 10:30:00", rows[1][10])
	assert.Equal(t, "Sara Hasan", rows[2][2])
}

func TestBuildReportEmptyLedger(t *testing.T) {
	repo := testutil.NewMockInstallmentRepository()
	svc := NewExportService(repo, nil)

	data, err := svc.BuildReport()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
}

func TestBuildReportRepositoryFailure(t *testing.T) {
	repo := testutil.NewMockInstallmentRepository()
	repo.ListStatusErr = testutil.ErrInjected
	svc := NewExportService(repo, nil)

	_, err := svc.BuildReport()
	var perr *domain.PersistenceError
	require.True(t, errors.As(err, &perr))
}

func TestBuildReportArchives(t *testing.T) {
	repo := testutil.NewMockInstallmentRepository()
	repo.StatusRows = []*domain.InstallmentStatus{statusRow(1, "Ahmed Ali", false)}
	store := testutil.NewMockReportStore()
	svc := NewExportService(repo, store)

	data, err := svc.BuildReport()
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(store.Keys()) == 1
	}, time.Second, 10*time.Millisecond, "report should be archived in the background")

	keys := store.Keys()
	assert.True(t, strings.HasPrefix(keys[0], "reports/installments_"))
	assert.True(t, strings.HasSuffix(keys[0], ".xlsx"))
	assert.Equal(t, data, store.Uploads()[0])
}

func TestBuildReportArchiveFailureDoesNotFailDownload(t *testing.T) {
	repo := testutil.NewMockInstallmentRepository()
	repo.StatusRows = []*domain.InstallmentStatus{statusRow(1, "Ahmed Ali", false)}
	store := testutil.NewMockReportStore()
	uploaded := make(chan struct{})
	store.UploadFn = func(objectPath string, data []byte) (string, error) {
		close(uploaded)
		return "", testutil.ErrInjected
	}
	svc := NewExportService(repo, store)

	data, err := svc.BuildReport()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	select {
	case <-uploaded:
	case <-time.After(time.Second):
		t.Fatal("expected archive upload to be attempted")
	}
}
