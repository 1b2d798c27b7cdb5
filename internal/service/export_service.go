package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aqsaty/aqsaty-backend/internal/domain"
	"github.com/aqsaty/aqsaty-backend/internal/repository/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const (
	reportSheet       = "Installments"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	archiveTimeout    = 30 * time.Second
	reportDateFormat  = "2006-01-02"
	paymentTimeFormat = "2006-01-02 15:04:05"
)

// reportColumn maps a spreadsheet header to a status-row field
type reportColumn struct {
	Header string
	Value  func(row *domain.InstallmentStatus) any
}

var reportColumns = []reportColumn{
	{"Installment ID", func(r *domain.InstallmentStatus) any { return r.InstallmentID }},
	{"Contract ID", func(r *domain.InstallmentStatus) any { return r.ContractID }},
	{"Customer", func(r *domain.InstallmentStatus) any { return r.CustomerName }},
	{"Phone", func(r *domain.InstallmentStatus) any { return r.PhoneNumber }},
	{"Item", func(r *domain.InstallmentStatus) any { return r.ItemDescription }},
	{"Contract Total", func(r *domain.InstallmentStatus) any { return r.ContractTotal.InexactFloat64() }},
	{"Due Date", func(r *domain.InstallmentStatus) any { return r.DueDate.Format(reportDateFormat) }},
	{"Amount", func(r *domain.InstallmentStatus) any { return r.Amount.InexactFloat64() }},
	{"Paid", func(r *domain.InstallmentStatus) any { return r.IsPaid }},
	{"Paid Amount", func(r *domain.InstallmentStatus) any { return r.PaidAmount.InexactFloat64() }},
	{"Payment Date", func(r *domain.InstallmentStatus) any {
		if r.PaymentDate == nil {
			return ""
		}
		return r.PaymentDate.Format(paymentTimeFormat)
	}},
}

// ExportService renders the installment ledger as an xlsx report
type ExportService struct {
	installmentRepo domain.InstallmentRepository
	archive         storage.ReportStore // optional; nil disables archiving
}

// NewExportService creates a new ExportService. archive may be nil.
func NewExportService(installmentRepo domain.InstallmentRepository, archive storage.ReportStore) *ExportService {
	return &ExportService{
		installmentRepo: installmentRepo,
		archive:         archive,
	}
}

// BuildReport renders all installment status rows into an xlsx workbook and
// returns its bytes. When an archive store is configured, a copy is uploaded
// in the background; archive failures never fail the download.
func (s *ExportService) BuildReport() ([]byte, error) {
	rows, err := s.installmentRepo.ListStatus()
	if err != nil {
		return nil, domain.NewPersistenceError("list installments", err)
	}

	data, err := renderReport(rows)
	if err != nil {
		return nil, &domain.ExportError{Err: err}
	}

	if s.archive != nil {
		go s.archiveReport(data)
	}

	return data, nil
}

func renderReport(rows []*domain.InstallmentStatus) ([]byte, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), reportSheet)

	for i, col := range reportColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(reportSheet, cell, col.Header); err != nil {
			return nil, err
		}
	}

	for rowIdx, row := range rows {
		for colIdx, col := range reportColumns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(reportSheet, cell, col.Value(row)); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// archiveReport uploads a generated report to the archive store
func (s *ExportService) archiveReport(data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()

	key := fmt.Sprintf("reports/installments_%s_%s.xlsx",
		time.Now().Format("20060102_150405"), uuid.NewString())

	if _, err := s.archive.Upload(ctx, key, data, xlsxContentType); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to archive report")
		return
	}

	log.Debug().Str("key", key).Int("bytes", len(data)).Msg("Report archived")
}
