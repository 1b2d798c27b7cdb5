package handler

import (
	"net/http"

	"github.com/aqsaty/aqsaty-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportFilename    = "Installments_Report.xlsx"
)

// ExportHandler handles report export HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportInstallments handles GET /api/v1/installments/export
func (h *ExportHandler) ExportInstallments(c echo.Context) error {
	data, err := h.exportService.BuildReport()
	if err != nil {
		log.Error().Err(err).Msg("Failed to build installments report")
		return NewInternalError(c, "Failed to build installments report")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+exportFilename+`"`)
	return c.Blob(http.StatusOK, exportContentType, data)
}
