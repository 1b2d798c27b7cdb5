package handler

import (
	"github.com/aqsaty/aqsaty-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, exportLimiter *middleware.RateLimiter, contractHandler *ContractHandler, installmentHandler *InstallmentHandler, exportHandler *ExportHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Contract routes
	contracts := api.Group("/contracts")
	contracts.POST("", contractHandler.CreateContract)
	contracts.GET("/:id", contractHandler.GetContract)

	// Installment routes
	installments := api.Group("/installments")
	installments.GET("", installmentHandler.GetInstallments)
	installments.GET("/export", exportHandler.ExportInstallments, middleware.RateLimitMiddleware(exportLimiter))
	installments.POST("/:id/pay", installmentHandler.MarkPaid)

	// WebSocket endpoint for real-time ledger updates
	e.GET("/ws", wsHandler.HandleWS)
}
