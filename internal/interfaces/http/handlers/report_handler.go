package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/interfaces/http/middleware"
	"merchant-verify.backend/internal/interfaces/http/response"
	"merchant-verify.backend/internal/usecases"
)

// ReportHandler handles verification report endpoints
type ReportHandler struct {
	reportUsecase *usecases.ReportUsecase
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportUsecase *usecases.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

// GenerateReport snapshots the merchant into a new report
// POST /api/v1/merchants/:id/reports
func (h *ReportHandler) GenerateReport(c *gin.Context) {
	merchantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input entities.CreateReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	report, err := h.reportUsecase.Generate(c.Request.Context(), merchantID, &input, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, report)
}

// ListMerchantReports lists a merchant's reports
// GET /api/v1/merchants/:id/reports
func (h *ReportHandler) ListMerchantReports(c *gin.Context) {
	merchantID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reports, err := h.reportUsecase.ListByMerchant(c.Request.Context(), merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reports)
}

// ListReports lists all reports, newest first
// GET /api/v1/reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	params, ok := bindPagination(c)
	if !ok {
		return
	}

	page, err := h.reportUsecase.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// GetReport returns a report
// GET /api/v1/reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.reportUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// ExportReport downloads a report as CSV
// GET /api/v1/reports/:id/export
func (h *ReportHandler) ExportReport(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	export, err := h.reportUsecase.ExportCSV(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	c.Data(http.StatusOK, export.ContentType, export.Content)
}
