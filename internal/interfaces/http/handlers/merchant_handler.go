package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/interfaces/http/middleware"
	"merchant-verify.backend/internal/interfaces/http/response"
	"merchant-verify.backend/internal/usecases"
)

// MerchantHandler handles merchant registration, review and audit endpoints
type MerchantHandler struct {
	merchantUsecase *usecases.MerchantUsecase
	auditUsecase    *usecases.AuditUsecase
}

// NewMerchantHandler creates a new merchant handler
func NewMerchantHandler(merchantUsecase *usecases.MerchantUsecase, auditUsecase *usecases.AuditUsecase) *MerchantHandler {
	return &MerchantHandler{
		merchantUsecase: merchantUsecase,
		auditUsecase:    auditUsecase,
	}
}

type merchantListQuery struct {
	Name         string `form:"name"`
	BusinessType string `form:"businessType"`
	Status       string `form:"status"`
	RiskLevel    string `form:"riskLevel"`
	Country      string `form:"country"`
	DateFrom     string `form:"dateFrom"`
	DateTo       string `form:"dateTo"`
}

func (q merchantListQuery) filter() (entities.MerchantFilter, error) {
	filter := entities.MerchantFilter{
		Name:    strings.TrimSpace(q.Name),
		Country: strings.TrimSpace(q.Country),
	}
	if q.BusinessType != "" {
		bt := entities.BusinessType(q.BusinessType)
		if !bt.IsValid() {
			return filter, domainerrors.BadRequest("Invalid businessType")
		}
		filter.BusinessType = bt
	}
	if q.Status != "" {
		status := entities.MerchantStatus(q.Status)
		if !status.IsValid() {
			return filter, domainerrors.BadRequest("Invalid status")
		}
		filter.Status = status
	}
	if q.RiskLevel != "" {
		level := entities.RiskLevel(q.RiskLevel)
		if !level.IsValid() {
			return filter, domainerrors.BadRequest("Invalid riskLevel")
		}
		filter.RiskLevel = level
	}

	from, err := parseDate(q.DateFrom)
	if err != nil {
		return filter, domainerrors.BadRequest("dateFrom must be YYYY-MM-DD")
	}
	to, err := parseDate(q.DateTo)
	if err != nil {
		return filter, domainerrors.BadRequest("dateTo must be YYYY-MM-DD")
	}
	if to != nil {
		// dateTo covers the whole day
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	filter.DateFrom = from
	filter.DateTo = to
	return filter, nil
}

// ListMerchants lists merchants matching the query filters
// GET /api/v1/merchants
func (h *MerchantHandler) ListMerchants(c *gin.Context) {
	var q merchantListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}
	filter, err := q.filter()
	if err != nil {
		response.Error(c, err)
		return
	}
	params, ok := bindPagination(c)
	if !ok {
		return
	}

	page, err := h.merchantUsecase.List(c.Request.Context(), filter, params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// SearchMerchants matches q against name, registration number, website and email
// GET /api/v1/merchants/search
func (h *MerchantHandler) SearchMerchants(c *gin.Context) {
	params, ok := bindPagination(c)
	if !ok {
		return
	}

	page, err := h.merchantUsecase.Search(c.Request.Context(), c.Query("q"), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// CreateMerchant registers a merchant for review
// POST /api/v1/merchants
func (h *MerchantHandler) CreateMerchant(c *gin.Context) {
	var input entities.CreateMerchantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	merchant, err := h.merchantUsecase.Create(c.Request.Context(), &input, middleware.Actor(c))
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			response.Error(c, domainerrors.Conflict("A merchant with this registration number already exists"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, merchant)
}

// GetMerchant returns the merchant with its latest pattern, flags and recent audit
// GET /api/v1/merchants/:id
func (h *MerchantHandler) GetMerchant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.merchantUsecase.GetDetail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// UpdateMerchant updates a merchant profile
// PUT /api/v1/merchants/:id
func (h *MerchantHandler) UpdateMerchant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input entities.UpdateMerchantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	merchant, err := h.merchantUsecase.Update(c.Request.Context(), id, &input, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, merchant)
}

// VerifyMerchant assesses and screens the merchant and records the decision
// POST /api/v1/merchants/:id/verify
func (h *MerchantHandler) VerifyMerchant(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var input entities.VerifyMerchantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.merchantUsecase.Verify(c.Request.Context(), id, &input, middleware.Actor(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// ListAuditLogs returns the merchant's audit trail, newest first
// GET /api/v1/merchants/:id/audit-logs
func (h *MerchantHandler) ListAuditLogs(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.auditUsecase.ListByMerchant(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, entries)
}
