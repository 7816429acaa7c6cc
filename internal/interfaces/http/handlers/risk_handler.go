package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/interfaces/http/response"
	"merchant-verify.backend/internal/usecases"
)

// RiskHandler serves risk previews and transaction analyses
type RiskHandler struct {
	riskUsecase        *usecases.RiskUsecase
	transactionUsecase *usecases.TransactionUsecase
}

func NewRiskHandler(riskUsecase *usecases.RiskUsecase, transactionUsecase *usecases.TransactionUsecase) *RiskHandler {
	return &RiskHandler{
		riskUsecase:        riskUsecase,
		transactionUsecase: transactionUsecase,
	}
}

// PreviewRisk scores a stored merchant without saving the result
// GET /api/v1/merchants/:id/risk
func (h *RiskHandler) PreviewRisk(c *gin.Context) {
	assessment, err := h.riskUsecase.PreviewByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, assessment)
}

// AssessRisk scores a stored merchant by id or unsaved merchant data
// POST /api/v1/assess-risk
func (h *RiskHandler) AssessRisk(c *gin.Context) {
	var input entities.AssessRiskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	assessment, err := h.riskUsecase.Assess(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, assessment)
}

// ListTransactionPatterns lists pattern snapshots, newest first
// GET /api/v1/merchants/:id/transactions
func (h *RiskHandler) ListTransactionPatterns(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	patterns, err := h.transactionUsecase.ListPatterns(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, patterns)
}

// AnalyzeTransactions analyzes recent transactions and stores a snapshot
// POST /api/v1/merchants/:id/transactions
func (h *RiskHandler) AnalyzeTransactions(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	pattern, err := h.transactionUsecase.Analyze(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, pattern)
}
