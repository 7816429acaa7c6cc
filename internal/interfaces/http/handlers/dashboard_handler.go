package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"merchant-verify.backend/internal/interfaces/http/response"
	"merchant-verify.backend/internal/usecases"
)

// DashboardHandler serves review queue statistics
type DashboardHandler struct {
	dashboardUsecase *usecases.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase *usecases.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// GetStats GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GetRiskDistribution GET /api/v1/dashboard/risk-distribution
func (h *DashboardHandler) GetRiskDistribution(c *gin.Context) {
	dist, err := h.dashboardUsecase.RiskDistribution(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, dist)
}

// GetBusinessTypes GET /api/v1/dashboard/business-types
func (h *DashboardHandler) GetBusinessTypes(c *gin.Context) {
	counts, err := h.dashboardUsecase.BusinessTypes(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, counts)
}
