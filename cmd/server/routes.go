package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"merchant-verify.backend/internal/interfaces/http/handlers"
	"merchant-verify.backend/internal/interfaces/http/middleware"
	"merchant-verify.backend/pkg/metrics"
)

const (
	serviceName    = "merchant-verify"
	serviceVersion = "1.0.0"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	merchantHandler  *handlers.MerchantHandler
	flagHandler      *handlers.FlagHandler
	reportHandler    *handlers.ReportHandler
	riskHandler      *handlers.RiskHandler
	dashboardHandler *handlers.DashboardHandler
	authMiddleware   gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine, allowedOrigins []string) {
	r.Use(middleware.CORSMiddleware(allowedOrigins))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
			"version": serviceVersion,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.GET("/reviewers", d.authMiddleware, middleware.RequireAdmin(), d.authHandler.ListReviewers)
			auth.POST("/reviewers", d.authMiddleware, middleware.RequireAdmin(), d.authHandler.CreateReviewer)
		}

		// Merchant routes
		merchants := v1.Group("/merchants")
		merchants.Use(d.authMiddleware)
		{
			merchants.GET("", d.merchantHandler.ListMerchants)
			merchants.POST("", middleware.IdempotencyMiddleware(), d.merchantHandler.CreateMerchant)
			merchants.GET("/search", d.merchantHandler.SearchMerchants)
			merchants.GET("/:id", d.merchantHandler.GetMerchant)
			merchants.PUT("/:id", d.merchantHandler.UpdateMerchant)
			merchants.POST("/:id/verify", middleware.IdempotencyMiddleware(), d.merchantHandler.VerifyMerchant)
			merchants.GET("/:id/risk", d.riskHandler.PreviewRisk)
			merchants.GET("/:id/transactions", d.riskHandler.ListTransactionPatterns)
			merchants.POST("/:id/transactions", d.riskHandler.AnalyzeTransactions)
			merchants.GET("/:id/flags", d.flagHandler.ListMerchantFlags)
			merchants.POST("/:id/flags", middleware.IdempotencyMiddleware(), d.flagHandler.RaiseFlag)
			merchants.GET("/:id/reports", d.reportHandler.ListMerchantReports)
			merchants.POST("/:id/reports", middleware.IdempotencyMiddleware(), d.reportHandler.GenerateReport)
			merchants.GET("/:id/audit-logs", d.merchantHandler.ListAuditLogs)
		}

		// Flag routes
		flags := v1.Group("/flags")
		flags.Use(d.authMiddleware)
		{
			flags.GET("", d.flagHandler.ListActiveFlags)
			flags.GET("/:id", d.flagHandler.GetFlag)
			flags.PUT("/:id", d.flagHandler.UpdateFlag)
			flags.POST("/:id/resolve", d.flagHandler.ResolveFlag)
		}

		// Report routes
		reports := v1.Group("/reports")
		reports.Use(d.authMiddleware)
		{
			reports.GET("", d.reportHandler.ListReports)
			reports.GET("/:id", d.reportHandler.GetReport)
			reports.GET("/:id/export", d.reportHandler.ExportReport)
		}

		// Dashboard routes
		dashboard := v1.Group("/dashboard")
		dashboard.Use(d.authMiddleware)
		{
			dashboard.GET("/stats", d.dashboardHandler.GetStats)
			dashboard.GET("/risk-distribution", d.dashboardHandler.GetRiskDistribution)
			dashboard.GET("/business-types", d.dashboardHandler.GetBusinessTypes)
		}

		v1.POST("/assess-risk", d.authMiddleware, d.riskHandler.AssessRisk)
	}
}
