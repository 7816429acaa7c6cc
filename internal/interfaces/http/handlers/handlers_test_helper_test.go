package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"merchant-verify.backend/internal/domain/entities"
	"merchant-verify.backend/internal/infrastructure/cache"
	"merchant-verify.backend/internal/infrastructure/datasources/postgres"
	"merchant-verify.backend/internal/infrastructure/kyb"
	"merchant-verify.backend/internal/infrastructure/repositories"
	"merchant-verify.backend/internal/infrastructure/transactions"
	"merchant-verify.backend/internal/interfaces/http/middleware"
	"merchant-verify.backend/internal/scoring"
	"merchant-verify.backend/internal/usecases"
	"merchant-verify.backend/pkg/jwt"
)

const testSecret = "handler-test-secret"

// testEnv wires the real usecases over an in-memory sqlite database
type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	jwt      *jwt.JWTService
	reviewer *entities.Reviewer
	token    string
	auth     *usecases.AuthUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, postgres.AutoMigrate(db))

	uow := repositories.NewUnitOfWork(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	patternRepo := repositories.NewTransactionPatternRepository(db)
	flagRepo := repositories.NewFlagRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	reviewerRepo := repositories.NewReviewerRepository(db)

	profile := scoring.DefaultProfile()
	assessor := scoring.NewAssessor(profile)
	statsCache := cache.NewStatsCache(time.Minute)
	jwtService := jwt.NewJWTService(testSecret, time.Hour, 24*time.Hour)

	authUsecase := usecases.NewAuthUsecase(reviewerRepo, jwtService)
	merchantUsecase := usecases.NewMerchantUsecase(uow, merchantRepo, patternRepo, flagRepo, reportRepo, auditRepo, assessor, kyb.NewSimulator(profile, 7), statsCache)
	flagUsecase := usecases.NewFlagUsecase(uow, merchantRepo, flagRepo, auditRepo, statsCache)
	reportUsecase := usecases.NewReportUsecase(uow, merchantRepo, patternRepo, flagRepo, reportRepo, auditRepo)
	riskUsecase := usecases.NewRiskUsecase(merchantRepo, patternRepo, assessor)
	transactionUsecase := usecases.NewTransactionUsecase(merchantRepo, patternRepo, transactions.NewSimulator(profile, 7), scoring.NewAnalyzer(profile))
	dashboardUsecase := usecases.NewDashboardUsecase(merchantRepo, flagRepo, statsCache)

	reviewer := &entities.Reviewer{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         entities.ReviewerRoleReviewer,
	}
	require.NoError(t, reviewerRepo.Create(t.Context(), reviewer))
	pair, err := jwtService.GenerateTokenPair(reviewer.ID, reviewer.Username, string(reviewer.Role))
	require.NoError(t, err)

	authHandler := NewAuthHandler(authUsecase)
	merchantHandler := NewMerchantHandler(merchantUsecase, usecases.NewAuditUsecase(merchantRepo, auditRepo))
	flagHandler := NewFlagHandler(flagUsecase)
	reportHandler := NewReportHandler(reportUsecase)
	riskHandler := NewRiskHandler(riskUsecase, transactionUsecase)
	dashboardHandler := NewDashboardHandler(dashboardUsecase)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.RefreshToken)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.GET("/auth/me", authHandler.GetMe)
	protected.POST("/auth/reviewers", middleware.RequireAdmin(), authHandler.CreateReviewer)
	protected.GET("/auth/reviewers", middleware.RequireAdmin(), authHandler.ListReviewers)

	protected.GET("/merchants", merchantHandler.ListMerchants)
	protected.POST("/merchants", merchantHandler.CreateMerchant)
	protected.GET("/merchants/search", merchantHandler.SearchMerchants)
	protected.GET("/merchants/:id", merchantHandler.GetMerchant)
	protected.PUT("/merchants/:id", merchantHandler.UpdateMerchant)
	protected.POST("/merchants/:id/verify", merchantHandler.VerifyMerchant)
	protected.GET("/merchants/:id/audit-logs", merchantHandler.ListAuditLogs)
	protected.GET("/merchants/:id/risk", riskHandler.PreviewRisk)
	protected.GET("/merchants/:id/transactions", riskHandler.ListTransactionPatterns)
	protected.POST("/merchants/:id/transactions", riskHandler.AnalyzeTransactions)
	protected.GET("/merchants/:id/flags", flagHandler.ListMerchantFlags)
	protected.POST("/merchants/:id/flags", flagHandler.RaiseFlag)
	protected.GET("/merchants/:id/reports", reportHandler.ListMerchantReports)
	protected.POST("/merchants/:id/reports", reportHandler.GenerateReport)

	protected.GET("/flags", flagHandler.ListActiveFlags)
	protected.GET("/flags/:id", flagHandler.GetFlag)
	protected.PUT("/flags/:id", flagHandler.UpdateFlag)
	protected.POST("/flags/:id/resolve", flagHandler.ResolveFlag)

	protected.GET("/reports", reportHandler.ListReports)
	protected.GET("/reports/:id", reportHandler.GetReport)
	protected.GET("/reports/:id/export", reportHandler.ExportReport)

	protected.GET("/dashboard/stats", dashboardHandler.GetStats)
	protected.GET("/dashboard/risk-distribution", dashboardHandler.GetRiskDistribution)
	protected.GET("/dashboard/business-types", dashboardHandler.GetBusinessTypes)
	protected.POST("/assess-risk", riskHandler.AssessRisk)

	return &testEnv{
		router:   r,
		db:       db,
		jwt:      jwtService,
		reviewer: reviewer,
		token:    pair.AccessToken,
		auth:     authUsecase,
	}
}

// do sends an authenticated request with an optional JSON body
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func merchantPayload(name, registration string) map[string]interface{} {
	return map[string]interface{}{
		"name":               name,
		"businessType":       "retail",
		"registrationNumber": registration,
		"taxId":              "TAX-1",
		"website":            "https://" + strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".com",
		"email":              "ops@example.com",
		"phone":              "+1-555-0100",
		"address":            "1 Market St",
		"city":               "Springfield",
		"state":              "IL",
		"country":            "United States",
		"postalCode":         "62701",
	}
}

func (e *testEnv) createMerchant(t *testing.T, name, registration string) *entities.Merchant {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/merchants", merchantPayload(name, registration))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[*entities.Merchant](t, w)
}
