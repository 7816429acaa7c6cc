package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"merchant-verify.backend/internal/config"
	"merchant-verify.backend/internal/infrastructure/cache"
	pgsource "merchant-verify.backend/internal/infrastructure/datasources/postgres"
	"merchant-verify.backend/internal/infrastructure/jobs"
	"merchant-verify.backend/internal/infrastructure/kyb"
	"merchant-verify.backend/internal/infrastructure/repositories"
	"merchant-verify.backend/internal/infrastructure/transactions"
	"merchant-verify.backend/internal/interfaces/http/handlers"
	"merchant-verify.backend/internal/interfaces/http/middleware"
	"merchant-verify.backend/internal/scoring"
	"merchant-verify.backend/internal/usecases"
	"merchant-verify.backend/pkg/jwt"
	"merchant-verify.backend/pkg/logger"
	"merchant-verify.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	checkDB   = pgsource.NewConnection
	migrateDB = pgsource.AutoMigrate
	runServer = func(srv *http.Server) error { return srv.ListenAndServe() }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	clockSeed = func() int64 { return time.Now().UnixNano() }

	notifyShutdown = func(quit chan<- os.Signal) { signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM) }
	stopNotify     = func(quit chan<- os.Signal) { signal.Stop(quit) }
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(ctx, "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()
	pgsource.ConfigurePool(sqlDB, cfg.Database)

	if probe, err := checkDB(cfg.Database); err != nil {
		logger.Warn(ctx, "Database not available, endpoints will return errors", zap.Error(err))
	} else {
		_ = probe.Close()
		logger.Info(ctx, "Connected to PostgreSQL")
	}

	if cfg.Database.AutoMigrate {
		if err := migrateDB(db); err != nil {
			return err
		}
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	uow := repositories.NewUnitOfWork(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	patternRepo := repositories.NewTransactionPatternRepository(db)
	flagRepo := repositories.NewFlagRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	reviewerRepo := repositories.NewReviewerRepository(db)

	// Scoring and simulated providers
	seed := cfg.Scoring.RandomSeed
	if seed == 0 {
		seed = clockSeed()
	}
	profile := scoring.DefaultProfile()
	assessor := scoring.NewAssessor(profile)
	analyzer := scoring.NewAnalyzer(profile)
	verifier := kyb.NewSimulator(profile, seed)
	transactionSource := transactions.NewSimulator(profile, seed+1)
	statsCache := cache.NewStatsCache(cfg.Redis.CacheTTL)

	// Usecases
	authUsecase := usecases.NewAuthUsecase(reviewerRepo, jwtService)
	merchantUsecase := usecases.NewMerchantUsecase(uow, merchantRepo, patternRepo, flagRepo, reportRepo, auditRepo, assessor, verifier, statsCache)
	flagUsecase := usecases.NewFlagUsecase(uow, merchantRepo, flagRepo, auditRepo, statsCache)
	reportUsecase := usecases.NewReportUsecase(uow, merchantRepo, patternRepo, flagRepo, reportRepo, auditRepo)
	riskUsecase := usecases.NewRiskUsecase(merchantRepo, patternRepo, assessor)
	transactionUsecase := usecases.NewTransactionUsecase(merchantRepo, patternRepo, transactionSource, analyzer)
	dashboardUsecase := usecases.NewDashboardUsecase(merchantRepo, flagRepo, statsCache)
	auditUsecase := usecases.NewAuditUsecase(merchantRepo, auditRepo)

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var scoringJob *jobs.PendingScoringJob
	if cfg.Jobs.PendingScoringEnabled {
		scoringJob = jobs.NewPendingScoringJob(merchantRepo, patternRepo, assessor, statsCache, cfg.Jobs.PendingScoringInterval, cfg.Jobs.PendingScoringBatch)
		go scoringJob.Start(jobCtx)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.Server.AllowedOrigins)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:      handlers.NewAuthHandler(authUsecase),
		merchantHandler:  handlers.NewMerchantHandler(merchantUsecase, auditUsecase),
		flagHandler:      handlers.NewFlagHandler(flagUsecase),
		reportHandler:    handlers.NewReportHandler(reportUsecase),
		riskHandler:      handlers.NewRiskHandler(riskUsecase, transactionUsecase),
		dashboardHandler: handlers.NewDashboardHandler(dashboardUsecase),
		authMiddleware:   middleware.AuthMiddleware(jwtService),
	})

	logger.Debug(ctx, "Routes registered", zap.Int("count", len(r.Routes())))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	notifyShutdown(quit)
	defer func() {
		stopNotify(quit)
		close(quit)
	}()
	go func() {
		if _, ok := <-quit; !ok {
			return
		}
		logger.Info(ctx, "Shutting down server")
		if scoringJob != nil {
			scoringJob.Stop()
		}
		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Server shutdown failed", zap.Error(err))
		}
	}()

	log.Printf("Merchant verification backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info(ctx, "Server stopped")
	return nil
}
