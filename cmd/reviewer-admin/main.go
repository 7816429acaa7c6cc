package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"merchant-verify.backend/internal/config"
	"merchant-verify.backend/internal/domain/entities"
	pgsource "merchant-verify.backend/internal/infrastructure/datasources/postgres"
	"merchant-verify.backend/internal/infrastructure/repositories"
	"merchant-verify.backend/internal/usecases"
	"merchant-verify.backend/pkg/crypto"
	"merchant-verify.backend/pkg/jwt"
)

// passwordEnv lets scripts pass the password without exposing it in argv
const passwordEnv = "REVIEWER_PASSWORD"

var openReviewerDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false})
}

var openReviewerSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type reviewerRuntime interface {
	CreateReviewer(ctx context.Context, input *entities.CreateReviewerInput) (*entities.Reviewer, error)
}

type reviewerAdminDeps struct {
	loadEnv func() error
	loadCfg func() *config.Config
	prepare func(cfg *config.Config) (reviewerRuntime, io.Closer, error)
	hash    func(password string) (string, error)
	getenv  func(key string) string
	out     io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func defaultReviewerAdminDeps() reviewerAdminDeps {
	return reviewerAdminDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (reviewerRuntime, io.Closer, error) {
			db, err := openReviewerDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openReviewerSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			if cfg.Database.AutoMigrate {
				if err := pgsource.AutoMigrate(db); err != nil {
					_ = sqlDB.Close()
					return nil, nil, err
				}
			}

			jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry, cfg.JWT.RefreshExpiry)
			return usecases.NewAuthUsecase(repositories.NewReviewerRepository(db), jwtService), sqlDB, nil
		},
		hash:   crypto.HashPassword,
		getenv: os.Getenv,
		out:    os.Stdout,
	}
}

func resolvePassword(flagValue string, getenv func(string) string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := getenv(passwordEnv); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("--password or %s is required", passwordEnv)
}

func runReviewerAdmin(args []string, deps reviewerAdminDeps) error {
	def := defaultReviewerAdminDeps()
	if deps.loadEnv == nil {
		deps.loadEnv = def.loadEnv
	}
	if deps.loadCfg == nil {
		deps.loadCfg = def.loadCfg
	}
	if deps.prepare == nil {
		deps.prepare = def.prepare
	}
	if deps.hash == nil {
		deps.hash = def.hash
	}
	if deps.getenv == nil {
		deps.getenv = def.getenv
	}
	if deps.out == nil {
		deps.out = def.out
	}

	fs := flag.NewFlagSet("reviewer-admin", flag.ContinueOnError)
	usernameFlag := fs.String("username", "", "reviewer username (required unless -hash-only)")
	emailFlag := fs.String("email", "", "reviewer email (required unless -hash-only)")
	passwordFlag := fs.String("password", "", "reviewer password (or set "+passwordEnv+")")
	roleFlag := fs.String("role", string(entities.ReviewerRoleAdmin), "admin or reviewer")
	hashOnly := fs.Bool("hash-only", false, "print a bcrypt hash of the password and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := resolvePassword(*passwordFlag, deps.getenv)
	if err != nil {
		return err
	}
	if err := crypto.ValidatePasswordStrength(password); err != nil {
		return err
	}

	if *hashOnly {
		hash, err := deps.hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		_, _ = fmt.Fprintf(deps.out, "BCRYPT_HASH=%s\n", hash)
		return nil
	}

	if *usernameFlag == "" || *emailFlag == "" {
		return fmt.Errorf("--username and --email are required")
	}
	role := entities.ReviewerRole(*roleFlag)
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q (allowed: admin, reviewer)", *roleFlag)
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := deps.loadCfg()
	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	if closer == nil {
		closer = nopCloser{}
	}
	defer closer.Close()

	reviewer, err := runtime.CreateReviewer(context.Background(), &entities.CreateReviewerInput{
		Username: *usernameFlag,
		Email:    *emailFlag,
		Password: password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed creating reviewer: %w", err)
	}

	_, _ = fmt.Fprintln(deps.out, "Created reviewer and stored in DB")
	_, _ = fmt.Fprintf(deps.out, "reviewer_id=%s\n", reviewer.ID.String())
	_, _ = fmt.Fprintf(deps.out, "username=%s\n", reviewer.Username)
	_, _ = fmt.Fprintf(deps.out, "role=%s\n", reviewer.Role)
	return nil
}

func main() {
	if err := runReviewerAdmin(os.Args[1:], defaultReviewerAdminDeps()); err != nil {
		log.Fatal(err)
	}
}
