package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/domain/repositories"
	"merchant-verify.backend/pkg/crypto"
	"merchant-verify.backend/pkg/jwt"
	"merchant-verify.backend/pkg/logger"
)

// AuthUsecase handles reviewer authentication and administration
type AuthUsecase struct {
	reviewerRepo repositories.ReviewerRepository
	jwtService   *jwt.JWTService
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(reviewerRepo repositories.ReviewerRepository, jwtService *jwt.JWTService) *AuthUsecase {
	return &AuthUsecase{
		reviewerRepo: reviewerRepo,
		jwtService:   jwtService,
	}
}

// Login authenticates a reviewer and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	reviewer, err := u.reviewerRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, reviewer.PasswordHash) {
		logger.Warn(ctx, "Rejected reviewer login", zap.String("username", reviewer.Username))
		return nil, domainerrors.ErrInvalidCredentials
	}

	return u.issue(reviewer)
}

// RefreshToken exchanges a refresh token for a new pair
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := u.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	// the reviewer may have been removed since the token was issued
	reviewer, err := u.reviewerRepo.GetByID(ctx, claims.ReviewerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}
	return u.issue(reviewer)
}

// GetReviewerByID gets a reviewer by ID
func (u *AuthUsecase) GetReviewerByID(ctx context.Context, id uuid.UUID) (*entities.Reviewer, error) {
	return u.reviewerRepo.GetByID(ctx, id)
}

// ListReviewers returns every reviewer ordered by username
func (u *AuthUsecase) ListReviewers(ctx context.Context) ([]*entities.Reviewer, error) {
	return u.reviewerRepo.List(ctx)
}

// CreateReviewer adds a staff account. Role defaults to reviewer.
func (u *AuthUsecase) CreateReviewer(ctx context.Context, input *entities.CreateReviewerInput) (*entities.Reviewer, error) {
	role := input.Role
	if role == "" {
		role = entities.ReviewerRoleReviewer
	}
	if !role.IsValid() {
		return nil, domainerrors.BadRequest("role must be admin or reviewer")
	}
	if err := crypto.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerrors.BadRequest(err.Error())
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	reviewer := &entities.Reviewer{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		Role:         role,
	}
	if err := u.reviewerRepo.Create(ctx, reviewer); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Reviewer created",
		zap.String("reviewer_id", reviewer.ID.String()),
		zap.String("role", string(reviewer.Role)),
	)
	return reviewer, nil
}

// ValidateAccessToken resolves the claims of a bearer token
func (u *AuthUsecase) ValidateAccessToken(token string) (*jwt.Claims, error) {
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, mapTokenError(err)
	}
	return claims, nil
}

func (u *AuthUsecase) issue(reviewer *entities.Reviewer) (*entities.AuthResponse, error) {
	pair, err := u.jwtService.GenerateTokenPair(reviewer.ID, reviewer.Username, string(reviewer.Role))
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
		Reviewer:     reviewer,
	}, nil
}

func mapTokenError(err error) error {
	if errors.Is(err, jwt.ErrExpiredToken) {
		return domainerrors.ErrTokenExpired
	}
	return domainerrors.ErrUnauthorized
}
