package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/interfaces/http/middleware"
	"merchant-verify.backend/internal/interfaces/http/response"
	"merchant-verify.backend/internal/usecases"
)

// AuthHandler handles reviewer authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Login handles reviewer login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, domainerrors.CodeInvalidCredentials, "Invalid username or password", err))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, authResponse)
}

// RefreshToken exchanges a refresh token for a new token pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input entities.RefreshTokenInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, authResponse)
}

// GetMe returns the authenticated reviewer
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	reviewerID, ok := middleware.GetReviewerID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Reviewer not authenticated"))
		return
	}

	reviewer, err := h.authUsecase.GetReviewerByID(c.Request.Context(), reviewerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, reviewer)
}

// CreateReviewer registers a new reviewer account
// POST /api/v1/auth/reviewers
func (h *AuthHandler) CreateReviewer(c *gin.Context) {
	var input entities.CreateReviewerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	reviewer, err := h.authUsecase.CreateReviewer(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			response.Error(c, domainerrors.Conflict("Username already taken"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, reviewer)
}

// ListReviewers lists reviewer accounts
// GET /api/v1/auth/reviewers
func (h *AuthHandler) ListReviewers(c *gin.Context) {
	reviewers, err := h.authUsecase.ListReviewers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, reviewers)
}
