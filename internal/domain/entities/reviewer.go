package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReviewerRole represents reviewer roles
type ReviewerRole string

const (
	ReviewerRoleAdmin    ReviewerRole = "admin"
	ReviewerRoleReviewer ReviewerRole = "reviewer"
)

func (r ReviewerRole) IsValid() bool {
	return r == ReviewerRoleAdmin || r == ReviewerRoleReviewer
}

// Reviewer is a staff user performing workflow actions
type Reviewer struct {
	ID           uuid.UUID    `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         ReviewerRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// CreateReviewerInput represents input for creating a reviewer
type CreateReviewerInput struct {
	Username string       `json:"username" binding:"required,min=3,max=150"`
	Email    string       `json:"email" binding:"required,email"`
	Password string       `json:"password" binding:"required,min=10"`
	Role     ReviewerRole `json:"role"`
}

// LoginInput represents input for reviewer login
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenInput exchanges a refresh token for a new pair
type RefreshTokenInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Reviewer     *Reviewer `json:"reviewer"`
}
