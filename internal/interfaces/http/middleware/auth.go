package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/interfaces/http/response"
	"merchant-verify.backend/pkg/jwt"
	"merchant-verify.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// ReviewerIDKey is the context key for the reviewer ID
	ReviewerIDKey = "reviewerId"
	// UsernameKey is the context key for the reviewer username
	UsernameKey = "username"
	// RoleKey is the context key for the reviewer role
	RoleKey = "reviewerRole"
)

// AuthMiddleware requires a valid access token
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			response.AbortWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Authorization header is required")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.AbortWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Warn(c.Request.Context(), "Rejected bearer token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.AbortWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Token has expired")
				return
			}
			response.AbortWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid token")
			return
		}

		c.Set(ReviewerIDKey, claims.ReviewerID)
		c.Set(UsernameKey, claims.Username)
		c.Set(RoleKey, claims.Role)
		ctx := context.WithValue(c.Request.Context(), logger.ReviewerIDKey, claims.ReviewerID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetReviewerID gets the reviewer ID from context
func GetReviewerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ReviewerIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetRole gets the reviewer role from context
func GetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get(RoleKey)
	if !exists {
		return "", false
	}
	role, ok := v.(string)
	return role, ok
}

// Actor identifies the authenticated reviewer and client address for
// audit records
func Actor(c *gin.Context) entities.Actor {
	actor := entities.Actor{IPAddress: c.ClientIP()}
	if id, ok := GetReviewerID(c); ok {
		actor.ReviewerID = &id
	}
	return actor
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetRole(c)
		if !exists {
			response.AbortWithError(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Reviewer role not found")
			return
		}
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		response.AbortWithError(c, http.StatusForbidden, domainerrors.CodeForbidden, "Insufficient permissions")
	}
}

// RequireAdmin creates a middleware that requires the admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(string(entities.ReviewerRoleAdmin))
}
