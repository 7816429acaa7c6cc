package repositories

import (
	"context"

	"github.com/google/uuid"
	"merchant-verify.backend/internal/domain/entities"
)

// ReviewerRepository defines reviewer data operations
type ReviewerRepository interface {
	Create(ctx context.Context, reviewer *entities.Reviewer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Reviewer, error)
	GetByUsername(ctx context.Context, username string) (*entities.Reviewer, error)
	List(ctx context.Context) ([]*entities.Reviewer, error)
}
