package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"merchant-verify.backend/internal/domain/entities"
	domainerrors "merchant-verify.backend/internal/domain/errors"
	"merchant-verify.backend/internal/infrastructure/models"
	"merchant-verify.backend/pkg/utils"
)

// ReviewerRepository implements reviewer data operations
type ReviewerRepository struct {
	db *gorm.DB
}

// NewReviewerRepository creates a new reviewer repository
func NewReviewerRepository(db *gorm.DB) *ReviewerRepository {
	return &ReviewerRepository{db: db}
}

func (r *ReviewerRepository) Create(ctx context.Context, reviewer *entities.Reviewer) error {
	if reviewer.ID == uuid.Nil {
		reviewer.ID = utils.GenerateUUIDv7()
	}
	now := time.Now()
	reviewer.CreatedAt = now
	reviewer.UpdatedAt = now

	m := &models.Reviewer{
		ID:           reviewer.ID,
		Username:     reviewer.Username,
		Email:        reviewer.Email,
		PasswordHash: reviewer.PasswordHash,
		Role:         string(reviewer.Role),
		CreatedAt:    reviewer.CreatedAt,
		UpdatedAt:    reviewer.UpdatedAt,
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", reviewer.Username, domainerrors.ErrAlreadyExists)
		}
		return err
	}
	return nil
}

func (r *ReviewerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Reviewer, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ReviewerRepository) GetByUsername(ctx context.Context, username string) (*entities.Reviewer, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *ReviewerRepository) List(ctx context.Context) ([]*entities.Reviewer, error) {
	var ms []models.Reviewer
	if err := GetDB(ctx, r.db).Order("username ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Reviewer, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *ReviewerRepository) first(ctx context.Context, query string, arg interface{}) (*entities.Reviewer, error) {
	var m models.Reviewer
	if err := GetDB(ctx, r.db).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *ReviewerRepository) toEntity(m *models.Reviewer) *entities.Reviewer {
	return &entities.Reviewer{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entities.ReviewerRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
