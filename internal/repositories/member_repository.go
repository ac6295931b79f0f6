package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/threadboard/backend/internal/models"
	"gorm.io/gorm"
)

// MemberRepository defines the interface for member data operations
type MemberRepository interface {
	GetMembers(ctx context.Context) ([]models.Member, error)
	GetMemberByID(ctx context.Context, id uint) (*models.Member, error)
}

// PostgresMemberRepository implements MemberRepository for PostgreSQL
type PostgresMemberRepository struct {
	db *gorm.DB
}

// NewPostgresMemberRepository creates a new PostgresMemberRepository
func NewPostgresMemberRepository(db *gorm.DB) *PostgresMemberRepository {
	return &PostgresMemberRepository{db: db}
}

// GetMembers retrieves all members ordered by ID
func (r *PostgresMemberRepository) GetMembers(ctx context.Context) ([]models.Member, error) {
	members := []models.Member{}
	if err := r.db.WithContext(ctx).Order("id").Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// GetMemberByID retrieves a member by ID
func (r *PostgresMemberRepository) GetMemberByID(ctx context.Context, id uint) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}
