package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/threadboard/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostingRepository defines the interface for posting data operations
type PostingRepository interface {
	CreatePosting(ctx context.Context, posting *models.Posting, memberID uint) error
	GetPostingByID(ctx context.Context, id uint) (*models.Posting, error)
	GetPostings(ctx context.Context) ([]models.Posting, error)
	GetPostingsByMemberID(ctx context.Context, memberID uint) ([]models.Posting, error)
	LinkMember(ctx context.Context, memberID, postingID uint) error
}

// PostgresPostingRepository implements PostingRepository for PostgreSQL
type PostgresPostingRepository struct {
	db *gorm.DB
}

// NewPostgresPostingRepository creates a new PostgresPostingRepository
func NewPostgresPostingRepository(db *gorm.DB) *PostgresPostingRepository {
	return &PostgresPostingRepository{db: db}
}

// CreatePosting inserts posting and links it to its author in one transaction
func (r *PostgresPostingRepository) CreatePosting(ctx context.Context, posting *models.Posting, memberID uint) error {
	if posting.WhenPosted.IsZero() {
		posting.WhenPosted = time.Now()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(posting).Error; err != nil {
			return err
		}
		return linkMember(tx, memberID, posting.ID).Error
	})
}

// GetPostingByID retrieves a posting by ID
func (r *PostgresPostingRepository) GetPostingByID(ctx context.Context, id uint) (*models.Posting, error) {
	var posting models.Posting
	if err := r.db.WithContext(ctx).First(&posting, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &posting, nil
}

// GetPostings retrieves all postings ordered by ID
func (r *PostgresPostingRepository) GetPostings(ctx context.Context) ([]models.Posting, error) {
	postings := []models.Posting{}
	if err := r.db.WithContext(ctx).Order("id").Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

// GetPostingsByMemberID retrieves the postings linked to a member
func (r *PostgresPostingRepository) GetPostingsByMemberID(ctx context.Context, memberID uint) ([]models.Posting, error) {
	postings := []models.Posting{}
	if err := byMember(r.db.WithContext(ctx), memberID).Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

// LinkMember associates an existing member with an existing posting. Linking
// an already linked pair is a no-op.
func (r *PostgresPostingRepository) LinkMember(ctx context.Context, memberID, postingID uint) error {
	return linkMember(r.db.WithContext(ctx), memberID, postingID).Error
}

func linkMember(db *gorm.DB, memberID, postingID uint) *gorm.DB {
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.MemberPosting{MemberID: memberID, PostingID: postingID})
}

func byMember(db *gorm.DB, memberID uint) *gorm.DB {
	return db.Model(&models.Posting{}).
		Joins("JOIN member_posting ON member_posting.posting_id = posting.id").
		Where("member_posting.member_id = ?", memberID).
		Order("posting.id")
}
