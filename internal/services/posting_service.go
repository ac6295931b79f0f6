package services

import (
	"context"
	"errors"

	"github.com/anonto42/threadboard/backend/internal/models"
	"github.com/anonto42/threadboard/backend/internal/repositories"
)

// PostingService handles members, postings and the links between them
type PostingService struct {
	postingRepo repositories.PostingRepository
	memberRepo  repositories.MemberRepository
	opts        Options
}

// NewPostingService creates a new PostingService
func NewPostingService(postingRepo repositories.PostingRepository, memberRepo repositories.MemberRepository, opts Options) *PostingService {
	return &PostingService{
		postingRepo: postingRepo,
		memberRepo:  memberRepo,
		opts:        opts,
	}
}

// CreatePosting stores a posting authored by req.MemberID
func (s *PostingService) CreatePosting(ctx context.Context, req models.CreatePostingRequest) (*models.Posting, error) {
	ctx, cancel := withTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	if err := s.requireMember(ctx, req.MemberID); err != nil {
		return nil, err
	}

	posting := &models.Posting{Title: req.Title, Content: req.Content}
	if req.WhenPosted != nil {
		posting.WhenPosted = *req.WhenPosted
	}
	if err := s.postingRepo.CreatePosting(ctx, posting, req.MemberID); err != nil {
		return nil, unavailable("create posting", err)
	}
	return posting, nil
}

// GetPostings returns every posting
func (s *PostingService) GetPostings(ctx context.Context) ([]models.Posting, error) {
	ctx, cancel := withTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	postings, err := s.postingRepo.GetPostings(ctx)
	if err != nil {
		return nil, unavailable("list postings", err)
	}
	return postings, nil
}

// GetMembers returns every member
func (s *PostingService) GetMembers(ctx context.Context) ([]models.Member, error) {
	ctx, cancel := withTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	members, err := s.memberRepo.GetMembers(ctx)
	if err != nil {
		return nil, unavailable("list members", err)
	}
	return members, nil
}

// GetMemberPostings returns the postings linked to a member
func (s *PostingService) GetMemberPostings(ctx context.Context, memberID uint) ([]models.Posting, error) {
	ctx, cancel := withTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}
	postings, err := s.postingRepo.GetPostingsByMemberID(ctx, memberID)
	if err != nil {
		return nil, unavailable("list member postings", err)
	}
	return postings, nil
}

// LinkMember records memberID as an author of postingID
func (s *PostingService) LinkMember(ctx context.Context, memberID, postingID uint) error {
	ctx, cancel := withTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	if err := s.requireMember(ctx, memberID); err != nil {
		return err
	}
	if _, err := s.postingRepo.GetPostingByID(ctx, postingID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPostingNotFound
		}
		return unavailable("load posting", err)
	}
	if err := s.postingRepo.LinkMember(ctx, memberID, postingID); err != nil {
		return unavailable("link member", err)
	}
	return nil
}

func (s *PostingService) requireMember(ctx context.Context, memberID uint) error {
	if _, err := s.memberRepo.GetMemberByID(ctx, memberID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMemberNotFound
		}
		return unavailable("load member", err)
	}
	return nil
}
