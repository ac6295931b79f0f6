package services

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/threadboard/backend/internal/commenttree"
	"github.com/anonto42/threadboard/backend/internal/models"
	"github.com/anonto42/threadboard/backend/internal/repositories"
	"github.com/anonto42/threadboard/backend/pkg/logger"
)

// Options tunes how services talk to the stores
type Options struct {
	// StoreTimeout bounds every individual store call
	StoreTimeout time.Duration
	// WriteAttempts is how many read-modify-write cycles AddComment runs
	// before giving up on a tree that keeps changing underneath it
	WriteAttempts int
}

// CommentService keeps comment trees in step with the postings they belong to.
//
// A tree is changed by loading the whole document, mutating it in memory and
// replacing it only if its version is still the one that was loaded. Two writers
// racing on the same posting therefore cannot silently drop each other's
// comments: the loser gets repositories.ErrVersionConflict and AddComment
// starts its cycle again. Trees of different postings never contend.
type CommentService struct {
	commentRepo repositories.CommentRepository
	postingRepo repositories.PostingRepository
	opts        Options
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository, postingRepo repositories.PostingRepository, opts Options) *CommentService {
	if opts.WriteAttempts < 1 {
		opts.WriteAttempts = 1
	}
	return &CommentService{
		commentRepo: commentRepo,
		postingRepo: postingRepo,
		opts:        opts,
	}
}

// AddComment adds content to a posting's tree, as a new root when parentID is
// nil and as a reply to *parentID otherwise. It returns the new comment.
func (s *CommentService) AddComment(ctx context.Context, postingID uint, parentID *string, content string) (models.Comment, error) {
	if err := s.requirePosting(ctx, postingID); err != nil {
		return models.Comment{}, err
	}

	for attempt := 1; ; attempt++ {
		var (
			c   models.Comment
			err error
		)
		if parentID == nil {
			c, err = s.AppendRoot(ctx, postingID, content)
		} else {
			c, err = s.AppendReply(ctx, postingID, *parentID, content)
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return c, err
		}
		if attempt >= s.opts.WriteAttempts {
			return models.Comment{}, unavailable("add comment", err)
		}
		logger.Warn.Printf("Comment tree for posting %d changed concurrently, retrying (%d/%d)", postingID, attempt, s.opts.WriteAttempts)
	}
}

// Load returns the tree of a posting. found is false when no comment has been
// posted yet.
func (s *CommentService) Load(ctx context.Context, postingID uint) (tree *models.CommentTree, found bool, err error) {
	ctx, cancel := withTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	tree, found, err = s.commentRepo.FindByPostingID(ctx, postingID)
	if err != nil {
		return nil, false, unavailable("load comments", err)
	}
	return tree, found, nil
}

// CreateWithFirstComment stores a new tree whose only root holds content. It
// fails with repositories.ErrVersionConflict if the posting already has a tree.
func (s *CommentService) CreateWithFirstComment(ctx context.Context, postingID uint, content string) (models.Comment, error) {
	tree := &models.CommentTree{PostingID: postingID, Comments: []models.Comment{}}
	c := commenttree.AppendRootComment(tree, content)
	if err := s.insert(ctx, tree); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// AppendRoot runs one load-mutate-persist cycle adding a top-level comment,
// creating the tree when the posting has none.
func (s *CommentService) AppendRoot(ctx context.Context, postingID uint, content string) (models.Comment, error) {
	tree, found, err := s.Load(ctx, postingID)
	if err != nil {
		return models.Comment{}, err
	}
	if !found {
		return s.CreateWithFirstComment(ctx, postingID, content)
	}

	c := commenttree.AppendRootComment(tree, content)
	if err := s.replace(ctx, tree); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// AppendReply runs one load-mutate-persist cycle adding a reply under
// parentID. Nothing is written when parentID is not in the tree.
func (s *CommentService) AppendReply(ctx context.Context, postingID uint, parentID, content string) (models.Comment, error) {
	tree, found, err := s.Load(ctx, postingID)
	if err != nil {
		return models.Comment{}, err
	}
	if !found {
		return models.Comment{}, ErrCommentNotFound
	}

	c, err := commenttree.AppendReply(tree, parentID, content)
	if err != nil {
		return models.Comment{}, err
	}
	if err := s.replace(ctx, tree); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// GetPostingWithComments returns a posting with the roots of its tree, which
// are empty when nobody has commented yet
func (s *CommentService) GetPostingWithComments(ctx context.Context, postingID uint) (*models.PostingWithComments, error) {
	posting, err := s.getPosting(ctx, postingID)
	if err != nil {
		return nil, err
	}

	tree, found, err := s.Load(ctx, postingID)
	if err != nil {
		return nil, err
	}
	result := &models.PostingWithComments{Posting: *posting, Comments: []models.Comment{}}
	if found {
		result.Comments = tree.Comments
	}
	return result, nil
}

// ListCommentTrees returns every stored tree across all postings
func (s *CommentService) ListCommentTrees(ctx context.Context) ([]models.CommentTree, error) {
	ctx, cancel := withTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	trees, err := s.commentRepo.FindAll(ctx)
	if err != nil {
		return nil, unavailable("list comments", err)
	}
	return trees, nil
}

func (s *CommentService) requirePosting(ctx context.Context, postingID uint) error {
	_, err := s.getPosting(ctx, postingID)
	return err
}

func (s *CommentService) getPosting(ctx context.Context, postingID uint) (*models.Posting, error) {
	ctx, cancel := withTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	posting, err := s.postingRepo.GetPostingByID(ctx, postingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPostingNotFound
		}
		return nil, unavailable("load posting", err)
	}
	return posting, nil
}

func (s *CommentService) insert(ctx context.Context, tree *models.CommentTree) error {
	ctx, cancel := withTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	if err := s.commentRepo.Insert(ctx, tree); err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return err
		}
		return unavailable("create comments", err)
	}
	logger.Info.Printf("Created comment tree for posting %d", tree.PostingID)
	return nil
}

func (s *CommentService) replace(ctx context.Context, tree *models.CommentTree) error {
	ctx, cancel := withTimeout(ctx, s.opts.StoreTimeout)
	defer cancel()

	if err := s.commentRepo.Replace(ctx, tree); err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return err
		}
		return unavailable("save comments", err)
	}
	logger.Info.Printf("Saved comment tree for posting %d (version %d, %d comments)", tree.PostingID, tree.Version, commenttree.Count(tree))
	return nil
}
