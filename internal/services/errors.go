package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/threadboard/backend/internal/commenttree"
)

var (
	// ErrPostingNotFound is returned when a posting ID has no relational record
	ErrPostingNotFound = errors.New("posting not found")

	// ErrMemberNotFound is returned when a member ID has no relational record
	ErrMemberNotFound = errors.New("member not found")

	// ErrCommentNotFound is returned when a reply targets a comment that does
	// not exist anywhere in the posting's tree, including when there is no tree
	ErrCommentNotFound = commenttree.ErrCommentNotFound

	// ErrStoreUnavailable wraps failures of either store, including timeouts and
	// running out of retries after repeated write conflicts
	ErrStoreUnavailable = errors.New("store unavailable")
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

// withTimeout bounds a single store call. A zero timeout leaves ctx as is.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
