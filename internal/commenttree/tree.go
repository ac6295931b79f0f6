package commenttree

import (
	"errors"

	"github.com/anonto42/threadboard/backend/internal/models"
)

// ErrCommentNotFound is returned when a reply targets an ID that is not in the tree
var ErrCommentNotFound = errors.New("comment not found")

// AppendRootComment adds a new top-level comment to tree and returns it
func AppendRootComment(tree *models.CommentTree, content string) models.Comment {
	c := models.NewComment(content)
	tree.Comments = append(tree.Comments, c)
	return c
}

// AppendReply adds a new comment under the first node whose ID is parentID.
// If no node matches, tree is left untouched and ErrCommentNotFound is returned.
func AppendReply(tree *models.CommentTree, parentID, content string) (models.Comment, error) {
	parent := Find(tree, parentID)
	if parent == nil {
		return models.Comment{}, ErrCommentNotFound
	}
	c := models.NewComment(content)
	parent.Comments = append(parent.Comments, c)
	return c, nil
}

// Find returns a pointer to the first node, in pre-order, whose ID is id.
// The pointer is only valid until the slice holding the node is appended to.
func Find(tree *models.CommentTree, id string) *models.Comment {
	if tree == nil || id == "" {
		return nil
	}

	// Push siblings in reverse so the earliest is popped first.
	stack := make([]*models.Comment, 0, len(tree.Comments))
	for i := len(tree.Comments) - 1; i >= 0; i-- {
		stack = append(stack, &tree.Comments[i])
	}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node.ID == id {
			return node
		}
		for i := len(node.Comments) - 1; i >= 0; i-- {
			stack = append(stack, &node.Comments[i])
		}
	}
	return nil
}

// Count returns the number of comments in tree at every depth.
func Count(tree *models.CommentTree) int {
	if tree == nil {
		return 0
	}
	n := 0
	stack := make([][]models.Comment, 0, 8)
	stack = append(stack, tree.Comments)
	for len(stack) > 0 {
		level := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n += len(level)
		for i := range level {
			if len(level[i].Comments) > 0 {
				stack = append(stack, level[i].Comments)
			}
		}
	}
	return n
}
