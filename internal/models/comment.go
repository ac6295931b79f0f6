package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment is one node of a posting's reply tree. Replies are nested under
// "comments" both on the wire and in MongoDB.
type Comment struct {
	ID       string    `json:"id" bson:"id"`
	Content  string    `json:"content" bson:"content"`
	Comments []Comment `json:"comments" bson:"comments"`
}

// CommentTree is the MongoDB document holding every comment of one posting
type CommentTree struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	PostingID uint               `json:"postingId" bson:"postingId"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	Version   int64              `json:"version" bson:"version"`
}

// NewComment builds a reply-less comment with a freshly generated ID.
// IDs are ObjectID hex strings: unique, opaque and safe in a URL path.
func NewComment(content string) Comment {
	return Comment{
		ID:       primitive.NewObjectID().Hex(),
		Content:  content,
		Comments: []Comment{},
	}
}

// Normalize replaces nil reply lists with empty ones so the tree always
// encodes "comments" as an array.
func (t *CommentTree) Normalize() {
	if t.Comments == nil {
		t.Comments = []Comment{}
	}
	stack := make([]*Comment, 0, len(t.Comments))
	for i := range t.Comments {
		stack = append(stack, &t.Comments[i])
	}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c.Comments == nil {
			c.Comments = []Comment{}
		}
		for i := range c.Comments {
			stack = append(stack, &c.Comments[i])
		}
	}
}

// CreateCommentRequest is the body of POST /postings/:posting_id[/:comment_id].
// Content may be empty but must be present.
type CreateCommentRequest struct {
	Content *string `json:"content" validate:"required"`
}
