package models

import "time"

// Posting is a forum posting stored in PostgreSQL
type Posting struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"not null"`
	Content    string    `json:"content" gorm:"not null"`
	WhenPosted time.Time `json:"when_posted" gorm:"not null"`
}

func (Posting) TableName() string { return "posting" }

// MemberPosting links a member to a posting they authored
type MemberPosting struct {
	MemberID  uint `json:"member_id" gorm:"primaryKey"`
	PostingID uint `json:"posting_id" gorm:"primaryKey;index"`
}

func (MemberPosting) TableName() string { return "member_posting" }

// PostingWithComments is a posting together with the roots of its comment tree
type PostingWithComments struct {
	Posting
	Comments []Comment `json:"comments"`
}

// CreatePostingRequest defines the request body for creating a new posting
type CreatePostingRequest struct {
	Title      string     `json:"title" validate:"required,max=200"`
	Content    string     `json:"content" validate:"required"`
	WhenPosted *time.Time `json:"when_posted,omitempty"`
	MemberID   uint       `json:"member_id" validate:"required"`
}
