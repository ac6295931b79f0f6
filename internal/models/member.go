package models

// Member is a forum member stored in PostgreSQL
type Member struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name" gorm:"not null"`
	LastName  string `json:"last_name" gorm:"not null"`
	Email     string `json:"email" gorm:"uniqueIndex;not null"`
}

func (Member) TableName() string { return "member" }
