package model

import (
	"time"
)

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// ValidPostStatus reports whether s is one of the two post states.
func ValidPostStatus(s string) bool {
	return s == PostStatusDraft || s == PostStatusPublished
}

type Post struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);uniqueIndex:idx_post_title;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Content     string    `gorm:"type:text" json:"content"`
	Status      string    `gorm:"type:varchar(20);not null;default:published" json:"status"`
	Author      uint64    `gorm:"not null;index:idx_post_author" json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 关联关系
	User User  `gorm:"foreignKey:Author;references:ID" json:"-"`
	Tags []Tag `gorm:"many2many:post_tag;joinForeignKey:PostID;joinReferences:TagID" json:"tags"`
}

func (Post) TableName() string {
	return "post"
}
