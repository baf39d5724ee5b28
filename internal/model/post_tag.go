package model

import "time"

// PostTag is the join row between Post and Tag; a pair appears at most once and
// disappears with either side.
type PostTag struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	PostID    uint64    `gorm:"not null;uniqueIndex:uq_post_tag,priority:1" json:"post_id"`
	TagID     uint64    `gorm:"not null;uniqueIndex:uq_post_tag,priority:2;index:idx_post_tag_tag_id" json:"tag_id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Post *Post `gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Tag  *Tag  `gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PostTag) TableName() string {
	return "post_tag"
}
