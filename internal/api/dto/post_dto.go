package dto

import "time"

// PostCreateDTO 发帖请求
type PostCreateDTO struct {
	Title       string   `json:"title" binding:"required" validate:"min=1,max=255"`
	Content     string   `json:"content" binding:"required" validate:"min=1"`
	Description string   `json:"description" binding:"required" validate:"min=1"`
	Tags        []string `json:"tags" validate:"dive,min=1,max=20"`
	// 可选, 缺省为 published
	Status string `json:"status" validate:"omitempty,oneof=draft published"`
}

type PostCreatedDTO struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	PostID  uint64 `json:"post_id"`
}

type TagDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// PostFullDTO 帖子完整信息, author fields come from the joined user
type PostFullDTO struct {
	ID          uint64    `json:"id"`
	Author      uint64    `json:"author"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Status      string    `json:"status"`
	Tags        []TagDTO  `json:"tags"`
	AuthorID    *uint64   `json:"author_id"`
	AuthorName  *string   `json:"author_name"`
}

type PostListDTO struct {
	Page         int            `json:"page"`
	TotalPages   int            `json:"total_pages"`
	NumberOfRows int64          `json:"number_of_rows"`
	Posts        []*PostFullDTO `json:"posts"`
}

// PostNotFoundDTO is returned in place of a post or an empty list
type PostNotFoundDTO struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// PostListQueryDTO GET /posts 查询参数
type PostListQueryDTO struct {
	AuthorID *uint64 `form:"author_id"`
	Tag      string  `form:"tag"`
	Page     *int    `form:"page" validate:"omitempty,min=1"`
	PageSize *int    `form:"page_size" validate:"omitempty,min=3,max=100"`
}

type ChangeStatusDTO struct {
	NewStatus string `json:"new_status" form:"new_status"`
}

type PostTagPair struct {
	PostID *uint64 `json:"post_id"`
	TagID  *uint64 `json:"tag_id"`
}
