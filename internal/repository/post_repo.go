package repository

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/util"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// PostQuery 帖子列表条件, only published posts are listed
type PostQuery struct {
	AuthorID *uint64
	// Tag is matched as a substring of any tag name, normalised the same way tag
	// names are stored
	Tag string
}

type PostRepo interface {
	CRUD[model.Post]
	CountPublished(ctx context.Context, q PostQuery) (int64, error)
	ListPublished(ctx context.Context, q PostQuery, offset, limit int) ([]*model.Post, error)
	GetFull(ctx context.Context, id uint64) (*model.Post, error)
}

type PostRepoImpl struct {
	CRUD[model.Post]
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		CRUD: NewCRUD[model.Post](db, "post"),
		db:   db,
	}
}

func (s *PostRepoImpl) published(ctx context.Context, q PostQuery) *gorm.DB {
	db := conn(ctx, s.db).Model(&model.Post{}).Where("status = ?", model.PostStatusPublished)
	if q.AuthorID != nil {
		db = db.Where("author = ?", *q.AuthorID)
	}
	if q.Tag != "" {
		// 子查询保证多标签命中时帖子只计一次
		db = db.Where(
			"id IN (SELECT post_tag.post_id FROM post_tag JOIN tag ON tag.id = post_tag.tag_id WHERE LOWER(tag.name) LIKE ? ESCAPE '!')",
			"%"+escapeLike(util.NormalizeTagName(q.Tag))+"%",
		)
	}
	return db
}

func (s *PostRepoImpl) CountPublished(ctx context.Context, q PostQuery) (int64, error) {
	var count int64
	if err := s.published(ctx, q).Count(&count).Error; err != nil {
		return 0, newStorageError("count", "post", err)
	}
	return count, nil
}

func (s *PostRepoImpl) ListPublished(ctx context.Context, q PostQuery, offset, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.published(ctx, q).
		Preload("User").
		Preload("Tags").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, newStorageError("find", "post", err)
	}
	return posts, nil
}

func (s *PostRepoImpl) GetFull(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := conn(ctx, s.db).Preload("User").Preload("Tags").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, newStorageError("find", "post", err)
	}
	return &post, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
