package repository

import (
	"Inkwell/internal/model"
	"context"

	"gorm.io/gorm"
)

type TagRepo interface {
	CRUD[model.Tag]
	// DeleteOrphans 删除没有关联帖子的标签
	DeleteOrphans(ctx context.Context) (int64, error)
}

type tagRepoImpl struct {
	CRUD[model.Tag]
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepo {
	return &tagRepoImpl{
		CRUD: NewCRUD[model.Tag](db, "tag"),
		db:   db,
	}
}

func (s *tagRepoImpl) DeleteOrphans(ctx context.Context) (int64, error) {
	result := conn(ctx, s.db).
		Where("id NOT IN (SELECT tag_id FROM post_tag)").
		Delete(&model.Tag{})
	if result.Error != nil {
		return 0, newStorageError("delete", "tag", result.Error)
	}
	return result.RowsAffected, nil
}
