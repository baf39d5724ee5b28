package repository

import (
	"Inkwell/internal/model"

	"gorm.io/gorm"
)

type PostTagRepo interface {
	CRUD[model.PostTag]
}

func NewPostTagRepo(db *gorm.DB) PostTagRepo {
	return NewCRUD[model.PostTag](db, "post_tag")
}
