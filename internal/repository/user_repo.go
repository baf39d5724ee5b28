package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	CRUD[model.User]
	FindByIDWithRole(ctx context.Context, id uint64) (*model.User, error)
	FindAllWithRole(ctx context.Context) ([]*model.User, error)
}

type UserRepoImpl struct {
	CRUD[model.User]
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{
		CRUD: NewCRUD[model.User](db, "user"),
		db:   db,
	}
}

func (s *UserRepoImpl) FindByIDWithRole(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := conn(ctx, s.db).
		Preload("Role").
		First(user, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, newStorageError("find", "user", result.Error)
	}
	return user, nil
}

func (s *UserRepoImpl) FindAllWithRole(ctx context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0)
	result := conn(ctx, s.db).
		Preload("Role").
		Order("id").
		Find(&users)
	if result.Error != nil {
		return nil, newStorageError("find", "user", result.Error)
	}
	return users, nil
}
