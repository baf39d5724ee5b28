package repository

import (
	"Inkwell/internal/model"

	"gorm.io/gorm"
)

type RoleRepo interface {
	CRUD[model.Role]
}

func NewRoleRepo(db *gorm.DB) RoleRepo {
	return NewCRUD[model.Role](db, "role")
}
