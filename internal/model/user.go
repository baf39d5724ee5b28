package model

import (
	"time"
)

const DefaultRoleID uint64 = 1

type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(50);uniqueIndex:idx_user_name;not null" json:"name"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	RoleID    uint64    `gorm:"not null;default:1;index:idx_user_role_id" json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联关系
	Role  Role   `gorm:"foreignKey:RoleID;references:ID" json:"-"`
	Posts []Post `gorm:"foreignKey:Author;references:ID" json:"-"`
}

func (User) TableName() string {
	return "user"
}
