package dto

import "time"

// UserInfoDTO /auth/me
type UserInfoDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name"`
	RoleID   uint64 `json:"role_id"`
	RoleName string `json:"role_name"`
}

// UserDTO /auth/all_users, password is never exposed
type UserDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	RoleID    uint64    `json:"role_id"`
	RoleName  string    `json:"role_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
