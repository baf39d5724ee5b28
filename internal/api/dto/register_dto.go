package dto

type RegisterDTO struct {
	Name            string `json:"name" binding:"required" validate:"min=3,max=20"`
	Password        string `json:"password" binding:"required" validate:"min=5,max=50"`
	ConfirmPassword string `json:"confirm_password" binding:"required" validate:"min=5,max=50,eqfield=Password"`
}

// LoginDTO 用户名&密码登录
type LoginDTO struct {
	Name     string `json:"name" binding:"required" validate:"min=3,max=20"`
	Password string `json:"password" binding:"required" validate:"min=5,max=50"`
}
