package security

import (
	"github.com/golang-jwt/jwt/v5"
)

const Issuer = "Inkwell"

// UserClaims 会话 Token 中包含的业务信息
type UserClaims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}
