package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// SessionCodec turns a user id into the cookie value and back.
type SessionCodec interface {
	Encode(userID uint64) (string, error)
	Decode(token string) (uint64, error)
}

// RawIDCodec stores the decimal user id as the cookie value. The value is neither
// signed nor opaque, so any client can claim any user id.
type RawIDCodec struct{}

func (RawIDCodec) Encode(userID uint64) (string, error) {
	return strconv.FormatUint(userID, 10), nil
}

func (RawIDCodec) Decode(token string) (uint64, error) {
	id, err := strconv.ParseUint(token, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// JWTCodec HS256 签名会话
type JWTCodec struct {
	Secret     []byte
	Expiration time.Duration
}

func NewJWTCodec(secret string, expiration time.Duration) *JWTCodec {
	return &JWTCodec{Secret: []byte(secret), Expiration: expiration}
}

// Encode 生成一个新的 JWT Token
func (c *JWTCodec) Encode(userID uint64) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(c.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// Decode 验证 Token 字符串并解析出用户 ID
func (c *JWTCodec) Decode(tokenString string) (uint64, error) {
	claims := &UserClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.Secret, nil
	}, jwt.WithIssuer(Issuer))

	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == 0 {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}
