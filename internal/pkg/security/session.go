package security

import (
	"Inkwell/internal/api/config"
	"context"
	"fmt"
	"net/http"
	"time"
)

const DefaultCookieName = "user_access_token"

// Revoker 会话吊销, implemented by the redis blacklist
type Revoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Sessions carries the session token in an HttpOnly cookie.
type Sessions struct {
	Codec      SessionCodec
	CookieName string
	MaxAge     time.Duration
}

// NewSessions 按配置构建会话编码
func NewSessions(cfg config.AuthConfig) (*Sessions, error) {
	s := &Sessions{CookieName: cfg.CookieName}
	if s.CookieName == "" {
		s.CookieName = DefaultCookieName
	}
	switch cfg.SessionCodec {
	case "", "raw":
		s.Codec = RawIDCodec{}
	case "jwt":
		s.MaxAge = time.Duration(cfg.JWTExpiration) * time.Hour
		s.Codec = NewJWTCodec(cfg.JWTSecret, s.MaxAge)
	default:
		return nil, fmt.Errorf("unsupported session codec %q", cfg.SessionCodec)
	}
	return s, nil
}

// Signed reports whether tokens expire on their own and can be revoked.
func (s *Sessions) Signed() bool {
	_, ok := s.Codec.(*JWTCodec)
	return ok
}

// Issue 写入会话 Cookie
func (s *Sessions) Issue(w http.ResponseWriter, userID uint64) (string, error) {
	token, err := s.Codec.Encode(userID)
	if err != nil {
		return "", err
	}
	cookie := &http.Cookie{
		Name:     s.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if s.MaxAge > 0 {
		cookie.MaxAge = int(s.MaxAge.Seconds())
	}
	http.SetCookie(w, cookie)
	return token, nil
}

// Clear 删除会话 Cookie
func (s *Sessions) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// Token 读取会话 Cookie, empty when absent
func (s *Sessions) Token(r *http.Request) string {
	c, err := r.Cookie(s.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
