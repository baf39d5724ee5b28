package middleware

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	UserKey   = "user"
	UserIDKey = "user_id"
)

// AuthMiddleware 解析会话 Cookie 并要求已登录
func AuthMiddleware(authSvc service.AuthService, sessions *security.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authSvc.RequireUser(c.Request.Context(), sessions.Token(c.Request))
		if err != nil {
			response.Error(c, err)
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// CurrentUser 当前登录用户, nil for anonymous requests
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

func setUser(c *gin.Context, user *model.User) {
	c.Set(UserKey, user)
	c.Set(UserIDKey, user.ID)
}
