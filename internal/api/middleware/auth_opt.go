package middleware

import (
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入用户，失败或缺失则按匿名处理
func AuthOptionalMiddleware(authSvc service.AuthService, sessions *security.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authSvc.CurrentUser(c.Request.Context(), sessions.Token(c.Request))
		if err != nil {
			response.Error(c, err)
			return
		}
		if user != nil {
			setUser(c, user)
		}

		c.Next()
	}
}
