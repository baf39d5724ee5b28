package middleware

import (
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware 检查当前用户是否为管理员, must run after AuthMiddleware
func AdminMiddleware(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := authSvc.RequireAdmin(CurrentUser(c)); err != nil {
			response.Error(c, err)
			return
		}

		c.Next()
	}
}
