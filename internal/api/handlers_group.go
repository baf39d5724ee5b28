package api

import (
	"Inkwell/internal/api/handler"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/service"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例及鉴权中间件依赖
type HandlersGroup struct {
	PostHandler *handler.PostHandler
	AuthHandler *handler.AuthHandler

	AuthService service.AuthService
	Sessions    *security.Sessions
}
