package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc  service.AuthService
	sessions *security.Sessions
}

func NewAuthHandler(authSvc service.AuthService, sessions *security.Sessions) *AuthHandler {
	return &AuthHandler{
		authSvc:  authSvc,
		sessions: sessions,
	}
}

func (s *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.authSvc.Register(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.MessageDTO{Message: "You were successfully registered"})
}

func (s *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := s.authSvc.Authenticate(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	if user == nil {
		response.Error(c, service.ErrIncorrectCredentials)
		return
	}

	if _, err = s.sessions.Issue(c.Writer, user.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.LoginResultDTO{Ok: true, Message: "Successful authorization"})
}

func (s *AuthHandler) Logout(c *gin.Context) {
	if err := s.authSvc.Logout(c.Request.Context(), s.sessions.Token(c.Request)); err != nil {
		response.Error(c, err)
		return
	}
	s.sessions.Clear(c.Writer)
	response.Success(c, dto.MessageDTO{Message: "Successfully logout"})
}

func (s *AuthHandler) Me(c *gin.Context) {
	user, ok := c.Get("user")
	if !ok {
		response.Error(c, service.ErrUnauthenticated)
		return
	}
	response.Success(c, s.authSvc.Me(user.(*model.User)))
}

func (s *AuthHandler) AllUsers(c *gin.Context) {
	users, err := s.authSvc.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}
