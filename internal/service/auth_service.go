package service

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"slices"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// DefaultAdminRoleIDs 管理员角色 (admin, superadmin)
var DefaultAdminRoleIDs = []uint64{3, 4}

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) error
	// Authenticate returns nil when the name is unknown or the password does not match.
	Authenticate(ctx context.Context, name, password string) (*model.User, error)
	// CurrentUser resolves a session token. A missing, undecodable or revoked token
	// and an unknown user all yield nil without error.
	CurrentUser(ctx context.Context, token string) (*model.User, error)
	RequireUser(ctx context.Context, token string) (*model.User, error)
	RequireAdmin(user *model.User) (*model.User, error)
	Logout(ctx context.Context, token string) error
	ListUsers(ctx context.Context) ([]*dto.UserDTO, error)
	Me(user *model.User) *dto.UserInfoDTO
}

type authServiceImpl struct {
	userRepo      repository.UserRepo
	roleRepo      repository.RoleRepo
	verifier      security.PasswordVerifier
	sessions      *security.Sessions
	revoker       security.Revoker
	adminRoleIDs  []uint64
	defaultRoleID uint64
}

// NewAuthService revoker may be nil, in which case logout only clears the cookie.
func NewAuthService(userRepo repository.UserRepo, roleRepo repository.RoleRepo, verifier security.PasswordVerifier, sessions *security.Sessions, revoker security.Revoker, cfg config.AuthConfig) AuthService {
	adminRoleIDs := cfg.AdminRoleIDs
	if len(adminRoleIDs) == 0 {
		adminRoleIDs = DefaultAdminRoleIDs
	}
	defaultRoleID := cfg.DefaultRoleID
	if defaultRoleID == 0 {
		defaultRoleID = model.DefaultRoleID
	}
	return &authServiceImpl{
		userRepo:      userRepo,
		roleRepo:      roleRepo,
		verifier:      verifier,
		sessions:      sessions,
		revoker:       revoker,
		adminRoleIDs:  adminRoleIDs,
		defaultRoleID: defaultRoleID,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) error {
	if req.Password != req.ConfirmPassword {
		return ErrParamInvalid
	}

	existing, err := s.userRepo.FindOne(ctx, repository.UserFilter{Name: &req.Name})
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserExist
	}

	role, err := s.roleRepo.FindByID(ctx, s.defaultRoleID)
	if err != nil {
		return err
	}
	if role == nil {
		return fmt.Errorf("default role %d is not seeded", s.defaultRoleID)
	}

	hashed, err := s.verifier.Hash(req.Password)
	if err != nil {
		return err
	}
	user, err := s.userRepo.Add(ctx, repository.UserValues{
		Name:     req.Name,
		Password: hashed,
		RoleID:   s.defaultRoleID,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserExist
		}
		return err
	}

	log.InfoContext(ctx, "user registered", "user_id", user.ID, "name", user.Name)
	return nil
}

func (s *authServiceImpl) Authenticate(ctx context.Context, name, password string) (*model.User, error) {
	user, err := s.userRepo.FindOne(ctx, repository.UserFilter{Name: &name})
	if err != nil {
		return nil, err
	}
	if user == nil || !s.verifier.Verify(password, user.Password) {
		return nil, nil
	}
	return user, nil
}

func (s *authServiceImpl) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}
	userID, err := s.sessions.Codec.Decode(token)
	if err != nil {
		log.DebugContext(ctx, "session token rejected", "err", err)
		return nil, nil
	}
	if s.revoker != nil && s.sessions.Signed() {
		revoked, err := s.revoker.IsRevoked(ctx, token)
		if err != nil {
			log.WarnContext(ctx, "session blacklist unavailable", "err", err)
			return nil, nil
		}
		if revoked {
			return nil, nil
		}
	}
	return s.userRepo.FindByIDWithRole(ctx, userID)
}

func (s *authServiceImpl) RequireUser(ctx context.Context, token string) (*model.User, error) {
	user, err := s.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func (s *authServiceImpl) RequireAdmin(user *model.User) (*model.User, error) {
	if user == nil {
		return nil, ErrUnauthenticated
	}
	if !slices.Contains(s.adminRoleIDs, user.RoleID) {
		return nil, ErrForbidden
	}
	return user, nil
}

func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" || s.revoker == nil || !s.sessions.Signed() {
		return nil
	}
	if _, err := s.sessions.Codec.Decode(token); err != nil {
		return nil
	}
	return s.revoker.Revoke(ctx, token, s.sessions.MaxAge)
}

func (s *authServiceImpl) ListUsers(ctx context.Context) ([]*dto.UserDTO, error) {
	users, err := s.userRepo.FindAllWithRole(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.UserDTO, 0, len(users))
	if err = copier.Copy(&result, &users); err != nil {
		return nil, err
	}
	for i, user := range users {
		result[i].RoleName = user.Role.Name
	}
	return result, nil
}

func (s *authServiceImpl) Me(user *model.User) *dto.UserInfoDTO {
	return &dto.UserInfoDTO{
		ID:       user.ID,
		Name:     user.Name,
		RoleID:   user.RoleID,
		RoleName: user.Role.Name,
	}
}
