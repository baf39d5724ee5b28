package service

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/database"
	"Inkwell/internal/pkg/security"
	"Inkwell/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	users    repository.UserRepo
	roles    repository.RoleRepo
	posts    repository.PostRepo
	tags     repository.TagRepo
	postTags repository.PostTagRepo
	tagSvc   TagService
	postSvc  PostService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.NewMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	env := &testEnv{
		db:       db,
		users:    repository.NewUserRepo(db),
		roles:    repository.NewRoleRepo(db),
		posts:    repository.NewPostRepository(db),
		tags:     repository.NewTagRepository(db),
		postTags: repository.NewPostTagRepo(db),
	}
	env.tagSvc = NewTagService(env.tags, env.postTags)
	env.postSvc = NewPostService(env.posts, env.postTags, env.tagSvc, nil)
	return env
}

func (e *testEnv) addUser(t *testing.T, name string, roleID uint64) *model.User {
	t.Helper()
	user, err := e.users.Add(context.Background(), repository.UserValues{Name: name, Password: "secret", RoleID: roleID})
	require.NoError(t, err)
	return user
}

func (e *testEnv) authService(t *testing.T, cfg config.AuthConfig, revoker security.Revoker) AuthService {
	t.Helper()
	sessions, err := security.NewSessions(cfg)
	require.NoError(t, err)
	verifier, err := security.NewPasswordVerifier(cfg.PasswordScheme)
	require.NoError(t, err)
	return NewAuthService(e.users, e.roles, verifier, sessions, revoker, cfg)
}
