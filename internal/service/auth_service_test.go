package service

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: map[string]time.Duration{}}
}

func (f *fakeRevoker) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[token] = ttl
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.revoked[token]
	return ok, nil
}

var (
	rawAuth = config.AuthConfig{SessionCodec: "raw", PasswordScheme: "plain"}
	jwtAuth = config.AuthConfig{SessionCodec: "jwt", JWTSecret: "test-secret", JWTExpiration: 1, PasswordScheme: "bcrypt"}
)

func register(t *testing.T, svc AuthService, name, password string) {
	t.Helper()
	require.NoError(t, svc.Register(context.Background(), &dto.RegisterDTO{
		Name: name, Password: password, ConfirmPassword: password,
	}))
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)
	svc := env.authService(t, rawAuth, nil)
	ctx := context.Background()

	register(t, svc, "alice", "secret1")

	user, err := env.users.FindByIDWithRole(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, model.DefaultRoleID, user.RoleID)
	assert.Equal(t, "user", user.Role.Name)

	err = svc.Register(ctx, &dto.RegisterDTO{Name: "alice", Password: "other12", ConfirmPassword: "other12"})
	assert.ErrorIs(t, err, ErrUserExist)

	err = svc.Register(ctx, &dto.RegisterDTO{Name: "bob", Password: "secret1", ConfirmPassword: "secret2"})
	assert.ErrorIs(t, err, ErrParamInvalid)
	users, err := env.users.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterWithoutDefaultRole(t *testing.T) {
	env := newTestEnv(t)
	svc := env.authService(t, config.AuthConfig{SessionCodec: "raw", DefaultRoleID: 9}, nil)

	err := svc.Register(context.Background(), &dto.RegisterDTO{Name: "alice", Password: "secret1", ConfirmPassword: "secret1"})
	assert.ErrorContains(t, err, "default role 9")
}

func TestRegisterHashesWithBcrypt(t *testing.T) {
	env := newTestEnv(t)
	svc := env.authService(t, jwtAuth, nil)
	ctx := context.Background()

	register(t, svc, "alice", "secret1")

	users, err := env.users.FindAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.NotEqual(t, "secret1", users[0].Password)

	user, err := svc.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.NotNil(t, user)
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	svc := env.authService(t, rawAuth, nil)
	ctx := context.Background()
	register(t, svc, "alice", "secret1")

	user, err := svc.Authenticate(ctx, "alice", "secret1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Name)

	user, err = svc.Authenticate(ctx, "alice", "wrong")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.Authenticate(ctx, "nobody", "secret1")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCurrentUserRawCodec(t *testing.T) {
	env := newTestEnv(t)
	svc := env.authService(t, rawAuth, nil)
	ctx := context.Background()
	register(t, svc, "alice", "secret1")

	user, err := svc.CurrentUser(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Name)

	for _, token := range []string{"", "abc", "0", "-1", "42"} {
		user, err = svc.CurrentUser(ctx, token)
		require.NoError(t, err, token)
		assert.Nil(t, user, token)
	}

	_, err = svc.RequireUser(ctx, "abc")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCurrentUserJWTAndLogout(t *testing.T) {
	env := newTestEnv(t)
	revoker := newFakeRevoker()
	svc := env.authService(t, jwtAuth, revoker)
	ctx := context.Background()
	register(t, svc, "alice", "secret1")

	impl := svc.(*authServiceImpl)
	token, err := impl.sessions.Codec.Encode(1)
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, user)

	user, err = svc.CurrentUser(ctx, "1")
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, svc.Logout(ctx, token))
	assert.Equal(t, time.Hour, revoker.revoked[token])

	user, err = svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, svc.Logout(ctx, "garbage"))
	assert.Len(t, revoker.revoked, 1)
}

func TestCurrentUserRevokerUnavailable(t *testing.T) {
	env := newTestEnv(t)
	revoker := newFakeRevoker()
	svc := env.authService(t, jwtAuth, revoker)
	ctx := context.Background()
	register(t, svc, "alice", "secret1")

	token, err := svc.(*authServiceImpl).sessions.Codec.Encode(1)
	require.NoError(t, err)
	revoker.err = errors.New("connection refused")

	user, err := svc.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestLogoutRawCodecIsNoop(t *testing.T) {
	env := newTestEnv(t)
	revoker := newFakeRevoker()
	svc := env.authService(t, rawAuth, revoker)

	require.NoError(t, svc.Logout(context.Background(), "1"))
	assert.Empty(t, revoker.revoked)
}

func TestRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	svc := env.authService(t, rawAuth, nil)

	_, err := svc.RequireAdmin(nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	for roleID, wantErr := range map[uint64]error{1: ErrForbidden, 2: ErrForbidden, 3: nil, 4: nil} {
		user, err := svc.RequireAdmin(&model.User{ID: 7, RoleID: roleID})
		if wantErr != nil {
			assert.ErrorIs(t, err, wantErr, "role %d", roleID)
			assert.Nil(t, user)
			continue
		}
		require.NoError(t, err, "role %d", roleID)
		assert.Equal(t, uint64(7), user.ID)
	}

	custom := env.authService(t, config.AuthConfig{SessionCodec: "raw", AdminRoleIDs: []uint64{2}}, nil)
	_, err = custom.RequireAdmin(&model.User{RoleID: 2})
	assert.NoError(t, err)
	_, err = custom.RequireAdmin(&model.User{RoleID: 3})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListUsersAndMe(t *testing.T) {
	env := newTestEnv(t)
	svc := env.authService(t, rawAuth, nil)
	ctx := context.Background()
	register(t, svc, "alice", "secret1")
	register(t, svc, "bobby", "secret2")

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Name)
	assert.Equal(t, "bobby", users[1].Name)
	assert.Equal(t, model.DefaultRoleID, users[1].RoleID)
	assert.Equal(t, "user", users[1].RoleName)
	assert.False(t, users[0].CreatedAt.IsZero())

	me, err := svc.CurrentUser(ctx, "2")
	require.NoError(t, err)
	info := svc.Me(me)
	assert.Equal(t, &dto.UserInfoDTO{ID: 2, Name: "bobby", RoleID: 1, RoleName: "user"}, info)
}
