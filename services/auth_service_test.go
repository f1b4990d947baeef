package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/team-manager/models"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()
	valid := RegisterInput{Username: "li", Password: "secret1", Role: "player", RealName: "Li Wei", StudentID: "2021001"}

	tests := []struct {
		name    string
		mutate  func(in *RegisterInput)
		wantErr error
	}{
		{name: "valid player"},
		{name: "role is case insensitive", mutate: func(in *RegisterInput) { in.Role = " Captain " }},
		{name: "unknown role", mutate: func(in *RegisterInput) { in.Role = "goalkeeper" }, wantErr: ErrUnknownRole},
		{name: "short password", mutate: func(in *RegisterInput) { in.Password = "12345" }, wantErr: ErrPasswordTooShort},
		{name: "missing real name", mutate: func(in *RegisterInput) { in.RealName = "  " }, wantErr: ErrValidation},
		{name: "missing student id", mutate: func(in *RegisterInput) { in.StudentID = "" }, wantErr: ErrValidation},
		{name: "missing username", mutate: func(in *RegisterInput) { in.Username = "" }, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			in := valid
			if tt.mutate != nil {
				tt.mutate(&in)
			}

			user, err := env.svc.Auth.Register(ctx, in)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Equal(t, "validation", Kind(err))
				assert.Empty(t, env.store.users, "nothing must be persisted")
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, user.ID)
			assert.NotEqual(t, in.Password, user.PasswordHash)
			assert.True(t, user.Role.IsValid())
		})
	}
}

func TestRegisterMissingFieldReportsField(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Auth.Register(context.Background(), RegisterInput{Username: "li", Password: "secret1", Role: "player"})

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "required", fields["real_name"])
	assert.Equal(t, "required", fields["student_id"])
}

func TestRegisterDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.member(t, "li", models.RolePlayer)

	_, err := env.svc.Auth.Register(context.Background(), RegisterInput{
		Username: "li", Password: "secret2", Role: "coach", RealName: "Other", StudentID: "2",
	})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Len(t, env.store.users, 1)
}

func TestLoginAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.member(t, "cap", models.RoleCaptain)

	res, err := env.svc.Auth.Login(ctx, LoginInput{Username: "cap", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	assert.Empty(t, res.User.PasswordHash)
	assert.WithinDuration(t, time.Now().Add(time.Hour), res.ExpiresAt, time.Minute)

	session, err := env.svc.Auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, session.UserID)
	assert.Equal(t, "cap", session.Username)
	assert.Equal(t, models.RoleCaptain, session.Role)
	assert.NotEmpty(t, session.TokenID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.member(t, "cap", models.RoleCaptain)

	for _, in := range []LoginInput{
		{Username: "cap", Password: "wrong-pass"},
		{Username: "nobody", Password: "secret1"},
		{Username: "", Password: ""},
	} {
		_, err := env.svc.Auth.Login(ctx, in)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.ErrorIs(t, err, ErrUnauthorized)
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.member(t, "cap", models.RoleCaptain)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1, "role": "captain", "jti": "x", "exp": time.Now().Add(time.Hour).Unix(),
	})
	foreignToken, err := foreign.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	badRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 1, "role": "goalkeeper", "jti": "x", "exp": time.Now().Add(time.Hour).Unix(),
	})
	badRoleToken, err := badRole.SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-jwt",
		"empty":        "",
		"wrong secret": foreignToken,
		"unknown role": badRoleToken,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := env.svc.Auth.Authenticate(ctx, token)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.member(t, "cap", models.RoleCaptain)

	expiring := NewAuthService(memTx{env.store}, memUsers{env.store}, memSessions{env.store}, testSecret, -time.Minute)
	res, err := expiring.Login(ctx, LoginInput{Username: "cap", Password: "secret1"})
	require.NoError(t, err)

	_, err = expiring.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.member(t, "p1", models.RolePlayer)

	res, err := env.svc.Auth.Login(ctx, LoginInput{Username: "p1", Password: "secret1"})
	require.NoError(t, err)
	session, err := env.svc.Auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, env.svc.Auth.Logout(ctx, session))

	_, err = env.svc.Auth.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
	assert.ErrorIs(t, err, ErrUnauthorized)

	assert.ErrorIs(t, env.svc.Auth.Logout(ctx, models.Session{}), ErrUnauthorized)
}
