package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "A@X.com",
		Password: "longpassword",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "a@x.com", user.Email, "email is normalized to lower case")
	assert.NotEqual(t, "longpassword", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, userRepo := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{
		Username: "bob",
		Email:    "bob@x.com",
		Password: "short12",
	})
	assert.ErrorIs(t, err, ErrWeakCredential)

	existing, err := userRepo.GetByEmail(ctx, "bob@x.com")
	require.NoError(t, err)
	assert.Nil(t, existing, "no record may be created for a rejected password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, userRepo := newTestAuthService(t)
	ctx := context.Background()

	mustRegister(t, svc, "alice", "a@x.com", "longpassword")

	_, err := svc.Register(ctx, RegisterInput{
		Username: "mallory",
		Email:    "a@x.com",
		Password: "otherpassword",
	})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)

	existing, err := userRepo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, "alice", existing.Username, "the original record survives")
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	registered := mustRegister(t, svc, "alice", "a@x.com", "longpassword")

	result, err := svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "longpassword"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, registered.ID, result.User.ID)

	userID, err := svc.ResolveSession(ctx, result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	mustRegister(t, svc, "alice", "a@x.com", "longpassword")

	_, wrongPassword := svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "wrongpassword"})
	_, unknownEmail := svc.Login(ctx, LoginInput{Email: "ghost@x.com", Password: "longpassword"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	// Same sentinel, same message: the caller cannot tell which part failed.
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	mustRegister(t, svc, "alice", "a@x.com", "longpassword")
	result, err := svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "longpassword"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, result.SessionID))
	_, err = svc.ResolveSession(ctx, result.SessionID)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	assert.NoError(t, svc.Logout(ctx, result.SessionID))
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestResolveSessionRejectsUnknown(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.ResolveSession(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.ResolveSession(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
