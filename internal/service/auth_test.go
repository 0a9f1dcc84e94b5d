package service

import (
	"context"
	"testing"

	"github.com/forkfeed/forkfeed-backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthForTest(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(testhelpers.NewTestDB(t), "test-secret")
}

func registerInput(suffix string) RegisterInput {
	return RegisterInput{
		Email:     suffix + "@example.com",
		Username:  "user-" + suffix,
		FirstName: "Test",
		LastName:  "User",
		Password:  "s3cretpass",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthForTest(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, registerInput("alice"))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-alice", claims.Username)

	user, err := svc.GetUserByID(ctx, claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "s3cretpass", user.PasswordHash)

	token, err = svc.Login(ctx, "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicate(t *testing.T) {
	svc := newAuthForTest(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("bob"))
	require.NoError(t, err)

	// Same email, different username.
	dup := registerInput("bob")
	dup.Username = "user-bob2"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrConstraint)

	// Same username, different email.
	dup = registerInput("bob")
	dup.Email = "bob2@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthForTest(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("carol"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, "carol@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "s3cretpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsForgeries(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewAuthService(db, "test-secret")
	other := NewAuthService(db, "other-secret")
	ctx := context.Background()

	token, err := svc.Register(ctx, registerInput("dave"))
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
