package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register(context.Background(), "ana@example.com", "password123", "Ana")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// Registration also creates the initial profile row.
	var profile models.UserProfile
	require.NoError(t, db.First(&profile).Error)
	assert.Equal(t, "Ana", profile.DisplayName)

	loginToken, err := svc.Login(context.Background(), "ana@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), "ana@example.com", "password123", "Ana")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "ANA@example.com", "different456", "Ana")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), "ana@example.com", "password123", "Ana")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register(context.Background(), "ana@example.com", "password123", "Ana")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	db := newTestDB(t)
	issuer := NewAuthService(db, "secret-a")
	verifier := NewAuthService(db, "secret-b")

	token, err := issuer.Register(context.Background(), "ana@example.com", "password123", "Ana")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Garbage(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
