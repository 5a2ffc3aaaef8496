package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreatesUserAndReturnsToken(t *testing.T) {
	app := newTestApp(t, recipeProvider(t))

	token := app.registerUser(t, "ana@example.com")
	assert.NotEmpty(t, token)
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	app := newTestApp(t, recipeProvider(t))
	app.registerUser(t, "ana@example.com")

	w := app.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":        "ana@example.com",
		"password":     "different456",
		"display_name": "Ana Again",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_RejectsInvalidBody(t *testing.T) {
	app := newTestApp(t, recipeProvider(t))

	w := app.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_Succeeds(t *testing.T) {
	app := newTestApp(t, recipeProvider(t))
	app.registerUser(t, "ana@example.com")

	w := app.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ana@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["token"])
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newTestApp(t, recipeProvider(t))
	app.registerUser(t, "ana@example.com")

	w := app.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
