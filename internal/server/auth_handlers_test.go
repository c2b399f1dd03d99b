package server

import (
	"net/http"
	"testing"

	"feedengine/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	_, app := newTestServer(t)

	t.Run("Success", func(t *testing.T) {
		res := doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]string{
			"name": "Ann", "email": "ann@example.com", "password": "secret1",
		}, nil)
		assert.Equal(t, fiber.StatusCreated, res.status)
		assert.Equal(t, "User registered successfully", res.body["message"])
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		res := doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]string{
			"name": "Other", "email": "ANN@example.com", "password": "secret1",
		}, nil)
		assert.Equal(t, fiber.StatusBadRequest, res.status)
		assert.Equal(t, false, res.body["success"])
		assert.EqualValues(t, 400, res.body["status"])
		assert.Equal(t, "Email already registered", res.body["message"])
	})

	t.Run("Missing Fields", func(t *testing.T) {
		res := doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]string{
			"email": "bob@example.com",
		}, nil)
		assert.Equal(t, fiber.StatusBadRequest, res.status)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		res := doRequest(t, app, http.MethodPost, "/api/auth/register", "not an object", nil)
		assert.Equal(t, fiber.StatusBadRequest, res.status)
		assert.Equal(t, "Invalid request body", res.body["message"])
	})
}

func TestLogin(t *testing.T) {
	_, app := newTestServer(t)
	res := doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ann", "email": "ann@example.com", "password": "secret1",
	}, nil)
	require.Equal(t, fiber.StatusCreated, res.status)

	t.Run("Success Sets Cookie", func(t *testing.T) {
		res := doRequest(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "ann@example.com", "password": "secret1",
		}, nil)
		require.Equal(t, fiber.StatusOK, res.status)
		assert.Equal(t, "Ann", res.body["name"])
		assert.NotContains(t, res.body, "password")

		cookie := sessionCookie(t, res)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, 7*24*60*60, cookie.MaxAge)
		assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		res := doRequest(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "ann@example.com", "password": "wrong-password",
		}, nil)
		assert.Equal(t, fiber.StatusUnauthorized, res.status)
		assert.Equal(t, "Invalid credentials", res.body["message"])
		assert.Empty(t, res.cookies)
	})

	t.Run("Unknown User", func(t *testing.T) {
		res := doRequest(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "nobody@example.com", "password": "secret1",
		}, nil)
		assert.Equal(t, fiber.StatusUnauthorized, res.status)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		res := doRequest(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"email": "ann@example.com",
		}, nil)
		assert.Equal(t, fiber.StatusBadRequest, res.status)
	})
}

func TestCurrentUserAndLogout(t *testing.T) {
	_, app := newTestServer(t)
	cookie := signUp(t, app, "Ann", "ann@example.com")

	res := doRequest(t, app, http.MethodGet, "/api/auth/user", nil, cookie)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, "ann@example.com", res.body["email"])

	res = doRequest(t, app, http.MethodGet, "/api/auth/user", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.Equal(t, "Authentication required", res.body["message"])

	res = doRequest(t, app, http.MethodGet, "/api/auth/user", nil,
		&http.Cookie{Name: "access_token", Value: "forged.token.value"})
	assert.Equal(t, fiber.StatusUnauthorized, res.status)

	res = doRequest(t, app, http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, fiber.StatusOK, res.status)
	var cleared *http.Cookie
	for _, c := range res.cookies {
		if c.Name == "access_token" {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.HttpOnly)
}

func TestCurrentUser_DeletedAccount(t *testing.T) {
	s, app := newTestServer(t)
	cookie := signUp(t, app, "Ann", "ann@example.com")
	require.NoError(t, s.db.Exec("DELETE FROM users").Error)

	res := doRequest(t, app, http.MethodGet, "/api/auth/user", nil, cookie)
	assert.Equal(t, fiber.StatusNotFound, res.status)
}

func TestCreatePost_DeletedAccount(t *testing.T) {
	s, app := newTestServer(t)
	cookie := signUp(t, app, "Ann", "ann@example.com")
	require.NoError(t, s.db.Exec("DELETE FROM users").Error)

	res := doRequest(t, app, http.MethodPost, "/api/posts", map[string]string{"text": "orphan"}, cookie)
	assert.Equal(t, fiber.StatusNotFound, res.status)
	assert.Equal(t, false, res.body["success"])

	var count int64
	require.NoError(t, s.db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}
