package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"feedengine/internal/config"
	"feedengine/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret-that-is-long-enough-for-hs256",
		Port:             "0",
		Env:              "test",
		DBDriver:         "sqlite",
		CookieName:       "access_token",
		CookieSameSite:   "lax",
		FeedDefaultLimit: 3,
	}
}

func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	s, err := NewServerWithDeps(testConfig(), testutil.NewSQLiteDB(t), nil)
	require.NoError(t, err)
	return s, s.App()
}

type apiResponse struct {
	status  int
	body    map[string]any
	cookies []*http.Cookie
}

func doRequest(t *testing.T, app *fiber.App, method, path string, payload any, cookie *http.Cookie) apiResponse {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	out := apiResponse{status: resp.StatusCode, cookies: resp.Cookies()}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out.body))
	}
	return out
}

func sessionCookie(t *testing.T, res apiResponse) *http.Cookie {
	t.Helper()
	for _, c := range res.cookies {
		if c.Name == "access_token" && c.Value != "" {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

// signUp registers and logs in a user, returning the session cookie.
func signUp(t *testing.T, app *fiber.App, name, email string) *http.Cookie {
	t.Helper()
	res := doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"name": name, "email": email, "password": "secret1",
	}, nil)
	require.Equal(t, fiber.StatusCreated, res.status, "register: %v", res.body)

	res = doRequest(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": "secret1",
	}, nil)
	require.Equal(t, fiber.StatusOK, res.status, "login: %v", res.body)
	return sessionCookie(t, res)
}
