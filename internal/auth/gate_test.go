package auth

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGateApp(t *testing.T) (*fiber.App, *TokenManager) {
	t.Helper()

	tm := NewTokenManager("gate-test-secret", time.Hour)
	gate := NewGate(tm, newTestClassifier(), zap.NewNop(), false)

	app := fiber.New()
	app.Use(gate.Handle)
	app.All("/*", func(c *fiber.Ctx) error {
		var email string
		if cred, ok := CredentialFromContext(c); ok {
			email = cred.Email
		}
		return c.JSON(fiber.Map{
			"success": true,
			"user_id": c.Get(HeaderUserID),
			"email":   email,
		})
	})
	return app, tm
}

func doRequest(t *testing.T, app *fiber.App, method, path, cookie string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestGatePublicPathPassesWithoutToken(t *testing.T) {
	app, _ := newGateApp(t)

	resp := doRequest(t, app, http.MethodGet, "/pricing", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGateAdminPageRedirectsWithoutToken(t *testing.T) {
	app, _ := newGateApp(t)

	resp := doRequest(t, app, http.MethodGet, "/admin/analytics", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login?redirect=%2Fadmin%2Fanalytics", resp.Header.Get("Location"))
}

func TestGateUserPageRedirectsWithoutToken(t *testing.T) {
	app, _ := newGateApp(t)

	resp := doRequest(t, app, http.MethodGet, "/account/settings", "")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Faccount%2Fsettings", resp.Header.Get("Location"))
}

func TestGateAPIPathReturns401WithoutToken(t *testing.T) {
	app, _ := newGateApp(t)

	resp := doRequest(t, app, http.MethodGet, "/api/admin/notifications", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"Authentication required"}`, string(body))
}

func TestGateInvalidTokenClearsCookieAndRedirects(t *testing.T) {
	app, _ := newGateApp(t)

	resp := doRequest(t, app, http.MethodGet, "/account", "not-a-valid-token")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Faccount", resp.Header.Get("Location"))

	var cleared bool
	for _, cookie := range resp.Cookies() {
		if cookie.Name == CookieName && cookie.Value == "" && cookie.Expires.Before(time.Now()) {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected auth cookie to be cleared")
}

func TestGateExpiredTokenTreatedLikeInvalid(t *testing.T) {
	app, _ := newGateApp(t)

	expired := NewTokenManager("gate-test-secret", time.Millisecond)
	token, _, err := expired.Issue("user-1", "alice@example.com", "", false)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)

	resp := doRequest(t, app, http.MethodGet, "/api/orders", token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGateNonAdminOnAdminPageForbidden(t *testing.T) {
	app, tm := newGateApp(t)

	token, _, err := tm.Issue("user-1", "alice@example.com", "", false)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/admin/analytics", token)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login?error=admin_required", resp.Header.Get("Location"))

	// The credential itself is still valid elsewhere, so no clearing.
	for _, cookie := range resp.Cookies() {
		assert.NotEqual(t, CookieName, cookie.Name)
	}
}

func TestGateNonAdminOnAdminAPIForbidden(t *testing.T) {
	app, tm := newGateApp(t)

	token, _, err := tm.Issue("user-1", "alice@example.com", "", false)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/api/admin/orders", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"Admin access required"}`, string(body))
}

func TestGateAdminTokenAllowedOnAdminPage(t *testing.T) {
	app, tm := newGateApp(t)

	token, _, err := tm.Issue("admin-1", "root@example.com", "", true)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/admin/analytics", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"user_id":"admin-1"`)
}

func TestGateInjectsIdentityHeader(t *testing.T) {
	app, tm := newGateApp(t)

	token, _, err := tm.Issue("user-9", "frank@example.com", "", false)
	require.NoError(t, err)

	resp := doRequest(t, app, http.MethodGet, "/api/orders", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"user_id":"user-9"`)
	assert.Contains(t, string(body), `"email":"frank@example.com"`)
}

func TestGateStripsSpoofedIdentityHeader(t *testing.T) {
	app, _ := newGateApp(t)

	req := httptest.NewRequest(http.MethodGet, "/pricing", nil)
	req.Header.Set(HeaderUserID, "spoofed")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"user_id":""`)
}
