package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminVerifier(t *testing.T) {
	tm := NewTokenManager("admin-test-secret", time.Hour)
	verifier := NewAdminVerifier(tm)

	adminToken, _, err := tm.Issue("admin-1", "root@example.com", "", true)
	require.NoError(t, err)
	userToken, _, err := tm.Issue("user-1", "alice@example.com", "", false)
	require.NoError(t, err)

	tests := []struct {
		name   string
		cookie string
		want   bool
	}{
		{"admin token", adminToken, true},
		{"non-admin token", userToken, false},
		{"missing cookie", "", false},
		{"garbage token", "garbage", false},
	}

	var got bool
	app := fiber.New()
	app.Get("/check", func(c *fiber.Ctx) error {
		got = verifier.IsAdmin(c)
		return c.SendStatus(http.StatusOK)
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/check", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}
			_, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
