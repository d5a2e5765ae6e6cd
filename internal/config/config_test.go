package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "unit-test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "nextgen-platform", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "unit-test-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Contains(t, cfg.Routes.AdminPrefixes, "/admin")
	assert.Contains(t, cfg.Routes.UserPrefixes, "/account")
	assert.Contains(t, cfg.Routes.PublicPrefixes, "/pricing")
}

func TestLoadOverridesPrefixLists(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "unit-test-secret")
	t.Setenv("ROUTES_ADMIN_PREFIXES", "/panel, /api/panel")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"/panel", "/api/panel"}, cfg.Routes.AdminPrefixes)
}
