package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClassifier() *RouteClassifier {
	return NewRouteClassifier(
		[]string{"/admin", "/api/admin"},
		[]string{"/account", "/billing", "/orders", "/api/account", "/api/orders"},
		[]string{"/", "/pricing", "/login", "/register", "/api/auth", "/api/plans", "/static"},
	)
}

func TestClassify(t *testing.T) {
	rc := newTestClassifier()

	tests := []struct {
		path string
		want RouteClass
	}{
		{"/", RoutePublic},
		{"/pricing", RoutePublic},
		{"/login", RoutePublic},
		{"/api/auth/login", RoutePublic},
		{"/api/plans", RoutePublic},
		{"/static/css/site.css", RoutePublic},
		{"/account", RouteUser},
		{"/account/settings", RouteUser},
		{"/billing/invoices", RouteUser},
		{"/api/orders", RouteUser},
		{"/admin", RouteAdmin},
		{"/admin/analytics", RouteAdmin},
		{"/api/admin/notifications", RouteAdmin},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rc.Classify(tt.path), "path %s", tt.path)
	}
}

func TestClassifyDefaultAllow(t *testing.T) {
	rc := newTestClassifier()

	// Paths matching no configured prefix are public by policy.
	for _, path := range []string{"/blog/some-post", "/terms", "/nonexistent"} {
		assert.Equal(t, RoutePublic, rc.Classify(path), "path %s", path)
	}
}

func TestClassifyAdminWinsOverUser(t *testing.T) {
	rc := NewRouteClassifier(
		[]string{"/api/admin"},
		[]string{"/api"},
		nil,
	)
	assert.Equal(t, RouteAdmin, rc.Classify("/api/admin/orders"))
	assert.Equal(t, RouteUser, rc.Classify("/api/orders"))
}
