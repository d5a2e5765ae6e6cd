package auth

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	// CookieName carries the signed credential between requests.
	CookieName = "auth_token"
	// HeaderUserID is injected on forwarded requests so downstream
	// handlers can read the caller identity without re-verifying.
	HeaderUserID = "x-user-id"

	credentialKey = "auth_credential"

	apiPrefix      = "/api/"
	loginPath      = "/login"
	adminLoginPath = "/admin/login"
)

// Gate intercepts every inbound request and decides allow, redirect or
// reject before a handler runs. Public paths pass through untouched;
// protected paths require a valid credential cookie; admin paths
// additionally require the admin flag.
type Gate struct {
	tokens       *TokenManager
	routes       *RouteClassifier
	logger       *zap.Logger
	secureCookie bool
}

// NewGate constructs the gate middleware.
func NewGate(tokens *TokenManager, routes *RouteClassifier, logger *zap.Logger, secureCookie bool) *Gate {
	return &Gate{tokens: tokens, routes: routes, logger: logger, secureCookie: secureCookie}
}

// Handle enforces the access policy for one request. Verification runs
// at most once per request; every failure is terminal and produces a
// redirect or a structured error, never a panic.
func (g *Gate) Handle(c *fiber.Ctx) error {
	// The identity header is gate-owned; drop any client-supplied value.
	c.Request().Header.Del(HeaderUserID)

	path := c.Path()
	class := g.routes.Classify(path)
	if class == RoutePublic {
		return c.Next()
	}

	token := c.Cookies(CookieName)
	if token == "" {
		return g.denyUnauthenticated(c, class, path)
	}

	cred, err := g.tokens.Verify(token)
	if err != nil {
		g.logger.Debug("credential rejected",
			zap.String("path", path),
			zap.String("class", class.String()),
			zap.Error(err))
		g.clearCookie(c)
		return g.denyUnauthenticated(c, class, path)
	}

	if class == RouteAdmin && !cred.IsAdmin {
		// The credential is still valid for non-admin routes, so the
		// cookie stays. The redirect does not reveal whether the
		// account exists or merely lacks the role.
		if isAPIPath(path) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"error":   "Admin access required",
			})
		}
		return c.Redirect(adminLoginPath+"?error=admin_required", fiber.StatusFound)
	}

	c.Request().Header.Set(HeaderUserID, cred.SubjectID)
	c.Locals(credentialKey, cred)
	return c.Next()
}

func (g *Gate) denyUnauthenticated(c *fiber.Ctx, class RouteClass, path string) error {
	if isAPIPath(path) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Authentication required",
		})
	}
	target := loginPath
	if class == RouteAdmin {
		target = adminLoginPath
	}
	return c.Redirect(target+"?redirect="+url.QueryEscape(path), fiber.StatusFound)
}

func (g *Gate) clearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   g.secureCookie,
	})
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, apiPrefix)
}

// CredentialFromContext retrieves the credential the gate attached for
// the current request.
func CredentialFromContext(c *fiber.Ctx) (*Credential, bool) {
	val := c.Locals(credentialKey)
	if val == nil {
		return nil, false
	}
	cred, ok := val.(*Credential)
	return cred, ok
}
