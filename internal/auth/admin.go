package auth

import "github.com/gofiber/fiber/v2"

// AdminVerifier is the handler-local admin check. Admin handlers call it
// even though the gate already ran, so a routing misconfiguration that
// bypasses the gate still cannot expose admin endpoints.
type AdminVerifier struct {
	tokens *TokenManager
}

// NewAdminVerifier constructs the verifier.
func NewAdminVerifier(tokens *TokenManager) *AdminVerifier {
	return &AdminVerifier{tokens: tokens}
}

// IsAdmin reports whether the request carries a valid admin credential.
// It never fails loudly: missing cookie, bad signature and expiry all
// return false so callers can respond 403 uniformly.
func (v *AdminVerifier) IsAdmin(c *fiber.Ctx) bool {
	token := c.Cookies(CookieName)
	if token == "" {
		return false
	}
	cred, err := v.tokens.Verify(token)
	if err != nil {
		return false
	}
	return cred.IsAdmin
}
