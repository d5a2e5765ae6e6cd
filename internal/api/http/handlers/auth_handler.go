package handlers

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nextgenrdp/platform/internal/api/dto"
	"github.com/nextgenrdp/platform/internal/auth"
	"github.com/nextgenrdp/platform/internal/service"
)

// AuthHandler exposes registration, login and session endpoints.
type AuthHandler struct {
	auth         *service.AuthService
	validator    *validator.Validate
	secureCookie bool
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: authService, validator: validator.New(), secureCookie: secureCookie}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, token, exp, err := h.auth.Register(c.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if err == service.ErrEmailTaken {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return err
	}

	h.setAuthCookie(c, token, exp)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user": fiber.Map{
				"id":        user.ID,
				"full_name": user.FullName,
				"email":     user.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return err
	}

	h.setAuthCookie(c, token, exp)
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"user": fiber.Map{
				"id":        user.ID,
				"full_name": user.FullName,
				"email":     user.Email,
				"is_admin":  user.IsAdmin,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Logout handles POST /api/auth/logout by discarding the credential cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secureCookie,
	})
	return c.JSON(fiber.Map{"success": true})
}

// Profile handles GET /api/account/profile. The caller identity comes
// from the header the gate injected after verification.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID := c.Get(auth.HeaderUserID)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	user, err := h.auth.Profile(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": dto.ProfileResponse{
			ID:        user.ID,
			FullName:  user.FullName,
			Email:     user.Email,
			IsAdmin:   user.IsAdmin,
			Status:    string(user.Status),
			CreatedAt: user.CreatedAt,
		},
	})
}

func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
