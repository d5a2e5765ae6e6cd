package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/nextgenrdp/platform/internal/api/dto"
	"github.com/nextgenrdp/platform/internal/pricing"
	"github.com/nextgenrdp/platform/internal/service"
)

// PlansHandler exposes the public plan catalog and promo validation.
type PlansHandler struct {
	catalog   *service.CatalogService
	promos    *pricing.PromoTable
	validator *validator.Validate
}

// NewPlansHandler constructs the handler.
func NewPlansHandler(catalog *service.CatalogService, promos *pricing.PromoTable) *PlansHandler {
	return &PlansHandler{catalog: catalog, promos: promos, validator: validator.New()}
}

// List handles GET /api/plans.
func (h *PlansHandler) List(c *fiber.Ctx) error {
	plans, err := h.catalog.ListActivePlans(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewPlanListResponse(plans)})
}

// Get handles GET /api/plans/:slug.
func (h *PlansHandler) Get(c *fiber.Ctx) error {
	plan, err := h.catalog.GetPlanBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if err == pgx.ErrNoRows {
			return fiber.NewError(http.StatusNotFound, "plan not found")
		}
		return err
	}
	if !plan.Active {
		return fiber.NewError(http.StatusNotFound, "plan not found")
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewPlanResponse(plan)})
}

// CheckPromo handles POST /api/plans/promo-check. Always 200; the body
// says whether the code resolved.
func (h *PlansHandler) CheckPromo(c *fiber.Ctx) error {
	var req dto.PromoCheckRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	result := h.promos.Lookup(req.Code)
	return c.JSON(fiber.Map{
		"success": true,
		"data": dto.PromoCheckResponse{
			Valid:           result.Valid,
			DiscountPercent: result.DiscountPercent,
		},
	})
}
