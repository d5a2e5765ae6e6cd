package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/nextgenrdp/platform/internal/api/dto"
	"github.com/nextgenrdp/platform/internal/auth"
	"github.com/nextgenrdp/platform/internal/domain"
	"github.com/nextgenrdp/platform/internal/repository"
	"github.com/nextgenrdp/platform/internal/service"
)

// AdminHandler exposes the admin panel API. Every method re-verifies the
// admin credential through the AdminVerifier even though the gate guards
// /api/admin, so a routing mistake cannot expose these endpoints.
type AdminHandler struct {
	admins    *auth.AdminVerifier
	catalog   *service.CatalogService
	orders    *service.OrderService
	users     repository.UserRepository
	validator *validator.Validate
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(admins *auth.AdminVerifier, catalog *service.CatalogService, orders *service.OrderService, users repository.UserRepository) *AdminHandler {
	return &AdminHandler{
		admins:    admins,
		catalog:   catalog,
		orders:    orders,
		users:     users,
		validator: validator.New(),
	}
}

func (h *AdminHandler) requireAdmin(c *fiber.Ctx) bool {
	if h.admins.IsAdmin(c) {
		return true
	}
	_ = c.Status(http.StatusForbidden).JSON(fiber.Map{
		"success": false,
		"error":   "Admin access required",
	})
	return false
}

// ListPlans handles GET /api/admin/plans.
func (h *AdminHandler) ListPlans(c *fiber.Ctx) error {
	if !h.requireAdmin(c) {
		return nil
	}

	plans, err := h.catalog.ListAllPlans(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewPlanListResponse(plans)})
}

// CreatePlan handles POST /api/admin/plans.
func (h *AdminHandler) CreatePlan(c *fiber.Ctx) error {
	if !h.requireAdmin(c) {
		return nil
	}

	var req dto.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	plan := planFromRequest(req)
	if err := h.catalog.CreatePlan(c.Context(), plan); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": dto.NewPlanResponse(plan)})
}

// UpdatePlan handles PUT /api/admin/plans/:id.
func (h *AdminHandler) UpdatePlan(c *fiber.Ctx) error {
	if !h.requireAdmin(c) {
		return nil
	}

	var req dto.PlanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	plan := planFromRequest(req)
	plan.ID = c.Params("id")
	if err := h.catalog.UpdatePlan(c.Context(), plan); err != nil {
		if err == pgx.ErrNoRows {
			return fiber.NewError(http.StatusNotFound, "plan not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewPlanResponse(plan)})
}

// ListOrders handles GET /api/admin/orders.
func (h *AdminHandler) ListOrders(c *fiber.Ctx) error {
	if !h.requireAdmin(c) {
		return nil
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	orders, err := h.orders.ListOrders(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewOrderListResponse(orders)})
}

// UpdateOrderStatus handles PATCH /api/admin/orders/:id/status.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	if !h.requireAdmin(c) {
		return nil
	}

	var req dto.OrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := h.validator.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.ChangeStatus(c.Context(), c.Params("id"), domain.OrderStatus(req.Status))
	if err != nil {
		switch err {
		case pgx.ErrNoRows:
			return fiber.NewError(http.StatusNotFound, "order not found")
		case service.ErrInvalidTransition:
			return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
		default:
			return err
		}
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewOrderResponse(order)})
}

// ListCustomers handles GET /api/admin/customers.
func (h *AdminHandler) ListCustomers(c *fiber.Ctx) error {
	if !h.requireAdmin(c) {
		return nil
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	users, err := h.users.List(c.Context(), limit, offset)
	if err != nil {
		return err
	}

	out := make([]dto.ProfileResponse, 0, len(users))
	for _, user := range users {
		out = append(out, dto.ProfileResponse{
			ID:        user.ID,
			FullName:  user.FullName,
			Email:     user.Email,
			IsAdmin:   user.IsAdmin,
			Status:    string(user.Status),
			CreatedAt: user.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	if !h.requireAdmin(c) {
		return nil
	}

	counts, err := h.orders.CountByStatus(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"orders_by_status": counts}})
}

func planFromRequest(req dto.PlanRequest) *domain.Plan {
	return &domain.Plan{
		Slug:              req.Slug,
		Name:              req.Name,
		Type:              domain.PlanType(req.Type),
		CPUCores:          req.CPUCores,
		RAMMegabytes:      req.RAMMegabytes,
		DiskGigabytes:     req.DiskGigabytes,
		BandwidthTB:       req.BandwidthTB,
		MonthlyPriceCents: req.MonthlyPriceCents,
		Active:            req.Active,
	}
}
