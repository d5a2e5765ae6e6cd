package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/nextgenrdp/platform/internal/api/dto"
	"github.com/nextgenrdp/platform/internal/auth"
	"github.com/nextgenrdp/platform/internal/service"
)

// OrdersHandler exposes customer-facing order endpoints.
type OrdersHandler struct {
	orders    *service.OrderService
	validator *validator.Validate
}

// NewOrdersHandler constructs the handler.
func NewOrdersHandler(orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orders, validator: validator.New()}
}

// Place handles POST /api/orders.
func (h *OrdersHandler) Place(c *fiber.Ctx) error {
	userID := c.Get(auth.HeaderUserID)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.BillingMonths == 0 {
		req.BillingMonths = 1
	}
	if err := h.validator.Struct(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.PlaceOrder(c.Context(), service.PlaceOrderInput{
		UserID:        userID,
		PlanSlug:      req.PlanSlug,
		BillingMonths: req.BillingMonths,
		PromoCode:     req.PromoCode,
	})
	if err != nil {
		switch err {
		case service.ErrPlanUnavailable:
			return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
		case service.ErrInvalidPromoCode:
			return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
		default:
			return err
		}
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "data": dto.NewOrderResponse(order)})
}

// List handles GET /api/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	userID := c.Get(auth.HeaderUserID)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	orders, err := h.orders.ListUserOrders(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewOrderListResponse(orders)})
}

// Get handles GET /api/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	userID := c.Get(auth.HeaderUserID)
	if userID == "" {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	order, err := h.orders.GetUserOrder(c.Context(), userID, c.Params("id"))
	if err != nil {
		if err == pgx.ErrNoRows {
			return fiber.NewError(http.StatusNotFound, "order not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewOrderResponse(order)})
}
