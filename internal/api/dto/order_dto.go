package dto

import (
	"time"

	"github.com/nextgenrdp/platform/internal/domain"
)

// PlaceOrderRequest payload for new orders.
type PlaceOrderRequest struct {
	PlanSlug      string `json:"plan_slug" validate:"required"`
	BillingMonths int    `json:"billing_months" validate:"gte=1,lte=36"`
	PromoCode     string `json:"promo_code"`
}

// OrderStatusRequest payload for admin status transitions.
type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING PROVISIONING ACTIVE CANCELLED"`
}

// OrderResponse is the API view of an order.
type OrderResponse struct {
	ID              string    `json:"id"`
	Reference       string    `json:"reference"`
	UserID          string    `json:"user_id"`
	PlanID          string    `json:"plan_id"`
	BillingMonths   int       `json:"billing_months"`
	PromoCode       *string   `json:"promo_code,omitempty"`
	DiscountPercent int       `json:"discount_percent"`
	SubtotalCents   int64     `json:"subtotal_cents"`
	TotalCents      int64     `json:"total_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID,
		Reference:       order.Reference,
		UserID:          order.UserID,
		PlanID:          order.PlanID,
		BillingMonths:   order.BillingMonths,
		PromoCode:       order.PromoCode,
		DiscountPercent: order.DiscountPercent,
		SubtotalCents:   order.SubtotalCents,
		TotalCents:      order.TotalCents,
		Status:          string(order.Status),
		CreatedAt:       order.CreatedAt,
	}
}

// NewOrderListResponse maps a slice of domain orders.
func NewOrderListResponse(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, NewOrderResponse(order))
	}
	return out
}
