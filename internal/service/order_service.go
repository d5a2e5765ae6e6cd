package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/nextgenrdp/platform/internal/domain"
	"github.com/nextgenrdp/platform/internal/events"
	"github.com/nextgenrdp/platform/internal/pricing"
	"github.com/nextgenrdp/platform/internal/repository"
)

var (
	// ErrPlanUnavailable is returned when ordering an unknown or inactive plan.
	ErrPlanUnavailable = errors.New("plan unavailable")
	// ErrInvalidPromoCode is returned when a supplied promo code does not resolve.
	ErrInvalidPromoCode = errors.New("invalid promo code")
	// ErrInvalidTransition is returned for disallowed status changes.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// PlaceOrderInput carries the parameters of a new order.
type PlaceOrderInput struct {
	UserID        string
	PlanSlug      string
	BillingMonths int
	PromoCode     string
}

// OrderService coordinates order placement and lifecycle.
type OrderService struct {
	orders     repository.OrderRepository
	plans      repository.PlanRepository
	promos     *pricing.PromoTable
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, plans repository.PlanRepository, promos *pricing.PromoTable, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, plans: plans, promos: promos, dispatcher: dispatcher}
}

// PlaceOrder prices and persists a new order. The discount is resolved
// server-side from the promo table; client-supplied percentages are
// never trusted.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domain.Order, error) {
	plan, err := s.plans.GetBySlug(ctx, in.PlanSlug)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrPlanUnavailable
		}
		return nil, err
	}
	if !plan.Active {
		return nil, ErrPlanUnavailable
	}

	months := in.BillingMonths
	if months <= 0 {
		months = 1
	}

	order := &domain.Order{
		Reference:     newOrderReference(),
		UserID:        in.UserID,
		PlanID:        plan.ID,
		BillingMonths: months,
		SubtotalCents: plan.MonthlyPriceCents * int64(months),
		Status:        domain.OrderStatusPending,
	}

	if code := strings.TrimSpace(in.PromoCode); code != "" {
		result := s.promos.Lookup(code)
		if !result.Valid {
			return nil, ErrInvalidPromoCode
		}
		order.PromoCode = &code
		order.DiscountPercent = result.DiscountPercent
	}
	order.TotalCents = order.SubtotalCents * int64(100-order.DiscountPercent) / 100

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderCreated,
			SubjectID: order.UserID,
			Timestamp: time.Now(),
			Payload: events.OrderCreatedPayload{
				OrderID:         order.ID,
				Reference:       order.Reference,
				PlanID:          order.PlanID,
				TotalCents:      order.TotalCents,
				PromoCode:       order.PromoCode,
				DiscountPercent: order.DiscountPercent,
			},
		})
	}
	return order, nil
}

// ListUserOrders returns the caller's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// GetUserOrder loads one order and enforces ownership.
func (s *OrderService) GetUserOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	return order, nil
}

// ListOrders returns a page of all orders for the admin panel.
func (s *OrderService) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.orders.List(ctx, limit, offset)
}

// ChangeStatus moves an order through its lifecycle, rejecting
// transitions the state machine does not allow.
func (s *OrderService) ChangeStatus(ctx context.Context, orderID string, target domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.ValidTransition(target) {
		return nil, ErrInvalidTransition
	}

	old := order.Status
	if err := s.orders.UpdateStatus(ctx, orderID, target); err != nil {
		return nil, err
	}
	order.Status = target

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventOrderStatusChanged,
			SubjectID: order.UserID,
			Timestamp: time.Now(),
			Payload: events.OrderStatusChangedPayload{
				OrderID:   order.ID,
				Reference: order.Reference,
				OldStatus: old,
				NewStatus: target,
			},
		})
	}
	return order, nil
}

// CountByStatus aggregates order counts for the admin dashboard.
func (s *OrderService) CountByStatus(ctx context.Context) (map[domain.OrderStatus]int64, error) {
	return s.orders.CountByStatus(ctx)
}

func newOrderReference() string {
	return "NG-" + strings.ToUpper(uuid.NewString()[:8])
}
