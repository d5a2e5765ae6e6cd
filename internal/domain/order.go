package domain

import "time"

// OrderStatus enumerates lifecycle states for an order.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "PENDING"
	OrderStatusProvisioning OrderStatus = "PROVISIONING"
	OrderStatusActive       OrderStatus = "ACTIVE"
	OrderStatusCancelled    OrderStatus = "CANCELLED"
)

// Order is the aggregate for a customer's purchase of a plan.
type Order struct {
	ID              string
	Reference       string
	UserID          string
	PlanID          string
	BillingMonths   int
	PromoCode       *string
	DiscountPercent int
	SubtotalCents   int64
	TotalCents      int64
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ValidTransition reports whether an order may move from its current
// status to the target status.
func (o *Order) ValidTransition(target OrderStatus) bool {
	switch o.Status {
	case OrderStatusPending:
		return target == OrderStatusProvisioning || target == OrderStatusCancelled
	case OrderStatusProvisioning:
		return target == OrderStatusActive || target == OrderStatusCancelled
	case OrderStatusActive:
		return target == OrderStatusCancelled
	default:
		return false
	}
}
