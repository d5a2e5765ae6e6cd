package dto

import (
	"time"

	"github.com/nextgenrdp/platform/internal/domain"
)

// PlanRequest payload for admin plan create/update.
type PlanRequest struct {
	Slug              string `json:"slug" validate:"required,lowercase"`
	Name              string `json:"name" validate:"required"`
	Type              string `json:"type" validate:"required,oneof=VPS RDP"`
	CPUCores          int    `json:"cpu_cores" validate:"gte=1"`
	RAMMegabytes      int    `json:"ram_mb" validate:"gte=512"`
	DiskGigabytes     int    `json:"disk_gb" validate:"gte=10"`
	BandwidthTB       int    `json:"bandwidth_tb" validate:"gte=1"`
	MonthlyPriceCents int64  `json:"monthly_price_cents" validate:"gte=0"`
	Active            bool   `json:"active"`
}

// PlanResponse is the public view of a plan.
type PlanResponse struct {
	ID                string    `json:"id"`
	Slug              string    `json:"slug"`
	Name              string    `json:"name"`
	Type              string    `json:"type"`
	CPUCores          int       `json:"cpu_cores"`
	RAMMegabytes      int       `json:"ram_mb"`
	DiskGigabytes     int       `json:"disk_gb"`
	BandwidthTB       int       `json:"bandwidth_tb"`
	MonthlyPriceCents int64     `json:"monthly_price_cents"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewPlanResponse maps a domain plan.
func NewPlanResponse(plan *domain.Plan) PlanResponse {
	return PlanResponse{
		ID:                plan.ID,
		Slug:              plan.Slug,
		Name:              plan.Name,
		Type:              string(plan.Type),
		CPUCores:          plan.CPUCores,
		RAMMegabytes:      plan.RAMMegabytes,
		DiskGigabytes:     plan.DiskGigabytes,
		BandwidthTB:       plan.BandwidthTB,
		MonthlyPriceCents: plan.MonthlyPriceCents,
		Active:            plan.Active,
		CreatedAt:         plan.CreatedAt,
	}
}

// NewPlanListResponse maps a slice of domain plans.
func NewPlanListResponse(plans []*domain.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, plan := range plans {
		out = append(out, NewPlanResponse(plan))
	}
	return out
}

// PromoCheckRequest payload for promo code validation.
type PromoCheckRequest struct {
	Code string `json:"code" validate:"required"`
}

// PromoCheckResponse reports the resolved discount.
type PromoCheckResponse struct {
	Valid           bool `json:"valid"`
	DiscountPercent int  `json:"discount_percent,omitempty"`
}
