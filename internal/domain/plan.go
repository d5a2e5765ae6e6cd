package domain

import "time"

// PlanType distinguishes the two product lines.
type PlanType string

const (
	PlanTypeVPS PlanType = "VPS"
	PlanTypeRDP PlanType = "RDP"
)

// Plan describes a sellable hosting configuration.
type Plan struct {
	ID                string
	Slug              string
	Name              string
	Type              PlanType
	CPUCores          int
	RAMMegabytes      int
	DiskGigabytes     int
	BandwidthTB       int
	MonthlyPriceCents int64
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
