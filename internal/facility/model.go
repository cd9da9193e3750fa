package facility

import (
	"time"

	"campobook/internal/pricing"
)

// Facility is a venue offering one or more bookable fields.
type Facility struct {
	ID           int          `db:"id" json:"id"`
	OwnerID      int          `db:"owner_id" json:"owner_id"`
	Name         string       `db:"name" json:"name"`
	Location     string       `db:"location" json:"location"`
	PricePerHour float64      `db:"price_per_hour" json:"price_per_hour"`
	IsActive     bool         `db:"is_active" json:"is_active"`
	OpeningHours WeekSchedule `db:"opening_hours" json:"opening_hours"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}

// Field is a single bookable court or pitch within a facility. Fields
// created before tiered pricing existed have a zero Rules value (NULL
// column) and fall back to the facility's flat per-hour price.
type Field struct {
	ID           int           `db:"id" json:"id"`
	FacilityID   int           `db:"facility_id" json:"facility_id"`
	Name         string        `db:"name" json:"name"`
	Sport        string        `db:"sport" json:"sport"`
	PricingRules pricing.Rules `db:"pricing_rules" json:"pricing_rules"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

type CreateFacilityRequest struct {
	Name         string       `json:"name" binding:"required"`
	Location     string       `json:"location" binding:"required"`
	PricePerHour float64      `json:"price_per_hour" binding:"gte=0"`
	OpeningHours WeekSchedule `json:"opening_hours"`
}

type UpdateHoursRequest struct {
	OpeningHours WeekSchedule `json:"opening_hours" binding:"required"`
}

type UpdateStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type CreateFieldRequest struct {
	Name         string         `json:"name" binding:"required"`
	Sport        string         `json:"sport" binding:"required"`
	PricingRules *pricing.Rules `json:"pricing_rules"`
}
