// Package pricing resolves the unit price of a reservation from a field's
// pricing rules. Resolution is a pure computation over the supplied
// configuration.
package pricing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

const (
	ModeFlat     = "flat"
	ModeAdvanced = "advanced"

	DurationOneHour     = 1.0
	DurationOneHourHalf = 1.5
)

var ErrUnsupportedDuration = errors.New("duration must be 1 or 1.5 hours")

// PricePair holds the price for each supported reservation length.
type PricePair struct {
	OneHour     float64 `json:"oneHour"`
	OneHourHalf float64 `json:"oneHourHalf"`
}

// SlotRate is a labeled time window with its own price tier. The window is
// half-open [Start, End).
type SlotRate struct {
	Label  string    `json:"label"`
	Start  string    `json:"start"`
	End    string    `json:"end"`
	Prices PricePair `json:"prices"`
}

type TimeSlotPricing struct {
	Enabled bool       `json:"enabled"`
	Slots   []SlotRate `json:"slots"`
}

// Rules is a field's pricing configuration, stored as a JSONB column.
type Rules struct {
	Mode       string          `json:"mode"`
	FlatPrices PricePair       `json:"flatPrices"`
	BasePrices PricePair       `json:"basePrices"`
	TimeSlots  TimeSlotPricing `json:"timeSlotPricing"`
}

// IsZero reports whether no pricing configuration is set, i.e. the field
// predates tiered pricing and the legacy per-hour fallback applies.
func (r Rules) IsZero() bool {
	return r.Mode == ""
}

// Quote explains which rule fired and what the reservation costs.
type Quote struct {
	UnitPrices  PricePair `json:"unit_prices"`
	AppliedRule string    `json:"applied_rule"`
	Total       float64   `json:"total"`
}

// Resolve picks the unit prices for a reservation of durationHours
// starting at startTime and returns the total.
//
// Flat mode ignores startTime. Advanced mode starts from the base tier and,
// when time-slot pricing is enabled and a start time is given, switches to
// the first configured slot whose [start, end) window contains the start
// time. Slots are assumed non-overlapping; first match wins.
func Resolve(rules Rules, durationHours float64, startTime string) (Quote, error) {
	if durationHours != DurationOneHour && durationHours != DurationOneHourHalf {
		return Quote{}, ErrUnsupportedDuration
	}

	if rules.Mode == ModeFlat {
		return buildQuote(rules.FlatPrices, "flat", durationHours), nil
	}

	prices := rules.BasePrices
	applied := "base"

	if rules.TimeSlots.Enabled && startTime != "" {
		for _, slot := range rules.TimeSlots.Slots {
			// Zero-padded "HH:MM" strings order lexicographically.
			if slot.Start <= startTime && startTime < slot.End {
				prices = slot.Prices
				applied = "timeSlot:" + slot.Label
				break
			}
		}
	}

	return buildQuote(prices, applied, durationHours), nil
}

func buildQuote(prices PricePair, applied string, durationHours float64) Quote {
	total := prices.OneHour
	if durationHours == DurationOneHourHalf {
		total = prices.OneHourHalf
	}

	return Quote{
		UnitPrices:  prices,
		AppliedRule: applied,
		Total:       Round2(total),
	}
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Value implements driver.Valuer so Rules can be written to a JSONB column.
func (r Rules) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for reading a JSONB column.
func (r *Rules) Scan(src interface{}) error {
	if src == nil {
		*r = Rules{}
		return nil
	}

	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, r)
	case string:
		return json.Unmarshal([]byte(data), r)
	default:
		return fmt.Errorf("unsupported type %T for pricing rules", src)
	}
}
