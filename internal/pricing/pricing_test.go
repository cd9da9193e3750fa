package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatRules() Rules {
	return Rules{
		Mode:       ModeFlat,
		FlatPrices: PricePair{OneHour: 20, OneHourHalf: 28},
	}
}

func advancedRules() Rules {
	return Rules{
		Mode:       ModeAdvanced,
		BasePrices: PricePair{OneHour: 10, OneHourHalf: 15},
		TimeSlots: TimeSlotPricing{
			Enabled: true,
			Slots: []SlotRate{
				{
					Label:  "evening",
					Start:  "18:00",
					End:    "23:00",
					Prices: PricePair{OneHour: 18, OneHourHalf: 25},
				},
			},
		},
	}
}

func TestResolveFlat(t *testing.T) {
	quote, err := Resolve(flatRules(), DurationOneHour, "")
	require.NoError(t, err)
	assert.Equal(t, "flat", quote.AppliedRule)
	assert.Equal(t, 20.0, quote.Total)

	quote, err = Resolve(flatRules(), DurationOneHourHalf, "")
	require.NoError(t, err)
	assert.Equal(t, "flat", quote.AppliedRule)
	assert.Equal(t, 28.0, quote.Total)
}

func TestResolveAdvanced(t *testing.T) {
	tests := []struct {
		name        string
		duration    float64
		start       string
		wantRule    string
		wantTotal   float64
	}{
		{"inside evening slot", DurationOneHour, "18:30", "timeSlot:evening", 18},
		{"slot start is inclusive", DurationOneHour, "18:00", "timeSlot:evening", 18},
		{"slot end is exclusive", DurationOneHour, "23:00", "base", 10},
		{"morning falls back to base", DurationOneHour, "10:00", "base", 10},
		{"ninety minutes in slot", DurationOneHourHalf, "19:00", "timeSlot:evening", 25},
		{"ninety minutes on base", DurationOneHourHalf, "10:00", "base", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := Resolve(advancedRules(), tt.duration, tt.start)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRule, quote.AppliedRule)
			assert.Equal(t, tt.wantTotal, quote.Total)
		})
	}
}

func TestResolveFirstMatchingSlotWins(t *testing.T) {
	rules := advancedRules()
	rules.TimeSlots.Slots = append([]SlotRate{
		{
			Label:  "late",
			Start:  "17:00",
			End:    "20:00",
			Prices: PricePair{OneHour: 12, OneHourHalf: 17},
		},
	}, rules.TimeSlots.Slots...)

	quote, err := Resolve(rules, DurationOneHour, "18:30")
	require.NoError(t, err)
	assert.Equal(t, "timeSlot:late", quote.AppliedRule)
	assert.Equal(t, 12.0, quote.Total)
}

func TestResolveSlotsDisabled(t *testing.T) {
	rules := advancedRules()
	rules.TimeSlots.Enabled = false

	quote, err := Resolve(rules, DurationOneHour, "18:30")
	require.NoError(t, err)
	assert.Equal(t, "base", quote.AppliedRule)
	assert.Equal(t, 10.0, quote.Total)
}

func TestResolveNoStartTime(t *testing.T) {
	quote, err := Resolve(advancedRules(), DurationOneHour, "")
	require.NoError(t, err)
	assert.Equal(t, "base", quote.AppliedRule)
}

func TestResolveUnsupportedDuration(t *testing.T) {
	for _, d := range []float64{0, 0.5, 2, 1.25, -1} {
		_, err := Resolve(flatRules(), d, "")
		assert.ErrorIs(t, err, ErrUnsupportedDuration, "duration %v", d)
	}
}

func TestResolveRounding(t *testing.T) {
	rules := Rules{
		Mode:       ModeFlat,
		FlatPrices: PricePair{OneHour: 19.995, OneHourHalf: 27.994},
	}

	quote, err := Resolve(rules, DurationOneHour, "")
	require.NoError(t, err)
	assert.Equal(t, 20.0, quote.Total)

	quote, err = Resolve(rules, DurationOneHourHalf, "")
	require.NoError(t, err)
	assert.Equal(t, 27.99, quote.Total)
}

func TestRulesScanValue(t *testing.T) {
	rules := advancedRules()

	raw, err := rules.Value()
	require.NoError(t, err)

	var got Rules
	require.NoError(t, got.Scan(raw))
	assert.Equal(t, rules, got)

	var empty Rules
	require.NoError(t, empty.Scan(nil))
	assert.Equal(t, Rules{}, empty)
}
