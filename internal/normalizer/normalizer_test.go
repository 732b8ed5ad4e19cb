package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raviminds/estate-crm/internal/entity"
)

func TestParseBudgetRangeSingleValue(t *testing.T) {
	min, max := ParseBudgetRange("₹12,00,000")

	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 1200000.0, *min)
	assert.Equal(t, 1200000.0, *max)
}

func TestParseBudgetRangeLakhCrore(t *testing.T) {
	min, max := ParseBudgetRange("50 lakh - 1 cr")

	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 5000000.0, *min)
	assert.Equal(t, 10000000.0, *max)
}

func TestParseBudgetRangeWordSeparator(t *testing.T) {
	min, max := ParseBudgetRange("1.5 cr to 2 crore")

	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.Equal(t, 15000000.0, *min)
	assert.Equal(t, 20000000.0, *max)
}

func TestParseBudgetRangeInvertedIsSwapped(t *testing.T) {
	min, max := ParseBudgetRange("1 cr - 50 lakh")

	require.NotNil(t, min)
	require.NotNil(t, max)
	assert.LessOrEqual(t, *min, *max)
	assert.Equal(t, 5000000.0, *min)
	assert.Equal(t, 10000000.0, *max)
}

func TestParseBudgetRangeEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "tbd", "₹"} {
		min, max := ParseBudgetRange(input)
		assert.Nil(t, min, "input %q", input)
		assert.Nil(t, max, "input %q", input)
	}
}

func TestNormalizeSource(t *testing.T) {
	cases := map[string]string{
		"Facebook Lead Ads": entity.SourceFacebook,
		"META leadgen":      entity.SourceFacebook,
		"Google Forms":      entity.SourceGoogle,
		"Walk-in visit":     entity.SourceWalkIn,
		"Broker referral":   entity.SourceAgent,
		"csv upload":        entity.SourceCSV,
		"unknown-thing":     entity.SourceManual,
		"":                  entity.SourceManual,
	}

	for input, want := range cases {
		assert.Equal(t, want, NormalizeSource(input), "input %q", input)
	}
}

func TestNormalizeContactFields(t *testing.T) {
	assert.Equal(t, "+91 98765 43210", NormalizePhone("  +91 98765 43210 "))
	assert.Equal(t, "ravi@example.com", NormalizeEmail(" Ravi@Example.COM "))
}
