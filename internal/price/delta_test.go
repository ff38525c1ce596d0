package price_test

import (
	"testing"

	"github.com/Houeta/rival-watch/internal/models"
	"github.com/Houeta/rival-watch/internal/price"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

var null = decimal.NullDecimal{}

func TestComputeDelta(t *testing.T) {
	testCases := []struct {
		name        string
		oldPrice    decimal.NullDecimal
		newPrice    decimal.NullDecimal
		meaningful  bool
		direction   models.Direction
		amount      string
		percent     string
		percentNull bool
	}{
		{"below both thresholds", dec("100"), dec("100.30"), false, models.DirectionIncrease, "0.30", "0.3", false},
		{"above percent threshold", dec("100"), dec("101.50"), true, models.DirectionIncrease, "1.50", "1.5", false},
		{"amount threshold alone suffices", dec("1000"), dec("1000.60"), true, models.DirectionIncrease, "0.60", "0.06", false},
		{"percent threshold alone suffices", dec("10"), dec("9.85"), true, models.DirectionDecrease, "-0.15", "-1.5", false},
		{"decrease", dec("50"), dec("45"), true, models.DirectionDecrease, "-5", "-10", false},
		{"unchanged", dec("19.99"), dec("19.99"), false, models.DirectionUnchanged, "0", "0", false},
		{"from zero has no percent", dec("0"), dec("5"), true, models.DirectionIncrease, "5", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			got := price.ComputeDelta(tc.oldPrice, tc.newPrice, price.DefaultThresholds())

			// Assert
			assert.Equal(t, tc.meaningful, got.IsMeaningful)
			assert.Equal(t, tc.direction, got.Direction)
			assert.True(t, got.Amount.Valid)
			assert.True(t, decimal.RequireFromString(tc.amount).Equal(got.Amount.Decimal), "amount %s", got.Amount.Decimal)
			if tc.percentNull {
				assert.False(t, got.Percent.Valid)
			} else {
				assert.True(t, decimal.RequireFromString(tc.percent).Equal(got.Percent.Decimal), "percent %s", got.Percent.Decimal)
			}
		})
	}
}

func TestComputeDelta_MissingSides(t *testing.T) {
	t.Run("both missing", func(t *testing.T) {
		got := price.ComputeDelta(null, null, price.DefaultThresholds())

		assert.False(t, got.IsMeaningful)
		assert.Equal(t, models.DirectionUnknown, got.Direction)
		assert.False(t, got.Appeared())
		assert.False(t, got.Disappeared())
	})

	t.Run("appeared", func(t *testing.T) {
		got := price.ComputeDelta(null, dec("25"), price.DefaultThresholds())

		assert.True(t, got.IsMeaningful)
		assert.True(t, got.Appeared())
		assert.False(t, got.Amount.Valid)
		assert.False(t, got.Percent.Valid)
	})

	t.Run("disappeared", func(t *testing.T) {
		got := price.ComputeDelta(dec("25"), null, price.DefaultThresholds())

		assert.True(t, got.IsMeaningful)
		assert.True(t, got.Disappeared())
	})
}

func TestPolicyFor(t *testing.T) {
	base := price.DefaultThresholds()

	high := price.PolicyFor(models.ConfidenceHigh, base)
	assert.True(t, high.ShouldAlert)
	assert.True(t, base.MinPercent.Equal(high.MinPercent))

	medium := price.PolicyFor(models.ConfidenceMedium, base)
	assert.True(t, medium.ShouldAlert)
	assert.True(t, base.MinAmount.Equal(medium.MinAmount))

	low := price.PolicyFor(models.ConfidenceLow, base)
	assert.True(t, low.ShouldAlert)
	assert.True(t, low.MinPercent.GreaterThan(base.MinPercent))
	assert.True(t, low.MinAmount.GreaterThan(base.MinAmount))

	none := price.PolicyFor(models.ConfidenceNone, base)
	assert.False(t, none.ShouldAlert)
}

func TestPolicyFor_LowKeepsStricterBase(t *testing.T) {
	base := price.Thresholds{MinPercent: decimal.NewFromInt(20), MinAmount: decimal.NewFromInt(10)}

	low := price.PolicyFor(models.ConfidenceLow, base)

	assert.True(t, base.MinPercent.Equal(low.MinPercent))
	assert.True(t, base.MinAmount.Equal(low.MinAmount))
}

func TestEvaluate_LowConfidenceSuppression(t *testing.T) {
	// 50 -> 51.50 is 3% and 1.50: enough for a structured source, not for a regex guess.
	testCases := []struct {
		confidence models.Confidence
		alert      bool
	}{
		{models.ConfidenceHigh, true},
		{models.ConfidenceMedium, true},
		{models.ConfidenceLow, false},
		{models.ConfidenceNone, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.confidence), func(t *testing.T) {
			got := price.Evaluate(dec("50"), dec("51.50"), tc.confidence, price.DefaultThresholds())

			assert.Equal(t, tc.alert, got.Alert)
		})
	}
}

func TestEvaluate_NoneNeverAlerts(t *testing.T) {
	got := price.Evaluate(dec("50"), null, models.ConfidenceNone, price.DefaultThresholds())

	assert.True(t, got.Delta.IsMeaningful)
	assert.False(t, got.Alert)
}

func TestEvaluate_LowConfidenceLargeMove(t *testing.T) {
	got := price.Evaluate(dec("50"), dec("40"), models.ConfidenceLow, price.DefaultThresholds())

	assert.True(t, got.Alert)
	assert.Equal(t, models.DirectionDecrease, got.Delta.Direction)
}

func TestSignificance(t *testing.T) {
	th := price.DefaultThresholds()
	testCases := []struct {
		name     string
		delta    models.PriceDelta
		expected models.Significance
	}{
		{"ten percent drop", price.ComputeDelta(dec("50"), dec("45"), th), models.SignificanceHigh},
		{"seven percent rise", price.ComputeDelta(dec("100"), dec("107"), th), models.SignificanceMedium},
		{"two percent rise", price.ComputeDelta(dec("100"), dec("102"), th), models.SignificanceLow},
		{"unchanged", price.ComputeDelta(dec("100"), dec("100"), th), models.SignificanceNone},
		{"appeared", price.ComputeDelta(null, dec("10"), th), models.SignificanceMedium},
		{"disappeared", price.ComputeDelta(dec("10"), null, th), models.SignificanceMedium},
		{"from zero", price.ComputeDelta(dec("0"), dec("10"), th), models.SignificanceMedium},
		{"nothing known", price.ComputeDelta(null, null, th), models.SignificanceNone},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, price.Significance(tc.delta))
		})
	}
}

func TestSummary(t *testing.T) {
	th := price.DefaultThresholds()
	testCases := []struct {
		name     string
		delta    models.PriceDelta
		currency string
		expected string
	}{
		{
			"decrease",
			price.ComputeDelta(dec("50"), dec("45"), th), "USD",
			"Price decreased from 50.00 to 45.00 USD (-5.00, -10.00%)",
		},
		{
			"increase without currency",
			price.ComputeDelta(dec("20"), dec("25"), th), "",
			"Price increased from 20.00 to 25.00 (+5.00, +25.00%)",
		},
		{"appeared", price.ComputeDelta(null, dec("9.5"), th), "EUR", "Price appeared: 9.50 EUR"},
		{"disappeared", price.ComputeDelta(dec("9.5"), null, th), "EUR", "Price no longer found (was 9.50 EUR)"},
		{"unchanged", price.ComputeDelta(dec("3"), dec("3"), th), "GBP", "Price unchanged at 3.00 GBP"},
		{"none", price.ComputeDelta(null, null, th), "", "No price found"},
		{
			"from zero",
			price.ComputeDelta(dec("0"), dec("4"), th), "USD",
			"Price increased from 0.00 to 4.00 USD (+4.00)",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, price.Summary(tc.delta, tc.currency))
		})
	}
}
