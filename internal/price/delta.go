package price

import (
	"fmt"

	"github.com/Houeta/rival-watch/internal/models"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// lowConfidenceFloor is the minimum policy applied to regex-only extractions.
	lowConfidenceFloor = Thresholds{
		MinPercent: decimal.NewFromInt(5),
		MinAmount:  decimal.NewFromInt(2),
	}

	highMovePercent   = decimal.NewFromInt(10)
	mediumMovePercent = decimal.NewFromInt(5)
)

// Thresholds decide when a price movement is meaningful. Either bound suffices.
type Thresholds struct {
	MinPercent decimal.Decimal
	MinAmount  decimal.Decimal
}

// DefaultThresholds are 1% or 0.50 in page currency.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinPercent: decimal.NewFromInt(1),
		MinAmount:  decimal.RequireFromString("0.50"),
	}
}

// Policy is the effective rule set for one confidence tier.
type Policy struct {
	Thresholds
	ShouldAlert bool
}

// PolicyFor adjusts base thresholds to the confidence of the current extraction.
func PolicyFor(conf models.Confidence, base Thresholds) Policy {
	switch conf {
	case models.ConfidenceHigh, models.ConfidenceMedium:
		return Policy{Thresholds: base, ShouldAlert: true}
	case models.ConfidenceLow:
		return Policy{
			Thresholds: Thresholds{
				MinPercent: decimal.Max(base.MinPercent, lowConfidenceFloor.MinPercent),
				MinAmount:  decimal.Max(base.MinAmount, lowConfidenceFloor.MinAmount),
			},
			ShouldAlert: true,
		}
	default:
		return Policy{Thresholds: base, ShouldAlert: false}
	}
}

// ComputeDelta compares two observations under th.
func ComputeDelta(oldPrice, newPrice decimal.NullDecimal, th Thresholds) models.PriceDelta {
	delta := models.PriceDelta{OldPrice: oldPrice, NewPrice: newPrice, Direction: models.DirectionUnknown}

	switch {
	case !oldPrice.Valid && !newPrice.Valid:
		return delta
	case !oldPrice.Valid, !newPrice.Valid:
		// appearance or disappearance is always reportable
		delta.IsMeaningful = true
		return delta
	}

	amount := newPrice.Decimal.Sub(oldPrice.Decimal)
	delta.Amount = decimal.NewNullDecimal(amount)
	if !oldPrice.Decimal.IsZero() {
		delta.Percent = decimal.NewNullDecimal(amount.Div(oldPrice.Decimal).Mul(hundred).Round(4))
	}

	switch amount.Sign() {
	case 1:
		delta.Direction = models.DirectionIncrease
	case -1:
		delta.Direction = models.DirectionDecrease
	default:
		delta.Direction = models.DirectionUnchanged
		return delta
	}

	delta.IsMeaningful = amount.Abs().GreaterThanOrEqual(th.MinAmount) ||
		(delta.Percent.Valid && delta.Percent.Decimal.Abs().GreaterThanOrEqual(th.MinPercent))

	return delta
}

// Decision is the verdict of the delta engine for one check.
type Decision struct {
	Delta  models.PriceDelta
	Policy Policy
	Alert  bool
}

// Evaluate computes the delta under the policy for conf and decides whether it alerts.
func Evaluate(oldPrice, newPrice decimal.NullDecimal, conf models.Confidence, base Thresholds) Decision {
	policy := PolicyFor(conf, base)
	delta := ComputeDelta(oldPrice, newPrice, policy.Thresholds)

	return Decision{Delta: delta, Policy: policy, Alert: delta.IsMeaningful && policy.ShouldAlert}
}

// Significance grades a price movement on its own.
func Significance(d models.PriceDelta) models.Significance {
	switch {
	case d.Appeared(), d.Disappeared():
		return models.SignificanceMedium
	case !d.Percent.Valid:
		if d.Direction == models.DirectionUnchanged || d.Direction == models.DirectionUnknown {
			return models.SignificanceNone
		}
		return models.SignificanceMedium
	case d.Percent.Decimal.Abs().GreaterThanOrEqual(highMovePercent):
		return models.SignificanceHigh
	case d.Percent.Decimal.Abs().GreaterThanOrEqual(mediumMovePercent):
		return models.SignificanceMedium
	case d.Direction == models.DirectionUnchanged:
		return models.SignificanceNone
	default:
		return models.SignificanceLow
	}
}

// Summary describes a price movement for people.
func Summary(d models.PriceDelta, currency string) string {
	switch {
	case d.Appeared():
		return fmt.Sprintf("Price appeared: %s", money(d.NewPrice.Decimal, currency))
	case d.Disappeared():
		return fmt.Sprintf("Price no longer found (was %s)", money(d.OldPrice.Decimal, currency))
	case !d.OldPrice.Valid:
		return "No price found"
	case d.Direction == models.DirectionUnchanged:
		return fmt.Sprintf("Price unchanged at %s", money(d.NewPrice.Decimal, currency))
	}

	verb := "increased"
	if d.Direction == models.DirectionDecrease {
		verb = "decreased"
	}

	out := fmt.Sprintf("Price %s from %s to %s (%s",
		verb, d.OldPrice.Decimal.StringFixed(2), money(d.NewPrice.Decimal, currency), signed(d.Amount.Decimal))
	if d.Percent.Valid {
		out += ", " + signed(d.Percent.Decimal) + "%"
	}

	return out + ")"
}

func money(v decimal.Decimal, currency string) string {
	if currency == "" {
		return v.StringFixed(2)
	}

	return v.StringFixed(2) + " " + currency
}

func signed(v decimal.Decimal) string {
	if v.Sign() > 0 {
		return "+" + v.StringFixed(2)
	}

	return v.StringFixed(2)
}
