// Package pricing computes order totals from cart lines and a fee schedule.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/foodcourier/internal/domain/model"
)

var hundred = decimal.NewFromInt(100)

// Breakdown holds exact, unrounded pricing components in major units.
type Breakdown struct {
	Subtotal      decimal.Decimal
	ServiceCharge decimal.Decimal
	Tax           decimal.Decimal
	DeliveryFee   decimal.Decimal
	Total         decimal.Decimal
}

// Subtotal sums price times quantity over all lines.
func Subtotal(items []model.LineItem) model.Money {
	var sum model.Money
	for _, item := range items {
		sum += item.Subtotal()
	}
	return sum
}

// Compute prices items against schedule. A nil schedule contributes no fees.
func Compute(items []model.LineItem, schedule *model.FeeSchedule) Breakdown {
	subtotal := Subtotal(items).Decimal()
	b := Breakdown{
		Subtotal:      subtotal,
		ServiceCharge: decimal.Zero,
		Tax:           decimal.Zero,
		DeliveryFee:   decimal.Zero,
	}
	if schedule != nil {
		b.ServiceCharge = percentOf(subtotal, schedule.ServiceChargePercent)
		b.Tax = percentOf(subtotal, schedule.TaxRatePercent)
		b.DeliveryFee = schedule.DeliveryFee.Decimal()
	}
	b.Total = b.Subtotal.Add(b.ServiceCharge).Add(b.Tax).Add(b.DeliveryFee)
	return b
}

// Round converts the breakdown to cents. Percentage components are rounded
// half to even and the total is the sum of rounded components.
func (b Breakdown) Round() model.Pricing {
	p := model.Pricing{
		Subtotal:      model.MoneyFromDecimal(b.Subtotal),
		ServiceCharge: model.MoneyFromDecimal(b.ServiceCharge),
		Tax:           model.MoneyFromDecimal(b.Tax),
		DeliveryFee:   model.MoneyFromDecimal(b.DeliveryFee),
	}
	p.Total = p.Subtotal + p.ServiceCharge + p.Tax + p.DeliveryFee
	return p
}

// Shortfall returns how much is missing to reach minimum, never negative.
func Shortfall(subtotal, minimum model.Money) model.Money {
	if subtotal >= minimum {
		return 0
	}
	return minimum - subtotal
}

func percentOf(amount decimal.Decimal, percent float64) decimal.Decimal {
	if percent == 0 {
		return decimal.Zero
	}
	return amount.Mul(decimal.NewFromFloat(percent)).Div(hundred)
}
