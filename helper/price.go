package helper

import (
	"github.com/shopspring/decimal"

	"pos_manager/model"
)

// Pricing engine. All arithmetic runs on decimals so displayed totals
// reconcile exactly with stored totals; nothing here ever clamps a negative
// value to zero.

var oneHundred = decimal.NewFromInt(100)

// LineSubtotal computes (unit price + sum of modifier adjustments) × quantity.
// Quantity below 1 is a caller bug at this layer: the cart treats a reduction
// to zero as line removal and never prices it.
func LineSubtotal(line model.CartLine) (decimal.Decimal, error) {
	if line.Quantity < 1 {
		return decimal.Zero, model.NewValidationError("quantity must be at least 1")
	}
	if line.UnitPrice.IsNegative() {
		return decimal.Zero, model.NewValidationError("unit price cannot be negative")
	}
	unit := line.UnitPrice
	for _, m := range line.Modifiers {
		unit = unit.Add(m.PriceAdjustment)
	}
	if unit.IsNegative() {
		return decimal.Zero, model.NewValidationError("modifiers drive the unit price negative")
	}
	qty := decimal.NewFromInt(int64(line.Quantity))
	return unit.Mul(qty).Round(2), nil
}

// CartSubtotal sums line subtotals.
func CartSubtotal(lines []model.CartLine) (decimal.Decimal, error) {
	subtotal := decimal.Zero
	for _, line := range lines {
		s, err := LineSubtotal(line)
		if err != nil {
			return decimal.Zero, err
		}
		subtotal = subtotal.Add(s)
	}
	return subtotal, nil
}

// CartTax accumulates tax per line, so lines with different tax rates mix
// correctly. Each line's tax is rounded to cents before summing, matching
// what a receipt prints per line.
func CartTax(lines []model.CartLine) (decimal.Decimal, error) {
	tax := decimal.Zero
	for _, line := range lines {
		s, err := LineSubtotal(line)
		if err != nil {
			return decimal.Zero, err
		}
		if line.TaxRate.IsNegative() {
			return decimal.Zero, model.NewValidationError("tax rate cannot be negative")
		}
		tax = tax.Add(s.Mul(line.TaxRate).Div(oneHundred).Round(2))
	}
	return tax, nil
}

// OrderTotal computes subtotal - discount + tax + tip. All inputs must be
// non-negative and the result may not go below zero; the discount is rejected
// rather than clamped when it exceeds what it discounts.
func OrderTotal(subtotal, tax, discount, tip decimal.Decimal) (decimal.Decimal, error) {
	for _, v := range []decimal.Decimal{subtotal, tax, discount, tip} {
		if v.IsNegative() {
			return decimal.Zero, model.NewValidationError("monetary amounts cannot be negative")
		}
	}
	total := subtotal.Sub(discount).Add(tax).Add(tip)
	if total.IsNegative() {
		return decimal.Zero, model.NewValidationError("discount exceeds order total")
	}
	return total.Round(2), nil
}

// ResolveTip converts the chosen tip mode to an absolute amount. percent and
// amount are mutually exclusive; both empty means no tip.
func ResolveTip(subtotal decimal.Decimal, percent, amount string) (decimal.Decimal, error) {
	if percent != "" && amount != "" {
		return decimal.Zero, model.NewValidationError("choose either a tip percentage or a tip amount")
	}
	if percent != "" {
		p, err := decimal.NewFromString(percent)
		if err != nil || p.IsNegative() {
			return decimal.Zero, model.NewValidationError("invalid tip percentage")
		}
		return subtotal.Mul(p).Div(oneHundred).Round(2), nil
	}
	if amount != "" {
		a, err := decimal.NewFromString(amount)
		if err != nil || a.IsNegative() {
			return decimal.Zero, model.NewValidationError("invalid tip amount")
		}
		return a.Round(2), nil
	}
	return decimal.Zero, nil
}

// ParseAmount parses an optional non-negative monetary field ("" means zero).
func ParseAmount(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, model.NewValidationError("invalid " + field)
	}
	if d.IsNegative() {
		return decimal.Zero, model.NewValidationError(field + " cannot be negative")
	}
	return d.Round(2), nil
}
