package helper

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_manager/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestLineSubtotal(t *testing.T) {
	line := model.CartLine{
		UnitPrice: dec("4.50"),
		Quantity:  2,
		Modifiers: []model.CartModifier{
			{OptionName: "Oat milk", PriceAdjustment: dec("0.75")},
			{OptionName: "Extra shot", PriceAdjustment: dec("1.00")},
		},
	}
	got, err := LineSubtotal(line)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("12.50")), "got %s", got)
}

func TestLineSubtotalRejectsZeroQuantity(t *testing.T) {
	_, err := LineSubtotal(model.CartLine{UnitPrice: dec("4.50"), Quantity: 0})
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
}

func TestLineSubtotalRejectsNegativeUnit(t *testing.T) {
	_, err := LineSubtotal(model.CartLine{UnitPrice: dec("-1.00"), Quantity: 1})
	require.Error(t, err)

	// modifiers may discount, but never below zero
	_, err = LineSubtotal(model.CartLine{
		UnitPrice: dec("1.00"),
		Quantity:  1,
		Modifiers: []model.CartModifier{{PriceAdjustment: dec("-2.00")}},
	})
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
}

func TestCartTaxPerLineRounding(t *testing.T) {
	// two lines at different rates; each line's tax rounds to cents first
	lines := []model.CartLine{
		{UnitPrice: dec("4.50"), Quantity: 2, TaxRate: dec("8")},     // 9.00 * 8% = 0.72
		{UnitPrice: dec("1.80"), Quantity: 1, TaxRate: dec("8.875")}, // 1.80 * 8.875% = 0.15975 -> 0.16
	}
	tax, err := CartTax(lines)
	require.NoError(t, err)
	assert.True(t, tax.Equal(dec("0.88")), "got %s", tax)
}

func TestOrderTotalScenario(t *testing.T) {
	// 2 × 4.50 + 1.80 = 10.80, 8% tax, 1.00 discount, 10% tip on subtotal
	lines := []model.CartLine{
		{UnitPrice: dec("4.50"), Quantity: 2, TaxRate: dec("8")},
		{UnitPrice: dec("1.80"), Quantity: 1, TaxRate: dec("8")},
	}
	subtotal, err := CartSubtotal(lines)
	require.NoError(t, err)
	require.True(t, subtotal.Equal(dec("10.80")), "got %s", subtotal)

	tax, err := CartTax(lines)
	require.NoError(t, err)
	require.True(t, tax.Equal(dec("0.86")), "got %s", tax) // 0.72 + 0.14(4) per line

	tip, err := ResolveTip(subtotal, "10", "")
	require.NoError(t, err)
	require.True(t, tip.Equal(dec("1.08")), "got %s", tip)

	total, err := OrderTotal(subtotal, tax, dec("1.00"), tip)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("11.74")), "got %s", total)
}

func TestOrderTotalRejectsExcessDiscount(t *testing.T) {
	_, err := OrderTotal(dec("5.00"), dec("0.40"), dec("6.00"), decimal.Zero)
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
}

func TestOrderTotalRejectsNegativeInputs(t *testing.T) {
	_, err := OrderTotal(dec("5.00"), dec("-0.01"), decimal.Zero, decimal.Zero)
	require.Error(t, err)
}

func TestResolveTip(t *testing.T) {
	tip, err := ResolveTip(dec("20.00"), "", "3.50")
	require.NoError(t, err)
	assert.True(t, tip.Equal(dec("3.50")))

	tip, err = ResolveTip(dec("20.00"), "", "")
	require.NoError(t, err)
	assert.True(t, tip.IsZero())

	_, err = ResolveTip(dec("20.00"), "10", "3.50")
	require.Error(t, err)

	_, err = ResolveTip(dec("20.00"), "-5", "")
	require.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	got, err := ParseAmount("", "discount")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = ParseAmount("12.345", "discount")
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("12.35")))

	_, err = ParseAmount("abc", "discount")
	require.Error(t, err)

	_, err = ParseAmount("-1", "discount")
	require.Error(t, err)
}

func TestTotalsNeverDriftFromLines(t *testing.T) {
	// whatever the cart holds, subtotal must equal the sum of line subtotals
	// and the total must reconcile to subtotal - discount + tax + tip
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		n := 1 + r.Intn(6)
		lines := make([]model.CartLine, n)
		for j := range lines {
			lines[j] = model.CartLine{
				UnitPrice: decimal.NewFromInt(int64(r.Intn(2000))).Div(dec("100")),
				Quantity:  1 + r.Intn(5),
				TaxRate:   decimal.NewFromInt(int64(r.Intn(15))),
			}
		}
		subtotal, err := CartSubtotal(lines)
		require.NoError(t, err)

		check := decimal.Zero
		for _, line := range lines {
			s, err := LineSubtotal(line)
			require.NoError(t, err)
			check = check.Add(s)
		}
		require.True(t, subtotal.Equal(check), "subtotal %s != sum of lines %s", subtotal, check)

		tax, err := CartTax(lines)
		require.NoError(t, err)

		total, err := OrderTotal(subtotal, tax, decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		require.True(t, total.Equal(subtotal.Add(tax)), "total %s drifted", total)
	}
}
