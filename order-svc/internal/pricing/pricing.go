// Package pricing computes cart line and order amounts with exact decimals.
package pricing

import (
	"math"

	"qrmenu/order-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// UnitPrice adds every selected option's adjustment to the base price. The
// result is not floored at zero.
func UnitPrice(base decimal.Decimal, options []domain.SelectedOption) decimal.Decimal {
	price := base
	for _, opt := range options {
		price = price.Add(opt.PriceAdjustment)
	}
	return price
}

// CurrencyPlaces is the precision amounts are stored with.
const CurrencyPlaces = 2

// Currency rounds an amount to CurrencyPlaces, half away from zero.
func Currency(v decimal.Decimal) decimal.Decimal {
	return v.Round(CurrencyPlaces)
}

func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

func Total(items []domain.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal)
	}
	return total
}

// FromFloat rejects NaN and infinities, which decimal cannot represent.
func FromFloat(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, domain.ErrInvalidPriceInput
	}
	return decimal.NewFromFloat(v), nil
}
