package domain

import "github.com/shopspring/decimal"

// PriceQuote price breakdown of a stay
type PriceQuote struct {
	Nights      int
	NightlyRate decimal.Decimal
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}

// CalculatePrice computes subtotal = nights × rate, tax = subtotal × TaxRate, total = subtotal + tax.
// Subtotal is exact; only the tax is rounded to cents.
func CalculatePrice(nights int, nightlyRate decimal.Decimal) (PriceQuote, error) {
	if nights <= 0 {
		return PriceQuote{}, ErrInvalidNights
	}
	if nightlyRate.IsNegative() {
		return PriceQuote{}, ErrNegativeRate
	}

	subtotal := nightlyRate.Mul(decimal.NewFromInt(int64(nights)))
	tax := TaxFor(subtotal)

	return PriceQuote{
		Nights:      nights,
		NightlyRate: nightlyRate,
		Subtotal:    subtotal,
		Tax:         tax,
		Total:       subtotal.Add(tax),
	}, nil
}

// TaxFor returns tax on the subtotal rounded half-up to cents
func TaxFor(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(MoneyPlaces)
}
