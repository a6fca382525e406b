package handler

import "github.com/shopspring/decimal"

// toDecimalPtr lifts a request float into the *decimal.Decimal the
// application layer expects for optional amounts.
func toDecimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}
