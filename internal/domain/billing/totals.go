package billing

import "github.com/shopspring/decimal"

// Totals is the aggregated money movement of a payment: the sum of the
// charge-line bases, the sum of every discount applied (line-level plus
// transaction-level), and the net amount.
type Totals struct {
	Base     decimal.Decimal
	Discount decimal.Decimal
	Amount   decimal.Decimal
}

// AggregateLines sums the charge lines and folds in transaction-level
// discounts. Line-level discounts are already embedded in each line's
// DiscountAmount, so they are never counted twice. The transaction-level
// discount is clamped to the remaining net so the total never goes negative.
func AggregateLines(lines []ChargeLine, transactionDiscount decimal.Decimal) Totals {
	base := decimal.Zero
	lineDiscount := decimal.Zero
	for _, line := range lines {
		base = base.Add(line.BaseAmount)
		lineDiscount = lineDiscount.Add(line.DiscountAmount)
	}

	remaining := base.Sub(lineDiscount)
	if transactionDiscount.GreaterThan(remaining) {
		transactionDiscount = remaining
	}
	if transactionDiscount.IsNegative() {
		transactionDiscount = decimal.Zero
	}

	discount := lineDiscount.Add(transactionDiscount)
	return Totals{
		Base:     base,
		Discount: discount,
		Amount:   base.Sub(discount),
	}
}
