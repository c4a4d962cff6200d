package calculator

import (
	"github.com/shopspring/decimal"
)

// Share returns one participant's portion of amount split evenly n ways.
// Division keeps decimal.DivisionPrecision digits; callers round only for display.
func Share(amount decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return amount.Div(decimal.NewFromInt(int64(n)))
}

// SplitEvenly returns every participant's share of amount.
func SplitEvenly(amount decimal.Decimal, participants []string) map[string]decimal.Decimal {
	splits := make(map[string]decimal.Decimal, len(participants))
	share := Share(amount, len(participants))
	for _, p := range participants {
		splits[p] = share
	}
	return splits
}
