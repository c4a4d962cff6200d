package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripzy/internal/models"
)

// DefaultCurrencySymbol prefixes displayed amounts unless configured otherwise.
const DefaultCurrencySymbol = "$"

// Line is one rendered balance row.
type Line struct {
	Participant string
	Amount      decimal.Decimal
	Text        string
}

// Describe renders a balance in the "you owe / owes you" framing the
// front-end shows next to each member. Negative balances read "You owe",
// positive ones "Owes you". Amounts are shown to two decimal places.
func Describe(balance decimal.Decimal, symbol string) string {
	switch balance.Sign() {
	case -1:
		return fmt.Sprintf("You owe %s%s", symbol, balance.Neg().StringFixed(2))
	case 1:
		return fmt.Sprintf("Owes you %s%s", symbol, balance.StringFixed(2))
	default:
		return "Settled up"
	}
}

// DescribeAll renders every roster member except SelfParticipant, in roster order.
func DescribeAll(roster models.Roster, balances map[string]decimal.Decimal, symbol string) []Line {
	lines := make([]Line, 0, len(roster))
	for _, member := range roster {
		if member == models.SelfParticipant {
			continue
		}
		amount := balances[member]
		lines = append(lines, Line{
			Participant: member,
			Amount:      amount,
			Text:        Describe(amount, symbol),
		})
	}
	return lines
}
