package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripzy/internal/models"
)

// settleThreshold is the smallest amount worth a settlement transfer.
var settleThreshold = decimal.New(1, -2)

// Transfer is a suggested payment that settles part of the group's debts.
type Transfer struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// ComputeBalances derives every roster member's signed net balance from the
// expense list. Positive means the group owes this member; negative means
// this member owes the group.
//
// Algorithm:
//   - Every roster member starts at zero
//   - For each expense, share = amount / |participants|
//   - Each participant other than the payer moves one share to the payer
//
// The payer's own share is self-financed and produces no transfer, so an
// expense split only with its payer changes nothing. A payer outside the
// split set is owed every share.
//
// Every roster member appears in the result, and the values always sum to
// exactly zero because each transfer adds and subtracts the same decimal.
// The function is pure; it recomputes from scratch on every call.
func ComputeBalances(expenses []models.Expense, roster models.Roster) (map[string]decimal.Decimal, error) {
	if len(roster) == 0 {
		return nil, &InvalidRosterError{Reason: "roster is empty"}
	}

	balances := make(map[string]decimal.Decimal, len(roster))
	for _, member := range roster {
		balances[member] = decimal.Zero
	}

	for _, expense := range expenses {
		if _, ok := balances[expense.Payer]; !ok {
			return nil, &DataIntegrityError{ExpenseID: expense.ID, Participant: expense.Payer}
		}
		if len(expense.Participants) == 0 {
			return nil, &DataIntegrityError{ExpenseID: expense.ID, Reason: "expense has no participants"}
		}
		for _, participant := range expense.Participants {
			if _, ok := balances[participant]; !ok {
				return nil, &DataIntegrityError{ExpenseID: expense.ID, Participant: participant}
			}
		}

		share := Share(expense.Amount, len(expense.Participants))
		for _, participant := range expense.Participants {
			if participant == expense.Payer {
				continue
			}
			balances[participant] = balances[participant].Sub(share)
			balances[expense.Payer] = balances[expense.Payer].Add(share)
		}
	}

	return balances, nil
}

// SuggestSettlements turns net balances into a short list of transfers that
// zero them, matching the largest debts with the largest credits first.
// Names break ties so the result is deterministic. Remainders below one cent
// are dropped.
func SuggestSettlements(balances map[string]decimal.Decimal) []Transfer {
	type position struct {
		name   string
		amount decimal.Decimal // always positive
	}

	var debtors, creditors []position
	for name, balance := range balances {
		switch balance.Sign() {
		case -1:
			debtors = append(debtors, position{name: name, amount: balance.Neg()})
		case 1:
			creditors = append(creditors, position{name: name, amount: balance})
		}
	}

	byAmount := func(list []position) func(i, j int) bool {
		return func(i, j int) bool {
			if c := list[i].amount.Cmp(list[j].amount); c != 0 {
				return c > 0
			}
			return list[i].name < list[j].name
		}
	}
	sort.Slice(debtors, byAmount(debtors))
	sort.Slice(creditors, byAmount(creditors))

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)

		if amount.GreaterThanOrEqual(settleThreshold) {
			transfers = append(transfers, Transfer{
				From:   debtors[i].name,
				To:     creditors[j].name,
				Amount: amount,
			})
		}

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		if debtors[i].amount.LessThan(settleThreshold) {
			i++
		}
		if creditors[j].amount.LessThan(settleThreshold) {
			j++
		}
	}

	return transfers
}
