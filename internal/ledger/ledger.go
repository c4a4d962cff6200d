// Package ledger holds a trip's roster and expense list and keeps its
// balances in step with them.
//
// A Ledger is changed only through its commands. Each command validates
// first, then applies the change and recomputes balances with the
// calculator; a rejected command leaves the ledger exactly as it was.
package ledger

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripzy/internal/calculator"
	"github.com/mmynk/tripzy/internal/models"
)

var (
	ErrUnknownParticipant = errors.New("participant is not on the roster")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrMemberReferenced   = errors.New("participant has expenses and cannot be removed")
)

// Ledger is not safe for concurrent use.
type Ledger struct {
	roster   models.Roster
	expenses []models.Expense
	balances map[string]decimal.Decimal
}

// New builds a ledger from a roster and previously recorded expenses.
// The roster must hold SelfParticipant and unique, trimmed, non-blank names;
// otherwise New returns a *calculator.InvalidRosterError. It also fails if
// any expense references a name that is not on the roster.
func New(roster models.Roster, expenses []models.Expense) (*Ledger, error) {
	if err := checkRoster(roster); err != nil {
		return nil, err
	}
	l := &Ledger{
		roster:   slices.Clone(roster),
		expenses: slices.Clone(expenses),
	}
	balances, err := calculator.ComputeBalances(l.expenses, l.roster)
	if err != nil {
		return nil, err
	}
	l.balances = balances
	return l, nil
}

// Roster returns a copy of the participant list.
func (l *Ledger) Roster() models.Roster {
	return slices.Clone(l.roster)
}

// Expenses returns a copy of the expense list in insertion order.
func (l *Ledger) Expenses() []models.Expense {
	return slices.Clone(l.expenses)
}

// Balances returns a copy of the current balances.
func (l *Ledger) Balances() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(l.balances))
	for k, v := range l.balances {
		out[k] = v
	}
	return out
}

// Balance returns one member's balance.
func (l *Ledger) Balance(name string) (decimal.Decimal, bool) {
	b, ok := l.balances[name]
	return b, ok
}

// AddExpense validates in, appends the resulting expense and returns it.
func (l *Ledger) AddExpense(in models.ExpenseInput) (models.Expense, error) {
	expense, err := models.NewExpense(in)
	if err != nil {
		return models.Expense{}, err
	}
	if !l.roster.Contains(expense.Payer) {
		return models.Expense{}, fmt.Errorf("%w: payer %s", ErrUnknownParticipant, expense.Payer)
	}
	for _, p := range expense.Participants {
		if !l.roster.Contains(p) {
			return models.Expense{}, fmt.Errorf("%w: %s", ErrUnknownParticipant, p)
		}
	}

	expenses := append(slices.Clone(l.expenses), expense)
	if err := l.commit(l.roster, expenses); err != nil {
		return models.Expense{}, err
	}
	return expense, nil
}

// DeleteExpense removes the expense with the given ID.
func (l *Ledger) DeleteExpense(id string) error {
	idx := slices.IndexFunc(l.expenses, func(e models.Expense) bool { return e.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrExpenseNotFound, id)
	}
	expenses := slices.Delete(slices.Clone(l.expenses), idx, idx+1)
	return l.commit(l.roster, expenses)
}

// AddMember appends name to the roster. The new member starts settled.
func (l *Ledger) AddMember(name string) (string, error) {
	roster, err := l.roster.With(name)
	if err != nil {
		return "", err
	}
	if err := l.commit(roster, l.expenses); err != nil {
		return "", err
	}
	return roster[len(roster)-1], nil
}

// RemoveMember drops name from the roster. Members referenced by any
// expense, as payer or participant, cannot be removed.
func (l *Ledger) RemoveMember(name string) error {
	name = strings.TrimSpace(name)
	roster, err := l.roster.Without(name)
	if err != nil {
		return err
	}
	for _, e := range l.expenses {
		if e.References(name) {
			return fmt.Errorf("%w: %s appears in %q", ErrMemberReferenced, name, e.Title)
		}
	}
	return l.commit(roster, l.expenses)
}

func checkRoster(roster models.Roster) error {
	if !roster.Contains(models.SelfParticipant) {
		return &calculator.InvalidRosterError{Reason: fmt.Sprintf("%q is missing", models.SelfParticipant)}
	}
	seen := make(map[string]struct{}, len(roster))
	for _, name := range roster {
		if name == "" || name != strings.TrimSpace(name) {
			return &calculator.InvalidRosterError{Reason: fmt.Sprintf("malformed name %q", name)}
		}
		if _, dup := seen[name]; dup {
			return &calculator.InvalidRosterError{Reason: fmt.Sprintf("%q appears twice", name)}
		}
		seen[name] = struct{}{}
	}
	return nil
}

// commit recomputes balances for the proposed state and only then swaps it in.
func (l *Ledger) commit(roster models.Roster, expenses []models.Expense) error {
	balances, err := calculator.ComputeBalances(expenses, roster)
	if err != nil {
		return err
	}
	l.roster = roster
	l.expenses = expenses
	l.balances = balances
	return nil
}
