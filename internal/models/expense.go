package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day, always in UTC.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current UTC date.
func Today() Date {
	y, m, d := time.Now().UTC().Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// InvalidExpenseError is returned when an expense fails validation at the
// point it would be recorded. The rejected expense never enters the list.
type InvalidExpenseError struct {
	Field  string
	Reason string
}

func (e *InvalidExpenseError) Error() string {
	return fmt.Sprintf("invalid expense: %s %s", e.Field, e.Reason)
}

// Expense is a cost fronted by one participant and shared evenly by a set of participants.
type Expense struct {
	// ID is a UUIDv7, so IDs sort by creation time.
	ID string

	// TripID is the trip this expense belongs to.
	TripID string

	// Title is a free-text label (e.g., "Dinner at Restaurant").
	Title string

	// Amount is the strictly positive total of the expense.
	Amount decimal.Decimal

	// Payer is the roster name of whoever paid.
	// The payer need not be one of the Participants.
	Payer string

	// Date is the calendar date of the expense.
	Date Date

	// Participants is the non-empty set of roster names sharing the cost.
	Participants []string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseInput carries the user-supplied fields of a new expense.
type ExpenseInput struct {
	Title        string
	Amount       decimal.Decimal
	Payer        string
	Date         Date
	Participants []string
}

// NewExpense validates input and returns a new expense with a fresh ID.
// A zero Date defaults to today. Participant names are trimmed and repeated
// names collapsed, keeping first-seen order.
func NewExpense(in ExpenseInput) (Expense, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Expense{}, &InvalidExpenseError{Field: "title", Reason: "cannot be empty"}
	}
	if !in.Amount.IsPositive() {
		return Expense{}, &InvalidExpenseError{Field: "amount", Reason: "must be greater than zero"}
	}
	payer := strings.TrimSpace(in.Payer)
	if payer == "" {
		return Expense{}, &InvalidExpenseError{Field: "payer", Reason: "cannot be empty"}
	}

	participants := make([]string, 0, len(in.Participants))
	seen := make(map[string]bool, len(in.Participants))
	for _, p := range in.Participants {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		participants = append(participants, p)
	}
	if len(participants) == 0 {
		return Expense{}, &InvalidExpenseError{Field: "participants", Reason: "must name at least one participant"}
	}

	date := in.Date
	if date.IsZero() {
		date = Today()
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Expense{}, fmt.Errorf("generating expense id: %w", err)
	}

	return Expense{
		ID:           id.String(),
		Title:        title,
		Amount:       in.Amount,
		Payer:        payer,
		Date:         date,
		Participants: participants,
		CreatedAt:    time.Now().Unix(),
	}, nil
}

// References reports whether name is the payer or one of the participants.
func (e Expense) References(name string) bool {
	if e.Payer == name {
		return true
	}
	for _, p := range e.Participants {
		if p == name {
			return true
		}
	}
	return false
}
