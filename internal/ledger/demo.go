package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/tripzy/internal/models"
)

// Demo returns a ledger seeded with a small sample trip.
func Demo() *Ledger {
	roster := models.Roster{"Alice", "Bob", "Charlie", models.SelfParticipant}
	l, err := New(roster, nil)
	if err != nil {
		panic(err)
	}

	seed := []models.ExpenseInput{
		{
			Title:        "Dinner at Restaurant",
			Amount:       decimal.NewFromInt(120),
			Payer:        "Alice",
			Date:         models.NewDate(2023, time.October, 15),
			Participants: []string{"Alice", "Bob", "Charlie"},
		},
		{
			Title:        "Taxi to Hotel",
			Amount:       decimal.NewFromInt(45),
			Payer:        "Bob",
			Date:         models.NewDate(2023, time.October, 16),
			Participants: []string{"Alice", "Bob"},
		},
		{
			Title:        "Museum Tickets",
			Amount:       decimal.NewFromInt(60),
			Payer:        "Charlie",
			Date:         models.NewDate(2023, time.October, 17),
			Participants: []string{"Alice", "Bob", "Charlie"},
		},
	}
	for _, in := range seed {
		if _, err := l.AddExpense(in); err != nil {
			panic(err)
		}
	}
	return l
}
