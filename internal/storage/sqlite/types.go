package sqlite

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/tripzy/internal/models"
)

// Row types mirror table columns; the store converts them to models.

type userRow struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	DisplayName  string `db:"display_name"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    int64  `db:"created_at"`
	UpdatedAt    int64  `db:"updated_at"`
}

func (r userRow) toModel() *models.User {
	return &models.User{
		ID:           r.ID,
		Email:        r.Email,
		DisplayName:  r.DisplayName,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type tripRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	OwnerID   string `db:"owner_id"`
	CreatedAt int64  `db:"created_at"`
}

type memberRow struct {
	TripID string `db:"trip_id"`
	Name   string `db:"name"`
}

type expenseRow struct {
	ID        string          `db:"id"`
	TripID    string          `db:"trip_id"`
	Title     string          `db:"title"`
	Amount    decimal.Decimal `db:"amount"`
	Payer     string          `db:"payer"`
	SpentOn   string          `db:"spent_on"`
	CreatedAt int64           `db:"created_at"`
}

type participantRow struct {
	ExpenseID string `db:"expense_id"`
	Name      string `db:"name"`
}

type activityRow struct {
	ID          string `db:"id"`
	Day         int    `db:"day"`
	Time        string `db:"time"`
	Title       string `db:"title"`
	Location    string `db:"location"`
	Description string `db:"description"`
}

type chatMemberRow struct {
	ID     string `db:"id"`
	TripID string `db:"trip_id"`
	Name   string `db:"name"`
	Avatar string `db:"avatar"`
	Role   string `db:"role"`
}

type chatMessageRow struct {
	ID     string `db:"id"`
	TripID string `db:"trip_id"`
	Sender string `db:"sender"`
	Text   string `db:"text"`
	SentAt int64  `db:"sent_at"`
}
