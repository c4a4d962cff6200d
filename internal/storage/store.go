// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripzy/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique key is already taken.
	ErrConflict = errors.New("already exists")
)

// UserStore persists accounts.
type UserStore interface {
	// CreateUser returns ErrConflict if the email is already registered.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// TripStore persists trips, their rosters and expenses.
// It hands out snapshots; balances are always derived by the caller.
type TripStore interface {
	CreateTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)
	ListTrips(ctx context.Context, ownerID string) ([]*models.Trip, error)
	DeleteTrip(ctx context.Context, tripID string) error

	// SaveRoster replaces the trip's participant list, keeping its order.
	SaveRoster(ctx context.Context, tripID string, roster models.Roster) error

	AddExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, tripID, expenseID string) error
	// ListExpenses returns the trip's expenses in the order they were recorded.
	ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error)
}

// WaitlistStore persists waitlist signups.
type WaitlistStore interface {
	// AddWaitlistEntry returns ErrConflict if the email already signed up.
	AddWaitlistEntry(ctx context.Context, entry *models.WaitlistEntry) error
	CountWaitlist(ctx context.Context) (int, error)
}

// ItineraryStore persists trip itineraries.
type ItineraryStore interface {
	// SaveItinerary replaces the stored itinerary of it.TripID.
	SaveItinerary(ctx context.Context, it *models.Itinerary) error
	GetItinerary(ctx context.Context, tripID string) (*models.Itinerary, error)
}

// ChatStore persists group chat members and messages.
type ChatStore interface {
	AddChatMember(ctx context.Context, member *models.ChatMember) error
	RemoveChatMember(ctx context.Context, tripID, memberID string) error
	ListChatMembers(ctx context.Context, tripID string) ([]*models.ChatMember, error)
	AddChatMessage(ctx context.Context, msg *models.ChatMessage) error
	ListChatMessages(ctx context.Context, tripID string) ([]*models.ChatMessage, error)
}

// Store defines every storage operation the services need.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	TripStore
	WaitlistStore
	ItineraryStore
	ChatStore

	// Close releases any resources held by the store.
	Close() error
}
