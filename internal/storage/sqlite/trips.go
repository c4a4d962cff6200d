package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mmynk/tripzy/internal/models"
)

// CreateTrip persists a new trip and its roster.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO trips (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)",
			trip.ID, trip.Name, trip.OwnerID, trip.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip: %w", err)
		}
		return insertMembers(ctx, tx, trip.ID, trip.Roster)
	})
}

// GetTrip retrieves a trip by ID, including its roster in order.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	var row tripRow
	err := s.db.GetContext(ctx, &row,
		"SELECT id, name, owner_id, created_at FROM trips WHERE id = ?", tripID)
	if err != nil {
		return nil, notFound(err, "trip", tripID)
	}

	var roster models.Roster
	err = s.db.SelectContext(ctx, &roster,
		"SELECT name FROM trip_members WHERE trip_id = ? ORDER BY position", tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to get trip members: %w", err)
	}

	return &models.Trip{
		ID:        row.ID,
		Name:      row.Name,
		OwnerID:   row.OwnerID,
		Roster:    roster,
		CreatedAt: row.CreatedAt,
	}, nil
}

// ListTrips returns the owner's trips, newest first.
func (s *SQLiteStore) ListTrips(ctx context.Context, ownerID string) ([]*models.Trip, error) {
	var rows []tripRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT id, name, owner_id, created_at FROM trips WHERE owner_id = ? ORDER BY created_at DESC, id",
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	if len(rows) == 0 {
		return []*models.Trip{}, nil
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	query, args, err := sqlx.In(
		"SELECT trip_id, name FROM trip_members WHERE trip_id IN (?) ORDER BY trip_id, position", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build members query: %w", err)
	}
	var members []memberRow
	if err := s.db.SelectContext(ctx, &members, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list trip members: %w", err)
	}

	rosters := make(map[string]models.Roster, len(rows))
	for _, m := range members {
		rosters[m.TripID] = append(rosters[m.TripID], m.Name)
	}

	trips := make([]*models.Trip, len(rows))
	for i, r := range rows {
		trips[i] = &models.Trip{
			ID:        r.ID,
			Name:      r.Name,
			OwnerID:   r.OwnerID,
			Roster:    rosters[r.ID],
			CreatedAt: r.CreatedAt,
		}
	}
	return trips, nil
}

// DeleteTrip removes a trip. Members, expenses, itinerary and chat go with it.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return mustAffect(res, "trip", tripID)
}

// SaveRoster replaces the trip's member list.
func (s *SQLiteStore) SaveRoster(ctx context.Context, tripID string, roster models.Roster) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		var exists int
		if err := tx.GetContext(ctx, &exists, "SELECT COUNT(*) FROM trips WHERE id = ?", tripID); err != nil {
			return fmt.Errorf("failed to check trip: %w", err)
		}
		if exists == 0 {
			return notFound(sql.ErrNoRows, "trip", tripID)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM trip_members WHERE trip_id = ?", tripID); err != nil {
			return fmt.Errorf("failed to clear trip members: %w", err)
		}
		return insertMembers(ctx, tx, tripID, roster)
	})
}

func insertMembers(ctx context.Context, tx *sqlx.Tx, tripID string, roster models.Roster) error {
	for i, name := range roster {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO trip_members (trip_id, name, position) VALUES (?, ?, ?)",
			tripID, name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trip member: %w", err)
		}
	}
	return nil
}

// AddExpense persists an expense and its split set.
func (s *SQLiteStore) AddExpense(ctx context.Context, expense *models.Expense) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, trip_id, title, amount, payer, spent_on, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			expense.ID, expense.TripID, expense.Title, expense.Amount.String(),
			expense.Payer, expense.Date.String(), expense.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for i, name := range expense.Participants {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO expense_participants (expense_id, name, position) VALUES (?, ?, ?)",
				expense.ID, name, i,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense participant: %w", err)
			}
		}
		return nil
	})
}

// DeleteExpense removes an expense from a trip.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, tripID, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND trip_id = ?", expenseID, tripID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return mustAffect(res, "expense", expenseID)
}

// ListExpenses returns a trip's expenses in the order they were recorded.
func (s *SQLiteStore) ListExpenses(ctx context.Context, tripID string) ([]models.Expense, error) {
	var rows []expenseRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, trip_id, title, amount, payer, spent_on, created_at
		 FROM expenses WHERE trip_id = ? ORDER BY created_at, id`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	if len(rows) == 0 {
		return []models.Expense{}, nil
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	query, args, err := sqlx.In(
		"SELECT expense_id, name FROM expense_participants WHERE expense_id IN (?) ORDER BY expense_id, position", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build participants query: %w", err)
	}
	var participants []participantRow
	if err := s.db.SelectContext(ctx, &participants, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list expense participants: %w", err)
	}

	byExpense := make(map[string][]string, len(rows))
	for _, p := range participants {
		byExpense[p.ExpenseID] = append(byExpense[p.ExpenseID], p.Name)
	}

	expenses := make([]models.Expense, len(rows))
	for i, r := range rows {
		date, err := models.ParseDate(r.SpentOn)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", r.ID, err)
		}
		expenses[i] = models.Expense{
			ID:           r.ID,
			TripID:       r.TripID,
			Title:        r.Title,
			Amount:       r.Amount,
			Payer:        r.Payer,
			Date:         date,
			Participants: byExpense[r.ID],
			CreatedAt:    r.CreatedAt,
		}
	}
	return expenses, nil
}
