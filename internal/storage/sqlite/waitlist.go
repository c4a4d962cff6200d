package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/tripzy/internal/models"
	"github.com/mmynk/tripzy/internal/storage"
)

// AddWaitlistEntry stores a signup. A repeated email is a conflict.
func (s *SQLiteStore) AddWaitlistEntry(ctx context.Context, entry *models.WaitlistEntry) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO waitlist (id, name, email, phone, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(email) DO NOTHING`,
		entry.ID, entry.Name, entry.Email, entry.Phone, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert waitlist entry: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to insert waitlist entry: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("waitlist entry %s: %w", entry.Email, storage.ErrConflict)
	}
	return nil
}

// CountWaitlist returns the number of signups.
func (s *SQLiteStore) CountWaitlist(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM waitlist"); err != nil {
		return 0, fmt.Errorf("failed to count waitlist: %w", err)
	}
	return count, nil
}
