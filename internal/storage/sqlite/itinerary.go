package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mmynk/tripzy/internal/models"
)

// SaveItinerary replaces the trip's itinerary with it.
func (s *SQLiteStore) SaveItinerary(ctx context.Context, it *models.Itinerary) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO itineraries (trip_id, days) VALUES (?, ?)
			 ON CONFLICT(trip_id) DO UPDATE SET days = excluded.days`,
			it.TripID, len(it.Days),
		)
		if err != nil {
			return fmt.Errorf("failed to save itinerary: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM itinerary_activities WHERE trip_id = ?", it.TripID); err != nil {
			return fmt.Errorf("failed to clear activities: %w", err)
		}

		for _, day := range it.Days {
			for pos, a := range day.Activities {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO itinerary_activities (id, trip_id, day, position, time, title, location, description)
					 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
					a.ID, it.TripID, day.Number, pos, a.Time, a.Title, a.Location, a.Description,
				)
				if err != nil {
					return fmt.Errorf("failed to insert activity: %w", err)
				}
			}
		}
		return nil
	})
}

// GetItinerary loads a trip's itinerary. Days without activities are kept.
func (s *SQLiteStore) GetItinerary(ctx context.Context, tripID string) (*models.Itinerary, error) {
	var days int
	if err := s.db.GetContext(ctx, &days, "SELECT days FROM itineraries WHERE trip_id = ?", tripID); err != nil {
		return nil, notFound(err, "itinerary", tripID)
	}

	var rows []activityRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT id, day, time, title, location, description
		 FROM itinerary_activities WHERE trip_id = ? ORDER BY day, position`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	it := &models.Itinerary{TripID: tripID, Days: make([]models.Day, days)}
	for i := range it.Days {
		it.Days[i] = models.Day{Number: i + 1, Activities: []models.Activity{}}
	}
	for _, r := range rows {
		if r.Day < 1 || r.Day > days {
			return nil, fmt.Errorf("activity %s is on day %d of a %d-day itinerary", r.ID, r.Day, days)
		}
		d := &it.Days[r.Day-1]
		d.Activities = append(d.Activities, models.Activity{
			ID:          r.ID,
			Time:        r.Time,
			Title:       r.Title,
			Location:    r.Location,
			Description: r.Description,
		})
	}
	return it, nil
}
