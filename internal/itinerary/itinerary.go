// Package itinerary edits day-by-day trip plans.
//
// Every operation checks its arguments before touching the itinerary, so a
// failed call leaves it unchanged.
package itinerary

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/tripzy/internal/models"
)

var (
	ErrDayOutOfRange    = errors.New("day out of range")
	ErrIndexOutOfRange  = errors.New("activity index out of range")
	ErrActivityNotFound = errors.New("activity not found")
	ErrEmptyTitle       = errors.New("activity title cannot be empty")
	ErrTooManyDays      = fmt.Errorf("an itinerary has at most %d days", MaxDays)
)

// MaxDays is the longest trip an itinerary can hold.
const MaxDays = 30

// New returns an empty itinerary with the given number of days.
// Fewer than one day yields a single day; more than MaxDays is
// ErrTooManyDays.
func New(tripID string, days int) (*models.Itinerary, error) {
	if days > MaxDays {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyDays, days)
	}
	if days < 1 {
		days = 1
	}
	it := &models.Itinerary{TripID: tripID, Days: make([]models.Day, days)}
	for i := range it.Days {
		it.Days[i].Number = i + 1
	}
	return it, nil
}

// AddActivity appends a to the 1-based day and returns it with its ID set.
func AddActivity(it *models.Itinerary, day int, a models.Activity) (models.Activity, error) {
	d, err := dayAt(it, day)
	if err != nil {
		return models.Activity{}, err
	}

	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return models.Activity{}, ErrEmptyTitle
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	d.Activities = append(d.Activities, a)
	return a, nil
}

// Move takes the activity at fromIndex of fromDay and inserts it at toIndex
// of toDay. A toIndex past the end of the destination appends.
func Move(it *models.Itinerary, fromDay, fromIndex, toDay, toIndex int) error {
	src, err := dayAt(it, fromDay)
	if err != nil {
		return err
	}
	dst, err := dayAt(it, toDay)
	if err != nil {
		return err
	}
	if fromIndex < 0 || fromIndex >= len(src.Activities) {
		return fmt.Errorf("%w: day %d has no activity %d", ErrIndexOutOfRange, fromDay, fromIndex)
	}
	if toIndex < 0 {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, toIndex)
	}

	moved := src.Activities[fromIndex]
	src.Activities = slices.Delete(src.Activities, fromIndex, fromIndex+1)
	toIndex = min(toIndex, len(dst.Activities))
	dst.Activities = slices.Insert(dst.Activities, toIndex, moved)
	return nil
}

// Remove deletes the activity with the given ID from whichever day holds it.
func Remove(it *models.Itinerary, activityID string) error {
	for i := range it.Days {
		d := &it.Days[i]
		idx := slices.IndexFunc(d.Activities, func(a models.Activity) bool { return a.ID == activityID })
		if idx >= 0 {
			d.Activities = slices.Delete(d.Activities, idx, idx+1)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrActivityNotFound, activityID)
}

func dayAt(it *models.Itinerary, day int) (*models.Day, error) {
	if day < 1 || day > len(it.Days) {
		return nil, fmt.Errorf("%w: %d of %d", ErrDayOutOfRange, day, len(it.Days))
	}
	return &it.Days[day-1], nil
}
