package service

import (
	"context"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/tripzy/internal/api"
	"github.com/mmynk/tripzy/internal/itinerary"
	"github.com/mmynk/tripzy/internal/models"
	"github.com/mmynk/tripzy/internal/storage"
)

// ItineraryService edits the day-by-day plan of a trip.
type ItineraryService struct {
	store storage.Store
	mu    sync.Mutex
	options
}

var _ api.ItineraryServiceHandler = (*ItineraryService)(nil)

func NewItineraryService(store storage.Store, opts ...Option) *ItineraryService {
	return &ItineraryService{store: store, options: newOptions(opts)}
}

// edit loads the trip's itinerary, applies fn and saves the result.
func (s *ItineraryService) edit(ctx context.Context, tripID string, fn func(it *models.Itinerary) error) (*models.Itinerary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := ownedTrip(ctx, s.store, tripID)
	if err != nil {
		return nil, err
	}
	it, err := s.store.GetItinerary(ctx, trip.ID)
	if err != nil {
		return nil, err
	}
	if err := fn(it); err != nil {
		return nil, err
	}
	if err := s.store.SaveItinerary(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// CreateItinerary replaces the trip's itinerary with an empty one.
func (s *ItineraryService) CreateItinerary(ctx context.Context, req *connect.Request[api.CreateItineraryRequest]) (*connect.Response[api.CreateItineraryResponse], error) {
	s.logger.Info("CreateItinerary request received", "trip_id", req.Msg.TripID, "days", req.Msg.Days)

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := ownedTrip(ctx, s.store, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to create itinerary", err, "trip_id", req.Msg.TripID)
	}

	it, err := itinerary.New(trip.ID, req.Msg.Days)
	if err != nil {
		return nil, s.fail(ctx, "Invalid itinerary", err, "trip_id", trip.ID)
	}
	if err := s.store.SaveItinerary(ctx, it); err != nil {
		return nil, s.fail(ctx, "Failed to save itinerary", err, "trip_id", trip.ID)
	}

	return connect.NewResponse(&api.CreateItineraryResponse{Itinerary: toAPIItinerary(it)}), nil
}

func (s *ItineraryService) GetItinerary(ctx context.Context, req *connect.Request[api.GetItineraryRequest]) (*connect.Response[api.GetItineraryResponse], error) {
	s.logger.Info("GetItinerary request received", "trip_id", req.Msg.TripID)

	trip, err := ownedTrip(ctx, s.store, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to get itinerary", err, "trip_id", req.Msg.TripID)
	}
	it, err := s.store.GetItinerary(ctx, trip.ID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to get itinerary", err, "trip_id", trip.ID)
	}

	return connect.NewResponse(&api.GetItineraryResponse{Itinerary: toAPIItinerary(it)}), nil
}

func (s *ItineraryService) AddActivity(ctx context.Context, req *connect.Request[api.AddActivityRequest]) (*connect.Response[api.AddActivityResponse], error) {
	s.logger.Info("AddActivity request received", "trip_id", req.Msg.TripID, "day", req.Msg.Day)

	if req.Msg.Activity == nil {
		return nil, s.fail(ctx, "Invalid activity", errActivityRequired, "trip_id", req.Msg.TripID)
	}

	it, err := s.edit(ctx, req.Msg.TripID, func(it *models.Itinerary) error {
		_, err := itinerary.AddActivity(it, req.Msg.Day, fromAPIActivity(req.Msg.Activity))
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, "Failed to add activity", err, "trip_id", req.Msg.TripID)
	}

	return connect.NewResponse(&api.AddActivityResponse{Itinerary: toAPIItinerary(it)}), nil
}

// MoveActivity applies a drag-and-drop of one activity.
func (s *ItineraryService) MoveActivity(ctx context.Context, req *connect.Request[api.MoveActivityRequest]) (*connect.Response[api.MoveActivityResponse], error) {
	m := req.Msg
	s.logger.Info("MoveActivity request received",
		"trip_id", m.TripID,
		"from_day", m.FromDay,
		"from_index", m.FromIndex,
		"to_day", m.ToDay,
		"to_index", m.ToIndex,
	)

	it, err := s.edit(ctx, m.TripID, func(it *models.Itinerary) error {
		return itinerary.Move(it, m.FromDay, m.FromIndex, m.ToDay, m.ToIndex)
	})
	if err != nil {
		return nil, s.fail(ctx, "Failed to move activity", err, "trip_id", m.TripID)
	}

	return connect.NewResponse(&api.MoveActivityResponse{Itinerary: toAPIItinerary(it)}), nil
}

func (s *ItineraryService) RemoveActivity(ctx context.Context, req *connect.Request[api.RemoveActivityRequest]) (*connect.Response[api.RemoveActivityResponse], error) {
	s.logger.Info("RemoveActivity request received", "trip_id", req.Msg.TripID, "activity_id", req.Msg.ActivityID)

	it, err := s.edit(ctx, req.Msg.TripID, func(it *models.Itinerary) error {
		return itinerary.Remove(it, req.Msg.ActivityID)
	})
	if err != nil {
		return nil, s.fail(ctx, "Failed to remove activity", err, "trip_id", req.Msg.TripID)
	}

	return connect.NewResponse(&api.RemoveActivityResponse{Itinerary: toAPIItinerary(it)}), nil
}
