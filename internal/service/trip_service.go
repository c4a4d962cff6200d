package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripzy/internal/api"
	"github.com/mmynk/tripzy/internal/auth"
	"github.com/mmynk/tripzy/internal/ledger"
	"github.com/mmynk/tripzy/internal/middleware"
	"github.com/mmynk/tripzy/internal/models"
	"github.com/mmynk/tripzy/internal/storage"
)

// TripService implements TripService and ExpenseService. Roster and expense
// changes run load, ledger command and persist one at a time.
type TripService struct {
	store storage.TripStore
	mu    sync.Mutex
	options
}

var (
	_ api.TripServiceHandler    = (*TripService)(nil)
	_ api.ExpenseServiceHandler = (*TripService)(nil)
)

// NewTripService creates a new trip service.
func NewTripService(store storage.TripStore, opts ...Option) *TripService {
	return &TripService{store: store, options: newOptions(opts)}
}

// loadLedger rebuilds the ledger of an owned trip from storage.
func (s *TripService) loadLedger(ctx context.Context, tripID string) (*models.Trip, *ledger.Ledger, error) {
	trip, err := ownedTrip(ctx, s.store, tripID)
	if err != nil {
		return nil, nil, err
	}
	expenses, err := s.store.ListExpenses(ctx, trip.ID)
	if err != nil {
		return nil, nil, err
	}
	l, err := ledger.New(trip.Roster, expenses)
	if err != nil {
		return nil, nil, err
	}
	s.metrics.BalanceComputed()
	return trip, l, nil
}

func (s *TripService) balances(l *ledger.Ledger) []*api.Balance {
	return toAPIBalances(l.Roster(), l.Balances(), s.currency)
}

// CreateTrip creates a trip owned by the caller. The roster starts with
// "You" followed by the given members.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	s.logger.Info("CreateTrip request received", "name", req.Msg.Name, "members", len(req.Msg.Members))

	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, s.fail(ctx, "Invalid trip", errTripNameRequired)
	}

	roster, err := models.NewRoster(req.Msg.Members...)
	if err != nil {
		return nil, s.fail(ctx, "Invalid trip roster", err)
	}

	trip := &models.Trip{
		Name:      name,
		OwnerID:   userID,
		Roster:    roster,
		CreatedAt: time.Now().Unix(),
	}
	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, s.fail(ctx, "Failed to create trip", err)
	}

	s.logger.Info("Trip created", "trip_id", trip.ID, "members", len(trip.Roster))
	return connect.NewResponse(&api.CreateTripResponse{Trip: toAPITrip(trip)}), nil
}

// GetTrip returns one of the caller's trips.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	s.logger.Info("GetTrip request received", "trip_id", req.Msg.TripID)

	trip, err := ownedTrip(ctx, s.store, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to get trip", err, "trip_id", req.Msg.TripID)
	}
	return connect.NewResponse(&api.GetTripResponse{Trip: toAPITrip(trip)}), nil
}

// ListTrips returns the caller's trips, newest first.
func (s *TripService) ListTrips(ctx context.Context, req *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	s.logger.Info("ListTrips request received", "user_id", userID)

	trips, err := s.store.ListTrips(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to list trips", err, "user_id", userID)
	}

	out := make([]*api.Trip, 0, len(trips))
	for _, t := range trips {
		out = append(out, toAPITrip(t))
	}
	return connect.NewResponse(&api.ListTripsResponse{Trips: out}), nil
}

// AddMember adds a participant to the trip. New members start settled.
func (s *TripService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	s.logger.Info("AddMember request received", "trip_id", req.Msg.TripID, "name", req.Msg.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, l, err := s.loadLedger(ctx, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to load trip", err, "trip_id", req.Msg.TripID)
	}

	if _, err := l.AddMember(req.Msg.Name); err != nil {
		return nil, s.fail(ctx, "Failed to add member", err, "trip_id", trip.ID)
	}
	s.metrics.BalanceComputed()

	if err := s.store.SaveRoster(ctx, trip.ID, l.Roster()); err != nil {
		return nil, s.fail(ctx, "Failed to save roster", err, "trip_id", trip.ID)
	}
	trip.Roster = l.Roster()

	return connect.NewResponse(&api.AddMemberResponse{
		Trip:     toAPITrip(trip),
		Balances: s.balances(l),
	}), nil
}

// RemoveMember removes a participant who appears in no expense.
func (s *TripService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	s.logger.Info("RemoveMember request received", "trip_id", req.Msg.TripID, "name", req.Msg.Name)

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, l, err := s.loadLedger(ctx, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to load trip", err, "trip_id", req.Msg.TripID)
	}

	if err := l.RemoveMember(req.Msg.Name); err != nil {
		return nil, s.fail(ctx, "Failed to remove member", err, "trip_id", trip.ID, "name", req.Msg.Name)
	}
	s.metrics.BalanceComputed()

	if err := s.store.SaveRoster(ctx, trip.ID, l.Roster()); err != nil {
		return nil, s.fail(ctx, "Failed to save roster", err, "trip_id", trip.ID)
	}
	trip.Roster = l.Roster()

	return connect.NewResponse(&api.RemoveMemberResponse{
		Trip:     toAPITrip(trip),
		Balances: s.balances(l),
	}), nil
}

// DeleteTrip deletes a trip with its expenses, itinerary and chat.
func (s *TripService) DeleteTrip(ctx context.Context, req *connect.Request[api.DeleteTripRequest]) (*connect.Response[api.DeleteTripResponse], error) {
	s.logger.Info("DeleteTrip request received", "trip_id", req.Msg.TripID)

	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := ownedTrip(ctx, s.store, req.Msg.TripID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to delete trip", err, "trip_id", req.Msg.TripID)
	}
	if err := s.store.DeleteTrip(ctx, trip.ID); err != nil {
		return nil, s.fail(ctx, "Failed to delete trip", err, "trip_id", trip.ID)
	}

	return connect.NewResponse(&api.DeleteTripResponse{}), nil
}
