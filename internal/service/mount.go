package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/tripzy/internal/api"
)

// Handlers bundles the services served by one process.
type Handlers struct {
	Auth      *AuthService
	Trips     *TripService // serves both TripService and ExpenseService
	Waitlist  *WaitlistService
	Planner   *PlannerService
	Itinerary *ItineraryService
	Chat      *GroupChatService
}

// Mount registers every service on mux with the same handler options.
func (h Handlers) Mount(mux *http.ServeMux, opts ...connect.HandlerOption) {
	mux.Handle(api.NewAuthServiceHandler(h.Auth, opts...))
	mux.Handle(api.NewTripServiceHandler(h.Trips, opts...))
	mux.Handle(api.NewExpenseServiceHandler(h.Trips, opts...))
	mux.Handle(api.NewWaitlistServiceHandler(h.Waitlist, opts...))
	mux.Handle(api.NewPlannerServiceHandler(h.Planner, opts...))
	mux.Handle(api.NewItineraryServiceHandler(h.Itinerary, opts...))
	mux.Handle(api.NewGroupChatServiceHandler(h.Chat, opts...))
}
