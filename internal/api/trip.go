package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const TripServiceName = "tripzy.v1.TripService"

const (
	TripServiceCreateTripProcedure   = "/tripzy.v1.TripService/CreateTrip"
	TripServiceGetTripProcedure      = "/tripzy.v1.TripService/GetTrip"
	TripServiceListTripsProcedure    = "/tripzy.v1.TripService/ListTrips"
	TripServiceAddMemberProcedure    = "/tripzy.v1.TripService/AddMember"
	TripServiceRemoveMemberProcedure = "/tripzy.v1.TripService/RemoveMember"
	TripServiceDeleteTripProcedure   = "/tripzy.v1.TripService/DeleteTrip"
)

// Trip is a trip with its ordered participant roster.
type Trip struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

type CreateTripRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripID string `json:"trip_id"`
}

type GetTripResponse struct {
	Trip *Trip `json:"trip"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []*Trip `json:"trips"`
}

type AddMemberRequest struct {
	TripID string `json:"trip_id"`
	Name   string `json:"name"`
}

type AddMemberResponse struct {
	Trip     *Trip      `json:"trip"`
	Balances []*Balance `json:"balances"`
}

type RemoveMemberRequest struct {
	TripID string `json:"trip_id"`
	Name   string `json:"name"`
}

type RemoveMemberResponse struct {
	Trip     *Trip      `json:"trip"`
	Balances []*Balance `json:"balances"`
}

type DeleteTripRequest struct {
	TripID string `json:"trip_id"`
}

type DeleteTripResponse struct{}

// TripServiceHandler is implemented by the trip service.
type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error)
	AddMember(context.Context, *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error)
	RemoveMember(context.Context, *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error)
	DeleteTrip(context.Context, *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error)
}

// NewTripServiceHandler builds an HTTP handler from the service implementation.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(TripServiceCreateTripProcedure, connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...))
	mux.Handle(TripServiceGetTripProcedure, connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...))
	mux.Handle(TripServiceListTripsProcedure, connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opts...))
	mux.Handle(TripServiceAddMemberProcedure, connect.NewUnaryHandler(TripServiceAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(TripServiceRemoveMemberProcedure, connect.NewUnaryHandler(TripServiceRemoveMemberProcedure, svc.RemoveMember, opts...))
	mux.Handle(TripServiceDeleteTripProcedure, connect.NewUnaryHandler(TripServiceDeleteTripProcedure, svc.DeleteTrip, opts...))
	return "/" + TripServiceName + "/", mux
}

// TripServiceClient calls TripService over HTTP.
type TripServiceClient struct {
	createTrip   *connect.Client[CreateTripRequest, CreateTripResponse]
	getTrip      *connect.Client[GetTripRequest, GetTripResponse]
	listTrips    *connect.Client[ListTripsRequest, ListTripsResponse]
	addMember    *connect.Client[AddMemberRequest, AddMemberResponse]
	removeMember *connect.Client[RemoveMemberRequest, RemoveMemberResponse]
	deleteTrip   *connect.Client[DeleteTripRequest, DeleteTripResponse]
}

func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *TripServiceClient {
	opts = clientOptions(opts)
	return &TripServiceClient{
		createTrip:   connect.NewClient[CreateTripRequest, CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		getTrip:      connect.NewClient[GetTripRequest, GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		listTrips:    connect.NewClient[ListTripsRequest, ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opts...),
		addMember:    connect.NewClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL+TripServiceAddMemberProcedure, opts...),
		removeMember: connect.NewClient[RemoveMemberRequest, RemoveMemberResponse](httpClient, baseURL+TripServiceRemoveMemberProcedure, opts...),
		deleteTrip:   connect.NewClient[DeleteTripRequest, DeleteTripResponse](httpClient, baseURL+TripServiceDeleteTripProcedure, opts...),
	}
}

func (c *TripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *TripServiceClient) ListTrips(ctx context.Context, req *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *TripServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *TripServiceClient) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *TripServiceClient) DeleteTrip(ctx context.Context, req *connect.Request[DeleteTripRequest]) (*connect.Response[DeleteTripResponse], error) {
	return c.deleteTrip.CallUnary(ctx, req)
}
