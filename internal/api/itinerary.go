package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const ItineraryServiceName = "tripzy.v1.ItineraryService"

const (
	ItineraryServiceCreateItineraryProcedure = "/tripzy.v1.ItineraryService/CreateItinerary"
	ItineraryServiceGetItineraryProcedure    = "/tripzy.v1.ItineraryService/GetItinerary"
	ItineraryServiceAddActivityProcedure     = "/tripzy.v1.ItineraryService/AddActivity"
	ItineraryServiceMoveActivityProcedure    = "/tripzy.v1.ItineraryService/MoveActivity"
	ItineraryServiceRemoveActivityProcedure  = "/tripzy.v1.ItineraryService/RemoveActivity"
)

type Activity struct {
	ID          string `json:"id"`
	Time        string `json:"time,omitempty"`
	Title       string `json:"title"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

type Day struct {
	Number     int         `json:"number"`
	Activities []*Activity `json:"activities"`
}

type Itinerary struct {
	TripID string `json:"trip_id"`
	Days   []*Day `json:"days"`
}

type CreateItineraryRequest struct {
	TripID string `json:"trip_id"`
	Days   int    `json:"days"`
}

type CreateItineraryResponse struct {
	Itinerary *Itinerary `json:"itinerary"`
}

type GetItineraryRequest struct {
	TripID string `json:"trip_id"`
}

type GetItineraryResponse struct {
	Itinerary *Itinerary `json:"itinerary"`
}

type AddActivityRequest struct {
	TripID   string    `json:"trip_id"`
	Day      int       `json:"day"`
	Activity *Activity `json:"activity"`
}

type AddActivityResponse struct {
	Itinerary *Itinerary `json:"itinerary"`
}

// MoveActivityRequest mirrors a drag-and-drop: the activity at FromIndex of
// FromDay is removed and inserted at ToIndex of ToDay. Days are 1-based,
// indexes 0-based.
type MoveActivityRequest struct {
	TripID    string `json:"trip_id"`
	FromDay   int    `json:"from_day"`
	FromIndex int    `json:"from_index"`
	ToDay     int    `json:"to_day"`
	ToIndex   int    `json:"to_index"`
}

type MoveActivityResponse struct {
	Itinerary *Itinerary `json:"itinerary"`
}

type RemoveActivityRequest struct {
	TripID     string `json:"trip_id"`
	ActivityID string `json:"activity_id"`
}

type RemoveActivityResponse struct {
	Itinerary *Itinerary `json:"itinerary"`
}

type ItineraryServiceHandler interface {
	CreateItinerary(context.Context, *connect.Request[CreateItineraryRequest]) (*connect.Response[CreateItineraryResponse], error)
	GetItinerary(context.Context, *connect.Request[GetItineraryRequest]) (*connect.Response[GetItineraryResponse], error)
	AddActivity(context.Context, *connect.Request[AddActivityRequest]) (*connect.Response[AddActivityResponse], error)
	MoveActivity(context.Context, *connect.Request[MoveActivityRequest]) (*connect.Response[MoveActivityResponse], error)
	RemoveActivity(context.Context, *connect.Request[RemoveActivityRequest]) (*connect.Response[RemoveActivityResponse], error)
}

func NewItineraryServiceHandler(svc ItineraryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(ItineraryServiceCreateItineraryProcedure, connect.NewUnaryHandler(ItineraryServiceCreateItineraryProcedure, svc.CreateItinerary, opts...))
	mux.Handle(ItineraryServiceGetItineraryProcedure, connect.NewUnaryHandler(ItineraryServiceGetItineraryProcedure, svc.GetItinerary, opts...))
	mux.Handle(ItineraryServiceAddActivityProcedure, connect.NewUnaryHandler(ItineraryServiceAddActivityProcedure, svc.AddActivity, opts...))
	mux.Handle(ItineraryServiceMoveActivityProcedure, connect.NewUnaryHandler(ItineraryServiceMoveActivityProcedure, svc.MoveActivity, opts...))
	mux.Handle(ItineraryServiceRemoveActivityProcedure, connect.NewUnaryHandler(ItineraryServiceRemoveActivityProcedure, svc.RemoveActivity, opts...))
	return "/" + ItineraryServiceName + "/", mux
}

type ItineraryServiceClient struct {
	createItinerary *connect.Client[CreateItineraryRequest, CreateItineraryResponse]
	getItinerary    *connect.Client[GetItineraryRequest, GetItineraryResponse]
	addActivity     *connect.Client[AddActivityRequest, AddActivityResponse]
	moveActivity    *connect.Client[MoveActivityRequest, MoveActivityResponse]
	removeActivity  *connect.Client[RemoveActivityRequest, RemoveActivityResponse]
}

func NewItineraryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ItineraryServiceClient {
	opts = clientOptions(opts)
	return &ItineraryServiceClient{
		createItinerary: connect.NewClient[CreateItineraryRequest, CreateItineraryResponse](httpClient, baseURL+ItineraryServiceCreateItineraryProcedure, opts...),
		getItinerary:    connect.NewClient[GetItineraryRequest, GetItineraryResponse](httpClient, baseURL+ItineraryServiceGetItineraryProcedure, opts...),
		addActivity:     connect.NewClient[AddActivityRequest, AddActivityResponse](httpClient, baseURL+ItineraryServiceAddActivityProcedure, opts...),
		moveActivity:    connect.NewClient[MoveActivityRequest, MoveActivityResponse](httpClient, baseURL+ItineraryServiceMoveActivityProcedure, opts...),
		removeActivity:  connect.NewClient[RemoveActivityRequest, RemoveActivityResponse](httpClient, baseURL+ItineraryServiceRemoveActivityProcedure, opts...),
	}
}

func (c *ItineraryServiceClient) CreateItinerary(ctx context.Context, req *connect.Request[CreateItineraryRequest]) (*connect.Response[CreateItineraryResponse], error) {
	return c.createItinerary.CallUnary(ctx, req)
}

func (c *ItineraryServiceClient) GetItinerary(ctx context.Context, req *connect.Request[GetItineraryRequest]) (*connect.Response[GetItineraryResponse], error) {
	return c.getItinerary.CallUnary(ctx, req)
}

func (c *ItineraryServiceClient) AddActivity(ctx context.Context, req *connect.Request[AddActivityRequest]) (*connect.Response[AddActivityResponse], error) {
	return c.addActivity.CallUnary(ctx, req)
}

func (c *ItineraryServiceClient) MoveActivity(ctx context.Context, req *connect.Request[MoveActivityRequest]) (*connect.Response[MoveActivityResponse], error) {
	return c.moveActivity.CallUnary(ctx, req)
}

func (c *ItineraryServiceClient) RemoveActivity(ctx context.Context, req *connect.Request[RemoveActivityRequest]) (*connect.Response[RemoveActivityResponse], error) {
	return c.removeActivity.CallUnary(ctx, req)
}
