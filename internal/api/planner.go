package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const PlannerServiceName = "tripzy.v1.PlannerService"

const PlannerServiceChatProcedure = "/tripzy.v1.PlannerService/Chat"

// Preferences are the trip settings a user picked in the planner sidebar.
type Preferences struct {
	TripType    string   `json:"trip_type,omitempty"`
	Budget      string   `json:"budget,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Interests   []string `json:"interests,omitempty"`
	TravelStyle string   `json:"travel_style,omitempty"`
}

// ConversationContext is the planner's memory of the conversation. The
// server keeps no state; clients send back what the last reply returned.
type ConversationContext struct {
	LastTopic             string   `json:"last_topic,omitempty"`
	MentionedDestinations []string `json:"mentioned_destinations,omitempty"`
	Phase                 string   `json:"phase,omitempty"`
}

type ChatRequest struct {
	Message     string               `json:"message"`
	Preferences *Preferences         `json:"preferences,omitempty"`
	Context     *ConversationContext `json:"context,omitempty"`
}

type ChatResponse struct {
	Reply    string               `json:"reply"`
	Category string               `json:"category"`
	Context  *ConversationContext `json:"context"`
}

type PlannerServiceHandler interface {
	Chat(context.Context, *connect.Request[ChatRequest]) (*connect.Response[ChatResponse], error)
}

func NewPlannerServiceHandler(svc PlannerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(PlannerServiceChatProcedure, connect.NewUnaryHandler(PlannerServiceChatProcedure, svc.Chat, opts...))
	return "/" + PlannerServiceName + "/", mux
}

type PlannerServiceClient struct {
	chat *connect.Client[ChatRequest, ChatResponse]
}

func NewPlannerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PlannerServiceClient {
	opts = clientOptions(opts)
	return &PlannerServiceClient{
		chat: connect.NewClient[ChatRequest, ChatResponse](httpClient, baseURL+PlannerServiceChatProcedure, opts...),
	}
}

func (c *PlannerServiceClient) Chat(ctx context.Context, req *connect.Request[ChatRequest]) (*connect.Response[ChatResponse], error) {
	return c.chat.CallUnary(ctx, req)
}
