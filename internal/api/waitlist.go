package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const WaitlistServiceName = "tripzy.v1.WaitlistService"

const WaitlistServiceJoinWaitlistProcedure = "/tripzy.v1.WaitlistService/JoinWaitlist"

type JoinWaitlistRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type JoinWaitlistResponse struct {
	EntryID string `json:"entry_id"`
	Message string `json:"message"`
}

type WaitlistServiceHandler interface {
	JoinWaitlist(context.Context, *connect.Request[JoinWaitlistRequest]) (*connect.Response[JoinWaitlistResponse], error)
}

func NewWaitlistServiceHandler(svc WaitlistServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(WaitlistServiceJoinWaitlistProcedure, connect.NewUnaryHandler(WaitlistServiceJoinWaitlistProcedure, svc.JoinWaitlist, opts...))
	return "/" + WaitlistServiceName + "/", mux
}

type WaitlistServiceClient struct {
	joinWaitlist *connect.Client[JoinWaitlistRequest, JoinWaitlistResponse]
}

func NewWaitlistServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *WaitlistServiceClient {
	opts = clientOptions(opts)
	return &WaitlistServiceClient{
		joinWaitlist: connect.NewClient[JoinWaitlistRequest, JoinWaitlistResponse](httpClient, baseURL+WaitlistServiceJoinWaitlistProcedure, opts...),
	}
}

func (c *WaitlistServiceClient) JoinWaitlist(ctx context.Context, req *connect.Request[JoinWaitlistRequest]) (*connect.Response[JoinWaitlistResponse], error) {
	return c.joinWaitlist.CallUnary(ctx, req)
}
