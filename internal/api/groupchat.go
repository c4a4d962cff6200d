package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

const GroupChatServiceName = "tripzy.v1.GroupChatService"

const (
	GroupChatServiceAddChatMemberProcedure    = "/tripzy.v1.GroupChatService/AddChatMember"
	GroupChatServiceRemoveChatMemberProcedure = "/tripzy.v1.GroupChatService/RemoveChatMember"
	GroupChatServiceListChatMembersProcedure  = "/tripzy.v1.GroupChatService/ListChatMembers"
	GroupChatServiceSendMessageProcedure      = "/tripzy.v1.GroupChatService/SendMessage"
	GroupChatServiceListMessagesProcedure     = "/tripzy.v1.GroupChatService/ListMessages"
)

type ChatMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

type ChatMessage struct {
	ID     string `json:"id"`
	Sender string `json:"sender"`
	Text   string `json:"text"`
	SentAt int64  `json:"sent_at"`
}

type AddChatMemberRequest struct {
	TripID string `json:"trip_id"`
	Name   string `json:"name"`
}

type AddChatMemberResponse struct {
	Member *ChatMember `json:"member"`
}

type RemoveChatMemberRequest struct {
	TripID   string `json:"trip_id"`
	MemberID string `json:"member_id"`
}

type RemoveChatMemberResponse struct{}

type ListChatMembersRequest struct {
	TripID string `json:"trip_id"`
}

type ListChatMembersResponse struct {
	Members []*ChatMember `json:"members"`
}

type SendMessageRequest struct {
	TripID string `json:"trip_id"`
	Text   string `json:"text"`
}

type SendMessageResponse struct {
	Message *ChatMessage `json:"message"`
}

type ListMessagesRequest struct {
	TripID string `json:"trip_id"`
}

type ListMessagesResponse struct {
	Messages []*ChatMessage `json:"messages"`
}

type GroupChatServiceHandler interface {
	AddChatMember(context.Context, *connect.Request[AddChatMemberRequest]) (*connect.Response[AddChatMemberResponse], error)
	RemoveChatMember(context.Context, *connect.Request[RemoveChatMemberRequest]) (*connect.Response[RemoveChatMemberResponse], error)
	ListChatMembers(context.Context, *connect.Request[ListChatMembersRequest]) (*connect.Response[ListChatMembersResponse], error)
	SendMessage(context.Context, *connect.Request[SendMessageRequest]) (*connect.Response[SendMessageResponse], error)
	ListMessages(context.Context, *connect.Request[ListMessagesRequest]) (*connect.Response[ListMessagesResponse], error)
}

func NewGroupChatServiceHandler(svc GroupChatServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(GroupChatServiceAddChatMemberProcedure, connect.NewUnaryHandler(GroupChatServiceAddChatMemberProcedure, svc.AddChatMember, opts...))
	mux.Handle(GroupChatServiceRemoveChatMemberProcedure, connect.NewUnaryHandler(GroupChatServiceRemoveChatMemberProcedure, svc.RemoveChatMember, opts...))
	mux.Handle(GroupChatServiceListChatMembersProcedure, connect.NewUnaryHandler(GroupChatServiceListChatMembersProcedure, svc.ListChatMembers, opts...))
	mux.Handle(GroupChatServiceSendMessageProcedure, connect.NewUnaryHandler(GroupChatServiceSendMessageProcedure, svc.SendMessage, opts...))
	mux.Handle(GroupChatServiceListMessagesProcedure, connect.NewUnaryHandler(GroupChatServiceListMessagesProcedure, svc.ListMessages, opts...))
	return "/" + GroupChatServiceName + "/", mux
}

type GroupChatServiceClient struct {
	addChatMember    *connect.Client[AddChatMemberRequest, AddChatMemberResponse]
	removeChatMember *connect.Client[RemoveChatMemberRequest, RemoveChatMemberResponse]
	listChatMembers  *connect.Client[ListChatMembersRequest, ListChatMembersResponse]
	sendMessage      *connect.Client[SendMessageRequest, SendMessageResponse]
	listMessages     *connect.Client[ListMessagesRequest, ListMessagesResponse]
}

func NewGroupChatServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupChatServiceClient {
	opts = clientOptions(opts)
	return &GroupChatServiceClient{
		addChatMember:    connect.NewClient[AddChatMemberRequest, AddChatMemberResponse](httpClient, baseURL+GroupChatServiceAddChatMemberProcedure, opts...),
		removeChatMember: connect.NewClient[RemoveChatMemberRequest, RemoveChatMemberResponse](httpClient, baseURL+GroupChatServiceRemoveChatMemberProcedure, opts...),
		listChatMembers:  connect.NewClient[ListChatMembersRequest, ListChatMembersResponse](httpClient, baseURL+GroupChatServiceListChatMembersProcedure, opts...),
		sendMessage:      connect.NewClient[SendMessageRequest, SendMessageResponse](httpClient, baseURL+GroupChatServiceSendMessageProcedure, opts...),
		listMessages:     connect.NewClient[ListMessagesRequest, ListMessagesResponse](httpClient, baseURL+GroupChatServiceListMessagesProcedure, opts...),
	}
}

func (c *GroupChatServiceClient) AddChatMember(ctx context.Context, req *connect.Request[AddChatMemberRequest]) (*connect.Response[AddChatMemberResponse], error) {
	return c.addChatMember.CallUnary(ctx, req)
}

func (c *GroupChatServiceClient) RemoveChatMember(ctx context.Context, req *connect.Request[RemoveChatMemberRequest]) (*connect.Response[RemoveChatMemberResponse], error) {
	return c.removeChatMember.CallUnary(ctx, req)
}

func (c *GroupChatServiceClient) ListChatMembers(ctx context.Context, req *connect.Request[ListChatMembersRequest]) (*connect.Response[ListChatMembersResponse], error) {
	return c.listChatMembers.CallUnary(ctx, req)
}

func (c *GroupChatServiceClient) SendMessage(ctx context.Context, req *connect.Request[SendMessageRequest]) (*connect.Response[SendMessageResponse], error) {
	return c.sendMessage.CallUnary(ctx, req)
}

func (c *GroupChatServiceClient) ListMessages(ctx context.Context, req *connect.Request[ListMessagesRequest]) (*connect.Response[ListMessagesResponse], error) {
	return c.listMessages.CallUnary(ctx, req)
}
