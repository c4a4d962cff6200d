package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/tripzy/internal/api"
	"github.com/mmynk/tripzy/internal/middleware"
	"github.com/mmynk/tripzy/internal/planner"
)

// PlannerService answers travel-planning chat messages. It is stateless:
// the caller sends back the context returned by the previous reply.
type PlannerService struct {
	planner *planner.Planner
	options
}

var _ api.PlannerServiceHandler = (*PlannerService)(nil)

func NewPlannerService(p *planner.Planner, opts ...Option) *PlannerService {
	return &PlannerService{planner: p, options: newOptions(opts)}
}

func (s *PlannerService) Chat(ctx context.Context, req *connect.Request[api.ChatRequest]) (*connect.Response[api.ChatResponse], error) {
	s.logger.Info("Chat request received",
		"length", len(req.Msg.Message),
		"signed_in", middleware.ClaimsFrom(ctx) != nil,
	)

	reply, err := s.planner.Chat(ctx,
		req.Msg.Message,
		fromAPIPreferences(req.Msg.Preferences),
		fromAPIContext(req.Msg.Context),
	)
	if err != nil {
		return nil, s.fail(ctx, "Chat failed", err)
	}

	return connect.NewResponse(&api.ChatResponse{
		Reply:    reply.Text,
		Category: string(reply.Category),
		Context:  toAPIContext(reply.Context),
	}), nil
}
