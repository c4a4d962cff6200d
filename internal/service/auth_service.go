package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/tripzy/internal/api"
	"github.com/mmynk/tripzy/internal/auth"
	"github.com/mmynk/tripzy/internal/middleware"
	"github.com/mmynk/tripzy/internal/storage"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	users         storage.UserStore
	jwtManager    *auth.JWTManager
	options
}

var _ api.AuthServiceHandler = (*AuthService)(nil)

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, users storage.UserStore, jwtManager *auth.JWTManager, opts ...Option) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		users:         users,
		jwtManager:    jwtManager,
		options:       newOptions(opts),
	}
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request received", "email", req.Msg.Email)

	if strings.TrimSpace(req.Msg.Email) == "" || strings.TrimSpace(req.Msg.DisplayName) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errRegistrationFields)
	}

	user, err := s.authenticator.Register(ctx, req.Msg.Email, strings.TrimSpace(req.Msg.DisplayName), req.Msg.Password)
	if err != nil {
		return nil, s.fail(ctx, "Registration failed", err, "email", req.Msg.Email)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, s.fail(ctx, "Failed to generate token", err, "user_id", user.ID)
	}

	s.logger.Info("User registered", "user_id", user.ID)
	return connect.NewResponse(&api.RegisterResponse{User: toAPIUser(user), Token: token}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request received", "email", req.Msg.Email)

	if req.Msg.Email == "" || req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidCredentials)
	}

	user, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		return nil, s.fail(ctx, "Login failed", err, "email", req.Msg.Email)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, s.fail(ctx, "Failed to generate token", err, "user_id", user.ID)
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	return connect.NewResponse(&api.LoginResponse{User: toAPIUser(user), Token: token}), nil
}

// Logout is a no-op: tokens are stateless and discarded by the client.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	s.logger.Info("Logout request received", "user_id", middleware.GetUserID(ctx))
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// GetCurrentUser returns the account behind the caller's token.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "Failed to load current user", err, "user_id", userID)
	}

	return connect.NewResponse(&api.GetCurrentUserResponse{User: toAPIUser(user)}), nil
}
